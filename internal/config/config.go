package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort                  int    `mapstructure:"APP_PORT"`
	DatabasePath             string `mapstructure:"DATABASE_PATH"`
	OllamaURL                string `mapstructure:"OLLAMA_URL"`
	OllamaWaitSeconds        int    `mapstructure:"OLLAMA_WAIT_SECONDS"`
	LogLevel                 string `mapstructure:"LOG_LEVEL"`
	JWTSecret                string `mapstructure:"JWT_SECRET"`
	MainModel                string `mapstructure:"MAIN_MODEL"`
	SupportModel             string `mapstructure:"SUPPORT_MODEL"`
	GenerationTestMode       bool   `mapstructure:"GENERATION_TEST_MODE"`
	MaxConcurrentGenerations int    `mapstructure:"MAX_CONCURRENT_GENERATIONS"`
	WSAllowedOrigins         string `mapstructure:"WS_ALLOWED_ORIGINS"`
	ShutdownTimeoutSeconds   int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/chat.db")
	viper.SetDefault("OLLAMA_URL", "http://ollama:11434")
	viper.SetDefault("OLLAMA_WAIT_SECONDS", 60)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAIN_MODEL", "")
	viper.SetDefault("SUPPORT_MODEL", "")
	viper.SetDefault("GENERATION_TEST_MODE", false)
	viper.SetDefault("MAX_CONCURRENT_GENERATIONS", 0)
	viper.SetDefault("WS_ALLOWED_ORIGINS", "")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that have no usable default.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.MaxConcurrentGenerations < 0 {
		return fmt.Errorf("MAX_CONCURRENT_GENERATIONS must not be negative")
	}
	return nil
}

// AllowedOrigins splits WS_ALLOWED_ORIGINS into a list. Empty means any origin.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.WSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
