package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"chatgen/backend/internal/api"
	"chatgen/backend/internal/auth"
	"chatgen/backend/internal/broadcast"
	"chatgen/backend/internal/config"
	"chatgen/backend/internal/database"
	"chatgen/backend/internal/live"
	"chatgen/backend/internal/llm"
	"chatgen/backend/internal/repository"
	"chatgen/backend/internal/service"
	"chatgen/backend/internal/task"
)

// App holds the wired application. Close releases what NewApp opened.
type App struct {
	Config     *config.Config
	DB         *sql.DB
	Server     *http.Server
	Generation *service.GenerationService
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to start application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	code := 0
	select {
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
			code = 1
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	if err := app.Shutdown(context.Background()); err != nil {
		slog.Error("Graceful shutdown did not complete", "error", err)
		code = 1
	}
	return code
}

// NewApp opens storage, waits for Ollama and wires every component.
func NewApp(cfg *config.Config) (*App, error) {
	ollamaProvider, err := llm.NewOllamaProvider(cfg.OllamaURL)
	if err != nil {
		return nil, err
	}
	if err := waitForOllama(ollamaProvider, time.Duration(cfg.OllamaWaitSeconds)*time.Second); err != nil {
		return nil, err
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.")

	app, err := wire(cfg, db, ollamaProvider)
	if err != nil {
		if cErr := db.Close(); cErr != nil {
			slog.Error("Failed to close database connection", "error", cErr)
		}
		return nil, err
	}
	return app, nil
}

func wire(cfg *config.Config, db *sql.DB, ollamaProvider llm.LLMProvider) (*App, error) {
	ctx := context.Background()
	logger := slog.Default()

	repo := repository.NewSQLiteRepository(db)

	// No task survives a restart, so every pending marker is stale.
	cleared, err := repo.ClearAllPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to clear stale pending generations: %w", err)
	}
	if cleared > 0 {
		slog.Warn("Cleared pending generations left by a previous run", "count", cleared)
	}

	settingsService := service.NewSettingsService(db, ollamaProvider)
	appSettings, err := settingsService.InitAndGet(ctx, service.Settings{MainModel: cfg.MainModel, SupportModel: cfg.SupportModel})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application settings: %w", err)
	}
	slog.Info("Loaded application settings", "main_model", appSettings.MainModel, "support_model", appSettings.SupportModel)

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	registry := task.NewRegistry()
	scheduler := task.NewScheduler(task.SchedulerConfig{MaxConcurrent: cfg.MaxConcurrentGenerations}, logger)
	hub := broadcast.NewHub(logger)
	generationService := service.NewGenerationService(
		repo, ollamaProvider, settingsService, registry, scheduler, hub,
		service.GenerationConfig{TestMode: cfg.GenerationTestMode}, logger,
	)
	chatService := service.NewChatService(repo, generationService)
	modelService := service.NewModelService(ollamaProvider)

	chatHandler := api.NewChatHandler(chatService, settingsService, generationService)
	modelHandler := api.NewModelHandler(modelService)
	liveHandler := live.NewHandler(tokens, chatService, generationService, hub, api.Validator(), cfg.AllowedOrigins(), logger)
	router := api.NewRouter(chatHandler, modelHandler, api.Authenticate(tokens), liveHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the websocket endpoint
		IdleTimeout:       120 * time.Second,
	}

	return &App{Config: cfg, DB: db, Server: server, Generation: generationService}, nil
}

// Shutdown stops accepting requests, then cancels running generations and
// waits for them to persist their final state.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.Config.ShutdownTimeout())
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if err := a.Generation.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("generation tasks: %w", err))
	}
	return errors.Join(errs...)
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// waitForOllama polls the heartbeat until it answers or maxWait elapses.
// A non-positive maxWait tries once.
func waitForOllama(provider llm.LLMProvider, maxWait time.Duration) error {
	slog.Info("Waiting for Ollama to be ready...")
	deadline := time.Now().Add(maxWait)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := provider.Heartbeat(ctx)
		cancel()
		if err == nil {
			slog.Info("Ollama is ready.")
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("ollama did not become ready within %s: %w", maxWait, err)
		}
		slog.Debug("Ollama not ready yet, retrying in 3 seconds...", "error", err)
		time.Sleep(3 * time.Second)
	}
}
