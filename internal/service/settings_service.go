package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	apperrors "chatgen/backend/internal/errors"
	"chatgen/backend/internal/llm"
)

const (
	settingMainModel    = "main_model"
	settingSupportModel = "support_model"
)

// Settings holds the dynamic application settings stored in the settings table.
type Settings struct {
	MainModel    string `json:"main_model" validate:"required,max=200"`
	SupportModel string `json:"support_model" validate:"required,max=200"`
}

type SettingsService struct {
	db     *sql.DB
	llm    llm.LLMProvider
	logger *slog.Logger
}

func NewSettingsService(db *sql.DB, llmProvider llm.LLMProvider) *SettingsService {
	return &SettingsService{db: db, llm: llmProvider, logger: slog.Default().With("component", "settings_service")}
}

// InitAndGet returns the stored settings, seeding them on first start from the
// bootstrap models or, when those are empty, from the first model Ollama has.
func (s *SettingsService) InitAndGet(ctx context.Context, bootstrap Settings) (*Settings, error) {
	settings, err := s.load(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err == nil && settings.MainModel != "" {
		s.logger.Info("Found existing settings.")
		return s.Get(ctx)
	}

	s.logger.Info("No settings found. Performing smart initialization...")
	initial := &Settings{MainModel: bootstrap.MainModel, SupportModel: bootstrap.SupportModel}
	if initial.MainModel == "" {
		initial.MainModel = s.discoverModel(ctx)
	}
	if initial.SupportModel == "" {
		initial.SupportModel = initial.MainModel
	}

	if err := s.save(ctx, initial); err != nil {
		return nil, fmt.Errorf("failed to save initial settings: %w", err)
	}
	s.logger.Info("Initialized settings", "main_model", initial.MainModel, "support_model", initial.SupportModel)
	return initial, nil
}

// Get returns the current settings. An empty main model is healed from the
// models Ollama reports, since a model may have been pulled after startup.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	settings, err := s.load(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings == nil {
		settings = &Settings{}
	}

	if settings.MainModel == "" {
		if discovered := s.discoverModel(ctx); discovered != "" {
			settings.MainModel = discovered
			if settings.SupportModel == "" {
				settings.SupportModel = discovered
			}
			if err := s.save(ctx, settings); err != nil {
				return nil, fmt.Errorf("failed to save healed settings: %w", err)
			}
		}
	}
	return settings, nil
}

// Save validates both models against Ollama before persisting.
func (s *SettingsService) Save(ctx context.Context, settings *Settings) error {
	available, err := s.llm.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("could not list models for validation: %w", err)
	}
	names := make([]string, len(available.Models))
	for i, m := range available.Models {
		names[i] = m.Name
	}
	if !slices.Contains(names, settings.MainModel) {
		return fmt.Errorf("%w: main model '%s' is not available", apperrors.ErrValidation, settings.MainModel)
	}
	if !slices.Contains(names, settings.SupportModel) {
		return fmt.Errorf("%w: support model '%s' is not available", apperrors.ErrValidation, settings.SupportModel)
	}
	return s.save(ctx, settings)
}

func (s *SettingsService) discoverModel(ctx context.Context) string {
	models, err := s.llm.ListModels(ctx)
	if err != nil {
		s.logger.Warn("Could not list models from Ollama", "error", err)
		return ""
	}
	if len(models.Models) == 0 {
		s.logger.Warn("Ollama is running but has no models.")
		return ""
	}
	s.logger.Info("Automatically selected model from Ollama", "model", models.Models[0].Name)
	return models.Models[0].Name
}

func (s *SettingsService) load(ctx context.Context) (*Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	settings := &Settings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case settingMainModel:
			settings.MainModel = value
		case settingSupportModel:
			settings.SupportModel = value
		}
	}
	return settings, rows.Err()
}

func (s *SettingsService) save(ctx context.Context, settings *Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, kv := range [][2]string{
		{settingMainModel, settings.MainModel},
		{settingSupportModel, settings.SupportModel},
	} {
		if _, err := stmt.ExecContext(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return tx.Commit()
}
