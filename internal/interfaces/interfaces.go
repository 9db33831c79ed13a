package interfaces

import (
	"context"

	"chatgen/backend/internal/llm"
	"chatgen/backend/internal/model"
	"chatgen/backend/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API and live layers from the service layer) and easier testing via mocking.

// ChatService defines the contract for chat-related business logic. Every
// call is scoped to the authenticated user; foreign chats read as not found.
type ChatService interface {
	CreateChat(ctx context.Context, userID, title string, temporary bool) (*model.Chat, error)
	GetChat(ctx context.Context, userID, chatID string) (*model.Chat, error)
	ListChats(ctx context.Context, userID string, archived bool) ([]*model.Chat, error)
	GetFullChat(ctx context.Context, userID, chatID string) (*model.FullChat, error)
	UpdateChatTitle(ctx context.Context, userID, chatID, newTitle string) error
	SetArchived(ctx context.Context, userID, chatID string, archived bool) error
	DeleteChat(ctx context.Context, userID, chatID string) error
	SendMessage(ctx context.Context, userID string, req *service.SendMessageRequest) (*service.GenerationStarted, error)
	EditMessage(ctx context.Context, userID, chatID string, req *service.EditMessageRequest) (*service.GenerationStarted, error)
	Regenerate(ctx context.Context, userID, chatID string, req *service.RegenerateRequest) (*service.GenerationStarted, error)
	GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error)
	SavePreferences(ctx context.Context, userID string, prefs *model.UserPreferences) error
}

// GenerationService defines the stop and pending-state side of generation.
// Starting goes through ChatService, which prepares the history first.
type GenerationService interface {
	Stop(ctx context.Context, chatID string) bool
	StopAll(ctx context.Context, userID string) (int, error)
	IsAnyPending(ctx context.Context, userID string) (bool, error)
	PendingChats(ctx context.Context, userID string) ([]*model.Chat, error)
	Reconcile(ctx context.Context, userID string) (int, error)
}

// ModelService defines the contract for model management logic.
type ModelService interface {
	List(ctx context.Context) (*llm.ListModelsResponse, error)
}

// SettingsService defines the contract for managing application settings.
type SettingsService interface {
	Get(ctx context.Context) (*service.Settings, error)
	Save(ctx context.Context, settings *service.Settings) error
}

var (
	_ ChatService       = (*service.ChatService)(nil)
	_ GenerationService = (*service.GenerationService)(nil)
	_ ModelService      = (*service.ModelService)(nil)
	_ SettingsService   = (*service.SettingsService)(nil)
)
