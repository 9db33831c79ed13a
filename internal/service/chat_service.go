package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "chatgen/backend/internal/errors"
	"chatgen/backend/internal/model"
	"chatgen/backend/internal/repository"
)

const defaultChatTitle = "New chat"

// Generator is the part of GenerationService the chat service drives.
type Generator interface {
	Start(ctx context.Context, chat *model.Chat, opts StartOptions) (int, error)
	Stop(ctx context.Context, chatID string) bool
	IsAnyPending(ctx context.Context, userID string) (bool, error)
	ForgetChat(chatID string)
}

type ChatService struct {
	repo      repository.Repository
	generator Generator
	logger    *slog.Logger
}

// SendMessageRequest is a new user turn. An empty ChatID creates a chat.
type SendMessageRequest struct {
	ChatID    string                   `json:"chat_id,omitempty" validate:"omitempty,uuid"`
	Text      string                   `json:"text" validate:"required_without=Files"`
	Files     []model.File             `json:"files,omitempty" validate:"max=10"`
	Model     string                   `json:"model,omitempty" validate:"max=200"`
	Temporary bool                     `json:"temporary,omitempty"`
	Options   *model.GenerationOptions `json:"options,omitempty"`
}

// EditMessageRequest replaces the user message at MessageIndex and drops
// everything after it.
type EditMessageRequest struct {
	MessageIndex int                      `json:"message_index" validate:"min=0"`
	Text         string                   `json:"text" validate:"required_without=Files"`
	Files        []model.File             `json:"files,omitempty" validate:"max=10"`
	Model        string                   `json:"model,omitempty" validate:"max=200"`
	Options      *model.GenerationOptions `json:"options,omitempty"`
}

// RegenerateRequest replaces the assistant message at MessageIndex, or the
// last message when it is nil.
type RegenerateRequest struct {
	MessageIndex *int                     `json:"message_index,omitempty" validate:"omitempty,min=0"`
	Model        string                   `json:"model,omitempty" validate:"max=200"`
	Options      *model.GenerationOptions `json:"options,omitempty"`
}

// GenerationStarted tells the caller where the reply will appear.
type GenerationStarted struct {
	Chat         *model.Chat `json:"chat"`
	MessageIndex int         `json:"message_index"`
}

func NewChatService(repo repository.Repository, generator Generator) *ChatService {
	return &ChatService{repo: repo, generator: generator, logger: slog.Default().With("component", "chat_service")}
}

func translateRepoErr(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// CreateChat creates an empty chat owned by userID.
func (s *ChatService) CreateChat(ctx context.Context, userID, title string, temporary bool) (*model.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultChatTitle
	}
	now := time.Now().UTC()
	chat := &model.Chat{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Temporary: temporary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateChat(ctx, chat); err != nil {
		return nil, fmt.Errorf("could not create chat: %w", err)
	}
	return chat, nil
}

// GetChat returns the chat if it exists and belongs to userID.
func (s *ChatService) GetChat(ctx context.Context, userID, chatID string) (*model.Chat, error) {
	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		return nil, translateRepoErr(err, "could not get chat")
	}
	if chat.UserID != userID {
		return nil, fmt.Errorf("chat %s: %w", chatID, apperrors.ErrNotFound)
	}
	return chat, nil
}

// ListChats retrieves the chats of a user, either active or archived.
func (s *ChatService) ListChats(ctx context.Context, userID string, archived bool) ([]*model.Chat, error) {
	return s.repo.GetChats(ctx, userID, archived)
}

// GetFullChat retrieves a chat's metadata and all its messages.
func (s *ChatService) GetFullChat(ctx context.Context, userID, chatID string) (*model.FullChat, error) {
	chat, err := s.GetChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	messages, err := s.repo.GetMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	return &model.FullChat{Chat: *chat, Messages: messages}, nil
}

// UpdateChatTitle handles the logic for manually updating a chat's title.
func (s *ChatService) UpdateChatTitle(ctx context.Context, userID, chatID, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
	}
	if _, err := s.GetChat(ctx, userID, chatID); err != nil {
		return err
	}
	s.logger.Info("Manually updating chat title", "chat_id", chatID)
	if err := s.repo.UpdateChatTitle(ctx, chatID, newTitle); err != nil {
		return translateRepoErr(err, "could not update title")
	}
	return nil
}

// SetArchived archives or restores a chat. A running generation is left alone.
func (s *ChatService) SetArchived(ctx context.Context, userID, chatID string, archived bool) error {
	if _, err := s.GetChat(ctx, userID, chatID); err != nil {
		return err
	}
	if err := s.repo.SetChatArchived(ctx, chatID, archived); err != nil {
		return translateRepoErr(err, "could not archive chat")
	}
	return nil
}

// DeleteChat stops the chat's generation, if any, and deletes the chat with
// all its messages. The stopped task finds its records gone and exits.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID string) error {
	if _, err := s.GetChat(ctx, userID, chatID); err != nil {
		return err
	}
	s.generator.Stop(ctx, chatID)
	s.logger.Info("Deleting chat", "chat_id", chatID)
	if err := s.repo.DeleteChat(ctx, chatID); err != nil {
		return translateRepoErr(err, "could not delete chat")
	}
	s.generator.ForgetChat(chatID)
	return nil
}

func (s *ChatService) ensureIdle(ctx context.Context, userID string) error {
	pending, err := s.generator.IsAnyPending(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not check pending chats: %w", err)
	}
	if pending {
		return apperrors.ErrAlreadyPending
	}
	return nil
}

// SendMessage stores a new user turn and starts the assistant reply. The turn
// is stored only if the reply starts.
func (s *ChatService) SendMessage(ctx context.Context, userID string, req *SendMessageRequest) (*GenerationStarted, error) {
	if strings.TrimSpace(req.Text) == "" && len(req.Files) == 0 {
		return nil, fmt.Errorf("%w: message is empty", apperrors.ErrValidation)
	}
	if err := s.ensureIdle(ctx, userID); err != nil {
		return nil, err
	}

	var chat *model.Chat
	var err error
	created := req.ChatID == ""
	if created {
		chat, err = s.CreateChat(ctx, userID, defaultChatTitle, req.Temporary)
	} else {
		chat, err = s.GetChat(ctx, userID, req.ChatID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	userMessage := &model.Message{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		Role:      model.RoleUser,
		Content:   req.Text,
		Files:     stampFiles(req.Files, now),
		CreatedAt: now,
		UpdatedAt: now,
	}

	index, err := s.generator.Start(ctx, chat, StartOptions{
		Model:         req.Model,
		GenerateTitle: true,
		Options:       req.Options,
		Turn:          repository.TurnChange{Append: userMessage},
	})
	if err != nil {
		if created {
			s.discardChat(ctx, chat.ID)
		}
		return nil, err
	}
	return &GenerationStarted{Chat: chat, MessageIndex: index}, nil
}

// EditMessage rewrites a user message, truncates the chat after it and
// starts a new reply.
func (s *ChatService) EditMessage(ctx context.Context, userID, chatID string, req *EditMessageRequest) (*GenerationStarted, error) {
	if err := s.ensureIdle(ctx, userID); err != nil {
		return nil, err
	}
	chat, err := s.GetChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	messages, err := s.repo.GetMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	if req.MessageIndex < 0 || req.MessageIndex >= len(messages) || messages[req.MessageIndex].Role != model.RoleUser {
		return nil, fmt.Errorf("%w: message %d is not a user message", apperrors.ErrValidation, req.MessageIndex)
	}

	truncateFrom := req.MessageIndex + 1
	index, err := s.generator.Start(ctx, chat, StartOptions{
		Model:         req.Model,
		GenerateTitle: true,
		Options:       req.Options,
		Turn: repository.TurnChange{
			Edit: &repository.MessageEdit{
				MessageID: messages[req.MessageIndex].ID,
				Content:   req.Text,
				Files:     stampFiles(req.Files, time.Now().UTC()),
			},
			TruncateFrom: &truncateFrom,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GenerationStarted{Chat: chat, MessageIndex: index}, nil
}

// Regenerate drops an assistant message and everything after it, then starts
// a new reply with a fresh seed.
func (s *ChatService) Regenerate(ctx context.Context, userID, chatID string, req *RegenerateRequest) (*GenerationStarted, error) {
	if err := s.ensureIdle(ctx, userID); err != nil {
		return nil, err
	}
	chat, err := s.GetChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	messages, err := s.repo.GetMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}

	position := len(messages) - 1
	if req.MessageIndex != nil {
		position = *req.MessageIndex
	}
	if position < 0 || position >= len(messages) || messages[position].Role != model.RoleAssistant {
		return nil, fmt.Errorf("%w: message %d is not an assistant message", apperrors.ErrValidation, position)
	}

	index, err := s.generator.Start(ctx, chat, StartOptions{
		Model:         req.Model,
		GenerateTitle: true,
		RandomizeSeed: true,
		Options:       req.Options,
		Turn:          repository.TurnChange{TruncateFrom: &position},
	})
	if err != nil {
		return nil, err
	}
	return &GenerationStarted{Chat: chat, MessageIndex: index}, nil
}

// discardChat drops a chat created for a turn that never started.
func (s *ChatService) discardChat(ctx context.Context, chatID string) {
	if err := s.repo.DeleteChat(context.WithoutCancel(ctx), chatID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("could not discard unused chat", "chat_id", chatID, "error", err)
	}
}

// GetPreferences returns the user's prompt preferences; missing ones are empty.
func (s *ChatService) GetPreferences(ctx context.Context, userID string) (*model.UserPreferences, error) {
	return s.repo.GetUserPreferences(ctx, userID)
}

func (s *ChatService) SavePreferences(ctx context.Context, userID string, prefs *model.UserPreferences) error {
	prefs.UserID = userID
	return s.repo.SaveUserPreferences(ctx, prefs)
}

// stampFiles assigns identifiers to incoming attachments.
func stampFiles(files []model.File, at time.Time) []model.File {
	out := make([]model.File, len(files))
	for i, f := range files {
		f.ID = uuid.NewString()
		f.CreatedAt = at
		if f.MimeType == "" {
			f.MimeType = "application/octet-stream"
		}
		out[i] = f
	}
	return out
}
