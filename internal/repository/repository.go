package repository

import (
	"context"

	"chatgen/backend/internal/model"
)

// Repository defines the interface for data storage operations.
//
// Every operation touching pending_message_id is a single statement or a
// single transaction against current storage state, so callers never act on
// a cached copy of the chat.
type Repository interface {
	CreateChat(ctx context.Context, chat *model.Chat) error
	GetChat(ctx context.Context, chatID string) (*model.Chat, error)
	GetChats(ctx context.Context, userID string, archived bool) ([]*model.Chat, error)
	UpdateChatTitle(ctx context.Context, chatID, newTitle string) error
	SetChatArchived(ctx context.Context, chatID string, archived bool) error
	DeleteChat(ctx context.Context, chatID string) error

	AddMessage(ctx context.Context, message *model.Message) error
	GetMessages(ctx context.Context, chatID string) ([]model.Message, error)
	UpdateMessageContent(ctx context.Context, messageID, content string, files []model.File) error
	// DeleteMessagesFrom removes the message at position and everything after it.
	DeleteMessagesFrom(ctx context.Context, chatID string, position int) error
	CountAssistantMessages(ctx context.Context, chatID string) (int, error)

	// BeginGeneration applies turn, inserts the empty assistant message and
	// points the chat's pending_message_id at it, all in one transaction. It
	// returns ErrConflict when any chat of userID is already pending, in which
	// case nothing is written. The int is the zero-based position of the new
	// message.
	BeginGeneration(ctx context.Context, userID string, turn TurnChange, message *model.Message) (int, error)
	// AppendMessageContent appends a streamed fragment. ErrNotFound means the
	// message was deleted underneath the caller.
	AppendMessageContent(ctx context.Context, messageID, fragment string) error
	// ClearPendingMessage resets pending_message_id only while it still points at
	// messageID. A missing chat is not an error.
	ClearPendingMessage(ctx context.Context, chatID, messageID string) (bool, error)
	GetPendingChats(ctx context.Context, userID string) ([]*model.Chat, error)
	HasPendingChats(ctx context.Context, userID string) (bool, error)
	// ClearAllPending drops every pending reference; used at startup when no
	// task can be alive.
	ClearAllPending(ctx context.Context) (int64, error)

	GetUserPreferences(ctx context.Context, userID string) (*model.UserPreferences, error)
	SaveUserPreferences(ctx context.Context, prefs *model.UserPreferences) error
}

// TurnChange is the history edit that goes with claiming a chat for a new
// reply. The zero value changes nothing.
type TurnChange struct {
	// Edit rewrites an existing message. Applied first.
	Edit *MessageEdit
	// TruncateFrom deletes the message at this position and everything after it.
	TruncateFrom *int
	// Append is a user message stored right before the reply.
	Append *model.Message
}

type MessageEdit struct {
	MessageID string
	Content   string
	// Files replaces the attachments when non-nil.
	Files []model.File
}
