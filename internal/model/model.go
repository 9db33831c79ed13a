package model

import (
	"strings"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Chat stores metadata about a conversation.
type Chat struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Title            string    `json:"title"`
	PendingMessageID *string   `json:"pending_message_id,omitempty"` // Non-nil while a reply is being generated.
	Archived         bool      `json:"archived"`
	Temporary        bool      `json:"temporary"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsPending reports whether a generation is in flight for the chat.
func (c *Chat) IsPending() bool {
	return c.PendingMessageID != nil
}

// File is an attachment carried by a user message.
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	Data      []byte    `json:"data"` // base64 on the wire.
	CreatedAt time.Time `json:"created_at"`
}

// IsImage reports whether the file should be handed to the model as an image.
func (f *File) IsImage() bool {
	return strings.HasPrefix(f.MimeType, "image/")
}

// Message stores a single message in a chat.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Model     *string   `json:"model,omitempty"` // Model used for this specific message.
	Files     []File    `json:"files,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullChat includes the chat metadata and all its messages.
type FullChat struct {
	Chat
	Messages []Message `json:"messages"`
}

// UserPreferences feed the synthesized system prompt.
type UserPreferences struct {
	UserID             string `json:"-"`
	CustomInstructions string `json:"custom_instructions" validate:"max=4000"`
	Nickname           string `json:"nickname" validate:"max=100"`
	Occupation         string `json:"occupation" validate:"max=100"`
	About              string `json:"about" validate:"max=4000"`
}
