package model

// Broadcast event types delivered to live subscribers.
const (
	EventToken   = "token"
	EventMessage = "message"
	EventTitle   = "title"
	EventEnd     = "end"
	EventError   = "error"
)

// Event is one item published to a chat's broadcast group. Only the fields
// relevant to the event type are serialized.
type Event struct {
	Type         string  `json:"type"`
	Token        *string `json:"token,omitempty"`
	Message      *string `json:"message,omitempty"`
	MessageIndex *int    `json:"message_index,omitempty"`
	Title        *string `json:"title,omitempty"`
	Error        *string `json:"error,omitempty"`
}

func NewTokenEvent(token string, index int) Event {
	return Event{Type: EventToken, Token: &token, MessageIndex: &index}
}

func NewMessageEvent(message string, index int) Event {
	return Event{Type: EventMessage, Message: &message, MessageIndex: &index}
}

func NewTitleEvent(title string) Event {
	return Event{Type: EventTitle, Title: &title}
}

func NewEndEvent() Event {
	return Event{Type: EventEnd}
}

func NewErrorEvent(msg string) Event {
	return Event{Type: EventError, Error: &msg}
}

// Inbound live actions.
const (
	ActionNewMessage        = "new_message"
	ActionEditMessage       = "edit_message"
	ActionRegenerateMessage = "regenerate_message"
	ActionStopMessage       = "stop_message"
)

// GenerationOptions are the user-tunable sampling options. Nil fields fall
// back to defaults.
type GenerationOptions struct {
	NumPredict  *int     `json:"num_predict,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	Seed        *int     `json:"seed,omitempty"`
}

// Action is a message sent by a live client.
type Action struct {
	Action       string             `json:"action" validate:"required,oneof=new_message edit_message regenerate_message stop_message"`
	ChatUUID     string             `json:"chat_uuid,omitempty" validate:"omitempty,uuid"`
	Model        string             `json:"model,omitempty" validate:"max=200"`
	Text         string             `json:"text,omitempty"`
	Files        []File             `json:"files,omitempty" validate:"max=10"`
	MessageIndex *int               `json:"message_index,omitempty" validate:"omitempty,min=0"`
	Temporary    bool               `json:"temporary,omitempty"`
	Options      *GenerationOptions `json:"options,omitempty"`
}
