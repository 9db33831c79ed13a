package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"

	"chatgen/backend/internal/broadcast"
	apperrors "chatgen/backend/internal/errors"
	"chatgen/backend/internal/model"
	"chatgen/backend/internal/service"
)

// Control frame payloads are capped at 125 bytes, two of which hold the code.
const maxCloseReason = 123

// closeError ends a connection with a websocket close code.
type closeError struct {
	code   int
	reason string
}

func (e *closeError) Error() string {
	return fmt.Sprintf("close %d: %s", e.code, e.reason)
}

func policyViolation(format string, args ...any) *closeError {
	return &closeError{code: ClosePolicyViolation, reason: fmt.Sprintf(format, args...)}
}

// connection is one authenticated client. Reads happen on the serving
// goroutine; all writes go through writeMu.
type connection struct {
	h      *Handler
	conn   *websocket.Conn
	userID string
	sub    *broadcast.Subscriber
	logger *slog.Logger

	// ctx outlives the HTTP request but ends with the connection.
	ctx    context.Context
	cancel context.CancelFunc

	writeMu sync.Mutex

	groupMu sync.Mutex
	chatID  string
}

func newConnection(parent context.Context, h *Handler, conn *websocket.Conn, userID string) *connection {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	return &connection{
		h:      h,
		conn:   conn,
		userID: userID,
		sub:    broadcast.NewSubscriber(bufferSize),
		logger: h.logger.With("user_id", userID),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *connection) run(chatID string) {
	if chatID != "" {
		c.switchChat(chatID)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeLoop()
	}()

	c.readLoop()

	c.leave()
	c.sub.Close()
	c.cancel()
	_ = c.conn.Close()
	wg.Wait()
}

// switchChat moves the connection to chatID's broadcast group.
func (c *connection) switchChat(chatID string) {
	c.groupMu.Lock()
	defer c.groupMu.Unlock()
	if c.chatID == chatID {
		return
	}
	if c.chatID != "" {
		c.h.hub.Leave(c.chatID, c.sub)
	}
	c.h.hub.Join(chatID, c.sub)
	c.chatID = chatID
}

func (c *connection) leave() {
	c.groupMu.Lock()
	defer c.groupMu.Unlock()
	if c.chatID != "" {
		c.h.hub.Leave(c.chatID, c.sub)
		c.chatID = ""
	}
}

func (c *connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev := <-c.sub.Events():
			if err := c.writeJSON(ev); err != nil {
				c.logger.Debug("event write failed", "error", err)
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			c.writeMu.Lock()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				_ = c.conn.Close()
				return
			}
		case <-c.sub.Closed():
			return
		}
	}
}

func (c *connection) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *connection) closeWith(e *closeError) {
	c.logger.Info("closing live connection", "code", e.code, "reason", e.reason)
	reason := clipCloseReason(e.reason)
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(e.code, reason), time.Now().Add(writeWait))
}

// clipCloseReason fits reason into a close frame without splitting a rune.
func clipCloseReason(reason string) string {
	if len(reason) <= maxCloseReason {
		return reason
	}
	cut := maxCloseReason
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}

func (c *connection) readLoop() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("live connection read failed", "error", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		if msgType != websocket.TextMessage {
			c.closeWith(policyViolation("text frames only"))
			return
		}
		var action model.Action
		if err := json.Unmarshal(data, &action); err != nil {
			c.closeWith(policyViolation("malformed action"))
			return
		}
		if err := c.h.validate.Struct(&action); err != nil {
			c.closeWith(policyViolation("invalid action: %v", err))
			return
		}

		if cerr := c.handle(&action); cerr != nil {
			c.closeWith(cerr)
			return
		}
	}
}

// handle processes one validated action. A non-nil result closes the
// connection.
func (c *connection) handle(action *model.Action) *closeError {
	if _, err := c.h.generation.Reconcile(c.ctx, c.userID); err != nil {
		c.logger.Warn("pending reconciliation failed", "error", err)
	}

	if action.Action == model.ActionStopMessage {
		return c.stop(action)
	}

	pending, err := c.h.generation.IsAnyPending(c.ctx, c.userID)
	if err != nil {
		c.logger.Error("could not check pending chats", "error", err)
		return &closeError{code: websocket.CloseInternalServerErr, reason: "internal error"}
	}
	if pending {
		return &closeError{code: CloseAlreadyPending, reason: "a generation is already pending"}
	}

	switch action.Action {
	case model.ActionNewMessage:
		return c.newMessage(action)
	case model.ActionEditMessage:
		return c.editMessage(action)
	case model.ActionRegenerateMessage:
		return c.regenerateMessage(action)
	default:
		return policyViolation("unknown action %q", action.Action)
	}
}

func (c *connection) stop(action *model.Action) *closeError {
	if action.ChatUUID == "" {
		if _, err := c.h.generation.StopAll(c.ctx, c.userID); err != nil {
			c.logger.Warn("stop all failed", "error", err)
		}
		return nil
	}
	if _, err := c.h.chats.GetChat(c.ctx, c.userID, action.ChatUUID); err != nil {
		return c.serviceError(err)
	}
	c.h.generation.Stop(c.ctx, action.ChatUUID)
	return nil
}

func (c *connection) newMessage(action *model.Action) *closeError {
	chatID := action.ChatUUID
	if chatID == "" {
		chat, err := c.h.chats.CreateChat(c.ctx, c.userID, "", action.Temporary)
		if err != nil {
			return c.serviceError(err)
		}
		chatID = chat.ID
	} else if _, err := c.h.chats.GetChat(c.ctx, c.userID, chatID); err != nil {
		return c.serviceError(err)
	}

	// Join before starting so no token is published to a group we are not in.
	c.switchChat(chatID)
	_, err := c.h.chats.SendMessage(c.ctx, c.userID, &service.SendMessageRequest{
		ChatID:    chatID,
		Text:      action.Text,
		Files:     action.Files,
		Model:     action.Model,
		Temporary: action.Temporary,
		Options:   action.Options,
	})
	return c.serviceError(err)
}

func (c *connection) editMessage(action *model.Action) *closeError {
	if action.ChatUUID == "" || action.MessageIndex == nil {
		return policyViolation("edit_message requires chat_uuid and message_index")
	}
	if _, err := c.h.chats.GetChat(c.ctx, c.userID, action.ChatUUID); err != nil {
		return c.serviceError(err)
	}
	c.switchChat(action.ChatUUID)
	_, err := c.h.chats.EditMessage(c.ctx, c.userID, action.ChatUUID, &service.EditMessageRequest{
		MessageIndex: *action.MessageIndex,
		Text:         action.Text,
		Files:        action.Files,
		Model:        action.Model,
		Options:      action.Options,
	})
	return c.serviceError(err)
}

func (c *connection) regenerateMessage(action *model.Action) *closeError {
	if action.ChatUUID == "" {
		return policyViolation("regenerate_message requires chat_uuid")
	}
	if _, err := c.h.chats.GetChat(c.ctx, c.userID, action.ChatUUID); err != nil {
		return c.serviceError(err)
	}
	c.switchChat(action.ChatUUID)
	_, err := c.h.chats.Regenerate(c.ctx, c.userID, action.ChatUUID, &service.RegenerateRequest{
		MessageIndex: action.MessageIndex,
		Model:        action.Model,
		Options:      action.Options,
	})
	return c.serviceError(err)
}

// serviceError maps a service error to a close, or reports it in-band when
// the connection can stay usable.
func (c *connection) serviceError(err error) *closeError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrAlreadyPending):
		return &closeError{code: CloseAlreadyPending, reason: "a generation is already pending"}
	case errors.Is(err, apperrors.ErrNotFound):
		return policyViolation("unknown chat")
	case errors.Is(err, apperrors.ErrValidation):
		return policyViolation("%v", err)
	default:
		c.logger.Error("live action failed", "error", err)
		if werr := c.writeJSON(model.NewErrorEvent("request failed")); werr != nil {
			return &closeError{code: websocket.CloseInternalServerErr, reason: "internal error"}
		}
		return nil
	}
}
