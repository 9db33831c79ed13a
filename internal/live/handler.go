// Package live serves the websocket connection a client keeps open while it
// views a chat. Each connection relays user actions to the services and
// forwards the chat's broadcast events to the client.
package live

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"chatgen/backend/internal/auth"
	"chatgen/backend/internal/broadcast"
	apperrors "chatgen/backend/internal/errors"
	"chatgen/backend/internal/interfaces"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 32 << 20
	bufferSize     = 256
)

// Close codes sent to the client.
const (
	ClosePolicyViolation = websocket.ClosePolicyViolation
	CloseAlreadyPending  = 4009
)

// TokenValidator resolves a bearer token to a user ID.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// Handler upgrades authenticated requests to live connections.
type Handler struct {
	tokens     TokenValidator
	chats      interfaces.ChatService
	generation interfaces.GenerationService
	hub        *broadcast.Hub
	validate   *validator.Validate
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

func NewHandler(
	tokens TokenValidator,
	chats interfaces.ChatService,
	generation interfaces.GenerationService,
	hub *broadcast.Hub,
	validate *validator.Validate,
	allowedOrigins []string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		tokens:     tokens,
		chats:      chats,
		generation: generation,
		hub:        hub,
		validate:   validate,
		logger:     logger.With("component", "live"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

// checkOrigin allows any origin when the list is empty. Requests without an
// Origin header come from non-browser clients and are allowed.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

// ServeHTTP authenticates the handshake, checks the optional chat_uuid and
// runs the connection until the client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := h.tokens.ValidateToken(auth.TokenFromRequest(r))
	if err != nil {
		writeHTTPError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	chatID := r.URL.Query().Get("chat_uuid")
	if chatID != "" {
		if _, err := h.chats.GetChat(r.Context(), userID, chatID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				writeHTTPError(w, http.StatusNotFound, "chat not found")
				return
			}
			h.logger.Error("could not verify chat for live connection", "chat_id", chatID, "error", err)
			writeHTTPError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := newConnection(r.Context(), h, conn, userID)
	c.logger.Debug("live connection opened")
	c.run(chatID)
	c.logger.Debug("live connection closed")
}

func writeHTTPError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
