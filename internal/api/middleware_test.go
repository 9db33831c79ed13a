package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatgen/backend/internal/api"
	"chatgen/backend/internal/auth"
	"chatgen/backend/internal/interfaces/mocks"
)

func TestAuthenticate(t *testing.T) {
	tokens, err := auth.NewTokenService(strings.Repeat("k", 32))
	require.NoError(t, err)

	var seenUser string
	protected := api.Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = auth.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("Valid bearer token", func(t *testing.T) {
		token, err := tokens.GenerateToken(testUserID, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, testUserID, seenUser)
	})

	t.Run("Missing token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Expired token", func(t *testing.T) {
		token, err := tokens.GenerateToken(testUserID, -time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token expired")
	})

	t.Run("Forged token", func(t *testing.T) {
		other, err := auth.NewTokenService(strings.Repeat("x", 32))
		require.NoError(t, err)
		token, err := other.GenerateToken(testUserID, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestNewRouter(t *testing.T) {
	tokens, err := auth.NewTokenService(strings.Repeat("k", 32))
	require.NoError(t, err)

	chatHandler := api.NewChatHandler(mocks.NewMockChatService(t), mocks.NewMockSettingsService(t), mocks.NewMockGenerationService(t))
	modelHandler := api.NewModelHandler(mocks.NewMockModelService(t))
	live := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	router := api.NewRouter(chatHandler, modelHandler, api.Authenticate(tokens), live)

	t.Run("Health check is public", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Websocket bypasses bearer middleware", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	})

	t.Run("API routes require a token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/chats/stop", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
