// The `_test` suffix creates a "black box" test package that can only reach
// the exported API of package api.
package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatgen/backend/internal/api"
	"chatgen/backend/internal/auth"
	app_errors "chatgen/backend/internal/errors"
	"chatgen/backend/internal/interfaces/mocks"
	"chatgen/backend/internal/model"
	"chatgen/backend/internal/service"
)

const (
	testUserID = "user-1"
	testChatID = "4f1c2b9e-8a53-4c1e-9a1f-2f6f2d7c0b11"
)

type chatHandlerMocks struct {
	chats      *mocks.MockChatService
	settings   *mocks.MockSettingsService
	generation *mocks.MockGenerationService
}

// setupChatHandler builds a handler over fresh mocks so each case only
// declares the calls it expects.
func setupChatHandler(t *testing.T) (*api.ChatHandler, chatHandlerMocks) {
	m := chatHandlerMocks{
		chats:      mocks.NewMockChatService(t),
		settings:   mocks.NewMockSettingsService(t),
		generation: mocks.NewMockGenerationService(t),
	}
	return api.NewChatHandler(m.chats, m.settings, m.generation), m
}

// newRequest simulates a request that already passed the auth middleware
// and, when params is non-nil, was routed by chi with URL parameters.
func newRequest(method, target, body string, params map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := auth.WithUserID(req.Context(), testUserID)
	if params != nil {
		chiCtx := chi.NewRouteContext()
		for key, value := range params {
			chiCtx.URLParams.Add(key, value)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, chiCtx)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

// TestChatHandler_GetSettings tests the GET /v1/settings endpoint.
func TestChatHandler_GetSettings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, m := setupChatHandler(t)
		m.settings.On("Get", mock.Anything).Return(&service.Settings{MainModel: "test", SupportModel: "test"}, nil).Once()

		// ACT
		rr := httptest.NewRecorder()
		handler.GetSettings(rr, newRequest(http.MethodGet, "/v1/settings", "", nil))

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"main_model":"test","support_model":"test"}`, rr.Body.String())
	})

	t.Run("Failure", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.settings.On("Get", mock.Anything).Return(nil, app_errors.ErrInternal).Once()

		rr := httptest.NewRecorder()
		handler.GetSettings(rr, newRequest(http.MethodGet, "/v1/settings", "", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

// TestChatHandler_UpdateSettings tests the POST /v1/settings endpoint.
func TestChatHandler_UpdateSettings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		expected := &service.Settings{MainModel: "llama3:8b", SupportModel: "qwen:0.5b"}
		m.settings.On("Save", mock.Anything, expected).Return(nil).Once()

		rr := httptest.NewRecorder()
		handler.UpdateSettings(rr, newRequest(http.MethodPost, "/v1/settings", `{"main_model":"llama3:8b","support_model":"qwen:0.5b"}`, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Missing field", func(t *testing.T) {
		// ARRANGE: no Save expectation; validation must stop the request first.
		handler, _ := setupChatHandler(t)

		rr := httptest.NewRecorder()
		handler.UpdateSettings(rr, newRequest(http.MethodPost, "/v1/settings", `{"main_model":"llama3:8b"}`, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Error, "SupportModel")
	})

	t.Run("Failure - Unknown model", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.settings.On("Save", mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: main model 'nope' is not available", app_errors.ErrValidation)).Once()

		rr := httptest.NewRecorder()
		handler.UpdateSettings(rr, newRequest(http.MethodPost, "/v1/settings", `{"main_model":"nope","support_model":"nope"}`, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Error, "not available")
	})
}

// TestChatHandler_GetChats tests the GET /v1/chats endpoint.
func TestChatHandler_GetChats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, m := setupChatHandler(t)
		expectedChats := []*model.Chat{{ID: "chat1", Title: "Test Chat"}}
		m.chats.On("ListChats", mock.Anything, testUserID, false).Return(expectedChats, nil).Once()

		// ACT
		rr := httptest.NewRecorder()
		handler.GetChats(rr, newRequest(http.MethodGet, "/v1/chats", "", nil))

		// ASSERT: the JSON body matches what the service returned.
		assert.Equal(t, http.StatusOK, rr.Code)
		var returnedChats []*model.Chat
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returnedChats))
		assert.Equal(t, expectedChats, returnedChats)
	})

	t.Run("Success - Archived", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("ListChats", mock.Anything, testUserID, true).Return([]*model.Chat{}, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetChats(rr, newRequest(http.MethodGet, "/v1/chats?archived=true", "", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Bad archived flag", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		rr := httptest.NewRecorder()
		handler.GetChats(rr, newRequest(http.MethodGet, "/v1/chats?archived=maybe", "", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Service returns error", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("ListChats", mock.Anything, testUserID, false).Return(nil, errors.New("internal error")).Once()

		rr := httptest.NewRecorder()
		handler.GetChats(rr, newRequest(http.MethodGet, "/v1/chats", "", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

// TestChatHandler_CreateChat tests the POST /v1/chats endpoint.
func TestChatHandler_CreateChat(t *testing.T) {
	handler, m := setupChatHandler(t)
	created := &model.Chat{ID: testChatID, UserID: testUserID, Title: "Trip", Temporary: true}
	m.chats.On("CreateChat", mock.Anything, testUserID, "Trip", true).Return(created, nil).Once()

	rr := httptest.NewRecorder()
	handler.CreateChat(rr, newRequest(http.MethodPost, "/v1/chats", `{"title":"Trip","temporary":true}`, nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	var chat model.Chat
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chat))
	assert.Equal(t, testChatID, chat.ID)
}

// TestChatHandler_GetChat tests the GET /v1/chats/{chatID} endpoint.
func TestChatHandler_GetChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		fullChat := &model.FullChat{Chat: model.Chat{ID: testChatID}, Messages: []model.Message{{Role: model.RoleUser, Content: "hi"}}}
		m.chats.On("GetFullChat", mock.Anything, testUserID, testChatID).Return(fullChat, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetChat(rr, newRequest(http.MethodGet, "/v1/chats/"+testChatID, "", map[string]string{"chatID": testChatID}))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Not found or foreign", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("GetFullChat", mock.Anything, testUserID, testChatID).Return(nil, app_errors.ErrNotFound).Once()

		rr := httptest.NewRecorder()
		handler.GetChat(rr, newRequest(http.MethodGet, "/v1/chats/"+testChatID, "", map[string]string{"chatID": testChatID}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// TestChatHandler_UpdateChatTitle tests the PUT /v1/chats/{chatID}/title endpoint.
func TestChatHandler_UpdateChatTitle(t *testing.T) {
	params := map[string]string{"chatID": testChatID}

	t.Run("Success", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("UpdateChatTitle", mock.Anything, testUserID, testChatID, "New Title").Return(nil).Once()

		rr := httptest.NewRecorder()
		handler.UpdateChatTitle(rr, newRequest(http.MethodPut, "/v1/chats/x/title", `{"title":"New Title"}`, params))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Empty title", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		rr := httptest.NewRecorder()
		handler.UpdateChatTitle(rr, newRequest(http.MethodPut, "/v1/chats/x/title", `{"title":""}`, params))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Malformed JSON", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		rr := httptest.NewRecorder()
		handler.UpdateChatTitle(rr, newRequest(http.MethodPut, "/v1/chats/x/title", `{"title":`, params))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

// TestChatHandler_ArchiveChat tests the PUT /v1/chats/{chatID}/archive endpoint.
func TestChatHandler_ArchiveChat(t *testing.T) {
	handler, m := setupChatHandler(t)
	m.chats.On("SetArchived", mock.Anything, testUserID, testChatID, true).Return(nil).Once()

	rr := httptest.NewRecorder()
	handler.ArchiveChat(rr, newRequest(http.MethodPut, "/v1/chats/x/archive", `{"archived":true}`, map[string]string{"chatID": testChatID}))

	assert.Equal(t, http.StatusOK, rr.Code)
}

// TestChatHandler_DeleteChat tests the DELETE /v1/chats/{chatID} endpoint.
func TestChatHandler_DeleteChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("DeleteChat", mock.Anything, testUserID, testChatID).Return(nil).Once()

		rr := httptest.NewRecorder()
		handler.DeleteChat(rr, newRequest(http.MethodDelete, "/v1/chats/x", "", map[string]string{"chatID": testChatID}))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("DeleteChat", mock.Anything, testUserID, testChatID).Return(app_errors.ErrNotFound).Once()

		rr := httptest.NewRecorder()
		handler.DeleteChat(rr, newRequest(http.MethodDelete, "/v1/chats/x", "", map[string]string{"chatID": testChatID}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// TestChatHandler_SendMessage tests the POST /v1/chats/{chatID}/messages endpoint.
func TestChatHandler_SendMessage(t *testing.T) {
	params := map[string]string{"chatID": testChatID}

	t.Run("Accepted", func(t *testing.T) {
		// ARRANGE: the chat ID comes from the path, not the body.
		handler, m := setupChatHandler(t)
		started := &service.GenerationStarted{Chat: &model.Chat{ID: testChatID}, MessageIndex: 1}
		m.chats.On("SendMessage", mock.Anything, testUserID, mock.MatchedBy(func(req *service.SendMessageRequest) bool {
			return req.ChatID == testChatID && req.Text == "Hello" && req.Model == "llama3:8b"
		})).Return(started, nil).Once()

		// ACT
		rr := httptest.NewRecorder()
		handler.SendMessage(rr, newRequest(http.MethodPost, "/v1/chats/x/messages", `{"text":"Hello","model":"llama3:8b"}`, params))

		// ASSERT
		assert.Equal(t, http.StatusAccepted, rr.Code)
		var resp service.GenerationStarted
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.MessageIndex)
	})

	t.Run("Conflict - Already pending", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("SendMessage", mock.Anything, testUserID, mock.Anything).Return(nil, app_errors.ErrAlreadyPending).Once()

		rr := httptest.NewRecorder()
		handler.SendMessage(rr, newRequest(http.MethodPost, "/v1/chats/x/messages", `{"text":"Hello"}`, params))

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "already_pending", decodeError(t, rr).Code)
	})

	t.Run("Failure - Empty message", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		rr := httptest.NewRecorder()
		handler.SendMessage(rr, newRequest(http.MethodPost, "/v1/chats/x/messages", `{"text":""}`, params))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

// TestChatHandler_EditMessage tests the POST /v1/chats/{chatID}/edit endpoint.
func TestChatHandler_EditMessage(t *testing.T) {
	handler, m := setupChatHandler(t)
	m.chats.On("EditMessage", mock.Anything, testUserID, testChatID, mock.MatchedBy(func(req *service.EditMessageRequest) bool {
		return req.MessageIndex == 2 && req.Text == "Try again"
	})).Return(&service.GenerationStarted{Chat: &model.Chat{ID: testChatID}, MessageIndex: 3}, nil).Once()

	rr := httptest.NewRecorder()
	handler.EditMessage(rr, newRequest(http.MethodPost, "/v1/chats/x/edit", `{"message_index":2,"text":"Try again"}`, map[string]string{"chatID": testChatID}))

	assert.Equal(t, http.StatusAccepted, rr.Code)
}

// TestChatHandler_Regenerate tests the POST /v1/chats/{chatID}/regenerate endpoint.
func TestChatHandler_Regenerate(t *testing.T) {
	params := map[string]string{"chatID": testChatID}

	t.Run("Accepted - Empty body regenerates the last reply", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("Regenerate", mock.Anything, testUserID, testChatID, mock.MatchedBy(func(req *service.RegenerateRequest) bool {
			return req.MessageIndex == nil
		})).Return(&service.GenerationStarted{Chat: &model.Chat{ID: testChatID}, MessageIndex: 1}, nil).Once()

		rr := httptest.NewRecorder()
		handler.Regenerate(rr, newRequest(http.MethodPost, "/v1/chats/x/regenerate", "", params))

		assert.Equal(t, http.StatusAccepted, rr.Code)
	})

	t.Run("Failure - Not an assistant message", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("Regenerate", mock.Anything, testUserID, testChatID, mock.Anything).
			Return(nil, fmt.Errorf("%w: message 0 is not an assistant message", app_errors.ErrValidation)).Once()

		rr := httptest.NewRecorder()
		handler.Regenerate(rr, newRequest(http.MethodPost, "/v1/chats/x/regenerate", `{"message_index":0}`, params))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

// TestChatHandler_StopChat tests the POST /v1/chats/{chatID}/stop endpoint.
func TestChatHandler_StopChat(t *testing.T) {
	params := map[string]string{"chatID": testChatID}

	t.Run("Stops an owned chat", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("GetChat", mock.Anything, testUserID, testChatID).Return(&model.Chat{ID: testChatID}, nil).Once()
		m.generation.On("Stop", mock.Anything, testChatID).Return(true).Once()

		rr := httptest.NewRecorder()
		handler.StopChat(rr, newRequest(http.MethodPost, "/v1/chats/x/stop", "", params))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"stopped":true}`, rr.Body.String())
	})

	t.Run("Idle chat is not an error", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("GetChat", mock.Anything, testUserID, testChatID).Return(&model.Chat{ID: testChatID}, nil).Once()
		m.generation.On("Stop", mock.Anything, testChatID).Return(false).Once()

		rr := httptest.NewRecorder()
		handler.StopChat(rr, newRequest(http.MethodPost, "/v1/chats/x/stop", "", params))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"stopped":false}`, rr.Body.String())
	})

	t.Run("Foreign chat is never stopped", func(t *testing.T) {
		// ASSERT relies on the mock: Stop has no expectation, so calling it fails the test.
		handler, m := setupChatHandler(t)
		m.chats.On("GetChat", mock.Anything, testUserID, testChatID).Return(nil, app_errors.ErrNotFound).Once()

		rr := httptest.NewRecorder()
		handler.StopChat(rr, newRequest(http.MethodPost, "/v1/chats/x/stop", "", params))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// TestChatHandler_StopAll tests the POST /v1/chats/stop endpoint.
func TestChatHandler_StopAll(t *testing.T) {
	handler, m := setupChatHandler(t)
	m.generation.On("StopAll", mock.Anything, testUserID).Return(2, nil).Once()

	rr := httptest.NewRecorder()
	handler.StopAll(rr, newRequest(http.MethodPost, "/v1/chats/stop", "", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"stopped":2}`, rr.Body.String())
}

// TestChatHandler_GetPendingChats tests the GET /v1/chats/pending endpoint.
func TestChatHandler_GetPendingChats(t *testing.T) {
	t.Run("Reconciles before listing", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		pendingID := "m1"
		reconciled := m.generation.On("Reconcile", mock.Anything, testUserID).Return(1, nil).Once()
		m.generation.On("PendingChats", mock.Anything, testUserID).
			Return([]*model.Chat{{ID: testChatID, PendingMessageID: &pendingID}}, nil).Once().
			NotBefore(reconciled)

		rr := httptest.NewRecorder()
		handler.GetPendingChats(rr, newRequest(http.MethodGet, "/v1/chats/pending", "", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var chats []*model.Chat
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chats))
		require.Len(t, chats, 1)
		assert.True(t, chats[0].IsPending())
	})

	t.Run("Failure", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.generation.On("Reconcile", mock.Anything, testUserID).Return(0, errors.New("db down")).Once()

		rr := httptest.NewRecorder()
		handler.GetPendingChats(rr, newRequest(http.MethodGet, "/v1/chats/pending", "", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

// TestChatHandler_Preferences tests the GET and PUT /v1/preferences endpoints.
func TestChatHandler_Preferences(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("GetPreferences", mock.Anything, testUserID).Return(&model.UserPreferences{Nickname: "Sam"}, nil).Once()

		rr := httptest.NewRecorder()
		handler.GetPreferences(rr, newRequest(http.MethodGet, "/v1/preferences", "", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"nickname":"Sam"`)
	})

	t.Run("Put", func(t *testing.T) {
		handler, m := setupChatHandler(t)
		m.chats.On("SavePreferences", mock.Anything, testUserID, mock.MatchedBy(func(p *model.UserPreferences) bool {
			return p.Occupation == "pilot"
		})).Return(nil).Once()

		rr := httptest.NewRecorder()
		handler.UpdatePreferences(rr, newRequest(http.MethodPut, "/v1/preferences", `{"occupation":"pilot"}`, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Put - Too long", func(t *testing.T) {
		handler, _ := setupChatHandler(t)
		body := fmt.Sprintf(`{"nickname":%q}`, strings.Repeat("n", 101))

		rr := httptest.NewRecorder()
		handler.UpdatePreferences(rr, newRequest(http.MethodPut, "/v1/preferences", body, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
