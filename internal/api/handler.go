package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "chatgen/backend/internal/errors"
	"chatgen/backend/internal/interfaces"
	"chatgen/backend/internal/model"
	"chatgen/backend/internal/service"
)

// ChatHandler serves the chat, settings and generation control endpoints.
// Streaming happens over the live websocket; endpoints that start a reply
// return 202 with the position of the message being generated.
type ChatHandler struct {
	chats      interfaces.ChatService
	settings   interfaces.SettingsService
	generation interfaces.GenerationService
}

func NewChatHandler(chats interfaces.ChatService, settings interfaces.SettingsService, generation interfaces.GenerationService) *ChatHandler {
	return &ChatHandler{chats: chats, settings: settings, generation: generation}
}

// GetSettings godoc
// @Summary      Get application settings
// @Description  Retrieves the current global application settings.
// @Tags         Settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.Settings
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/settings [get]
func (h *ChatHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary      Update application settings
// @Description  Updates the main and support models. Both must be available in Ollama.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        settings  body      service.Settings  true  "New settings"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /v1/settings [post]
func (h *ChatHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings service.Settings
	if err := decodeAndValidate(r, &settings); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.settings.Save(r.Context(), &settings); err != nil {
		respondWithError(w, err)
		return
	}
	slog.Info("Settings updated", "main_model", settings.MainModel, "support_model", settings.SupportModel)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// GetPreferences godoc
// @Summary      Get user preferences
// @Description  Returns the personalisation fields that feed the system prompt.
// @Tags         Preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.UserPreferences
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/preferences [get]
func (h *ChatHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.chats.GetPreferences(r.Context(), userIDFrom(r))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences godoc
// @Summary      Update user preferences
// @Tags         Preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        preferences  body      model.UserPreferences  true  "Preferences"
// @Success      200          {object}  StatusResponse
// @Failure      400          {object}  ErrorResponse
// @Router       /v1/preferences [put]
func (h *ChatHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs model.UserPreferences
	if err := decodeAndValidate(r, &prefs); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.chats.SavePreferences(r.Context(), userIDFrom(r), &prefs); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// GetChats godoc
// @Summary      List chats
// @Description  Lists the caller's chats, newest first. Pending chats carry pending_message_id.
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        archived  query     bool  false  "List archived chats instead"
// @Success      200       {array}   model.Chat
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /v1/chats [get]
func (h *ChatHandler) GetChats(w http.ResponseWriter, r *http.Request) {
	archived := false
	if raw := r.URL.Query().Get("archived"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, fmt.Errorf("%w: archived must be true or false", app_errors.ErrValidation))
			return
		}
		archived = parsed
	}

	chats, err := h.chats.ListChats(r.Context(), userIDFrom(r), archived)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, chats)
}

// CreateChat godoc
// @Summary      Create an empty chat
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chat  body      CreateChatRequest  true  "Chat"
// @Success      201   {object}  model.Chat
// @Failure      400   {object}  ErrorResponse
// @Router       /v1/chats [post]
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	chat, err := h.chats.CreateChat(r.Context(), userIDFrom(r), req.Title, req.Temporary)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, chat)
}

// GetChat godoc
// @Summary      Get a chat with its messages
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        chatID  path      string  true  "Chat ID"
// @Success      200     {object}  model.FullChat
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/chats/{chatID} [get]
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	fullChat, err := h.chats.GetFullChat(r.Context(), userIDFrom(r), chi.URLParam(r, "chatID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, fullChat)
}

// UpdateChatTitle godoc
// @Summary      Rename a chat
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatID  path      string              true  "Chat ID"
// @Param        title   body      UpdateTitleRequest  true  "New title"
// @Success      200     {object}  StatusResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/title [put]
func (h *ChatHandler) UpdateChatTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.chats.UpdateChatTitle(r.Context(), userIDFrom(r), chi.URLParam(r, "chatID"), req.Title); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ArchiveChat godoc
// @Summary      Archive or restore a chat
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatID   path      string          true  "Chat ID"
// @Param        archive  body      ArchiveRequest  true  "Archive flag"
// @Success      200      {object}  StatusResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/archive [put]
func (h *ChatHandler) ArchiveChat(w http.ResponseWriter, r *http.Request) {
	var req ArchiveRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.chats.SetArchived(r.Context(), userIDFrom(r), chi.URLParam(r, "chatID"), req.Archived); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// DeleteChat godoc
// @Summary      Delete a chat
// @Description  Stops any running generation for the chat, then deletes it with its messages.
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        chatID  path      string  true  "Chat ID"
// @Success      200     {object}  StatusResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/chats/{chatID} [delete]
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	if err := h.chats.DeleteChat(r.Context(), userIDFrom(r), chi.URLParam(r, "chatID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Appends a user message and starts generating the reply. Tokens are delivered over the live websocket.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatID   path      string                      true  "Chat ID"
// @Param        message  body      service.SendMessageRequest  true  "Message"
// @Success      202      {object}  service.GenerationStarted
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse "A reply is already being generated for this user"
// @Router       /v1/chats/{chatID}/messages [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req service.SendMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	req.ChatID = chi.URLParam(r, "chatID")

	started, err := h.chats.SendMessage(r.Context(), userIDFrom(r), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, started)
}

// EditMessage godoc
// @Summary      Edit a user message
// @Description  Replaces the user message at message_index, drops everything after it and regenerates the reply.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatID   path      string                      true  "Chat ID"
// @Param        message  body      service.EditMessageRequest  true  "Edit"
// @Success      202      {object}  service.GenerationStarted
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/edit [post]
func (h *ChatHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	var req service.EditMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	started, err := h.chats.EditMessage(r.Context(), userIDFrom(r), chi.URLParam(r, "chatID"), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, started)
}

// Regenerate godoc
// @Summary      Regenerate a reply
// @Description  Regenerates the assistant message at message_index, or the last one, with a fresh seed.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatID   path      string                     true   "Chat ID"
// @Param        request  body      service.RegenerateRequest  false  "Regenerate options"
// @Success      202      {object}  service.GenerationStarted
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/regenerate [post]
func (h *ChatHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	var req service.RegenerateRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(r, &req); err != nil {
			respondWithError(w, err)
			return
		}
	}
	started, err := h.chats.Regenerate(r.Context(), userIDFrom(r), chi.URLParam(r, "chatID"), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, started)
}

// StopChat godoc
// @Summary      Stop generation in a chat
// @Description  Signals the running generation to stop. Stopping an idle chat is not an error.
// @Tags         Generation
// @Produce      json
// @Security     BearerAuth
// @Param        chatID  path      string  true  "Chat ID"
// @Success      200     {object}  StopResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/stop [post]
func (h *ChatHandler) StopChat(w http.ResponseWriter, r *http.Request) {
	chat, err := h.chats.GetChat(r.Context(), userIDFrom(r), chi.URLParam(r, "chatID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StopResponse{Stopped: h.generation.Stop(r.Context(), chat.ID)})
}

// StopAll godoc
// @Summary      Stop every generation of the caller
// @Tags         Generation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StopAllResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/chats/stop [post]
func (h *ChatHandler) StopAll(w http.ResponseWriter, r *http.Request) {
	stopped, err := h.generation.StopAll(r.Context(), userIDFrom(r))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StopAllResponse{Stopped: stopped})
}

// GetPendingChats godoc
// @Summary      List chats with a reply in progress
// @Description  Reconciles stale pending markers first, so the result only lists live generations.
// @Tags         Generation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Chat
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/chats/pending [get]
func (h *ChatHandler) GetPendingChats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if _, err := h.generation.Reconcile(r.Context(), userID); err != nil {
		respondWithError(w, err)
		return
	}
	chats, err := h.generation.PendingChats(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, chats)
}
