package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "chatgen/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
// The live handler authenticates its own handshake, so it sits outside the
// bearer middleware and the request timeout.
func NewRouter(chatHandler *ChatHandler, modelHandler *ModelHandler, authenticate func(http.Handler) http.Handler, liveHandler http.Handler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// --- Public Routes ---

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		// Long-lived websocket; no timeout.
		r.Handle("/ws", liveHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			r.Use(authenticate)

			// --- Settings ---
			r.Get("/settings", chatHandler.GetSettings)
			r.Post("/settings", chatHandler.UpdateSettings)

			// --- Preferences ---
			r.Get("/preferences", chatHandler.GetPreferences)
			r.Put("/preferences", chatHandler.UpdatePreferences)

			// --- Models ---
			r.Get("/models", modelHandler.HandleListModels)

			// --- Chats ---
			r.Get("/chats", chatHandler.GetChats)
			r.Post("/chats", chatHandler.CreateChat)
			r.Get("/chats/pending", chatHandler.GetPendingChats)
			r.Post("/chats/stop", chatHandler.StopAll)
			r.Get("/chats/{chatID}", chatHandler.GetChat)
			r.Delete("/chats/{chatID}", chatHandler.DeleteChat)
			r.Put("/chats/{chatID}/title", chatHandler.UpdateChatTitle)
			r.Put("/chats/{chatID}/archive", chatHandler.ArchiveChat)

			// --- Generation ---
			r.Post("/chats/{chatID}/messages", chatHandler.SendMessage)
			r.Post("/chats/{chatID}/edit", chatHandler.EditMessage)
			r.Post("/chats/{chatID}/regenerate", chatHandler.Regenerate)
			r.Post("/chats/{chatID}/stop", chatHandler.StopChat)
		})
	})

	return r
}
