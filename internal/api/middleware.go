package api

import (
	"errors"
	"log/slog"
	"net/http"

	"chatgen/backend/internal/auth"
)

// TokenValidator resolves a bearer token to a user ID.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// Authenticate validates the bearer token and stores the user ID in the
// request context.
func Authenticate(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				respondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Authorization header required"})
				return
			}

			userID, err := tokens.ValidateToken(token)
			if err != nil {
				message := "Invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					message = "Token expired"
				}
				slog.Debug("rejected bearer token", "error", err)
				respondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Error: message})
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

// userIDFrom returns the authenticated user. Routes are mounted behind
// Authenticate, so a missing ID is a wiring bug.
func userIDFrom(r *http.Request) string {
	userID, _ := auth.UserIDFromContext(r.Context())
	return userID
}
