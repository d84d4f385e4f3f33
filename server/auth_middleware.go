package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrsteele09/go-session-service/auth"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUser stores the authenticated token payload
const ContextKeyUser ContextKey = "user"

// RequireToken is middleware that runs the bearer-token state machine for
// the request. With consume=true a successfully verified token is recorded
// as used; the exempt polling route passes consume=false.
func (s *Server) RequireToken(consume bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			payload, err := s.sessions.Authenticate(r.Header.Get("Authorization"), consume)
			if err != nil {
				respondAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, payload)
			next(w, r.WithContext(ctx))
		}
	}
}

// respondAuthError maps the authentication error taxonomy onto HTTP
// statuses: 401 for missing/expired, 403 for replay and invalid signature.
func respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.MissingTokenErr):
		respondError(w, http.StatusUnauthorized, "Unauthorized: Missing token")
	case errors.Is(err, auth.TokenExpiredErr):
		respondError(w, http.StatusUnauthorized, "Unauthorized: Token expired")
	case errors.Is(err, auth.TokenAlreadyUsedErr):
		respondError(w, http.StatusForbidden, "Forbidden: Token has already been used")
	default:
		respondError(w, http.StatusForbidden, "Forbidden: Invalid token")
	}
}
