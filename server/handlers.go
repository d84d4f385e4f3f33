package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-service/auth"
)

const contentTypeJSON = "application/json; charset=utf-8"

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signedToken, err := s.sessions.Login()
		if err != nil {
			log.Error().Err(err).Msg("login failed")
			respondError(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"token": signedToken})
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := auth.BearerToken(r.Header.Get("Authorization"))
		if raw == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized: Missing token")
			return
		}

		signedToken, err := s.sessions.Refresh(raw)
		if err != nil {
			switch {
			case errors.Is(err, auth.RefreshNotEligibleErr):
				respondError(w, http.StatusBadRequest, "Token not eligible for refresh")
			case errors.Is(err, auth.InvalidTokenErr):
				respondError(w, http.StatusForbidden, "Forbidden: Invalid token")
			default:
				log.Error().Err(err).Msg("refresh failed")
				respondError(w, http.StatusInternalServerError, "Failed to refresh token")
			}
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"token": signedToken})
	}
}

func (s *Server) ProtectedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, _ := r.Context().Value(ContextKeyUser).(jwt.MapClaims)
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Access granted to protected resource",
			"user":    payload,
		})
	}
}

func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.buildInfo.Load(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		version := fmt.Sprintf("%s-%s", snapshot.Metadata.Version, s.config.GetBuildNumber())
		respondJSON(w, http.StatusOK, map[string][]map[string]string{
			"my-application": {
				{
					"description": snapshot.Metadata.Description,
					"version":     version,
					"sha":         snapshot.Revision,
				},
			},
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError logs the message server-side before answering the client.
func respondError(w http.ResponseWriter, status int, message string) {
	log.Error().Int("status", status).Msg(message)
	respondJSON(w, status, map[string]string{"error": message})
}
