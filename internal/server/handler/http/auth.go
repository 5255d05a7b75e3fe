// Package http provides HTTP handlers for portal login, registration
// management and the AI assistant.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lolocuentaps32/fanscopa/internal/models"
	"github.com/lolocuentaps32/fanscopa/internal/service"
)

// AuthService defines the login operation required by the AuthHandler.
type AuthService interface {
	// Login resolves email/dni credentials into a session.
	Login(ctx context.Context, email, dni string) (models.Session, error)
}

// SessionManager mints and revokes session tokens.
type SessionManager interface {
	// Create stores the session and returns its bearer token.
	Create(s models.Session) string
	// Destroy removes the session for token.
	Destroy(token string)
}

// AuthHandler handles HTTP requests for login and logout.
type AuthHandler struct {
	// AuthService performs the underlying credential resolution.
	AuthService AuthService
	// Sessions holds live sessions between login and logout.
	Sessions SessionManager
}

// LoginRequest represents the JSON payload for a login attempt.
type LoginRequest struct {
	// Email is the applicant's or administrator's address.
	Email string `json:"email"`
	// DNI optionally identifies the applicant's registration.
	DNI string `json:"dni"`
}

// Login handles POST /api/login requests.
// It expects a JSON body with an email and/or a DNI, resolves them into a
// session and responds with the session and its bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" && req.DNI == "" {
		http.Error(w, "email or dni is required", http.StatusBadRequest)
		return
	}

	sess, err := h.AuthService.Login(r.Context(), req.Email, req.DNI)
	if err != nil {
		if errors.Is(err, service.ErrNoRegistration) {
			http.Error(w, "no registration matches these credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token := h.Sessions.Create(sess)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token":   token,
		"session": sess,
	})
}

// Logout handles POST /api/logout requests, destroying the bearer token's
// session. Logout with an unknown token still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token != "" {
		h.Sessions.Destroy(token)
	}
	w.WriteHeader(http.StatusNoContent)
}
