// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionStore looks up live sessions by bearer token.
type SessionStore interface {
	Get(token string) (models.Session, bool)
}

// SessionAuth enforces bearer-token session authentication.
//
// It extracts the token from the Authorization header, resolves it against
// the session store and places the resulting session in the request
// context, where it serves as the caller's identity downstream. Requests
// without a valid token are rejected.
func SessionAuth(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				http.Error(w, "no session token provided", http.StatusUnauthorized)
				return
			}
			session, ok := store.Get(token)
			if !ok {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// WithSession returns a context carrying the given session, as set by
// SessionAuth for authenticated requests.
func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSessionFromContext extracts the authenticated session from the request
// context. Returns false if no session is present.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(models.Session)
	return s, ok
}
