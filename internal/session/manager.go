// Package session keeps logged-in sessions in memory for the duration of a
// browser session. Sessions are created at login, destroyed at logout, and
// intentionally lost on restart: nothing here is persisted.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// Manager maps opaque bearer tokens to live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]models.Session)}
}

// Create stores the session and returns its bearer token.
func (m *Manager) Create(s models.Session) string {
	token := uuid.New().String()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = s
	return token
}

// Get returns the session for token, if it exists.
func (m *Manager) Get(token string) (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

// Destroy removes the session for token. Destroying an unknown token is a
// no-op.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
