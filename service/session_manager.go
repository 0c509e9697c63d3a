package service

import (
	"sync"

	"github.com/google/uuid"

	"salestrack/models"
)

// SessionManager maps opaque tokens to authenticated sessions. Each caller
// carries its own token, so concurrent callers never share identity.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

// NewSessionManager creates an empty session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]models.Session)}
}

// Issue binds a new token to the given session and returns it
func (m *SessionManager) Issue(session models.Session) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = session
	m.mu.Unlock()
	return token
}

// Lookup resolves a token to its session. An unknown or empty token
// resolves to a guest session.
func (m *SessionManager) Lookup(token string) models.Session {
	if token == "" {
		return models.Session{}
	}
	m.mu.RLock()
	session := m.sessions[token]
	m.mu.RUnlock()
	return session
}

// Revoke removes a token. Revoking an unknown token is a no-op.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// RevokeUser removes every token bound to the given username
func (m *SessionManager) RevokeUser(username string) {
	m.mu.Lock()
	for token, session := range m.sessions {
		if session.Username == username {
			delete(m.sessions, token)
		}
	}
	m.mu.Unlock()
}
