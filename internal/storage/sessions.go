// Package storage keeps active login sessions in memory.
package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"bookshelf/internal/models"
)

// SessionStore maps opaque tokens to authenticated sessions.
type SessionStore struct {
	sessions map[string]*models.LoginSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.LoginSession),
	}
}

// Create mints a new session for the given username.
func (s *SessionStore) Create(username string) *models.LoginSession {
	session := &models.LoginSession{
		Token:     uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return session
}

func (s *SessionStore) Get(token string) (*models.LoginSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[token]
	return session, exists
}

func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
