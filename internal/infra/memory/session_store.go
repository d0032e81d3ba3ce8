package memory

import (
	"context"
	"sync"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

// SessionStore is an in-process implementation of app.SessionRepository.
// Sessions are lost on restart, which matches the pending-session contract.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]domain.PendingSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]domain.PendingSession),
	}
}

// Put stores the session for the user, overwriting any prior one.
func (s *SessionStore) Put(_ context.Context, userID int64, session domain.PendingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
	return nil
}

func (s *SessionStore) Get(_ context.Context, userID int64) (domain.PendingSession, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok, nil
}
