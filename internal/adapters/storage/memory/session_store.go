package memory

import (
	"context"
	"sync"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// SessionStore is an in-memory implementation of domain.SessionStore.
// Not persistent; suitable for development and tests.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.ValidationSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*domain.ValidationSession)}
}

func sessionKey(username, date string) string {
	return username + "|" + date
}

func (s *SessionStore) GetSession(_ context.Context, username, date string) (*domain.ValidationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionKey(username, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneSession(sess), nil
}

func (s *SessionStore) PutSession(_ context.Context, sess *domain.ValidationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionKey(sess.Username, sess.Date)] = cloneSession(sess)
	return nil
}

func (s *SessionStore) DeleteSession(_ context.Context, username, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionKey(username, date))
	return nil
}

func cloneSession(in *domain.ValidationSession) *domain.ValidationSession {
	out := *in
	out.Answers = append([]domain.Answer(nil), in.Answers...)
	if in.NextQuestion != nil {
		q := *in.NextQuestion
		q.Options = append([]string(nil), in.NextQuestion.Options...)
		out.NextQuestion = &q
	}
	if in.Result != nil {
		r := *in.Result
		out.Result = &r
	}
	if in.CompletedAt != nil {
		t := *in.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}
