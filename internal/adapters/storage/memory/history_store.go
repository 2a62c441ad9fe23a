package memory

import (
	"context"
	"sync"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// HistoryStore is an in-memory implementation of domain.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.EmotionHistoryRecord
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

func (s *HistoryStore) AppendHistory(_ context.Context, rec *domain.EmotionHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, *rec)
	return nil
}

// Records returns a snapshot, used by tests.
func (s *HistoryStore) Records() []domain.EmotionHistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.EmotionHistoryRecord(nil), s.records...)
}
