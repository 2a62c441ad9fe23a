package memory

import (
	"context"
	"sync"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// WellbeingStore is an in-memory implementation of domain.MemoryStore,
// domain.SummaryStore, and domain.StreakStore. One store, three ports, like
// the document-backed twin.
type WellbeingStore struct {
	mu        sync.RWMutex
	memories  map[string][]domain.MemoryNote
	summaries map[string][]domain.MonthlySummary
	streaks   map[string]domain.StreakRecord
}

func NewWellbeingStore() *WellbeingStore {
	return &WellbeingStore{
		memories:  make(map[string][]domain.MemoryNote),
		summaries: make(map[string][]domain.MonthlySummary),
		streaks:   make(map[string]domain.StreakRecord),
	}
}

func (s *WellbeingStore) UpsertMemory(_ context.Context, username string, note *domain.MemoryNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.memories[username]
	for i := range list {
		if list[i].Date == note.Date {
			list[i] = *note
			return nil
		}
	}
	s.memories[username] = append(list, *note)
	return nil
}

func (s *WellbeingStore) ListMemories(_ context.Context, username string) ([]domain.MemoryNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.MemoryNote(nil), s.memories[username]...), nil
}

func (s *WellbeingStore) UpsertSummary(_ context.Context, username string, sum *domain.MonthlySummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.summaries[username]
	for i := range list {
		if list[i].Month == sum.Month && list[i].Year == sum.Year {
			list[i] = *sum
			return nil
		}
	}
	s.summaries[username] = append(list, *sum)
	return nil
}

func (s *WellbeingStore) ListSummaries(_ context.Context, username string) ([]domain.MonthlySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.MonthlySummary(nil), s.summaries[username]...), nil
}

func (s *WellbeingStore) GetStreak(_ context.Context, username string) (*domain.StreakRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.streaks[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (s *WellbeingStore) PutStreak(_ context.Context, r *domain.StreakRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.streaks[r.Username] = *r
	return nil
}
