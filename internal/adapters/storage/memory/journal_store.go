package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// JournalStore is an in-memory implementation of domain.JournalStore keeping
// one ordered entries list per user, mirroring the document layout of the
// mongo adapter.
type JournalStore struct {
	mu      sync.RWMutex
	entries map[string][]domain.JournalEntry
}

func NewJournalStore() *JournalStore {
	return &JournalStore{entries: make(map[string][]domain.JournalEntry)}
}

func (s *JournalStore) UpsertEntry(_ context.Context, username string, entry *domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[username]
	for i := range list {
		if list[i].Date == entry.Date {
			list[i] = *entry
			return nil
		}
	}
	s.entries[username] = append(list, *entry)
	return nil
}

func (s *JournalStore) GetEntry(_ context.Context, username, date string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.entries[username]
	if !ok {
		return nil, domain.ErrNoJournal
	}
	for i := range list {
		if list[i].Date == date {
			e := list[i]
			return &e, nil
		}
	}
	return nil, domain.ErrNoEntry
}

func (s *JournalStore) ListEntries(_ context.Context, username string) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.JournalEntry(nil), s.entries[username]...), nil
}

func (s *JournalStore) ListEntriesByPrefix(_ context.Context, username, datePrefix string) ([]domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.JournalEntry
	for _, e := range s.entries[username] {
		if strings.HasPrefix(e.Date, datePrefix) {
			out = append(out, e)
		}
	}
	return out, nil
}
