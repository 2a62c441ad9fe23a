// Package streak tracks the calm-quest daily streak: consecutive days on
// which the user finished the breathing exercise.
package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

type Service struct {
	store domain.StreakStore

	now func() time.Time
}

func NewService(store domain.StreakStore) *Service {
	return &Service{store: store, now: time.Now}
}

// Get returns the user's streak record, creating a zero record on first
// access.
func (s *Service) Get(ctx context.Context, username string) (*domain.StreakRecord, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	rec, err := s.store.GetStreak(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		rec = &domain.StreakRecord{Username: username}
		if err := s.store.PutStreak(ctx, rec); err != nil {
			return nil, fmt.Errorf("create streak record: %w", err)
		}
		return rec, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}
	return rec, nil
}

// Update records a completion for today. A second completion on the same day
// is a no-op; a completion exactly one day after the last extends the streak;
// any gap resets it to one.
func (s *Service) Update(ctx context.Context, username string) (*domain.StreakRecord, error) {
	rec, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Format(domain.DateLayout)
	if rec.LastCompleted == today {
		return rec, nil
	}

	next := 1
	if last, err := time.Parse(domain.DateLayout, rec.LastCompleted); err == nil {
		day, _ := time.Parse(domain.DateLayout, today)
		if day.Sub(last) == 24*time.Hour {
			next = rec.Streak + 1
		}
	}
	rec.Streak = next
	rec.LastCompleted = today

	if err := s.store.PutStreak(ctx, rec); err != nil {
		return nil, fmt.Errorf("save streak: %w", err)
	}
	return rec, nil
}
