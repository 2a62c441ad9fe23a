// Package tasks exposes read and completion operations over assigned
// wellbeing task batches. Expiry is enforced here at read time; expired
// tasks are filtered out rather than swept from storage.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

type Service struct {
	batches domain.TaskBatchStore

	now func() time.Time
}

func NewService(batches domain.TaskBatchStore) *Service {
	return &Service{batches: batches, now: time.Now}
}

// ListPending returns the user's pending, unexpired tasks across all batches.
func (s *Service) ListPending(ctx context.Context, username string) ([]domain.Task, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	batches, err := s.batches.ListBatches(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	now := s.now()
	var pending []domain.Task
	for _, b := range batches {
		for _, t := range b.Tasks {
			if t.Status == domain.TaskPending && !t.Expired(now) {
				pending = append(pending, t)
			}
		}
	}
	return pending, nil
}

// Get returns one assigned task by id, regardless of status or expiry.
func (s *Service) Get(ctx context.Context, username, taskID string) (*domain.Task, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	if taskID == "" {
		return nil, fmt.Errorf("%w: task_id", domain.ErrMissingField)
	}
	task, err := s.find(ctx, username, taskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Complete marks an assigned task completed. Expired tasks are rejected; a
// timed task that ran out cannot be claimed afterwards.
func (s *Service) Complete(ctx context.Context, username, taskID string) error {
	if username == "" {
		return fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	if taskID == "" {
		return fmt.Errorf("%w: task_id", domain.ErrMissingField)
	}
	task, err := s.find(ctx, username, taskID)
	if err != nil {
		return err
	}
	if task.Expired(s.now()) {
		return domain.ErrTaskExpired
	}
	if err := s.batches.UpdateTaskStatus(ctx, username, taskID, domain.TaskCompleted); err != nil {
		return fmt.Errorf("mark task completed: %w", err)
	}
	return nil
}

func (s *Service) find(ctx context.Context, username, taskID string) (*domain.Task, error) {
	batches, err := s.batches.ListBatches(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	for _, b := range batches {
		for i := range b.Tasks {
			if b.Tasks[i].ID == taskID {
				t := b.Tasks[i]
				return &t, nil
			}
		}
	}
	return nil, fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
}
