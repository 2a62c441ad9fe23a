package memory

import (
	"context"
	"sync"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// TaskStore is an in-memory implementation of domain.TaskBatchStore.
type TaskStore struct {
	mu      sync.RWMutex
	batches map[string]map[string]*domain.TaskAssignmentBatch // username -> date -> batch
}

func NewTaskStore() *TaskStore {
	return &TaskStore{batches: make(map[string]map[string]*domain.TaskAssignmentBatch)}
}

func (s *TaskStore) PutBatch(_ context.Context, b *domain.TaskAssignmentBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDate, ok := s.batches[b.Username]
	if !ok {
		byDate = make(map[string]*domain.TaskAssignmentBatch)
		s.batches[b.Username] = byDate
	}
	byDate[b.Date] = cloneBatch(b)
	return nil
}

func (s *TaskStore) ListBatches(_ context.Context, username string) ([]domain.TaskAssignmentBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.TaskAssignmentBatch
	for _, b := range s.batches[username] {
		out = append(out, *cloneBatch(b))
	}
	return out, nil
}

func (s *TaskStore) UpdateTaskStatus(_ context.Context, username, taskID string, status domain.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.batches[username] {
		for i := range b.Tasks {
			if b.Tasks[i].ID == taskID {
				b.Tasks[i].Status = status
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func cloneBatch(in *domain.TaskAssignmentBatch) *domain.TaskAssignmentBatch {
	out := *in
	out.Tasks = append([]domain.Task(nil), in.Tasks...)
	return &out
}
