package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-app/halcyon-agent/internal/adapters/storage/memory"
	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

func seededService(t *testing.T, now time.Time) (*Service, *memory.TaskStore) {
	t.Helper()
	store := memory.NewTaskStore()
	err := store.PutBatch(context.Background(), &domain.TaskAssignmentBatch{
		Username: "ana",
		Date:     "2026-08-28",
		Emotion:  domain.EmotionAnxious,
		Tasks: []domain.Task{
			{ID: "anxious_1", Title: "Box Breathing", Status: domain.TaskPending, ExpiresAt: now.Add(20 * time.Minute)},
			{ID: "anxious_2", Title: "Grounding Walk", Status: domain.TaskPending, ExpiresAt: now.Add(-time.Minute)},
			{ID: "anxious_3", Title: "Worry Dump", Status: domain.TaskCompleted, ExpiresAt: now.Add(20 * time.Minute)},
		},
		CreatedAt: now,
	})
	require.NoError(t, err)

	svc := NewService(store)
	svc.now = func() time.Time { return now }
	return svc, store
}

func TestListPendingFiltersExpiredAndCompleted(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc, _ := seededService(t, now)

	got, err := svc.ListPending(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "anxious_1", got[0].ID)
}

func TestListPendingUnknownUserIsEmpty(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc, _ := seededService(t, now)

	got, err := svc.ListPending(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetReturnsTaskRegardlessOfExpiry(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc, _ := seededService(t, now)

	task, err := svc.Get(context.Background(), "ana", "anxious_2")
	require.NoError(t, err)
	assert.Equal(t, "Grounding Walk", task.Title)

	_, err = svc.Get(context.Background(), "ana", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompleteMarksTask(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc, _ := seededService(t, now)

	require.NoError(t, svc.Complete(context.Background(), "ana", "anxious_1"))

	task, err := svc.Get(context.Background(), "ana", "anxious_1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, task.Status)
}

func TestCompleteRejectsExpiredTask(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc, _ := seededService(t, now)

	err := svc.Complete(context.Background(), "ana", "anxious_2")
	assert.ErrorIs(t, err, domain.ErrTaskExpired)

	task, err := svc.Get(context.Background(), "ana", "anxious_2")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, task.Status)
}

func TestCompleteUnknownTask(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc, _ := seededService(t, now)

	err := svc.Complete(context.Background(), "ana", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidationErrors(t *testing.T) {
	svc := NewService(memory.NewTaskStore())

	_, err := svc.ListPending(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = svc.Get(context.Background(), "ana", "")
	assert.ErrorIs(t, err, domain.ErrMissingField)

	err = svc.Complete(context.Background(), "", "anxious_1")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}
