package streak

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-app/halcyon-agent/internal/adapters/storage/memory"
	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

func serviceAt(day string) *Service {
	svc := NewService(memory.NewWellbeingStore())
	svc.now = func() time.Time {
		t, _ := time.Parse(domain.DateLayout, day)
		return t
	}
	return svc
}

func TestGetCreatesZeroRecord(t *testing.T) {
	svc := serviceAt("2026-08-28")

	rec, err := svc.Get(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Streak)
	assert.Empty(t, rec.LastCompleted)
}

func TestFirstCompletionStartsStreak(t *testing.T) {
	svc := serviceAt("2026-08-28")

	rec, err := svc.Update(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Streak)
	assert.Equal(t, "2026-08-28", rec.LastCompleted)
}

func TestSameDayCompletionIsNoOp(t *testing.T) {
	svc := serviceAt("2026-08-28")

	_, err := svc.Update(context.Background(), "ana")
	require.NoError(t, err)
	rec, err := svc.Update(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Streak)
}

func TestConsecutiveDayExtendsStreak(t *testing.T) {
	store := memory.NewWellbeingStore()
	svc := NewService(store)

	for i, day := range []string{"2026-08-26", "2026-08-27", "2026-08-28"} {
		d := day
		svc.now = func() time.Time {
			tm, _ := time.Parse(domain.DateLayout, d)
			return tm
		}
		rec, err := svc.Update(context.Background(), "ana")
		require.NoError(t, err)
		assert.Equal(t, i+1, rec.Streak)
	}
}

func TestGapResetsStreak(t *testing.T) {
	store := memory.NewWellbeingStore()
	svc := NewService(store)

	svc.now = func() time.Time {
		tm, _ := time.Parse(domain.DateLayout, "2026-08-20")
		return tm
	}
	_, err := svc.Update(context.Background(), "ana")
	require.NoError(t, err)

	svc.now = func() time.Time {
		tm, _ := time.Parse(domain.DateLayout, "2026-08-28")
		return tm
	}
	rec, err := svc.Update(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Streak)
	assert.Equal(t, "2026-08-28", rec.LastCompleted)
}

func TestUpdateRequiresUsername(t *testing.T) {
	svc := serviceAt("2026-08-28")

	_, err := svc.Update(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}
