package tasklib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

func TestPickKnownEmotions(t *testing.T) {
	sel := NewSelector()

	for _, emotion := range domain.KnownEmotions {
		tasks := sel.Pick(emotion, 3)
		require.Len(t, tasks, 3, "emotion %s", emotion)

		seen := map[string]bool{}
		for _, task := range tasks {
			assert.False(t, seen[task.ID], "duplicate task %s for %s", task.ID, emotion)
			seen[task.ID] = true
			assert.Equal(t, domain.TaskPending, task.Status)
			assert.NotEmpty(t, task.Title)
			assert.NotEmpty(t, task.Description)
		}
	}
}

func TestPickUnknownEmotionFallsBack(t *testing.T) {
	sel := NewSelector()

	tasks := sel.Pick(domain.EmotionUnknown, 3)
	require.Len(t, tasks, 3)

	happyIDs := map[string]bool{}
	for _, d := range catalog[domain.EmotionHappy] {
		happyIDs[d.id] = true
	}
	for _, task := range tasks {
		assert.True(t, happyIDs[task.ID], "task %s not from the fallback category", task.ID)
	}
}

func TestPickStampsExpiry(t *testing.T) {
	frozen := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	sel := &Selector{now: func() time.Time { return frozen }}

	tasks := sel.Pick(domain.EmotionSad, 3)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.Equal(t, frozen.Add(TaskTTL), task.ExpiresAt)
	}
}

func TestPickCountLargerThanCategory(t *testing.T) {
	sel := NewSelector()

	tasks := sel.Pick(domain.EmotionAngry, 50)
	assert.Len(t, tasks, len(catalog[domain.EmotionAngry]))
}

func TestCatalogShape(t *testing.T) {
	// every known emotion has a category, and ids are unique within it
	for _, emotion := range domain.KnownEmotions {
		defs, ok := catalog[emotion]
		require.True(t, ok, "missing category for %s", emotion)
		require.NotEmpty(t, defs)

		ids := map[string]bool{}
		for _, d := range defs {
			require.False(t, ids[d.id], "duplicate id %s in %s", d.id, emotion)
			ids[d.id] = true
		}
	}
}
