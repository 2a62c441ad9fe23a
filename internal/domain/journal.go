package domain

import "time"

// JournalEntry is one dated entry in a user's journal document. Text holds
// ciphertext at rest; decryption happens at the service boundary.
// At most one entry exists per date per user.
type JournalEntry struct {
	Date          string    `json:"date"`
	Text          string    `json:"text"`
	EmotionHidden Emotion   `json:"emotion_hidden,omitempty"`
	AIAdvice      string    `json:"ai_advice,omitempty"`
	AIAffirmation string    `json:"ai_affirmation,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	LastUpdated   time.Time `json:"last_updated"`
}

// MemoryNote is a short first-person reflection extracted from an entry when
// the oracle judges it worth remembering. One note per date per user.
type MemoryNote struct {
	Date   string `json:"date"`
	Memory string `json:"memory"`
}

// MonthlySummary is the regenerated first-person summary of one month of
// entries.
type MonthlySummary struct {
	Month           string `json:"month"` // full month name, e.g. "November"
	Year            int    `json:"year"`
	Summary         string `json:"summary"`
	LastJournalDate string `json:"last_journal_date"`
}

// StreakRecord tracks the calm-quest daily streak.
type StreakRecord struct {
	Username      string `json:"username"`
	Streak        int    `json:"streak"`
	LastCompleted string `json:"last_completed,omitempty"` // YYYY-MM-DD, empty if never
}
