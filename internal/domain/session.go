package domain

import "time"

// MaxAnswerSteps caps the clarifying-question loop.
const MaxAnswerSteps = 3

// Answer is one submitted answer in the validation dialogue.
// Step numbers start at 1 and increase monotonically.
type Answer struct {
	Step int    `json:"step"`
	Text string `json:"answer"`
}

// SessionResult is the final advice/affirmation pair, cached on the session so
// repeated completion calls never regenerate it.
type SessionResult struct {
	Advice      string `json:"advice"`
	Affirmation string `json:"affirmation"`
}

// ValidationSession is the per-user, per-day dialogue state. At most one
// non-completed session exists per (username, date); saving a new journal
// entry for the date deletes any prior session unconditionally.
type ValidationSession struct {
	Username string `json:"username"`
	Date     string `json:"date"`

	// Decrypted copy of the day's entry, cached at session creation. The
	// persisted journal entry itself stores ciphertext.
	JournalText string `json:"journal_text"`

	// Detected once at intake and never re-derived.
	EmotionHidden Emotion `json:"emotion_hidden"`

	Answers          []Answer `json:"answers"`
	LastAnsweredStep int      `json:"last_answered_step"`

	// Cached question for the next unanswered step, nil once all steps are
	// answered.
	NextQuestion *Question `json:"next_question,omitempty"`

	Completed bool           `json:"completed"`
	Result    *SessionResult `json:"result,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// EmotionHistoryRecord is the append-only log entry written once per
// completed session.
type EmotionHistoryRecord struct {
	Username  string    `json:"username"`
	Date      string    `json:"date"`
	Emotion   Emotion   `json:"emotion"`
	Timestamp time.Time `json:"timestamp"`
}
