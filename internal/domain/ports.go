package domain

import "context"

// PromptKind selects the prompt template and expected output shape for one
// oracle call.
type PromptKind string

const (
	KindEmotionAndFirstQuestion PromptKind = "emotion_and_first_question"
	KindNextQuestion            PromptKind = "next_question"
	KindFinalAdvice             PromptKind = "final_advice_and_affirmation"
	KindMemoryExtraction        PromptKind = "memory_extraction"
	KindMonthlySummary          PromptKind = "monthly_summary"
)

// OracleRequest carries the context for one generation call. Fields are used
// per kind: EntryText always; Micro only at intake; Emotion and Answers for
// follow-up questions and final advice; MonthTexts for the monthly summary.
type OracleRequest struct {
	Kind       PromptKind
	EntryText  string
	Micro      *MicroCheckin
	Emotion    Emotion
	Answers    []Answer
	MonthTexts []string
}

// OracleResult is the typed output of one generation call. Only the fields
// matching the request kind are populated.
type OracleResult struct {
	Emotion     Emotion
	Question    *Question
	Advice      string
	Affirmation string
	SaveMemory  bool
	Memory      string
	Summary     string
}

// Oracle wraps the external text-generation service. Each call is attempted
// exactly once; implementations impose a bounded timeout and return an error
// wrapping ErrOracle on call failure, unparseable output, or a value outside
// the closed vocabularies.
type Oracle interface {
	Generate(ctx context.Context, req OracleRequest) (*OracleResult, error)
}

// Cipher is the reversible field transform for journal text. Decrypt never
// fails: undecryptable input yields an empty string.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) string
}

// TaskSelector picks a random non-repeating subset of catalog tasks for an
// emotion, each stamped pending with a fresh expiry.
type TaskSelector interface {
	Pick(emotion Emotion, count int) []Task
}

// SessionStore owns ValidationSession persistence, keyed by (username, date).
// The engine serializes mutations per key, so Put is a plain upsert.
type SessionStore interface {
	GetSession(ctx context.Context, username, date string) (*ValidationSession, error)
	PutSession(ctx context.Context, s *ValidationSession) error
	DeleteSession(ctx context.Context, username, date string) error
}

// JournalStore owns the per-user entries list. UpsertEntry replaces an entry
// with the same date in place, otherwise appends, creating the user document
// on first write.
type JournalStore interface {
	UpsertEntry(ctx context.Context, username string, entry *JournalEntry) error
	GetEntry(ctx context.Context, username, date string) (*JournalEntry, error)
	ListEntries(ctx context.Context, username string) ([]JournalEntry, error)
	ListEntriesByPrefix(ctx context.Context, username, datePrefix string) ([]JournalEntry, error)
}

// TaskBatchStore owns task-assignment batches. PutBatch replaces any prior
// batch for the same (username, date) wholesale.
type TaskBatchStore interface {
	PutBatch(ctx context.Context, b *TaskAssignmentBatch) error
	ListBatches(ctx context.Context, username string) ([]TaskAssignmentBatch, error)
	UpdateTaskStatus(ctx context.Context, username, taskID string, status TaskStatus) error
}

// HistoryStore is the append-only emotion history log.
type HistoryStore interface {
	AppendHistory(ctx context.Context, rec *EmotionHistoryRecord) error
}

// MemoryStore owns the per-user memories document.
type MemoryStore interface {
	UpsertMemory(ctx context.Context, username string, note *MemoryNote) error
	ListMemories(ctx context.Context, username string) ([]MemoryNote, error)
}

// SummaryStore owns the per-user monthly summaries document.
type SummaryStore interface {
	UpsertSummary(ctx context.Context, username string, s *MonthlySummary) error
	ListSummaries(ctx context.Context, username string) ([]MonthlySummary, error)
}

// StreakStore owns the calm-quest streak record.
type StreakStore interface {
	GetStreak(ctx context.Context, username string) (*StreakRecord, error)
	PutStreak(ctx context.Context, r *StreakRecord) error
}
