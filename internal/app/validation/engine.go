// Package validation hosts the emotion validation session engine: the
// per-user, per-day state machine that turns a journal entry into a short
// clarifying dialogue, final advice, and a batch of wellbeing tasks.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
	"github.com/halcyon-app/halcyon-agent/internal/observability"
)

// tasksPerBatch is the fixed number of tasks assigned on completion.
const tasksPerBatch = 3

// Engine orchestrates intake, answer submission, and completion. All
// collaborators are injected so tests can substitute doubles.
type Engine struct {
	sessions domain.SessionStore
	journals domain.JournalStore
	batches  domain.TaskBatchStore
	history  domain.HistoryStore
	oracle   domain.Oracle
	cipher   domain.Cipher
	selector domain.TaskSelector

	now   func() time.Time
	locks *keyLock
}

func NewEngine(
	sessions domain.SessionStore,
	journals domain.JournalStore,
	batches domain.TaskBatchStore,
	history domain.HistoryStore,
	oracle domain.Oracle,
	cipher domain.Cipher,
	selector domain.TaskSelector,
) *Engine {
	return &Engine{
		sessions: sessions,
		journals: journals,
		batches:  batches,
		history:  history,
		oracle:   oracle,
		cipher:   cipher,
		selector: selector,
		now:      time.Now,
		locks:    newKeyLock(),
	}
}

// fallbackQuestion keeps the dialogue moving when question generation fails.
func fallbackQuestion(step int) *domain.Question {
	return &domain.Question{
		Step: step,
		Type: domain.QuestionReflection,
		Text: "Can you tell me more about how you're feeling?",
	}
}

type StartSessionInput struct {
	Username  string
	Date      string
	EntryText string
	Micro     *domain.MicroCheckin
}

type StartSessionOutput struct {
	// Emotion stays server-side; the HTTP adapter never serializes it.
	Emotion  domain.Emotion
	Question domain.Question
}

// StartSession is the intake transition. A new save for a date discards any
// prior dialogue for that date unconditionally, persists the entry as
// ciphertext, detects the emotion, and returns the first question. Oracle
// failure never aborts intake; a deterministic fallback is substituted.
func (e *Engine) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	if strings.TrimSpace(in.EntryText) == "" {
		return nil, fmt.Errorf("%w: entry", domain.ErrMissingField)
	}
	if in.Date == "" {
		return nil, fmt.Errorf("%w: date", domain.ErrMissingField)
	}

	log := observability.LoggerFromContext(ctx).With().
		Str("username", in.Username).
		Str("date", in.Date).
		Logger()

	unlock := e.locks.lock(in.Username + "|" + in.Date)
	defer unlock()

	// A replaced entry invalidates the prior dialogue entirely, even
	// mid-dialogue.
	if err := e.sessions.DeleteSession(ctx, in.Username, in.Date); err != nil {
		return nil, fmt.Errorf("discard prior session: %w", err)
	}

	now := e.now().UTC()

	ciphertext, err := e.cipher.Encrypt(in.EntryText)
	if err != nil {
		return nil, fmt.Errorf("encrypt entry: %w", err)
	}

	entry := &domain.JournalEntry{
		Date:        in.Date,
		Text:        ciphertext,
		Timestamp:   now,
		LastUpdated: now,
	}
	if err := e.journals.UpsertEntry(ctx, in.Username, entry); err != nil {
		return nil, fmt.Errorf("persist entry: %w", err)
	}

	emotion := domain.EmotionUnknown
	question := fallbackQuestion(1)

	res, err := e.oracle.Generate(ctx, domain.OracleRequest{
		Kind:      domain.KindEmotionAndFirstQuestion,
		EntryText: in.EntryText,
		Micro:     in.Micro,
	})
	if err != nil {
		log.Warn().Err(err).Msg("intake oracle call failed, using fallback question")
	} else {
		emotion = res.Emotion
		question = res.Question
		question.Step = 1
	}

	entry.EmotionHidden = emotion
	if err := e.journals.UpsertEntry(ctx, in.Username, entry); err != nil {
		return nil, fmt.Errorf("record detected emotion: %w", err)
	}

	session := &domain.ValidationSession{
		Username:      in.Username,
		Date:          in.Date,
		JournalText:   in.EntryText,
		EmotionHidden: emotion,
		NextQuestion:  question,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := e.sessions.PutSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	log.Info().Str("question_type", string(question.Type)).Msg("session started")

	return &StartSessionOutput{Emotion: emotion, Question: *question}, nil
}

type SubmitAnswerInput struct {
	Username string
	Date     string
	Answer   string
}

type SubmitAnswerOutput struct {
	Complete bool
	Question *domain.Question
}

// SubmitAnswer appends one answer and either returns the next question or
// signals completion-readiness once three answers are recorded. A missing
// session row is rebuilt from the persisted journal entry, making the flow
// idempotent to session loss.
func (e *Engine) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	if in.Date == "" {
		return nil, fmt.Errorf("%w: date", domain.ErrMissingField)
	}
	answer := strings.TrimSpace(in.Answer)
	if answer == "" {
		return nil, fmt.Errorf("%w: answer", domain.ErrMissingField)
	}

	log := observability.LoggerFromContext(ctx).With().
		Str("username", in.Username).
		Str("date", in.Date).
		Logger()

	unlock := e.locks.lock(in.Username + "|" + in.Date)
	defer unlock()

	session, err := e.sessions.GetSession(ctx, in.Username, in.Date)
	if errors.Is(err, domain.ErrNotFound) {
		session, err = e.rebuildSession(ctx, in.Username, in.Date)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("session rebuilt from journal entry")
	} else if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if session.Completed {
		return nil, domain.ErrSessionCompleted
	}
	if session.LastAnsweredStep >= domain.MaxAnswerSteps {
		return nil, domain.ErrStepLimit
	}

	step := session.LastAnsweredStep + 1
	session.Answers = append(session.Answers, domain.Answer{Step: step, Text: answer})
	session.LastAnsweredStep = step
	session.UpdatedAt = e.now().UTC()

	if step >= domain.MaxAnswerSteps {
		session.NextQuestion = nil
		if err := e.sessions.PutSession(ctx, session); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
		log.Info().Int("step", step).Msg("answer recorded, session ready to complete")
		return &SubmitAnswerOutput{Complete: true}, nil
	}

	next := fallbackQuestion(step + 1)
	res, err := e.oracle.Generate(ctx, domain.OracleRequest{
		Kind:      domain.KindNextQuestion,
		EntryText: session.JournalText,
		Emotion:   session.EmotionHidden,
		Answers:   session.Answers,
	})
	if err != nil {
		log.Warn().Err(err).Msg("question oracle call failed, using fallback question")
	} else {
		next = res.Question
		next.Step = step + 1
	}

	session.NextQuestion = next
	if err := e.sessions.PutSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	log.Info().Int("step", step).Str("question_type", string(next.Type)).Msg("answer recorded")

	return &SubmitAnswerOutput{Question: next}, nil
}

// rebuildSession is the documented recovery path: a missing session row with
// a valid journal entry for the date is a legal entry point back into the
// dialogue.
func (e *Engine) rebuildSession(ctx context.Context, username, date string) (*domain.ValidationSession, error) {
	entry, err := e.journals.GetEntry(ctx, username, date)
	if err != nil {
		return nil, err
	}

	emotion := entry.EmotionHidden
	if emotion == "" {
		emotion = domain.EmotionUnknown
	}

	now := e.now().UTC()
	return &domain.ValidationSession{
		Username:      username,
		Date:          date,
		JournalText:   e.cipher.Decrypt(entry.Text),
		EmotionHidden: emotion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

type CompleteSessionOutput struct {
	Advice      string
	Affirmation string
	Tasks       []domain.Task
}

// CompleteSession finalizes the dialogue: generates advice and affirmation,
// writes them onto the journal entry, marks the session completed, logs the
// emotion, and assigns a fresh task batch. Idempotent: a completed session
// returns the cached result with no further oracle calls or writes. Oracle
// failure fails the whole request; fabricated advice is worse than an error.
func (e *Engine) CompleteSession(ctx context.Context, username, date string) (*CompleteSessionOutput, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	if date == "" {
		return nil, fmt.Errorf("%w: date", domain.ErrMissingField)
	}

	log := observability.LoggerFromContext(ctx).With().
		Str("username", username).
		Str("date", date).
		Logger()

	unlock := e.locks.lock(username + "|" + date)
	defer unlock()

	session, err := e.sessions.GetSession(ctx, username, date)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if session.Completed {
		log.Info().Msg("completion replayed, returning cached result")
		return &CompleteSessionOutput{
			Advice:      session.Result.Advice,
			Affirmation: session.Result.Affirmation,
			Tasks:       e.assignedTasks(ctx, username, date),
		}, nil
	}

	if len(session.Answers) == 0 {
		return nil, domain.ErrNoAnswers
	}

	res, err := e.oracle.Generate(ctx, domain.OracleRequest{
		Kind:      domain.KindFinalAdvice,
		EntryText: session.JournalText,
		Emotion:   session.EmotionHidden,
		Answers:   session.Answers,
	})
	if err != nil {
		return nil, fmt.Errorf("final advice: %w", err)
	}

	now := e.now().UTC()

	// Journal first: if we crash before marking the session complete, a
	// retry regenerates rather than losing the advice the user was promised.
	entry, err := e.journals.GetEntry(ctx, username, date)
	if err != nil {
		return nil, fmt.Errorf("load entry for completion: %w", err)
	}
	entry.AIAdvice = res.Advice
	entry.AIAffirmation = res.Affirmation
	entry.LastUpdated = now
	if err := e.journals.UpsertEntry(ctx, username, entry); err != nil {
		return nil, fmt.Errorf("attach advice to entry: %w", err)
	}

	session.Completed = true
	session.CompletedAt = &now
	session.UpdatedAt = now
	session.NextQuestion = nil
	session.Result = &domain.SessionResult{Advice: res.Advice, Affirmation: res.Affirmation}
	if err := e.sessions.PutSession(ctx, session); err != nil {
		return nil, fmt.Errorf("mark session completed: %w", err)
	}

	if err := e.history.AppendHistory(ctx, &domain.EmotionHistoryRecord{
		Username:  username,
		Date:      date,
		Emotion:   session.EmotionHidden,
		Timestamp: now,
	}); err != nil {
		return nil, fmt.Errorf("append emotion history: %w", err)
	}

	tasks := e.selector.Pick(session.EmotionHidden, tasksPerBatch)
	batch := &domain.TaskAssignmentBatch{
		Username:  username,
		Date:      date,
		Emotion:   session.EmotionHidden,
		Tasks:     tasks,
		CreatedAt: now,
	}
	if err := e.batches.PutBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("assign task batch: %w", err)
	}

	log.Info().Int("tasks", len(tasks)).Msg("session completed")

	return &CompleteSessionOutput{
		Advice:      res.Advice,
		Affirmation: res.Affirmation,
		Tasks:       tasks,
	}, nil
}

// assignedTasks re-reads the batch for a replayed completion. Best-effort:
// the contract on replay is the cached advice pair, not the batch.
func (e *Engine) assignedTasks(ctx context.Context, username, date string) []domain.Task {
	batches, err := e.batches.ListBatches(ctx, username)
	if err != nil {
		log := observability.LoggerFromContext(ctx)
		log.Warn().Err(err).Msg("could not reload task batch on completion replay")
		return nil
	}
	for _, b := range batches {
		if b.Date == date {
			return b.Tasks
		}
	}
	return nil
}
