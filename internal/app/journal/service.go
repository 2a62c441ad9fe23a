// Package journal exposes read and enrichment operations over the encrypted
// journal: decrypted listings, per-day and per-month fetches, memory
// extraction, and monthly summary regeneration.
package journal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
	"github.com/halcyon-app/halcyon-agent/internal/observability"
)

type Service struct {
	journals  domain.JournalStore
	memories  domain.MemoryStore
	summaries domain.SummaryStore
	oracle    domain.Oracle
	cipher    domain.Cipher

	now func() time.Time
}

func NewService(
	journals domain.JournalStore,
	memories domain.MemoryStore,
	summaries domain.SummaryStore,
	oracle domain.Oracle,
	cipher domain.Cipher,
) *Service {
	return &Service{
		journals:  journals,
		memories:  memories,
		summaries: summaries,
		oracle:    oracle,
		cipher:    cipher,
		now:       time.Now,
	}
}

// EntryView is a decrypted journal entry as served to clients.
type EntryView struct {
	Date        string    `json:"date"`
	Text        string    `json:"text"`
	Sentiment   string    `json:"sentiment"`
	Advice      string    `json:"advice"`
	Affirmation string    `json:"affirmation"`
	Timestamp   time.Time `json:"timestamp"`
}

func (s *Service) view(e *domain.JournalEntry) EntryView {
	return EntryView{
		Date:        e.Date,
		Text:        s.cipher.Decrypt(e.Text),
		Sentiment:   string(e.EmotionHidden),
		Advice:      e.AIAdvice,
		Affirmation: e.AIAffirmation,
		Timestamp:   e.Timestamp,
	}
}

// EntryText returns the decrypted text for one date. A user or date with no
// entry yields an empty string, not an error.
func (s *Service) EntryText(ctx context.Context, username, date string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	if date == "" {
		return "", fmt.Errorf("%w: date", domain.ErrMissingField)
	}
	entry, err := s.journals.GetEntry(ctx, username, date)
	if errors.Is(err, domain.ErrNoJournal) || errors.Is(err, domain.ErrNoEntry) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load entry: %w", err)
	}
	return s.cipher.Decrypt(entry.Text), nil
}

// ListEntries returns every decrypted entry for a user, oldest first.
func (s *Service) ListEntries(ctx context.Context, username string) ([]EntryView, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	entries, err := s.journals.ListEntries(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	views := make([]EntryView, 0, len(entries))
	for i := range entries {
		views = append(views, s.view(&entries[i]))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Date < views[j].Date })
	return views, nil
}

// ListMonth returns the decrypted entries whose date starts with the given
// YYYY-MM prefix, oldest first.
func (s *Service) ListMonth(ctx context.Context, username, monthPrefix string) ([]EntryView, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	if monthPrefix == "" {
		return nil, fmt.Errorf("%w: month", domain.ErrMissingField)
	}
	entries, err := s.journals.ListEntriesByPrefix(ctx, username, monthPrefix)
	if err != nil {
		return nil, fmt.Errorf("list month entries: %w", err)
	}
	views := make([]EntryView, 0, len(entries))
	for i := range entries {
		views = append(views, s.view(&entries[i]))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Date < views[j].Date })
	return views, nil
}

// monthIndex orders full month names chronologically; unknown names sort
// first.
func monthIndex(name string) int {
	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return int(m)
		}
	}
	return 0
}

// ListSummaries returns every monthly summary for a user, oldest month first.
func (s *Service) ListSummaries(ctx context.Context, username string) ([]domain.MonthlySummary, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	sums, err := s.summaries.ListSummaries(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	sort.Slice(sums, func(i, j int) bool {
		if sums[i].Year != sums[j].Year {
			return sums[i].Year < sums[j].Year
		}
		return monthIndex(sums[i].Month) < monthIndex(sums[j].Month)
	})
	return sums, nil
}

// ListMemories returns the user's extracted memories, oldest first.
func (s *Service) ListMemories(ctx context.Context, username string) ([]domain.MemoryNote, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingField)
	}
	notes, err := s.memories.ListMemories(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Date < notes[j].Date })
	return notes, nil
}

// Enrich runs the post-save enrichment for one entry: memory extraction and
// monthly summary regeneration. Both are best-effort; failures are logged and
// never surfaced to the save that triggered them.
func (s *Service) Enrich(ctx context.Context, username, date, entryText string) {
	log := observability.LoggerFromContext(ctx).With().
		Str("username", username).
		Str("date", date).
		Logger()

	res, err := s.oracle.Generate(ctx, domain.OracleRequest{
		Kind:      domain.KindMemoryExtraction,
		EntryText: entryText,
	})
	if err != nil {
		log.Warn().Err(err).Msg("memory extraction failed")
	} else if res.SaveMemory && res.Memory != "" {
		note := &domain.MemoryNote{Date: date, Memory: res.Memory}
		if err := s.memories.UpsertMemory(ctx, username, note); err != nil {
			log.Warn().Err(err).Msg("could not save memory")
		}
	}

	if err := s.refreshMonthlySummary(ctx, username, date); err != nil {
		log.Warn().Err(err).Msg("monthly summary refresh failed")
	}
}

// refreshMonthlySummary regenerates the summary for the month containing
// date from all of that month's decrypted entries.
func (s *Service) refreshMonthlySummary(ctx context.Context, username, date string) error {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", date, err)
	}

	entries, err := s.journals.ListEntriesByPrefix(ctx, username, date[:7])
	if err != nil {
		return fmt.Errorf("list month entries: %w", err)
	}
	texts := make([]string, 0, len(entries))
	for i := range entries {
		if t := s.cipher.Decrypt(entries[i].Text); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	res, err := s.oracle.Generate(ctx, domain.OracleRequest{
		Kind:       domain.KindMonthlySummary,
		MonthTexts: texts,
	})
	if err != nil {
		return err
	}

	return s.summaries.UpsertSummary(ctx, username, &domain.MonthlySummary{
		Month:           day.Month().String(),
		Year:            day.Year(),
		Summary:         res.Summary,
		LastJournalDate: date,
	})
}
