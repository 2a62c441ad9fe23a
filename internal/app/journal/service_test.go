package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-app/halcyon-agent/internal/adapters/cipher"
	"github.com/halcyon-app/halcyon-agent/internal/adapters/storage/memory"
	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// scriptOracle returns canned results per prompt kind and records requests.
type scriptOracle struct {
	results  map[domain.PromptKind]*domain.OracleResult
	failures map[domain.PromptKind]error
	calls    []domain.OracleRequest
}

func (o *scriptOracle) Generate(_ context.Context, req domain.OracleRequest) (*domain.OracleResult, error) {
	o.calls = append(o.calls, req)
	if err, ok := o.failures[req.Kind]; ok {
		return nil, err
	}
	if res, ok := o.results[req.Kind]; ok {
		return res, nil
	}
	return nil, domain.ErrOracle
}

type fixture struct {
	svc       *Service
	journals  *memory.JournalStore
	wellbeing *memory.WellbeingStore
	oracle    *scriptOracle
	cipher    *cipher.Fernet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c, err := cipher.NewRandom()
	require.NoError(t, err)
	journals := memory.NewJournalStore()
	wellbeing := memory.NewWellbeingStore()
	oracle := &scriptOracle{
		results:  map[domain.PromptKind]*domain.OracleResult{},
		failures: map[domain.PromptKind]error{},
	}
	return &fixture{
		svc:       NewService(journals, wellbeing, wellbeing, oracle, c),
		journals:  journals,
		wellbeing: wellbeing,
		oracle:    oracle,
		cipher:    c,
	}
}

func (f *fixture) seedEntry(t *testing.T, date, text string) {
	t.Helper()
	ct, err := f.cipher.Encrypt(text)
	require.NoError(t, err)
	err = f.journals.UpsertEntry(context.Background(), "ana", &domain.JournalEntry{
		Date:          date,
		Text:          ct,
		EmotionHidden: domain.EmotionHopeful,
		Timestamp:     time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestEntryTextDecrypts(t *testing.T) {
	f := newFixture(t)
	f.seedEntry(t, "2026-08-28", "today was better than yesterday")

	text, err := f.svc.EntryText(context.Background(), "ana", "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, "today was better than yesterday", text)
}

func TestEntryTextMissingEntryIsEmpty(t *testing.T) {
	f := newFixture(t)

	text, err := f.svc.EntryText(context.Background(), "ana", "2026-08-28")
	require.NoError(t, err)
	assert.Empty(t, text)

	f.seedEntry(t, "2026-08-28", "hello")
	text, err = f.svc.EntryText(context.Background(), "ana", "2026-08-01")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestListEntriesDecryptsAndSorts(t *testing.T) {
	f := newFixture(t)
	f.seedEntry(t, "2026-08-28", "late entry")
	f.seedEntry(t, "2026-08-02", "early entry")

	views, err := f.svc.ListEntries(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "2026-08-02", views[0].Date)
	assert.Equal(t, "early entry", views[0].Text)
	assert.Equal(t, string(domain.EmotionHopeful), views[0].Sentiment)
	assert.Equal(t, "late entry", views[1].Text)
}

func TestListEntriesUndecipherableTextIsBlank(t *testing.T) {
	f := newFixture(t)
	err := f.journals.UpsertEntry(context.Background(), "ana", &domain.JournalEntry{
		Date: "2026-08-28",
		Text: "not-a-token",
	})
	require.NoError(t, err)

	views, err := f.svc.ListEntries(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Empty(t, views[0].Text)
}

func TestListMonthFiltersByPrefix(t *testing.T) {
	f := newFixture(t)
	f.seedEntry(t, "2026-07-30", "july")
	f.seedEntry(t, "2026-08-01", "august one")
	f.seedEntry(t, "2026-08-15", "august two")

	views, err := f.svc.ListMonth(context.Background(), "ana", "2026-08")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "august one", views[0].Text)
	assert.Equal(t, "august two", views[1].Text)
}

func TestEnrichSavesMemoryAndSummary(t *testing.T) {
	f := newFixture(t)
	f.seedEntry(t, "2026-08-28", "I finally called my grandmother.")
	f.oracle.results[domain.KindMemoryExtraction] = &domain.OracleResult{
		SaveMemory: true,
		Memory:     "I reconnected with my grandmother.",
	}
	f.oracle.results[domain.KindMonthlySummary] = &domain.OracleResult{
		Summary: "This month I reached out to people I had been missing.",
	}

	f.svc.Enrich(context.Background(), "ana", "2026-08-28", "I finally called my grandmother.")

	notes, err := f.wellbeing.ListMemories(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "I reconnected with my grandmother.", notes[0].Memory)

	sums, err := f.wellbeing.ListSummaries(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "August", sums[0].Month)
	assert.Equal(t, 2026, sums[0].Year)
	assert.Equal(t, "2026-08-28", sums[0].LastJournalDate)
}

func TestEnrichSkipsMemoryWhenNotWorthSaving(t *testing.T) {
	f := newFixture(t)
	f.seedEntry(t, "2026-08-28", "ordinary day")
	f.oracle.results[domain.KindMemoryExtraction] = &domain.OracleResult{SaveMemory: false}
	f.oracle.results[domain.KindMonthlySummary] = &domain.OracleResult{Summary: "quiet month"}

	f.svc.Enrich(context.Background(), "ana", "2026-08-28", "ordinary day")

	notes, err := f.wellbeing.ListMemories(context.Background(), "ana")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestEnrichSurvivesOracleFailure(t *testing.T) {
	f := newFixture(t)
	f.seedEntry(t, "2026-08-28", "rough one")
	f.oracle.failures[domain.KindMemoryExtraction] = errors.New("model unavailable")
	f.oracle.failures[domain.KindMonthlySummary] = errors.New("model unavailable")

	// Must not panic or write anything.
	f.svc.Enrich(context.Background(), "ana", "2026-08-28", "rough one")

	notes, err := f.wellbeing.ListMemories(context.Background(), "ana")
	require.NoError(t, err)
	assert.Empty(t, notes)
	sums, err := f.wellbeing.ListSummaries(context.Background(), "ana")
	require.NoError(t, err)
	assert.Empty(t, sums)
}

func TestListSummariesSortedChronologically(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, s := range []domain.MonthlySummary{
		{Month: "February", Year: 2026, Summary: "feb"},
		{Month: "November", Year: 2025, Summary: "nov"},
		{Month: "January", Year: 2026, Summary: "jan"},
	} {
		sum := s
		require.NoError(t, f.wellbeing.UpsertSummary(ctx, "ana", &sum))
	}

	sums, err := f.svc.ListSummaries(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, sums, 3)
	assert.Equal(t, "nov", sums[0].Summary)
	assert.Equal(t, "jan", sums[1].Summary)
	assert.Equal(t, "feb", sums[2].Summary)
}
