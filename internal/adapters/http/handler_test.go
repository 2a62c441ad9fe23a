package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-app/halcyon-agent/internal/adapters/cipher"
	httpadapter "github.com/halcyon-app/halcyon-agent/internal/adapters/http"
	"github.com/halcyon-app/halcyon-agent/internal/adapters/llm"
	"github.com/halcyon-app/halcyon-agent/internal/adapters/storage/memory"
	journalapp "github.com/halcyon-app/halcyon-agent/internal/app/journal"
	"github.com/halcyon-app/halcyon-agent/internal/app/streak"
	"github.com/halcyon-app/halcyon-agent/internal/app/tasks"
	"github.com/halcyon-app/halcyon-agent/internal/app/validation"
	"github.com/halcyon-app/halcyon-agent/internal/tasklib"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	c, err := cipher.NewRandom()
	require.NoError(t, err)

	oracle := llm.NewMockOracle()
	sessions := memory.NewSessionStore()
	journals := memory.NewJournalStore()
	batches := memory.NewTaskStore()
	history := memory.NewHistoryStore()
	wellbeing := memory.NewWellbeingStore()

	engine := validation.NewEngine(sessions, journals, batches, history, oracle, c, tasklib.NewSelector())
	journalSvc := journalapp.NewService(journals, wellbeing, wellbeing, oracle, c)
	taskSvc := tasks.NewService(batches)
	streakSvc := streak.NewService(wellbeing)

	return httpadapter.NewServer(engine, journalSvc, taskSvc, streakSvc)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSaveJournalReturnsFirstQuestionWithoutEmotion(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/save-journal", map[string]any{
		"username": "ana",
		"entry":    "I passed my exam today!",
		"date":     "2026-08-28",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotEmpty(t, body["question"])
	assert.NotEmpty(t, body["question_type"])
	assert.NotContains(t, body, "sentiment")
	assert.NotContains(t, body, "emotion")
}

func TestSaveJournalMissingFields(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/save-journal", map[string]any{
		"username": "ana",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFullSessionFlow(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/save-journal", map[string]any{
		"username": "ana",
		"entry":    "Long day, but I handled it.",
		"date":     "2026-08-28",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var complete bool
	for i := 0; i < 3; i++ {
		w = doJSON(t, srv, http.MethodPost, "/answer-question", map[string]any{
			"username": "ana",
			"date":     "2026-08-28",
			"answer":   "an honest answer",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		complete, _ = body["complete"].(bool)
		if i < 2 {
			assert.False(t, complete)
			assert.NotEmpty(t, body["question"])
		}
	}
	assert.True(t, complete)

	w = doJSON(t, srv, http.MethodPost, "/complete", map[string]any{
		"username": "ana",
		"date":     "2026-08-28",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotEmpty(t, body["advice"])
	assert.NotEmpty(t, body["affirmation"])
	tasksAny, ok := body["tasks"].([]any)
	require.True(t, ok)
	assert.Len(t, tasksAny, 3)
	assert.NotContains(t, body, "emotion")

	// Assigned tasks are visible through the task endpoints.
	w = doJSON(t, srv, http.MethodGet, "/get-tasks?username=ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Len(t, body["tasks"].([]any), 3)

	first := body["tasks"].([]any)[0].(map[string]any)
	taskID := first["id"].(string)

	w = doJSON(t, srv, http.MethodGet, "/get-task?username=ana&task_id="+taskID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/complete-task", map[string]any{
		"username": "ana",
		"task_id":  taskID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, srv, http.MethodGet, "/get-tasks?username=ana", nil)
	body = decode(t, w)
	assert.Len(t, body["tasks"].([]any), 2)
}

func TestAnswerWithoutJournalIs404(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/answer-question", map[string]any{
		"username": "ana",
		"date":     "2026-08-28",
		"answer":   "hello",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompleteWithoutAnswersIsConflict(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/save-journal", map[string]any{
		"username": "ana",
		"entry":    "short entry",
		"date":     "2026-08-28",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/complete", map[string]any{
		"username": "ana",
		"date":     "2026-08-28",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetJournalDailyAndMonthly(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/save-journal", map[string]any{
		"username": "ana",
		"entry":    "a quiet morning",
		"date":     "2026-08-28",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/get-journal?username=ana&date=2026-08-28", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a quiet morning", decode(t, w)["text"])

	w = doJSON(t, srv, http.MethodGet, "/get-journal?username=ana&date=2026-08-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", decode(t, w)["text"])

	w = doJSON(t, srv, http.MethodGet, "/get-journal?username=ana&datePrefix=2026-08", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode(t, w)["entries"].([]any)
	require.Len(t, entries, 1)

	w = doJSON(t, srv, http.MethodGet, "/get-journal?username=ana", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/get-journal?date=2026-08-28", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAffirmationsListsDecryptedEntries(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/save-journal", map[string]any{
		"username": "ana",
		"entry":    "grateful for small things",
		"date":     "2026-08-28",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/affirmations", map[string]any{"username": "ana"})
	require.Equal(t, http.StatusOK, w.Code)
	journals := decode(t, w)["journals"].([]any)
	require.Len(t, journals, 1)
	entry := journals[0].(map[string]any)
	assert.Equal(t, "grateful for small things", entry["text"])
	assert.Equal(t, "2026-08-28", entry["date"])
}

func TestSummariesEmptyForNewUser(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/summaries/ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ana", body["username"])
	assert.Empty(t, body["summaries"])
}

func TestCalmQuestFlow(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/get-calm-quest?username=ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["streak"])

	w = doJSON(t, srv, http.MethodPost, "/update-calm-quest", map[string]any{"username": "ana"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, float64(1), body["streak"])

	// Same-day repeat holds the streak.
	w = doJSON(t, srv, http.MethodPost, "/update-calm-quest", map[string]any{"username": "ana"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["streak"])
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}
