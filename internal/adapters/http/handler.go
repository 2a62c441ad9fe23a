// Package httpadapter exposes the engine and supporting services over the
// JSON API the mobile client speaks. Route and field names match that
// contract exactly.
package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/halcyon-app/halcyon-agent/internal/app/journal"
	"github.com/halcyon-app/halcyon-agent/internal/app/streak"
	"github.com/halcyon-app/halcyon-agent/internal/app/tasks"
	"github.com/halcyon-app/halcyon-agent/internal/app/validation"
	"github.com/halcyon-app/halcyon-agent/internal/domain"
	"github.com/halcyon-app/halcyon-agent/internal/observability"
)

type Server struct {
	engine   *validation.Engine
	journals *journal.Service
	tasks    *tasks.Service
	streaks  *streak.Service
}

func NewServer(
	engine *validation.Engine,
	journals *journal.Service,
	taskSvc *tasks.Service,
	streaks *streak.Service,
) http.Handler {
	s := &Server{
		engine:   engine,
		journals: journals,
		tasks:    taskSvc,
		streaks:  streaks,
	}

	r := mux.NewRouter()
	r.Use(withRequestID, withLogging, withCORS)

	r.HandleFunc("/save-journal", s.handleSaveJournal).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/answer-question", s.handleAnswerQuestion).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/complete", s.handleComplete).Methods(http.MethodPost, http.MethodOptions)

	r.HandleFunc("/get-tasks", s.handleGetTasks).Methods(http.MethodGet)
	r.HandleFunc("/get-task", s.handleGetTask).Methods(http.MethodGet)
	r.HandleFunc("/complete-task", s.handleCompleteTask).Methods(http.MethodPost, http.MethodOptions)

	r.HandleFunc("/get-journal", s.handleGetJournal).Methods(http.MethodGet)
	r.HandleFunc("/affirmations", s.handleAffirmations).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/summaries/{username}", s.handleSummaries).Methods(http.MethodGet)

	r.HandleFunc("/get-calm-quest", s.handleGetCalmQuest).Methods(http.MethodGet)
	r.HandleFunc("/update-calm-quest", s.handleUpdateCalmQuest).Methods(http.MethodPost, http.MethodOptions)

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	return r
}

// DTOs. Question fields are flattened into the response the way the client
// expects; the detected emotion is never serialized.

type saveJournalRequest struct {
	Username string               `json:"username"`
	Entry    string               `json:"entry"`
	Date     string               `json:"date"`
	Micro    *domain.MicroCheckin `json:"micro,omitempty"`
}

type questionResponse struct {
	Message      string   `json:"message,omitempty"`
	Step         int      `json:"step"`
	QuestionType string   `json:"question_type"`
	Question     string   `json:"question"`
	Options      []string `json:"options,omitempty"`
}

type answerRequest struct {
	Username string `json:"username"`
	Date     string `json:"date"`
	Answer   string `json:"answer"`
}

type answerResponse struct {
	Complete     bool     `json:"complete"`
	Step         int      `json:"step,omitempty"`
	QuestionType string   `json:"question_type,omitempty"`
	Question     string   `json:"question,omitempty"`
	Options      []string `json:"options,omitempty"`
}

type completeRequest struct {
	Username string `json:"username"`
	Date     string `json:"date"`
}

type completeResponse struct {
	Advice      string        `json:"advice"`
	Affirmation string        `json:"affirmation"`
	Tasks       []domain.Task `json:"tasks"`
}

type completeTaskRequest struct {
	Username string `json:"username"`
	TaskID   string `json:"task_id"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleSaveJournal(w http.ResponseWriter, r *http.Request) {
	var req saveJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Date == "" {
		req.Date = time.Now().UTC().Format(domain.DateLayout)
	}

	out, err := s.engine.StartSession(r.Context(), validation.StartSessionInput{
		Username:  req.Username,
		Date:      req.Date,
		EntryText: req.Entry,
		Micro:     req.Micro,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// Memory extraction and the monthly summary are byproducts of a save and
	// never block or fail it.
	s.journals.Enrich(r.Context(), req.Username, req.Date, req.Entry)

	writeJSON(w, http.StatusOK, questionResponse{
		Message:      "Journal saved successfully",
		Step:         out.Question.Step,
		QuestionType: string(out.Question.Type),
		Question:     out.Question.Text,
		Options:      out.Question.Options,
	})
}

func (s *Server) handleAnswerQuestion(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.engine.SubmitAnswer(r.Context(), validation.SubmitAnswerInput{
		Username: req.Username,
		Date:     req.Date,
		Answer:   req.Answer,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := answerResponse{Complete: out.Complete}
	if out.Question != nil {
		resp.Step = out.Question.Step
		resp.QuestionType = string(out.Question.Type)
		resp.Question = out.Question.Text
		resp.Options = out.Question.Options
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	out, err := s.engine.CompleteSession(r.Context(), req.Username, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, completeResponse{
		Advice:      out.Advice,
		Affirmation: out.Affirmation,
		Tasks:       out.Tasks,
	})
}

func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	pending, err := s.tasks.ListPending(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	if pending == nil {
		pending = []domain.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": pending})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	taskID := r.URL.Query().Get("task_id")

	task, err := s.tasks.Get(r.Context(), username, taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	var req completeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if err := s.tasks.Complete(r.Context(), req.Username, req.TaskID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task completed"})
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	username := q.Get("username")
	if username == "" {
		badRequest(w, "username missing")
		return
	}

	if date := q.Get("date"); date != "" {
		text, err := s.journals.EntryText(r.Context(), username, date)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"text": text})
		return
	}

	if prefix := q.Get("datePrefix"); prefix != "" {
		views, err := s.journals.ListMonth(r.Context(), username, prefix)
		if err != nil {
			writeError(w, err)
			return
		}
		entries := make([]map[string]string, 0, len(views))
		for _, v := range views {
			entries = append(entries, map[string]string{"date": v.Date, "text": v.Text})
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
		return
	}

	badRequest(w, "no valid query parameter provided")
}

func (s *Server) handleAffirmations(w http.ResponseWriter, r *http.Request) {
	var req usernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	views, err := s.journals.ListEntries(r.Context(), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	if views == nil {
		views = []journal.EntryView{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"journals": views})
}

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	sums, err := s.journals.ListSummaries(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	if sums == nil {
		sums = []domain.MonthlySummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username":  username,
		"summaries": sums,
	})
}

func (s *Server) handleGetCalmQuest(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	rec, err := s.streaks.Get(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateCalmQuest(w http.ResponseWriter, r *http.Request) {
	var req usernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	rec, err := s.streaks.Update(r.Context(), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps domain sentinels onto HTTP statuses. Anything unrecognized
// is a 500 with a generic body; the real cause goes to the log only.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNoJournal),
		errors.Is(err, domain.ErrNoEntry),
		errors.Is(err, domain.ErrNoSession),
		errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrSessionCompleted),
		errors.Is(err, domain.ErrStepLimit),
		errors.Is(err, domain.ErrNoAnswers),
		errors.Is(err, domain.ErrTaskExpired):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrOracle):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "generation service unavailable"})
	default:
		log := observability.Logger()
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
