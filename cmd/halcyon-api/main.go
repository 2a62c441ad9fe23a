package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/halcyon-app/halcyon-agent/internal/adapters/cipher"
	httpadapter "github.com/halcyon-app/halcyon-agent/internal/adapters/http"
	"github.com/halcyon-app/halcyon-agent/internal/adapters/llm"
	memstore "github.com/halcyon-app/halcyon-agent/internal/adapters/storage/memory"
	mongostore "github.com/halcyon-app/halcyon-agent/internal/adapters/storage/mongo"
	"github.com/halcyon-app/halcyon-agent/internal/app/journal"
	"github.com/halcyon-app/halcyon-agent/internal/app/streak"
	"github.com/halcyon-app/halcyon-agent/internal/app/tasks"
	"github.com/halcyon-app/halcyon-agent/internal/app/validation"
	"github.com/halcyon-app/halcyon-agent/internal/config"
	"github.com/halcyon-app/halcyon-agent/internal/domain"
	"github.com/halcyon-app/halcyon-agent/internal/observability"
	"github.com/halcyon-app/halcyon-agent/internal/tasklib"
)

func main() {
	log := observability.Init("halcyon-api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	ctx := context.Background()

	var oracle domain.Oracle
	if cfg.UseMockLLM {
		log.Info().Msg("using mock generation client")
		oracle = llm.NewMockOracle()
	} else {
		log.Info().Str("model", cfg.ModelName).Msg("using Gemini generation client")
		oracle, err = llm.NewGeminiOracle(ctx, cfg.GeminiAPIKey, cfg.ModelName, cfg.OracleTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("could not initialize Gemini client")
		}
	}

	var fieldCipher domain.Cipher
	if cfg.FernetKey != "" {
		fieldCipher, err = cipher.New(cfg.FernetKey)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid HALCYON_FERNET_KEY")
		}
	} else {
		// Memory backend only; entries do not survive a restart anyway.
		log.Warn().Msg("no HALCYON_FERNET_KEY set, generating an ephemeral key")
		fieldCipher, err = cipher.NewRandom()
		if err != nil {
			log.Fatal().Err(err).Msg("could not generate encryption key")
		}
	}

	var (
		sessions  domain.SessionStore
		journals  domain.JournalStore
		batches   domain.TaskBatchStore
		history   domain.HistoryStore
		memories  domain.MemoryStore
		summaries domain.SummaryStore
		streaks   domain.StreakStore
	)

	switch cfg.StorageBackend {
	case config.BackendMongo:
		log.Info().Str("database", cfg.MongoDatabase).Msg("using MongoDB storage")
		store, err := mongostore.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to MongoDB")
		}
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				log.Warn().Err(err).Msg("error closing MongoDB connection")
			}
		}()
		sessions, journals, batches = store, store, store
		history, memories, summaries, streaks = store, store, store, store

	default:
		log.Info().Msg("using in-memory storage")
		wellbeing := memstore.NewWellbeingStore()
		sessions = memstore.NewSessionStore()
		journals = memstore.NewJournalStore()
		batches = memstore.NewTaskStore()
		history = memstore.NewHistoryStore()
		memories, summaries, streaks = wellbeing, wellbeing, wellbeing
	}

	engine := validation.NewEngine(sessions, journals, batches, history, oracle, fieldCipher, tasklib.NewSelector())
	journalSvc := journal.NewService(journals, memories, summaries, oracle, fieldCipher)
	taskSvc := tasks.NewService(batches)
	streakSvc := streak.NewService(streaks)

	handler := httpadapter.NewServer(engine, journalSvc, taskSvc, streakSvc)

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("halcyon API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
