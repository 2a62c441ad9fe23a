// Package mongo implements every store port on a MongoDB database, keeping
// the document layout of the original deployment: one journals document per
// user with an entries array, one session document per (username, date), one
// task batch per (username, date), and per-user memories/summaries/streak
// documents.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// Store implements domain.SessionStore, JournalStore, TaskBatchStore,
// HistoryStore, MemoryStore, SummaryStore, and StreakStore.
type Store struct {
	client *mongo.Client

	journals  *mongo.Collection
	sessions  *mongo.Collection
	batches   *mongo.Collection
	history   *mongo.Collection
	memories  *mongo.Collection
	summaries *mongo.Collection
	calmQuest *mongo.Collection
}

// NewStore connects to MongoDB and pings the primary before returning.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	db := client.Database(database)
	return &Store{
		client:    client,
		journals:  db.Collection("journals"),
		sessions:  db.Collection("sessions"),
		batches:   db.Collection("task_batches"),
		history:   db.Collection("emotion_history"),
		memories:  db.Collection("memories"),
		summaries: db.Collection("summaries"),
		calmQuest: db.Collection("calm_quest"),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// storageErr tags driver failures with the storage sentinel so callers can
// map them to a generic internal error while logs keep the detail.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}
