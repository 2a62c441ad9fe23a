package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

type memoryNoteDoc struct {
	Date   string `bson:"date"`
	Memory string `bson:"memory"`
}

type summaryDoc struct {
	Month           string `bson:"month"`
	Year            int    `bson:"year"`
	Summary         string `bson:"summary"`
	LastJournalDate string `bson:"last_journal_date"`
}

// UpsertMemory replaces the note for the same date in place, otherwise pushes
// a new one, creating the per-user document on first write.
func (s *Store) UpsertMemory(ctx context.Context, username string, note *domain.MemoryNote) error {
	now := time.Now().UTC()

	res, err := s.memories.UpdateOne(ctx,
		bson.M{"username": username, "memories.date": note.Date},
		bson.M{"$set": bson.M{"memories.$.memory": note.Memory, "last_updated": now}},
	)
	if err != nil {
		return storageErr("replace memory", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	_, err = s.memories.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$push": bson.M{"memories": memoryNoteDoc{Date: note.Date, Memory: note.Memory}},
			"$set":  bson.M{"last_updated": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return storageErr("push memory", err)
	}
	return nil
}

func (s *Store) ListMemories(ctx context.Context, username string) ([]domain.MemoryNote, error) {
	var doc struct {
		Memories []memoryNoteDoc `bson:"memories"`
	}
	err := s.memories.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("load memories", err)
	}
	out := make([]domain.MemoryNote, 0, len(doc.Memories))
	for _, m := range doc.Memories {
		out = append(out, domain.MemoryNote{Date: m.Date, Memory: m.Memory})
	}
	return out, nil
}

// UpsertSummary replaces the summary for the same month+year in place,
// otherwise pushes a new one.
func (s *Store) UpsertSummary(ctx context.Context, username string, sum *domain.MonthlySummary) error {
	now := time.Now().UTC()

	res, err := s.summaries.UpdateOne(ctx,
		bson.M{
			"username":  username,
			"summaries": bson.M{"$elemMatch": bson.M{"month": sum.Month, "year": sum.Year}},
		},
		bson.M{"$set": bson.M{
			"summaries.$.summary":           sum.Summary,
			"summaries.$.last_journal_date": sum.LastJournalDate,
			"last_updated":                  now,
		}},
	)
	if err != nil {
		return storageErr("replace summary", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	_, err = s.summaries.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$push": bson.M{"summaries": summaryDoc{
				Month:           sum.Month,
				Year:            sum.Year,
				Summary:         sum.Summary,
				LastJournalDate: sum.LastJournalDate,
			}},
			"$set": bson.M{"last_updated": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return storageErr("push summary", err)
	}
	return nil
}

func (s *Store) ListSummaries(ctx context.Context, username string) ([]domain.MonthlySummary, error) {
	var doc struct {
		Summaries []summaryDoc `bson:"summaries"`
	}
	err := s.summaries.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("load summaries", err)
	}
	out := make([]domain.MonthlySummary, 0, len(doc.Summaries))
	for _, d := range doc.Summaries {
		out = append(out, domain.MonthlySummary{
			Month:           d.Month,
			Year:            d.Year,
			Summary:         d.Summary,
			LastJournalDate: d.LastJournalDate,
		})
	}
	return out, nil
}

func (s *Store) GetStreak(ctx context.Context, username string) (*domain.StreakRecord, error) {
	var doc struct {
		Username      string `bson:"username"`
		Streak        int    `bson:"streak"`
		LastCompleted string `bson:"last_completed,omitempty"`
	}
	err := s.calmQuest.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storageErr("load streak", err)
	}
	return &domain.StreakRecord{Username: doc.Username, Streak: doc.Streak, LastCompleted: doc.LastCompleted}, nil
}

func (s *Store) PutStreak(ctx context.Context, r *domain.StreakRecord) error {
	_, err := s.calmQuest.ReplaceOne(ctx,
		bson.M{"username": r.Username},
		bson.M{"username": r.Username, "streak": r.Streak, "last_completed": r.LastCompleted},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return storageErr("put streak", err)
	}
	return nil
}
