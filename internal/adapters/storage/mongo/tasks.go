package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

type batchDoc struct {
	Username  string    `bson:"username"`
	Date      string    `bson:"date"`
	Emotion   string    `bson:"emotion"`
	Tasks     []taskDoc `bson:"tasks"`
	CreatedAt time.Time `bson:"created_at"`
}

type taskDoc struct {
	ID          string    `bson:"id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Duration    int       `bson:"duration"`
	Type        string    `bson:"type"`
	Intensity   string    `bson:"intensity"`
	ExpiresAt   time.Time `bson:"expires_at"`
	Status      string    `bson:"status"`
}

func toBatchDoc(b *domain.TaskAssignmentBatch) batchDoc {
	doc := batchDoc{
		Username:  b.Username,
		Date:      b.Date,
		Emotion:   string(b.Emotion),
		CreatedAt: b.CreatedAt,
	}
	for _, t := range b.Tasks {
		doc.Tasks = append(doc.Tasks, taskDoc{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Duration:    t.Duration,
			Type:        t.Type,
			Intensity:   t.Intensity,
			ExpiresAt:   t.ExpiresAt,
			Status:      string(t.Status),
		})
	}
	return doc
}

func (d batchDoc) toDomain() domain.TaskAssignmentBatch {
	out := domain.TaskAssignmentBatch{
		Username:  d.Username,
		Date:      d.Date,
		Emotion:   domain.Emotion(d.Emotion),
		CreatedAt: d.CreatedAt,
	}
	for _, t := range d.Tasks {
		out.Tasks = append(out.Tasks, domain.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Duration:    t.Duration,
			Type:        t.Type,
			Intensity:   t.Intensity,
			ExpiresAt:   t.ExpiresAt,
			Status:      domain.TaskStatus(t.Status),
		})
	}
	return out
}

// PutBatch replaces the batch for (username, date) wholesale.
func (s *Store) PutBatch(ctx context.Context, b *domain.TaskAssignmentBatch) error {
	_, err := s.batches.ReplaceOne(ctx,
		bson.M{"username": b.Username, "date": b.Date},
		toBatchDoc(b),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return storageErr("put task batch", err)
	}
	return nil
}

func (s *Store) ListBatches(ctx context.Context, username string) ([]domain.TaskAssignmentBatch, error) {
	cur, err := s.batches.Find(ctx, bson.M{"username": username})
	if err != nil {
		return nil, storageErr("list task batches", err)
	}
	var docs []batchDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode task batches", err)
	}
	out := make([]domain.TaskAssignmentBatch, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *Store) UpdateTaskStatus(ctx context.Context, username, taskID string, status domain.TaskStatus) error {
	res, err := s.batches.UpdateOne(ctx,
		bson.M{"username": username, "tasks.id": taskID},
		bson.M{"$set": bson.M{"tasks.$.status": string(status)}},
	)
	if err != nil {
		return storageErr("update task status", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendHistory inserts one emotion history record; the log is append-only.
func (s *Store) AppendHistory(ctx context.Context, rec *domain.EmotionHistoryRecord) error {
	_, err := s.history.InsertOne(ctx, bson.M{
		"username":  rec.Username,
		"date":      rec.Date,
		"emotion":   string(rec.Emotion),
		"timestamp": rec.Timestamp,
	})
	if err != nil {
		return storageErr("append emotion history", err)
	}
	return nil
}
