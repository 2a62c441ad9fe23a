package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

type journalDoc struct {
	Username    string     `bson:"username"`
	Entries     []entryDoc `bson:"entries"`
	LastUpdated time.Time  `bson:"last_updated"`
}

type entryDoc struct {
	Date          string    `bson:"date"`
	Text          string    `bson:"text"`
	EmotionHidden string    `bson:"emotion_hidden,omitempty"`
	AIAdvice      string    `bson:"ai_advice,omitempty"`
	AIAffirmation string    `bson:"ai_affirmation,omitempty"`
	Timestamp     time.Time `bson:"timestamp"`
	LastUpdated   time.Time `bson:"last_updated"`
}

func toEntryDoc(e *domain.JournalEntry) entryDoc {
	return entryDoc{
		Date:          e.Date,
		Text:          e.Text,
		EmotionHidden: string(e.EmotionHidden),
		AIAdvice:      e.AIAdvice,
		AIAffirmation: e.AIAffirmation,
		Timestamp:     e.Timestamp,
		LastUpdated:   e.LastUpdated,
	}
}

func (d entryDoc) toDomain() domain.JournalEntry {
	return domain.JournalEntry{
		Date:          d.Date,
		Text:          d.Text,
		EmotionHidden: domain.Emotion(d.EmotionHidden),
		AIAdvice:      d.AIAdvice,
		AIAffirmation: d.AIAffirmation,
		Timestamp:     d.Timestamp,
		LastUpdated:   d.LastUpdated,
	}
}

// UpsertEntry ensures the user document exists, then replaces the entry for
// the same date in place via the positional operator, falling back to a push
// when no entry matched.
func (s *Store) UpsertEntry(ctx context.Context, username string, entry *domain.JournalEntry) error {
	now := time.Now().UTC()

	_, err := s.journals.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$setOnInsert": bson.M{"entries": []entryDoc{}},
			"$set":         bson.M{"last_updated": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return storageErr("ensure journal document", err)
	}

	doc := toEntryDoc(entry)
	res, err := s.journals.UpdateOne(ctx,
		bson.M{"username": username, "entries.date": entry.Date},
		bson.M{"$set": bson.M{"entries.$": doc}},
	)
	if err != nil {
		return storageErr("replace journal entry", err)
	}
	if res.MatchedCount == 0 {
		if _, err := s.journals.UpdateOne(ctx,
			bson.M{"username": username},
			bson.M{"$push": bson.M{"entries": doc}},
		); err != nil {
			return storageErr("push journal entry", err)
		}
	}
	return nil
}

func (s *Store) loadJournal(ctx context.Context, username string) (*journalDoc, error) {
	var doc journalDoc
	err := s.journals.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNoJournal
	}
	if err != nil {
		return nil, storageErr("load journal document", err)
	}
	return &doc, nil
}

func (s *Store) GetEntry(ctx context.Context, username, date string) (*domain.JournalEntry, error) {
	doc, err := s.loadJournal(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, e := range doc.Entries {
		if e.Date == date {
			out := e.toDomain()
			return &out, nil
		}
	}
	return nil, domain.ErrNoEntry
}

func (s *Store) ListEntries(ctx context.Context, username string) ([]domain.JournalEntry, error) {
	doc, err := s.loadJournal(ctx, username)
	if errors.Is(err, domain.ErrNoJournal) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.JournalEntry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		out = append(out, e.toDomain())
	}
	return out, nil
}

func (s *Store) ListEntriesByPrefix(ctx context.Context, username, datePrefix string) ([]domain.JournalEntry, error) {
	all, err := s.ListEntries(ctx, username)
	if err != nil {
		return nil, err
	}
	var out []domain.JournalEntry
	for _, e := range all {
		if strings.HasPrefix(e.Date, datePrefix) {
			out = append(out, e)
		}
	}
	return out, nil
}
