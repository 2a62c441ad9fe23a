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

type sessionDoc struct {
	Username         string       `bson:"username"`
	Date             string       `bson:"date"`
	JournalText      string       `bson:"journal_text"`
	EmotionHidden    string       `bson:"emotion_hidden"`
	Answers          []answerDoc  `bson:"answers"`
	LastAnsweredStep int          `bson:"last_answered_step"`
	NextQuestion     *questionDoc `bson:"next_question,omitempty"`
	Completed        bool         `bson:"completed"`
	Result           *resultDoc   `bson:"result,omitempty"`
	CreatedAt        time.Time    `bson:"created_at"`
	UpdatedAt        time.Time    `bson:"updated_at"`
	CompletedAt      *time.Time   `bson:"completed_at,omitempty"`
}

type answerDoc struct {
	Step int    `bson:"step"`
	Text string `bson:"answer"`
}

type questionDoc struct {
	Step    int      `bson:"step"`
	Type    string   `bson:"question_type"`
	Text    string   `bson:"question"`
	Options []string `bson:"options,omitempty"`
}

type resultDoc struct {
	Advice      string `bson:"advice"`
	Affirmation string `bson:"affirmation"`
}

func toSessionDoc(s *domain.ValidationSession) sessionDoc {
	doc := sessionDoc{
		Username:         s.Username,
		Date:             s.Date,
		JournalText:      s.JournalText,
		EmotionHidden:    string(s.EmotionHidden),
		LastAnsweredStep: s.LastAnsweredStep,
		Completed:        s.Completed,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		CompletedAt:      s.CompletedAt,
	}
	for _, a := range s.Answers {
		doc.Answers = append(doc.Answers, answerDoc{Step: a.Step, Text: a.Text})
	}
	if s.NextQuestion != nil {
		doc.NextQuestion = &questionDoc{
			Step:    s.NextQuestion.Step,
			Type:    string(s.NextQuestion.Type),
			Text:    s.NextQuestion.Text,
			Options: s.NextQuestion.Options,
		}
	}
	if s.Result != nil {
		doc.Result = &resultDoc{Advice: s.Result.Advice, Affirmation: s.Result.Affirmation}
	}
	return doc
}

func (d sessionDoc) toDomain() *domain.ValidationSession {
	out := &domain.ValidationSession{
		Username:         d.Username,
		Date:             d.Date,
		JournalText:      d.JournalText,
		EmotionHidden:    domain.Emotion(d.EmotionHidden),
		LastAnsweredStep: d.LastAnsweredStep,
		Completed:        d.Completed,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		CompletedAt:      d.CompletedAt,
	}
	for _, a := range d.Answers {
		out.Answers = append(out.Answers, domain.Answer{Step: a.Step, Text: a.Text})
	}
	if d.NextQuestion != nil {
		out.NextQuestion = &domain.Question{
			Step:    d.NextQuestion.Step,
			Type:    domain.QuestionType(d.NextQuestion.Type),
			Text:    d.NextQuestion.Text,
			Options: d.NextQuestion.Options,
		}
	}
	if d.Result != nil {
		out.Result = &domain.SessionResult{Advice: d.Result.Advice, Affirmation: d.Result.Affirmation}
	}
	return out
}

func (s *Store) GetSession(ctx context.Context, username, date string) (*domain.ValidationSession, error) {
	var doc sessionDoc
	err := s.sessions.FindOne(ctx, bson.M{"username": username, "date": date}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storageErr("load session", err)
	}
	return doc.toDomain(), nil
}

func (s *Store) PutSession(ctx context.Context, sess *domain.ValidationSession) error {
	_, err := s.sessions.ReplaceOne(ctx,
		bson.M{"username": sess.Username, "date": sess.Date},
		toSessionDoc(sess),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return storageErr("put session", err)
	}
	return nil
}

func (s *Store) DeleteSession(ctx context.Context, username, date string) error {
	if _, err := s.sessions.DeleteOne(ctx, bson.M{"username": username, "date": date}); err != nil {
		return storageErr("delete session", err)
	}
	return nil
}
