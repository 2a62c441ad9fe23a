package llm

import (
	"context"
	"fmt"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// MockOracle is a deterministic stand-in for local development without an
// API key. It produces well-formed results for every prompt kind.
type MockOracle struct{}

func NewMockOracle() *MockOracle {
	return &MockOracle{}
}

func (m *MockOracle) Generate(_ context.Context, req domain.OracleRequest) (*domain.OracleResult, error) {
	switch req.Kind {
	case domain.KindEmotionAndFirstQuestion:
		return &domain.OracleResult{
			Emotion: domain.EmotionHopeful,
			Question: &domain.Question{
				Type: domain.QuestionYesNo,
				Text: "Did writing this down change how the day feels to you?",
			},
		}, nil
	case domain.KindNextQuestion:
		return &domain.OracleResult{
			Question: &domain.Question{
				Type: domain.QuestionReflection,
				Text: fmt.Sprintf("What part of that stands out most to you right now? (round %d)", len(req.Answers)+1),
			},
		}, nil
	case domain.KindFinalAdvice:
		return &domain.OracleResult{
			Advice:      "Keep noticing the small moments you wrote about today.",
			Affirmation: "You showed up for yourself by putting this into words.",
		}, nil
	case domain.KindMemoryExtraction:
		return &domain.OracleResult{SaveMemory: false}, nil
	case domain.KindMonthlySummary:
		return &domain.OracleResult{Summary: "This month I kept showing up for myself, one entry at a time."}, nil
	}
	return nil, fmt.Errorf("%w: unknown prompt kind %q", domain.ErrOracle, req.Kind)
}
