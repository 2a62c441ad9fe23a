package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

func TestParseIntake(t *testing.T) {
	raw := "```json\n{\"emotion\":\"Happy\",\"question_type\":\"yes_no\",\"question\":\"Did this make your day better?\"}\n```"

	out, err := Parse(domain.KindEmotionAndFirstQuestion, raw)
	require.NoError(t, err)
	assert.Equal(t, domain.EmotionHappy, out.Emotion)
	require.NotNil(t, out.Question)
	assert.Equal(t, domain.QuestionYesNo, out.Question.Type)
	assert.Equal(t, "Did this make your day better?", out.Question.Text)
}

func TestParseIntakeRejectsUnknownEmotion(t *testing.T) {
	raw := `{"emotion":"Euphoric","question_type":"yes_no","question":"ok?"}`

	_, err := Parse(domain.KindEmotionAndFirstQuestion, raw)
	assert.Error(t, err)
}

func TestParseIntakeRejectsUnknownQuestionType(t *testing.T) {
	raw := `{"emotion":"Sad","question_type":"essay","question":"ok?"}`

	_, err := Parse(domain.KindEmotionAndFirstQuestion, raw)
	assert.Error(t, err)
}

func TestParseNextQuestionWithOptions(t *testing.T) {
	raw := `{"question_type":"choice","question":"Which felt stronger?","options":["Relief","Pride"]}`

	out, err := Parse(domain.KindNextQuestion, raw)
	require.NoError(t, err)
	assert.Equal(t, domain.QuestionChoice, out.Question.Type)
	assert.Equal(t, []string{"Relief", "Pride"}, out.Question.Options)
}

func TestParseFinalAdviceRequiresBothFields(t *testing.T) {
	_, err := Parse(domain.KindFinalAdvice, `{"advice":"rest","affirmation":""}`)
	assert.Error(t, err)

	out, err := Parse(domain.KindFinalAdvice, `{"advice":"rest","affirmation":"you did well"}`)
	require.NoError(t, err)
	assert.Equal(t, "rest", out.Advice)
	assert.Equal(t, "you did well", out.Affirmation)
}

func TestParseNotJSON(t *testing.T) {
	_, err := Parse(domain.KindNextQuestion, "Sure! Here is a question for you.")
	assert.Error(t, err)
}

func TestParseMemory(t *testing.T) {
	out, err := Parse(domain.KindMemoryExtraction, `{"save_memory": false}`)
	require.NoError(t, err)
	assert.False(t, out.SaveMemory)

	out, err = Parse(domain.KindMemoryExtraction, `{"save_memory": true, "memory": "I felt proud today."}`)
	require.NoError(t, err)
	assert.True(t, out.SaveMemory)
	assert.Equal(t, "I felt proud today.", out.Memory)
}

func TestParseSummaryStripsFences(t *testing.T) {
	out, err := Parse(domain.KindMonthlySummary, "```\nThis month I grew.\n```")
	require.NoError(t, err)
	assert.Equal(t, "This month I grew.", out.Summary)
}

func TestBuildIncludesMicroCheckin(t *testing.T) {
	p, err := Build(domain.OracleRequest{
		Kind:      domain.KindEmotionAndFirstQuestion,
		EntryText: "I passed my exam today!",
		Micro:     &domain.MicroCheckin{Type: "emoji", Value: "😄"},
	})
	require.NoError(t, err)
	assert.Contains(t, p.User, "I passed my exam today!")
	assert.Contains(t, p.User, "emoji")
}
