package domain

// Emotion is the closed vocabulary of detected emotions. The label is stored
// with the journal entry and the session but is never returned to the client
// during the dialogue.
type Emotion string

const (
	EmotionHappy      Emotion = "Happy"
	EmotionSad        Emotion = "Sad"
	EmotionAnxious    Emotion = "Anxious"
	EmotionStressed   Emotion = "Stressed"
	EmotionAngry      Emotion = "Angry"
	EmotionLonely     Emotion = "Lonely"
	EmotionGrateful   Emotion = "Grateful"
	EmotionHopeful    Emotion = "Hopeful"
	EmotionGuilty     Emotion = "Guilty"
	EmotionConflicted Emotion = "Conflicted"
	EmotionUnknown    Emotion = "Unknown"
)

// KnownEmotions lists every detectable emotion, excluding Unknown.
var KnownEmotions = []Emotion{
	EmotionHappy, EmotionSad, EmotionAnxious, EmotionStressed, EmotionAngry,
	EmotionLonely, EmotionGrateful, EmotionHopeful, EmotionGuilty, EmotionConflicted,
}

// ParseEmotion validates a label against the closed vocabulary.
// Anything unrecognized maps to Unknown.
func ParseEmotion(s string) (Emotion, bool) {
	for _, e := range KnownEmotions {
		if string(e) == s {
			return e, true
		}
	}
	return EmotionUnknown, false
}

// QuestionType is the closed vocabulary of clarifying-question formats the
// client knows how to render.
type QuestionType string

const (
	QuestionYesNo      QuestionType = "yes_no"
	QuestionChoice     QuestionType = "choice"
	QuestionReflection QuestionType = "reflection"
)

// ParseQuestionType validates a question type coming back from the oracle.
func ParseQuestionType(s string) (QuestionType, bool) {
	switch QuestionType(s) {
	case QuestionYesNo, QuestionChoice, QuestionReflection:
		return QuestionType(s), true
	}
	return QuestionReflection, false
}

// Question is one clarifying question prepared for an unanswered step.
type Question struct {
	Step    int          `json:"step"`
	Type    QuestionType `json:"question_type"`
	Text    string       `json:"question"`
	Options []string     `json:"options,omitempty"`
}

// MicroCheckin is the small structured check-in the client attaches to a
// journal save (emoji, tags, happimeter slider). The type vocabulary is
// client-owned, so the value is carried through untouched.
type MicroCheckin struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// DateLayout is the wire format for session/entry dates.
const DateLayout = "2006-01-02"
