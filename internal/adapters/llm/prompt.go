package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

const systemPrompt = `You are a kind and thoughtful mental health assistant inside a private journaling app.
You listen without judgment and never diagnose. You never mention the emotion label you detected.
When asked for JSON you respond with a single valid JSON object and nothing else: no markdown, no backticks, no commentary.`

// Prompt is the system instruction plus the user content for one call.
type Prompt struct {
	System string
	User   string
}

// Build renders the prompt for one oracle request.
func Build(req domain.OracleRequest) (Prompt, error) {
	switch req.Kind {
	case domain.KindEmotionAndFirstQuestion:
		return Prompt{System: systemPrompt, User: intakeUser(req)}, nil
	case domain.KindNextQuestion:
		return Prompt{System: systemPrompt, User: nextQuestionUser(req)}, nil
	case domain.KindFinalAdvice:
		return Prompt{System: systemPrompt, User: finalAdviceUser(req)}, nil
	case domain.KindMemoryExtraction:
		return Prompt{System: systemPrompt, User: memoryUser(req)}, nil
	case domain.KindMonthlySummary:
		return Prompt{System: systemPrompt, User: summaryUser(req)}, nil
	}
	return Prompt{}, fmt.Errorf("unknown prompt kind %q", req.Kind)
}

func emotionList() string {
	labels := make([]string, 0, len(domain.KnownEmotions))
	for _, e := range domain.KnownEmotions {
		labels = append(labels, string(e))
	}
	return "[" + strings.Join(labels, ", ") + "]"
}

func intakeUser(req domain.OracleRequest) string {
	var b strings.Builder
	b.WriteString("Read the following journal entry and determine the single most dominant emotion the writer is expressing.\n")
	b.WriteString("The emotion must be only one from this list:\n")
	b.WriteString(emotionList())
	b.WriteString("\n\nThen write ONE short clarifying question that helps the writer validate that feeling.\n")
	b.WriteString("Choose the question format: \"yes_no\" (answerable with Yes/No), \"choice\" (2-4 short options), or \"reflection\" (free text).\n\n")
	b.WriteString("Journal Entry:\n\"")
	b.WriteString(req.EntryText)
	b.WriteString("\"\n")
	if req.Micro != nil {
		fmt.Fprintf(&b, "\nThe writer also submitted a quick %s check-in with value: %v\n", req.Micro.Type, req.Micro.Value)
	}
	b.WriteString(`
Respond only in valid JSON (no markdown, no backticks):
{
  "emotion": "<one emotion>",
  "question_type": "<yes_no|choice|reflection>",
  "question": "<the question>",
  "options": ["<only for choice questions>"]
}`)
	return b.String()
}

func historyBlock(entry string, answers []domain.Answer) string {
	var b strings.Builder
	b.WriteString("Journal Entry:\n\"")
	b.WriteString(entry)
	b.WriteString("\"\n\nDialogue so far:\n")
	for _, a := range answers {
		fmt.Fprintf(&b, "Answer %d: %s\n", a.Step, a.Text)
	}
	return b.String()
}

func nextQuestionUser(req domain.OracleRequest) string {
	var b strings.Builder
	b.WriteString("You are in the middle of a short validation dialogue about a journal entry.\n")
	b.WriteString(historyBlock(req.EntryText, req.Answers))
	b.WriteString("\nWrite the NEXT short clarifying question. Do not repeat earlier questions and do not reveal any emotion label.\n")
	b.WriteString(`
Respond only in valid JSON (no markdown, no backticks):
{
  "question_type": "<yes_no|choice|reflection>",
  "question": "<the question>",
  "options": ["<only for choice questions>"]
}`)
	return b.String()
}

func finalAdviceUser(req domain.OracleRequest) string {
	var b strings.Builder
	b.WriteString("A validation dialogue about a journal entry has finished.\n")
	b.WriteString(historyBlock(req.EntryText, req.Answers))
	b.WriteString(`
Now generate:
1. A short, supportive affirmation (1-2 lines).
2. A brief piece of advice (1-2 lines).

Respond only in valid JSON (no markdown, no backticks):
{
  "affirmation": "<short supportive affirmation>",
  "advice": "<short helpful advice>"
}`)
	return b.String()
}

func memoryUser(req domain.OracleRequest) string {
	return fmt.Sprintf(`Read the following journal entry and decide if it contains a meaningful personal moment worth saving — something the writer might want to remember later (gratitude, kindness, realization, joy).

If NO meaningful moment exists, respond:
{"save_memory": false}

If YES, respond exactly like this:
{
  "save_memory": true,
  "memory": "<1-3 sentence emotional reflection written from the writer's perspective>"
}

Guidelines:
- Use "I felt…", "I realized…", "It reminded me…"
- Make it warm and nostalgic.
- Do NOT repeat the entire story.

Journal Entry:
"%s"

Respond ONLY in JSON. No markdown.`, req.EntryText)
}

func summaryUser(req domain.OracleRequest) string {
	return fmt.Sprintf(`Summarize this month's emotions and overall mental health from the writer's perspective, using warm, personal, first-person language ("I felt…", "I realized…", "This month taught me…").

Guidelines:
- Keep it 2-3 lines.
- Make it sound like a personal reflection.
- Do NOT speak like an outside observer.
- Do NOT mention "the user", "they", or "their".
- Do NOT add advice or commentary — only the summary.

Texts:
%s`, strings.Join(req.MonthTexts, "\n\n"))
}

// stripFences removes markdown code-fence wrapping the model sometimes adds
// despite the JSON-only instruction.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Parse turns raw model output into a typed result for the request kind.
// Unparseable output or a value outside the closed vocabularies is an error;
// the caller decides whether a fallback applies.
func Parse(kind domain.PromptKind, raw string) (*domain.OracleResult, error) {
	text := stripFences(raw)

	switch kind {
	case domain.KindEmotionAndFirstQuestion:
		var out struct {
			Emotion      string   `json:"emotion"`
			QuestionType string   `json:"question_type"`
			Question     string   `json:"question"`
			Options      []string `json:"options"`
		}
		if err := json.Unmarshal([]byte(text), &out); err != nil {
			return nil, fmt.Errorf("intake output not valid JSON: %w", err)
		}
		emotion, ok := domain.ParseEmotion(out.Emotion)
		if !ok {
			return nil, fmt.Errorf("intake output has unknown emotion %q", out.Emotion)
		}
		qt, ok := domain.ParseQuestionType(out.QuestionType)
		if !ok {
			return nil, fmt.Errorf("intake output has unknown question type %q", out.QuestionType)
		}
		if strings.TrimSpace(out.Question) == "" {
			return nil, fmt.Errorf("intake output has empty question")
		}
		return &domain.OracleResult{
			Emotion:  emotion,
			Question: &domain.Question{Type: qt, Text: out.Question, Options: out.Options},
		}, nil

	case domain.KindNextQuestion:
		var out struct {
			QuestionType string   `json:"question_type"`
			Question     string   `json:"question"`
			Options      []string `json:"options"`
		}
		if err := json.Unmarshal([]byte(text), &out); err != nil {
			return nil, fmt.Errorf("question output not valid JSON: %w", err)
		}
		qt, ok := domain.ParseQuestionType(out.QuestionType)
		if !ok {
			return nil, fmt.Errorf("question output has unknown question type %q", out.QuestionType)
		}
		if strings.TrimSpace(out.Question) == "" {
			return nil, fmt.Errorf("question output has empty question")
		}
		return &domain.OracleResult{
			Question: &domain.Question{Type: qt, Text: out.Question, Options: out.Options},
		}, nil

	case domain.KindFinalAdvice:
		var out struct {
			Advice      string `json:"advice"`
			Affirmation string `json:"affirmation"`
		}
		if err := json.Unmarshal([]byte(text), &out); err != nil {
			return nil, fmt.Errorf("advice output not valid JSON: %w", err)
		}
		if strings.TrimSpace(out.Advice) == "" || strings.TrimSpace(out.Affirmation) == "" {
			return nil, fmt.Errorf("advice output missing advice or affirmation")
		}
		return &domain.OracleResult{Advice: out.Advice, Affirmation: out.Affirmation}, nil

	case domain.KindMemoryExtraction:
		var out struct {
			SaveMemory bool   `json:"save_memory"`
			Memory     string `json:"memory"`
		}
		if err := json.Unmarshal([]byte(text), &out); err != nil {
			return nil, fmt.Errorf("memory output not valid JSON: %w", err)
		}
		if out.SaveMemory && strings.TrimSpace(out.Memory) == "" {
			return nil, fmt.Errorf("memory output flagged save but is empty")
		}
		return &domain.OracleResult{SaveMemory: out.SaveMemory, Memory: out.Memory}, nil

	case domain.KindMonthlySummary:
		if text == "" {
			return nil, fmt.Errorf("summary output is empty")
		}
		return &domain.OracleResult{Summary: text}, nil
	}

	return nil, fmt.Errorf("unknown prompt kind %q", kind)
}
