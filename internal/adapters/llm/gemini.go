package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// GeminiOracle implements domain.Oracle on the Gemini API. Every call is
// attempted exactly once under a bounded timeout; there is no retry.
type GeminiOracle struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

// NewGeminiOracle creates an oracle backed by the Gemini API.
func NewGeminiOracle(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiOracle{
		client:    client,
		modelName: modelName,
		timeout:   timeout,
	}, nil
}

// Generate implements domain.Oracle. Call failures, timeouts, unparseable
// output, and out-of-vocabulary values all surface as domain.ErrOracle.
func (g *GeminiOracle) Generate(ctx context.Context, req domain.OracleRequest) (*domain.OracleResult, error) {
	prompt, err := Build(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOracle, err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	temp := float32(0.7)
	topP := float32(0.9)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt.User, genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: generate content: %v", domain.ErrOracle, err)
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: model returned empty text", domain.ErrOracle)
	}

	out, err := Parse(req.Kind, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOracle, err)
	}
	return out, nil
}
