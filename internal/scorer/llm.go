package scorer

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const systemPrompt = `You are a strict content evaluation judge. Score the artifact against the given instructions on a scale from 0.0 to 1.0 and explain the score in one or two sentences. Respond with only a JSON object: {"score": <float>, "feedback": "<string>"}`

const defaultTimeout = 60 * time.Second

// #region model-config
// ModelConfig selects and tunes the judge model behind an OpenAI-compatible
// chat API.
type ModelConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration // per-call cap; the pipeline never waits indefinitely
}
// #endregion model-config

// #region llm-scorer
// LLMScorer scores steps by prompting a chat model as a judge.
type LLMScorer struct {
	model   model.ToolCallingChatModel
	timeout time.Duration
}

// NewLLMScorer builds a scorer over an OpenAI-compatible endpoint.
func NewLLMScorer(ctx context.Context, cfg ModelConfig) (*LLMScorer, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("new chat model: %w", err)
	}
	return &LLMScorer{model: cm, timeout: cfg.Timeout}, nil
}

// NewLLMScorerWithModel creates an LLMScorer with an injected chat model.
// Used for testing without a real endpoint.
func NewLLMScorerWithModel(m model.ToolCallingChatModel, timeout time.Duration) *LLMScorer {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &LLMScorer{model: m, timeout: timeout}
}
// #endregion llm-scorer

// #region score
// Score implements Gateway. The returned score is clamped to [0, 1].
func (s *LLMScorer) Score(ctx context.Context, req Request) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msgs := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userMessage(req)),
	}
	out, err := s.model.Generate(ctx, msgs)
	if err != nil {
		return Result{}, fmt.Errorf("scorer generate: %w", err)
	}

	res, err := parseResult(out.Content)
	if err != nil {
		return Result{}, err
	}
	res.Score = Clamp(res.Score)
	return res, nil
}

// userMessage assembles instructions, content, and prior stage feedback.
func userMessage(req Request) string {
	return fmt.Sprintf("Instructions:\n%s\n\nArtifact:\n%s%s",
		req.Instructions, req.Content, priorBlock(req.Prior))
}
// #endregion score
