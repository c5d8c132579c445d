package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"github.com/ayushvishnoipro/SkillzoAI-Assignment/pkg/metrics"
)

const (
	defaultModel = "gpt-4o"

	// The analyzer persona is fixed for every prompt; stage prompts carry
	// the task-specific instructions.
	systemPrompt = "You are a professional resume analyzer. Provide accurate, structured information based on the resume text."
)

// OpenAIGateway implements Gateway against any OpenAI-compatible chat
// completions endpoint.
type OpenAIGateway struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

type GatewayConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
}

// NewOpenAIGateway creates a gateway for the configured model endpoint.
func NewOpenAIGateway(cfg GatewayConfig) (*OpenAIGateway, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("api key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	return &OpenAIGateway{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (g *OpenAIGateway) params(prompt string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Opt(g.temperature),
		MaxTokens:   openai.Opt(g.maxTokens),
	}
}

// Complete sends the prompt and blocks until the full response arrives.
func (g *OpenAIGateway) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, g.params(prompt))
	if err != nil {
		metrics.IncreaseGatewayRequests("error")
		return "", NewGatewayError("completion", err)
	}

	if len(resp.Choices) == 0 {
		metrics.IncreaseGatewayRequests("error")
		return "", NewGatewayError("completion", errors.New("empty response"))
	}

	metrics.IncreaseGatewayRequests("ok")
	content := resp.Choices[0].Message.Content
	zap.S().Named("llm").Debugw("completion received", "model", g.model, "length", len(content))
	return content, nil
}

// CompleteStream sends the prompt and invokes fn with the cumulative text
// after every delta. The full response is returned once the stream ends.
func (g *OpenAIGateway) CompleteStream(ctx context.Context, prompt string, fn func(cumulative string) error) (string, error) {
	stream := g.client.Chat.Completions.NewStreaming(ctx, g.params(prompt))
	defer stream.Close()

	var acc strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		acc.WriteString(delta)
		if fn != nil {
			if err := fn(acc.String()); err != nil {
				metrics.IncreaseGatewayRequests("error")
				return "", NewGatewayError("stream", err)
			}
		}
	}

	if err := stream.Err(); err != nil {
		metrics.IncreaseGatewayRequests("error")
		return "", NewGatewayError("stream", err)
	}

	metrics.IncreaseGatewayRequests("ok")
	return acc.String(), nil
}
