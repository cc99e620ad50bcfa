package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = 300
	DefaultTemperature = 0.7
	defaultMaxRetries  = 1
)

// DefaultSystemPrompt is used when no prompt is configured in Langfuse or on disk.
const DefaultSystemPrompt = `You are a knowledgeable health assistant. You provide helpful, accurate health insights based on user data. Always:
- Give personalized responses when data is available
- Be encouraging and positive
- Suggest actionable improvements
- Never give medical diagnosis or replace professional medical advice
- Keep responses concise but informative
- Focus on trends and patterns in the data`

// OpenAIConfig configures the chat completion narrator.
type OpenAIConfig struct {
	APIKey       string
	Model        string
	BaseURL      string // optional, for OpenAI-compatible gateways
	MaxTokens    int64
	Temperature  float64
	SystemPrompt string
	// RequestTimeout bounds a single HTTP attempt; the caller's context
	// still bounds the whole call.
	RequestTimeout time.Duration
}

// OpenAIClient implements Narrator using the OpenAI chat completions API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	maxTokens    int64
	temperature  float64
	systemPrompt string
}

// NewOpenAIClient creates a narrator backed by OpenAI.
// Returns nil if the API key is empty.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	// 0 is a valid temperature; only out-of-range values get the default
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		cfg.Temperature = DefaultTemperature
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithMaxRetries(defaultMaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}

	return &OpenAIClient{
		client:       openai.NewClient(opts...),
		model:        cfg.Model,
		maxTokens:    cfg.MaxTokens,
		temperature:  cfg.Temperature,
		systemPrompt: cfg.SystemPrompt,
	}
}

// Model returns the configured chat model.
func (c *OpenAIClient) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Generate sends the system prompt and prompt as one chat completion and
// returns the first choice's text.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", ErrOpenAIUnavailable
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrOpenAIResponse)
	}
	return content, nil
}
