// Package langfuse talks to the Langfuse public API: narrations are
// ingested as a trace plus a generation observation, feedback as scores,
// and the narrator system prompt is fetched from prompt management.
// Without credentials the client is a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sendTimeout   = 5 * time.Second
	ingestionPath = "/api/public/ingestion"
)

// Observation levels understood by Langfuse.
const (
	LevelDefault = "DEFAULT"
	LevelWarning = "WARNING"
)

// Client is the interface for Langfuse operations.
type Client interface {
	// IsEnabled returns true if Langfuse is configured and enabled.
	IsEnabled() bool
	// CreateTrace records a trace, and its generation when one is given,
	// and returns the trace ID. The ID is generated locally, so it is
	// returned even when the send fails.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore attaches a score to an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
}

// TraceInput describes one narration trace.
type TraceInput struct {
	ID         string // generated when empty
	SessionID  string // chat session, if any
	Name       string
	Input      any
	Output     any
	Tags       []string
	Metadata   map[string]any
	Generation *GenerationInput
}

// GenerationInput is the model call made inside a trace.
type GenerationInput struct {
	Model     string
	StartTime time.Time
	EndTime   time.Time
	Input     any
	Output    any
	// Level is LevelWarning when the output is fallback text.
	Level         string
	StatusMessage string
}

// ScoreInput is a numeric score for a trace, e.g. a user rating.
type ScoreInput struct {
	TraceID string
	Name    string
	Value   float64
	Comment string
}

// Config holds Langfuse client configuration.
type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
}

func (c Config) enabled() bool {
	return c.BaseURL != "" && c.PublicKey != "" && c.SecretKey != ""
}

type client struct {
	baseURL     string
	publicKey   string
	secretKey   string
	environment string
	enabled     bool
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a Langfuse client. Missing URL or keys give a
// disabled no-op client.
func NewClient(cfg Config, logger *zap.Logger) Client {
	c := newClient(cfg, logger)

	switch {
	case c.enabled:
		c.logger.Info("enabled", zap.String("base_url", c.baseURL), zap.String("env", cfg.Environment))
	case cfg.BaseURL == "":
		c.logger.Info("disabled: LANGFUSE_BASE_URL is empty")
	case cfg.PublicKey == "":
		c.logger.Info("disabled: LANGFUSE_PUBLIC_KEY is empty")
	default:
		c.logger.Info("disabled: LANGFUSE_SECRET_KEY is empty")
	}
	return c
}

func newClient(cfg Config, logger *zap.Logger) *client {
	return &client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		publicKey:   cfg.PublicKey,
		secretKey:   cfg.SecretKey,
		environment: cfg.Environment,
		enabled:     cfg.enabled(),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger.Named("langfuse"),
	}
}

func (c *client) IsEnabled() bool {
	return c.enabled
}

func (c *client) CreateTrace(ctx context.Context, in TraceInput) (string, error) {
	if !c.enabled {
		return "", nil
	}

	traceID := in.ID
	if traceID == "" {
		traceID = uuid.New().String()
	}

	metadata := in.Metadata
	if c.environment != "" {
		if metadata == nil {
			metadata = make(map[string]any, 1)
		}
		metadata["environment"] = c.environment
	}

	events := []ingestionEvent{newEvent("trace-create", traceBody{
		ID:        traceID,
		Name:      in.Name,
		SessionID: in.SessionID,
		Input:     in.Input,
		Output:    in.Output,
		Tags:      in.Tags,
		Metadata:  metadata,
	})}

	if g := in.Generation; g != nil {
		level := g.Level
		if level == "" {
			level = LevelDefault
		}
		events = append(events, newEvent("generation-create", generationBody{
			ID:            uuid.New().String(),
			TraceID:       traceID,
			Name:          in.Name,
			Model:         g.Model,
			StartTime:     formatTime(g.StartTime),
			EndTime:       formatTime(g.EndTime),
			Input:         g.Input,
			Output:        g.Output,
			Level:         level,
			StatusMessage: g.StatusMessage,
		}))
	}

	if err := c.ingest(ctx, events); err != nil {
		c.logger.Warn("trace send failed", zap.String("trace_id", traceID), zap.Error(err))
		return traceID, err
	}
	return traceID, nil
}

func (c *client) CreateScore(ctx context.Context, in ScoreInput) error {
	if !c.enabled {
		return nil
	}

	event := newEvent("score-create", scoreBody{
		ID:      uuid.New().String(),
		TraceID: in.TraceID,
		Name:    in.Name,
		Value:   in.Value,
		Comment: in.Comment,
	})

	if err := c.ingest(ctx, []ingestionEvent{event}); err != nil {
		c.logger.Warn("score send failed", zap.String("trace_id", in.TraceID), zap.Error(err))
		return err
	}
	return nil
}

func (c *client) ingest(ctx context.Context, events []ingestionEvent) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return c.do(ctx, http.MethodPost, ingestionPath, nil, batchPayload{Batch: events}, nil)
}

// do sends an authenticated request to the public API. A non-nil body is
// JSON encoded; a non-nil out receives the decoded response.
func (c *client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + path
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.publicKey, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError is returned for 4xx and 5xx responses.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("langfuse %s returned %d", e.Path, e.Code)
	}
	return fmt.Sprintf("langfuse %s returned %d: %s", e.Path, e.Code, e.Body)
}

func newEvent(kind string, body any) ingestionEvent {
	return ingestionEvent{
		ID:        uuid.New().String(),
		Type:      kind,
		Timestamp: formatTime(time.Now()),
		Body:      body,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	SessionID string         `json:"sessionId,omitempty"`
	Input     any            `json:"input,omitempty"`
	Output    any            `json:"output,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type generationBody struct {
	ID            string `json:"id"`
	TraceID       string `json:"traceId"`
	Name          string `json:"name,omitempty"`
	Model         string `json:"model,omitempty"`
	StartTime     string `json:"startTime,omitempty"`
	EndTime       string `json:"endTime,omitempty"`
	Input         any    `json:"input,omitempty"`
	Output        any    `json:"output,omitempty"`
	Level         string `json:"level,omitempty"`
	StatusMessage string `json:"statusMessage,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
