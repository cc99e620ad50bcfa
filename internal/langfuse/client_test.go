package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

// ingestionServer records the last batch it received.
type ingestionServer struct {
	*httptest.Server
	auth  string
	path  string
	batch []map[string]any
}

func newIngestionServer(t *testing.T, status int) *ingestionServer {
	t.Helper()
	s := &ingestionServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ := r.BasicAuth()
		s.auth = user + ":" + pass
		s.path = r.URL.Path

		var payload struct {
			Batch []map[string]any `json:"batch"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode batch: %v", err)
		}
		s.batch = payload.Batch

		w.WriteHeader(status)
		w.Write([]byte(`{"successes":[],"errors":[]}`))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *ingestionServer) client(env string) Client {
	return NewClient(Config{BaseURL: s.URL + "/", PublicKey: "pk-test", SecretKey: "sk-test", Environment: env}, zap.NewNop())
}

func TestNewClient_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		enabled bool
	}{
		{"configured", Config{BaseURL: "http://localhost:3000", PublicKey: "pk", SecretKey: "sk"}, true},
		{"empty base URL", Config{PublicKey: "pk", SecretKey: "sk"}, false},
		{"empty public key", Config{BaseURL: "http://localhost", SecretKey: "sk"}, false},
		{"empty secret key", Config{BaseURL: "http://localhost", PublicKey: "pk"}, false},
		{"all empty", Config{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewClient(tt.config, zap.NewNop()).IsEnabled(); got != tt.enabled {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.enabled)
			}
		})
	}
}

func TestDisabledClient_NoOp(t *testing.T) {
	c := NewClient(Config{}, zap.NewNop())

	traceID, err := c.CreateTrace(context.Background(), TraceInput{Name: "health-summary"})
	if err != nil || traceID != "" {
		t.Errorf("CreateTrace() = %q, %v; want empty, nil", traceID, err)
	}
	if err := c.CreateScore(context.Background(), ScoreInput{TraceID: "t", Name: "user_rating", Value: 4}); err != nil {
		t.Errorf("CreateScore() error = %v", err)
	}
}

func TestCreateTrace_TraceOnly(t *testing.T) {
	srv := newIngestionServer(t, http.StatusOK)

	traceID, err := srv.client("testing").CreateTrace(context.Background(), TraceInput{
		SessionID: "chat-123",
		Name:      "health-trends",
		Input:     map[string]any{"days": 30},
		Output:    map[string]any{"analysis": "Steps are up."},
		Tags:      []string{"health-assistant"},
	})
	if err != nil {
		t.Fatalf("CreateTrace() error = %v", err)
	}
	if traceID == "" {
		t.Error("expected generated trace ID")
	}

	if srv.auth != "pk-test:sk-test" {
		t.Errorf("unexpected basic auth %q", srv.auth)
	}
	if srv.path != ingestionPath {
		t.Errorf("unexpected path %q", srv.path)
	}
	if len(srv.batch) != 1 || srv.batch[0]["type"] != "trace-create" {
		t.Fatalf("expected one trace-create event, got %v", srv.batch)
	}

	body := srv.batch[0]["body"].(map[string]any)
	if body["id"] != traceID || body["name"] != "health-trends" || body["sessionId"] != "chat-123" {
		t.Errorf("unexpected trace body %v", body)
	}
	if body["metadata"].(map[string]any)["environment"] != "testing" {
		t.Errorf("expected environment metadata, got %v", body["metadata"])
	}
}

func TestCreateTrace_WithGeneration(t *testing.T) {
	srv := newIngestionServer(t, http.StatusOK)
	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	traceID, err := srv.client("").CreateTrace(context.Background(), TraceInput{
		ID:   "trace-fixed",
		Name: "meal-recommendations",
		Generation: &GenerationInput{
			Model:         "gpt-4o-mini",
			StartTime:     start,
			EndTime:       start.Add(1500 * time.Millisecond),
			Input:         "prompt",
			Output:        "fallback text",
			Level:         LevelWarning,
			StatusMessage: "context deadline exceeded",
		},
	})
	if err != nil {
		t.Fatalf("CreateTrace() error = %v", err)
	}
	if traceID != "trace-fixed" {
		t.Errorf("expected caller trace ID, got %q", traceID)
	}
	if len(srv.batch) != 2 || srv.batch[1]["type"] != "generation-create" {
		t.Fatalf("expected trace and generation events, got %v", srv.batch)
	}

	trace := srv.batch[0]["body"].(map[string]any)
	if _, ok := trace["metadata"]; ok {
		t.Errorf("expected no metadata without environment, got %v", trace["metadata"])
	}

	gen := srv.batch[1]["body"].(map[string]any)
	checks := map[string]any{
		"traceId":       "trace-fixed",
		"name":          "meal-recommendations",
		"model":         "gpt-4o-mini",
		"startTime":     "2025-03-01T08:00:00Z",
		"endTime":       "2025-03-01T08:00:01.5Z",
		"level":         LevelWarning,
		"statusMessage": "context deadline exceeded",
	}
	for key, want := range checks {
		if gen[key] != want {
			t.Errorf("generation %s = %v, want %v", key, gen[key], want)
		}
	}
}

func TestCreateScore_EnabledClient(t *testing.T) {
	srv := newIngestionServer(t, http.StatusOK)

	err := srv.client("").CreateScore(context.Background(), ScoreInput{
		TraceID: "trace-abc123",
		Name:    "user_rating",
		Value:   4.5,
		Comment: "Useful meal ideas",
	})
	if err != nil {
		t.Fatalf("CreateScore() error = %v", err)
	}

	if len(srv.batch) != 1 || srv.batch[0]["type"] != "score-create" {
		t.Fatalf("expected one score-create event, got %v", srv.batch)
	}
	body := srv.batch[0]["body"].(map[string]any)
	if body["traceId"] != "trace-abc123" || body["name"] != "user_rating" || body["value"] != 4.5 || body["comment"] != "Useful meal ideas" {
		t.Errorf("unexpected score body %v", body)
	}
}

func TestIngest_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		call   func(Client) error
	}{
		{"trace rejected", http.StatusInternalServerError, func(c Client) error {
			id, err := c.CreateTrace(context.Background(), TraceInput{Name: "test"})
			if id == "" {
				t.Error("expected trace ID even on error")
			}
			return err
		}},
		{"score unauthorized", http.StatusUnauthorized, func(c Client) error {
			return c.CreateScore(context.Background(), ScoreInput{TraceID: "trace-1", Name: "user_rating", Value: 1})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newIngestionServer(t, tt.status)

			err := tt.call(srv.client(""))
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if statusErr.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, statusErr.Code)
			}
		})
	}
}
