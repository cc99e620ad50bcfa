package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	promptsPath   = "/api/public/v2/prompts/"
	promptTimeout = 5 * time.Second
)

// PromptLoaderConfig locates the narrator system prompt: a managed prompt
// in Langfuse, and a local copy used when Langfuse is unreachable.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	SavePath    string
}

var errLangfuseDisabled = errors.New("langfuse integration disabled")

// LoadPrompt returns the managed prompt, refreshing the local copy at
// SavePath, or the local copy when the prompt cannot be fetched.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig, logger *zap.Logger) (string, error) {
	c := newClient(Config{BaseURL: cfg.BaseURL, PublicKey: cfg.PublicKey, SecretKey: cfg.SecretKey}, logger)

	if cfg.PromptName != "" {
		prompt, err := c.prompt(ctx, cfg.PromptName, cfg.PromptLabel)
		switch {
		case err == nil:
			if err := writePromptFile(cfg.SavePath, prompt); err != nil {
				c.logger.Warn("failed to cache prompt locally", zap.String("path", cfg.SavePath), zap.Error(err))
			}
			return prompt, nil
		case !errors.Is(err, errLangfuseDisabled):
			c.logger.Warn("prompt fetch failed", zap.String("prompt", cfg.PromptName), zap.Error(err))
		}
	}

	return readPromptFile(cfg.SavePath)
}

// prompt fetches a text or chat prompt. Chat prompts are flattened into
// one "ROLE: content" block per message.
func (c *client) prompt(ctx context.Context, name, label string) (string, error) {
	if !c.enabled {
		return "", errLangfuseDisabled
	}

	query := url.Values{}
	if label != "" {
		query.Set("label", label)
	}

	ctx, cancel := context.WithTimeout(ctx, promptTimeout)
	defer cancel()

	var resp struct {
		Type   string          `json:"type"`
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := c.do(ctx, http.MethodGet, promptsPath+url.PathEscape(name), query, nil, &resp); err != nil {
		return "", err
	}

	switch resp.Type {
	case "", "text":
		var text string
		if err := json.Unmarshal(resp.Prompt, &text); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return text, nil
	case "chat":
		var messages []chatMessage
		if err := json.Unmarshal(resp.Prompt, &messages); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		return flatten(messages), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", resp.Type)
	}
}

type chatMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

// text is the message content; placeholders render as {{name}}.
func (m chatMessage) text() string {
	if m.Type == "placeholder" {
		if m.Name == "" {
			return ""
		}
		return "{{" + m.Name + "}}"
	}
	return m.Content
}

func flatten(messages []chatMessage) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		text := m.text()
		if text == "" {
			continue
		}
		role := m.Role
		if role == "" {
			role = "message"
		}
		parts = append(parts, strings.ToUpper(role)+": "+text)
	}
	return strings.Join(parts, "\n\n")
}

func readPromptFile(path string) (string, error) {
	if path == "" {
		return "", errors.New("no local prompt file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read local prompt file: %w", err)
	}
	return string(data), nil
}

func writePromptFile(path, prompt string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
