// Package llm wraps the text-generation model behind the Narrator interface
// and applies the single fallback-text policy used by every tool.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates the response carried no usable text.
	ErrOpenAIResponse = errors.New("empty OpenAI response")
)

// Narrator generates free text from a prompt. It may fail or be slow;
// callers go through Policy so failures become fallback text.
type Narrator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NarratorFunc adapts a function to Narrator.
type NarratorFunc func(ctx context.Context, prompt string) (string, error)

func (f NarratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type sessionKey struct{}

// WithSession tags narrations made with ctx as part of one chat session.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionFromContext returns the session set by WithSession, if any.
func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
