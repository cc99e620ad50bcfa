package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crisphealth/health-assistant/internal/langfuse"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one narrator call.
const DefaultTimeout = 12 * time.Second

// Narration is the outcome of Policy.Narrate.
type Narration struct {
	Text     string
	Fallback bool
	// TraceID identifies the Langfuse trace, empty when Langfuse is disabled.
	TraceID string
}

// Policy is the one place narrator failures turn into fallback text.
type Policy struct {
	narrator Narrator
	langfuse langfuse.Client
	timeout  time.Duration
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewPolicy wraps narrator. A nil narrator always yields the fallback.
func NewPolicy(narrator Narrator, lf langfuse.Client, timeout time.Duration, logger *zap.Logger) *Policy {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Policy{
		narrator: narrator,
		langfuse: lf,
		timeout:  timeout,
		logger:   logger.Named("narrator"),
		tracer:   otel.Tracer("health-assistant/narrator"),
	}
}

// Narrate asks the narrator for text under a bounded timeout. A missing
// narrator, an error, a timeout or blank output all produce fallback.
// Narrate never fails.
func (p *Policy) Narrate(ctx context.Context, name, prompt, fallback string) Narration {
	ctx, span := p.tracer.Start(ctx, "Narrator."+name,
		trace.WithAttributes(
			attribute.String("narration.name", name),
			attribute.String("langfuse.observation.input", prompt),
		),
	)
	defer span.End()

	start := time.Now()
	text, err := p.generate(ctx, prompt)
	end := time.Now()
	elapsed := end.Sub(start)

	out := Narration{Text: text}
	if err != nil {
		out = Narration{Text: fallback, Fallback: true}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		if errors.Is(err, ErrOpenAIUnavailable) {
			p.logger.Debug("narrator not configured, using fallback", zap.String("name", name))
		} else {
			p.logger.Warn("narration failed, using fallback",
				zap.String("name", name),
				zap.Duration("elapsed", elapsed),
				zap.Error(err),
			)
		}
	}

	span.SetAttributes(
		attribute.Bool("narration.fallback", out.Fallback),
		attribute.String("langfuse.observation.output", out.Text),
	)

	out.TraceID = p.trace(ctx, name, prompt, out, start, end, err)
	return out
}

func (p *Policy) generate(ctx context.Context, prompt string) (string, error) {
	if p.narrator == nil {
		return "", ErrOpenAIUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := p.narrator.Generate(ctx, prompt)
		done <- result{text, err}
	}()

	// a narrator that ignores ctx must not hold the request past the timeout
	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		if strings.TrimSpace(r.text) == "" {
			return "", ErrOpenAIResponse
		}
		return strings.TrimSpace(r.text), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// trace reports the narration to Langfuse without blocking the caller.
func (p *Policy) trace(ctx context.Context, name, prompt string, n Narration, start, end time.Time, cause error) string {
	if p.langfuse == nil || !p.langfuse.IsEnabled() {
		return ""
	}

	gen := &langfuse.GenerationInput{
		Model:     p.model(),
		StartTime: start,
		EndTime:   end,
		Input:     prompt,
		Output:    n.Text,
		Level:     langfuse.LevelDefault,
	}
	if cause != nil {
		gen.Level = langfuse.LevelWarning
		gen.StatusMessage = cause.Error()
	}

	traceID := uuid.New().String()
	in := langfuse.TraceInput{
		ID:        traceID,
		SessionID: SessionFromContext(ctx),
		Name:      name,
		Input:     map[string]any{"prompt": prompt},
		Output:    map[string]any{"text": n.Text},
		Tags:      []string{"health-assistant"},
		Metadata: map[string]any{
			"fallback":   n.Fallback,
			"latency_ms": end.Sub(start).Milliseconds(),
		},
		Generation: gen,
	}

	sendCtx := context.WithoutCancel(ctx)
	go func() {
		// send failures are logged by the client
		_, _ = p.langfuse.CreateTrace(sendCtx, in)
	}()
	return traceID
}

// model names the narrator's model when it reports one.
func (p *Policy) model() string {
	if m, ok := p.narrator.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}
