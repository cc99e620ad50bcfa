package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crisphealth/health-assistant/internal/aggregate"
	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/llm"
	"github.com/crisphealth/health-assistant/internal/source"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// QuestionContextDays is the window attached to health questions.
	QuestionContextDays = 7

	MinTrendDays = 7
	MaxTrendDays = source.MaxDays
)

// NarrationPolicy turns prompts into text, degrading to fallback. *llm.Policy implements it.
type NarrationPolicy interface {
	Narrate(ctx context.Context, name, prompt, fallback string) llm.Narration
}

// HealthService implements the health tools.
type HealthService interface {
	// GetHealthData returns one metric series, or all five for domain.MetricAll.
	GetHealthData(ctx context.Context, kind domain.MetricKind, days int) (*domain.HealthData, error)
	// AskHealthQuestion answers a free-form question, optionally grounded in the last week of data.
	AskHealthQuestion(ctx context.Context, question string, includeData bool) (*domain.HealthAnswer, error)
	// GetHealthSummary narrates a summary over a fixed period.
	GetHealthSummary(ctx context.Context, period domain.SummaryPeriod) (*domain.HealthSummary, error)
	// GetHealthTrends computes statistics over days and compares them with the preceding window.
	GetHealthTrends(ctx context.Context, days int) (*domain.HealthTrends, error)
}

type healthService struct {
	source   source.MetricSource
	narrator NarrationPolicy
	logger   *zap.Logger
	now      func() time.Time
	tracer   trace.Tracer
}

// NewHealthService creates a new HealthService.
func NewHealthService(src source.MetricSource, narrator NarrationPolicy, logger *zap.Logger) HealthService {
	return &healthService{
		source:   src,
		narrator: narrator,
		logger:   logger.Named("health"),
		now:      time.Now,
		tracer:   otel.Tracer("health-assistant/health"),
	}
}

func (s *healthService) GetHealthData(ctx context.Context, kind domain.MetricKind, days int) (*domain.HealthData, error) {
	ctx, span := s.tracer.Start(ctx, "HealthService.GetHealthData",
		trace.WithAttributes(
			attribute.String("metric.type", string(kind)),
			attribute.Int("window.days", days),
		),
	)
	defer span.End()

	if _, ok := domain.ParseMetricKind(string(kind)); !ok {
		return nil, fmt.Errorf("%w: unknown metric type %q", domain.ErrInvalidArgument, kind)
	}

	if kind == domain.MetricAll {
		snapshot, err := source.Snapshot(ctx, s.source, days)
		if err != nil {
			return nil, sourceError(err)
		}
		return &domain.HealthData{Kind: kind, Snapshot: snapshot}, nil
	}

	if err := source.ValidateRequest(kind, days); err != nil {
		return nil, err
	}
	series, err := s.source.Series(ctx, kind, days)
	if err != nil {
		return nil, sourceError(err)
	}
	span.SetAttributes(attribute.Int("metric.samples", len(series)))
	return &domain.HealthData{Kind: kind, Series: series}, nil
}

func (s *healthService) AskHealthQuestion(ctx context.Context, question string, includeData bool) (*domain.HealthAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrInvalidArgument)
	}

	ctx, span := s.tracer.Start(ctx, "HealthService.AskHealthQuestion",
		trace.WithAttributes(attribute.Bool("question.include_data", includeData)),
	)
	defer span.End()

	var data *domain.HealthSnapshot
	if includeData {
		snapshot, err := source.Snapshot(ctx, s.source, QuestionContextDays)
		if err != nil {
			// answer without data rather than fail the question
			s.logger.Warn("could not fetch health data for question context", zap.Error(err))
		} else {
			data = snapshot
		}
	}

	n := s.narrator.Narrate(ctx, "health-question", questionPrompt(question, data, s.now()), llm.CannedAnswer(question))

	return &domain.HealthAnswer{
		Answer:             n.Text,
		Question:           question,
		HealthDataIncluded: data != nil,
		TraceID:            n.TraceID,
	}, nil
}

func (s *healthService) GetHealthSummary(ctx context.Context, period domain.SummaryPeriod) (*domain.HealthSummary, error) {
	days, ok := domain.PeriodDays[period]
	if !ok {
		return nil, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidArgument, period)
	}

	ctx, span := s.tracer.Start(ctx, "HealthService.GetHealthSummary",
		trace.WithAttributes(
			attribute.String("summary.period", string(period)),
			attribute.Int("window.days", days),
		),
	)
	defer span.End()

	data, err := source.Snapshot(ctx, s.source, days)
	if err != nil {
		return nil, sourceError(err)
	}

	n := s.narrator.Narrate(ctx, "health-summary", summaryPrompt(data, period, s.now()), llm.CannedSummary(period))

	result := &domain.HealthSummary{
		Summary: n.Text,
		Period:  period,
		TraceID: n.TraceID,
	}
	result.HealthData.TotalDays = days
	result.HealthData.MetricsCount = domain.MetricsCount{
		Steps:     len(data.Steps),
		Calories:  len(data.Calories),
		HeartRate: len(data.HeartRate),
		Sleep:     len(data.Sleep),
		Weight:    len(data.Weight),
	}
	return result, nil
}

func (s *healthService) GetHealthTrends(ctx context.Context, days int) (*domain.HealthTrends, error) {
	if days < MinTrendDays || days > MaxTrendDays {
		return nil, fmt.Errorf("%w: days must be between %d and %d", domain.ErrInvalidArgument, MinTrendDays, MaxTrendDays)
	}

	ctx, span := s.tracer.Start(ctx, "HealthService.GetHealthTrends",
		trace.WithAttributes(attribute.Int("window.days", days)),
	)
	defer span.End()

	current, err := source.Snapshot(ctx, s.source, days)
	if err != nil {
		return nil, sourceError(err)
	}

	stats := domain.TrendStats{
		Averages: aggregate.Averages(current),
		Totals:   aggregate.Totals(current),
		Trends: domain.TrendAnalysis{
			Period:     fmt.Sprintf("%d days", days),
			DataPoints: len(current.Steps),
		},
	}

	var traceID string
	previous := s.previousWindow(ctx, days)
	if previous == nil {
		stats.Trends.Analysis = llm.TrendsNotEnoughHistory
	} else {
		deltas := aggregate.Deltas(current, previous)
		stats.Changes = &deltas
		n := s.narrator.Narrate(ctx, "health-trends", trendsPrompt(deltas), llm.TrendsFallback)
		stats.Trends.Analysis = n.Text
		traceID = n.TraceID
	}

	if out, err := json.Marshal(stats); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(out)))
	}

	return &domain.HealthTrends{
		Trends:     stats,
		Period:     days,
		HealthData: current,
		TraceID:    traceID,
	}, nil
}

// previousWindow fetches the days-long window ending the day before the
// current window starts. It returns nil when the source cannot serve past
// windows, fails, or has no samples there.
func (s *healthService) previousWindow(ctx context.Context, days int) *domain.HealthSnapshot {
	ws, ok := s.source.(source.WindowSource)
	if !ok {
		return nil
	}

	end := s.now().AddDate(0, 0, -days)
	previous, err := source.SnapshotEndingAt(ctx, ws, end, days)
	if err != nil {
		s.logger.Warn("could not fetch previous window for trends", zap.Int("days", days), zap.Error(err))
		return nil
	}

	for _, kind := range domain.MetricKinds {
		if len(previous.Series(kind)) > 0 {
			return previous
		}
	}
	return nil
}

// sourceError keeps InvalidArgument visible to callers and marks everything
// else as an upstream failure.
func sourceError(err error) error {
	if errors.Is(err, domain.ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}
