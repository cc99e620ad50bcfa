package service

import (
	"context"
	"sync"
	"time"

	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/langfuse"
	"github.com/crisphealth/health-assistant/internal/llm"
)

// MockMetricSource is a mock implementation of source.MetricSource.
// Each kind returns one sample per requested day with a constant value.
type MockMetricSource struct {
	mu        sync.Mutex
	values    map[domain.MetricKind]float64
	err       error
	errKind   domain.MetricKind
	requested []int
}

func NewMockMetricSource() *MockMetricSource {
	return &MockMetricSource{
		values: map[domain.MetricKind]float64{
			domain.MetricSteps:     10000,
			domain.MetricCalories:  2000,
			domain.MetricHeartRate: 70,
			domain.MetricSleep:     7.5,
			domain.MetricWeight:    72.5,
		},
	}
}

func (m *MockMetricSource) Series(ctx context.Context, kind domain.MetricKind, days int) (domain.MetricSeries, error) {
	m.mu.Lock()
	m.requested = append(m.requested, days)
	m.mu.Unlock()

	if m.err != nil && (m.errKind == "" || m.errKind == kind) {
		return nil, m.err
	}
	return constantSeries(kind, m.values[kind], time.Now(), days), nil
}

// SetError makes Series fail, for every kind when kind is empty.
func (m *MockMetricSource) SetError(kind domain.MetricKind, err error) {
	m.errKind = kind
	m.err = err
}

func (m *MockMetricSource) Requested() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.requested...)
}

// MockWindowSource adds past windows with their own values.
type MockWindowSource struct {
	*MockMetricSource
	previous  map[domain.MetricKind]float64
	windowErr error
	ends      []time.Time
}

func NewMockWindowSource(previous map[domain.MetricKind]float64) *MockWindowSource {
	return &MockWindowSource{MockMetricSource: NewMockMetricSource(), previous: previous}
}

func (m *MockWindowSource) SeriesEndingAt(ctx context.Context, kind domain.MetricKind, end time.Time, days int) (domain.MetricSeries, error) {
	m.mu.Lock()
	m.ends = append(m.ends, end)
	m.mu.Unlock()

	if m.windowErr != nil {
		return nil, m.windowErr
	}
	v, ok := m.previous[kind]
	if !ok {
		return domain.MetricSeries{}, nil
	}
	return constantSeries(kind, v, end, days), nil
}

func constantSeries(kind domain.MetricKind, value float64, end time.Time, days int) domain.MetricSeries {
	series := make(domain.MetricSeries, 0, days)
	for i := days - 1; i >= 0; i-- {
		ts := end.AddDate(0, 0, -i)
		series = append(series, domain.HealthMetric{
			Kind:      kind,
			Value:     value,
			Unit:      domain.MetricUnits[kind],
			Date:      ts.Format("2006-01-02"),
			Timestamp: ts,
		})
	}
	return series
}

// MockNarrationPolicy records narrations and returns a fixed text, or the
// fallback when fail is set.
type MockNarrationPolicy struct {
	mu      sync.Mutex
	text    string
	fail    bool
	traceID string
	calls   []narrationCall
}

type narrationCall struct {
	name     string
	prompt   string
	fallback string
}

func NewMockNarrationPolicy(text string) *MockNarrationPolicy {
	return &MockNarrationPolicy{text: text}
}

func (m *MockNarrationPolicy) Narrate(ctx context.Context, name, prompt, fallback string) llm.Narration {
	m.mu.Lock()
	m.calls = append(m.calls, narrationCall{name: name, prompt: prompt, fallback: fallback})
	m.mu.Unlock()

	if m.fail {
		return llm.Narration{Text: fallback, Fallback: true, TraceID: m.traceID}
	}
	return llm.Narration{Text: m.text, TraceID: m.traceID}
}

func (m *MockNarrationPolicy) lastCall() narrationCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return narrationCall{}
	}
	return m.calls[len(m.calls)-1]
}

// MockLangfuseClient is a mock implementation of langfuse.Client.
type MockLangfuseClient struct {
	enabled bool
	err     error
	scores  []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool { return m.enabled }

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	return in.ID, m.err
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	if m.err != nil {
		return m.err
	}
	m.scores = append(m.scores, in)
	return nil
}
