package source

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/crisphealth/health-assistant/internal/domain"
)

type valueRange struct {
	min, max float64
}

var mockRanges = map[domain.MetricKind]valueRange{
	domain.MetricSteps:     {8000, 12000},
	domain.MetricCalories:  {1800, 2200},
	domain.MetricHeartRate: {65, 85},
	domain.MetricSleep:     {6.5, 8.5},
	domain.MetricWeight:    {70, 75},
}

// MockSource generates one random sample per calendar day.
type MockSource struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

type MockOption func(*MockSource)

// WithRand sets the random source, for deterministic output.
func WithRand(r *rand.Rand) MockOption {
	return func(m *MockSource) { m.rng = r }
}

// WithClock sets the function used as "today".
func WithClock(now func() time.Time) MockOption {
	return func(m *MockSource) { m.now = now }
}

func NewMockSource(opts ...MockOption) *MockSource {
	m := &MockSource{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockSource) Series(ctx context.Context, kind domain.MetricKind, days int) (domain.MetricSeries, error) {
	return m.SeriesEndingAt(ctx, kind, m.now(), days)
}

func (m *MockSource) SeriesEndingAt(ctx context.Context, kind domain.MetricKind, end time.Time, days int) (domain.MetricSeries, error) {
	if err := ValidateRequest(kind, days); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	end = end.UTC()
	series := make(domain.MetricSeries, 0, days)
	for i := days - 1; i >= 0; i-- {
		ts := end.AddDate(0, 0, -i)
		series = append(series, domain.HealthMetric{
			Kind:      kind,
			Value:     m.value(kind),
			Unit:      domain.MetricUnits[kind],
			Date:      ts.Format(dateLayout),
			Timestamp: ts,
		})
	}
	return series, nil
}

func (m *MockSource) value(kind domain.MetricKind) float64 {
	m.mu.Lock()
	r := m.rng.Float64()
	m.mu.Unlock()

	rng := mockRanges[kind]
	switch kind {
	case domain.MetricSleep:
		return math.Round((r*(rng.max-rng.min)+rng.min)*10) / 10
	case domain.MetricWeight:
		// stable around the midpoint, +/- 1 kg
		base := (rng.min + rng.max) / 2
		return math.Round((base+(r-0.5)*2)*10) / 10
	default:
		return math.Floor(r*(rng.max-rng.min) + rng.min)
	}
}
