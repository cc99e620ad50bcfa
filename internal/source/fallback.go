package source

import (
	"context"
	"errors"
	"time"

	"github.com/crisphealth/health-assistant/internal/domain"
	"go.uber.org/zap"
)

// FallbackSource serves from primary and switches to fallback for any
// request primary fails. Invalid requests are never retried.
type FallbackSource struct {
	primary  MetricSource
	fallback MetricSource
	logger   *zap.Logger
}

func NewFallbackSource(primary, fallback MetricSource, logger *zap.Logger) *FallbackSource {
	return &FallbackSource{primary: primary, fallback: fallback, logger: logger.Named("source")}
}

func (s *FallbackSource) Series(ctx context.Context, kind domain.MetricKind, days int) (domain.MetricSeries, error) {
	series, err := s.primary.Series(ctx, kind, days)
	if err == nil || errors.Is(err, domain.ErrInvalidArgument) {
		return series, err
	}
	s.logger.Warn("metric source failed, serving fallback data",
		zap.String("kind", string(kind)),
		zap.Int("days", days),
		zap.Error(err),
	)
	return s.fallback.Series(ctx, kind, days)
}

// SeriesEndingAt is served only when primary supports past windows, so a
// source without history keeps reporting none.
func (s *FallbackSource) SeriesEndingAt(ctx context.Context, kind domain.MetricKind, end time.Time, days int) (domain.MetricSeries, error) {
	primary, ok := s.primary.(WindowSource)
	if !ok {
		return domain.MetricSeries{}, nil
	}

	series, err := primary.SeriesEndingAt(ctx, kind, end, days)
	if err == nil || errors.Is(err, domain.ErrInvalidArgument) {
		return series, err
	}

	fallback, ok := s.fallback.(WindowSource)
	if !ok {
		return nil, err
	}
	s.logger.Warn("metric source failed for past window, serving fallback data",
		zap.String("kind", string(kind)),
		zap.Time("end", end),
		zap.Error(err),
	)
	return fallback.SeriesEndingAt(ctx, kind, end, days)
}
