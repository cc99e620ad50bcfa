// Package source provides health metric series. The default MockSource
// generates plausible random data; StoreSource reads persisted samples.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/crisphealth/health-assistant/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	MinDays = 1
	MaxDays = 365

	dateLayout = "2006-01-02"
)

// MetricSource yields a trailing window of samples for one kind.
type MetricSource interface {
	// Series returns up to days samples ending today, oldest first.
	Series(ctx context.Context, kind domain.MetricKind, days int) (domain.MetricSeries, error)
}

// WindowSource is implemented by sources that can serve windows ending
// before today. Trend analysis uses it for the preceding window.
type WindowSource interface {
	SeriesEndingAt(ctx context.Context, kind domain.MetricKind, end time.Time, days int) (domain.MetricSeries, error)
}

// ValidateRequest checks the kind and day count of a series request.
func ValidateRequest(kind domain.MetricKind, days int) error {
	if _, ok := domain.MetricUnits[kind]; !ok {
		return fmt.Errorf("%w: unknown metric type %q", domain.ErrInvalidArgument, kind)
	}
	if days < MinDays || days > MaxDays {
		return fmt.Errorf("%w: days must be between %d and %d", domain.ErrInvalidArgument, MinDays, MaxDays)
	}
	return nil
}

// Snapshot fetches all five series concurrently and stamps LastSync.
// Any single failure fails the snapshot.
func Snapshot(ctx context.Context, src MetricSource, days int) (*domain.HealthSnapshot, error) {
	return collect(ctx, days, func(ctx context.Context, kind domain.MetricKind) (domain.MetricSeries, error) {
		return src.Series(ctx, kind, days)
	})
}

// SnapshotEndingAt is Snapshot for a window ending at end.
func SnapshotEndingAt(ctx context.Context, src WindowSource, end time.Time, days int) (*domain.HealthSnapshot, error) {
	return collect(ctx, days, func(ctx context.Context, kind domain.MetricKind) (domain.MetricSeries, error) {
		return src.SeriesEndingAt(ctx, kind, end, days)
	})
}

func collect(ctx context.Context, days int, fetch func(context.Context, domain.MetricKind) (domain.MetricSeries, error)) (*domain.HealthSnapshot, error) {
	if days < MinDays || days > MaxDays {
		return nil, fmt.Errorf("%w: days must be between %d and %d", domain.ErrInvalidArgument, MinDays, MaxDays)
	}

	results := make([]domain.MetricSeries, len(domain.MetricKinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range domain.MetricKinds {
		i, kind := i, kind
		g.Go(func() error {
			series, err := fetch(gctx, kind)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", kind, err)
			}
			results[i] = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &domain.HealthSnapshot{LastSync: time.Now().UTC()}
	for i, kind := range domain.MetricKinds {
		snapshot.Set(kind, results[i])
	}
	return snapshot, nil
}

// windowDates returns the first and last calendar dates of a days-long window ending at end.
func windowDates(end time.Time, days int) (string, string) {
	end = end.UTC()
	return end.AddDate(0, 0, -(days - 1)).Format(dateLayout), end.Format(dateLayout)
}
