package source

import (
	"context"
	"time"

	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/repository"
)

// StoreSource serves persisted samples. Missing days are not filled in.
type StoreSource struct {
	repo repository.MetricRepository
	now  func() time.Time
}

func NewStoreSource(repo repository.MetricRepository) *StoreSource {
	return &StoreSource{repo: repo, now: time.Now}
}

func (s *StoreSource) Series(ctx context.Context, kind domain.MetricKind, days int) (domain.MetricSeries, error) {
	return s.SeriesEndingAt(ctx, kind, s.now(), days)
}

func (s *StoreSource) SeriesEndingAt(ctx context.Context, kind domain.MetricKind, end time.Time, days int) (domain.MetricSeries, error) {
	if err := ValidateRequest(kind, days); err != nil {
		return nil, err
	}
	from, to := windowDates(end, days)
	return s.repo.ListByKind(ctx, kind, from, to)
}
