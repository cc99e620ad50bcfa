package repository

import (
	"context"

	"github.com/crisphealth/health-assistant/internal/domain"
	"gorm.io/gorm"
)

type MetricRepository interface {
	CreateBatch(ctx context.Context, metrics []domain.HealthMetric) error
	// ListByKind returns samples of kind dated within [fromDate, toDate], oldest first.
	ListByKind(ctx context.Context, kind domain.MetricKind, fromDate, toDate string) (domain.MetricSeries, error)
	Count(ctx context.Context) (int64, error)
}

type metricRepository struct {
	db *gorm.DB
}

func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db}
}

func (r *metricRepository) CreateBatch(ctx context.Context, metrics []domain.HealthMetric) error {
	if len(metrics) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(metrics, 100).Error
}

func (r *metricRepository) ListByKind(ctx context.Context, kind domain.MetricKind, fromDate, toDate string) (domain.MetricSeries, error) {
	var metrics []domain.HealthMetric
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Where("date >= ? AND date <= ?", fromDate, toDate).
		Order("date ASC").
		Order("timestamp ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return domain.MetricSeries(metrics), nil
}

func (r *metricRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.HealthMetric{}).Count(&count).Error
	return count, err
}
