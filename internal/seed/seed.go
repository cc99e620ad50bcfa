package seed

import (
	"context"
	"fmt"

	"github.com/crisphealth/health-assistant/internal/catalog"
	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/repository"
	"github.com/crisphealth/health-assistant/internal/source"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const seededDays = 30

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.HealthMetric{}, &domain.Meal{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Run seeds the meal catalog and seededDays of generated metrics. A table
// that already holds rows is left alone, so Run is safe to call repeatedly.
func Run(ctx context.Context, db *gorm.DB, meals *catalog.Catalog, metrics source.MetricSource, logger *zap.Logger) error {
	if err := Migrate(db); err != nil {
		return err
	}

	if err := seedMeals(ctx, repository.NewMealRepository(db), meals, logger); err != nil {
		return err
	}
	if err := seedMetrics(ctx, repository.NewMetricRepository(db), metrics, logger); err != nil {
		return err
	}

	logger.Info("seed completed")
	return nil
}

func seedMeals(ctx context.Context, repo repository.MealRepository, meals *catalog.Catalog, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count meals: %w", err)
	}
	if count > 0 {
		logger.Info("meals already seeded", zap.Int64("count", count))
		return nil
	}

	all := meals.All()
	if err := repo.CreateBatch(ctx, all); err != nil {
		return fmt.Errorf("failed to seed meals: %w", err)
	}
	logger.Info("seeded meals", zap.Int("count", len(all)))
	return nil
}

func seedMetrics(ctx context.Context, repo repository.MetricRepository, metrics source.MetricSource, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count metrics: %w", err)
	}
	if count > 0 {
		logger.Info("metrics already seeded", zap.Int64("count", count))
		return nil
	}

	snapshot, err := source.Snapshot(ctx, metrics, seededDays)
	if err != nil {
		return fmt.Errorf("failed to generate metrics: %w", err)
	}

	var rows []domain.HealthMetric
	for _, kind := range domain.MetricKinds {
		rows = append(rows, snapshot.Series(kind)...)
	}
	if err := repo.CreateBatch(ctx, rows); err != nil {
		return fmt.Errorf("failed to seed metrics: %w", err)
	}
	logger.Info("seeded metrics", zap.Int("days", seededDays), zap.Int("rows", len(rows)))
	return nil
}
