// Script to seed the configured database with the meal catalog and 30 days
// of generated metrics. Usage: DATABASE_URL=... go run scripts/seed/main.go
package main

import (
	"context"

	"github.com/crisphealth/health-assistant/internal/catalog"
	"github.com/crisphealth/health-assistant/internal/config"
	"github.com/crisphealth/health-assistant/internal/seed"
	"github.com/crisphealth/health-assistant/internal/source"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := config.NewDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx := context.Background()
	meals := catalog.NewFileLoader(cfg.MealCatalogPath, logger).Catalog(ctx)
	if err := seed.Run(ctx, db, meals, source.NewMockSource(), logger.Named("seed")); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}
