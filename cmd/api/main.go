// Crisp Health Assistant API
//
// Health metrics, AI-narrated insights and meal recommendations exposed as
// MCP-style tools.
//
//	@title			Crisp Health Assistant API
//	@version		1.0.0
//	@description	Health metrics, AI-narrated insights and meal recommendations, exposed as MCP-style tools.
//
//	@BasePath	/
//
//	@tag.name			health-tools
//	@tag.description	Health data, questions, summaries and trends
//
//	@tag.name			meal-tools
//	@tag.description	Meal recommendations
//
//	@tag.name			meals
//	@tag.description	Meal catalog browsing
//
//	@tag.name			mcp
//	@tag.description	Tool discovery and dispatch
//
//	@tag.name			feedback
//	@tag.description	User ratings of generated text
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crisphealth/health-assistant/internal/api"
	"github.com/crisphealth/health-assistant/internal/api/handler"
	"github.com/crisphealth/health-assistant/internal/catalog"
	"github.com/crisphealth/health-assistant/internal/config"
	"github.com/crisphealth/health-assistant/internal/langfuse"
	"github.com/crisphealth/health-assistant/internal/llm"
	"github.com/crisphealth/health-assistant/internal/repository"
	"github.com/crisphealth/health-assistant/internal/seed"
	"github.com/crisphealth/health-assistant/internal/service"
	"github.com/crisphealth/health-assistant/internal/source"
	"github.com/crisphealth/health-assistant/internal/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "health-assistant", handler.ServerVersion)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// Connect to database when one is configured
	var db *gorm.DB
	if cfg.HasDatabase() {
		db, err = config.NewDatabase(cfg, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := seed.Migrate(db); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	mockSource := source.NewMockSource()
	fileCatalog := catalog.NewFileLoader(cfg.MealCatalogPath, logger)

	if cfg.Seed {
		if db == nil {
			logger.Warn("SEED=true ignored, no database configured")
		} else {
			logger.Info("seeding database with sample data (SEED=true)")
			if err := seed.Run(ctx, db, fileCatalog.Catalog(ctx), mockSource, logger.Named("seed")); err != nil {
				logger.Fatal("failed to seed database", zap.Error(err))
			}
		}
	}

	metrics := metricSource(cfg, db, mockSource, logger)
	meals := catalogLoader(cfg, db, fileCatalog, logger)

	// Langfuse tracing and the narrator system prompt
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	}, logger)

	systemPrompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		PromptName:  cfg.LangfusePromptName,
		PromptLabel: cfg.LangfusePromptLabel,
		SavePath:    cfg.NarratorPromptPath,
	}, logger)
	if err != nil {
		logger.Info("using built-in narrator system prompt", zap.Error(err))
		systemPrompt = llm.DefaultSystemPrompt
	}

	// Initialize OpenAI client (nil if not configured; every tool then uses canned text)
	var narrator llm.Narrator
	if openaiClient := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.OpenAIModel,
		BaseURL:        cfg.OpenAIBaseURL,
		MaxTokens:      cfg.OpenAIMaxTokens,
		Temperature:    cfg.OpenAITemperature,
		SystemPrompt:   systemPrompt,
		RequestTimeout: cfg.NarratorTimeout,
	}); openaiClient != nil {
		narrator = openaiClient
	} else {
		logger.Warn("OpenAI API key not configured, narrated text will use canned responses")
	}
	policy := llm.NewPolicy(narrator, langfuseClient, cfg.NarratorTimeout, logger)

	// Initialize services
	healthService := service.NewHealthService(metrics, policy, logger)
	mealService := service.NewMealService(meals, policy)
	feedbackService := service.NewFeedbackService(langfuseClient)

	// Initialize handlers
	toolHandler := handler.NewToolHandler(healthService, mealService, logger)
	mealHandler := handler.NewMealHandler(mealService, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)
	chatHandler := handler.NewChatHandler(healthService, logger)

	// Setup router
	router := api.NewRouter(toolHandler, mealHandler, feedbackHandler, chatHandler, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.Bool("openai", narrator != nil),
			zap.Bool("langfuse", langfuseClient.IsEnabled()),
			zap.String("metric_source", cfg.MetricSource),
			zap.String("catalog_source", cfg.CatalogSource),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// metricSource picks the configured source. Persisted data falls back to
// generated data whenever the store fails.
func metricSource(cfg *config.Config, db *gorm.DB, mock *source.MockSource, logger *zap.Logger) source.MetricSource {
	if cfg.MetricSource != config.MetricSourceStore {
		return mock
	}
	if db == nil {
		logger.Warn("METRIC_SOURCE=store needs DATABASE_URL, using generated metrics")
		return mock
	}
	store := source.NewStoreSource(repository.NewMetricRepository(db))
	return source.NewFallbackSource(store, mock, logger)
}

func catalogLoader(cfg *config.Config, db *gorm.DB, file *catalog.Loader, logger *zap.Logger) *catalog.Loader {
	if cfg.CatalogSource != config.CatalogSourceStore {
		return file
	}
	if db == nil {
		logger.Warn("CATALOG_SOURCE=store needs DATABASE_URL, using catalog file")
		return file
	}
	return catalog.NewStoreLoader(repository.NewMealRepository(db), logger)
}
