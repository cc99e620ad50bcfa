// Script to test Langfuse connectivity by creating a test trace and score.
// Usage: go run scripts/langfuse-test/main.go
package main

import (
	"context"
	"time"

	"github.com/crisphealth/health-assistant/internal/config"
	"github.com/crisphealth/health-assistant/internal/langfuse"
	"github.com/crisphealth/health-assistant/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	lfCfg := langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	}
	logger.Info("langfuse connection test",
		zap.String("base_url", lfCfg.BaseURL),
		zap.String("public_key", maskKey(lfCfg.PublicKey)),
		zap.String("secret_key", maskKey(lfCfg.SecretKey)),
		zap.String("environment", lfCfg.Environment),
	)

	client := langfuse.NewClient(lfCfg, logger)
	if !client.IsEnabled() {
		logger.Fatal("langfuse client is disabled, check LANGFUSE_* env vars")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
		Name: "connectivity-test",
		Input: map[string]any{
			"message": "Hello from langfuse-test script",
			"time":    time.Now().Format(time.RFC3339),
		},
		Output: map[string]any{"status": "success"},
		Tags:   []string{"test", "manual"},
	})
	if err != nil {
		logger.Fatal("failed to create trace", zap.Error(err))
	}

	if err := client.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: traceID,
		Name:    service.FeedbackScoreName,
		Value:   5,
		Comment: "connectivity test",
	}); err != nil {
		logger.Fatal("failed to create score", zap.Error(err))
	}

	logger.Info("test trace created",
		zap.String("trace_id", traceID),
		zap.String("url", lfCfg.BaseURL+"/trace/"+traceID),
	)
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
