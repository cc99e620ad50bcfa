package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	MetricSourceMock  = "mock"
	MetricSourceStore = "store"

	CatalogSourceFile  = "file"
	CatalogSourceStore = "store"
)

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	Seed        bool

	// Data sources
	MetricSource    string
	CatalogSource   string
	MealCatalogPath string

	// OpenAI configuration
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	OpenAIMaxTokens   int64
	OpenAITemperature float64
	NarratorTimeout   time.Duration

	// Langfuse configuration
	LangfuseBaseURL     string
	LangfusePublicKey   string
	LangfuseSecretKey   string
	LangfuseEnv         string
	LangfusePromptName  string
	LangfusePromptLabel string
	NarratorPromptPath  string
	TraceSampleRatio    float64
}

func Load() *Config {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "3001"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Seed:        getEnv("SEED", "false") == "true",

		MetricSource:    getEnv("METRIC_SOURCE", MetricSourceMock),
		CatalogSource:   getEnv("CATALOG_SOURCE", CatalogSourceFile),
		MealCatalogPath: getEnv("MEAL_CATALOG_PATH", "data/meals.yaml"),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAIMaxTokens:   int64(getEnvInt("OPENAI_MAX_TOKENS", 300)),
		OpenAITemperature: getEnvFloat("OPENAI_TEMPERATURE", 0.7),
		NarratorTimeout:   getEnvDuration("NARRATOR_TIMEOUT", 12*time.Second),

		LangfuseBaseURL:     getEnv("LANGFUSE_BASE_URL", ""),
		LangfusePublicKey:   getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:   getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseEnv:         getEnv("LANGFUSE_ENV", "development"),
		LangfusePromptName:  getEnv("LANGFUSE_PROMPT_NAME", ""),
		LangfusePromptLabel: getEnv("LANGFUSE_PROMPT_LABEL", "production"),
		NarratorPromptPath:  getEnv("NARRATOR_PROMPT_PATH", ""),
		TraceSampleRatio:    getEnvFloat("TRACE_SAMPLE_RATIO", 1),
	}
}

// HasDatabase reports whether a database is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasLangfuse reports whether Langfuse credentials are complete.
func (c *Config) HasLangfuse() bool {
	return c.LangfuseBaseURL != "" && c.LangfusePublicKey != "" && c.LangfuseSecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("12s") or plain milliseconds ("12000").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
