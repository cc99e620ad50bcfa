package config

import (
	"errors"
	"strings"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNoDatabase = errors.New("DATABASE_URL is not set")

// NewDatabase opens DATABASE_URL with the driver its scheme selects:
// postgres:// or postgresql:// for Postgres, sqlite: or file: for SQLite.
func NewDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	if !cfg.HasDatabase() {
		return nil, ErrNoDatabase
	}

	logLevel := logger.Silent
	if cfg.LogLevel == "debug" {
		logLevel = logger.Info
	}

	dialector, driver := dialectorFor(cfg.DatabaseURL)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// SQLite allows one writer
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	log.Info("database connection established", zap.String("driver", driver))
	return db, nil
}

func dialectorFor(url string) (gorm.Dialector, string) {
	switch {
	case strings.HasPrefix(url, "sqlite:"):
		return sqlite.Open(strings.TrimPrefix(strings.TrimPrefix(url, "sqlite:"), "//")), "sqlite"
	case strings.HasPrefix(url, "file:"):
		return sqlite.Open(url), "sqlite"
	default:
		return postgres.Open(url), "postgres"
	}
}
