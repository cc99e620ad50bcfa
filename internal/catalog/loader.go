package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/crisphealth/health-assistant/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader loads the catalog on first use and caches it once a load
// succeeds. Concurrent callers share one in-flight load. A failed load
// serves Fallback() to its callers and the next call tries again.
type Loader struct {
	name   string
	load   func(ctx context.Context) (*Catalog, error)
	logger *zap.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	catalog *Catalog
}

// NewFileLoader reads a JSON or YAML catalog from path.
func NewFileLoader(path string, logger *zap.Logger) *Loader {
	return &Loader{
		name:   "file",
		logger: logger.Named("catalog"),
		load: func(_ context.Context) (*Catalog, error) {
			if path == "" {
				return nil, fmt.Errorf("no catalog path configured")
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return Decode(data, FormatFromPath(path))
		},
	}
}

// NewStoreLoader reads the catalog from the meals table.
func NewStoreLoader(repo repository.MealRepository, logger *zap.Logger) *Loader {
	return &Loader{
		name:   "store",
		logger: logger.Named("catalog"),
		load: func(ctx context.Context) (*Catalog, error) {
			meals, err := repo.List(ctx)
			if err != nil {
				return nil, err
			}
			if len(meals) == 0 {
				return nil, fmt.Errorf("meals table is empty")
			}
			return New(meals), nil
		},
	}
}

// Preloaded wraps an already built catalog.
func Preloaded(c *Catalog) *Loader {
	return &Loader{name: "preloaded", logger: zap.NewNop(), catalog: c}
}

// Catalog returns the cached catalog, loading it when nothing is cached yet.
func (l *Loader) Catalog(ctx context.Context) *Catalog {
	if c := l.cached(); c != nil {
		return c
	}

	v, err, _ := l.group.Do(l.name, func() (any, error) {
		if c := l.cached(); c != nil {
			return c, nil
		}
		// a cancelled first request must not fail the shared load
		c, err := l.load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.catalog = c
		l.mu.Unlock()
		l.logger.Info("meal catalog loaded",
			zap.String("source", l.name),
			zap.Int("meals", c.Len()),
		)
		return c, nil
	})
	if err != nil {
		l.logger.Warn("failed to load meal catalog, serving fallback",
			zap.String("source", l.name),
			zap.Error(err),
		)
		return Fallback()
	}
	return v.(*Catalog)
}

func (l *Loader) cached() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog
}
