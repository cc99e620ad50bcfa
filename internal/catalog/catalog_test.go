package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/repository"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestFallback(t *testing.T) {
	c := Fallback()

	if c.Len() != 4 {
		t.Fatalf("expected 4 meals, got %d", c.Len())
	}

	wantOrder := []string{"breakfast_001", "lunch_001", "dinner_001", "snack_001"}
	all := c.All()
	for i, id := range wantOrder {
		if all[i].ID != id {
			t.Errorf("All()[%d] = %s, want %s", i, all[i].ID, id)
		}
	}

	for _, category := range domain.MealCategories {
		if got := len(c.Category(category)); got != 1 {
			t.Errorf("%s: expected 1 meal, got %d", category, got)
		}
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := Fallback()

	meals := c.Category(domain.CategoryBreakfast)
	meals[0].Name = "changed"

	all := c.All()
	all[1].Calories = 0

	meal, err := c.ByID("breakfast_001")
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	meal.PrepTime = 99
	meal.Tags[0] = "changed"
	meal.Ingredients[0].Name = "changed"
	meals[0].Instructions[0] = "changed"
	all[0].Tags = append(all[0].Tags[:0], "changed")

	if got := c.Category(domain.CategoryBreakfast)[0]; got.Name != "Avocado Toast with Eggs" || got.PrepTime != 10 {
		t.Errorf("catalog was mutated: %+v", got)
	}
	orig, _ := c.ByID("breakfast_001")
	if orig.Tags[0] == "changed" || orig.Ingredients[0].Name == "changed" || orig.Instructions[0] == "changed" {
		t.Errorf("catalog slices were mutated: %+v", orig)
	}
	if got := c.Category(domain.CategoryLunch)[0].Calories; got != 450 {
		t.Errorf("catalog was mutated via All(): calories = %v", got)
	}
}

func TestCatalog_ByIDNotFound(t *testing.T) {
	_, err := Fallback().ByID("dinner_999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		format    Format
		data      string
		wantIDs   []string
		wantError error
	}{
		{
			name:   "json with snacks key",
			format: FormatJSON,
			data: `{
				"snacks": [{"id": "s1", "name": "Nuts", "calories": 200, "prep_time": 1, "difficulty": "easy", "tags": ["vegan"]}],
				"breakfast": [{"id": "b1", "name": "Eggs", "calories": 300, "prep_time": 5, "difficulty": "easy"}]
			}`,
			wantIDs: []string{"b1", "s1"},
		},
		{
			name:   "yaml with snack key",
			format: FormatYAML,
			data: `
dinner:
  - id: d1
    name: Soup
    calories: 400
    prep_time: 30
    difficulty: medium
    nutrition: {protein: 10, carbs: 40, fat: 5, fiber: 7}
snack:
  - id: s1
    name: Apple
    calories: 95
    prep_time: 1
    difficulty: easy
`,
			wantIDs: []string{"d1", "s1"},
		},
		{
			name:   "snack and snacks merge in that order",
			format: FormatJSON,
			data: `{
				"snacks": [{"id": "s2", "name": "B"}],
				"snack": [{"id": "s1", "name": "A"}]
			}`,
			wantIDs: []string{"s1", "s2"},
		},
		{
			name:      "unknown section",
			format:    FormatJSON,
			data:      `{"brunch": [{"id": "x", "name": "X"}]}`,
			wantError: domain.ErrInvalidArgument,
		},
		{
			name:      "missing id",
			format:    FormatYAML,
			data:      "lunch:\n  - name: Nameless\n",
			wantError: domain.ErrInvalidArgument,
		},
		{
			name:      "empty document",
			format:    FormatJSON,
			data:      `{}`,
			wantError: domain.ErrInvalidArgument,
		},
		{
			name:      "unsupported format",
			format:    Format("toml"),
			data:      `x = 1`,
			wantError: domain.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode([]byte(tt.data), tt.format)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Fatalf("expected %v, got %v", tt.wantError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			all := c.All()
			if len(all) != len(tt.wantIDs) {
				t.Fatalf("expected %d meals, got %d", len(tt.wantIDs), len(all))
			}
			for i, id := range tt.wantIDs {
				if all[i].ID != id {
					t.Errorf("All()[%d] = %s, want %s", i, all[i].ID, id)
				}
			}
		})
	}
}

func TestDecode_AssignsCategoryFromSection(t *testing.T) {
	c, err := Decode([]byte(`{"snacks": [{"id": "s1", "name": "Nuts", "category": "dinner"}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := c.Category(domain.CategorySnack); len(got) != 1 || got[0].Category != domain.CategorySnack {
		t.Errorf("expected meal under snack, got %+v", got)
	}
}

func TestDecode_InvalidSyntax(t *testing.T) {
	if _, err := Decode([]byte(`{not json`), FormatJSON); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"meals.yaml":     FormatYAML,
		"data/MEALS.YML": FormatYAML,
		"meals.json":     FormatJSON,
		"meals":          FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestFileLoader_BundledCatalog(t *testing.T) {
	l := NewFileLoader(filepath.Join("..", "..", "data", "meals.yaml"), zap.NewNop())
	c := l.Catalog(context.Background())

	if c.Len() <= 4 {
		t.Fatalf("expected bundled catalog to be larger than fallback, got %d meals", c.Len())
	}
	if _, err := c.ByID("snack_001"); err != nil {
		t.Errorf("expected snack_001 from snacks section: %v", err)
	}
	for _, m := range c.Category(domain.CategorySnack) {
		if m.Category != domain.CategorySnack {
			t.Errorf("meal %s has category %s", m.ID, m.Category)
		}
	}
}

func TestFileLoader_FallsBackOnError(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"empty path", func(t *testing.T) string { return "" }},
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.json") }},
		{"corrupt file", func(t *testing.T) string {
			p := filepath.Join(t.TempDir(), "meals.json")
			if err := os.WriteFile(p, []byte("{corrupt"), 0o600); err != nil {
				t.Fatal(err)
			}
			return p
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFileLoader(tt.path(t), zap.NewNop()).Catalog(context.Background())
			if c.Len() != 4 {
				t.Errorf("expected fallback catalog, got %d meals", c.Len())
			}
		})
	}
}

func TestLoader_LoadsOnceUnderConcurrency(t *testing.T) {
	var loads atomic.Int32
	l := &Loader{
		name:   "counting",
		logger: zap.NewNop(),
		load: func(context.Context) (*Catalog, error) {
			loads.Add(1)
			return Fallback(), nil
		},
	}

	var wg sync.WaitGroup
	results := make([]*Catalog, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Catalog(context.Background())
		}(i)
	}
	wg.Wait()

	if loads.Load() != 1 {
		t.Errorf("expected a single load, got %d", loads.Load())
	}
	for i, c := range results {
		if c != results[0] {
			t.Errorf("caller %d received a different catalog", i)
		}
	}
}

func TestLoader_RetriesAfterFailedLoad(t *testing.T) {
	var loads atomic.Int32
	stored := New([]domain.Meal{
		{ID: "breakfast_001", Name: "Oats", Category: domain.CategoryBreakfast},
		{ID: "breakfast_002", Name: "Eggs", Category: domain.CategoryBreakfast},
		{ID: "lunch_001", Name: "Salad", Category: domain.CategoryLunch},
		{ID: "dinner_001", Name: "Fish", Category: domain.CategoryDinner},
		{ID: "snack_001", Name: "Apple", Category: domain.CategorySnack},
	})
	l := &Loader{
		name:   "flaky",
		logger: zap.NewNop(),
		load: func(context.Context) (*Catalog, error) {
			if loads.Add(1) == 1 {
				return nil, errors.New("database is restarting")
			}
			return stored, nil
		},
	}

	if got := l.Catalog(context.Background()).Len(); got != 4 {
		t.Errorf("first call: expected fallback with 4 meals, got %d", got)
	}
	if got := l.Catalog(context.Background()); got != stored {
		t.Errorf("second call: expected stored catalog, got %d meals", got.Len())
	}
	if got := l.Catalog(context.Background()); got != stored {
		t.Error("third call: expected cached stored catalog")
	}
	if loads.Load() != 2 {
		t.Errorf("expected 2 loads, got %d", loads.Load())
	}
}

func TestLoader_CancelledFirstCaller(t *testing.T) {
	l := &Loader{
		name:   "ctx",
		logger: zap.NewNop(),
		load: func(ctx context.Context) (*Catalog, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return New([]domain.Meal{{ID: "x", Name: "X", Category: domain.CategoryLunch}}), nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := l.Catalog(ctx).Len(); got != 1 {
		t.Errorf("expected loaded catalog despite cancelled context, got %d meals", got)
	}
}

func TestPreloaded(t *testing.T) {
	c := New([]domain.Meal{{ID: "x", Name: "X", Category: domain.CategoryDinner}})
	if got := Preloaded(c).Catalog(context.Background()); got != c {
		t.Error("expected the preloaded catalog")
	}
}

func TestStoreLoader(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&domain.Meal{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	repo := repository.NewMealRepository(db)

	t.Run("empty table falls back", func(t *testing.T) {
		c := NewStoreLoader(repo, zap.NewNop()).Catalog(context.Background())
		if c.Len() != 4 {
			t.Errorf("expected fallback catalog, got %d meals", c.Len())
		}
	})

	t.Run("reads stored meals", func(t *testing.T) {
		ctx := context.Background()
		meals := []domain.Meal{
			{ID: "dinner_010", Name: "Stew", Category: domain.CategoryDinner, Calories: 600},
			{ID: "breakfast_010", Name: "Porridge", Category: domain.CategoryBreakfast, Calories: 250},
		}
		if err := repo.CreateBatch(ctx, meals); err != nil {
			t.Fatalf("CreateBatch() error = %v", err)
		}

		c := NewStoreLoader(repo, zap.NewNop()).Catalog(ctx)
		all := c.All()
		if len(all) != 2 || all[0].ID != "breakfast_010" || all[1].ID != "dinner_010" {
			t.Errorf("unexpected catalog contents: %+v", all)
		}
	})
}
