// Package catalog holds the read-only meal catalog used by recommendations
// and the browse endpoints.
package catalog

import (
	"fmt"
	"slices"

	"github.com/crisphealth/health-assistant/internal/domain"
)

// Catalog is an immutable set of meals grouped by category. Accessors return
// deep copies so callers cannot mutate the shared catalog.
type Catalog struct {
	byCategory map[domain.MealCategory][]domain.Meal
	byID       map[string]domain.Meal
}

// New groups meals by their Category, keeping input order within a category.
// Meals with an unknown category are skipped.
func New(meals []domain.Meal) *Catalog {
	c := &Catalog{
		byCategory: make(map[domain.MealCategory][]domain.Meal, len(domain.MealCategories)),
		byID:       make(map[string]domain.Meal, len(meals)),
	}
	for _, m := range meals {
		if _, ok := domain.ParseMealCategory(string(m.Category)); !ok {
			continue
		}
		m.Position = len(c.byCategory[m.Category])
		c.byCategory[m.Category] = append(c.byCategory[m.Category], m)
		if _, dup := c.byID[m.ID]; !dup {
			c.byID[m.ID] = m
		}
	}
	return c
}

// Category returns the meals of one category in catalog order.
func (c *Catalog) Category(category domain.MealCategory) []domain.Meal {
	meals := c.byCategory[category]
	out := make([]domain.Meal, len(meals))
	for i, m := range meals {
		out[i] = clone(m)
	}
	return out
}

// All returns every meal, categories concatenated breakfast, lunch, dinner, snack.
func (c *Catalog) All() []domain.Meal {
	out := make([]domain.Meal, 0, c.Len())
	for _, category := range domain.MealCategories {
		for _, m := range c.byCategory[category] {
			out = append(out, clone(m))
		}
	}
	return out
}

// ByID looks up a meal by its identifier.
func (c *Catalog) ByID(id string) (*domain.Meal, error) {
	m, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: meal %q", domain.ErrNotFound, id)
	}
	m = clone(m)
	return &m, nil
}

// clone copies m including its slices, so callers never share backing
// arrays with the catalog.
func clone(m domain.Meal) domain.Meal {
	m.Tags = slices.Clone(m.Tags)
	m.Ingredients = slices.Clone(m.Ingredients)
	m.Instructions = slices.Clone(m.Instructions)
	return m
}

// Len is the total number of meals.
func (c *Catalog) Len() int {
	n := 0
	for _, meals := range c.byCategory {
		n += len(meals)
	}
	return n
}
