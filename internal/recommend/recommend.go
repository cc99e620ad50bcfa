// Package recommend filters the meal catalog against a recommendation request.
package recommend

import (
	"fmt"
	"strings"

	"github.com/crisphealth/health-assistant/internal/catalog"
	"github.com/crisphealth/health-assistant/internal/domain"
)

const (
	// MaxMatches caps the meals returned to the caller.
	MaxMatches = 5
	// NarratorMeals is how many survivors are described to the narrator.
	NarratorMeals = 3

	allOptionsDescription = "Showing all available meal options"
)

// Selection is the result of running the filter pipeline.
type Selection struct {
	Matches                  []domain.Meal
	TotalMatchCount          int
	Top                      []domain.Meal
	AppliedFilterDescription string
}

// Recommend narrows the catalog in fixed stage order: category, prep time,
// calorie band, dietary restrictions. A stage runs only when its request
// field is set.
func Recommend(c *catalog.Catalog, req domain.RecommendationRequest) (*Selection, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	var candidates []domain.Meal
	if req.MealType != "" {
		candidates = c.Category(domain.MealCategory(req.MealType))
	} else {
		candidates = c.All()
	}

	if req.MaxPrepTime > 0 {
		candidates = filter(candidates, func(m *domain.Meal) bool {
			return m.PrepTime <= req.MaxPrepTime
		})
	}

	if req.CalorieRange != "" {
		band := domain.CalorieBands[domain.CalorieRange(req.CalorieRange)]
		candidates = filter(candidates, func(m *domain.Meal) bool {
			return band.Contains(m.Calories)
		})
	}

	if restrictions := nonBlank(req.DietaryRestrictions); len(restrictions) > 0 {
		candidates = filter(candidates, func(m *domain.Meal) bool {
			for _, r := range restrictions {
				if !SatisfiesRestriction(m, r) {
					return false
				}
			}
			return true
		})
	}

	sel := &Selection{
		TotalMatchCount:          len(candidates),
		Matches:                  head(candidates, MaxMatches),
		Top:                      head(candidates, NarratorMeals),
		AppliedFilterDescription: Describe(req),
	}
	return sel, nil
}

// Validate rejects enum values outside the known sets.
func Validate(req domain.RecommendationRequest) error {
	if req.MealType != "" {
		if _, ok := domain.ParseMealCategory(req.MealType); !ok {
			return fmt.Errorf("%w: unknown meal_type %q", domain.ErrInvalidArgument, req.MealType)
		}
	}
	if req.CalorieRange != "" {
		if _, ok := domain.CalorieBands[domain.CalorieRange(req.CalorieRange)]; !ok {
			return fmt.Errorf("%w: unknown calorie_range %q", domain.ErrInvalidArgument, req.CalorieRange)
		}
	}
	if req.MaxPrepTime < 0 {
		return fmt.Errorf("%w: max_prep_time must be positive", domain.ErrInvalidArgument)
	}
	return nil
}

// SatisfiesRestriction reports whether a meal is compatible with one dietary
// restriction: a tag containing the restriction (case-insensitive), or the
// restriction's own nutrition/tag rule.
func SatisfiesRestriction(m *domain.Meal, restriction string) bool {
	r := strings.ToLower(strings.TrimSpace(restriction))
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), r) {
			return true
		}
	}

	switch r {
	case "vegetarian":
		return m.HasTag("vegetarian") || m.HasTag("vegan")
	case "vegan":
		return m.HasTag("vegan")
	case "low-carb", "keto":
		return m.Nutrition.Carbs < 30 || m.HasTag("low-carb") || m.HasTag("keto-friendly")
	case "high-protein":
		return m.Nutrition.Protein >= 20 || m.HasTag("high-protein")
	case "gluten-free":
		return m.HasTag("gluten-free")
	}
	return false
}

// Describe renders the applied filters, e.g.
// "Filtered for: Showing lunch options, under 20 minutes prep time".
func Describe(req domain.RecommendationRequest) string {
	var parts []string
	if req.MealType != "" {
		parts = append(parts, fmt.Sprintf("Showing %s options", req.MealType))
	}
	if req.MaxPrepTime > 0 {
		parts = append(parts, fmt.Sprintf("under %d minutes prep time", req.MaxPrepTime))
	}
	if req.CalorieRange != "" {
		parts = append(parts, fmt.Sprintf("%s calorie range", req.CalorieRange))
	}
	if restrictions := nonBlank(req.DietaryRestrictions); len(restrictions) > 0 {
		parts = append(parts, fmt.Sprintf("following %s diet", strings.Join(restrictions, ", ")))
	}

	if len(parts) == 0 {
		return allOptionsDescription
	}
	return "Filtered for: " + strings.Join(parts, ", ")
}

func filter(meals []domain.Meal, keep func(*domain.Meal) bool) []domain.Meal {
	out := meals[:0:0]
	for i := range meals {
		if keep(&meals[i]) {
			out = append(out, meals[i])
		}
	}
	return out
}

func head(meals []domain.Meal, n int) []domain.Meal {
	if len(meals) < n {
		n = len(meals)
	}
	out := make([]domain.Meal, n)
	copy(out, meals[:n])
	return out
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
