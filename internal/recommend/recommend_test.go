package recommend

import (
	"errors"
	"fmt"
	"testing"

	"github.com/crisphealth/health-assistant/internal/catalog"
	"github.com/crisphealth/health-assistant/internal/domain"
)

func names(meals []domain.Meal) []string {
	out := make([]string, len(meals))
	for i, m := range meals {
		out[i] = m.Name
	}
	return out
}

func contains(meals []domain.Meal, name string) bool {
	for _, m := range meals {
		if m.Name == name {
			return true
		}
	}
	return false
}

// largeCatalog has three meals per category, inserted out of category order.
func largeCatalog() *catalog.Catalog {
	var meals []domain.Meal
	categories := []domain.MealCategory{domain.CategorySnack, domain.CategoryDinner, domain.CategoryLunch, domain.CategoryBreakfast}
	for _, category := range categories {
		for i := 1; i <= 3; i++ {
			meals = append(meals, domain.Meal{
				ID:       fmt.Sprintf("%s_%03d", category, i),
				Name:     fmt.Sprintf("%s %d", category, i),
				Category: category,
				Calories: float64(100 * i * 2),
				PrepTime: 10 * i,
				Tags:     []string{"tag"},
			})
		}
	}
	meals = append(meals,
		domain.Meal{ID: "v1", Name: "Vegan Bowl", Category: domain.CategoryLunch, Calories: 400, Tags: []string{"vegan"}},
		domain.Meal{ID: "v2", Name: "Vegan Curry", Category: domain.CategoryDinner, Calories: 550, Tags: []string{"Vegan", "gluten-free"}},
	)
	return catalog.New(meals)
}

func TestRecommend_FallbackScenarios(t *testing.T) {
	c := catalog.Fallback()

	tests := []struct {
		name      string
		req       domain.RecommendationRequest
		wantTotal int
		include   []string
		exclude   []string
		wantDesc  string
	}{
		{
			name:      "breakfast only",
			req:       domain.RecommendationRequest{MealType: "breakfast"},
			wantTotal: 1,
			include:   []string{"Avocado Toast with Eggs"},
			wantDesc:  "Filtered for: Showing breakfast options",
		},
		{
			name:      "high calorie",
			req:       domain.RecommendationRequest{CalorieRange: "high"},
			wantTotal: 1,
			include:   []string{"Herb-Crusted Chicken with Roasted Vegetables"},
			exclude:   []string{"Apple with Almond Butter"},
			wantDesc:  "Filtered for: high calorie range",
		},
		{
			name:      "vegetarian",
			req:       domain.RecommendationRequest{DietaryRestrictions: []string{"vegetarian"}},
			wantTotal: 2,
			include:   []string{"Avocado Toast with Eggs", "Mediterranean Quinoa Salad"},
			exclude:   []string{"Herb-Crusted Chicken with Roasted Vegetables"},
			wantDesc:  "Filtered for: following vegetarian diet",
		},
		{
			name:      "snack category",
			req:       domain.RecommendationRequest{MealType: "snack"},
			wantTotal: 1,
			include:   []string{"Apple with Almond Butter"},
		},
		{
			name:      "prep time ceiling is inclusive",
			req:       domain.RecommendationRequest{MaxPrepTime: 10},
			wantTotal: 2,
			include:   []string{"Avocado Toast with Eggs", "Apple with Almond Butter"},
			exclude:   []string{"Mediterranean Quinoa Salad"},
			wantDesc:  "Filtered for: under 10 minutes prep time",
		},
		{
			name:      "high-protein by nutrition rule",
			req:       domain.RecommendationRequest{DietaryRestrictions: []string{"high-protein"}},
			wantTotal: 2,
			include:   []string{"Avocado Toast with Eggs", "Herb-Crusted Chicken with Roasted Vegetables"},
		},
		{
			name:      "low-carb by carbs rule",
			req:       domain.RecommendationRequest{DietaryRestrictions: []string{"low-carb"}},
			wantTotal: 2,
			include:   []string{"Herb-Crusted Chicken with Roasted Vegetables", "Apple with Almond Butter"},
		},
		{
			name:      "restrictions are ANDed",
			req:       domain.RecommendationRequest{DietaryRestrictions: []string{"vegetarian", "quick"}},
			wantTotal: 1,
			include:   []string{"Avocado Toast with Eggs"},
			wantDesc:  "Filtered for: following vegetarian, quick diet",
		},
		{
			name:      "no survivors",
			req:       domain.RecommendationRequest{MealType: "dinner", CalorieRange: "low"},
			wantTotal: 0,
		},
		{
			name:      "all filters described in order",
			req:       domain.RecommendationRequest{MealType: "lunch", MaxPrepTime: 20, CalorieRange: "medium", DietaryRestrictions: []string{"vegetarian"}},
			wantTotal: 1,
			include:   []string{"Mediterranean Quinoa Salad"},
			wantDesc:  "Filtered for: Showing lunch options, under 20 minutes prep time, medium calorie range, following vegetarian diet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Recommend(c, tt.req)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if sel.TotalMatchCount != tt.wantTotal {
				t.Errorf("TotalMatchCount = %d, want %d (%v)", sel.TotalMatchCount, tt.wantTotal, names(sel.Matches))
			}
			for _, n := range tt.include {
				if !contains(sel.Matches, n) {
					t.Errorf("expected %q in matches %v", n, names(sel.Matches))
				}
			}
			for _, n := range tt.exclude {
				if contains(sel.Matches, n) {
					t.Errorf("did not expect %q in matches", n)
				}
			}
			if tt.wantDesc != "" && sel.AppliedFilterDescription != tt.wantDesc {
				t.Errorf("AppliedFilterDescription = %q, want %q", sel.AppliedFilterDescription, tt.wantDesc)
			}
			if len(sel.Matches) > MaxMatches || sel.TotalMatchCount < len(sel.Matches) {
				t.Errorf("match bounds violated: total=%d len=%d", sel.TotalMatchCount, len(sel.Matches))
			}
		})
	}
}

func TestRecommend_NoFilters(t *testing.T) {
	sel, err := Recommend(largeCatalog(), domain.RecommendationRequest{})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	want := []string{"breakfast 1", "breakfast 2", "breakfast 3", "lunch 1", "lunch 2"}
	got := names(sel.Matches)
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Matches[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if sel.TotalMatchCount != 14 {
		t.Errorf("TotalMatchCount = %d, want 14", sel.TotalMatchCount)
	}
	if sel.AppliedFilterDescription != "Showing all available meal options" {
		t.Errorf("AppliedFilterDescription = %q", sel.AppliedFilterDescription)
	}
	if len(sel.Top) != NarratorMeals || sel.Top[0].Name != "breakfast 1" {
		t.Errorf("unexpected narrator meals %v", names(sel.Top))
	}
}

func TestRecommend_Properties(t *testing.T) {
	c := largeCatalog()

	for _, r := range []string{"low", "medium", "high"} {
		t.Run("calorie band "+r, func(t *testing.T) {
			sel, err := Recommend(c, domain.RecommendationRequest{CalorieRange: r})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			band := domain.CalorieBands[domain.CalorieRange(r)]
			for _, m := range sel.Matches {
				if m.Calories < band.Min || m.Calories > band.Max {
					t.Errorf("%s has %v calories, outside %s band", m.Name, m.Calories, r)
				}
			}
		})
	}

	t.Run("vegan", func(t *testing.T) {
		sel, err := Recommend(c, domain.RecommendationRequest{DietaryRestrictions: []string{"vegan"}})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if sel.TotalMatchCount != 2 {
			t.Errorf("TotalMatchCount = %d, want 2", sel.TotalMatchCount)
		}
		for _, m := range sel.Matches {
			if !SatisfiesRestriction(&m, "vegan") {
				t.Errorf("%s is not vegan: %v", m.Name, m.Tags)
			}
		}
	})
}

func TestRecommend_CalorieBandBoundaries(t *testing.T) {
	c := catalog.New([]domain.Meal{
		{ID: "a", Name: "Three Hundred", Category: domain.CategoryLunch, Calories: 300},
		{ID: "b", Name: "Five Hundred", Category: domain.CategoryLunch, Calories: 500},
	})

	tests := []struct {
		band string
		want []string
	}{
		{"low", []string{"Three Hundred"}},
		{"medium", []string{"Three Hundred", "Five Hundred"}},
		{"high", []string{"Five Hundred"}},
	}

	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			sel, err := Recommend(c, domain.RecommendationRequest{CalorieRange: tt.band})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			got := names(sel.Matches)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestRecommend_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		req  domain.RecommendationRequest
	}{
		{"unknown meal type", domain.RecommendationRequest{MealType: "brunch"}},
		{"plural snacks is not a meal type", domain.RecommendationRequest{MealType: "snacks"}},
		{"unknown calorie range", domain.RecommendationRequest{CalorieRange: "extreme"}},
		{"negative prep time", domain.RecommendationRequest{MaxPrepTime: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Recommend(catalog.Fallback(), tt.req)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestSatisfiesRestriction(t *testing.T) {
	tests := []struct {
		name        string
		meal        domain.Meal
		restriction string
		want        bool
	}{
		{"tag substring", domain.Meal{Tags: []string{"dairy-free-ish"}}, "dairy-free", true},
		{"tag case-insensitive", domain.Meal{Tags: []string{"Gluten-Free"}}, "gluten-free", true},
		{"restriction case-insensitive", domain.Meal{Tags: []string{"vegan"}}, "VEGAN", true},
		{"vegetarian accepts vegan", domain.Meal{Tags: []string{"vegan"}}, "vegetarian", true},
		{"vegan rejects vegetarian", domain.Meal{Tags: []string{"vegetarian"}}, "vegan", false},
		{"keto via carbs without tags", domain.Meal{Nutrition: domain.Nutrition{Carbs: 12}}, "keto", true},
		{"keto via keto-friendly tag", domain.Meal{Nutrition: domain.Nutrition{Carbs: 60}, Tags: []string{"keto-friendly"}}, "keto", true},
		{"low-carb boundary", domain.Meal{Nutrition: domain.Nutrition{Carbs: 30}}, "low-carb", false},
		{"high-protein boundary", domain.Meal{Nutrition: domain.Nutrition{Protein: 20}}, "high-protein", true},
		{"unknown restriction without tag", domain.Meal{Tags: []string{"quick"}}, "paleo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SatisfiesRestriction(&tt.meal, tt.restriction); got != tt.want {
				t.Errorf("SatisfiesRestriction(%q) = %v, want %v", tt.restriction, got, tt.want)
			}
		})
	}
}

func TestRecommend_DoesNotMutateCatalog(t *testing.T) {
	c := catalog.Fallback()
	sel, err := Recommend(c, domain.RecommendationRequest{})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	sel.Matches[0].Name = "changed"

	if c.All()[0].Name != "Avocado Toast with Eggs" {
		t.Error("catalog mutated through selection")
	}
}
