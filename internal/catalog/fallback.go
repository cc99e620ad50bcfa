package catalog

import "github.com/crisphealth/health-assistant/internal/domain"

// Fallback is the built-in four-meal catalog, one meal per category, used
// whenever no catalog file or table can be loaded.
func Fallback() *Catalog {
	return New(fallbackMeals())
}

func fallbackMeals() []domain.Meal {
	return []domain.Meal{
		{
			ID:         "breakfast_001",
			Name:       "Avocado Toast with Eggs",
			Category:   domain.CategoryBreakfast,
			Calories:   420,
			PrepTime:   10,
			Difficulty: domain.DifficultyEasy,
			Nutrition:  domain.Nutrition{Protein: 18, Carbs: 35, Fat: 24, Fiber: 12},
			Tags:       []string{"vegetarian", "high-protein", "quick"},
			Ingredients: []domain.Ingredient{
				{Name: "Whole grain bread", Amount: "2 slices"},
				{Name: "Avocado", Amount: "1 medium"},
				{Name: "Eggs", Amount: "2 large"},
			},
			Instructions: []string{
				"Toast bread until golden brown",
				"Mash avocado with lime juice, salt, and pepper",
				"Cook eggs to your preference",
				"Spread avocado on toast, top with eggs",
			},
		},
		{
			ID:         "lunch_001",
			Name:       "Mediterranean Quinoa Salad",
			Category:   domain.CategoryLunch,
			Calories:   450,
			PrepTime:   15,
			Difficulty: domain.DifficultyEasy,
			Nutrition:  domain.Nutrition{Protein: 16, Carbs: 55, Fat: 18, Fiber: 8},
			Tags:       []string{"vegetarian", "mediterranean", "meal-prep"},
			Ingredients: []domain.Ingredient{
				{Name: "Cooked quinoa", Amount: "1 cup"},
				{Name: "Cucumber", Amount: "1 medium diced"},
				{Name: "Cherry tomatoes", Amount: "1 cup halved"},
			},
			Instructions: []string{
				"Mix quinoa, cucumber, tomatoes, and onion",
				"Add feta cheese",
				"Whisk olive oil and lemon juice",
				"Toss with dressing and serve",
			},
		},
		{
			ID:         "dinner_001",
			Name:       "Herb-Crusted Chicken with Roasted Vegetables",
			Category:   domain.CategoryDinner,
			Calories:   520,
			PrepTime:   35,
			Difficulty: domain.DifficultyMedium,
			Nutrition:  domain.Nutrition{Protein: 42, Carbs: 25, Fat: 28, Fiber: 8},
			Tags:       []string{"high-protein", "one-pan", "lean"},
			Ingredients: []domain.Ingredient{
				{Name: "Chicken breast", Amount: "6 oz"},
				{Name: "Mixed herbs", Amount: "2 tbsp"},
				{Name: "Brussels sprouts", Amount: "1 cup halved"},
			},
			Instructions: []string{
				"Coat chicken with herbs and oil",
				"Toss vegetables with oil and garlic",
				"Roast vegetables at 425°F for 20 minutes",
				"Add chicken, cook 15 minutes more",
			},
		},
		{
			ID:         "snack_001",
			Name:       "Apple with Almond Butter",
			Category:   domain.CategorySnack,
			Calories:   190,
			PrepTime:   2,
			Difficulty: domain.DifficultyEasy,
			Nutrition:  domain.Nutrition{Protein: 6, Carbs: 25, Fat: 8, Fiber: 6},
			Tags:       []string{"quick", "portable", "natural-sugars"},
			Ingredients: []domain.Ingredient{
				{Name: "Apple", Amount: "1 medium"},
				{Name: "Almond butter", Amount: "1 tbsp"},
			},
			Instructions: []string{
				"Wash and slice apple",
				"Serve with almond butter for dipping",
			},
		},
	}
}
