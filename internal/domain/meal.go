package domain

// MealCategory is the course a meal belongs to.
// @Description Meal category.
type MealCategory string

const (
	CategoryBreakfast MealCategory = "breakfast"
	CategoryLunch     MealCategory = "lunch"
	CategoryDinner    MealCategory = "dinner"
	CategorySnack     MealCategory = "snack"
)

// MealCategories is the fixed catalog iteration order.
var MealCategories = []MealCategory{CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack}

// ParseMealCategory validates a meal_type value.
func ParseMealCategory(s string) (MealCategory, bool) {
	for _, c := range MealCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Difficulty rates how hard a recipe is to prepare.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Nutrition holds macro-nutrients in grams.
type Nutrition struct {
	Protein float64 `json:"protein" yaml:"protein" example:"18"`
	Carbs   float64 `json:"carbs" yaml:"carbs" example:"35"`
	Fat     float64 `json:"fat" yaml:"fat" example:"24"`
	Fiber   float64 `json:"fiber" yaml:"fiber" example:"12"`
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name   string `json:"name" yaml:"name" example:"Avocado"`
	Amount string `json:"amount" yaml:"amount" example:"1 medium"`
}

// Meal is a catalog recipe. Meals are never mutated after the catalog loads.
// @Description Recipe from the meal catalog.
type Meal struct {
	// Unique meal identifier
	ID string `gorm:"type:varchar(64);primaryKey" json:"id" yaml:"id" example:"breakfast_001"`
	// Display name
	Name string `gorm:"type:varchar(255);not null" json:"name" yaml:"name" example:"Avocado Toast with Eggs"`
	// Meal category
	Category MealCategory `gorm:"type:varchar(16);not null;index:idx_meals_category_position" json:"category" yaml:"category" example:"breakfast" enums:"breakfast,lunch,dinner,snack"`
	// Calories per serving
	Calories float64 `gorm:"not null" json:"calories" yaml:"calories" example:"420"`
	// Preparation time in minutes
	PrepTime int `gorm:"not null" json:"prep_time" yaml:"prep_time" example:"10"`
	// Preparation difficulty
	Difficulty Difficulty `gorm:"type:varchar(16);not null" json:"difficulty" yaml:"difficulty" example:"easy" enums:"easy,medium,hard"`
	// Macro-nutrients in grams
	Nutrition Nutrition `gorm:"serializer:json" json:"nutrition" yaml:"nutrition"`
	// Free-form tags such as "vegetarian" or "quick"
	Tags []string `gorm:"serializer:json" json:"tags" yaml:"tags"`
	// Ordered ingredient list
	Ingredients []Ingredient `gorm:"serializer:json" json:"ingredients" yaml:"ingredients"`
	// Ordered preparation steps
	Instructions []string `gorm:"serializer:json" json:"instructions" yaml:"instructions"`

	// Position within the category, preserves catalog order in storage
	Position int `gorm:"not null;default:0;index:idx_meals_category_position" json:"-" yaml:"-"`
}

func (Meal) TableName() string {
	return "meals"
}

// HasTag reports whether the meal carries tag exactly.
func (m *Meal) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CalorieRange is a coarse calorie band.
type CalorieRange string

const (
	CalorieLow    CalorieRange = "low"
	CalorieMedium CalorieRange = "medium"
	CalorieHigh   CalorieRange = "high"
)

// CalorieBand is an inclusive calorie interval.
type CalorieBand struct {
	Min float64
	Max float64
}

// CalorieBands maps each range to its interval. Bands share endpoints at 300 and 500.
var CalorieBands = map[CalorieRange]CalorieBand{
	CalorieLow:    {Min: 0, Max: 300},
	CalorieMedium: {Min: 300, Max: 500},
	CalorieHigh:   {Min: 500, Max: 1000},
}

// Contains reports whether calories falls inside the band, both ends included.
func (b CalorieBand) Contains(calories float64) bool {
	return calories >= b.Min && calories <= b.Max
}

// RecommendationRequest carries optional meal filters. Zero values mean no constraint.
// @Description Meal recommendation filters.
type RecommendationRequest struct {
	// Restrict to a single category
	MealType string `json:"meal_type,omitempty" validate:"omitempty,oneof=breakfast lunch dinner snack" example:"breakfast" enums:"breakfast,lunch,dinner,snack"`
	// Maximum preparation time in minutes
	MaxPrepTime int `json:"max_prep_time,omitempty" validate:"omitempty,min=1,max=1440" example:"20"`
	// Every restriction must be satisfied
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty" validate:"omitempty,max=10,dive,required,max=64" example:"vegetarian"`
	// Calorie band
	CalorieRange string `json:"calorie_range,omitempty" validate:"omitempty,oneof=low medium high" example:"medium" enums:"low,medium,high"`
	// Free-text activity level, echoed into the narrator prompt
	ActivityLevel string `json:"activity_level,omitempty" validate:"omitempty,max=64" example:"moderate"`
}

// RecommendationResult is the outcome of a meal recommendation.
// @Description Filtered meals with a generated blurb.
type RecommendationResult struct {
	// Up to five meals in catalog order
	Matches []Meal `json:"matches"`
	// Number of meals that survived every filter
	TotalMatchCount int `json:"totalMatchCount" example:"7"`
	// Narrator text, or a fallback sentence
	Narrative string `json:"narrative" example:"These meals balance protein and prep time."`
	// Human-readable summary of the applied filters
	AppliedFilterDescription string `json:"appliedFilterDescription" example:"Filtered for: Showing breakfast options"`
	// Echo of the request filters
	Filters RecommendationRequest `json:"filters"`
	// Trace ID for feedback (only present when Langfuse is enabled)
	TraceID string `json:"trace_id,omitempty"`
}

// MealFilter selects a page of catalog meals for browsing.
type MealFilter struct {
	Category string
	Limit    int
	Cursor   string
}

// MealPage is one page of catalog meals.
// @Description Paginated meal list.
type MealPage struct {
	Data []Meal `json:"data"`
	// Cursor for the next page, absent on the last page
	NextCursor string `json:"next_cursor,omitempty" example:"eyJpZCI6ImJyZWFrZmFzdF8wMDUiLCJvZmZzZXQiOjV9"`
	// Whether more meals are available
	HasMore bool `json:"has_more" example:"true"`
}

// FeedbackRequest scores a generated narrative.
// @Description User rating for a narrated response.
type FeedbackRequest struct {
	// Trace ID returned with the narrated response
	TraceID string `json:"trace_id" validate:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Rating from 1 (unhelpful) to 5 (very helpful)
	Score int `json:"score" validate:"required,min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Optional free-text comment
	Comment string `json:"comment,omitempty" validate:"omitempty,max=1000" example:"Helpful meal ideas"`
}
