package service

import (
	"context"
	"fmt"

	"github.com/crisphealth/health-assistant/internal/catalog"
	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/llm"
	"github.com/crisphealth/health-assistant/internal/recommend"
	"github.com/crisphealth/health-assistant/pkg/pagination"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CatalogProvider yields the shared read-only catalog. *catalog.Loader implements it.
type CatalogProvider interface {
	Catalog(ctx context.Context) *catalog.Catalog
}

// MealService recommends and lists catalog meals.
type MealService interface {
	// Recommend filters the catalog and narrates the top matches.
	Recommend(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResult, error)
	// List returns a page of meals, optionally restricted to a category.
	List(ctx context.Context, filter domain.MealFilter) (*domain.MealPage, error)
	// Get returns a single meal by ID.
	Get(ctx context.Context, id string) (*domain.Meal, error)
}

type mealService struct {
	catalog  CatalogProvider
	narrator NarrationPolicy
	tracer   trace.Tracer
}

// NewMealService creates a new MealService.
func NewMealService(catalog CatalogProvider, narrator NarrationPolicy) MealService {
	return &mealService{
		catalog:  catalog,
		narrator: narrator,
		tracer:   otel.Tracer("health-assistant/meals"),
	}
}

func (s *mealService) Recommend(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResult, error) {
	ctx, span := s.tracer.Start(ctx, "MealService.Recommend",
		trace.WithAttributes(
			attribute.String("meal.type", req.MealType),
			attribute.String("meal.calorie_range", req.CalorieRange),
			attribute.Int("meal.max_prep_time", req.MaxPrepTime),
			attribute.StringSlice("meal.dietary_restrictions", req.DietaryRestrictions),
		),
	)
	defer span.End()

	sel, err := recommend.Recommend(s.catalog.Catalog(ctx), req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("meal.total_matches", sel.TotalMatchCount))

	n := s.narrator.Narrate(ctx, "meal-recommendations", mealPrompt(sel.Top, req), llm.MealFallback)

	return &domain.RecommendationResult{
		Matches:                  sel.Matches,
		TotalMatchCount:          sel.TotalMatchCount,
		Narrative:                n.Text,
		AppliedFilterDescription: sel.AppliedFilterDescription,
		Filters:                  req,
		TraceID:                  n.TraceID,
	}, nil
}

func (s *mealService) List(ctx context.Context, filter domain.MealFilter) (*domain.MealPage, error) {
	c := s.catalog.Catalog(ctx)

	var meals []domain.Meal
	if filter.Category != "" {
		category, ok := domain.ParseMealCategory(filter.Category)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidArgument, filter.Category)
		}
		meals = c.Category(category)
	} else {
		meals = c.All()
	}

	cursor, err := pagination.DecodeCursor(filter.Cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cursor", domain.ErrInvalidArgument)
	}

	page, next := pagination.Slice(meals, cursor, filter.Limit, func(m domain.Meal) string { return m.ID })

	result := &domain.MealPage{Data: page}
	if next != nil {
		result.NextCursor = next.Encode()
		result.HasMore = true
	}
	return result, nil
}

func (s *mealService) Get(ctx context.Context, id string) (*domain.Meal, error) {
	return s.catalog.Catalog(ctx).ByID(id)
}
