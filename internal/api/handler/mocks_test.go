package handler

import (
	"context"
	"fmt"

	"github.com/crisphealth/health-assistant/internal/domain"
)

// MockHealthService is a mock implementation of HealthService
type MockHealthService struct {
	getHealthDataFunc     func(ctx context.Context, kind domain.MetricKind, days int) (*domain.HealthData, error)
	askHealthQuestionFunc func(ctx context.Context, question string, includeData bool) (*domain.HealthAnswer, error)
	getHealthSummaryFunc  func(ctx context.Context, period domain.SummaryPeriod) (*domain.HealthSummary, error)
	getHealthTrendsFunc   func(ctx context.Context, days int) (*domain.HealthTrends, error)
}

func (m *MockHealthService) GetHealthData(ctx context.Context, kind domain.MetricKind, days int) (*domain.HealthData, error) {
	if m.getHealthDataFunc != nil {
		return m.getHealthDataFunc(ctx, kind, days)
	}
	return &domain.HealthData{Kind: kind, Series: domain.MetricSeries{}}, nil
}

func (m *MockHealthService) AskHealthQuestion(ctx context.Context, question string, includeData bool) (*domain.HealthAnswer, error) {
	if m.askHealthQuestionFunc != nil {
		return m.askHealthQuestionFunc(ctx, question, includeData)
	}
	return &domain.HealthAnswer{Answer: "Keep it up!", Question: question, HealthDataIncluded: includeData}, nil
}

func (m *MockHealthService) GetHealthSummary(ctx context.Context, period domain.SummaryPeriod) (*domain.HealthSummary, error) {
	if m.getHealthSummaryFunc != nil {
		return m.getHealthSummaryFunc(ctx, period)
	}
	return &domain.HealthSummary{Summary: "Fine week.", Period: period}, nil
}

func (m *MockHealthService) GetHealthTrends(ctx context.Context, days int) (*domain.HealthTrends, error) {
	if m.getHealthTrendsFunc != nil {
		return m.getHealthTrendsFunc(ctx, days)
	}
	return &domain.HealthTrends{Period: days}, nil
}

// MockMealService is a mock implementation of MealService
type MockMealService struct {
	recommendFunc func(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResult, error)
	listFunc      func(ctx context.Context, filter domain.MealFilter) (*domain.MealPage, error)
	getFunc       func(ctx context.Context, id string) (*domain.Meal, error)
}

func (m *MockMealService) Recommend(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResult, error) {
	if m.recommendFunc != nil {
		return m.recommendFunc(ctx, req)
	}
	return &domain.RecommendationResult{Matches: []domain.Meal{}, Filters: req}, nil
}

func (m *MockMealService) List(ctx context.Context, filter domain.MealFilter) (*domain.MealPage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return &domain.MealPage{Data: []domain.Meal{}}, nil
}

func (m *MockMealService) Get(ctx context.Context, id string) (*domain.Meal, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, fmt.Errorf("meal %q: %w", id, domain.ErrNotFound)
}

// MockFeedbackService is a mock implementation of FeedbackService
type MockFeedbackService struct {
	submitFunc func(ctx context.Context, req domain.FeedbackRequest) error
	submitted  []domain.FeedbackRequest
}

func (m *MockFeedbackService) Submit(ctx context.Context, req domain.FeedbackRequest) error {
	m.submitted = append(m.submitted, req)
	if m.submitFunc != nil {
		return m.submitFunc(ctx, req)
	}
	return nil
}
