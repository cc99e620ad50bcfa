package repository

import (
	"context"

	"github.com/crisphealth/health-assistant/internal/domain"
	"gorm.io/gorm"
)

type MealRepository interface {
	CreateBatch(ctx context.Context, meals []domain.Meal) error
	// List returns every meal ordered by category position, then catalog position.
	List(ctx context.Context) ([]domain.Meal, error)
	GetByID(ctx context.Context, id string) (*domain.Meal, error)
	Count(ctx context.Context) (int64, error)
}

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) CreateBatch(ctx context.Context, meals []domain.Meal) error {
	if len(meals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(meals, 100).Error
}

func (r *mealRepository) List(ctx context.Context) ([]domain.Meal, error) {
	var meals []domain.Meal
	err := r.db.WithContext(ctx).
		Order(`CASE category WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 WHEN 'dinner' THEN 2 ELSE 3 END`).
		Order("position ASC").
		Order("id ASC").
		Find(&meals).Error
	if err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	var meal domain.Meal
	err := r.db.WithContext(ctx).First(&meal, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Meal{}).Count(&count).Error
	return count, err
}
