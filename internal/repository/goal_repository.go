package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookshelf/internal/model"
)

// GoalRepository defines goal persistence operations.
type GoalRepository interface {
	FindByUserYear(ctx context.Context, userID uuid.UUID, year int) (*model.Goal, error)
	Create(ctx context.Context, goal *model.Goal) error
	Update(ctx context.Context, goal *model.Goal) error
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) FindByUserYear(ctx context.Context, userID uuid.UUID, year int) (*model.Goal, error) {
	var goal model.Goal
	if err := r.db.WithContext(ctx).Where("user_id = ? AND year = ?", userID, year).First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}
