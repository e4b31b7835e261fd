package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
	"bookshelf/internal/stats"
)

// GoalStatus is a goal together with the progress derived from items.
type GoalStatus struct {
	Goal     *model.Goal        `json:"goal"`
	Progress stats.GoalProgress `json:"progress"`
}

// GoalService manages yearly reading goals.
type GoalService interface {
	// Current returns this year's goal, creating it with the default
	// targets when the user has none.
	Current(ctx context.Context, userID uuid.UUID) (*GoalStatus, error)
	Set(ctx context.Context, userID uuid.UUID, year, targetItems, targetUnits int) (*GoalStatus, error)
}

type goalService struct {
	goalRepo repository.GoalRepository
	itemRepo repository.ItemRepository
	now      func() time.Time
}

// NewGoalService creates a new goal service.
func NewGoalService(goalRepo repository.GoalRepository, itemRepo repository.ItemRepository) GoalService {
	return &goalService{goalRepo: goalRepo, itemRepo: itemRepo, now: time.Now}
}

func (s *goalService) Current(ctx context.Context, userID uuid.UUID) (*GoalStatus, error) {
	goal, err := s.findOrCreate(ctx, userID, s.now().Year())
	if err != nil {
		return nil, err
	}
	return s.status(ctx, userID, goal)
}

func (s *goalService) Set(ctx context.Context, userID uuid.UUID, year, targetItems, targetUnits int) (*GoalStatus, error) {
	if year < 1 || year > 9999 {
		return nil, errors.Validation("year is out of range")
	}
	if targetItems < 1 || targetUnits < 1 {
		return nil, errors.Validation("targets must be at least 1")
	}

	goal, err := s.findOrCreate(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	goal.TargetItems = targetItems
	goal.TargetUnits = targetUnits
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return s.status(ctx, userID, goal)
}

func (s *goalService) findOrCreate(ctx context.Context, userID uuid.UUID, year int) (*model.Goal, error) {
	goal, err := s.goalRepo.FindByUserYear(ctx, userID, year)
	if err == nil {
		return goal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	created := model.DefaultGoal(userID, year)
	if err := s.goalRepo.Create(ctx, &created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Created concurrently by another request.
			return s.goalRepo.FindByUserYear(ctx, userID, year)
		}
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return &created, nil
}

func (s *goalService) status(ctx context.Context, userID uuid.UUID, goal *model.Goal) (*GoalStatus, error) {
	items, err := s.itemRepo.ListForStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return &GoalStatus{Goal: goal, Progress: stats.Goal(items, goal, goal.Year)}, nil
}
