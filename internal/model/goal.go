package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultGoalItems = 12
	DefaultGoalUnits = 5000
)

// Goal is a user's reading target for one calendar year.
type Goal struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;uniqueIndex:idx_goal_user_year"`
	Year        int       `json:"year" gorm:"not null;uniqueIndex:idx_goal_user_year"`
	TargetItems int       `json:"target_items" gorm:"not null;default:12"`
	TargetUnits int       `json:"target_units" gorm:"not null;default:5000"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultGoal returns the goal used when a user has none for year.
func DefaultGoal(userID uuid.UUID, year int) Goal {
	return Goal{
		UserID:      userID,
		Year:        year,
		TargetItems: DefaultGoalItems,
		TargetUnits: DefaultGoalUnits,
	}
}

// BeforeCreate sets UUID before creating the record.
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
