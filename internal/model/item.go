package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemStatus is the reading lifecycle of an item.
type ItemStatus string

const (
	ItemStatusWant       ItemStatus = "want"
	ItemStatusInProgress ItemStatus = "in_progress"
	ItemStatusDone       ItemStatus = "done"
)

// ItemStatuses lists every status in display order.
var ItemStatuses = []ItemStatus{ItemStatusWant, ItemStatusInProgress, ItemStatusDone}

// Valid reports whether s is one of the known statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusWant, ItemStatusInProgress, ItemStatusDone:
		return true
	}
	return false
}

const (
	MinRating = 0
	MaxRating = 5
)

// Item is a book owned by exactly one user.
type Item struct {
	ID             uuid.UUID           `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID        uuid.UUID           `json:"owner_id" gorm:"type:char(36);not null;index"`
	ISBN           string              `json:"isbn,omitempty" gorm:"size:20"`
	Title          string              `json:"title" gorm:"size:255;not null"`
	Subtitle       string              `json:"subtitle,omitempty" gorm:"size:255"`
	Creator        string              `json:"creator" gorm:"size:255;not null;index"`
	Publisher      string              `json:"publisher,omitempty" gorm:"size:255"`
	PublishedYear  int                 `json:"published_year,omitempty"`
	Category       string              `json:"category,omitempty" gorm:"size:100;index"`
	Status         ItemStatus          `json:"status" gorm:"type:varchar(20);not null;default:'want';index"`
	TotalUnits     int                 `json:"total_units" gorm:"not null;default:0"`
	UnitsCompleted int                 `json:"units_completed" gorm:"not null;default:0"`
	Rating         int                 `json:"rating" gorm:"not null;default:0"`
	Tags           string              `json:"tags,omitempty" gorm:"type:text"`
	Notes          string              `json:"notes,omitempty" gorm:"type:text"`
	Language       string              `json:"language,omitempty" gorm:"size:50"`
	Format         string              `json:"format,omitempty" gorm:"size:50"`
	Price          decimal.NullDecimal `json:"price" gorm:"type:decimal(10,2)"`
	Favorite       bool                `json:"favorite" gorm:"default:false"`
	StartedAt      *time.Time          `json:"started_at,omitempty"`
	FinishedAt     *time.Time          `json:"finished_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time           `json:"updated_at"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ApplyStatus moves the item to status and stamps the lifecycle dates.
func (i *Item) ApplyStatus(status ItemStatus, now time.Time) {
	if status == ItemStatusInProgress && i.StartedAt == nil {
		i.StartedAt = &now
	}
	if status == ItemStatusDone {
		if i.Status != ItemStatusDone || i.FinishedAt == nil {
			i.FinishedAt = &now
		}
	} else {
		i.FinishedAt = nil
	}
	i.Status = status
}
