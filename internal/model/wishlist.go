package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

// WishlistEntry is a book the user wants to acquire.
type WishlistEntry struct {
	ID             uuid.UUID           `json:"id" gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID           `json:"user_id" gorm:"type:char(36);not null;index"`
	Title          string              `json:"title" gorm:"size:255;not null"`
	Creator        string              `json:"creator" gorm:"size:255;not null"`
	Priority       int                 `json:"priority" gorm:"not null;default:1"`
	EstimatedPrice decimal.NullDecimal `json:"estimated_price" gorm:"type:decimal(10,2)"`
	PurchaseURL    string              `json:"purchase_url,omitempty" gorm:"size:512"`
	Notes          string              `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt      time.Time           `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the pluralized default.
func (WishlistEntry) TableName() string {
	return "wishlist"
}

// BeforeCreate sets UUID before creating the record.
func (w *WishlistEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
