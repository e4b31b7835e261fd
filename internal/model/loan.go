package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanStatus represents whether a lent item came back.
type LoanStatus string

const (
	LoanStatusLent     LoanStatus = "lent"
	LoanStatusReturned LoanStatus = "returned"
)

// Loan records an item lent to someone.
type Loan struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	ItemID     uuid.UUID  `json:"item_id" gorm:"type:char(36);not null;index"`
	UserID     uuid.UUID  `json:"user_id" gorm:"type:char(36);not null;index"`
	Borrower   string     `json:"borrower" gorm:"size:255;not null"`
	LentAt     time.Time  `json:"lent_at" gorm:"not null"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     LoanStatus `json:"status" gorm:"type:varchar(20);not null;default:'lent';index"`
	Notes      string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time  `json:"created_at"`

	// Relations
	Item Item `json:"-" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
