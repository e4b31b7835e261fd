package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookshelf/internal/model"
)

// LoanRepository defines loan persistence operations.
type LoanRepository interface {
	Create(ctx context.Context, loan *model.Loan) error
	Update(ctx context.Context, loan *model.Loan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	FindActiveByItem(ctx context.Context, itemID uuid.UUID) (*model.Loan, error)
	ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.Loan, error)
	CountActive(ctx context.Context, userID uuid.UUID) (int64, error)
}

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository.
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *model.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *loanRepository) Update(ctx context.Context, loan *model.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

func (r *loanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	var loan model.Loan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&loan).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) FindActiveByItem(ctx context.Context, itemID uuid.UUID) (*model.Loan, error) {
	var loan model.Loan
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ?", itemID, model.LoanStatusLent).
		First(&loan).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.Loan, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("status = ?", model.LoanStatusLent)
	}
	var loans []model.Loan
	if err := q.Order("lent_at DESC").Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) CountActive(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Loan{}).
		Where("user_id = ? AND status = ?", userID, model.LoanStatusLent).
		Count(&count).Error
	return count, err
}
