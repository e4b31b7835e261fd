package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
)

// LoanInput describes lending an item.
type LoanInput struct {
	Borrower string
	DueAt    *time.Time
	Notes    string
}

// LoanService tracks items lent to other people.
type LoanService interface {
	Lend(ctx context.Context, callerID, itemID uuid.UUID, in LoanInput) (*model.Loan, error)
	Return(ctx context.Context, callerID, loanID uuid.UUID) (*model.Loan, error)
	List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.Loan, error)
}

type loanService struct {
	loanRepo repository.LoanRepository
	itemRepo repository.ItemRepository
	log      *logrus.Logger
	now      func() time.Time
}

// NewLoanService creates a new loan service.
func NewLoanService(loanRepo repository.LoanRepository, itemRepo repository.ItemRepository, log *logrus.Logger) LoanService {
	return &loanService{loanRepo: loanRepo, itemRepo: itemRepo, log: log, now: time.Now}
}

// Lend records that the caller lent one of their items. An item can be out
// on at most one loan at a time.
func (s *loanService) Lend(ctx context.Context, callerID, itemID uuid.UUID, in LoanInput) (*model.Loan, error) {
	borrower := strings.TrimSpace(in.Borrower)
	if borrower == "" {
		return nil, errors.Validation("borrower is required")
	}
	now := s.now()
	if in.DueAt != nil && in.DueAt.Before(now) {
		return nil, errors.Validation("due date must be in the future")
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item.OwnerID != callerID {
		s.log.WithFields(logrus.Fields{"item_id": itemID.String(), "caller_id": callerID.String()}).
			Warn("lend rejected: not the owner")
		return nil, errors.ErrForbidden
	}

	_, err = s.loanRepo.FindActiveByItem(ctx, itemID)
	if err == nil {
		return nil, errors.Validation("item is already lent")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check active loan: %w", err)
	}

	loan := &model.Loan{
		ID:       uuid.New(),
		ItemID:   itemID,
		UserID:   callerID,
		Borrower: borrower,
		LentAt:   now,
		DueAt:    in.DueAt,
		Status:   model.LoanStatusLent,
		Notes:    in.Notes,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}
	return loan, nil
}

func (s *loanService) Return(ctx context.Context, callerID, loanID uuid.UUID) (*model.Loan, error) {
	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	if loan.UserID != callerID {
		return nil, errors.ErrForbidden
	}
	if loan.Status == model.LoanStatusReturned {
		return nil, errors.Validation("loan already returned")
	}

	now := s.now()
	loan.ReturnedAt = &now
	loan.Status = model.LoanStatusReturned
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, fmt.Errorf("update loan: %w", err)
	}
	return loan, nil
}

func (s *loanService) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]model.Loan, error) {
	loans, err := s.loanRepo.ListByUser(ctx, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}
