package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
)

// WishlistInput carries the fields of a new wishlist entry.
type WishlistInput struct {
	Title          string
	Creator        string
	Priority       int
	EstimatedPrice decimal.NullDecimal
	PurchaseURL    string
	Notes          string
}

// WishlistService manages the books a user wants to acquire.
type WishlistService interface {
	Create(ctx context.Context, userID uuid.UUID, in WishlistInput) (*model.WishlistEntry, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.WishlistEntry, error)
	Delete(ctx context.Context, callerID, entryID uuid.UUID) error
}

type wishlistService struct {
	repo repository.WishlistRepository
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository) WishlistService {
	return &wishlistService{repo: repo}
}

func (s *wishlistService) Create(ctx context.Context, userID uuid.UUID, in WishlistInput) (*model.WishlistEntry, error) {
	title := strings.TrimSpace(in.Title)
	creator := strings.TrimSpace(in.Creator)
	if title == "" || creator == "" {
		return nil, errors.Validation("title and creator are required")
	}
	if in.Priority == 0 {
		in.Priority = model.MinPriority
	}
	if in.Priority < model.MinPriority || in.Priority > model.MaxPriority {
		return nil, errors.Validation(fmt.Sprintf("priority must be between %d and %d", model.MinPriority, model.MaxPriority))
	}
	if in.EstimatedPrice.Valid && in.EstimatedPrice.Decimal.IsNegative() {
		return nil, errors.Validation("estimated price must not be negative")
	}

	entry := &model.WishlistEntry{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          title,
		Creator:        creator,
		Priority:       in.Priority,
		EstimatedPrice: in.EstimatedPrice,
		PurchaseURL:    strings.TrimSpace(in.PurchaseURL),
		Notes:          in.Notes,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create wishlist entry: %w", err)
	}
	return entry, nil
}

func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]model.WishlistEntry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return entries, nil
}

func (s *wishlistService) Delete(ctx context.Context, callerID, entryID uuid.UUID) error {
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound
		}
		return fmt.Errorf("get wishlist entry: %w", err)
	}
	if entry.UserID != callerID {
		return errors.ErrForbidden
	}
	if err := s.repo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound
		}
		return fmt.Errorf("delete wishlist entry: %w", err)
	}
	return nil
}
