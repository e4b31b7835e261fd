package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
)

// ItemInput carries the user-editable fields of an item.
type ItemInput struct {
	ISBN           string
	Title          string
	Subtitle       string
	Creator        string
	Publisher      string
	PublishedYear  int
	Category       string
	Status         model.ItemStatus
	TotalUnits     int
	UnitsCompleted int
	Rating         int
	Tags           string
	Notes          string
	Language       string
	Format         string
	Price          decimal.NullDecimal
	Favorite       bool
}

// ItemService manages a user's collection. Every operation on a single
// item checks that the caller owns it.
type ItemService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in ItemInput) (*model.Item, error)
	List(ctx context.Context, ownerID uuid.UUID, filter repository.ItemFilter) ([]model.Item, error)
	Get(ctx context.Context, callerID, itemID uuid.UUID) (*model.Item, error)
	Update(ctx context.Context, callerID, itemID uuid.UUID, in ItemInput) (*model.Item, error)
	Delete(ctx context.Context, callerID, itemID uuid.UUID) error
	SetStatus(ctx context.Context, callerID, itemID uuid.UUID, status model.ItemStatus) (*model.Item, error)
	SetRating(ctx context.Context, callerID, itemID uuid.UUID, rating int) (*model.Item, error)
	ToggleFavorite(ctx context.Context, callerID, itemID uuid.UUID) (*model.Item, error)
	Categories(ctx context.Context, ownerID uuid.UUID) ([]string, error)
}

type itemService struct {
	repo repository.ItemRepository
	log  *logrus.Logger
	now  func() time.Time
}

// NewItemService creates a new item service.
func NewItemService(repo repository.ItemRepository, log *logrus.Logger) ItemService {
	return &itemService{repo: repo, log: log, now: time.Now}
}

func (s *itemService) Create(ctx context.Context, ownerID uuid.UUID, in ItemInput) (*model.Item, error) {
	in, err := normalizeItemInput(in)
	if err != nil {
		return nil, err
	}

	item := &model.Item{ID: uuid.New(), OwnerID: ownerID, Status: model.ItemStatusWant}
	applyItemInput(item, in, s.now())

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context, ownerID uuid.UUID, filter repository.ItemFilter) ([]model.Item, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, errors.Validation(fmt.Sprintf("unknown status %q", filter.Status))
	}
	if filter.Sort != repository.SortUpdated {
		filter.Sort = repository.SortCreated
	}
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Category = strings.TrimSpace(filter.Category)

	items, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *itemService) Get(ctx context.Context, callerID, itemID uuid.UUID) (*model.Item, error) {
	return s.owned(ctx, callerID, itemID, "get")
}

func (s *itemService) Update(ctx context.Context, callerID, itemID uuid.UUID, in ItemInput) (*model.Item, error) {
	item, err := s.owned(ctx, callerID, itemID, "update")
	if err != nil {
		return nil, err
	}
	in, err = normalizeItemInput(in)
	if err != nil {
		return nil, err
	}

	applyItemInput(item, in, s.now())
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, callerID, itemID uuid.UUID) error {
	if _, err := s.owned(ctx, callerID, itemID, "delete"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *itemService) SetStatus(ctx context.Context, callerID, itemID uuid.UUID, status model.ItemStatus) (*model.Item, error) {
	if !status.Valid() {
		return nil, errors.Validation(fmt.Sprintf("unknown status %q", status))
	}
	return s.mutate(ctx, callerID, itemID, "set status", func(item *model.Item) error {
		item.ApplyStatus(status, s.now())
		return nil
	})
}

func (s *itemService) SetRating(ctx context.Context, callerID, itemID uuid.UUID, rating int) (*model.Item, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	return s.mutate(ctx, callerID, itemID, "set rating", func(item *model.Item) error {
		item.Rating = rating
		return nil
	})
}

func (s *itemService) ToggleFavorite(ctx context.Context, callerID, itemID uuid.UUID) (*model.Item, error) {
	return s.mutate(ctx, callerID, itemID, "toggle favorite", func(item *model.Item) error {
		item.Favorite = !item.Favorite
		return nil
	})
}

func (s *itemService) Categories(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	categories, err := s.repo.Categories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// owned loads an item and checks that callerID owns it.
func (s *itemService) owned(ctx context.Context, callerID, itemID uuid.UUID, op string) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item.OwnerID != callerID {
		s.log.WithFields(logrus.Fields{
			"op":        op,
			"item_id":   itemID.String(),
			"caller_id": callerID.String(),
		}).Warn("ownership check failed")
		return nil, errors.ErrForbidden
	}
	return item, nil
}

func (s *itemService) mutate(ctx context.Context, callerID, itemID uuid.UUID, op string, fn func(*model.Item) error) (*model.Item, error) {
	item, err := s.owned(ctx, callerID, itemID, op)
	if err != nil {
		return nil, err
	}
	if err := fn(item); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func normalizeItemInput(in ItemInput) (ItemInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Creator = strings.TrimSpace(in.Creator)
	in.Category = strings.TrimSpace(in.Category)
	in.ISBN = strings.TrimSpace(in.ISBN)

	if in.Title == "" {
		return in, errors.Validation("title is required")
	}
	if in.Creator == "" {
		return in, errors.Validation("creator is required")
	}
	if in.Status == "" {
		in.Status = model.ItemStatusWant
	}
	if !in.Status.Valid() {
		return in, errors.Validation(fmt.Sprintf("unknown status %q", in.Status))
	}
	if in.TotalUnits < 0 || in.UnitsCompleted < 0 || in.PublishedYear < 0 {
		return in, errors.Validation("numeric fields must not be negative")
	}
	if in.TotalUnits > 0 && in.UnitsCompleted > in.TotalUnits {
		return in, errors.Validation("units completed cannot exceed total units")
	}
	if err := validateRating(in.Rating); err != nil {
		return in, err
	}
	if in.Price.Valid && in.Price.Decimal.IsNegative() {
		return in, errors.Validation("price must not be negative")
	}
	return in, nil
}

func validateRating(rating int) error {
	if rating < model.MinRating || rating > model.MaxRating {
		return errors.Validation(fmt.Sprintf("rating must be between %d and %d", model.MinRating, model.MaxRating))
	}
	return nil
}

func applyItemInput(item *model.Item, in ItemInput, now time.Time) {
	item.ISBN = in.ISBN
	item.Title = in.Title
	item.Subtitle = in.Subtitle
	item.Creator = in.Creator
	item.Publisher = in.Publisher
	item.PublishedYear = in.PublishedYear
	item.Category = in.Category
	item.TotalUnits = in.TotalUnits
	item.UnitsCompleted = in.UnitsCompleted
	item.Rating = in.Rating
	item.Tags = in.Tags
	item.Notes = in.Notes
	item.Language = in.Language
	item.Format = in.Format
	item.Price = in.Price
	item.Favorite = in.Favorite
	item.ApplyStatus(in.Status, now)
}
