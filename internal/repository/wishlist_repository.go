package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookshelf/internal/model"
)

// WishlistRepository defines wishlist persistence operations.
type WishlistRepository interface {
	Create(ctx context.Context, entry *model.WishlistEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.WishlistEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.WishlistEntry, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new wishlist repository.
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, entry *model.WishlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *wishlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.WishlistEntry, error) {
	var entry model.WishlistEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByUser returns the user's entries, highest priority first.
func (r *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.WishlistEntry, error) {
	var entries []model.WishlistEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority DESC").Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *wishlistRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WishlistEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *wishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WishlistEntry{}).Error
}
