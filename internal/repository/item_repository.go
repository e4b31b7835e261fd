package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookshelf/internal/model"
)

// ItemSort selects the list ordering.
type ItemSort string

const (
	SortCreated ItemSort = "created"
	SortUpdated ItemSort = "updated"
)

// ItemFilter narrows a listing. Empty fields do not filter.
type ItemFilter struct {
	Status   model.ItemStatus
	Category string
	Query    string
	Sort     ItemSort
	Limit    int
}

// ItemRepository defines item persistence operations.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, ownerID uuid.UUID, filter ItemFilter) ([]model.Item, error)
	// ListForStats returns every item of the owner, oldest first.
	ListForStats(ctx context.Context, ownerID uuid.UUID) ([]model.Item, error)
	Categories(ctx context.Context, ownerID uuid.UUID) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Create creates a new item.
func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update saves every column of an existing item.
func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// FindByID finds an item by ID.
func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List finds the owner's items matching filter.
func (r *itemRepository) List(ctx context.Context, ownerID uuid.UUID, filter ItemFilter) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if filter.Query != "" {
		like := "%" + escapeLike(filter.Query) + "%"
		q = q.Where("title LIKE ? OR creator LIKE ? OR category LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if filter.Sort == SortUpdated {
		q = q.Order("updated_at DESC").Order("id")
	} else {
		q = q.Order("created_at DESC").Order("id")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var items []model.Item
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListForStats returns all of the owner's items ordered oldest first.
func (r *itemRepository) ListForStats(ctx context.Context, ownerID uuid.UUID) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Categories lists the owner's distinct non-empty categories.
func (r *itemRepository) Categories(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("owner_id = ? AND category <> ''", ownerID).
		Distinct().Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete removes an item.
func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
