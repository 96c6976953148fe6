package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafemenu/backend/internal/domain/menu"
	"github.com/cafemenu/backend/internal/domain/shared"
)

const (
	defaultItemLimit = 50
	maxItemLimit     = 200
)

// itemSortColumns whitelists the columns item listings may be ordered by
var itemSortColumns = map[string]string{
	"sort_order": "sort_order",
	"price":      "price",
	"created_at": "created_at",
	"name_ar":    "name_ar",
	"name_en":    "name_en",
}

// GormItemRepository implements menu.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item with its category and ordered option groups
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.Item, error) {
	var item menu.Item
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Options.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter menu.ItemFilter) ([]menu.Item, error) {
	var items []menu.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&menu.Item{}), filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultItemLimit
	}
	if limit > maxItemLimit {
		limit = maxItemLimit
	}
	query = query.Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	query = query.Order(orderClause(filter))

	if err := query.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Options.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item together with its option groups
func (r *GormItemRepository) Save(ctx context.Context, item *menu.Item) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(item).Error
}

// Delete deletes an item; options and choices cascade
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&menu.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter menu.ItemFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&menu.Item{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCategory counts items referencing a category
func (r *GormItemRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&menu.Item{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions without pagination or ordering
func (r *GormItemRepository) applyFilter(query *gorm.DB, filter menu.ItemFilter) *gorm.DB {
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if filter.OnlyPopular {
		query = query.Where("is_popular = ?", true)
	}
	if filter.OnlyNew {
		query = query.Where("is_new = ?", true)
	}
	if filter.Search != "" {
		// LOWER + LIKE keeps the predicate portable between postgres and
		// the sqlite test database
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name_ar) LIKE ? OR LOWER(name_en) LIKE ? OR LOWER(description_ar) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return query
}

func orderClause(filter menu.ItemFilter) string {
	column, ok := itemSortColumns[filter.OrderBy]
	if !ok {
		column = "sort_order"
	}
	dir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		dir = "DESC"
	}
	return column + " " + dir
}

// Ensure GormItemRepository implements ItemRepository
var _ menu.ItemRepository = (*GormItemRepository)(nil)
