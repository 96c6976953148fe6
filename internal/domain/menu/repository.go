package menu

import (
	"context"

	"github.com/google/uuid"
)

// ItemFilter narrows item listings. Zero value lists everything.
type ItemFilter struct {
	CategoryID    *uuid.UUID
	OnlyAvailable bool
	OnlyPopular   bool
	OnlyNew       bool
	Search        string
	Limit         int
	Offset        int
	OrderBy       string
	OrderDir      string
}

// CategoryRepository persists menu categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// ItemRepository persists menu items with their option groups
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindAll(ctx context.Context, filter ItemFilter) ([]Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter ItemFilter) (int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
