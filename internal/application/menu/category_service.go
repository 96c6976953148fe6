package menu

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cafemenu/backend/internal/domain/menu"
	"github.com/cafemenu/backend/internal/domain/shared"
	"github.com/cafemenu/backend/internal/infrastructure/cache"
)

// CategorySnapshot is the result of a category listing. Listing never fails:
// when the store is unreachable the snapshot carries stale or default data
// and the flags say which.
type CategorySnapshot struct {
	Categories []CategoryResponse `json:"categories"`
	Cached     bool               `json:"cached"`
	Stale      bool               `json:"stale"`
	Degraded   bool               `json:"degraded"`
}

// CategoryResponse is the API shape of a category
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	NameAR    string    `json:"name_ar"`
	NameEN    string    `json:"name_en"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
}

// CreateCategoryRequest carries input for creating a category
type CreateCategoryRequest struct {
	NameAR    string `json:"name_ar"`
	NameEN    string `json:"name_en"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

// UpdateCategoryRequest carries partial updates; nil fields are left unchanged
type UpdateCategoryRequest struct {
	NameAR    *string `json:"name_ar,omitempty"`
	NameEN    *string `json:"name_en,omitempty"`
	Color     *string `json:"color,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// CategoryService serves category reads through the TTL cache and keeps the
// cache coherent across mutations.
type CategoryService struct {
	categoryRepo menu.CategoryRepository
	itemRepo     menu.ItemRepository
	cache        *cache.Snapshot[[]menu.Category]
	snapshots    menu.SnapshotStore
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService. snapshots may be nil when
// no advisory store is configured.
func NewCategoryService(
	categoryRepo menu.CategoryRepository,
	itemRepo menu.ItemRepository,
	categoryCache *cache.Snapshot[[]menu.Category],
	snapshots menu.SnapshotStore,
	logger *zap.Logger,
) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		cache:        categoryCache,
		snapshots:    snapshots,
		logger:       logger,
	}
}

// List returns the category set. Resolution order: fresh cache, store,
// expired cache, advisory snapshot, built-in defaults.
func (s *CategoryService) List(ctx context.Context, forceRefresh bool) CategorySnapshot {
	if !forceRefresh {
		if categories, ok := s.cache.Fresh(); ok {
			return CategorySnapshot{Categories: toCategoryResponses(categories), Cached: true}
		}
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err == nil {
		s.cache.Put(categories)
		s.saveSnapshot(ctx, categories)
		return CategorySnapshot{Categories: toCategoryResponses(categories)}
	}

	s.logger.Warn("Category fetch failed, serving fallback", zap.Error(err))

	if categories, ok := s.cache.Stale(); ok {
		return CategorySnapshot{Categories: toCategoryResponses(categories), Stale: true}
	}

	if s.snapshots != nil {
		if categories, snapErr := s.snapshots.LoadCategories(ctx); snapErr == nil && len(categories) > 0 {
			return CategorySnapshot{Categories: toCategoryResponses(categories), Stale: true, Degraded: true}
		}
	}

	return CategorySnapshot{Categories: toCategoryResponses(menu.DefaultCategories()), Degraded: true}
}

// Get returns a single category
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

// Create adds a category and invalidates the cache
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := menu.NewCategory(req.NameAR, req.NameEN, req.Color, req.Icon, req.SortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name_en", category.NameEN))

	resp := toCategoryResponse(category)
	return &resp, nil
}

// Update applies a partial update and invalidates the cache
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nameAR, nameEN := category.NameAR, category.NameEN
	if req.NameAR != nil {
		nameAR = *req.NameAR
	}
	if req.NameEN != nil {
		nameEN = *req.NameEN
	}
	if err := category.Rename(nameAR, nameEN); err != nil {
		return nil, err
	}

	color, icon := category.Color, category.Icon
	if req.Color != nil {
		color = *req.Color
	}
	if req.Icon != nil {
		icon = *req.Icon
	}
	if err := category.Restyle(color, icon); err != nil {
		return nil, err
	}

	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		if *req.IsActive {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.cache.Invalidate()

	resp := toCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category. Categories still referenced by items are
// refused with a conflict error; no delete is issued in that case.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.itemRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has menu items assigned to it")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate()
	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}

// InvalidateCache drops the cached category set
func (s *CategoryService) InvalidateCache() {
	s.cache.Invalidate()
}

func (s *CategoryService) saveSnapshot(ctx context.Context, categories []menu.Category) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveCategories(ctx, categories); err != nil {
		s.logger.Debug("Category snapshot write failed", zap.Error(err))
	}
}

func toCategoryResponse(c *menu.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		NameAR:    c.NameAR,
		NameEN:    c.NameEN,
		Color:     c.Color,
		Icon:      c.Icon,
		SortOrder: c.SortOrder,
		IsActive:  c.IsActive,
	}
}

func toCategoryResponses(categories []menu.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = toCategoryResponse(&categories[i])
	}
	return responses
}
