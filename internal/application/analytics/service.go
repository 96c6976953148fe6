// Package analytics computes dashboard counters for the admin surface.
package analytics

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cafemenu/backend/internal/domain/menu"
)

// Overview is the dashboard counter set. Counters whose query failed are
// reported as zero and Partial is set; the overview itself never fails.
type Overview struct {
	TotalCategories int64 `json:"total_categories"`
	TotalItems      int64 `json:"total_items"`
	AvailableItems  int64 `json:"available_items"`
	PopularItems    int64 `json:"popular_items"`
	NewItems        int64 `json:"new_items"`
	Partial         bool  `json:"partial"`
}

// Service aggregates menu counters
type Service struct {
	categoryRepo menu.CategoryRepository
	itemRepo     menu.ItemRepository
	logger       *zap.Logger
}

// NewService creates an analytics service
func NewService(categoryRepo menu.CategoryRepository, itemRepo menu.ItemRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// Overview runs the dashboard counters in parallel. A failed counter is
// logged, reported as zero and flagged through Partial.
func (s *Service) Overview(ctx context.Context) Overview {
	var (
		overview Overview
		mu       sync.Mutex
		wg       sync.WaitGroup
	)

	run := func(name string, dest *int64, query func(context.Context) (int64, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := query(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("Dashboard counter failed", zap.String("counter", name), zap.Error(err))
				overview.Partial = true
				return
			}
			*dest = count
		}()
	}

	run("categories", &overview.TotalCategories, s.categoryRepo.Count)
	run("items", &overview.TotalItems, func(ctx context.Context) (int64, error) {
		return s.itemRepo.Count(ctx, menu.ItemFilter{})
	})
	run("available_items", &overview.AvailableItems, func(ctx context.Context) (int64, error) {
		return s.itemRepo.Count(ctx, menu.ItemFilter{OnlyAvailable: true})
	})
	run("popular_items", &overview.PopularItems, func(ctx context.Context) (int64, error) {
		return s.itemRepo.Count(ctx, menu.ItemFilter{OnlyPopular: true})
	})
	run("new_items", &overview.NewItems, func(ctx context.Context) (int64, error) {
		return s.itemRepo.Count(ctx, menu.ItemFilter{OnlyNew: true})
	})

	wg.Wait()
	return overview
}
