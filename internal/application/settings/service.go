// Package settings serves café-wide configuration through a TTL cache with
// merge-on-write semantics.
package settings

import (
	"context"

	"go.uber.org/zap"

	"github.com/cafemenu/backend/internal/domain/settings"
	"github.com/cafemenu/backend/internal/domain/shared"
	"github.com/cafemenu/backend/internal/infrastructure/cache"
)

// Snapshot is the result of a settings read. Reads never fail: when the
// store is unreachable the values come from the cache, the advisory
// snapshot, or the built-in defaults, and the flags say which.
type Snapshot struct {
	Values   map[string]string `json:"values"`
	Cached   bool              `json:"cached"`
	Stale    bool              `json:"stale"`
	Degraded bool              `json:"degraded"`
}

// Service reads and updates café settings
type Service struct {
	repo      settings.Repository
	cache     *cache.Snapshot[map[string]string]
	snapshots settings.SnapshotStore
	logger    *zap.Logger
}

// NewService creates a settings service. snapshots may be nil.
func NewService(
	repo settings.Repository,
	valueCache *cache.Snapshot[map[string]string],
	snapshots settings.SnapshotStore,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		cache:     valueCache,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Get returns the settings map. Resolution order: fresh cache, store,
// expired cache, advisory snapshot, built-in defaults. Defaults also fill
// any key missing from stored values.
func (s *Service) Get(ctx context.Context, forceRefresh bool) Snapshot {
	if !forceRefresh {
		if values, ok := s.cache.Fresh(); ok {
			return Snapshot{Values: values, Cached: true}
		}
	}

	rows, err := s.repo.FindAll(ctx)
	if err == nil {
		values := withDefaults(settings.AsMap(rows))
		s.cache.Put(values)
		s.saveSnapshot(ctx, values)
		return Snapshot{Values: values}
	}

	s.logger.Warn("Settings fetch failed, serving fallback", zap.Error(err))

	if values, ok := s.cache.Stale(); ok {
		return Snapshot{Values: values, Stale: true}
	}

	if s.snapshots != nil {
		if values, snapErr := s.snapshots.LoadValues(ctx); snapErr == nil && len(values) > 0 {
			return Snapshot{Values: withDefaults(values), Stale: true, Degraded: true}
		}
	}

	return Snapshot{Values: settings.Defaults(), Degraded: true}
}

// Update writes the given keys. The cache is merged first so readers see
// the new values even when the store write fails; the error still reaches
// the caller in that case.
func (s *Service) Update(ctx context.Context, values map[string]string) (Snapshot, error) {
	if len(values) == 0 {
		return Snapshot{}, shared.NewDomainError("INVALID_SETTINGS", "No settings provided")
	}

	rows := make([]*settings.Setting, 0, len(values))
	for key, value := range values {
		row, err := settings.NewSetting(key, value)
		if err != nil {
			return Snapshot{}, err
		}
		rows = append(rows, row)
	}

	s.cache.Mutate(func(current map[string]string, ok bool) map[string]string {
		if !ok {
			current = settings.Defaults()
		}
		merged := make(map[string]string, len(current)+len(values))
		for k, v := range current {
			merged[k] = v
		}
		for k, v := range values {
			merged[k] = v
		}
		return merged
	})

	var storeErr error
	for _, row := range rows {
		if err := s.repo.Upsert(ctx, row); err != nil {
			storeErr = err
			break
		}
	}

	merged, _ := s.cache.Stale()
	if storeErr != nil {
		s.logger.Error("Settings store write failed, cache keeps the new values", zap.Error(storeErr))
		return Snapshot{Values: merged, Degraded: true}, storeErr
	}

	s.saveSnapshot(ctx, merged)
	s.logger.Info("Settings updated", zap.Int("keys", len(values)))
	return Snapshot{Values: merged}, nil
}

// Warm pre-loads the cache, called once during startup
func (s *Service) Warm(ctx context.Context) {
	s.Get(ctx, true)
}

// InvalidateCache drops the cached settings map
func (s *Service) InvalidateCache() {
	s.cache.Invalidate()
}

func (s *Service) saveSnapshot(ctx context.Context, values map[string]string) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveValues(ctx, values); err != nil {
		s.logger.Debug("Settings snapshot write failed", zap.Error(err))
	}
}

// withDefaults fills keys the store has no row for
func withDefaults(values map[string]string) map[string]string {
	merged := settings.Defaults()
	for k, v := range values {
		merged[k] = v
	}
	return merged
}
