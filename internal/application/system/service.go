// Package system handles startup readiness and operational endpoints.
package system

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cafemenu/backend/internal/domain/menu"
)

// Status reports service health for the operational endpoints
type Status struct {
	Ready     bool      `json:"ready"`
	Degraded  bool      `json:"degraded"`
	CheckedAt time.Time `json:"checked_at"`
}

// CacheInvalidator drops an in-process cache
type CacheInvalidator interface {
	InvalidateCache()
}

// SettingsWarmer pre-loads the settings cache during startup
type SettingsWarmer interface {
	Warm(ctx context.Context)
}

// Service probes the backing store once at startup and exposes cache
// controls. The service always starts; a failed probe only marks it
// degraded so reads fall back to cached and default data.
type Service struct {
	categoryRepo menu.CategoryRepository
	snapshots    menu.SnapshotStore
	invalidators []CacheInvalidator
	warmer       SettingsWarmer
	initTimeout  time.Duration
	logger       *zap.Logger

	initOnce sync.Once
	mu       sync.RWMutex
	ready    bool
	degraded bool
}

// NewService creates a system service. snapshots and warmer may be nil.
func NewService(
	categoryRepo menu.CategoryRepository,
	snapshots menu.SnapshotStore,
	warmer SettingsWarmer,
	initTimeout time.Duration,
	logger *zap.Logger,
	invalidators ...CacheInvalidator,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if initTimeout <= 0 {
		initTimeout = 10 * time.Second
	}
	return &Service{
		categoryRepo: categoryRepo,
		snapshots:    snapshots,
		invalidators: invalidators,
		warmer:       warmer,
		initTimeout:  initTimeout,
		logger:       logger,
	}
}

// EnsureReady runs the startup probe exactly once. Concurrent callers share
// the same probe; later calls return the memoized outcome immediately.
func (s *Service) EnsureReady(ctx context.Context) Status {
	s.initOnce.Do(func() {
		probeCtx, cancel := context.WithTimeout(ctx, s.initTimeout)
		defer cancel()

		count, err := s.categoryRepo.Count(probeCtx)
		s.mu.Lock()
		if err != nil {
			s.logger.Warn("Startup probe failed, starting degraded", zap.Error(err))
			s.degraded = true
		} else {
			s.logger.Info("Startup probe succeeded", zap.Int64("categories", count))
		}
		s.ready = true
		s.mu.Unlock()

		if s.warmer != nil && err == nil {
			s.warmer.Warm(probeCtx)
		}
	})
	return s.Status()
}

// Status returns the current readiness snapshot
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Ready:     s.ready,
		Degraded:  s.degraded,
		CheckedAt: time.Now().UTC(),
	}
}

// ClearCaches drops every registered in-process cache and the advisory
// snapshot store
func (s *Service) ClearCaches(ctx context.Context) error {
	for _, inv := range s.invalidators {
		inv.InvalidateCache()
	}
	if s.snapshots != nil {
		if err := s.snapshots.Clear(ctx); err != nil {
			s.logger.Warn("Snapshot store clear failed", zap.Error(err))
			return err
		}
	}
	s.logger.Info("Caches cleared")
	return nil
}
