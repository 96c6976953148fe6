package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Snapshot caches a single value of type T with a TTL. Unlike an evicting
// cache it keeps the expired value around so callers can fall back to
// stale data when the backing store is unreachable.
type Snapshot[T any] struct {
	mu        sync.RWMutex
	value     T
	hasValue  bool
	fetchedAt time.Time
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
	name      string

	// Stats for monitoring
	hits   int64
	misses int64
}

// SnapshotOption is a functional option for configuring a snapshot cache
type SnapshotOption[T any] func(*Snapshot[T])

// WithSnapshotLogger sets the logger for the cache
func WithSnapshotLogger[T any](logger *zap.Logger) SnapshotOption[T] {
	return func(s *Snapshot[T]) {
		s.logger = logger
	}
}

// WithClock overrides the time source, used by tests
func WithClock[T any](now func() time.Time) SnapshotOption[T] {
	return func(s *Snapshot[T]) {
		s.now = now
	}
}

// NewSnapshot creates a snapshot cache with the given name and TTL
func NewSnapshot[T any](name string, ttl time.Duration, opts ...SnapshotOption[T]) *Snapshot[T] {
	s := &Snapshot[T]{
		name:   name,
		ttl:    ttl,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fresh returns the cached value if it exists and has not expired
func (s *Snapshot[T]) Fresh() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasValue || s.now().Sub(s.fetchedAt) >= s.ttl {
		atomic.AddInt64(&s.misses, 1)
		var zero T
		return zero, false
	}

	atomic.AddInt64(&s.hits, 1)
	s.logger.Debug("Cache hit", zap.String("cache", s.name))
	return s.value, true
}

// Stale returns the cached value regardless of expiry
func (s *Snapshot[T]) Stale() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasValue {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Put stores a value and its fetch time in one step. Value and timestamp
// are never observable out of sync.
func (s *Snapshot[T]) Put(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = value
	s.hasValue = true
	s.fetchedAt = s.now()
}

// Mutate applies fn to the current value under the write lock and stores
// the result as a fresh entry. fn receives the zero value when the cache
// is empty.
func (s *Snapshot[T]) Mutate(fn func(current T, ok bool) T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = fn(s.value, s.hasValue)
	s.hasValue = true
	s.fetchedAt = s.now()
}

// Invalidate clears the value and its timestamp together
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.value = zero
	s.hasValue = false
	s.fetchedAt = time.Time{}
	s.logger.Debug("Cache invalidated", zap.String("cache", s.name))
}

// Age returns how long ago the value was fetched, or false when empty
func (s *Snapshot[T]) Age() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasValue {
		return 0, false
	}
	return s.now().Sub(s.fetchedAt), true
}

// Stats returns hit and miss counters
func (s *Snapshot[T]) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&s.hits), atomic.LoadInt64(&s.misses)
}
