package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cafemenu/backend/internal/domain/menu"
	"github.com/cafemenu/backend/internal/domain/settings"
)

// RedisSnapshotStore keeps the last-known-good menu and settings in Redis
// so a restarted or degraded instance can still serve something useful.
// Entries carry a generous TTL; this is advisory data, not a source of truth.
type RedisSnapshotStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSnapshotStore connects to Redis and verifies the connection
func NewRedisSnapshotStore(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisSnapshotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisSnapshotStoreWithClient(client, ttl, logger), nil
}

// NewRedisSnapshotStoreWithClient wraps an existing Redis client
func NewRedisSnapshotStoreWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSnapshotStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSnapshotStore{
		client:    client,
		keyPrefix: "cafe:snapshot:",
		ttl:       ttl,
		logger:    logger,
	}
}

func (s *RedisSnapshotStore) save(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", key, err)
	}
	return nil
}

func (s *RedisSnapshotStore) load(ctx context.Context, key string, out any) (bool, error) {
	payload, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return true, nil
}

// SaveCategories stores the category snapshot
func (s *RedisSnapshotStore) SaveCategories(ctx context.Context, categories []menu.Category) error {
	return s.save(ctx, "categories", categories)
}

// LoadCategories returns the category snapshot, nil on a miss
func (s *RedisSnapshotStore) LoadCategories(ctx context.Context) ([]menu.Category, error) {
	var categories []menu.Category
	ok, err := s.load(ctx, "categories", &categories)
	if err != nil || !ok {
		return nil, err
	}
	return categories, nil
}

// SaveItems stores the item snapshot
func (s *RedisSnapshotStore) SaveItems(ctx context.Context, items []menu.Item) error {
	return s.save(ctx, "items", items)
}

// LoadItems returns the item snapshot, nil on a miss
func (s *RedisSnapshotStore) LoadItems(ctx context.Context) ([]menu.Item, error) {
	var items []menu.Item
	ok, err := s.load(ctx, "items", &items)
	if err != nil || !ok {
		return nil, err
	}
	return items, nil
}

// SaveValues stores the settings map snapshot
func (s *RedisSnapshotStore) SaveValues(ctx context.Context, values map[string]string) error {
	return s.save(ctx, "settings", values)
}

// LoadValues returns the settings map snapshot, nil on a miss
func (s *RedisSnapshotStore) LoadValues(ctx context.Context) (map[string]string, error) {
	var values map[string]string
	ok, err := s.load(ctx, "settings", &values)
	if err != nil || !ok {
		return nil, err
	}
	return values, nil
}

// Clear drops all snapshots
func (s *RedisSnapshotStore) Clear(ctx context.Context) error {
	keys := []string{
		s.keyPrefix + "categories",
		s.keyPrefix + "items",
		s.keyPrefix + "settings",
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}

// Ensure RedisSnapshotStore implements both snapshot interfaces
var (
	_ menu.SnapshotStore     = (*RedisSnapshotStore)(nil)
	_ settings.SnapshotStore = (*RedisSnapshotStore)(nil)
)
