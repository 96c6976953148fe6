// Package backup exports the full menu dataset to object storage.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cafemenu/backend/internal/domain/identity"
	"github.com/cafemenu/backend/internal/domain/menu"
	"github.com/cafemenu/backend/internal/domain/settings"
	"github.com/cafemenu/backend/internal/domain/shared"
	"github.com/cafemenu/backend/internal/infrastructure/storage"
)

// archiveVersion is bumped when the archive layout changes
const archiveVersion = "1"

// ObjectStorage is the slice of object storage the backup service needs
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
	PublicURL(key string) string
}

// Archive is the versioned backup payload
type Archive struct {
	Version    string             `json:"version"`
	CreatedAt  time.Time          `json:"created_at"`
	Categories []menu.Category    `json:"categories"`
	Items      []menu.Item        `json:"items"`
	Settings   []settings.Setting `json:"settings"`
	AdminCount int64              `json:"admin_count"`
}

// Info describes a stored backup archive
type Info struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
}

// Service creates and lists backup archives. A backup is all-or-nothing:
// any failed read aborts it and nothing is uploaded.
type Service struct {
	categoryRepo menu.CategoryRepository
	itemRepo     menu.ItemRepository
	settingsRepo settings.Repository
	adminRepo    identity.Repository
	store        ObjectStorage
	logger       *zap.Logger
}

// NewService creates a backup service
func NewService(
	categoryRepo menu.CategoryRepository,
	itemRepo menu.ItemRepository,
	settingsRepo settings.Repository,
	adminRepo identity.Repository,
	store ObjectStorage,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		settingsRepo: settingsRepo,
		adminRepo:    adminRepo,
		store:        store,
		logger:       logger,
	}
}

// Create reads the full dataset and uploads one JSON archive. Any read
// failure aborts the backup before anything is written.
func (s *Service) Create(ctx context.Context) (*Info, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup aborted reading categories: %w", err)
	}
	items, err := s.itemRepo.FindAll(ctx, menu.ItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("backup aborted reading items: %w", err)
	}
	settingRows, err := s.settingsRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup aborted reading settings: %w", err)
	}
	adminCount, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup aborted counting admins: %w", err)
	}

	archive := Archive{
		Version:    archiveVersion,
		CreatedAt:  time.Now().UTC(),
		Categories: categories,
		Items:      items,
		Settings:   settingRows,
		AdminCount: adminCount,
	}

	payload, err := json.Marshal(archive)
	if err != nil {
		return nil, fmt.Errorf("backup serialization failed: %w", err)
	}

	key := archiveKey(archive.CreatedAt)
	if err := s.store.Upload(ctx, key, payload, "application/json"); err != nil {
		return nil, fmt.Errorf("backup upload failed: %w", err)
	}

	s.logger.Info("Backup created",
		zap.String("key", key),
		zap.Int("categories", len(categories)),
		zap.Int("items", len(items)))

	return &Info{
		Key:       key,
		Size:      int64(len(payload)),
		CreatedAt: archive.CreatedAt,
		URL:       s.store.PublicURL(key),
	}, nil
}

// List returns stored archives, newest first
func (s *Service) List(ctx context.Context) ([]Info, error) {
	objects, err := s.store.List(ctx, "backups/")
	if err != nil {
		return nil, shared.ErrUnavailable
	}

	infos := make([]Info, 0, len(objects))
	for _, obj := range objects {
		infos = append(infos, Info{
			Key:       obj.Key,
			Size:      obj.Size,
			CreatedAt: obj.LastModified,
			URL:       s.store.PublicURL(obj.Key),
		})
	}
	for i, j := 0, len(infos)-1; i < j; i, j = i+1, j-1 {
		infos[i], infos[j] = infos[j], infos[i]
	}
	return infos, nil
}

func archiveKey(at time.Time) string {
	return fmt.Sprintf("backups/backup-%s-%s.json",
		at.Format("20060102-150405"),
		uuid.New().String()[:8])
}
