package backup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cafemenu/backend/internal/domain/identity"
	"github.com/cafemenu/backend/internal/domain/menu"
	"github.com/cafemenu/backend/internal/domain/settings"
	"github.com/cafemenu/backend/internal/infrastructure/storage"
)

// MockCategoryRepository is a mock implementation of menu.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]menu.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *menu.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemRepository is a mock implementation of menu.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter menu.ItemFilter) ([]menu.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *menu.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter menu.ItemFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettingsRepository is a mock implementation of settings.Repository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindAll(ctx context.Context) ([]settings.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settings.Setting), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, setting *settings.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

// MockAdminRepository is a mock implementation of identity.Repository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*identity.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AdminUser), args.Error(1)
}

func (m *MockAdminRepository) Save(ctx context.Context, admin *identity.AdminUser) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newBackupFixtures(t *testing.T) ([]menu.Category, []menu.Item, []settings.Setting) {
	t.Helper()
	category, err := menu.NewCategory("مشروبات", "Drinks", "#8B5A2B", "coffee", 1)
	require.NoError(t, err)
	item, err := menu.NewItem(category.ID, "لاتيه", "Latte", decimal.NewFromInt(18))
	require.NoError(t, err)
	return []menu.Category{*category},
		[]menu.Item{*item},
		[]settings.Setting{{Key: "currency", Value: "SAR"}}
}

func TestService_Create_UploadsVersionedArchive(t *testing.T) {
	ctx := context.Background()
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	settingsRepo := new(MockSettingsRepository)
	adminRepo := new(MockAdminRepository)
	store := storage.NewMemoryObjectStorage()
	service := NewService(categoryRepo, itemRepo, settingsRepo, adminRepo, store, nil)

	categories, items, settingRows := newBackupFixtures(t)
	categoryRepo.On("FindAll", ctx).Return(categories, nil)
	itemRepo.On("FindAll", ctx, menu.ItemFilter{}).Return(items, nil)
	settingsRepo.On("FindAll", ctx).Return(settingRows, nil)
	adminRepo.On("Count", ctx).Return(int64(1), nil)

	info, err := service.Create(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.Key, "backups/backup-"))
	assert.True(t, strings.HasSuffix(info.Key, ".json"))
	assert.Positive(t, info.Size)

	payload, ok := store.Get(info.Key)
	require.True(t, ok)

	var archive Archive
	require.NoError(t, json.Unmarshal(payload, &archive))
	assert.Equal(t, "1", archive.Version)
	require.Len(t, archive.Categories, 1)
	assert.Equal(t, "Drinks", archive.Categories[0].NameEN)
	require.Len(t, archive.Items, 1)
	assert.Equal(t, int64(1), archive.AdminCount)
}

func TestService_Create_AbortsOnAnyReadFailure(t *testing.T) {
	ctx := context.Background()
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	settingsRepo := new(MockSettingsRepository)
	adminRepo := new(MockAdminRepository)
	store := storage.NewMemoryObjectStorage()
	service := NewService(categoryRepo, itemRepo, settingsRepo, adminRepo, store, nil)

	categories, _, _ := newBackupFixtures(t)
	categoryRepo.On("FindAll", ctx).Return(categories, nil)
	itemRepo.On("FindAll", ctx, menu.ItemFilter{}).Return(nil, errors.New("connection refused"))

	_, err := service.Create(ctx)
	require.Error(t, err)
	assert.Zero(t, store.Len(), "nothing may be uploaded when a read fails")
}

func TestService_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryObjectStorage()
	service := NewService(nil, nil, nil, nil, store, nil)

	require.NoError(t, store.Upload(ctx, "backups/backup-20260101-000000-aaaa.json", []byte("{}"), "application/json"))
	require.NoError(t, store.Upload(ctx, "backups/backup-20260201-000000-bbbb.json", []byte("{}"), "application/json"))

	infos, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Contains(t, infos[0].Key, "20260201")
	assert.Contains(t, infos[1].Key, "20260101")
}
