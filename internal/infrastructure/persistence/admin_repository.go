package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafemenu/backend/internal/domain/identity"
	"github.com/cafemenu/backend/internal/domain/shared"
)

// GormAdminRepository implements identity.Repository using GORM
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new GormAdminRepository
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// FindByID finds an admin account by ID
func (r *GormAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AdminUser, error) {
	var admin identity.AdminUser
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// FindByEmail finds an admin account by email, case-insensitively
func (r *GormAdminRepository) FindByEmail(ctx context.Context, email string) (*identity.AdminUser, error) {
	var admin identity.AdminUser
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// Save creates or updates an admin account
func (r *GormAdminRepository) Save(ctx context.Context, admin *identity.AdminUser) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

// Count counts all admin accounts
func (r *GormAdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.AdminUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAdminRepository implements identity.Repository
var _ identity.Repository = (*GormAdminRepository)(nil)
