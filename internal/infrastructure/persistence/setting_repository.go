package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cafemenu/backend/internal/domain/settings"
)

// GormSettingRepository implements settings.Repository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindAll returns every settings row
func (r *GormSettingRepository) FindAll(ctx context.Context) ([]settings.Setting, error) {
	var rows []settings.Setting
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert inserts the row or updates its value when the key already exists
func (r *GormSettingRepository) Upsert(ctx context.Context, setting *settings.Setting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error
}

// Ensure GormSettingRepository implements settings.Repository
var _ settings.Repository = (*GormSettingRepository)(nil)
