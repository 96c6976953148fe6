package settings

import (
	"context"
	"strings"
	"time"

	"github.com/cafemenu/backend/internal/domain/shared"
)

// Setting is a single key/value row of café-wide configuration
type Setting struct {
	Key       string    `json:"key" gorm:"type:varchar(120);primaryKey"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Setting) TableName() string {
	return "settings"
}

// NewSetting creates a validated setting row
func NewSetting(key, value string) (*Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.NewDomainError("INVALID_SETTING_KEY", "Setting key is required")
	}
	if len(key) > 120 {
		return nil, shared.NewDomainError("INVALID_SETTING_KEY", "Setting key must not exceed 120 characters")
	}
	return &Setting{Key: key, Value: value}, nil
}

// Repository persists settings rows
type Repository interface {
	FindAll(ctx context.Context) ([]Setting, error)
	Upsert(ctx context.Context, setting *Setting) error
}

// SnapshotStore keeps an advisory copy of the settings map outside the
// primary store. Best-effort: failures must never break a settings read.
type SnapshotStore interface {
	SaveValues(ctx context.Context, values map[string]string) error
	LoadValues(ctx context.Context) (map[string]string, error)
}

// AsMap flattens rows into a lookup map
func AsMap(rows []Setting) map[string]string {
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[row.Key] = row.Value
	}
	return m
}

// Defaults returns the built-in settings served when the backing store
// has never been reachable
func Defaults() map[string]string {
	return map[string]string{
		"cafe_name_ar":    "مقهى",
		"cafe_name_en":    "Cafe",
		"logo_url":        "",
		"primary_color":   "#8B5A2B",
		"secondary_color": "#F5E9DA",
		"currency":        "SAR",
		"tax_rate":        "0.15",
		"phone":           "",
		"instagram":       "",
		"working_hours":   "08:00-23:00",
	}
}
