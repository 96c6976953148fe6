package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cafemenu/backend/internal/domain/shared"
)

// AdminUser is a staff account with access to the management surface
type AdminUser struct {
	shared.BaseEntity
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	DisplayName  string     `json:"display_name" gorm:"type:varchar(120)"`
	Role         string     `json:"role" gorm:"type:varchar(32);default:'admin'"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// TableName returns the table name for GORM
func (AdminUser) TableName() string {
	return "admin_users"
}

// NewAdminUser creates an active admin with a bcrypt-hashed password
func NewAdminUser(email, password, displayName string) (*AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AdminUser{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         "admin",
		IsActive:     true,
	}, nil
}

// CheckPassword compares a candidate password against the stored hash
func (a *AdminUser) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the stored hash
func (a *AdminUser) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// RecordLogin stamps the last successful login time
func (a *AdminUser) RecordLogin(at time.Time) {
	a.LastLoginAt = &at
}

// Repository persists admin accounts
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	Save(ctx context.Context, admin *AdminUser) error
	Count(ctx context.Context) (int64, error)
}
