// Package identity handles admin authentication for the management surface.
package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cafemenu/backend/internal/domain/identity"
	"github.com/cafemenu/backend/internal/domain/shared"
	"github.com/cafemenu/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is the single error surfaced for every login
// failure. Unknown email, wrong password and deactivated account are
// indistinguishable to the caller.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// LoginRequest carries admin login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries a session token and the admin's profile
type LoginResponse struct {
	Token *auth.Token   `json:"token"`
	Admin AdminResponse `json:"admin"`
}

// AdminResponse is the API shape of an admin account
type AdminResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ChangePasswordRequest carries a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// BootstrapAdmin holds the credentials for the first admin account,
// taken from configuration. Only consulted while the admin table is empty.
type BootstrapAdmin struct {
	Email    string
	Password string
}

// AuthService authenticates admins and manages their accounts
type AuthService struct {
	repo      identity.Repository
	jwt       *auth.JWTService
	bootstrap BootstrapAdmin
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(repo identity.Repository, jwtService *auth.JWTService, bootstrap BootstrapAdmin, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		repo:      repo,
		jwt:       jwtService,
		bootstrap: bootstrap,
		logger:    logger,
	}
}

// Login verifies credentials and issues a session token. All failure modes
// return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		admin, err = s.bootstrapFirstAdmin(ctx, req.Email, req.Password)
		if err != nil {
			s.logger.Warn("Login failed", zap.String("email", req.Email))
			return nil, ErrInvalidCredentials
		}
	}

	if !admin.IsActive || !admin.CheckPassword(req.Password) {
		s.logger.Warn("Login failed", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return nil, err
	}

	admin.RecordLogin(time.Now())
	if err := s.repo.Save(ctx, admin); err != nil {
		// The session is already issued; losing the login stamp is acceptable
		s.logger.Warn("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("Admin logged in", zap.String("admin_id", admin.ID.String()))
	return &LoginResponse{Token: token, Admin: toAdminResponse(admin)}, nil
}

// Me returns the profile of the authenticated admin
func (s *AuthService) Me(ctx context.Context, adminID uuid.UUID) (*AdminResponse, error) {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	resp := toAdminResponse(admin)
	return &resp, nil
}

// ChangePassword replaces the admin's password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, adminID uuid.UUID, req ChangePasswordRequest) error {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !admin.CheckPassword(req.CurrentPassword) {
		return ErrInvalidCredentials
	}
	if err := admin.SetPassword(req.NewPassword); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("Admin password changed", zap.String("admin_id", adminID.String()))
	return nil
}

// bootstrapFirstAdmin creates the initial admin account from configured
// credentials. It only fires while the admin table is empty and the
// supplied credentials match the configured pair; a wrong password
// creates nothing.
func (s *AuthService) bootstrapFirstAdmin(ctx context.Context, email, password string) (*identity.AdminUser, error) {
	if s.bootstrap.Email == "" || s.bootstrap.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.bootstrap.Email) {
		return nil, ErrInvalidCredentials
	}
	if password != s.bootstrap.Password {
		return nil, ErrInvalidCredentials
	}

	count, err := s.repo.Count(ctx)
	if err != nil || count > 0 {
		return nil, ErrInvalidCredentials
	}

	admin, err := identity.NewAdminUser(s.bootstrap.Email, s.bootstrap.Password, "Admin")
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("Bootstrap admin created", zap.String("email", admin.Email))
	return admin, nil
}

func toAdminResponse(admin *identity.AdminUser) AdminResponse {
	return AdminResponse{
		ID:          admin.ID,
		Email:       admin.Email,
		DisplayName: admin.DisplayName,
		Role:        admin.Role,
		LastLoginAt: admin.LastLoginAt,
	}
}
