package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cafemenu/backend/internal/domain/identity"
	"github.com/cafemenu/backend/internal/domain/shared"
	"github.com/cafemenu/backend/internal/infrastructure/auth"
	"github.com/cafemenu/backend/internal/infrastructure/config"
)

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

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.AuthConfig{
		JWTSecret:       "test-secret-key-that-is-long-enough!",
		TokenExpiration: time.Hour,
		Issuer:          "cafe-menu-test",
	})
}

func newAdminFixture(t *testing.T, email, password string) *identity.AdminUser {
	t.Helper()
	admin, err := identity.NewAdminUser(email, password, "Owner")
	require.NoError(t, err)
	return admin
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	service := NewAuthService(repo, newTestJWTService(), BootstrapAdmin{}, nil)

	admin := newAdminFixture(t, "owner@cafe.example", "correct-horse-1")
	repo.On("FindByEmail", ctx, "owner@cafe.example").Return(admin, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*identity.AdminUser")).Return(nil)

	result, err := service.Login(ctx, LoginRequest{Email: "owner@cafe.example", Password: "correct-horse-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token.Value)
	assert.Equal(t, "Bearer", result.Token.TokenType)
	assert.Equal(t, admin.Email, result.Admin.Email)
	assert.NotNil(t, admin.LastLoginAt)
}

func TestAuthService_Login_UniformFailures(t *testing.T) {
	ctx := context.Background()

	admin := newAdminFixture(t, "owner@cafe.example", "correct-horse-1")
	deactivated := newAdminFixture(t, "gone@cafe.example", "correct-horse-1")
	deactivated.IsActive = false

	cases := []struct {
		name  string
		setup func(repo *MockAdminRepository)
		req   LoginRequest
	}{
		{
			name: "unknown email",
			setup: func(repo *MockAdminRepository) {
				repo.On("FindByEmail", ctx, "nobody@cafe.example").Return(nil, shared.ErrNotFound)
			},
			req: LoginRequest{Email: "nobody@cafe.example", Password: "whatever-123"},
		},
		{
			name: "wrong password",
			setup: func(repo *MockAdminRepository) {
				repo.On("FindByEmail", ctx, "owner@cafe.example").Return(admin, nil)
			},
			req: LoginRequest{Email: "owner@cafe.example", Password: "wrong-password"},
		},
		{
			name: "deactivated account",
			setup: func(repo *MockAdminRepository) {
				repo.On("FindByEmail", ctx, "gone@cafe.example").Return(deactivated, nil)
			},
			req: LoginRequest{Email: "gone@cafe.example", Password: "correct-horse-1"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockAdminRepository)
			tc.setup(repo)
			service := NewAuthService(repo, newTestJWTService(), BootstrapAdmin{}, nil)

			_, err := service.Login(ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, ErrInvalidCredentials, err)
		})
	}
}

func TestAuthService_Login_BootstrapsFirstAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	bootstrap := BootstrapAdmin{Email: "owner@cafe.example", Password: "first-login-secret"}
	service := NewAuthService(repo, newTestJWTService(), bootstrap, nil)

	repo.On("FindByEmail", ctx, "owner@cafe.example").Return(nil, shared.ErrNotFound)
	repo.On("Count", ctx).Return(int64(0), nil)
	repo.On("Save", ctx, mock.AnythingOfType("*identity.AdminUser")).Return(nil)

	result, err := service.Login(ctx, LoginRequest{Email: "owner@cafe.example", Password: "first-login-secret"})
	require.NoError(t, err)
	assert.Equal(t, "owner@cafe.example", result.Admin.Email)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_BootstrapWrongPasswordCreatesNothing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	bootstrap := BootstrapAdmin{Email: "owner@cafe.example", Password: "first-login-secret"}
	service := NewAuthService(repo, newTestJWTService(), bootstrap, nil)

	repo.On("FindByEmail", ctx, "owner@cafe.example").Return(nil, shared.ErrNotFound)

	_, err := service.Login(ctx, LoginRequest{Email: "owner@cafe.example", Password: "not-the-secret"})
	assert.Equal(t, ErrInvalidCredentials, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Count", mock.Anything)
}

func TestAuthService_Login_NoBootstrapOnceAdminsExist(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	bootstrap := BootstrapAdmin{Email: "owner@cafe.example", Password: "first-login-secret"}
	service := NewAuthService(repo, newTestJWTService(), bootstrap, nil)

	repo.On("FindByEmail", ctx, "owner@cafe.example").Return(nil, shared.ErrNotFound)
	repo.On("Count", ctx).Return(int64(1), nil)

	_, err := service.Login(ctx, LoginRequest{Email: "owner@cafe.example", Password: "first-login-secret"})
	assert.Equal(t, ErrInvalidCredentials, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_NoBootstrapForOtherEmails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	bootstrap := BootstrapAdmin{Email: "owner@cafe.example", Password: "first-login-secret"}
	service := NewAuthService(repo, newTestJWTService(), bootstrap, nil)

	repo.On("FindByEmail", ctx, "intruder@cafe.example").Return(nil, shared.ErrNotFound)

	_, err := service.Login(ctx, LoginRequest{Email: "intruder@cafe.example", Password: "first-login-secret"})
	assert.Equal(t, ErrInvalidCredentials, err)
	repo.AssertNotCalled(t, "Count", mock.Anything)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	service := NewAuthService(repo, newTestJWTService(), BootstrapAdmin{}, nil)

	admin := newAdminFixture(t, "owner@cafe.example", "old-password-1")
	repo.On("FindByID", ctx, admin.ID).Return(admin, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*identity.AdminUser")).Return(nil)

	err := service.ChangePassword(ctx, admin.ID, ChangePasswordRequest{
		CurrentPassword: "old-password-1",
		NewPassword:     "new-password-1",
	})
	require.NoError(t, err)
	assert.True(t, admin.CheckPassword("new-password-1"))
	assert.False(t, admin.CheckPassword("old-password-1"))
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	service := NewAuthService(repo, newTestJWTService(), BootstrapAdmin{}, nil)

	admin := newAdminFixture(t, "owner@cafe.example", "old-password-1")
	repo.On("FindByID", ctx, admin.ID).Return(admin, nil)

	err := service.ChangePassword(ctx, admin.ID, ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-password-1",
	})
	assert.Equal(t, ErrInvalidCredentials, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Me_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	service := NewAuthService(repo, newTestJWTService(), BootstrapAdmin{}, nil)

	id := uuid.New()
	repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := service.Me(ctx, id)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
