package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafemenu/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.AuthConfig{
		JWTSecret:       "test-secret-test-secret-test-secret",
		TokenExpiration: expiration,
		Issuer:          "cafemenu-test",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(time.Hour)
	adminID := uuid.New()

	token, err := svc.Generate(adminID, "owner@cafe.example", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token.Value)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.Validate(token.Value)
	require.NoError(t, err)
	assert.Equal(t, adminID.String(), claims.AdminID)
	assert.Equal(t, "owner@cafe.example", claims.Email)
	assert.Equal(t, "admin", claims.Role)

	got, err := claims.GetAdminUUID()
	require.NoError(t, err)
	assert.Equal(t, adminID, got)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.Generate(uuid.New(), "owner@cafe.example", "admin")
	require.NoError(t, err)

	_, err = svc.Validate(token.Value)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(config.AuthConfig{
		JWTSecret:       "a-different-secret-a-different-secret",
		TokenExpiration: time.Hour,
		Issuer:          "cafemenu-test",
	})

	token, err := svc.Generate(uuid.New(), "owner@cafe.example", "admin")
	require.NoError(t, err)

	_, err = other.Validate(token.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(time.Hour)
	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
