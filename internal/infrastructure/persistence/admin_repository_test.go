package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafemenu/backend/internal/domain/identity"
	"github.com/cafemenu/backend/internal/domain/shared"
)

func seedAdmin(t *testing.T, repo *GormAdminRepository, email string) *identity.AdminUser {
	t.Helper()
	admin, err := identity.NewAdminUser(email, "super-secret-pw", "Admin")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), admin))
	return admin
}

func TestGormAdminRepositoryFindByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAdminRepository(db)
	ctx := context.Background()

	seeded := seedAdmin(t, repo, "owner@cafe.example")

	found, err := repo.FindByEmail(ctx, "  Owner@Cafe.Example ")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, "owner@cafe.example", found.Email)

	_, err = repo.FindByEmail(ctx, "nobody@cafe.example")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAdminRepositoryFindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAdminRepository(db)
	ctx := context.Background()

	seeded := seedAdmin(t, repo, "owner@cafe.example")

	found, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Email, found.Email)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAdminRepositorySaveUpdatesLastLogin(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAdminRepository(db)
	ctx := context.Background()

	admin := seedAdmin(t, repo, "owner@cafe.example")
	loginAt := time.Now().UTC().Truncate(time.Second)
	admin.RecordLogin(loginAt)
	require.NoError(t, repo.Save(ctx, admin))

	found, err := repo.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.WithinDuration(t, loginAt, *found.LastLoginAt, time.Second)
}

func TestGormAdminRepositoryCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAdminRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	seedAdmin(t, repo, "owner@cafe.example")
	seedAdmin(t, repo, "barista@cafe.example")

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
