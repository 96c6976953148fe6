package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafemenu/backend/internal/domain/settings"
)

func TestGormSettingRepositoryUpsertAndFindAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSettingRepository(db)
	ctx := context.Background()

	for _, kv := range [][2]string{
		{"cafe_name_en", "Corner Cafe"},
		{"currency", "SAR"},
		{"tax_rate", "0.15"},
	} {
		setting, err := settings.NewSetting(kv[0], kv[1])
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, setting))
	}

	rows, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Rows come back ordered by key
	assert.Equal(t, "cafe_name_en", rows[0].Key)
	assert.Equal(t, "currency", rows[1].Key)
	assert.Equal(t, "tax_rate", rows[2].Key)
}

func TestGormSettingRepositoryUpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSettingRepository(db)
	ctx := context.Background()

	first, err := settings.NewSetting("currency", "SAR")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, first))

	second, err := settings.NewSetting("currency", "USD")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, second))

	rows, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "USD", rows[0].Value)
}
