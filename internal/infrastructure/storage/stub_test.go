package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryObjectStorage()

	t.Run("upload and exists", func(t *testing.T) {
		require.NoError(t, store.Upload(ctx, "menu-items/latte.jpg", []byte("img"), "image/jpeg"))

		ok, err := store.Exists(ctx, "menu-items/latte.jpg")
		require.NoError(t, err)
		assert.True(t, ok)

		data, ok := store.Get("menu-items/latte.jpg")
		require.True(t, ok)
		assert.Equal(t, []byte("img"), data)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		assert.Error(t, store.Upload(ctx, "", []byte("x"), "image/png"))
		assert.Error(t, store.Delete(ctx, ""))
		_, err := store.Exists(ctx, "")
		assert.Error(t, err)
	})

	t.Run("list by prefix is sorted", func(t *testing.T) {
		require.NoError(t, store.Upload(ctx, "backups/b2.json", []byte("{}"), "application/json"))
		require.NoError(t, store.Upload(ctx, "backups/b1.json", []byte("{}"), "application/json"))

		objects, err := store.List(ctx, "backups/")
		require.NoError(t, err)
		require.Len(t, objects, 2)
		assert.Equal(t, "backups/b1.json", objects[0].Key)
		assert.Equal(t, "backups/b2.json", objects[1].Key)
	})

	t.Run("delete removes the object", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "menu-items/latte.jpg"))
		ok, err := store.Exists(ctx, "menu-items/latte.jpg")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("public url joins base and key", func(t *testing.T) {
		assert.Equal(t,
			"https://storage.example.com/cafe-menu/backups/b1.json",
			store.PublicURL("backups/b1.json"))
	})
}
