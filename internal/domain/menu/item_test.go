package menu

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	categoryID := uuid.New()

	t.Run("creates available item", func(t *testing.T) {
		item, err := NewItem(categoryID, "قهوة تركية", "Turkish Coffee", decimal.NewFromFloat(12.50))
		require.NoError(t, err)

		assert.Equal(t, categoryID, item.CategoryID)
		assert.True(t, item.IsAvailable)
		assert.True(t, item.Price.Equal(decimal.NewFromFloat(12.50)))
	})

	t.Run("rejects nil category", func(t *testing.T) {
		_, err := NewItem(uuid.Nil, "قهوة", "Coffee", decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewItem(categoryID, "قهوة", "Coffee", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestItemReprice(t *testing.T) {
	item, err := NewItem(uuid.New(), "لاتيه", "Latte", decimal.NewFromInt(18))
	require.NoError(t, err)

	t.Run("discount must be below base price", func(t *testing.T) {
		discount := decimal.NewFromInt(20)
		err := item.Reprice(decimal.NewFromInt(18), &discount)
		assert.Error(t, err)
	})

	t.Run("effective price prefers discount", func(t *testing.T) {
		discount := decimal.NewFromInt(15)
		require.NoError(t, item.Reprice(decimal.NewFromInt(18), &discount))
		assert.True(t, item.EffectivePrice().Equal(discount))

		require.NoError(t, item.Reprice(decimal.NewFromInt(18), nil))
		assert.True(t, item.EffectivePrice().Equal(decimal.NewFromInt(18)))
	})
}

func TestItemOptions(t *testing.T) {
	item, err := NewItem(uuid.New(), "لاتيه", "Latte", decimal.NewFromInt(18))
	require.NoError(t, err)

	t.Run("single options force one choice", func(t *testing.T) {
		opt, err := item.AddOption("الحجم", "Size", OptionSingle, true, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, opt.MaxChoices)

		_, err = opt.AddChoice("صغير", "Small", decimal.Zero, true)
		require.NoError(t, err)
		_, err = opt.AddChoice("كبير", "Large", decimal.NewFromInt(3), false)
		require.NoError(t, err)
		assert.Len(t, opt.Choices, 2)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := item.AddOption("إضافات", "Extras", OptionKind("many"), false, 3)
		assert.Error(t, err)
	})

	t.Run("rejects negative surcharge", func(t *testing.T) {
		opt, err := item.AddOption("إضافات", "Extras", OptionMultiple, false, 3)
		require.NoError(t, err)
		_, err = opt.AddChoice("عسل", "Honey", decimal.NewFromInt(-2), false)
		assert.Error(t, err)
	})
}
