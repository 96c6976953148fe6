package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cafemenu/backend/internal/domain/menu"
	"github.com/cafemenu/backend/internal/domain/shared"
)

func newItemFixture(t *testing.T, categoryID uuid.UUID, nameEN string, price float64) menu.Item {
	t.Helper()
	item, err := menu.NewItem(categoryID, "صنف", nameEN, decimal.NewFromFloat(price))
	require.NoError(t, err)
	return *item
}

func TestItemService_List_PassesNormalizedFilter(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	service := NewItemService(itemRepo, new(MockCategoryRepository), nil, nil)

	categoryID := uuid.New()
	stored := []menu.Item{newItemFixture(t, categoryID, "Latte", 18)}
	itemRepo.On("FindAll", ctx, mock.MatchedBy(func(f menu.ItemFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == categoryID &&
			f.OnlyAvailable && f.Search == "latte"
	})).Return(stored, nil)

	result := service.List(ctx, ItemListQuery{
		CategoryID:    &categoryID,
		OnlyAvailable: true,
		Search:        "latte",
	})
	assert.False(t, result.Degraded)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Latte", result.Items[0].NameEN)
}

func TestItemService_List_ShortSearchAnswersEmptyWithoutStore(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	service := NewItemService(itemRepo, new(MockCategoryRepository), nil, nil)

	for _, query := range []string{"a", " ل ", "5"} {
		result := service.List(ctx, ItemListQuery{Search: query})
		assert.Empty(t, result.Items, "query %q", query)
		assert.False(t, result.Degraded, "query %q", query)
	}
	itemRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestItemService_List_SnapshotFallbackFiltersInMemory(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	snapshots := new(MockSnapshotStore)
	service := NewItemService(itemRepo, new(MockCategoryRepository), snapshots, nil)

	drinks := uuid.New()
	food := uuid.New()
	latte := newItemFixture(t, drinks, "Latte", 18)
	burger := newItemFixture(t, food, "Burger", 32)
	unavailable := newItemFixture(t, drinks, "Mocha", 20)
	unavailable.SetAvailability(false)

	itemRepo.On("FindAll", ctx, mock.Anything).Return(nil, errors.New("connection refused"))
	snapshots.On("LoadItems", ctx).Return([]menu.Item{latte, burger, unavailable}, nil)

	result := service.List(ctx, ItemListQuery{CategoryID: &drinks, OnlyAvailable: true})
	assert.True(t, result.Degraded)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Latte", result.Items[0].NameEN)
}

func TestItemService_List_EmptyWhenNoFallback(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	service := NewItemService(itemRepo, new(MockCategoryRepository), nil, nil)

	itemRepo.On("FindAll", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

	result := service.List(ctx, ItemListQuery{})
	assert.True(t, result.Degraded)
	assert.Empty(t, result.Items)
}

func TestItemService_Create_RequiresExistingCategory(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewItemService(itemRepo, categoryRepo, nil, nil)

	categoryID := uuid.New()
	categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

	_, err := service.Create(ctx, CreateItemRequest{
		CategoryID: categoryID,
		NameAR:     "لاتيه",
		NameEN:     "Latte",
		Price:      18,
	})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestItemService_Create_WithOptionsAndDiscount(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewItemService(itemRepo, categoryRepo, nil, nil)

	category := newCategoryFixture(t, "Drinks")
	categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)
	itemRepo.On("Save", ctx, mock.AnythingOfType("*menu.Item")).Return(nil)

	discount := 15.0
	created, err := service.Create(ctx, CreateItemRequest{
		CategoryID:    category.ID,
		NameAR:        "لاتيه",
		NameEN:        "Latte",
		Price:         18,
		DiscountPrice: &discount,
		Options: []ItemOptionRequest{{
			NameAR: "الحجم",
			NameEN: "Size",
			Kind:   "single",
			Choices: []OptionChoiceRequest{
				{NameAR: "صغير", NameEN: "Small", IsDefault: true},
				{NameAR: "كبير", NameEN: "Large", PriceDelta: 4},
			},
		}},
	})
	require.NoError(t, err)
	require.NotNil(t, created.DiscountPrice)
	assert.True(t, created.DiscountPrice.Equal(decimal.NewFromFloat(15)))
	require.Len(t, created.Options, 1)
	assert.Equal(t, "single", created.Options[0].Kind)
	require.Len(t, created.Options[0].Choices, 2)
	assert.True(t, created.Options[0].Choices[1].PriceDelta.Equal(decimal.NewFromInt(4)))
}

func TestItemService_Create_RejectsDiscountAbovePrice(t *testing.T) {
	ctx := context.Background()
	categoryRepo := new(MockCategoryRepository)
	service := NewItemService(new(MockItemRepository), categoryRepo, nil, nil)

	category := newCategoryFixture(t, "Drinks")
	categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)

	discount := 20.0
	_, err := service.Create(ctx, CreateItemRequest{
		CategoryID:    category.ID,
		NameAR:        "لاتيه",
		NameEN:        "Latte",
		Price:         18,
		DiscountPrice: &discount,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_PRICE", domainErr.Code)
}

func TestItemService_Update_MoveToMissingCategory(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	categoryRepo := new(MockCategoryRepository)
	service := NewItemService(itemRepo, categoryRepo, nil, nil)

	item := newItemFixture(t, uuid.New(), "Latte", 18)
	itemRepo.On("FindByID", ctx, item.ID).Return(&item, nil)

	target := uuid.New()
	categoryRepo.On("FindByID", ctx, target).Return(nil, shared.ErrNotFound)

	_, err := service.Update(ctx, item.ID, UpdateItemRequest{CategoryID: &target})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestItemService_Update_ReplacesOptions(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	service := NewItemService(itemRepo, new(MockCategoryRepository), nil, nil)

	item := newItemFixture(t, uuid.New(), "Latte", 18)
	_, err := item.AddOption("الحجم", "Size", menu.OptionSingle, true, 1)
	require.NoError(t, err)

	itemRepo.On("FindByID", ctx, item.ID).Return(&item, nil)
	itemRepo.On("Save", ctx, mock.AnythingOfType("*menu.Item")).Return(nil)

	updated, err := service.Update(ctx, item.ID, UpdateItemRequest{
		Options: []ItemOptionRequest{{
			NameAR:     "الإضافات",
			NameEN:     "Extras",
			Kind:       "multiple",
			MaxChoices: 3,
			Choices:    []OptionChoiceRequest{{NameAR: "عسل", NameEN: "Honey", PriceDelta: 2}},
		}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Options, 1)
	assert.Equal(t, "Extras", updated.Options[0].NameEN)
	assert.Equal(t, "multiple", updated.Options[0].Kind)
}

func TestItemService_Update_ClearDiscount(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	service := NewItemService(itemRepo, new(MockCategoryRepository), nil, nil)

	item := newItemFixture(t, uuid.New(), "Latte", 18)
	discount := decimal.NewFromInt(15)
	require.NoError(t, item.Reprice(item.Price, &discount))

	itemRepo.On("FindByID", ctx, item.ID).Return(&item, nil)
	itemRepo.On("Save", ctx, mock.AnythingOfType("*menu.Item")).Return(nil)

	updated, err := service.Update(ctx, item.ID, UpdateItemRequest{ClearDiscount: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DiscountPrice)
}

func TestItemService_SetAvailability(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepository)
	service := NewItemService(itemRepo, new(MockCategoryRepository), nil, nil)

	item := newItemFixture(t, uuid.New(), "Latte", 18)
	itemRepo.On("FindByID", ctx, item.ID).Return(&item, nil)
	itemRepo.On("Save", ctx, mock.MatchedBy(func(i *menu.Item) bool {
		return !i.IsAvailable
	})).Return(nil)

	require.NoError(t, service.SetAvailability(ctx, item.ID, false))
	itemRepo.AssertExpectations(t)
}

func TestNormalizeSearch(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		tooShort bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"a", "", true},
		{"  ل  ", "", true},
		{" قهوة ", "قهوة", false},
		{"latte", "latte", false},
	}

	for _, tt := range tests {
		got, tooShort := normalizeSearch(tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, tt.tooShort, tooShort, "input %q", tt.input)
	}
}
