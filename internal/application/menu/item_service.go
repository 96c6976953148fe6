package menu

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/cafemenu/backend/internal/domain/menu"
)

// A non-empty search shorter than this many runes answers with an empty
// result set instead of querying the store
const minSearchRunes = 2

// ItemListQuery narrows the public item listing
type ItemListQuery struct {
	CategoryID    *uuid.UUID
	OnlyAvailable bool
	OnlyPopular   bool
	OnlyNew       bool
	Search        string
	Limit         int
	Offset        int
	SortBy        string
	SortDir       string
}

// ItemListResult is the outcome of a degradable item listing
type ItemListResult struct {
	Items    []ItemResponse `json:"items"`
	Degraded bool           `json:"degraded"`
}

// ItemResponse is the API shape of a menu item
type ItemResponse struct {
	ID            uuid.UUID            `json:"id"`
	CategoryID    uuid.UUID            `json:"category_id"`
	Category      *CategoryResponse    `json:"category,omitempty"`
	NameAR        string               `json:"name_ar"`
	NameEN        string               `json:"name_en"`
	DescriptionAR string               `json:"description_ar"`
	DescriptionEN string               `json:"description_en"`
	Price         decimal.Decimal      `json:"price"`
	DiscountPrice *decimal.Decimal     `json:"discount_price,omitempty"`
	ImageURL      string               `json:"image_url"`
	IsAvailable   bool                 `json:"is_available"`
	IsPopular     bool                 `json:"is_popular"`
	IsNew         bool                 `json:"is_new"`
	IsVegetarian  bool                 `json:"is_vegetarian"`
	IsSpicy       bool                 `json:"is_spicy"`
	PrepMinutes   int                  `json:"prep_minutes"`
	Calories      int                  `json:"calories"`
	SortOrder     int                  `json:"sort_order"`
	Options       []ItemOptionResponse `json:"options,omitempty"`
}

// ItemOptionResponse is the API shape of an option group
type ItemOptionResponse struct {
	ID         uuid.UUID              `json:"id"`
	NameAR     string                 `json:"name_ar"`
	NameEN     string                 `json:"name_en"`
	Kind       string                 `json:"kind"`
	IsRequired bool                   `json:"is_required"`
	MaxChoices int                    `json:"max_choices"`
	Choices    []OptionChoiceResponse `json:"choices"`
}

// OptionChoiceResponse is the API shape of an option choice
type OptionChoiceResponse struct {
	ID         uuid.UUID       `json:"id"`
	NameAR     string          `json:"name_ar"`
	NameEN     string          `json:"name_en"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	IsDefault  bool            `json:"is_default"`
}

// OptionChoiceRequest carries input for one option choice
type OptionChoiceRequest struct {
	NameAR     string  `json:"name_ar"`
	NameEN     string  `json:"name_en"`
	PriceDelta float64 `json:"price_delta"`
	IsDefault  bool    `json:"is_default"`
}

// ItemOptionRequest carries input for one option group
type ItemOptionRequest struct {
	NameAR     string                `json:"name_ar"`
	NameEN     string                `json:"name_en"`
	Kind       string                `json:"kind"`
	IsRequired bool                  `json:"is_required"`
	MaxChoices int                   `json:"max_choices"`
	Choices    []OptionChoiceRequest `json:"choices"`
}

// CreateItemRequest carries input for creating a menu item
type CreateItemRequest struct {
	CategoryID    uuid.UUID           `json:"category_id"`
	NameAR        string              `json:"name_ar"`
	NameEN        string              `json:"name_en"`
	DescriptionAR string              `json:"description_ar"`
	DescriptionEN string              `json:"description_en"`
	Price         float64             `json:"price"`
	DiscountPrice *float64            `json:"discount_price,omitempty"`
	ImageURL      string              `json:"image_url"`
	IsPopular     bool                `json:"is_popular"`
	IsNew         bool                `json:"is_new"`
	IsVegetarian  bool                `json:"is_vegetarian"`
	IsSpicy       bool                `json:"is_spicy"`
	PrepMinutes   int                 `json:"prep_minutes"`
	Calories      int                 `json:"calories"`
	SortOrder     int                 `json:"sort_order"`
	Options       []ItemOptionRequest `json:"options"`
}

// UpdateItemRequest carries partial updates; nil fields are left unchanged.
// A non-nil Options slice replaces all option groups.
type UpdateItemRequest struct {
	CategoryID    *uuid.UUID           `json:"category_id,omitempty"`
	NameAR        *string              `json:"name_ar,omitempty"`
	NameEN        *string              `json:"name_en,omitempty"`
	DescriptionAR *string              `json:"description_ar,omitempty"`
	DescriptionEN *string              `json:"description_en,omitempty"`
	Price         *float64             `json:"price,omitempty"`
	DiscountPrice *float64             `json:"discount_price,omitempty"`
	ClearDiscount bool                 `json:"clear_discount,omitempty"`
	ImageURL      *string              `json:"image_url,omitempty"`
	IsAvailable   *bool                `json:"is_available,omitempty"`
	IsPopular     *bool                `json:"is_popular,omitempty"`
	IsNew         *bool                `json:"is_new,omitempty"`
	IsVegetarian  *bool                `json:"is_vegetarian,omitempty"`
	IsSpicy       *bool                `json:"is_spicy,omitempty"`
	PrepMinutes   *int                 `json:"prep_minutes,omitempty"`
	Calories      *int                 `json:"calories,omitempty"`
	SortOrder     *int                 `json:"sort_order,omitempty"`
	Options       []ItemOptionRequest  `json:"options,omitempty"`
}

// ItemService manages menu items and their option groups
type ItemService struct {
	itemRepo     menu.ItemRepository
	categoryRepo menu.CategoryRepository
	snapshots    menu.SnapshotStore
	logger       *zap.Logger
}

// NewItemService creates a new ItemService. snapshots may be nil.
func NewItemService(
	itemRepo menu.ItemRepository,
	categoryRepo menu.CategoryRepository,
	snapshots menu.SnapshotStore,
	logger *zap.Logger,
) *ItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		snapshots:    snapshots,
		logger:       logger,
	}
}

// List returns items matching the query. It never fails: on store errors it
// falls back to the advisory snapshot filtered in memory, or an empty list.
func (s *ItemService) List(ctx context.Context, query ItemListQuery) ItemListResult {
	search, tooShort := normalizeSearch(query.Search)
	if tooShort {
		// The client filters as the user types; a one-rune query would
		// match most of the menu, so it answers empty without a store call.
		return ItemListResult{Items: []ItemResponse{}}
	}

	filter := menu.ItemFilter{
		CategoryID:    query.CategoryID,
		OnlyAvailable: query.OnlyAvailable,
		OnlyPopular:   query.OnlyPopular,
		OnlyNew:       query.OnlyNew,
		Search:        search,
		Limit:         query.Limit,
		Offset:        query.Offset,
		OrderBy:       query.SortBy,
		OrderDir:      query.SortDir,
	}

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err == nil {
		s.saveSnapshot(ctx, items)
		return ItemListResult{Items: toItemResponses(items)}
	}

	s.logger.Warn("Item fetch failed, serving fallback", zap.Error(err))

	if s.snapshots != nil {
		if snapshot, snapErr := s.snapshots.LoadItems(ctx); snapErr == nil && len(snapshot) > 0 {
			return ItemListResult{Items: toItemResponses(filterInMemory(snapshot, filter)), Degraded: true}
		}
	}

	return ItemListResult{Items: []ItemResponse{}, Degraded: true}
}

// Get returns one item with its category and ordered option groups
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// Create adds a menu item after checking the category exists
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	item, err := menu.NewItem(req.CategoryID, req.NameAR, req.NameEN, decimal.NewFromFloat(req.Price))
	if err != nil {
		return nil, err
	}

	item.DescriptionAR = req.DescriptionAR
	item.DescriptionEN = req.DescriptionEN
	item.ImageURL = req.ImageURL
	item.IsPopular = req.IsPopular
	item.IsNew = req.IsNew
	item.IsVegetarian = req.IsVegetarian
	item.IsSpicy = req.IsSpicy
	item.PrepMinutes = req.PrepMinutes
	item.Calories = req.Calories
	item.SortOrder = req.SortOrder

	if req.DiscountPrice != nil {
		discount := decimal.NewFromFloat(*req.DiscountPrice)
		if err := item.Reprice(item.Price, &discount); err != nil {
			return nil, err
		}
	}
	if err := applyOptionRequests(item, req.Options); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Menu item created",
		zap.String("item_id", item.ID.String()),
		zap.String("name_en", item.NameEN))

	resp := toItemResponse(item)
	return &resp, nil
}

// Update applies a partial update. A non-nil Options slice replaces the
// item's option groups wholesale.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		if err := item.MoveTo(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	if req.NameAR != nil {
		item.NameAR = strings.TrimSpace(*req.NameAR)
	}
	if req.NameEN != nil {
		item.NameEN = strings.TrimSpace(*req.NameEN)
	}
	if req.DescriptionAR != nil {
		item.DescriptionAR = *req.DescriptionAR
	}
	if req.DescriptionEN != nil {
		item.DescriptionEN = *req.DescriptionEN
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	price := item.Price
	if req.Price != nil {
		price = decimal.NewFromFloat(*req.Price)
	}
	discount := item.DiscountPrice
	if req.ClearDiscount {
		discount = nil
	} else if req.DiscountPrice != nil {
		d := decimal.NewFromFloat(*req.DiscountPrice)
		discount = &d
	}
	if err := item.Reprice(price, discount); err != nil {
		return nil, err
	}

	if req.IsAvailable != nil {
		item.SetAvailability(*req.IsAvailable)
	}
	if req.IsPopular != nil {
		item.IsPopular = *req.IsPopular
	}
	if req.IsNew != nil {
		item.IsNew = *req.IsNew
	}
	if req.IsVegetarian != nil {
		item.IsVegetarian = *req.IsVegetarian
	}
	if req.IsSpicy != nil {
		item.IsSpicy = *req.IsSpicy
	}
	if req.PrepMinutes != nil {
		item.PrepMinutes = *req.PrepMinutes
	}
	if req.Calories != nil {
		item.Calories = *req.Calories
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if req.Options != nil {
		item.Options = nil
		if err := applyOptionRequests(item, req.Options); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := toItemResponse(item)
	return &resp, nil
}

// SetAvailability toggles whether an item can be ordered
func (s *ItemService) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	item.SetAvailability(available)
	return s.itemRepo.Save(ctx, item)
}

// Delete removes an item with its options and choices
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Menu item deleted", zap.String("item_id", id.String()))
	return nil
}

func (s *ItemService) saveSnapshot(ctx context.Context, items []menu.Item) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveItems(ctx, items); err != nil {
		s.logger.Debug("Item snapshot write failed", zap.Error(err))
	}
}

// normalizeSearch NFC-normalizes and trims the query. An empty query means
// no search at all; a non-empty query under two runes is reported as too
// short and must never reach the repository.
func normalizeSearch(query string) (normalized string, tooShort bool) {
	query = strings.TrimSpace(norm.NFC.String(query))
	if query == "" {
		return "", false
	}
	if utf8.RuneCountInString(query) < minSearchRunes {
		return "", true
	}
	return query, false
}

// filterInMemory applies the filter to snapshot data when the store is down
func filterInMemory(items []menu.Item, filter menu.ItemFilter) []menu.Item {
	search := strings.ToLower(filter.Search)
	var out []menu.Item
	for i := range items {
		item := items[i]
		if filter.CategoryID != nil && item.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.OnlyAvailable && !item.IsAvailable {
			continue
		}
		if filter.OnlyPopular && !item.IsPopular {
			continue
		}
		if filter.OnlyNew && !item.IsNew {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(item.NameAR + " " + item.NameEN + " " + item.DescriptionAR)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func applyOptionRequests(item *menu.Item, requests []ItemOptionRequest) error {
	for _, optReq := range requests {
		opt, err := item.AddOption(optReq.NameAR, optReq.NameEN, menu.OptionKind(optReq.Kind), optReq.IsRequired, optReq.MaxChoices)
		if err != nil {
			return err
		}
		for _, choiceReq := range optReq.Choices {
			if _, err := opt.AddChoice(choiceReq.NameAR, choiceReq.NameEN, decimal.NewFromFloat(choiceReq.PriceDelta), choiceReq.IsDefault); err != nil {
				return err
			}
		}
	}
	return nil
}

func toItemResponse(item *menu.Item) ItemResponse {
	resp := ItemResponse{
		ID:            item.ID,
		CategoryID:    item.CategoryID,
		NameAR:        item.NameAR,
		NameEN:        item.NameEN,
		DescriptionAR: item.DescriptionAR,
		DescriptionEN: item.DescriptionEN,
		Price:         item.Price,
		DiscountPrice: item.DiscountPrice,
		ImageURL:      item.ImageURL,
		IsAvailable:   item.IsAvailable,
		IsPopular:     item.IsPopular,
		IsNew:         item.IsNew,
		IsVegetarian:  item.IsVegetarian,
		IsSpicy:       item.IsSpicy,
		PrepMinutes:   item.PrepMinutes,
		Calories:      item.Calories,
		SortOrder:     item.SortOrder,
	}
	if item.Category != nil {
		category := toCategoryResponse(item.Category)
		resp.Category = &category
	}
	for _, opt := range item.Options {
		optResp := ItemOptionResponse{
			ID:         opt.ID,
			NameAR:     opt.NameAR,
			NameEN:     opt.NameEN,
			Kind:       string(opt.Kind),
			IsRequired: opt.IsRequired,
			MaxChoices: opt.MaxChoices,
			Choices:    make([]OptionChoiceResponse, 0, len(opt.Choices)),
		}
		for _, choice := range opt.Choices {
			optResp.Choices = append(optResp.Choices, OptionChoiceResponse{
				ID:         choice.ID,
				NameAR:     choice.NameAR,
				NameEN:     choice.NameEN,
				PriceDelta: choice.PriceDelta,
				IsDefault:  choice.IsDefault,
			})
		}
		resp.Options = append(resp.Options, optResp)
	}
	return resp
}

func toItemResponses(items []menu.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = toItemResponse(&items[i])
	}
	return responses
}
