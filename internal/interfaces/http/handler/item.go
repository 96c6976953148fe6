package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	menuapp "github.com/cafemenu/backend/internal/application/menu"
	"github.com/cafemenu/backend/internal/interfaces/http/dto"
	"github.com/cafemenu/backend/internal/interfaces/http/middleware"
)

// ItemHandler handles menu item API endpoints
type ItemHandler struct {
	BaseHandler
	itemService *menuapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *menuapp.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ListItemsQuery holds query parameters for item listing
type ListItemsQuery struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Available  bool   `form:"available"`
	Popular    bool   `form:"popular"`
	New        bool   `form:"new"`
	Search     string `form:"search" binding:"max=120"`
	Limit      int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
	Offset     int    `form:"offset" binding:"omitempty,gte=0"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=sort_order name_en name_ar price created_at"`
	SortDir    string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// SetAvailabilityRequest toggles whether an item can be ordered
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// List returns menu items matching the query. The endpoint never fails;
// degraded results carry the flag in the serving metadata.
func (h *ItemHandler) List(c *gin.Context) {
	var query ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	listQuery := menuapp.ItemListQuery{
		OnlyAvailable: query.Available,
		OnlyPopular:   query.Popular,
		OnlyNew:       query.New,
		Search:        query.Search,
		Limit:         query.Limit,
		Offset:        query.Offset,
		SortBy:        query.SortBy,
		SortDir:       query.SortDir,
	}
	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		listQuery.CategoryID = &categoryID
	}

	result := h.itemService.List(c.Request.Context(), listQuery)
	h.SuccessWithMeta(c, result.Items, dto.Meta{Degraded: result.Degraded})
}

// Get returns one item with its option groups
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create adds a new menu item
func (h *ItemHandler) Create(c *gin.Context) {
	var req menuapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update applies a partial update to a menu item
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req menuapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// SetAvailability toggles whether an item can be ordered
func (h *ItemHandler) SetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.itemService.SetAvailability(c.Request.Context(), id, *req.IsAvailable); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes a menu item with its options
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
