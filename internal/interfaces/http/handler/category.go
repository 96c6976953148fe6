package handler

import (
	"github.com/gin-gonic/gin"

	menuapp "github.com/cafemenu/backend/internal/application/menu"
	"github.com/cafemenu/backend/internal/interfaces/http/dto"
	"github.com/cafemenu/backend/internal/interfaces/http/middleware"
)

// CategoryHandler handles category API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *menuapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *menuapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest is the request body for creating a category
type CreateCategoryRequest struct {
	NameAR    string `json:"name_ar" binding:"max=120"`
	NameEN    string `json:"name_en" binding:"max=120"`
	Color     string `json:"color" binding:"omitempty,menucolor"`
	Icon      string `json:"icon" binding:"max=64"`
	SortOrder int    `json:"sort_order" binding:"gte=0"`
}

// UpdateCategoryRequest is the request body for updating a category
type UpdateCategoryRequest struct {
	NameAR    *string `json:"name_ar" binding:"omitempty,max=120"`
	NameEN    *string `json:"name_en" binding:"omitempty,max=120"`
	Color     *string `json:"color" binding:"omitempty,menucolor"`
	Icon      *string `json:"icon" binding:"omitempty,max=64"`
	SortOrder *int    `json:"sort_order" binding:"omitempty,gte=0"`
	IsActive  *bool   `json:"is_active"`
}

// List returns all categories. Serving metadata reports cache and
// degradation state; the endpoint itself never fails.
func (h *CategoryHandler) List(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	snapshot := h.categoryService.List(c.Request.Context(), forceRefresh)

	h.SuccessWithMeta(c, snapshot.Categories, dto.Meta{
		Cached:   snapshot.Cached,
		Stale:    snapshot.Stale,
		Degraded: snapshot.Degraded,
	})
}

// Get returns a single category by ID
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Create adds a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), menuapp.CreateCategoryRequest{
		NameAR:    req.NameAR,
		NameEN:    req.NameEN,
		Color:     req.Color,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update applies a partial update to a category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, menuapp.UpdateCategoryRequest{
		NameAR:    req.NameAR,
		NameEN:    req.NameEN,
		Color:     req.Color,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete removes a category. Categories still holding items are refused
// with a conflict.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
