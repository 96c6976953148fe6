package menu

import (
	"strings"

	"github.com/cafemenu/backend/internal/domain/shared"
)

// Category is a menu category aggregate root
type Category struct {
	shared.BaseEntity
	NameAR    string `json:"name_ar" gorm:"type:varchar(120);not null"`
	NameEN    string `json:"name_en" gorm:"type:varchar(120);not null"`
	Color     string `json:"color" gorm:"type:varchar(7)"`
	Icon      string `json:"icon" gorm:"type:varchar(64)"`
	SortOrder int    `json:"sort_order" gorm:"default:0;index"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "menu_categories"
}

// NewCategory creates a new menu category
func NewCategory(nameAR, nameEN, color, icon string, sortOrder int) (*Category, error) {
	if err := validateCategoryName(nameAR, nameEN); err != nil {
		return nil, err
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		NameAR:     strings.TrimSpace(nameAR),
		NameEN:     strings.TrimSpace(nameEN),
		Color:      color,
		Icon:       icon,
		SortOrder:  sortOrder,
		IsActive:   true,
	}, nil
}

// Rename updates the bilingual names
func (c *Category) Rename(nameAR, nameEN string) error {
	if err := validateCategoryName(nameAR, nameEN); err != nil {
		return err
	}
	c.NameAR = strings.TrimSpace(nameAR)
	c.NameEN = strings.TrimSpace(nameEN)
	return nil
}

// Restyle updates color and icon
func (c *Category) Restyle(color, icon string) error {
	if err := validateColor(color); err != nil {
		return err
	}
	c.Color = color
	c.Icon = icon
	return nil
}

// Activate makes the category visible on the menu
func (c *Category) Activate() {
	c.IsActive = true
}

// Deactivate hides the category from the menu
func (c *Category) Deactivate() {
	c.IsActive = false
}

func validateCategoryName(nameAR, nameEN string) error {
	if strings.TrimSpace(nameAR) == "" && strings.TrimSpace(nameEN) == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name is required in at least one language")
	}
	if len(nameAR) > 120 || len(nameEN) > 120 {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name must not exceed 120 characters")
	}
	return nil
}

func validateColor(color string) error {
	if color == "" {
		return nil
	}
	if len(color) != 7 || color[0] != '#' {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a #RRGGBB hex value")
	}
	for _, r := range color[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return shared.NewDomainError("INVALID_COLOR", "Color must be a #RRGGBB hex value")
		}
	}
	return nil
}
