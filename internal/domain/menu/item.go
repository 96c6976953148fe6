package menu

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cafemenu/backend/internal/domain/shared"
)

// OptionKind controls how many choices a customer may pick
type OptionKind string

const (
	OptionSingle   OptionKind = "single"
	OptionMultiple OptionKind = "multiple"
)

// Item is a menu item aggregate root
type Item struct {
	shared.BaseEntity
	CategoryID    uuid.UUID        `json:"category_id" gorm:"type:uuid;not null;index"`
	NameAR        string           `json:"name_ar" gorm:"type:varchar(160);not null"`
	NameEN        string           `json:"name_en" gorm:"type:varchar(160);not null"`
	DescriptionAR string           `json:"description_ar" gorm:"type:text"`
	DescriptionEN string           `json:"description_en" gorm:"type:text"`
	Price         decimal.Decimal  `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty" gorm:"type:decimal(10,2)"`
	ImageURL      string           `json:"image_url" gorm:"type:varchar(512)"`
	IsAvailable   bool             `json:"is_available" gorm:"default:true;index"`
	IsPopular     bool             `json:"is_popular" gorm:"default:false"`
	IsNew         bool             `json:"is_new" gorm:"default:false"`
	IsVegetarian  bool             `json:"is_vegetarian" gorm:"default:false"`
	IsSpicy       bool             `json:"is_spicy" gorm:"default:false"`
	PrepMinutes   int              `json:"prep_minutes" gorm:"default:0"`
	Calories      int              `json:"calories" gorm:"default:0"`
	SortOrder     int              `json:"sort_order" gorm:"default:0;index"`

	Category *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Options  []ItemOption `json:"options,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "menu_items"
}

// ItemOption is a configurable option group on an item, e.g. size or milk type
type ItemOption struct {
	shared.BaseEntity
	ItemID     uuid.UUID  `json:"item_id" gorm:"type:uuid;not null;index"`
	NameAR     string     `json:"name_ar" gorm:"type:varchar(120);not null"`
	NameEN     string     `json:"name_en" gorm:"type:varchar(120);not null"`
	Kind       OptionKind `json:"kind" gorm:"type:varchar(16);not null;default:'single'"`
	IsRequired bool       `json:"is_required" gorm:"default:false"`
	MaxChoices int        `json:"max_choices" gorm:"default:1"`
	SortOrder  int        `json:"sort_order" gorm:"default:0"`

	Choices []OptionChoice `json:"choices,omitempty" gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ItemOption) TableName() string {
	return "item_options"
}

// OptionChoice is a selectable value inside an option group
type OptionChoice struct {
	shared.BaseEntity
	OptionID   uuid.UUID       `json:"option_id" gorm:"type:uuid;not null;index"`
	NameAR     string          `json:"name_ar" gorm:"type:varchar(120);not null"`
	NameEN     string          `json:"name_en" gorm:"type:varchar(120);not null"`
	PriceDelta decimal.Decimal `json:"price_delta" gorm:"type:decimal(10,2);default:0"`
	IsDefault  bool            `json:"is_default" gorm:"default:false"`
	SortOrder  int             `json:"sort_order" gorm:"default:0"`
}

// TableName returns the table name for GORM
func (OptionChoice) TableName() string {
	return "option_choices"
}

// NewItem creates a new menu item under the given category
func NewItem(categoryID uuid.UUID, nameAR, nameEN string, price decimal.Decimal) (*Item, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Menu item requires a category")
	}
	if strings.TrimSpace(nameAR) == "" && strings.TrimSpace(nameEN) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name is required in at least one language")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must not be negative")
	}

	return &Item{
		BaseEntity:  shared.NewBaseEntity(),
		CategoryID:  categoryID,
		NameAR:      strings.TrimSpace(nameAR),
		NameEN:      strings.TrimSpace(nameEN),
		Price:       price,
		IsAvailable: true,
	}, nil
}

// Reprice sets the base price and optional discount price
func (i *Item) Reprice(price decimal.Decimal, discount *decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price must not be negative")
	}
	if discount != nil {
		if discount.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Discount price must not be negative")
		}
		if discount.GreaterThanOrEqual(price) {
			return shared.NewDomainError("INVALID_PRICE", "Discount price must be below the base price")
		}
	}
	i.Price = price
	i.DiscountPrice = discount
	return nil
}

// EffectivePrice returns the discount price when set, otherwise the base price
func (i *Item) EffectivePrice() decimal.Decimal {
	if i.DiscountPrice != nil {
		return *i.DiscountPrice
	}
	return i.Price
}

// MoveTo reassigns the item to another category
func (i *Item) MoveTo(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Menu item requires a category")
	}
	i.CategoryID = categoryID
	return nil
}

// SetAvailability toggles whether the item can be ordered
func (i *Item) SetAvailability(available bool) {
	i.IsAvailable = available
}

// AddOption appends an option group to the item
func (i *Item) AddOption(nameAR, nameEN string, kind OptionKind, required bool, maxChoices int) (*ItemOption, error) {
	if strings.TrimSpace(nameAR) == "" && strings.TrimSpace(nameEN) == "" {
		return nil, shared.NewDomainError("INVALID_OPTION", "Option name is required in at least one language")
	}
	if kind != OptionSingle && kind != OptionMultiple {
		return nil, shared.NewDomainError("INVALID_OPTION", "Option kind must be single or multiple")
	}
	if kind == OptionSingle {
		maxChoices = 1
	} else if maxChoices < 1 {
		return nil, shared.NewDomainError("INVALID_OPTION", "Multiple-choice options need max_choices >= 1")
	}

	opt := ItemOption{
		BaseEntity: shared.NewBaseEntity(),
		ItemID:     i.ID,
		NameAR:     strings.TrimSpace(nameAR),
		NameEN:     strings.TrimSpace(nameEN),
		Kind:       kind,
		IsRequired: required,
		MaxChoices: maxChoices,
		SortOrder:  len(i.Options),
	}
	i.Options = append(i.Options, opt)
	return &i.Options[len(i.Options)-1], nil
}

// AddChoice appends a choice to an option group
func (o *ItemOption) AddChoice(nameAR, nameEN string, priceDelta decimal.Decimal, isDefault bool) (*OptionChoice, error) {
	if strings.TrimSpace(nameAR) == "" && strings.TrimSpace(nameEN) == "" {
		return nil, shared.NewDomainError("INVALID_OPTION", "Choice name is required in at least one language")
	}
	if priceDelta.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Choice surcharge must not be negative")
	}

	choice := OptionChoice{
		BaseEntity: shared.NewBaseEntity(),
		OptionID:   o.ID,
		NameAR:     strings.TrimSpace(nameAR),
		NameEN:     strings.TrimSpace(nameEN),
		PriceDelta: priceDelta,
		IsDefault:  isDefault,
		SortOrder:  len(o.Choices),
	}
	o.Choices = append(o.Choices, choice)
	return &o.Choices[len(o.Choices)-1], nil
}
