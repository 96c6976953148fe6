package menu

import (
	"github.com/google/uuid"

	"github.com/cafemenu/backend/internal/domain/shared"
)

var defaultCategoryIDs = [3]uuid.UUID{
	uuid.MustParse("9b1a6e34-0c2f-4f7d-8a3b-0d5e2c1f9a01"),
	uuid.MustParse("9b1a6e34-0c2f-4f7d-8a3b-0d5e2c1f9a02"),
	uuid.MustParse("9b1a6e34-0c2f-4f7d-8a3b-0d5e2c1f9a03"),
}

// DefaultCategories returns the built-in category set served when the
// backing store has never been reachable. IDs are fixed so repeated
// degraded responses stay stable for clients.
func DefaultCategories() []Category {
	return []Category{
		{
			BaseEntity: shared.BaseEntity{ID: defaultCategoryIDs[0]},
			NameAR:     "مشروبات",
			NameEN:     "Drinks",
			Color:      "#8B5A2B",
			Icon:       "coffee",
			SortOrder:  1,
			IsActive:   true,
		},
		{
			BaseEntity: shared.BaseEntity{ID: defaultCategoryIDs[1]},
			NameAR:     "حلويات",
			NameEN:     "Desserts",
			Color:      "#C2703D",
			Icon:       "cake",
			SortOrder:  2,
			IsActive:   true,
		},
		{
			BaseEntity: shared.BaseEntity{ID: defaultCategoryIDs[2]},
			NameAR:     "أكل",
			NameEN:     "Food",
			Color:      "#5C4033",
			Icon:       "utensils",
			SortOrder:  3,
			IsActive:   true,
		},
	}
}
