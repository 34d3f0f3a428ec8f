package seed

import (
	"fmt"

	"quorum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInCategory is a permanent system category.
type BuiltInCategory struct {
	Name        string
	Slug        string
	Description string
	Order       int
}

// BuiltInCategories defines the permanent system categories. Seeding them is
// idempotent: re-running updates name and description in place.
var BuiltInCategories = []BuiltInCategory{
	{Name: "Announcements", Slug: "announcements", Description: "Platform news and updates.", Order: 0},
	{Name: "General Discussion", Slug: "general", Description: "Anything that fits nowhere else.", Order: 1},
	{Name: "Help & Support", Slug: "support", Description: "Questions and troubleshooting.", Order: 2},
	{Name: "Development", Slug: "development", Description: "Software development discussions.", Order: 3},
	{Name: "Hardware", Slug: "hardware", Description: "Builds, benchmarks, and tuning.", Order: 4},
	{Name: "Gaming", Slug: "gaming", Description: "Gaming across all platforms.", Order: 5},
	{Name: "Media", Slug: "media", Description: "Film, television, music, and books.", Order: 6},
	{Name: "Off Topic", Slug: "off-topic", Description: "The water cooler.", Order: 7},
}

// Categories seeds the permanent built-in categories.
func Categories(db *gorm.DB) error {
	for _, item := range BuiltInCategories {
		category := models.Category{
			Name:         item.Name,
			Slug:         item.Slug,
			Description:  item.Description,
			DisplayOrder: item.Order,
			IsActive:     true,
		}

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "display_order", "updated_at"}),
		}).Create(&category).Error
		if err != nil {
			return fmt.Errorf("seed built-in category %s: %w", item.Slug, err)
		}
	}
	return nil
}
