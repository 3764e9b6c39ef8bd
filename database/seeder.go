package database

import (
	"stagestock/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedCategories(db)
}

// SeedCategories inserts the default equipment categories used by the
// item form dropdowns. Existing rows are left alone.
func SeedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Code: "AUDIO", Name: "Audio"},
		{Code: "VIDEO", Name: "Video"},
		{Code: "LIGHTING", Name: "Lighting"},
		{Code: "RIGGING", Name: "Rigging"},
		{Code: "CABLE", Name: "Cable"},
		{Code: "CASE", Name: "Case"},
	}

	for _, c := range categories {
		var existing models.Category
		if err := db.Where("code = ?", c.Code).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&c).Error; err != nil {
					logrus.Errorf("Failed to seed category %s: %v", c.Code, err)
				}
			} else {
				logrus.Errorf("Unexpected DB error while seeding categories: %v", err)
			}
		}
	}
}
