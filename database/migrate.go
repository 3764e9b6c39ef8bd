package database

import (
	"stagestock/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.Category{},
		&models.Location{},
		&models.Item{},
		&models.Production{},
		&models.ProductionItem{},
		&models.CompanyProfile{},
	)
}
