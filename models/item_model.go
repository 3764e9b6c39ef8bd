package models

import "gorm.io/gorm"

type Item struct {
	gorm.Model
	InventoryID  string    `json:"inventory_id" gorm:"uniqueIndex;size:64"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Category     string    `json:"category" gorm:"size:128"`
	Description  string    `json:"description" gorm:"type:text"`
	SerialNumber string    `json:"serial_number" gorm:"size:128"`
	Manufacturer string    `json:"manufacturer" gorm:"size:128"`
	ItemModel    string    `json:"model" gorm:"column:item_model;size:128"`
	LocationID   *uint     `json:"location_id"`
	Location     *Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	CreatedBy    int       `json:"created_by"`
	UpdatedBy    int       `json:"updated_by"`
	DeletedBy    int       `json:"deleted_by"`
}

type Category struct {
	gorm.Model
	Code string `json:"code" gorm:"uniqueIndex;size:64"`
	Name string `json:"name" gorm:"size:128"`
}
