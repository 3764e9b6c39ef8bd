package models

import (
	"time"

	"gorm.io/gorm"
)

type Production struct {
	gorm.Model
	Name      string     `json:"name" gorm:"size:255;not null"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `json:"notes" gorm:"type:text"`
	CreatedBy int        `json:"created_by"`
	UpdatedBy int        `json:"updated_by"`
	DeletedBy int        `json:"deleted_by"`
}

// ProductionItem links an inventory item to a production. The pair is
// unique: assigning the same item again updates the row instead of
// inserting a second one.
type ProductionItem struct {
	gorm.Model
	ProductionID uint       `json:"production_id" gorm:"uniqueIndex:idx_production_item"`
	ItemID       uint       `json:"item_id" gorm:"uniqueIndex:idx_production_item"`
	Item         *Item      `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Quantity     int        `json:"quantity" gorm:"default:1"`
	CheckoutAt   *time.Time `json:"checkout_at"`
	ReturnAt     *time.Time `json:"return_at"`
	CreatedBy    int        `json:"created_by"`
	UpdatedBy    int        `json:"updated_by"`
}

// BomLine is one row of a derived bill of materials. It is never stored:
// it always comes from joining production_items with items.
type BomLine struct {
	InventoryID  string `json:"inventory_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SerialNumber string `json:"serial_number"`
	Manufacturer string `json:"manufacturer"`
	ItemModel    string `json:"model"`
	LocationName string `json:"location_name"`
	Quantity     int    `json:"quantity"`
}
