package repositories

import (
	"stagestock/models"

	"gorm.io/gorm"
)

type ProductionRepository struct {
	DB *gorm.DB
}

func NewProductionRepository(db *gorm.DB) *ProductionRepository {
	return &ProductionRepository{DB: db}
}

// GetBOM derives the bill of materials for a production from its current
// assignment rows. There is no stored BOM to drift from this result.
func (r *ProductionRepository) GetBOM(productionID uint) ([]models.BomLine, error) {
	var lines []models.BomLine

	err := r.DB.
		Table("production_items pi").
		Select(`i.inventory_id, i.name, i.category, i.serial_number,
			i.manufacturer, i.item_model, COALESCE(l.name, '') as location_name, pi.quantity`).
		Joins("JOIN items i ON i.id = pi.item_id AND i.deleted_at IS NULL").
		Joins("LEFT JOIN locations l ON l.id = i.location_id AND l.deleted_at IS NULL").
		Where("pi.production_id = ? AND pi.deleted_at IS NULL", productionID).
		Order("i.name asc").
		Scan(&lines).Error

	return lines, err
}

// TotalQuantity sums the assigned quantities of a production.
func (r *ProductionRepository) TotalQuantity(productionID uint) (int, error) {
	var total int64
	err := r.DB.
		Model(&models.ProductionItem{}).
		Where("production_id = ?", productionID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}
