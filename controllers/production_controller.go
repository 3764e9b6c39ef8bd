package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"stagestock/models"
	"stagestock/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductionController struct {
	DB *gorm.DB
}

func NewProductionController(DB *gorm.DB) *ProductionController {
	return &ProductionController{DB: DB}
}

type ProductionInput struct {
	Name      string `json:"name" validate:"required,min=1,max=255"`
	StartDate string `json:"start_date" validate:"omitempty"`
	EndDate   string `json:"end_date" validate:"omitempty"`
	Notes     string `json:"notes"`
}

func parseProductionDates(input ProductionInput) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if input.StartDate != "" {
		t, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			return nil, nil, errors.New("invalid start_date format, use YYYY-MM-DD")
		}
		startDate = &t
	}
	if input.EndDate != "" {
		t, err := time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			return nil, nil, errors.New("invalid end_date format, use YYYY-MM-DD")
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, nil, errors.New("end_date must not be before start_date")
	}

	return startDate, endDate, nil
}

// CREATE
func (pc *ProductionController) CreateProduction(ctx *fiber.Ctx) error {
	userID := int(ctx.Locals("userID").(float64))

	var input ProductionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, endDate, err := parseProductionDates(input)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	production := models.Production{
		Name:      strings.TrimSpace(input.Name),
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     input.Notes,
		CreatedBy: userID,
		UpdatedBy: userID,
	}

	if err := pc.DB.Create(&production).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Production created successfully",
		"data":    production,
	})
}

// READ ALL
func (pc *ProductionController) GetAllProductions(ctx *fiber.Ctx) error {
	var productions []models.Production
	if err := pc.DB.Order("start_date desc, name asc").Find(&productions).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    productions,
	})
}

// READ BY ID, with current assignments
func (pc *ProductionController) GetProductionByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var production models.Production
	if err := pc.DB.First(&production, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production not found"})
	}

	var assignments []models.ProductionItem
	if err := pc.DB.Preload("Item").Preload("Item.Location").
		Where("production_id = ?", production.ID).Find(&assignments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"production":  production,
			"assignments": assignments,
		},
	})
}

// UPDATE
func (pc *ProductionController) UpdateProduction(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	userID := int(ctx.Locals("userID").(float64))

	var production models.Production
	if err := pc.DB.First(&production, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production not found"})
	}

	var input ProductionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, endDate, err := parseProductionDates(input)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	production.Name = strings.TrimSpace(input.Name)
	production.StartDate = startDate
	production.EndDate = endDate
	production.Notes = input.Notes
	production.UpdatedBy = userID

	if err := pc.DB.Save(&production).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Production updated successfully",
		"data":    production,
	})
}

// DELETE. Assignments go with the production, items are untouched.
func (pc *ProductionController) DeleteProduction(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	userID := int(ctx.Locals("userID").(float64))

	var production models.Production
	if err := pc.DB.First(&production, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production not found"})
	}

	tx := pc.DB.Begin()

	if err := tx.Unscoped().Where("production_id = ?", production.ID).Delete(&models.ProductionItem{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	production.DeletedBy = userID
	if err := tx.Save(&production).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Delete(&production).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Production deleted successfully",
	})
}

type AssignItemInput struct {
	InventoryID string `json:"inventory_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"omitempty,min=1"`
	CheckoutAt  string `json:"checkout_at"`
	ReturnAt    string `json:"return_at"`
}

// AssignItem links an item to the production. Assigning an already
// assigned item updates quantity and time window instead of failing.
func (pc *ProductionController) AssignItem(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	userID := int(ctx.Locals("userID").(float64))

	var production models.Production
	if err := pc.DB.First(&production, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production not found"})
	}

	var input AssignItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var item models.Item
	if err := pc.DB.Where("inventory_id = ?", strings.TrimSpace(input.InventoryID)).First(&item).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	var checkoutAt, returnAt *time.Time
	if input.CheckoutAt != "" {
		t, err := time.Parse(time.RFC3339, input.CheckoutAt)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid checkout_at, use RFC3339"})
		}
		checkoutAt = &t
	}
	if input.ReturnAt != "" {
		t, err := time.Parse(time.RFC3339, input.ReturnAt)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid return_at, use RFC3339"})
		}
		returnAt = &t
	}
	if checkoutAt != nil && returnAt != nil && returnAt.Before(*checkoutAt) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "return_at must not be before checkout_at"})
	}

	var assignment models.ProductionItem
	err := pc.DB.Where("production_id = ? AND item_id = ?", production.ID, item.ID).First(&assignment).Error
	if err == nil {
		assignment.Quantity = quantity
		assignment.CheckoutAt = checkoutAt
		assignment.ReturnAt = returnAt
		assignment.UpdatedBy = userID
		if err := pc.DB.Save(&assignment).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		assignment = models.ProductionItem{
			ProductionID: production.ID,
			ItemID:       item.ID,
			Quantity:     quantity,
			CheckoutAt:   checkoutAt,
			ReturnAt:     returnAt,
			CreatedBy:    userID,
			UpdatedBy:    userID,
		}
		if err := pc.DB.Create(&assignment).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	} else {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Item assigned successfully",
		"data":    assignment,
	})
}

// UnassignItem removes the link. The item itself is never deleted here.
func (pc *ProductionController) UnassignItem(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	inventoryID := ctx.Params("inventoryID")

	var production models.Production
	if err := pc.DB.First(&production, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production not found"})
	}

	var item models.Item
	if err := pc.DB.Where("inventory_id = ?", inventoryID).First(&item).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	// Hard delete so the unique production/item pair can be assigned again.
	result := pc.DB.Unscoped().
		Where("production_id = ? AND item_id = ?", production.ID, item.ID).
		Delete(&models.ProductionItem{})
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item is not assigned to this production"})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Item removed from production",
	})
}

// GetBOM returns the derived bill of materials.
func (pc *ProductionController) GetBOM(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid production ID"})
	}

	var production models.Production
	if err := pc.DB.First(&production, uint(id)).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production not found"})
	}

	repo := repositories.NewProductionRepository(pc.DB)
	lines, err := repo.GetBOM(production.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	totalQuantity := 0
	for _, line := range lines {
		totalQuantity += line.Quantity
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"production":     production,
			"lines":          lines,
			"total_lines":    len(lines),
			"total_quantity": totalQuantity,
		},
	})
}
