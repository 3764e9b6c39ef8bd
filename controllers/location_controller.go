package controllers

import (
	"errors"
	"strings"

	"stagestock/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LocationController struct {
	DB *gorm.DB
}

func NewLocationController(DB *gorm.DB) *LocationController {
	return &LocationController{DB: DB}
}

type LocationInput struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	IsActive    *bool  `json:"is_active"`
}

// CREATE
func (lc *LocationController) CreateLocation(ctx *fiber.Ctx) error {
	userID := int(ctx.Locals("userID").(float64))

	var input LocationInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.ParentID != nil {
		var parent models.Location
		if err := lc.DB.First(&parent, *input.ParentID).Error; err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parent location not found"})
		}
	}

	location := models.Location{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ParentID:    input.ParentID,
		IsActive:    true,
		CreatedBy:   userID,
		UpdatedBy:   userID,
	}

	if err := lc.DB.Create(&location).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Location created successfully",
		"data":    location,
	})
}

// READ ALL
func (lc *LocationController) GetAllLocations(ctx *fiber.Ctx) error {
	var locations []models.Location
	if err := lc.DB.Preload("Parent").Order("name asc").Find(&locations).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    locations,
	})
}

// READ BY ID
func (lc *LocationController) GetLocationByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	var location models.Location

	if err := lc.DB.Preload("Parent").First(&location, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    location,
	})
}

// UPDATE
func (lc *LocationController) UpdateLocation(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	userID := int(ctx.Locals("userID").(float64))

	var location models.Location
	if err := lc.DB.First(&location, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}

	var input LocationInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.ParentID != nil {
		var parent models.Location
		if err := lc.DB.First(&parent, *input.ParentID).Error; err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parent location not found"})
		}
		ok, err := lc.parentChainClearOf(parent, location.ID)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if !ok {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Location cannot be its own ancestor"})
		}
	}

	location.Name = strings.TrimSpace(input.Name)
	location.Description = input.Description
	location.ParentID = input.ParentID
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}
	location.UpdatedBy = userID

	if err := lc.DB.Save(&location).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Location updated successfully",
		"data":    location,
	})
}

// parentChainClearOf walks up from candidate and reports whether the
// chain reaches the root without passing through forbiddenID. Stops a
// reparent that would close a cycle anywhere up the tree.
func (lc *LocationController) parentChainClearOf(candidate models.Location, forbiddenID uint) (bool, error) {
	for {
		if candidate.ID == forbiddenID {
			return false, nil
		}
		if candidate.ParentID == nil {
			return true, nil
		}
		var next models.Location
		if err := lc.DB.First(&next, *candidate.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return true, nil
			}
			return false, err
		}
		candidate = next
	}
}

// DELETE. Restricted: a location still referenced by items or holding
// child locations cannot be deleted.
func (lc *LocationController) DeleteLocation(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	userID := int(ctx.Locals("userID").(float64))

	var location models.Location
	if err := lc.DB.First(&location, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}

	var itemCount int64
	if err := lc.DB.Model(&models.Item{}).Where("location_id = ?", location.ID).Count(&itemCount).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if itemCount > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Location is still referenced by items and cannot be deleted",
		})
	}

	var childCount int64
	if err := lc.DB.Model(&models.Location{}).Where("parent_id = ?", location.ID).Count(&childCount).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if childCount > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Location still has child locations and cannot be deleted",
		})
	}

	location.DeletedBy = userID
	if err := lc.DB.Save(&location).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := lc.DB.Delete(&location).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Location deleted successfully",
	})
}
