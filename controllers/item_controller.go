package controllers

import (
	"errors"
	"fmt"
	"strings"

	"stagestock/controllers/idgen"
	"stagestock/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(DB *gorm.DB) *ItemController {
	return &ItemController{DB: DB}
}

type ItemInput struct {
	InventoryID  string `json:"inventory_id" validate:"omitempty,max=64"`
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Category     string `json:"category" validate:"omitempty,max=128"`
	Description  string `json:"description"`
	SerialNumber string `json:"serial_number" validate:"omitempty,max=128"`
	Manufacturer string `json:"manufacturer" validate:"omitempty,max=128"`
	ItemModel    string `json:"model" validate:"omitempty,max=128"`
	LocationID   *uint  `json:"location_id"`
}

// CREATE
func (ic *ItemController) CreateItem(ctx *fiber.Ctx) error {
	userID := int(ctx.Locals("userID").(float64))

	var input ItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	input.InventoryID = strings.TrimSpace(input.InventoryID)
	if input.InventoryID == "" {
		input.InventoryID = idgen.GenerateInventoryID()
	}

	var existing models.Item
	if err := ic.DB.Where("inventory_id = ?", input.InventoryID).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("Inventory ID already exists: %s", input.InventoryID),
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if input.LocationID != nil {
		var location models.Location
		if err := ic.DB.First(&location, *input.LocationID).Error; err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Location not found"})
		}
	}

	item := models.Item{
		InventoryID:  input.InventoryID,
		Name:         strings.TrimSpace(input.Name),
		Category:     strings.TrimSpace(input.Category),
		Description:  input.Description,
		SerialNumber: strings.TrimSpace(input.SerialNumber),
		Manufacturer: strings.TrimSpace(input.Manufacturer),
		ItemModel:    strings.TrimSpace(input.ItemModel),
		LocationID:   input.LocationID,
		CreatedBy:    userID,
		UpdatedBy:    userID,
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item created successfully",
		"data":    item,
	})
}

// READ ALL
func (ic *ItemController) GetAllItems(ctx *fiber.Ctx) error {
	var items []models.Item
	if err := ic.DB.Preload("Location").Order("name asc").Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"total":   len(items),
		"data":    items,
	})
}

// READ BY INVENTORY ID
func (ic *ItemController) GetItemByInventoryID(ctx *fiber.Ctx) error {
	inventoryID := ctx.Params("inventoryID")
	var item models.Item

	if err := ic.DB.Preload("Location").Where("inventory_id = ?", inventoryID).First(&item).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    item,
	})
}

// UPDATE
func (ic *ItemController) UpdateItem(ctx *fiber.Ctx) error {
	inventoryID := ctx.Params("inventoryID")
	userID := int(ctx.Locals("userID").(float64))

	var item models.Item
	if err := ic.DB.Where("inventory_id = ?", inventoryID).First(&item).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	var input ItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	newID := strings.TrimSpace(input.InventoryID)
	if newID != "" && newID != item.InventoryID {
		var existing models.Item
		if err := ic.DB.Where("inventory_id = ?", newID).First(&existing).Error; err == nil {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": fmt.Sprintf("Inventory ID already exists: %s", newID),
			})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		item.InventoryID = newID
	}

	if input.LocationID != nil {
		var location models.Location
		if err := ic.DB.First(&location, *input.LocationID).Error; err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Location not found"})
		}
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Category = strings.TrimSpace(input.Category)
	item.Description = input.Description
	item.SerialNumber = strings.TrimSpace(input.SerialNumber)
	item.Manufacturer = strings.TrimSpace(input.Manufacturer)
	item.ItemModel = strings.TrimSpace(input.ItemModel)
	item.LocationID = input.LocationID
	item.UpdatedBy = userID

	if err := ic.DB.Save(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Item updated successfully",
		"data":    item,
	})
}

// DELETE
func (ic *ItemController) DeleteItem(ctx *fiber.Ctx) error {
	inventoryID := ctx.Params("inventoryID")
	userID := int(ctx.Locals("userID").(float64))

	var item models.Item
	if err := ic.DB.Where("inventory_id = ?", inventoryID).First(&item).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	tx := ic.DB.Begin()

	// Assignments go with the item, productions stay.
	if err := tx.Unscoped().Where("item_id = ?", item.ID).Delete(&models.ProductionItem{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	item.DeletedBy = userID
	if err := tx.Save(&item).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Delete(&item).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Item deleted successfully",
	})
}

// GET CATEGORIES
func (ic *ItemController) GetCategories(ctx *fiber.Ctx) error {
	var categories []models.Category
	if err := ic.DB.Order("code asc").Find(&categories).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    categories,
	})
}

//====================================================================
// BEGIN ITEM EXCEL EXPORT / IMPORT
//====================================================================

func (ic *ItemController) ExportExcel(ctx *fiber.Ctx) error {
	var items []models.Item
	if err := ic.DB.Preload("Location").Order("name asc").Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Inventory ID")
	f.SetCellValue(sheet, "B1", "Name")
	f.SetCellValue(sheet, "C1", "Category")
	f.SetCellValue(sheet, "D1", "Serial Number")
	f.SetCellValue(sheet, "E1", "Manufacturer")
	f.SetCellValue(sheet, "F1", "Model")
	f.SetCellValue(sheet, "G1", "Location")

	for i, item := range items {
		location := ""
		if item.Location != nil {
			location = item.Location.Name
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), item.InventoryID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), item.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), item.SerialNumber)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), item.Manufacturer)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), item.ItemModel)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), location)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="items.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}

type ExcelRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Row     int    `json:"row"`
}

type ExcelItemUploadResponse struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	TotalRows        int               `json:"total_rows"`
	SuccessCount     int               `json:"success_count"`
	FailedCount      int               `json:"failed_count"`
	CreatedItems     []string          `json:"created_items,omitempty"`
	Errors           []ExcelRowError   `json:"errors,omitempty"`
	ValidationErrors []ValidationError `json:"validation_errors,omitempty"`
}

type excelItemDetail struct {
	InventoryID  string
	Name         string
	Category     string
	SerialNumber string
	Manufacturer string
	ItemModel    string
	Row          int
}

// ImportExcel bulk-creates items from an uploaded spreadsheet. Columns:
// Inventory ID | Name | Category | Serial Number | Manufacturer | Model.
// The whole file is validated before anything is written, and all rows go
// in one transaction.
func (ic *ItemController) ImportExcel(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success: false,
			Message: "No file uploaded or invalid file",
			Errors: []ExcelRowError{
				{Row: 0, Message: "File Error", Detail: err.Error()},
			},
		})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") &&
		!strings.HasSuffix(strings.ToLower(file.Filename), ".xls") {
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success: false,
			Message: "Invalid file format. Only .xlsx and .xls files are allowed",
		})
	}

	if file.Size > 10*1024*1024 {
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success: false,
			Message: "File size exceeds maximum limit of 10MB",
		})
	}

	fileHeader, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(ExcelItemUploadResponse{
			Success: false,
			Message: "Failed to open uploaded file",
		})
	}
	defer fileHeader.Close()

	excelFile, err := excelize.OpenReader(fileHeader)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success: false,
			Message: "Failed to read Excel file. Please ensure the file is not corrupted",
		})
	}
	defer excelFile.Close()

	sheets := excelFile.GetSheetList()
	if len(sheets) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success: false,
			Message: "Excel file contains no sheets",
		})
	}

	rows, err := excelFile.GetRows(sheets[0])
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(ExcelItemUploadResponse{
			Success: false,
			Message: "Failed to read rows from Excel",
		})
	}

	if len(rows) < 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success: false,
			Message: "Excel file must contain at least header row and one data row",
		})
	}

	userID := int(ctx.Locals("userID").(float64))

	details, validationErrors := parseItemDetailsFromExcel(rows)
	if len(validationErrors) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success:          false,
			Message:          fmt.Sprintf("Validation failed with %d errors", len(validationErrors)),
			ValidationErrors: validationErrors,
			TotalRows:        len(rows) - 1,
		})
	}

	if len(details) < 1 {
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success:   false,
			Message:   "No valid items found in Excel file",
			TotalRows: len(rows) - 1,
		})
	}

	duplicateErrors := checkDuplicateInventoryIDs(details)
	if len(duplicateErrors) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success:          false,
			Message:          "Duplicate inventory IDs found in Excel file",
			ValidationErrors: duplicateErrors,
			TotalRows:        len(rows) - 1,
		})
	}

	tx := ic.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logrus.Errorf("Panic recovered in ImportExcel: %v", r)
		}
	}()

	existingErrors := ic.checkExistingItems(tx, details)
	if len(existingErrors) > 0 {
		tx.Rollback()
		return ctx.Status(fiber.StatusBadRequest).JSON(ExcelItemUploadResponse{
			Success:          false,
			Message:          "Some items already exist in database",
			ValidationErrors: existingErrors,
			TotalRows:        len(details),
		})
	}

	var createdItems []string
	successCount := 0

	for _, detail := range details {
		inventoryID := detail.InventoryID
		if inventoryID == "" {
			inventoryID = idgen.GenerateInventoryID()
		}

		item := models.Item{
			InventoryID:  inventoryID,
			Name:         detail.Name,
			Category:     detail.Category,
			SerialNumber: detail.SerialNumber,
			Manufacturer: detail.Manufacturer,
			ItemModel:    detail.ItemModel,
			CreatedBy:    userID,
			UpdatedBy:    userID,
		}

		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(ExcelItemUploadResponse{
				Success: false,
				Message: "Failed to create item",
				Errors: []ExcelRowError{
					{Row: detail.Row, Message: "Database Insert Error", Detail: err.Error()},
				},
			})
		}

		createdItems = append(createdItems, inventoryID)
		successCount++
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(ExcelItemUploadResponse{
			Success: false,
			Message: "Failed to commit transaction",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(ExcelItemUploadResponse{
		Success:      true,
		Message:      fmt.Sprintf("Successfully created %d items", successCount),
		TotalRows:    len(details),
		SuccessCount: successCount,
		CreatedItems: createdItems,
	})
}

func parseItemDetailsFromExcel(rows [][]string) ([]excelItemDetail, []ValidationError) {
	var details []excelItemDetail
	var errs []ValidationError

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1

		if len(row) == 0 || (strings.TrimSpace(getCell(row, 0)) == "" && strings.TrimSpace(getCell(row, 1)) == "") {
			continue
		}

		detail := excelItemDetail{Row: rowNum}
		detail.InventoryID = strings.TrimSpace(getCell(row, 0))
		detail.Name = strings.TrimSpace(getCell(row, 1))
		detail.Category = strings.TrimSpace(getCell(row, 2))
		detail.SerialNumber = strings.TrimSpace(getCell(row, 3))
		detail.Manufacturer = strings.TrimSpace(getCell(row, 4))
		detail.ItemModel = strings.TrimSpace(getCell(row, 5))

		if detail.Name == "" {
			errs = append(errs, ValidationError{
				Field:   "Name",
				Message: "Item name cannot be empty",
				Row:     rowNum,
			})
			continue
		}

		if len(detail.InventoryID) > 64 {
			errs = append(errs, ValidationError{
				Field:   "InventoryID",
				Message: fmt.Sprintf("Inventory ID exceeds 64 characters: %s", detail.InventoryID),
				Row:     rowNum,
			})
			continue
		}

		details = append(details, detail)
	}

	return details, errs
}

func checkDuplicateInventoryIDs(details []excelItemDetail) []ValidationError {
	var errs []ValidationError
	idMap := make(map[string]int)

	for _, detail := range details {
		if detail.InventoryID == "" {
			continue
		}
		if existingRow, exists := idMap[detail.InventoryID]; exists {
			errs = append(errs, ValidationError{
				Field:   "Duplicate",
				Message: fmt.Sprintf("Duplicate inventory ID found (same as row %d): %s", existingRow, detail.InventoryID),
				Row:     detail.Row,
			})
		} else {
			idMap[detail.InventoryID] = detail.Row
		}
	}

	return errs
}

func (ic *ItemController) checkExistingItems(tx *gorm.DB, details []excelItemDetail) []ValidationError {
	var errs []ValidationError

	for _, detail := range details {
		if detail.InventoryID == "" {
			continue
		}
		var existing models.Item
		if err := tx.Where("inventory_id = ?", detail.InventoryID).First(&existing).Error; err == nil {
			errs = append(errs, ValidationError{
				Field:   "InventoryID",
				Message: fmt.Sprintf("Item already exists in database: %s", detail.InventoryID),
				Row:     detail.Row,
			})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			errs = append(errs, ValidationError{
				Field:   "InventoryID",
				Message: fmt.Sprintf("Failed to check item: %s", err.Error()),
				Row:     detail.Row,
			})
		}
	}

	return errs
}

func getCell(row []string, index int) string {
	if index < len(row) {
		return strings.TrimSpace(row[index])
	}
	return ""
}

//====================================================================
// END ITEM EXCEL EXPORT / IMPORT
//====================================================================
