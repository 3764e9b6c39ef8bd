package controllers

import (
	"bytes"
	"fmt"
	"strings"

	"stagestock/models"
	"stagestock/repositories"
	"stagestock/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(DB *gorm.DB) *ReportController {
	return &ReportController{DB: DB}
}

func newReportPDF(companyName, title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	if companyName != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 5, companyName, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	return pdf
}

// truncate cuts a report line on a rune boundary so multibyte item
// names survive the cut intact.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func itemLine(inventoryID, name, category, serialNumber, manufacturer, model string) string {
	line := fmt.Sprintf("%s | %s | %s | SN:%s | %s %s",
		inventoryID, name, category, serialNumber,
		manufacturer, model)
	return truncate(line, 120)
}

// GetItemsPDF renders the full inventory as an A4 report.
func (rc *ReportController) GetItemsPDF(ctx *fiber.Ctx) error {
	var items []models.Item
	if err := rc.DB.Order("name asc").Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	profile := getCompanyProfile(rc.DB)
	pdf := newReportPDF(profile.CompanyName, "Item Inventory Report")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		line := itemLine(item.InventoryID, item.Name, item.Category,
			item.SerialNumber, item.Manufacturer, item.ItemModel)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/pdf")
	ctx.Set("Content-Disposition", `attachment; filename="items_report.pdf"`)
	return ctx.Send(buf.Bytes())
}

func (rc *ReportController) buildBOMPDF(production models.Production) ([]byte, error) {
	repo := repositories.NewProductionRepository(rc.DB)
	lines, err := repo.GetBOM(production.ID)
	if err != nil {
		return nil, err
	}

	profile := getCompanyProfile(rc.DB)
	pdf := newReportPDF(profile.CompanyName, "BOM - "+production.Name)

	pdf.SetFont("Helvetica", "", 10)
	dateRange := ""
	if production.StartDate != nil {
		dateRange = production.StartDate.Format("2006-01-02")
	}
	if production.EndDate != nil {
		if dateRange != "" {
			dateRange += " - "
		}
		dateRange += production.EndDate.Format("2006-01-02")
	}
	if dateRange != "" {
		pdf.CellFormat(0, 6, "Date: "+dateRange, "", 1, "L", false, 0, "")
	}
	if production.Notes != "" {
		pdf.CellFormat(0, 6, "Notes: "+truncate(production.Notes, 90), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	for _, line := range lines {
		text := fmt.Sprintf("%dx %s", line.Quantity,
			itemLine(line.InventoryID, line.Name, line.Category,
				line.SerialNumber, line.Manufacturer, line.ItemModel))
		pdf.CellFormat(0, 6, truncate(text, 120), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetProductionBOMPDF renders the derived BOM of one production.
func (rc *ReportController) GetProductionBOMPDF(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var production models.Production
	if err := rc.DB.First(&production, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production not found"})
	}

	data, err := rc.buildBOMPDF(production)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/pdf")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="production_%d_BOM.pdf"`, production.ID))
	return ctx.Send(data)
}

// GetProductionBOMExcel exports the derived BOM as a spreadsheet.
func (rc *ReportController) GetProductionBOMExcel(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var production models.Production
	if err := rc.DB.First(&production, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production not found"})
	}

	repo := repositories.NewProductionRepository(rc.DB)
	lines, err := repo.GetBOM(production.ID)
	if err != nil {
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
	f.SetCellValue(sheet, "H1", "Quantity")

	for i, line := range lines {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), line.InventoryID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), line.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), line.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), line.SerialNumber)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), line.Manufacturer)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), line.ItemModel)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), line.LocationName)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", i+2), line.Quantity)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="production_%d_BOM.xlsx"`, production.ID))

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}

type BOMEmailInput struct {
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
}

// EmailProductionBOM sends the BOM PDF to the given recipients.
func (rc *ReportController) EmailProductionBOM(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var production models.Production
	if err := rc.DB.First(&production, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production not found"})
	}

	var input BOMEmailInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := rc.buildBOMPDF(production)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	filename := fmt.Sprintf("production_%d_BOM.pdf", production.ID)
	if err := services.SendBOMReport(input.Recipients, production.Name, filename, data); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("BOM sent to %s", strings.Join(input.Recipients, ", ")),
	})
}
