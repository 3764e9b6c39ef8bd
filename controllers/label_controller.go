package controllers

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"

	"stagestock/models"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type LabelController struct {
	DB *gorm.DB
}

func NewLabelController(DB *gorm.DB) *LabelController {
	return &LabelController{DB: DB}
}

// generateQRWithLogo renders a QR code for the given content with the
// company logo overlaid in the center. Error correction level H keeps
// the code readable with ~22% of the middle covered.
func generateQRWithLogo(content string, size int, logoPath string) (image.Image, error) {
	qr, err := qrcode.New(content, qrcode.High)
	if err != nil {
		return nil, err
	}

	img := qr.Image(size)

	if logoPath == "" {
		return img, nil
	}
	if _, err := os.Stat(logoPath); err != nil {
		return img, nil
	}

	logo, err := imaging.Open(logoPath)
	if err != nil {
		return img, nil
	}

	logoSize := size * 22 / 100
	thumb := imaging.Fit(logo, logoSize, logoSize, imaging.Lanczos)

	return imaging.OverlayCenter(img, thumb, 1.0), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetQRPNG serves the QR code for an item. The payload is exactly the
// inventory id, nothing else.
func (lc *LabelController) GetQRPNG(ctx *fiber.Ctx) error {
	inventoryID := ctx.Params("inventoryID")

	var item models.Item
	if err := lc.DB.Where("inventory_id = ?", inventoryID).First(&item).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	size := 512
	if s := ctx.Query("size"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 64 && parsed <= 2048 {
			size = parsed
		}
	}

	profile := getCompanyProfile(lc.DB)

	img, err := generateQRWithLogo(item.InventoryID, size, profile.LogoPath)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := encodePNG(img)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "image/png")
	ctx.Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.png"`, item.InventoryID))
	return ctx.Send(data)
}

// Label dimensions for direct label-printer output.
const (
	labelWidthMM  = 100.0
	labelHeightMM = 54.0
)

// GetLabelPDF renders a 100x54 mm label: QR on the left, inventory id,
// item name and manufacturer/model on the right.
func (lc *LabelController) GetLabelPDF(ctx *fiber.Ctx) error {
	inventoryID := ctx.Params("inventoryID")

	var item models.Item
	if err := lc.DB.Where("inventory_id = ?", inventoryID).First(&item).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	profile := getCompanyProfile(lc.DB)

	img, err := generateQRWithLogo(item.InventoryID, 512, profile.LogoPath)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	qrPNG, err := encodePNG(img)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: labelWidthMM, Ht: labelHeightMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))

	qrSize := labelHeightMM * 0.9
	margin := labelHeightMM * 0.05
	pdf.ImageOptions("qr", margin, margin, qrSize, qrSize, false, opts, 0, "")

	textX := qrSize + labelHeightMM*0.15
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(textX, labelHeightMM*0.12)
	pdf.CellFormat(labelWidthMM-textX-margin, 7, item.InventoryID, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(textX, labelHeightMM*0.32)
	pdf.CellFormat(labelWidthMM-textX-margin, 6, item.Name, "", 0, "L", false, 0, "")

	makeModel := item.Manufacturer
	if item.ItemModel != "" {
		if makeModel != "" {
			makeModel += " "
		}
		makeModel += item.ItemModel
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(textX, labelHeightMM*0.48)
	pdf.CellFormat(labelWidthMM-textX-margin, 5, makeModel, "", 0, "L", false, 0, "")

	if profile.CompanyName != "" {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetXY(textX, labelHeightMM*0.8)
		pdf.CellFormat(labelWidthMM-textX-margin, 4, profile.CompanyName, "", 0, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/pdf")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_label.pdf"`, item.InventoryID))
	return ctx.Send(buf.Bytes())
}
