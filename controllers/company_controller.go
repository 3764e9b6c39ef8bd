package controllers

import (
	"os"
	"path/filepath"
	"strings"

	"stagestock/config"
	"stagestock/models"
	"stagestock/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CompanyController struct {
	DB *gorm.DB
}

func NewCompanyController(DB *gorm.DB) *CompanyController {
	return &CompanyController{DB: DB}
}

// getCompanyProfile returns the single company profile row, or a zero
// value when setup never stored one.
func getCompanyProfile(db *gorm.DB) models.CompanyProfile {
	var profile models.CompanyProfile
	db.First(&profile)
	return profile
}

func (cc *CompanyController) GetProfile(ctx *fiber.Ctx) error {
	profile := getCompanyProfile(cc.DB)
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    profile,
	})
}

// UpdateProfile replaces the company name and/or logo. Admin only.
func (cc *CompanyController) UpdateProfile(ctx *fiber.Ctx) error {
	userID := int(ctx.Locals("userID").(float64))

	var profile models.CompanyProfile
	if err := cc.DB.First(&profile).Error; err != nil {
		profile = models.CompanyProfile{}
	}

	if name := strings.TrimSpace(ctx.FormValue("company_name")); name != "" {
		profile.CompanyName = name
	}

	if file, err := ctx.FormFile("company_logo"); err == nil && file != nil {
		ext, err := utils.ValidateLogoExt(file.Filename)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if file.Size > 5*1024*1024 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Logo file size exceeds maximum limit of 5MB"})
		}

		if err := os.MkdirAll(config.UploadDir, 0755); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create upload directory"})
		}

		logoPath := filepath.Join(config.UploadDir, "company_logo"+ext)
		if err := utils.SaveLogo(file, logoPath); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		profile.LogoPath = logoPath

		cfg := config.LoadAppConfig()
		cfg.LogoPath = logoPath
		if err := config.SaveAppConfig(cfg); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to persist configuration"})
		}
	}

	profile.UpdatedBy = userID

	if err := cc.DB.Save(&profile).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Company profile updated successfully",
		"data":    profile,
	})
}
