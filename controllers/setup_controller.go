package controllers

import (
	"os"
	"path/filepath"
	"strings"

	"stagestock/config"
	"stagestock/database"
	"stagestock/models"
	"stagestock/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SetupController struct{}

func NewSetupController() *SetupController {
	return &SetupController{}
}

func (c *SetupController) Status(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"configured": config.IsConfigured(),
	})
}

// Run provisions the application on first start: probes the database the
// operator pointed at, creates the schema, the first admin account and
// optionally a default user, and stores the company logo. Once the app is
// configured it refuses to run again.
func (c *SetupController) Run(ctx *fiber.Ctx) error {
	if config.IsConfigured() {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Application is already configured",
		})
	}

	adminUsername := strings.TrimSpace(ctx.FormValue("admin_username"))
	adminPassword := ctx.FormValue("admin_password")

	if len(adminUsername) < 3 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Admin username must be at least 3 characters",
		})
	}
	if len(adminPassword) < 6 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Admin password must be at least 6 characters",
		})
	}

	newCfg := config.AppConfig{
		DBHost: strings.TrimSpace(ctx.FormValue("db_host", "localhost")),
		DBPort: strings.TrimSpace(ctx.FormValue("db_port", "3306")),
		DBName: strings.TrimSpace(ctx.FormValue("db_name", "stagestock_db")),
		DBUser: strings.TrimSpace(ctx.FormValue("db_user", "stagestock")),
		DBPass: ctx.FormValue("db_pass"),
	}

	// Probe the connection before anything is written.
	db, err := database.OpenDatabaseConnection(newCfg)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Database connection failed: " + err.Error(),
		})
	}

	if err := database.Migrate(db); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create schema: " + err.Error(),
		})
	}

	// Optional company logo
	logoPath := ""
	if file, err := ctx.FormFile("company_logo"); err == nil && file != nil {
		ext, err := utils.ValidateLogoExt(file.Filename)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		if file.Size > 5*1024*1024 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Logo file size exceeds maximum limit of 5MB",
			})
		}
		if err := os.MkdirAll(config.UploadDir, 0755); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to create upload directory",
			})
		}
		logoPath = filepath.Join(config.UploadDir, "company_logo"+ext)
		if err := utils.SaveLogo(file, logoPath); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
	}

	hashedPassword, err := utils.HashPassword(adminPassword)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to hash password",
		})
	}

	var existing models.User
	if err := db.Where("username = ?", adminUsername).First(&existing).Error; err != nil {
		admin := models.User{
			Username: adminUsername,
			Password: hashedPassword,
			Name:     adminUsername,
			Role:     models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to create admin user: " + err.Error(),
			})
		}
	}

	// Optional default non-admin user
	defaultUsername := strings.TrimSpace(ctx.FormValue("default_user_username"))
	defaultPassword := ctx.FormValue("default_user_password")
	if defaultUsername != "" && len(defaultPassword) >= 6 {
		var existingUser models.User
		if err := db.Where("username = ?", defaultUsername).First(&existingUser).Error; err != nil {
			hashed, err := utils.HashPassword(defaultPassword)
			if err == nil {
				db.Create(&models.User{
					Username: defaultUsername,
					Password: hashed,
					Name:     defaultUsername,
					Role:     models.RoleUser,
				})
			}
		}
	}

	companyName := strings.TrimSpace(ctx.FormValue("company_name"))
	profile := models.CompanyProfile{
		CompanyName: companyName,
		LogoPath:    logoPath,
	}
	if err := db.Create(&profile).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create company profile: " + err.Error(),
		})
	}

	database.RunSeeders(db)

	newCfg.Configured = true
	newCfg.LogoPath = logoPath
	if err := config.SaveAppConfig(newCfg); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to persist configuration: " + err.Error(),
		})
	}

	database.RegisterConnection(newCfg.DBName, db)

	logrus.Infof("Setup complete, database %s initialised", newCfg.DBName)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Setup complete. Please log in.",
	})
}
