package main

import (
	"stagestock/config"
	"stagestock/controllers/idgen"
	"stagestock/database"
	"stagestock/middleware"
	"stagestock/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {

	config.LoadConfig()
	idgen.Init()

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.EnforceHTTPS)

	config.SetupCORS(app)

	// Connect and migrate when the setup wizard already ran. Otherwise
	// only the setup routes do anything useful.
	if config.IsConfigured() {
		db, err := database.GetDefaultConnection()
		if err != nil {
			logrus.Fatalf("Failed to connect to database: %v", err)
		}

		if err := database.Migrate(db); err != nil {
			logrus.Fatalf("Failed to auto migrate: %v", err)
		}

		database.RunSeeders(db)
	} else {
		logrus.Warn("Application not configured yet, POST /setup to initialize")
	}

	// Setup routes
	routes.SetupWizardRoutes(app)
	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupItemRoutes(app)
	routes.SetupLocationRoutes(app)
	routes.SetupProductionRoutes(app)
	routes.SetupReportRoutes(app)
	routes.SetupLabelRoutes(app)
	routes.SetupCompanyRoutes(app)

	// Uploaded logo for the frontend
	app.Static("/uploads", config.UploadDir)

	port := config.APP_PORT
	logrus.Infof("Server running on port %s", port)

	if err := app.Listen(":" + port); err != nil {
		logrus.Fatal(err)
	}

}
