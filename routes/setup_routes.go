package routes

import (
	"stagestock/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupWizardRoutes(app *fiber.App) {
	setupController := controllers.NewSetupController()

	app.Get("/setup/status", setupController.Status)
	app.Post("/setup", setupController.Run)
}
