package routes

import (
	"stagestock/controllers"
	"stagestock/database"
	"stagestock/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCompanyRoutes(app *fiber.App) {
	companyController := &controllers.CompanyController{}

	api := app.Group("/api/v1/company", middleware.AuthMiddleware)
	api.Use(database.InjectDBMiddleware(companyController))

	api.Get("/", companyController.GetProfile)
	api.Put("/", middleware.AdminOnly, companyController.UpdateProfile)
}
