package routes

import (
	"stagestock/controllers"
	"stagestock/database"
	"stagestock/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupLocationRoutes(app *fiber.App) {
	api := app.Group("/api/v1/locations", middleware.AuthMiddleware)

	locationController := &controllers.LocationController{}
	api.Use(database.InjectDBMiddleware(locationController))

	api.Post("/", locationController.CreateLocation)
	api.Get("/", locationController.GetAllLocations)
	api.Get("/:id", locationController.GetLocationByID)
	api.Put("/:id", locationController.UpdateLocation)
	api.Delete("/:id", locationController.DeleteLocation)
}
