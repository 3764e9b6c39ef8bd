package routes

import (
	"stagestock/controllers"
	"stagestock/database"
	"stagestock/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProductionRoutes(app *fiber.App) {
	api := app.Group("/api/v1/productions", middleware.AuthMiddleware)

	productionController := &controllers.ProductionController{}
	api.Use(database.InjectDBMiddleware(productionController))

	api.Post("/", productionController.CreateProduction)
	api.Get("/", productionController.GetAllProductions)
	api.Get("/:id", productionController.GetProductionByID)
	api.Put("/:id", productionController.UpdateProduction)
	api.Delete("/:id", productionController.DeleteProduction)

	api.Post("/:id/items", productionController.AssignItem)
	api.Delete("/:id/items/:inventoryID", productionController.UnassignItem)
	api.Get("/:id/bom", productionController.GetBOM)
}
