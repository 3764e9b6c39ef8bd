package routes

import (
	"stagestock/controllers"
	"stagestock/database"
	"stagestock/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupItemRoutes(app *fiber.App) {
	api := app.Group("/api/v1/items", middleware.AuthMiddleware)

	itemController := &controllers.ItemController{}
	api.Use(database.InjectDBMiddleware(itemController))

	api.Post("/", itemController.CreateItem)
	api.Get("/", itemController.GetAllItems)
	api.Get("/export/excel", itemController.ExportExcel)
	api.Post("/import/excel", itemController.ImportExcel)
	api.Get("/:inventoryID", itemController.GetItemByInventoryID)
	api.Put("/:inventoryID", itemController.UpdateItem)
	api.Delete("/:inventoryID", itemController.DeleteItem)

	categories := app.Group("/api/v1/categories", middleware.AuthMiddleware)
	categories.Use(database.InjectDBMiddleware(itemController))
	categories.Get("/", itemController.GetCategories)
}
