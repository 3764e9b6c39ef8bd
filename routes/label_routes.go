package routes

import (
	"stagestock/controllers"
	"stagestock/database"
	"stagestock/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupLabelRoutes(app *fiber.App) {
	api := app.Group("/api/v1/labels", middleware.AuthMiddleware)

	labelController := &controllers.LabelController{}
	api.Use(database.InjectDBMiddleware(labelController))

	api.Get("/:inventoryID/qr.png", labelController.GetQRPNG)
	api.Get("/:inventoryID/label.pdf", labelController.GetLabelPDF)
}
