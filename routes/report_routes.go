package routes

import (
	"stagestock/controllers"
	"stagestock/database"
	"stagestock/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App) {
	api := app.Group("/api/v1/reports", middleware.AuthMiddleware)

	reportController := &controllers.ReportController{}
	api.Use(database.InjectDBMiddleware(reportController))

	api.Get("/items/pdf", reportController.GetItemsPDF)
	api.Get("/productions/:id/bom/pdf", reportController.GetProductionBOMPDF)
	api.Get("/productions/:id/bom/excel", reportController.GetProductionBOMExcel)
	api.Post("/productions/:id/bom/email", reportController.EmailProductionBOM)
}
