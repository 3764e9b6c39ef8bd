package routes

import (
	"stagestock/controllers"
	"stagestock/database"
	"stagestock/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authController := &controllers.AuthController{}

	api := app.Group("/api/v1")
	api.Post("/login", database.InjectDBMiddleware(authController), authController.Login)
	api.Get("/logout", middleware.AuthMiddleware, database.InjectDBMiddleware(authController), authController.Logout)
	api.Get("/isLoggedIn", middleware.AuthMiddleware, authController.IsLoggedIn)
}
