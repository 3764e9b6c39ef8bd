package routes

import (
	"stagestock/controllers"
	"stagestock/database"
	"stagestock/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userController := &controllers.UserController{}

	// User management is admin only.
	api := app.Group("/api/v1/users", middleware.AuthMiddleware, middleware.AdminOnly)
	api.Use(database.InjectDBMiddleware(userController))

	api.Post("/", userController.CreateUser)
	api.Get("/", userController.GetAllUsers)
	api.Get("/:id", userController.GetUserByID)
	api.Put("/:id", userController.UpdateUser)
	api.Delete("/:id", userController.DeleteUser)

	profile := app.Group("/api/v1/user", middleware.AuthMiddleware)
	profile.Use(database.InjectDBMiddleware(userController))
	profile.Get("/profile", userController.GetProfile)
}
