package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"stagestock/config"
	"stagestock/controllers/idgen"
	"stagestock/database"
	"stagestock/middleware"
	"stagestock/models"
	"stagestock/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var testDBCounter int

// setupTestApp builds a fiber app with the full route surface over an
// in-memory sqlite database registered as the default connection.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()
	config.AppConfigPath = filepath.Join(t.TempDir(), "config.json")
	idgen.Init()

	testDBCounter++
	dbName := fmt.Sprintf("testdb_%d", testDBCounter)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.RunSeeders(db)
	database.RegisterConnection(dbName, db)

	if err := config.SaveAppConfig(config.AppConfig{
		Configured: true,
		DBName:     dbName,
	}); err != nil {
		t.Fatalf("failed to save test config: %v", err)
	}

	app := fiber.New(fiber.Config{BodyLimit: 20 * 1024 * 1024})

	// Mirrors the route registration in routes/, kept inline to avoid an
	// import cycle between the routes and controllers packages.
	setupController := NewSetupController()
	app.Get("/setup/status", setupController.Status)
	app.Post("/setup", setupController.Run)

	authController := &AuthController{}
	api := app.Group("/api/v1")
	api.Post("/login", database.InjectDBMiddleware(authController), authController.Login)
	api.Get("/logout", middleware.AuthMiddleware, database.InjectDBMiddleware(authController), authController.Logout)
	api.Get("/isLoggedIn", middleware.AuthMiddleware, authController.IsLoggedIn)

	userController := &UserController{}
	users := app.Group("/api/v1/users", middleware.AuthMiddleware, middleware.AdminOnly)
	users.Use(database.InjectDBMiddleware(userController))
	users.Post("/", userController.CreateUser)
	users.Get("/", userController.GetAllUsers)
	users.Get("/:id", userController.GetUserByID)
	users.Put("/:id", userController.UpdateUser)
	users.Delete("/:id", userController.DeleteUser)
	profile := app.Group("/api/v1/user", middleware.AuthMiddleware)
	profile.Use(database.InjectDBMiddleware(userController))
	profile.Get("/profile", userController.GetProfile)

	itemController := &ItemController{}
	items := app.Group("/api/v1/items", middleware.AuthMiddleware)
	items.Use(database.InjectDBMiddleware(itemController))
	items.Post("/", itemController.CreateItem)
	items.Get("/", itemController.GetAllItems)
	items.Get("/export/excel", itemController.ExportExcel)
	items.Post("/import/excel", itemController.ImportExcel)
	items.Get("/:inventoryID", itemController.GetItemByInventoryID)
	items.Put("/:inventoryID", itemController.UpdateItem)
	items.Delete("/:inventoryID", itemController.DeleteItem)
	categories := app.Group("/api/v1/categories", middleware.AuthMiddleware)
	categories.Use(database.InjectDBMiddleware(itemController))
	categories.Get("/", itemController.GetCategories)

	locationController := &LocationController{}
	locations := app.Group("/api/v1/locations", middleware.AuthMiddleware)
	locations.Use(database.InjectDBMiddleware(locationController))
	locations.Post("/", locationController.CreateLocation)
	locations.Get("/", locationController.GetAllLocations)
	locations.Get("/:id", locationController.GetLocationByID)
	locations.Put("/:id", locationController.UpdateLocation)
	locations.Delete("/:id", locationController.DeleteLocation)

	productionController := &ProductionController{}
	productions := app.Group("/api/v1/productions", middleware.AuthMiddleware)
	productions.Use(database.InjectDBMiddleware(productionController))
	productions.Post("/", productionController.CreateProduction)
	productions.Get("/", productionController.GetAllProductions)
	productions.Get("/:id", productionController.GetProductionByID)
	productions.Put("/:id", productionController.UpdateProduction)
	productions.Delete("/:id", productionController.DeleteProduction)
	productions.Post("/:id/items", productionController.AssignItem)
	productions.Delete("/:id/items/:inventoryID", productionController.UnassignItem)
	productions.Get("/:id/bom", productionController.GetBOM)

	reportController := &ReportController{}
	reports := app.Group("/api/v1/reports", middleware.AuthMiddleware)
	reports.Use(database.InjectDBMiddleware(reportController))
	reports.Get("/items/pdf", reportController.GetItemsPDF)
	reports.Get("/productions/:id/bom/pdf", reportController.GetProductionBOMPDF)
	reports.Get("/productions/:id/bom/excel", reportController.GetProductionBOMExcel)
	reports.Post("/productions/:id/bom/email", reportController.EmailProductionBOM)

	labelController := &LabelController{}
	labels := app.Group("/api/v1/labels", middleware.AuthMiddleware)
	labels.Use(database.InjectDBMiddleware(labelController))
	labels.Get("/:inventoryID/qr.png", labelController.GetQRPNG)
	labels.Get("/:inventoryID/label.pdf", labelController.GetLabelPDF)

	companyController := &CompanyController{}
	company := app.Group("/api/v1/company", middleware.AuthMiddleware)
	company.Use(database.InjectDBMiddleware(companyController))
	company.Get("/", companyController.GetProfile)
	company.Put("/", middleware.AdminOnly, companyController.UpdateProfile)

	return app, db
}

func createTestUser(t *testing.T, db *gorm.DB, username, password, role string) models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Username: username,
		Password: hash,
		Name:     username,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func loginAs(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/v1/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login as %s failed with status %d", username, resp.StatusCode)
	}

	var body struct {
		XToken string `json:"x_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if body.XToken == "" {
		t.Fatal("login response contains no token")
	}
	return body.XToken
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}
