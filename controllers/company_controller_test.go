package controllers

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"stagestock/config"
	"stagestock/models"
	"stagestock/utils"

	"github.com/disintegration/imaging"
)

func TestUpdateCompanyProfileIsAdminOnly(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	createTestUser(t, db, "tech", "secret123", models.RoleUser)
	userToken := loginAs(t, app, "tech", "secret123")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("company_name", "Sneaky Rentals")
	writer.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/company/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+userToken)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403 for non-admin, got %d", resp.StatusCode)
	}
}

func TestUpdateCompanyProfileName(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("company_name", "Encore Event Technologies")
	writer.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/company/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/company/", token, nil)
	defer resp.Body.Close()
	bodyMap := decodeBody(t, resp)
	data := bodyMap["data"].(map[string]interface{})
	if data["company_name"] != "Encore Event Technologies" {
		t.Fatalf("expected updated company name, got %v", data["company_name"])
	}
}

func TestUploadLogoIsResized(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	config.UploadDir = t.TempDir()

	var logo bytes.Buffer
	if err := png.Encode(&logo, image.NewRGBA(image.Rect(0, 0, 1200, 800))); err != nil {
		t.Fatalf("failed to encode test logo: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("company_logo", "logo.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(logo.Bytes()); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/company/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	stored, err := imaging.Open(filepath.Join(config.UploadDir, "company_logo.png"))
	if err != nil {
		t.Fatalf("failed to open stored logo: %v", err)
	}
	bounds := stored.Bounds()
	if bounds.Dx() != utils.LogoMaxDim {
		t.Fatalf("expected logo scaled to %d px wide, got %d", utils.LogoMaxDim, bounds.Dx())
	}
	if bounds.Dy() > utils.LogoMaxDim {
		t.Fatalf("expected logo height within %d px, got %d", utils.LogoMaxDim, bounds.Dy())
	}
}

func TestUploadLogoRejectsNonImage(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	config.UploadDir = t.TempDir()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("company_logo", "logo.png")
	part.Write([]byte("definitely not a PNG"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/company/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for invalid image data, got %d", resp.StatusCode)
	}
}
