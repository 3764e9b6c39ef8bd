package controllers

import (
	"bytes"
	"image/png"
	"io"
	"net/http"
	"testing"

	"stagestock/models"
)

func TestGetQRPNGEncodesInventoryID(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/items/", token, map[string]interface{}{
		"inventory_id": "INV-9001",
		"name":         "Smoke Machine",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/labels/INV-9001/qr.png", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png content type, got %q", ct)
	}

	got, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	// No logo configured, so the output must match a plain code for
	// exactly the inventory id.
	img, err := generateQRWithLogo("INV-9001", 512, "")
	if err != nil {
		t.Fatalf("failed to render reference code: %v", err)
	}
	want, err := encodePNG(img)
	if err != nil {
		t.Fatalf("failed to encode reference code: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("QR payload does not match the inventory id")
	}
}

func TestGetQRPNGHonorsSizeBounds(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/items/", token, map[string]interface{}{
		"inventory_id": "INV-9002",
		"name":         "Hazer",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/labels/INV-9002/qr.png?size=128", token, nil)
	defer resp.Body.Close()
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Fatalf("expected 128px wide code, got %d", img.Bounds().Dx())
	}

	// Out of range sizes fall back to the default.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/labels/INV-9002/qr.png?size=9999", token, nil)
	defer resp.Body.Close()
	img, err = png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 512 {
		t.Fatalf("expected default 512px code, got %d", img.Bounds().Dx())
	}
}

func TestGetLabelPDF(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/items/", token, map[string]interface{}{
		"inventory_id": "INV-9003",
		"name":         "Line Array Frame",
		"manufacturer": "L-Acoustics",
		"model":        "KARA",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/labels/INV-9003/label.pdf", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf content type, got %q", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestLabelForUnknownItem(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	resp := doJSON(t, app, http.MethodGet, "/api/v1/labels/INV-NOPE/qr.png", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown item, got %d", resp.StatusCode)
	}
}
