package controllers

import (
	"net/http"
	"testing"

	"stagestock/models"
)

func TestCreateProductionValidatesDateRange(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/productions/", token, map[string]interface{}{
		"name":       "Corporate Gala",
		"start_date": "2026-09-10",
		"end_date":   "2026-09-08",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for end before start, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/productions/", token, map[string]interface{}{
		"name":       "Corporate Gala",
		"start_date": "2026-09-08",
		"end_date":   "2026-09-10",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201 for valid date range, got %d", resp.StatusCode)
	}
}

func TestBOMReflectsAssignments(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/productions/", token, map[string]interface{}{
		"name": "Club Tour",
	})
	resp.Body.Close()

	for _, id := range []string{"INV-5001", "INV-5002"} {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/items/", token, map[string]interface{}{
			"inventory_id": id,
			"name":         "Speaker " + id,
			"category":     "AUDIO",
		})
		resp.Body.Close()
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/productions/1/items", token, map[string]interface{}{
		"inventory_id": "INV-5001",
		"quantity":     4,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 assigning item, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/productions/1/items", token, map[string]interface{}{
		"inventory_id": "INV-5002",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/productions/1/bom", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 for BOM, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	if got := data["total_lines"].(float64); got != 2 {
		t.Fatalf("expected 2 BOM lines, got %v", got)
	}
	if got := data["total_quantity"].(float64); got != 5 {
		t.Fatalf("expected total quantity 5, got %v", got)
	}
}

func TestAssignItemTwiceUpdatesQuantity(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/productions/", token, map[string]interface{}{
		"name": "Theatre Run",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/items/", token, map[string]interface{}{
		"inventory_id": "INV-6001",
		"name":         "XLR 10m",
		"category":     "CABLE",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/productions/1/items", token, map[string]interface{}{
		"inventory_id": "INV-6001",
		"quantity":     2,
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/productions/1/items", token, map[string]interface{}{
		"inventory_id": "INV-6001",
		"quantity":     8,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 reassigning item, got %d", resp.StatusCode)
	}

	var assignments []models.ProductionItem
	if err := db.Find(&assignments).Error; err != nil {
		t.Fatalf("failed to load assignments: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected a single assignment row, got %d", len(assignments))
	}
	if assignments[0].Quantity != 8 {
		t.Fatalf("expected quantity updated to 8, got %d", assignments[0].Quantity)
	}
}

func TestUnassignItemKeepsItem(t *testing.T) {
	app, db := setupTestApp(t)
	createTestUser(t, db, "admin", "secret123", models.RoleAdmin)
	token := loginAs(t, app, "admin", "secret123")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/productions/", token, map[string]interface{}{
		"name": "Arena Show",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/items/", token, map[string]interface{}{
		"inventory_id": "INV-7001",
		"name":         "Followspot",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/productions/1/items", token, map[string]interface{}{
		"inventory_id": "INV-7001",
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/productions/1/items/INV-7001", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 unassigning item, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/productions/1/items/INV-7001", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 for already unassigned item, got %d", resp.StatusCode)
	}

	var item models.Item
	if err := db.Where("inventory_id = ?", "INV-7001").First(&item).Error; err != nil {
		t.Fatalf("expected item to survive unassignment: %v", err)
	}
}
