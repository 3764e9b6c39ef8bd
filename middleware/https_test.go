package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"stagestock/config"

	"github.com/gofiber/fiber/v2"
)

func TestIsLANAddress(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.0.0.5", true},
		{"10.255.1.2", true},
		{"192.168.1.50", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"172.32.0.1", false},
		{"172.15.0.1", false},
		{"8.8.8.8", false},
		{"203.0.113.7", false},
		{"192.169.1.1", false},
		{"11.0.0.1", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsLANAddress(tt.ip); got != tt.want {
			t.Errorf("IsLANAddress(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}
}

func newHTTPSTestApp(t *testing.T, configured bool) *fiber.App {
	t.Helper()

	config.AppConfigPath = filepath.Join(t.TempDir(), "config.json")
	if configured {
		if err := config.SaveAppConfig(config.AppConfig{Configured: true}); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}
	}

	app := fiber.New()
	app.Use(EnforceHTTPS)
	app.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.SendString("pong")
	})
	return app
}

// The test client connects from a non-LAN address, so plaintext requests
// must be redirected once the app is configured.
func TestEnforceHTTPSRedirectsPlaintext(t *testing.T) {
	app := newHTTPSTestApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "http://inventory.example.com/ping", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMovedPermanently {
		t.Fatalf("expected status 301, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "https://inventory.example.com/ping" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestEnforceHTTPSAcceptsForwardedProto(t *testing.T) {
	app := newHTTPSTestApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "http://inventory.example.com/ping", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 behind TLS proxy, got %d", resp.StatusCode)
	}
}

// app.Test connections always come from the same pseudo address, so the
// LAN case is driven through a proxy header the test app is told to trust.
func TestEnforceHTTPSAllowsLANPlaintext(t *testing.T) {
	config.AppConfigPath = filepath.Join(t.TempDir(), "config.json")
	if err := config.SaveAppConfig(config.AppConfig{Configured: true}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	app := fiber.New(fiber.Config{ProxyHeader: "X-Real-IP"})
	app.Use(EnforceHTTPS)
	app.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.SendString("pong")
	})

	tests := []struct {
		ip   string
		want int
	}{
		{"192.168.1.23", http.StatusOK},
		{"10.1.2.3", http.StatusOK},
		{"127.0.0.1", http.StatusOK},
		{"203.0.113.7", http.StatusMovedPermanently},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "http://inventory.example.com/ping", nil)
		req.Header.Set("X-Real-IP", tt.ip)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request from %s failed: %v", tt.ip, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("plaintext request from %s: got status %d, want %d", tt.ip, resp.StatusCode, tt.want)
		}
	}
}

func TestEnforceHTTPSSkippedBeforeSetup(t *testing.T) {
	app := newHTTPSTestApp(t, false)

	req := httptest.NewRequest(http.MethodGet, "http://inventory.example.com/ping", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 before setup, got %d", resp.StatusCode)
	}
}
