package config

import (
	"path/filepath"
	"testing"
)

func TestAppConfigRoundTrip(t *testing.T) {
	AppConfigPath = filepath.Join(t.TempDir(), "config.json")

	if IsConfigured() {
		t.Fatal("fresh instance must not report configured")
	}

	want := AppConfig{
		Configured: true,
		DBHost:     "db.internal",
		DBPort:     "5432",
		DBName:     "stagestock",
		DBUser:     "stagestock",
		DBPass:     "hunter22",
		LogoPath:   "uploads/company_logo.png",
	}
	if err := SaveAppConfig(want); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	got := LoadAppConfig()
	if got != want {
		t.Fatalf("config did not round-trip: got %+v, want %+v", got, want)
	}
	if !IsConfigured() {
		t.Fatal("configured instance must report configured")
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	AppConfigPath = filepath.Join(t.TempDir(), "does-not-exist.json")

	cfg := LoadAppConfig()
	if cfg.Configured {
		t.Fatal("missing config file must not count as configured")
	}
}
