package config

import (
	"encoding/json"
	"os"
	"sync"
)

// AppConfig is the runtime state written by the setup wizard. While
// Configured is false only the setup routes do anything useful.
type AppConfig struct {
	Configured bool   `json:"configured"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPass     string `json:"db_pass"`
	LogoPath   string `json:"logo_path"`
}

var (
	// AppConfigPath is a variable so tests can point it at a temp dir.
	AppConfigPath = "config.json"

	appCfg   AppConfig
	appCfgMu sync.Mutex
)

func LoadAppConfig() AppConfig {
	appCfgMu.Lock()
	defer appCfgMu.Unlock()

	data, err := os.ReadFile(AppConfigPath)
	if err != nil {
		return AppConfig{Configured: false}
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{Configured: false}
	}
	appCfg = cfg
	return cfg
}

func SaveAppConfig(cfg AppConfig) error {
	appCfgMu.Lock()
	defer appCfgMu.Unlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(AppConfigPath, data, 0644); err != nil {
		return err
	}
	appCfg = cfg
	return nil
}

func IsConfigured() bool {
	return LoadAppConfig().Configured
}
