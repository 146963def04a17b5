package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected default base URL, got: %s", cfg.API.BaseURL)
	}
	if cfg.Auth.RedirectTo != "/dashboard" {
		t.Errorf("Expected redirect /dashboard, got: %s", cfg.Auth.RedirectTo)
	}
	if cfg.Notifications.ToastDuration() != 5*time.Second {
		t.Errorf("Expected 5s toast, got: %v", cfg.Notifications.ToastDuration())
	}
	if cfg.Notifications.ExitDelay() != 300*time.Millisecond {
		t.Errorf("Expected 300ms exit delay, got: %v", cfg.Notifications.ExitDelay())
	}
	if !filepath.IsAbs(cfg.Data.DBPath) {
		t.Errorf("Expected db path to be made absolute, got: %s", cfg.Data.DBPath)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"api": {"base_url": "https://kb.example.com/", "timeout_seconds": 12}, "ui": {"theme": "light"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("APEX_AUTH_REDIRECT_TO", "/achievements")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.BaseURL != "https://kb.example.com" {
		t.Errorf("Expected trailing slash trimmed, got: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout() != 12*time.Second {
		t.Errorf("Expected 12s timeout, got: %v", cfg.API.Timeout())
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Expected light theme, got: %s", cfg.UI.Theme)
	}
	if cfg.Auth.RedirectTo != "/achievements" {
		t.Errorf("Expected env override, got: %s", cfg.Auth.RedirectTo)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	cfg.UI.WindowWidth = 900

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.UI.WindowWidth != 900 {
		t.Errorf("Expected window width 900, got: %d", loaded.UI.WindowWidth)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	if cfg.UI.Theme != "dark" || cfg.UI.FontSize != 14 {
		t.Errorf("Expected dark theme at 14pt, got: %s at %d", cfg.UI.Theme, cfg.UI.FontSize)
	}
	if cfg.Notifications.ToastSeconds != 5 || cfg.Notifications.ExitDelayMS != 300 {
		t.Errorf("Expected 5s/300ms toast defaults, got: %d/%d", cfg.Notifications.ToastSeconds, cfg.Notifications.ExitDelayMS)
	}
}
