package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	API           APIConfig          `json:"api" mapstructure:"api"`
	Auth          AuthConfig         `json:"auth" mapstructure:"auth"`
	UI            UIConfig           `json:"ui" mapstructure:"ui"`
	Notifications NotificationConfig `json:"notifications" mapstructure:"notifications"`
	Data          DataConfig         `json:"data" mapstructure:"data"`
	Log           LogConfig          `json:"log" mapstructure:"log"`
}

// APIConfig describes how to reach the knowledge-base backend
type APIConfig struct {
	BaseURL           string  `json:"base_url" mapstructure:"base_url"`
	TimeoutSeconds    int     `json:"timeout_seconds" mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `json:"burst" mapstructure:"burst"`
}

// AuthConfig represents login behaviour
type AuthConfig struct {
	RedirectTo string `json:"redirect_to" mapstructure:"redirect_to"`
}

// UIConfig represents UI configuration
type UIConfig struct {
	Theme          string `json:"theme" mapstructure:"theme"`
	FontSize       int    `json:"font_size" mapstructure:"font_size"`
	WindowWidth    int    `json:"window_width" mapstructure:"window_width"`
	WindowHeight   int    `json:"window_height" mapstructure:"window_height"`
	MinimizeToTray bool   `json:"minimize_to_tray" mapstructure:"minimize_to_tray"`
	ShowSidebar    bool   `json:"show_sidebar" mapstructure:"show_sidebar"`
	ShowCitations  bool   `json:"show_citations" mapstructure:"show_citations"`
}

// NotificationConfig controls achievement toasts
type NotificationConfig struct {
	ToastSeconds int `json:"toast_seconds" mapstructure:"toast_seconds"`
	ExitDelayMS  int `json:"exit_delay_ms" mapstructure:"exit_delay_ms"`
}

// DataConfig represents data storage configuration
type DataConfig struct {
	DBPath    string `json:"db_path" mapstructure:"db_path"`
	ExportDir string `json:"export_dir" mapstructure:"export_dir"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `json:"level" mapstructure:"level"`
	Path       string `json:"path" mapstructure:"path"`
	MaxSizeMB  int    `json:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `json:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `json:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `json:"compress" mapstructure:"compress"`
}

// Timeout returns the HTTP timeout for API calls
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ToastDuration returns how long an unlock toast stays visible
func (c NotificationConfig) ToastDuration() time.Duration {
	if c.ToastSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ToastSeconds) * time.Second
}

// ExitDelay returns the pause between hiding a toast and removing it
func (c NotificationConfig) ExitDelay() time.Duration {
	if c.ExitDelayMS <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.ExitDelayMS) * time.Millisecond
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_seconds", 60)
	v.SetDefault("api.requests_per_second", 5.0)
	v.SetDefault("api.burst", 10)

	v.SetDefault("auth.redirect_to", "/dashboard")

	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.font_size", 14)
	v.SetDefault("ui.window_width", 1280)
	v.SetDefault("ui.window_height", 800)
	v.SetDefault("ui.minimize_to_tray", false)
	v.SetDefault("ui.show_sidebar", true)
	v.SetDefault("ui.show_citations", true)

	v.SetDefault("notifications.toast_seconds", 5)
	v.SetDefault("notifications.exit_delay_ms", 300)

	v.SetDefault("data.db_path", "./data/apex.db")
	v.SetDefault("data.export_dir", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "./logs/apex-client.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.compress", false)
}

// DefaultConfig returns the configuration used when no file exists yet
func DefaultConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}
	return &config, nil
}

// LoadConfig loads configuration from file and APEX_* environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.Data.DBPath = expandPath(config.Data.DBPath)
	config.Data.ExportDir = expandPath(config.Data.ExportDir)
	config.Log.Path = expandPath(config.Log.Path)
	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")

	return &config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(configPath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ and relative paths
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err == nil {
		return absPath
	}

	return path
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "./config/config.json"
	}

	return filepath.Join(configDir, "apex-client", "config.json")
}

// EnsureDefaultConfig creates a default config file if it doesn't exist
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	config, err := DefaultConfig()
	if err != nil {
		return "", err
	}
	if err := SaveConfig(configPath, config); err != nil {
		return "", err
	}

	return configPath, nil
}
