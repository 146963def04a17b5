package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	MinFontSize     = 10
	MaxFontSize     = 24
	MaxToastSeconds = 60
)

// SettingsEdit holds the user-editable settings as entered in the settings window
type SettingsEdit struct {
	BaseURL        string
	Theme          string
	FontSize       int
	MinimizeToTray bool
	ExportDir      string
	ToastSeconds   string
}

// EditFromConfig fills a SettingsEdit with the current values
func EditFromConfig(c *Config) SettingsEdit {
	return SettingsEdit{
		BaseURL:        c.API.BaseURL,
		Theme:          c.UI.Theme,
		FontSize:       c.UI.FontSize,
		MinimizeToTray: c.UI.MinimizeToTray,
		ExportDir:      c.Data.ExportDir,
		ToastSeconds:   strconv.Itoa(c.Notifications.ToastSeconds),
	}
}

// Apply validates the edit and copies it into c. c is left unchanged when
// any field is invalid.
func (e SettingsEdit) Apply(c *Config) error {
	baseURL := strings.TrimRight(strings.TrimSpace(e.BaseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API address %q: must be an http or https URL", e.BaseURL)
	}

	theme := strings.ToLower(strings.TrimSpace(e.Theme))
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("invalid theme %q", e.Theme)
	}

	if e.FontSize < MinFontSize || e.FontSize > MaxFontSize {
		return fmt.Errorf("font size must be between %d and %d", MinFontSize, MaxFontSize)
	}

	toast, err := strconv.Atoi(strings.TrimSpace(e.ToastSeconds))
	if err != nil || toast < 1 || toast > MaxToastSeconds {
		return fmt.Errorf("toast duration must be a whole number of seconds between 1 and %d", MaxToastSeconds)
	}

	c.API.BaseURL = baseURL
	c.UI.Theme = theme
	c.UI.FontSize = e.FontSize
	c.UI.MinimizeToTray = e.MinimizeToTray
	c.Data.ExportDir = expandPath(strings.TrimSpace(e.ExportDir))
	c.Notifications.ToastSeconds = toast
	return nil
}
