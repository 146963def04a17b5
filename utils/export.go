package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportFilename returns the download name for an exported conversation
func ExportFilename(conversationID, format string) string {
	sanitized := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|' {
			return '_'
		}
		return r
	}, conversationID)

	return fmt.Sprintf("conversation-%s.%s", sanitized, format)
}

// SaveExport writes an export payload into dir, falling back to the default
// export directory when dir is empty. It returns the written path.
func SaveExport(dir, conversationID, format string, payload []byte) (string, error) {
	if dir == "" {
		var err error
		dir, err = GetDefaultExportPath()
		if err != nil {
			return "", fmt.Errorf("failed to resolve export directory: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, ExportFilename(conversationID, format))
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}

// GetDefaultExportPath returns the default export directory
func GetDefaultExportPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	exportDir := filepath.Join(homeDir, "Downloads", "Apex Exports")

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", err
	}

	return exportDir, nil
}
