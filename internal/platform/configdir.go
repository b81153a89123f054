package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the per-user configuration directory for appName.
// It falls back to the OS convention under the home directory when the
// environment does not define one.
func ConfigDir(appName string) (string, error) {
	name := strings.TrimSpace(appName)
	if name == "" {
		return "", fmt.Errorf("config dir: app name is empty")
	}

	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		homeDir, homeErr := os.UserHomeDir()
		if homeErr != nil {
			if err != nil {
				return "", fmt.Errorf("config dir: %w", err)
			}
			return "", fmt.Errorf("config dir: %w", homeErr)
		}
		base = fallbackConfigDir(homeDir)
	}
	return filepath.Join(base, name), nil
}
