// Package storage persists user preferences as YAML.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sorrybot/internal/platform"
	"sorrybot/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	SoundEnabled         *bool   `yaml:"sound_enabled,omitempty"`
	DialogThreshold      float64 `yaml:"dialog_threshold,omitempty"`
	ExistentialThreshold float64 `yaml:"existential_threshold,omitempty"`
	ScrollThreshold      float64 `yaml:"scroll_threshold,omitempty"`
	IdleMinSeconds       int     `yaml:"idle_min_seconds,omitempty"`
	IdleMaxSeconds       int     `yaml:"idle_max_seconds,omitempty"`
	ContentPath          string  `yaml:"content_path,omitempty"`
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, settingsFileName), nil
}

// LoadSettings reads user preferences from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the YAML file at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	sound := settings.SoundEnabled
	fileData := yamlSettings{
		SoundEnabled:         &sound,
		DialogThreshold:      settings.DialogThreshold,
		ExistentialThreshold: settings.ExistentialThreshold,
		ScrollThreshold:      settings.ScrollThreshold,
		IdleMinSeconds:       int(settings.IdleMin / time.Second),
		IdleMaxSeconds:       int(settings.IdleMax / time.Second),
		ContentPath:          settings.ContentPath,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if probability(fileData.DialogThreshold) {
		settings.DialogThreshold = fileData.DialogThreshold
	}
	if probability(fileData.ExistentialThreshold) {
		settings.ExistentialThreshold = fileData.ExistentialThreshold
	}
	if probability(fileData.ScrollThreshold) {
		settings.ScrollThreshold = fileData.ScrollThreshold
	}
	if fileData.IdleMinSeconds > 0 && fileData.IdleMaxSeconds > fileData.IdleMinSeconds {
		settings.IdleMin = time.Duration(fileData.IdleMinSeconds) * time.Second
		settings.IdleMax = time.Duration(fileData.IdleMaxSeconds) * time.Second
	}
	settings.ContentPath = fileData.ContentPath
}

func probability(value float64) bool {
	return value > 0 && value <= 1
}
