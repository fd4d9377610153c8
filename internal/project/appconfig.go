// Package project persists desktop preferences, the cached catalog, roll
// presets and full backups as JSON files under ~/.cantocalc.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/cantocalc/internal/model"
)

// DefaultConfigDir returns the directory holding all application files.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".cantocalc")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// writeJSON marshals v with indentation and writes it to path, creating
// missing parent directories.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, data, 0644)
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	normalizeConfig(&config)
	return config, nil
}

// normalizeConfig replaces values an older or hand-edited file may carry
// with usable ones.
func normalizeConfig(config *model.AppConfig) {
	if config.RecentCatalogs == nil {
		config.RecentCatalogs = []string{}
	}
	unit, err := model.ParseUnit(string(config.DefaultUnit))
	if err != nil {
		unit = model.UnitMeters
	}
	config.DefaultUnit = unit
	mode, err := model.ParseRoundingMode(string(config.DefaultRoundingMode))
	if err != nil {
		mode = model.RoundNone
	}
	config.DefaultRoundingMode = mode
	if _, err := model.ParseRoundingStep(model.FormatRoundingStep(config.DefaultRoundingStep)); err != nil {
		config.DefaultRoundingStep = 0
	}
}
