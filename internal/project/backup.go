package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/cantocalc/internal/model"
)

// BackupVersion is written to every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Config    model.AppConfig      `json:"config"`
	Presets   []model.RollPreset   `json:"presets"`
	History   []model.HistoryEntry `json:"history"`
}

// ExportAllData writes config, presets and a snapshot of the history to a
// single JSON file at exportPath.
func ExportAllData(exportPath string, config model.AppConfig, presets []model.RollPreset, history []model.HistoryEntry) error {
	if presets == nil {
		presets = []model.RollPreset{}
	}
	if history == nil {
		history = []model.HistoryEntry{}
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Presets:   presets,
		History:   history,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	normalizeConfig(&backup.Config)
	if backup.Presets == nil {
		backup.Presets = []model.RollPreset{}
	}
	if backup.History == nil {
		backup.History = []model.HistoryEntry{}
	}
	return backup, nil
}

// RestoreHistory replaces the contents of h with the backed up entries,
// keeping their order.
func (b BackupData) RestoreHistory(h *model.History) {
	h.Clear()
	for _, e := range b.History {
		h.Append(e)
	}
}
