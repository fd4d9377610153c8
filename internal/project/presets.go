package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/cantocalc/internal/model"
)

// DefaultPresetsPath returns the path of the roll preset store,
// ~/.cantocalc/presets.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the presets to a JSON file.
func SavePresets(path string, presets []model.RollPreset) error {
	if presets == nil {
		presets = []model.RollPreset{}
	}
	return writeJSON(path, presets)
}

// LoadPresets reads presets from a JSON file. If the file does not exist it
// returns DefaultPresets. Presets whose measurement no longer validates are
// dropped.
func LoadPresets(path string) ([]model.RollPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultPresets(), nil
		}
		return nil, err
	}
	var stored []model.RollPreset
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	presets := make([]model.RollPreset, 0, len(stored))
	for _, p := range stored {
		if p.Measurement.Validate() != nil {
			continue
		}
		presets = append(presets, p)
	}
	return presets, nil
}
