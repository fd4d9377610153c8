package model

import (
	"time"

	"github.com/google/uuid"
)

// RollPreset is a saved roll size, optionally tied to a catalog item.
type RollPreset struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	CreatedAt   string      `json:"created_at"`
	Measurement Measurement `json:"measurement"`
	Catalog     CatalogInfo `json:"catalog"`
}

// NewRollPreset validates m and creates a preset with a generated ID.
func NewRollPreset(name string, m Measurement, info CatalogInfo) (RollPreset, error) {
	if err := m.Validate(); err != nil {
		return RollPreset{}, err
	}
	return RollPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Measurement: m,
		Catalog:     info,
	}, nil
}

// Record computes the preset with opts and appends it to h.
func (p RollPreset) Record(h *History, opts Options) (HistoryEntry, error) {
	return Record(h, p.Measurement.OuterCM, p.Measurement.InnerCM, p.Measurement.ThicknessMM, opts, p.Catalog)
}

// DefaultPresets returns a few common roll sizes.
func DefaultPresets() []RollPreset {
	sizes := []struct {
		name string
		m    Measurement
	}{
		{"Standard 0.45 mm roll", Measurement{OuterCM: 60, InnerCM: 7.6, ThicknessMM: 0.45}},
		{"Standard 1 mm roll", Measurement{OuterCM: 60, InnerCM: 7.6, ThicknessMM: 1}},
		{"Heavy 2 mm roll", Measurement{OuterCM: 70, InnerCM: 15, ThicknessMM: 2}},
	}
	presets := make([]RollPreset, 0, len(sizes))
	for _, s := range sizes {
		p, err := NewRollPreset(s.name, s.m, CatalogInfo{})
		if err != nil {
			continue
		}
		presets = append(presets, p)
	}
	return presets
}
