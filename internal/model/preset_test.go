package model

import (
	"errors"
	"testing"
)

func TestNewRollPreset(t *testing.T) {
	p, err := NewRollPreset("Roble 22mm", Measurement{OuterCM: 55, InnerCM: 7.6, ThicknessMM: 0.45}, CatalogInfo{ItemCode: "RB22"})
	if err != nil {
		t.Fatalf("NewRollPreset failed: %v", err)
	}
	if len(p.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", p.ID)
	}
	if p.Catalog.ItemCode != "RB22" {
		t.Errorf("expected item code RB22, got %s", p.Catalog.ItemCode)
	}
}

func TestNewRollPresetInvalid(t *testing.T) {
	_, err := NewRollPreset("bad", Measurement{OuterCM: 5, InnerCM: 10, ThicknessMM: 1}, CatalogInfo{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRollPresetRecord(t *testing.T) {
	p, err := NewRollPreset("ref", Measurement{OuterCM: 100, InnerCM: 50, ThicknessMM: 1}, CatalogInfo{Color: "Blanco"})
	if err != nil {
		t.Fatal(err)
	}
	h := NewHistory()
	e, err := p.Record(h, DefaultOptions())
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", h.Len())
	}
	if e.Catalog.Color != "Blanco" {
		t.Errorf("expected catalog color carried over, got %q", e.Catalog.Color)
	}
}

func TestDefaultPresetsAreValid(t *testing.T) {
	presets := DefaultPresets()
	if len(presets) == 0 {
		t.Fatal("expected default presets")
	}
	ids := map[string]bool{}
	for _, p := range presets {
		if err := p.Measurement.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", p.Name, err)
		}
		if ids[p.ID] {
			t.Errorf("duplicate preset ID %s", p.ID)
		}
		ids[p.ID] = true
	}
}
