package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cantocalc/internal/model"
)

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	p, err := model.NewRollPreset("Blanco 22x1", model.Measurement{OuterCM: 50, InnerCM: 7.6, ThicknessMM: 1},
		model.CatalogInfo{ItemCode: "CB-22", ProductName: "Canto 22x1", Color: "Blanco"})
	if err != nil {
		t.Fatalf("NewRollPreset failed: %v", err)
	}

	if err := SavePresets(path, []model.RollPreset{p}); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}
	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(loaded))
	}
	if loaded[0].ID != p.ID || loaded[0].Name != "Blanco 22x1" {
		t.Errorf("preset mismatch: %+v", loaded[0])
	}
	if loaded[0].Catalog.ItemCode != "CB-22" {
		t.Errorf("expected catalog code CB-22, got %q", loaded[0].Catalog.ItemCode)
	}
}

func TestLoadPresetsMissingFileReturnsDefaults(t *testing.T) {
	presets, err := LoadPresets(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(presets) != len(model.DefaultPresets()) {
		t.Errorf("expected %d default presets, got %d", len(model.DefaultPresets()), len(presets))
	}
}

func TestLoadPresetsDropsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	body := `[
  {"id":"a","name":"ok","measurement":{"outer_cm":40,"inner_cm":7.6,"thickness_mm":1}},
  {"id":"b","name":"broken","measurement":{"outer_cm":5,"inner_cm":7.6,"thickness_mm":1}}
]`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(presets) != 1 || presets[0].ID != "a" {
		t.Errorf("expected only preset a, got %+v", presets)
	}
}

func TestSavePresetsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	if err := SavePresets(path, nil); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}
	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(presets) != 0 {
		t.Errorf("expected no presets, got %d", len(presets))
	}
}
