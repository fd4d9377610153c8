package model

import "testing"

func TestDefaultAppConfigMatchesDefaultOptions(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultOptions()

	if cfg.DefaultUnit != defaults.Unit {
		t.Errorf("Unit mismatch: config=%s options=%s", cfg.DefaultUnit, defaults.Unit)
	}
	if cfg.DefaultRoundingStep != defaults.Rounding.Step {
		t.Errorf("RoundingStep mismatch: config=%f options=%f", cfg.DefaultRoundingStep, defaults.Rounding.Step)
	}
	if cfg.DefaultRoundingMode != defaults.Rounding.Mode {
		t.Errorf("RoundingMode mismatch: config=%s options=%s", cfg.DefaultRoundingMode, defaults.Rounding.Mode)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentCatalogs == nil {
		t.Error("RecentCatalogs should not be nil")
	}
}

func TestAppConfigOptions(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultUnit = UnitCentimeters
	cfg.DefaultRoundingStep = 0.5
	cfg.DefaultRoundingMode = RoundCeiling

	opts := cfg.Options()
	if opts.Unit != UnitCentimeters {
		t.Errorf("expected unit cm, got %s", opts.Unit)
	}
	if opts.Rounding.Step != 0.5 || opts.Rounding.Mode != RoundCeiling {
		t.Errorf("unexpected rounding %+v", opts.Rounding)
	}
}

func TestAppConfigOptionsEmptyUnit(t *testing.T) {
	cfg := AppConfig{}
	if cfg.Options().Unit != UnitMeters {
		t.Errorf("expected empty unit to default to m, got %s", cfg.Options().Unit)
	}
}

func TestApplyOptions(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.ApplyOptions(Options{Unit: UnitCentimeters, Rounding: RoundingPolicy{Step: 1, Mode: RoundFloor}})

	if cfg.DefaultUnit != UnitCentimeters {
		t.Errorf("expected unit cm, got %s", cfg.DefaultUnit)
	}
	if cfg.DefaultRoundingStep != 1 {
		t.Errorf("expected step 1, got %f", cfg.DefaultRoundingStep)
	}
	if cfg.DefaultRoundingMode != RoundFloor {
		t.Errorf("expected mode floor, got %s", cfg.DefaultRoundingMode)
	}
}

func TestAddRecentCatalog(t *testing.T) {
	cfg := DefaultAppConfig()
	for _, p := range []string{"a.xlsx", "b.xlsx", "c.xlsx", "d.xlsx", "e.xlsx", "f.xlsx"} {
		cfg.AddRecentCatalog(p)
	}
	if len(cfg.RecentCatalogs) != maxRecentCatalogs {
		t.Fatalf("expected %d recent catalogs, got %d", maxRecentCatalogs, len(cfg.RecentCatalogs))
	}
	if cfg.RecentCatalogs[0] != "f.xlsx" {
		t.Errorf("expected most recent first, got %s", cfg.RecentCatalogs[0])
	}

	cfg.AddRecentCatalog("d.xlsx")
	if cfg.RecentCatalogs[0] != "d.xlsx" {
		t.Errorf("expected d.xlsx moved to front, got %s", cfg.RecentCatalogs[0])
	}
	seen := map[string]int{}
	for _, p := range cfg.RecentCatalogs {
		seen[p]++
	}
	if seen["d.xlsx"] != 1 {
		t.Errorf("expected d.xlsx once, got %d", seen["d.xlsx"])
	}
}
