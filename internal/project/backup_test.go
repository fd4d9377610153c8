package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cantocalc/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultUnit = model.UnitCentimeters
	cfg.Theme = "dark"

	h := model.NewHistory()
	if _, err := model.Record(h, 60, 7.6, 1, model.DefaultOptions(), model.CatalogInfo{ItemCode: "A1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := model.Record(h, 30, 7.6, 0.45, model.DefaultOptions(), model.CatalogInfo{}); err != nil {
		t.Fatal(err)
	}

	if err := ExportAllData(path, cfg, model.DefaultPresets(), h.Entries()); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.Theme != "dark" || backup.Config.DefaultUnit != model.UnitCentimeters {
		t.Errorf("config not restored: %+v", backup.Config)
	}
	if len(backup.Presets) != len(model.DefaultPresets()) {
		t.Errorf("expected %d presets, got %d", len(model.DefaultPresets()), len(backup.Presets))
	}
	if len(backup.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(backup.History))
	}
	if backup.History[0].Catalog.ItemCode != "A1" {
		t.Errorf("history order not preserved: %+v", backup.History[0])
	}
}

func TestRestoreHistoryReplacesEntries(t *testing.T) {
	src := model.NewHistory()
	first, _ := model.Record(src, 60, 7.6, 1, model.DefaultOptions(), model.CatalogInfo{})
	second, _ := model.Record(src, 40, 7.6, 1, model.DefaultOptions(), model.CatalogInfo{})
	backup := BackupData{Version: BackupVersion, History: src.Entries()}

	dst := model.NewHistory()
	if _, err := model.Record(dst, 20, 5, 1, model.DefaultOptions(), model.CatalogInfo{}); err != nil {
		t.Fatal(err)
	}
	backup.RestoreHistory(dst)

	entries := dst.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != first.ID || entries[1].ID != second.ID {
		t.Error("restored history out of order")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{"theme":"dark"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportAllDataOlderBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version":"1.0.0","config":{"theme":"light"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Presets == nil || backup.History == nil || backup.Config.RecentCatalogs == nil {
		t.Error("missing sections should decode as empty, not nil")
	}
}
