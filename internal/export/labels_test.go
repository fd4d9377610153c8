package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cantocalc/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestEntries(t), model.UnitMeters); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_EmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportLabels(path, nil, model.UnitMeters); err == nil {
		t.Fatal("expected error for empty history, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	entries := buildTestEntries(t)
	labels := CollectLabelInfos(entries, model.UnitMeters)

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0].EntryID != entries[0].ID {
		t.Errorf("entry id mismatch: got %q, want %q", labels[0].EntryID, entries[0].ID)
	}
	if labels[0].Length != 618.24 {
		t.Errorf("expected length 618.24, got %.2f", labels[0].Length)
	}
	if labels[1].ItemCode != "CB-2201" || labels[1].Color != "Roble" {
		t.Errorf("catalog info not carried: %+v", labels[1])
	}
	if labels[1].Length != 45 {
		t.Errorf("expected rounded length 45, got %.2f", labels[1].Length)
	}
	if labels[2].InnerCM != 0 {
		t.Errorf("expected coreless roll, got inner %.2f", labels[2].InnerCM)
	}
}

func TestCollectLabelInfos_Centimeters(t *testing.T) {
	labels := CollectLabelInfos(buildTestEntries(t), model.UnitCentimeters)
	for _, l := range labels {
		if l.Unit != model.UnitCentimeters {
			t.Errorf("expected unit cm, got %q", l.Unit)
		}
	}
	if labels[0].Length != 61823.75 {
		t.Errorf("expected 61823.75 cm, got %.2f", labels[0].Length)
	}
}

func TestLabelInfo_QRPayload(t *testing.T) {
	labels := CollectLabelInfos(buildTestEntries(t), model.UnitMeters)

	data, err := json.Marshal(labels[1])
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, key := range []string{"id", "item_code", "outer_cm", "inner_cm", "thickness_mm", "length", "unit"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("QR payload missing key %q", key)
		}
	}
	if payload["unit"] != "m" {
		t.Errorf("expected unit m, got %v", payload["unit"])
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	h := model.NewHistory()
	for i := 0; i < 35; i++ {
		if _, err := model.Record(h, 20+float64(i), 7.6, 0.45, model.DefaultOptions(), model.CatalogInfo{}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), "many_labels.pdf")
	if err := ExportLabels(path, h.Entries(), model.UnitMeters); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
}
