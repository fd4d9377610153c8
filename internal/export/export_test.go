package export

import (
	"testing"

	"github.com/piwi3910/cantocalc/internal/model"
)

// buildTestEntries records three calculations: a plain one, a catalog-backed
// one rounded up to whole meters and a coreless roll.
func buildTestEntries(t *testing.T) []model.HistoryEntry {
	t.Helper()
	h := model.NewHistory()

	if _, err := model.Record(h, 60, 7.6, 0.45, model.DefaultOptions(), model.CatalogInfo{}); err != nil {
		t.Fatalf("record 1: %v", err)
	}

	rounded := model.Options{
		Unit:     model.UnitMeters,
		Rounding: model.RoundingPolicy{Step: 1, Mode: model.RoundCeiling},
	}
	info := model.CatalogInfo{ItemCode: "CB-2201", ProductName: "Canto PVC 22x1", Color: "Roble"}
	if _, err := model.Record(h, 25, 8, 1, rounded, info); err != nil {
		t.Fatalf("record 2: %v", err)
	}

	if _, err := model.Record(h, 12, 0, 2, model.DefaultOptions(), model.CatalogInfo{}); err != nil {
		t.Fatalf("record 3: %v", err)
	}
	return h.Entries()
}
