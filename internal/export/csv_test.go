package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cantocalc/internal/model"
)

func TestHistoryHeader_Unit(t *testing.T) {
	assert.Equal(t, "Length (m)", HistoryHeader(model.UnitMeters)[6])
	assert.Equal(t, "Length (cm)", HistoryHeader(model.UnitCentimeters)[6])
	assert.Equal(t, "Length (m)", HistoryHeader("")[6])
}

func TestWriteHistoryCSV_Rows(t *testing.T) {
	entries := buildTestEntries(t)

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, entries, model.UnitMeters))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, HistoryHeader(model.UnitMeters), records[0])
	assert.Equal(t, []string{"", "", "", "60.00", "7.60", "0.45", "618.24"}, records[1])
	// Rounded headline length is used when the export unit matches.
	assert.Equal(t, []string{"CB-2201", "Canto PVC 22x1", "Roble", "25.00", "8.00", "1.00", "45.00"}, records[2])
	assert.Equal(t, []string{"", "", "", "12.00", "0.00", "2.00", "5.65"}, records[3])
}

func TestWriteHistoryCSV_Centimeters(t *testing.T) {
	entries := buildTestEntries(t)

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, entries, model.UnitCentimeters))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Length (cm)", records[0][6])
	assert.Equal(t, "61823.75", records[1][6])
	// Rounding was applied in meters, so the raw centimeter value is reported.
	assert.Equal(t, "4406.08", records[2][6])
}

func TestWriteHistoryCSV_EmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, nil, model.UnitMeters))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, HistoryHeader(model.UnitMeters), records[0])
}

func TestWriteHistoryCSV_QuotesFields(t *testing.T) {
	h := model.NewHistory()
	info := model.CatalogInfo{ItemCode: "X1", ProductName: `Canto "premium", 22mm`, Color: "Blanco"}
	_, err := model.Record(h, 20, 5, 1, model.DefaultOptions(), info)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, h.Entries(), model.UnitMeters))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, info.ProductName, records[1][1])
}

func TestExportHistoryCSV_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.csv")
	require.NoError(t, ExportHistoryCSV(path, buildTestEntries(t), model.UnitMeters))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Item Code,Product,Color")
	assert.Contains(t, string(data), "CB-2201")
}
