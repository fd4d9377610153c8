package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cantocalc/internal/model"
)

func TestExportHistoryXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, ExportHistoryXLSX(path, buildTestEntries(t), model.UnitMeters))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, HistoryHeader(model.UnitMeters), rows[0])
	assert.Equal(t, "CB-2201", rows[2][0])
	assert.Equal(t, "45", rows[2][6])

	val, err := f.GetCellValue(historySheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "60", val)
}

func TestWriteHistoryXLSX_EmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistoryXLSX(&buf, nil, model.UnitCentimeters))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Length (cm)", rows[0][6])
}
