package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cantocalc/internal/model"
)

const historySheet = "History"

// buildHistoryWorkbook lays the history out on a single sheet with numeric cells.
func buildHistoryWorkbook(entries []model.HistoryEntry, unit model.Unit) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), historySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := HistoryHeader(unit)
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(historySheet, "A1", &headerRow); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range entries {
		nums := HistoryNumbers(e, unit)
		row := []interface{}{e.Catalog.ItemCode, e.Catalog.ProductName, e.Catalog.Color, nums[0], nums[1], nums[2], nums[3]}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(historySheet, "A", "C", 22); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(historySheet, "D", "G", 18); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteHistoryXLSX writes the history workbook to w.
func WriteHistoryXLSX(w io.Writer, entries []model.HistoryEntry, unit model.Unit) error {
	f, err := buildHistoryWorkbook(entries, unit)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportHistoryXLSX saves the history workbook at path.
func ExportHistoryXLSX(path string, entries []model.HistoryEntry, unit model.Unit) error {
	f, err := buildHistoryWorkbook(entries, unit)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
