// Package export writes calculation history and roll diagrams to CSV, Excel,
// PDF and DXF files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/piwi3910/cantocalc/internal/model"
)

// HistoryHeader returns the column names of an exported history, in order.
func HistoryHeader(unit model.Unit) []string {
	return []string{
		"Item Code",
		"Product",
		"Color",
		"Outer Diameter (cm)",
		"Inner Diameter (cm)",
		"Thickness (mm)",
		fmt.Sprintf("Length (%s)", normalizeUnit(unit)),
	}
}

// HistoryNumbers returns the numeric columns of an entry rounded to two decimals:
// outer diameter, inner diameter, thickness and length in unit.
func HistoryNumbers(e model.HistoryEntry, unit model.Unit) [4]float64 {
	return [4]float64{
		round2(e.Inputs.OuterCM),
		round2(e.Inputs.InnerCM),
		round2(e.Inputs.ThicknessMM),
		round2(e.Result.LengthIn(normalizeUnit(unit))),
	}
}

// HistoryRecord renders one entry as CSV fields.
func HistoryRecord(e model.HistoryEntry, unit model.Unit) []string {
	nums := HistoryNumbers(e, unit)
	record := []string{e.Catalog.ItemCode, e.Catalog.ProductName, e.Catalog.Color}
	for _, n := range nums {
		record = append(record, strconv.FormatFloat(n, 'f', 2, 64))
	}
	return record
}

// WriteHistoryCSV writes a header row followed by one row per entry in order.
// An empty history produces the header row only.
func WriteHistoryCSV(w io.Writer, entries []model.HistoryEntry, unit model.Unit) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(HistoryHeader(unit)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(HistoryRecord(e, unit)); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportHistoryCSV writes the history to a CSV file at path.
func ExportHistoryCSV(path string, entries []model.HistoryEntry, unit model.Unit) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := WriteHistoryCSV(f, entries, unit); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func normalizeUnit(u model.Unit) model.Unit {
	if u == model.UnitCentimeters {
		return u
	}
	return model.UnitMeters
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
