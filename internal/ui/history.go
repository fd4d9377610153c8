package ui

import (
	"github.com/piwi3910/cantocalc/internal/export"
	"github.com/piwi3910/cantocalc/internal/model"
)

// historyTable adapts the calculation history to a widget.Table: a header
// row followed by one row per entry, in insertion order.
type historyTable struct {
	history *model.History
	unit    model.Unit
}

func newHistoryTable(h *model.History, unit model.Unit) *historyTable {
	return &historyTable{history: h, unit: unit}
}

// Size returns rows (header included) and columns.
func (t *historyTable) Size() (int, int) {
	return t.history.Len() + 1, len(export.HistoryHeader(t.unit))
}

// Cell returns the text at row, col.
func (t *historyTable) Cell(row, col int) string {
	if row == 0 {
		return export.HistoryHeader(t.unit)[col]
	}
	entries := t.history.Entries()
	if row-1 >= len(entries) {
		return ""
	}
	record := export.HistoryRecord(entries[row-1], t.unit)
	if col >= len(record) {
		return ""
	}
	return record[col]
}
