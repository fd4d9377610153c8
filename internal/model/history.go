package model

import (
	"time"

	"github.com/google/uuid"
)

// CatalogInfo is the catalog metadata attached to a history entry.
type CatalogInfo struct {
	ItemCode    string `json:"item_code"`
	ProductName string `json:"product_name"`
	Color       string `json:"color"`
}

// IsEmpty reports whether no catalog row was attached.
func (c CatalogInfo) IsEmpty() bool {
	return c.ItemCode == "" && c.ProductName == "" && c.Color == ""
}

// HistoryEntry records one successful calculation.
type HistoryEntry struct {
	ID        string            `json:"id"`
	CreatedAt string            `json:"created_at"`
	Inputs    Measurement       `json:"inputs"` // Rounded to two decimals
	Raw       Measurement       `json:"raw"`    // As validated
	Catalog   CatalogInfo       `json:"catalog"`
	Result    CalculationResult `json:"result"`
}

// NewHistoryEntry builds an entry from an already validated measurement,
// its result and resolved catalog metadata.
func NewHistoryEntry(m Measurement, result CalculationResult, info CatalogInfo) HistoryEntry {
	if result.Rounding != nil {
		policy := *result.Rounding
		result.Rounding = &policy
	}
	return HistoryEntry{
		ID:        uuid.New().String()[:8],
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Inputs:    m.Rounded(),
		Raw:       m,
		Catalog:   info,
		Result:    result,
	}
}

// Diagram returns the measurement to draw the roll from. Inputs is only for
// display: rounding can make near-equal diameters coincide. Entries without
// Raw, e.g. from older backups, fall back to Inputs.
func (e HistoryEntry) Diagram() Measurement {
	if e.Raw.Validate() == nil {
		return e.Raw
	}
	return e.Inputs
}

// History is the ordered record of calculations in one session.
// It is not safe for concurrent use; owners serialise access.
type History struct {
	entries []HistoryEntry
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds an entry at the end. Entries are never deduplicated.
func (h *History) Append(e HistoryEntry) {
	h.entries = append(h.entries, e)
}

// Clear removes every entry.
func (h *History) Clear() {
	h.entries = nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries in insertion order.
func (h *History) Entries() []HistoryEntry {
	cp := make([]HistoryEntry, len(h.entries))
	copy(cp, h.entries)
	return cp
}

// Last returns the most recent entry.
func (h *History) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Record validates and computes a calculation and appends it to h.
// Nothing is appended when validation fails.
func Record(h *History, outerCM, innerCM, thicknessMM float64, opts Options, info CatalogInfo) (HistoryEntry, error) {
	m, err := Validate(outerCM, innerCM, thicknessMM)
	if err != nil {
		return HistoryEntry{}, err
	}
	entry := NewHistoryEntry(m, ComputeLength(m, opts), info)
	h.Append(entry)
	return entry, nil
}
