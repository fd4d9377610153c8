// Package catalog holds the product catalog used to enrich calculations with
// item code, product name and color. Catalogs are loaded from CSV or Excel
// files with flexible, case-insensitive header recognition and are read-only
// once loaded.
package catalog

import (
	"sort"
	"strings"

	"github.com/piwi3910/cantocalc/internal/model"
)

// Row is one catalog product. All fields are opaque strings.
type Row struct {
	ItemCode    string `json:"item_code"`
	ProductName string `json:"product_name"`
	Color       string `json:"color"`
}

// Info converts the row into history metadata.
func (r Row) Info() model.CatalogInfo {
	return model.CatalogInfo{
		ItemCode:    r.ItemCode,
		ProductName: r.ProductName,
		Color:       r.Color,
	}
}

// Catalog is an in-memory product table.
type Catalog struct {
	Source string `json:"source"` // File the rows were loaded from
	Rows   []Row  `json:"rows"`
}

// Len returns the number of rows.
func (c Catalog) Len() int {
	return len(c.Rows)
}

// Search returns rows whose code, name or color contains query,
// ignoring case. An empty query returns every row.
func (c Catalog) Search(query string) []Row {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Row
	for _, r := range c.Rows {
		if q == "" ||
			strings.Contains(strings.ToLower(r.ItemCode), q) ||
			strings.Contains(strings.ToLower(r.ProductName), q) ||
			strings.Contains(strings.ToLower(r.Color), q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterColor returns rows whose color equals color, ignoring case.
// An empty color returns every row.
func (c Catalog) FilterColor(color string) []Row {
	want := strings.TrimSpace(color)
	var out []Row
	for _, r := range c.Rows {
		if want == "" || strings.EqualFold(strings.TrimSpace(r.Color), want) {
			out = append(out, r)
		}
	}
	return out
}

// Query applies Search and FilterColor together.
func (c Catalog) Query(query, color string) []Row {
	return Catalog{Rows: c.Search(query)}.FilterColor(color)
}

// FindByCode returns the first row with exactly the given item code.
func (c Catalog) FindByCode(code string) (Row, bool) {
	code = strings.TrimSpace(code)
	for _, r := range c.Rows {
		if r.ItemCode == code {
			return r, true
		}
	}
	return Row{}, false
}

// Colors returns the distinct non-empty colors, sorted.
func (c Catalog) Colors() []string {
	seen := make(map[string]bool)
	var colors []string
	for _, r := range c.Rows {
		col := strings.TrimSpace(r.Color)
		if col == "" || seen[strings.ToLower(col)] {
			continue
		}
		seen[strings.ToLower(col)] = true
		colors = append(colors, col)
	}
	sort.Strings(colors)
	return colors
}

// Label renders a row for pick lists.
func (r Row) Label() string {
	parts := []string{r.ItemCode}
	if r.ProductName != "" {
		parts = append(parts, r.ProductName)
	}
	if r.Color != "" {
		parts = append(parts, r.Color)
	}
	return strings.Join(parts, " · ")
}
