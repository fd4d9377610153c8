package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/cantocalc/internal/catalog"
)

// DefaultCatalogPath returns the path of the cached catalog,
// ~/.cantocalc/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the catalog to the specified JSON file.
func SaveCatalog(path string, cat catalog.Catalog) error {
	if cat.Rows == nil {
		cat.Rows = []catalog.Row{}
	}
	return writeJSON(path, cat)
}

// LoadCatalog reads a cached catalog. A missing file yields an empty catalog.
func LoadCatalog(path string) (catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog.Catalog{Rows: []catalog.Row{}}, nil
		}
		return catalog.Catalog{}, err
	}
	var cat catalog.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return catalog.Catalog{}, err
	}
	if cat.Rows == nil {
		cat.Rows = []catalog.Row{}
	}
	return cat, nil
}

// ImportCatalog loads a CSV or Excel file and merges its rows into existing.
// Rows whose item code is already present are skipped. The load result is
// returned so callers can report errors and warnings; on a failed load
// existing is returned unchanged.
func ImportCatalog(path string, existing catalog.Catalog) (catalog.Catalog, catalog.LoadResult) {
	result := catalog.Load(path)
	if len(result.Catalog.Rows) == 0 {
		return existing, result
	}
	merged, _ := MergeCatalog(existing, result.Catalog)
	merged.Source = result.Catalog.Source
	return merged, result
}

// MergeCatalog appends the rows of incoming whose item code existing lacks
// and reports how many were added.
func MergeCatalog(existing, incoming catalog.Catalog) (catalog.Catalog, int) {
	codes := make(map[string]bool, len(existing.Rows))
	rows := make([]catalog.Row, 0, len(existing.Rows)+len(incoming.Rows))
	for _, r := range existing.Rows {
		codes[r.ItemCode] = true
		rows = append(rows, r)
	}

	added := 0
	for _, r := range incoming.Rows {
		if codes[r.ItemCode] {
			continue
		}
		codes[r.ItemCode] = true
		rows = append(rows, r)
		added++
	}
	existing.Rows = rows
	return existing, added
}
