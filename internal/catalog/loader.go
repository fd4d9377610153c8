package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadResult holds the outcome of loading a catalog file.
type LoadResult struct {
	Catalog  Catalog
	Errors   []string
	Warnings []string
}

// OK reports whether the load produced rows without errors.
func (r LoadResult) OK() bool {
	return len(r.Errors) == 0 && len(r.Catalog.Rows) > 0
}

// ColumnMapping maps catalog column roles to their indices in the data.
type ColumnMapping struct {
	ItemCode    int
	ProductName int
	Color       int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"code":    {"item code", "item", "code", "codigo", "código", "cod", "sku", "ref", "reference", "referencia"},
	"product": {"product", "product name", "name", "description", "desc", "producto", "nombre", "descripcion", "descripción"},
	"color":   {"color", "colour", "acabado", "finish"},
}

// delimiterSample caps how many records DetectCSVDelimiter inspects.
const delimiterSample = 20

// DetectCSVDelimiter guesses the field separator among comma, semicolon, tab
// and pipe. The winner splits the first record into at least two fields and
// keeps that width on the most sampled records; wider splits break ties.
// Comma is the fallback.
func DetectCSVDelimiter(data []byte) rune {
	best, bestRows, bestWidth := ',', 0, 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		r := csv.NewReader(bytes.NewReader(data))
		r.Comma = delim
		r.LazyQuotes = true
		r.FieldsPerRecord = -1

		width, rows := 0, 0
		for n := 0; n < delimiterSample; n++ {
			rec, err := r.Read()
			if err != nil {
				break
			}
			if n == 0 {
				width = len(rec)
			}
			if len(rec) == width {
				rows++
			}
		}
		if width < 2 {
			continue
		}
		if rows > bestRows || (rows == bestRows && width > bestWidth) {
			best, bestRows, bestWidth = delim, rows, width
		}
	}
	return best
}

// aliasRoles is headerAliases inverted: alias -> canonical column.
var aliasRoles = func() map[string]string {
	m := make(map[string]string)
	for role, aliases := range headerAliases {
		for _, a := range aliases {
			m[a] = role
		}
	}
	return m
}()

// DetectColumns maps a header row onto catalog columns. When no cell matches
// a known alias the row is data and the positional mapping (code, product,
// color) is returned with false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ItemCode: -1, ProductName: -1, Color: -1}
	slots := map[string]*int{
		"code":    &mapping.ItemCode,
		"product": &mapping.ProductName,
		"color":   &mapping.Color,
	}

	matched := false
	for i, cell := range row {
		role, ok := aliasRoles[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		matched = true
		if slot := slots[role]; *slot == -1 {
			*slot = i
		}
	}

	if !matched {
		return ColumnMapping{ItemCode: 0, ProductName: 1, Color: 2}, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	return strings.TrimSpace(strings.Join(row, "")) == ""
}

// Load reads a catalog file, choosing the reader by extension.
func Load(path string) LoadResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadExcel(path)
	case ".xls":
		return LoadResult{Errors: []string{"Legacy .xls workbooks are not supported, save the file as .xlsx or .csv"}}
	default:
		return LoadCSV(path)
	}
}

// LoadCSV loads a catalog from a CSV file with delimiter auto-detection.
func LoadCSV(path string) LoadResult {
	result := LoadResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	result = LoadCSVReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), delimiter)
	result.Warnings = append(warnings, result.Warnings...)
	result.Catalog.Source = path
	return result
}

// LoadCSVReader loads a catalog from a reader with a known delimiter.
func LoadCSVReader(r io.Reader, delimiter rune) LoadResult {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return LoadResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return LoadResult{Errors: []string{"File is empty"}}
	}
	return loadFromRows(records, "Line")
}

// LoadExcel loads a catalog from the first sheet of an Excel file.
func LoadExcel(path string) LoadResult {
	file, err := os.Open(path)
	if err != nil {
		return LoadResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer file.Close()

	result := LoadExcelReader(file)
	result.Catalog.Source = path
	return result
}

// LoadExcelReader loads a catalog from an Excel workbook stream, e.g. an upload.
func LoadExcelReader(r io.Reader) LoadResult {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return LoadResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	return loadFromWorkbook(f)
}

func loadFromWorkbook(f *excelize.File) LoadResult {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return LoadResult{Errors: []string{"Excel file has no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return LoadResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	if len(rows) == 0 {
		return LoadResult{Errors: []string{"Sheet is empty"}}
	}
	return loadFromRows(rows, "Row")
}

// loadFromRows is the shared logic for CSV and Excel data.
func loadFromRows(rows [][]string, rowPrefix string) LoadResult {
	result := LoadResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		missing := []string{}
		if mapping.ItemCode == -1 {
			missing = append(missing, "Item Code")
		}
		if mapping.ProductName == -1 {
			missing = append(missing, "Product")
		}
		if mapping.Color == -1 {
			missing = append(missing, "Color")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		result.Warnings = append(result.Warnings, "No header row detected, using column order Item Code, Product, Color")
	}

	seen := make(map[string]int)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		r := Row{
			ItemCode:    getCell(row, mapping.ItemCode),
			ProductName: getCell(row, mapping.ProductName),
			Color:       getCell(row, mapping.Color),
		}
		if r.ItemCode == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing item code", rowLabel))
			continue
		}
		if first, dup := seen[r.ItemCode]; dup {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate item code '%s' (first seen on %s %d)", rowLabel, r.ItemCode, rowPrefix, first))
		} else {
			seen[r.ItemCode] = i + 1
		}
		result.Catalog.Rows = append(result.Catalog.Rows, r)
	}

	if len(result.Catalog.Rows) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
