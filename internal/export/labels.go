package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/cantocalc/internal/model"
)

// LabelInfo holds the data encoded into each roll label's QR code.
type LabelInfo struct {
	EntryID     string     `json:"id"`
	ItemCode    string     `json:"item_code,omitempty"`
	ProductName string     `json:"product_name,omitempty"`
	Color       string     `json:"color,omitempty"`
	OuterCM     float64    `json:"outer_cm"`
	InnerCM     float64    `json:"inner_cm"`
	ThicknessMM float64    `json:"thickness_mm"`
	Length      float64    `json:"length"`
	Unit        model.Unit `json:"unit"`
}

// Label layout for Avery 5160-compatible sheets (3 columns, 10 rows on US Letter).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos converts history entries into label data, reporting
// lengths in unit.
func CollectLabelInfos(entries []model.HistoryEntry, unit model.Unit) []LabelInfo {
	unit = normalizeUnit(unit)
	labels := make([]LabelInfo, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, LabelInfo{
			EntryID:     e.ID,
			ItemCode:    e.Catalog.ItemCode,
			ProductName: e.Catalog.ProductName,
			Color:       e.Catalog.Color,
			OuterCM:     e.Inputs.OuterCM,
			InnerCM:     e.Inputs.InnerCM,
			ThicknessMM: e.Inputs.ThicknessMM,
			Length:      round2(e.Result.LengthIn(unit)),
			Unit:        unit,
		})
	}
	return labels
}

// ExportLabels generates a PDF with one QR-coded label per history entry.
func ExportLabels(path string, entries []model.HistoryEntry, unit model.Unit) error {
	labels := CollectLabelInfos(entries, unit)
	if len(labels) == 0 {
		return fmt.Errorf("no history entries to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.EntryID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, index int, info LabelInfo) error {
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", index, info.EntryID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	title := info.ItemCode
	if title == "" {
		title = "Roll " + info.EntryID
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, tr(truncate(pdf, title, textW)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	length := fmt.Sprintf("%.2f %s", info.Length, info.Unit)
	pdf.CellFormat(textW, 3.5, length, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	dims := fmt.Sprintf("Ø%.1f / Ø%.1f cm, %.2f mm", info.OuterCM, info.InnerCM, info.ThicknessMM)
	pdf.CellFormat(textW, 3, tr(dims), "", 1, "L", false, 0, "")

	if desc := info.ProductName; desc != "" {
		if info.Color != "" {
			desc += " · " + info.Color
		}
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.CellFormat(textW, 3, tr(truncate(pdf, desc, textW)), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
