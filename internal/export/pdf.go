package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/cantocalc/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	diagramSize  = 120.0
)

// columnWidths matches HistoryHeader; the sum fills the printable width.
var columnWidths = []float64{24, 46, 24, 22, 22, 20, 22}

// ExportReportPDF writes the history report to path.
func ExportReportPDF(path string, entries []model.HistoryEntry, unit model.Unit) error {
	pdf, err := buildReport(entries, unit)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WriteReportPDF writes the history report to w.
func WriteReportPDF(w io.Writer, entries []model.HistoryEntry, unit model.Unit) error {
	pdf, err := buildReport(entries, unit)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// buildReport renders a table of every entry followed by a diagram page for
// the most recent one.
func buildReport(entries []model.HistoryEntry, unit model.Unit) (*fpdf.Fpdf, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no history entries to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	y := renderReportHeader(pdf, tr, len(entries))
	y = renderTableHeader(pdf, tr, unit, y)
	for _, e := range entries {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = renderTableHeader(pdf, tr, unit, marginTop)
		}
		renderTableRow(pdf, tr, e, unit, y)
		y += rowHeight
	}

	last := entries[len(entries)-1]
	pdf.AddPage()
	renderDiagramPage(pdf, tr, last, unit)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return pdf, nil
}

func renderReportHeader(pdf *fpdf.Fpdf, tr func(string) string, count int) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Edge Band Length Report", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	info := fmt.Sprintf("Generated %s | Calculations: %d", time.Now().Format("2006-01-02 15:04"), count)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, tr(info), "", 0, "L", false, 0, "")

	return marginTop + headerHeight + 10
}

func renderTableHeader(pdf *fpdf.Fpdf, tr func(string) string, unit model.Unit, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range HistoryHeader(unit) {
		pdf.SetXY(x, y)
		pdf.CellFormat(columnWidths[i], rowHeight, tr(h), "1", 0, "C", true, 0, "")
		x += columnWidths[i]
	}
	return y + rowHeight
}

func renderTableRow(pdf *fpdf.Fpdf, tr func(string) string, e model.HistoryEntry, unit model.Unit, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	x := marginLeft
	for i, field := range HistoryRecord(e, unit) {
		align := "L"
		if i >= 3 {
			align = "R"
		}
		pdf.SetXY(x, y)
		pdf.CellFormat(columnWidths[i], rowHeight, tr(truncate(pdf, field, columnWidths[i]-2)), "1", 0, align, false, 0, "")
		x += columnWidths[i]
	}
}

// renderDiagramPage draws the roll cross-section (outer and core circles) to
// scale with the computed values beneath it.
func renderDiagramPage(pdf *fpdf.Fpdf, tr func(string) string, e model.HistoryEntry, unit model.Unit) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := "Roll Diagram"
	if e.Catalog.ItemCode != "" {
		title = fmt.Sprintf("Roll Diagram: %s", e.Catalog.ItemCode)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	cx := pageWidth / 2
	cy := marginTop + headerHeight + 10 + diagramSize/2
	m := e.Diagram()
	scale := diagramSize / m.OuterCM
	outerR := m.OuterCM / 2 * scale
	innerR := m.InnerCM / 2 * scale

	// Wound material
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	pdf.Circle(cx, cy, outerR, "FD")

	// Core
	if innerR > 0 {
		pdf.SetFillColor(255, 255, 255)
		pdf.Circle(cx, cy, innerR, "FD")
	}

	// Outer diameter dimension line
	dimY := cy + outerR + 8
	pdf.SetLineWidth(0.2)
	pdf.Line(cx-outerR, dimY, cx+outerR, dimY)
	pdf.Line(cx-outerR, dimY-2, cx-outerR, dimY+2)
	pdf.Line(cx+outerR, dimY-2, cx+outerR, dimY+2)
	pdf.SetFont("Helvetica", "", 9)
	label := fmt.Sprintf("Ø %.2f cm", e.Inputs.OuterCM)
	pdf.SetXY(cx-30, dimY+1)
	pdf.CellFormat(60, 5, tr(label), "", 0, "C", false, 0, "")

	y := dimY + 12
	lines := []string{
		fmt.Sprintf("Outer diameter: %.2f cm", e.Inputs.OuterCM),
		fmt.Sprintf("Inner diameter: %.2f cm", e.Inputs.InnerCM),
		fmt.Sprintf("Thickness: %.2f mm", e.Inputs.ThicknessMM),
		fmt.Sprintf("Ring area: %.2f cm²", e.Result.AreaCM2),
		fmt.Sprintf("Length: %.2f m (%.2f cm)", e.Result.LengthM, e.Result.LengthCM),
	}
	if e.Result.Rounding != nil {
		lines = append(lines, fmt.Sprintf("Rounded (%s, step %s %s): %.2f %s",
			e.Result.Rounding.Mode, model.FormatRoundingStep(e.Result.Rounding.Step), e.Result.Unit,
			e.Result.RoundedLength, e.Result.Unit))
	}
	if !e.Catalog.IsEmpty() {
		lines = append(lines, fmt.Sprintf("Product: %s %s", e.Catalog.ProductName, e.Catalog.Color))
	}
	lines = append(lines, fmt.Sprintf("Reported length: %.2f %s", e.Result.LengthIn(normalizeUnit(unit)), normalizeUnit(unit)))

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.SetXY(marginLeft+20, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight-40, 6, tr(line), "", 0, "L", false, 0, "")
		y += 6
	}
}

// truncate shortens s with an ellipsis so it fits in width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
