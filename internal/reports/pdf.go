package reports

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Column places one table column on the page, in millimetres from the left
// edge.
type Column struct {
	Label string
	X     float64
	Width float64
}

// Layout is the ordered column list of a PDF variant.
type Layout []Column

var (
	InventoryLayout = Layout{
		{Label: "ID", X: 10, Width: 12},
		{Label: "Category", X: 22, Width: 40},
		{Label: "Subcategory", X: 62, Width: 30},
		{Label: "Stock", X: 92, Width: 15},
		{Label: "Name", X: 107, Width: 50},
		{Label: "Description", X: 157, Width: 60},
		{Label: "Brand", X: 217, Width: 35},
		{Label: "Model", X: 252, Width: 35},
	}
	FilteredInventoryLayout = Layout{
		{Label: "Category", X: 10, Width: 40},
		{Label: "Subcategory", X: 50, Width: 32},
		{Label: "Stock", X: 82, Width: 15},
		{Label: "Name", X: 97, Width: 55},
		{Label: "Description", X: 152, Width: 65},
		{Label: "Brand", X: 217, Width: 35},
		{Label: "Model", X: 252, Width: 35},
	}
	DocumentsLayout = Layout{
		{Label: "ID", X: 10, Width: 12},
		{Label: "Equipment", X: 22, Width: 70},
		{Label: "Type", X: 92, Width: 28},
		{Label: "File", X: 120, Width: 100},
		{Label: "Uploaded", X: 220, Width: 30},
		{Label: "Expires", X: 250, Width: 30},
	}
)

const (
	pdfLineHeight = 7.0
	pdfTopMargin  = 15.0
	// rows past this y go to a new page (A4 landscape is 210mm tall)
	pdfPageBreakY = 190.0
)

// RenderPDF draws the table rows at the fixed offsets of layout. The header
// row is repeated on every page. Row cells beyond the layout are ignored.
func RenderPDF(t Table, layout Layout) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	y := 0.0
	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(217, 217, 217)
		for _, col := range layout {
			pdf.SetXY(col.X, y)
			pdf.CellFormat(col.Width, pdfLineHeight, fit(pdf, tr(col.Label), col.Width), "1", 0, "L", true, 0, "")
		}
		y += pdfLineHeight
		pdf.SetFont("Helvetica", "", 8)
	}
	newPage := func() {
		pdf.AddPage()
		y = pdfTopMargin
		header()
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(10, pdfTopMargin)
	pdf.CellFormat(0, 10, tr(t.Title), "", 0, "L", false, 0, "")
	y = pdfTopMargin + 12
	header()

	for _, row := range t.Rows {
		if y+pdfLineHeight > pdfPageBreakY {
			newPage()
		}
		for i, col := range layout {
			var v string
			if i < len(row) {
				v = fmt.Sprint(row[i])
			}
			pdf.SetXY(col.X, y)
			pdf.CellFormat(col.Width, pdfLineHeight, fit(pdf, tr(v), col.Width), "1", 0, "L", false, 0, "")
		}
		y += pdfLineHeight
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fit cuts s so it fits in width, leaving a little padding.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > limit {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}
