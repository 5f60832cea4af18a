package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a Dataset into a tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with the dataset title, a generated-at line
// and the table body sized per the column layout.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one column")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(data.Title), "", 1, "C", false, 0, "")
	}
	if !data.Generated.IsZero() {
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 6, "Generated "+data.Generated.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	widths := columnWidths(data.Columns)
	pdf.SetFont("Arial", "B", 10)
	for i, col := range data.Columns {
		pdf.CellFormat(widths[i], 8, col.Header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for i := range data.Columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(widths[i], 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths gives zero-width columns an even share of the printable width
// the sized columns leave over.
func columnWidths(cols []Column) []float64 {
	const printable = 190.0
	widths := make([]float64, len(cols))
	used := 0.0
	unsized := 0
	for i, col := range cols {
		widths[i] = col.Width
		if col.Width > 0 {
			used += col.Width
		} else {
			unsized++
		}
	}
	if unsized > 0 {
		share := (printable - used) / float64(unsized)
		if share < 10 {
			share = 10
		}
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}
