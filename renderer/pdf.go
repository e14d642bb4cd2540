package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 10.0
	pdfLineHeight = 4.0
	pdfFontSize   = 7.0
	pdfCellPad    = 1.0
)

// PDFRenderer writes the report as a landscape A4 table.
type PDFRenderer struct{}

func (r *PDFRenderer) Render(w io.Writer, records []dto.ReportRecord, day time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headers := Headers()
	widths := pdfColumnWidths(pdf, headers)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(Title(day)), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	drawRow(pdf, tr, widths, headers, true)
	_, pageHeight := pdf.GetPageSize()
	for _, row := range rows(records) {
		if pdf.GetY()+rowHeight(pdf, tr, widths, row) > pageHeight-pdfMargin {
			pdf.AddPage()
			drawRow(pdf, tr, widths, headers, true)
		}
		drawRow(pdf, tr, widths, row, false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// pdfColumnWidths scales the spreadsheet widths to the printable page width.
func pdfColumnWidths(pdf *gofpdf.Fpdf, headers []string) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pdfMargin

	var total float64
	for _, h := range headers {
		total += ColumnWidth(h)
	}
	widths := make([]float64, len(headers))
	for i, h := range headers {
		widths[i] = ColumnWidth(h) * usable / total
	}
	return widths
}

func setRowFont(pdf *gofpdf.Fpdf, header bool) {
	if header {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		return
	}
	pdf.SetFont("Helvetica", "", pdfFontSize)
}

func rowHeight(pdf *gofpdf.Fpdf, tr func(string) string, widths []float64, cells []string) float64 {
	// MultiCell wraps inside its own cell margin as well
	inner := 2*pdfCellPad + 2*pdf.GetCellMargin()
	lines := 1
	for i, c := range cells {
		if n := len(pdf.SplitLines([]byte(tr(c)), widths[i]-inner)); n > lines {
			lines = n
		}
	}
	return float64(lines)*pdfLineHeight + 2*pdfCellPad
}

// drawRow draws bordered cells of equal height, wrapping long values.
func drawRow(pdf *gofpdf.Fpdf, tr func(string) string, widths []float64, cells []string, header bool) {
	setRowFont(pdf, header)
	h := rowHeight(pdf, tr, widths, cells)
	x, y := pdf.GetXY()

	for i, c := range cells {
		if header {
			pdf.SetFillColor(217, 225, 242)
			pdf.Rect(x, y, widths[i], h, "FD")
		} else {
			pdf.Rect(x, y, widths[i], h, "D")
		}
		pdf.SetXY(x+pdfCellPad, y+pdfCellPad)
		pdf.MultiCell(widths[i]-2*pdfCellPad, pdfLineHeight, tr(c), "", "L", false)
		x += widths[i]
	}
	pdf.SetXY(pdfMargin, y+h)
}
