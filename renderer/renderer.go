// Package renderer writes the consolidated report of a session to a file
// format an operator can forward.
package renderer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Aashish23092/irbn-report-extractor/dto"
)

// Format is an output file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnknownFormat = errors.New("unknown output format")

// SerialHeader heads the 1-based sequence column prepended to every row.
const SerialHeader = "S.No."

// TitleDateLayout formats the report date in titles.
const TitleDateLayout = "02.01.2006"

// columnWidths is in spreadsheet character units, keyed by header text.
var columnWidths = map[string]float64{
	SerialHeader:                        6,
	dto.FieldUnitName.String():          22,
	dto.FieldReservesDeployed.String():  40,
	dto.FieldDistricts.String():         24,
	dto.FieldStay.String():              26,
	dto.FieldMessing.String():           22,
	dto.FieldCOInteraction.String():     18,
	dto.FieldDisciplinary.String():      20,
	dto.FieldDetained.String():          20,
	dto.FieldTraining.String():          24,
	dto.FieldWelfare.String():           26,
	dto.FieldReservesAvailable.String(): 18,
	dto.FieldIssue.String():             26,
}

const defaultColumnWidth = 20

// Renderer writes records to w. day is the report date shown in the title.
type Renderer interface {
	Render(w io.Writer, records []dto.ReportRecord, day time.Time) error
}

// ParseFormat accepts "xlsx" or "pdf" in any case; empty means xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// For returns the renderer of format f.
func For(f Format) (Renderer, error) {
	switch f {
	case FormatXLSX:
		return &WorkbookRenderer{}, nil
	case FormatPDF:
		return &PDFRenderer{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName returns the download name of a report dated day.
func (f Format) FileName(day time.Time) string {
	return "IRBn_Daily_Report_" + day.Format("2006-01-02") + "." + string(f)
}

// Title is the heading of a report dated day.
func Title(day time.Time) string {
	return "IRBn Daily Report - " + day.Format(TitleDateLayout)
}

// Headers returns the sequence column followed by the schema columns.
func Headers() []string {
	return append([]string{SerialHeader}, dto.Columns()...)
}

// ColumnWidth returns the configured width of header.
func ColumnWidth(header string) float64 {
	if w, ok := columnWidths[header]; ok {
		return w
	}
	return defaultColumnWidth
}

// rows returns the printable cells of every record, sequence number first.
func rows(records []dto.ReportRecord) [][]string {
	out := make([][]string, 0, len(records))
	for i, rec := range records {
		out = append(out, append([]string{fmt.Sprint(i + 1)}, rec.Values()...))
	}
	return out
}
