package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/xuri/excelize/v2"
)

// SheetName is the only sheet of the workbook.
const SheetName = "Consolidated Report"

const (
	titleRow     = 1
	headerRow    = 3
	firstDataRow = 4
)

// WorkbookRenderer writes an .xlsx workbook.
type WorkbookRenderer struct{}

func (r *WorkbookRenderer) Render(w io.Writer, records []dto.ReportRecord, day time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := Headers()
	styles, err := newWorkbookStyles(f)
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	titleCell := cell(1, titleRow)
	if err := f.MergeCell(SheetName, titleCell, lastCol+fmt.Sprint(titleRow)); err != nil {
		return fmt.Errorf("failed to merge title: %w", err)
	}
	if err := f.SetCellValue(SheetName, titleCell, Title(day)); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, titleCell, titleCell, styles.title); err != nil {
		return err
	}
	if err := f.SetRowHeight(SheetName, titleRow, 24); err != nil {
		return err
	}

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, ColumnWidth(h)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
		if err := f.SetCellValue(SheetName, cell(i+1, headerRow), h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetName, cell(1, headerRow), lastCol+fmt.Sprint(headerRow), styles.header); err != nil {
		return err
	}

	for i, row := range rows(records) {
		r := firstDataRow + i
		for j, v := range row {
			if j == 0 {
				err = f.SetCellValue(SheetName, cell(1, r), i+1)
			} else {
				err = f.SetCellValue(SheetName, cell(j+1, r), v)
			}
			if err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}
	if len(records) > 0 {
		last := firstDataRow + len(records) - 1
		if err := f.SetCellStyle(SheetName, cell(1, firstDataRow), lastCol+fmt.Sprint(last), styles.body); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		TopLeftCell: "B1",
		ActivePane:  "topRight",
	}); err != nil {
		return fmt.Errorf("failed to freeze first column: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

type workbookStyles struct {
	title, header, body int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var s workbookStyles
	var err error
	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create title style: %w", err)
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	s.body, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return s, fmt.Errorf("failed to create body style: %w", err)
	}
	return s, nil
}
