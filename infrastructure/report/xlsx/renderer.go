// Package xlsx renders management reports as Excel workbooks.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/franquianet/portal/application/report"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	SummarySheet     = "Relatório Geral"
	PerformanceSheet = "Análise Detalhada"

	defaultSheet    = "Sheet1"
	timestampLayout = "02/01/2006 15:04"
	headerRow       = 3
)

var columnWidths = [3]float64{32, 14, 36}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Format() report.Format { return report.FormatXLSX }

func (r *Renderer) ContentType() string { return ContentType }

func (r *Renderer) Render(doc report.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(PerformanceSheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeSheet(f, styles, SummarySheet, doc.Title, doc.Report.Summary); err != nil {
		return nil, err
	}
	subtitle := doc.Title + " - Gerado em " + doc.GeneratedAt.Format(timestampLayout)
	if err := writeSheet(f, styles, PerformanceSheet, subtitle, doc.Report.Performance); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	created := doc.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z")
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:    doc.Title,
		Subject:  "Relatório gerencial",
		Creator:  "franquianet-portal",
		Created:  created,
		Modified: created,
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title  int
	header int
	cell   int
	value  int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
	}

	var s sheetStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, fmt.Errorf("failed to create title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    border,
	}); err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Border: border}); err != nil {
		return s, fmt.Errorf("failed to create cell style: %w", err)
	}
	if s.value, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, fmt.Errorf("failed to create value style: %w", err)
	}
	return s, nil
}

func writeSheet(f *excelize.File, styles sheetStyles, sheet, title string, rows []report.Row) error {
	if err := f.MergeCell(sheet, "A1", "C1"); err != nil {
		return fmt.Errorf("failed to merge title on %s: %w", sheet, err)
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("failed to write title on %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", styles.title); err != nil {
		return fmt.Errorf("failed to style title on %s: %w", sheet, err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s on %s: %w", col, sheet, err)
		}
	}

	header := report.Columns
	if err := writeRow(f, sheet, headerRow, header[:]); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A3", "C3", styles.header); err != nil {
		return fmt.Errorf("failed to style header on %s: %w", sheet, err)
	}

	for i, row := range rows {
		n := headerRow + 1 + i
		cells := row.Cells()
		if err := writeRow(f, sheet, n, cells[:]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cellName(1, n), cellName(3, n), styles.cell); err != nil {
			return fmt.Errorf("failed to style row %d on %s: %w", n, sheet, err)
		}
		if err := f.SetCellStyle(sheet, cellName(2, n), cellName(2, n), styles.value); err != nil {
			return fmt.Errorf("failed to style row %d on %s: %w", n, sheet, err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, n int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cellName(1, n), &values); err != nil {
		return fmt.Errorf("failed to write row %d on %s: %w", n, sheet, err)
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
