// Package pdf renders management reports as A4 PDF documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/franquianet/portal/application/report"
)

const ContentType = "application/pdf"

const (
	SummaryHeading     = "Resumo Geral"
	PerformanceHeading = "Análise de Desempenho"

	timestampLayout = "02/01/2006 15:04"
	rowHeight       = 8.0
)

// Column widths in mm; they add up to the printable A4 width.
var columnWidths = [3]float64{70, 35, 85}

type Renderer struct {
	compress bool
}

type Option func(*Renderer)

// WithCompression toggles stream compression. It is on by default.
func WithCompression(on bool) Option {
	return func(r *Renderer) { r.compress = on }
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Format() report.Format { return report.FormatPDF }

func (r *Renderer) ContentType() string { return ContentType }

// Render lays out the document. The creation date comes from
// doc.GeneratedAt so equal documents give equal bytes.
func (r *Renderer) Render(doc report.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 20)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(doc.Title), false)
	pdf.SetCreator("franquianet-portal", false)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Gerado em: "+doc.GeneratedAt.Format(timestampLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeTable(pdf, tr, SummaryHeading, doc.Report.Summary)
	pdf.Ln(8)
	writeTable(pdf, tr, PerformanceHeading, doc.Report.Performance)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *fpdf.Fpdf, tr func(string) string, heading string, rows []report.Row) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, tr(heading), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(217, 225, 242)
	for i, col := range report.Columns {
		pdf.CellFormat(columnWidths[i], rowHeight, tr(col), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for n, row := range rows {
		fill := n%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for i, cell := range row.Cells() {
			align := "L"
			if i == 1 {
				align = "C"
			}
			pdf.CellFormat(columnWidths[i], rowHeight, tr(cell), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
}
