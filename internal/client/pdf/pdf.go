// Package pdf encodes an export.Document as an A4 PDF using go-pdf/fpdf.
package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/dmitrijs2005/easyinvoice/internal/client/export"
)

const (
	margin    = 14.0
	rowHeight = 8.0
)

// column widths in mm, matching export.Columns.
var colWidths = []float64{86, 26, 35, 35}

// Renderer writes documents as PDF.
type Renderer struct {
	// Compress toggles stream compression. Tests turn it off to search the
	// output for text.
	Compress bool
}

func NewRenderer() *Renderer {
	return &Renderer{Compress: true}
}

// Render writes doc to w. Each document page becomes one PDF page.
func (r *Renderer) Render(w io.Writer, doc *export.Document) error {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetCompression(r.Compress)
	p.SetMargins(margin, margin, margin)
	p.SetAutoPageBreak(false, margin)
	p.SetTitle(doc.Header.Title, true)
	tr := p.UnicodeTranslatorFromDescriptor("")

	for i, page := range doc.Pages {
		p.AddPage()
		if i == 0 {
			writeHeader(p, tr, doc.Header)
		}
		writeTable(p, tr, doc.Columns, page.Rows)
		if i == len(doc.Pages)-1 {
			writeSummary(p, tr, doc)
		}
		writePageNumber(p, page.Number, len(doc.Pages))
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func writeHeader(p *fpdf.Fpdf, tr func(string) string, h export.Header) {
	p.SetFont("Helvetica", "B", 18)
	p.CellFormat(0, 12, tr(h.Title), "", 1, "L", false, 0, "")
	p.Ln(4)

	p.SetFont("Helvetica", "", 12)
	for _, f := range h.Fields {
		p.CellFormat(0, 7, tr(f.String()), "", 1, "L", false, 0, "")
	}

	y := p.GetY() + 3
	pageW, _ := p.GetPageSize()
	p.SetLineWidth(0.5)
	p.Line(margin, y, pageW-margin, y)
	p.SetY(y + 5)
}

func writeTable(p *fpdf.Fpdf, tr func(string) string, cols []string, rows []export.Row) {
	p.SetFont("Helvetica", "B", 10)
	p.SetFillColor(0, 122, 255)
	p.SetTextColor(255, 255, 255)
	for i, c := range cols {
		p.CellFormat(colWidths[i], rowHeight, tr(c), "1", 0, align(i), true, 0, "")
	}
	p.Ln(-1)

	p.SetFont("Helvetica", "", 10)
	p.SetTextColor(0, 0, 0)
	p.SetLineWidth(0.1)
	for _, row := range rows {
		for i, cell := range row.Cells() {
			p.CellFormat(colWidths[i], rowHeight, tr(cell), "1", 0, align(i), false, 0, "")
		}
		p.Ln(-1)
	}
}

func writeSummary(p *fpdf.Fpdf, tr func(string) string, doc *export.Document) {
	p.Ln(6)
	p.SetFont("Helvetica", "B", 12)
	p.CellFormat(0, 7, tr(doc.TotalLine), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 12)
	p.CellFormat(0, 7, tr(doc.DueDateLine), "", 1, "L", false, 0, "")
	p.CellFormat(0, 7, tr(doc.StatusLine), "", 1, "L", false, 0, "")

	// signature sits bottom-right
	pageW, pageH := p.GetPageSize()
	p.SetFont("Helvetica", "I", 10)
	sig := tr(doc.Signature)
	p.Text(pageW-margin-p.GetStringWidth(sig), pageH-margin, sig)
}

func writePageNumber(p *fpdf.Fpdf, n, total int) {
	if total < 2 {
		return
	}
	_, pageH := p.GetPageSize()
	p.SetFont("Helvetica", "", 8)
	p.Text(margin, pageH-margin/2, fmt.Sprintf("Page %d of %d", n, total))
}

func align(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}
