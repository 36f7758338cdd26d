package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	margin    = 10.0
	rowHeight = 8.0
	fullWidth = 190.0
)

// document wraps an A4 fpdf page with the table styling shared by all reports.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(title string) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetCreator("hr-console", false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (d *document) heading(text string) {
	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.CellFormat(0, 10, d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.Ln(2)
}

func (d *document) section(text string) {
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.CellFormat(0, 9, d.tr(text), "", 1, "L", false, 0, "")
}

func (d *document) field(f Field) {
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(30, rowHeight, d.tr(f.Label+":"), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 12)
	d.pdf.MultiCell(0, rowHeight, d.tr(f.Value), "", "L", false)
}

func (d *document) header(cols []Column) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.SetFillColor(41, 128, 185)
	d.pdf.SetTextColor(255, 255, 255)
	for _, c := range cols {
		d.pdf.CellFormat(c.Width, rowHeight, d.tr(c.Header), "1", 0, "L", true, 0, "")
	}
	d.pdf.Ln(-1)
}

// table draws cols and rows, repeating the header after a page break.
func (d *document) table(cols []Column, rows [][]string) {
	d.header(cols)
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(0, 0, 0)

	if len(rows) == 0 {
		d.pdf.CellFormat(fullWidth, rowHeight, "No records.", "1", 1, "C", false, 0, "")
		return
	}

	_, pageHeight := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	for i, row := range rows {
		if d.pdf.GetY()+rowHeight > pageHeight-bottom {
			d.pdf.AddPage()
			d.header(cols)
			d.pdf.SetFont("Helvetica", "", 10)
			d.pdf.SetTextColor(0, 0, 0)
		}
		fill := i%2 == 1
		d.pdf.SetFillColor(245, 245, 245)
		for j, c := range cols {
			text := ""
			if j < len(row) {
				text = d.fit(row[j], c.Width-2)
			}
			d.pdf.CellFormat(c.Width, rowHeight, text, "1", 0, "L", fill, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

// fit translates s and truncates it with "..." to fit width.
// The translated text is single-byte cp1252, so it is cut on bytes.
func (d *document) fit(s string, width float64) string {
	s = d.tr(s)
	if d.pdf.GetStringWidth(s) <= width {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && d.pdf.GetStringWidth(string(b)+"...") > width {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}

func (d *document) write(w io.Writer) error {
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
