package report

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/image/font/gofont/goregular"
)

const pdfFont = "goregular"

// PDFRenderer lays the list out on A4 pages using an embedded UTF-8 font so
// non-Latin ingredient names survive.
type PDFRenderer struct {
	TitleSize float64
	LineSize  float64
}

func NewPDFRenderer() PDFRenderer {
	return PDFRenderer{TitleSize: 16, LineSize: 12}
}

func (PDFRenderer) Format() string { return FormatPDF }

func (p PDFRenderer) Render(lines []Line) (Document, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddUTF8FontFromBytes(pdfFont, "", goregular.TTF)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "", p.TitleSize)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "", p.LineSize)
	for i, l := range lines {
		pdf.CellFormat(0, 8, FormatLine(i+1, l), "", 1, "L", false, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return Document{}, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Document{}, fmt.Errorf("write pdf: %w", err)
	}
	return Document{
		Body:        buf.Bytes(),
		ContentType: "application/pdf",
		Filename:    filename(FormatPDF),
	}, nil
}
