package report

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// PNGRenderer draws the list as a single image, tall enough for every line.
type PNGRenderer struct {
	Width      int
	Padding    float64
	LineHeight float64
	FontSize   float64
}

func NewPNGRenderer() PNGRenderer {
	return PNGRenderer{Width: 800, Padding: 32, LineHeight: 28, FontSize: 18}
}

func (PNGRenderer) Format() string { return FormatPNG }

func (p PNGRenderer) Render(lines []Line) (Document, error) {
	titleFace, err := loadFace(p.FontSize * 1.4)
	if err != nil {
		return Document{}, err
	}
	lineFace, err := loadFace(p.FontSize)
	if err != nil {
		return Document{}, err
	}

	height := int(2*p.Padding + p.LineHeight*float64(len(lines)+2))
	dc := gg.NewContext(p.Width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	y := p.Padding + p.LineHeight
	dc.SetFontFace(titleFace)
	dc.DrawString(title, p.Padding, y)
	y += p.LineHeight * 1.5

	dc.SetFontFace(lineFace)
	for i, l := range lines {
		dc.DrawString(FormatLine(i+1, l), p.Padding, y)
		y += p.LineHeight
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return Document{}, fmt.Errorf("encode png: %w", err)
	}
	return Document{
		Body:        buf.Bytes(),
		ContentType: "image/png",
		Filename:    filename(FormatPNG),
	}, nil
}

func loadFace(size float64) (font.Face, error) {
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}
