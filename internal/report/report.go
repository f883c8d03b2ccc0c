// Package report turns an aggregated shopping list into a downloadable
// document. Renderers never reorder their input.
package report

import (
	"fmt"
	"sort"
	"strings"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

const (
	FormatText = "txt"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatPNG  = "png"

	baseFilename = "shopping_list"
	title        = "Shopping list"
)

// Line is one aggregated ingredient group, already in display order.
type Line struct {
	Name   string
	Amount int64
	Unit   string
}

type Document struct {
	Body        []byte
	ContentType string
	Filename    string
}

type Renderer interface {
	Format() string
	Render(lines []Line) (Document, error)
}

// FormatLine renders "<index>. <name> — <amount> <unit>" with a 1-based index.
func FormatLine(index int, l Line) string {
	return fmt.Sprintf("%d. %s — %d %s", index, l.Name, l.Amount, l.Unit)
}

func filename(format string) string {
	return baseFilename + "." + format
}

// Registry resolves a ?format= value to a renderer.
type Registry struct {
	def       string
	renderers map[string]Renderer
}

func NewRegistry(def string, renderers ...Renderer) *Registry {
	r := &Registry{def: def, renderers: map[string]Renderer{}}
	for _, rr := range renderers {
		r.renderers[rr.Format()] = rr
	}
	return r
}

// DefaultRegistry serves txt (default), csv, pdf and png.
func DefaultRegistry() *Registry {
	return NewRegistry(FormatText, TextRenderer{}, CSVRenderer{}, NewPDFRenderer(), NewPNGRenderer())
}

func (r *Registry) Lookup(format string) (Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = r.def
	}
	rr, ok := r.renderers[format]
	if !ok {
		return nil, domainagg.Errorf(
			domainagg.CodeValidation,
			"report.lookup",
			"unsupported format %q (supported: %s)", format, strings.Join(r.Formats(), ", "),
		)
	}
	return rr, nil
}

func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.renderers))
	for f := range r.renderers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
