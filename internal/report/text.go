package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// TextRenderer writes one newline-terminated line per group. No groups means
// an empty body.
type TextRenderer struct{}

func (TextRenderer) Format() string { return FormatText }

func (TextRenderer) Render(lines []Line) (Document, error) {
	var buf bytes.Buffer
	for i, l := range lines {
		buf.WriteString(FormatLine(i+1, l))
		buf.WriteByte('\n')
	}
	return Document{
		Body:        buf.Bytes(),
		ContentType: "text/plain; charset=utf-8",
		Filename:    filename(FormatText),
	}, nil
}

// CSVRenderer writes a header row followed by one record per group.
type CSVRenderer struct{}

func (CSVRenderer) Format() string { return FormatCSV }

func (CSVRenderer) Render(lines []Line) (Document, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"index", "name", "amount", "unit"}); err != nil {
		return Document{}, err
	}
	for i, l := range lines {
		rec := []string{strconv.Itoa(i + 1), l.Name, strconv.FormatInt(l.Amount, 10), l.Unit}
		if err := w.Write(rec); err != nil {
			return Document{}, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Document{}, err
	}
	return Document{
		Body:        buf.Bytes(),
		ContentType: "text/csv; charset=utf-8",
		Filename:    filename(FormatCSV),
	}, nil
}
