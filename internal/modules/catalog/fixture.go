package catalog

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type IngredientFixture struct {
	Name            string `json:"name" yaml:"name"`
	MeasurementUnit string `json:"measurement_unit" yaml:"measurement_unit"`
}

type TagFixture struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Slug  string `json:"slug" yaml:"slug"`
}

// Fixture is one seed file worth of catalog data.
type Fixture struct {
	Ingredients []IngredientFixture `json:"ingredients" yaml:"ingredients"`
	Tags        []TagFixture        `json:"tags" yaml:"tags"`
}

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(filepath.Ext(path), raw)
}

// Parse decodes raw fixture bytes. ext is a file extension with or without
// the leading dot.
//
// JSON and YAML accept either the Fixture object or a bare list of
// ingredients. CSV is ingredients only: name,measurement_unit per row with an
// optional header.
func Parse(ext string, raw []byte) (Fixture, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		return parseStructured(raw, yaml.Unmarshal)
	case "json":
		return parseStructured(raw, json.Unmarshal)
	case "csv":
		return parseCSV(raw)
	default:
		return Fixture{}, fmt.Errorf("unsupported fixture format %q", ext)
	}
}

func parseStructured(raw []byte, unmarshal func([]byte, any) error) (Fixture, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Fixture{}, nil
	}
	var f Fixture
	objErr := unmarshal(raw, &f)
	if objErr == nil {
		return f, nil
	}
	var list []IngredientFixture
	if err := unmarshal(raw, &list); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", objErr)
	}
	return Fixture{Ingredients: list}, nil
}

func parseCSV(raw []byte) (Fixture, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true

	var f Fixture
	for line := 1; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Fixture{}, fmt.Errorf("csv: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		f.Ingredients = append(f.Ingredients, IngredientFixture{Name: rec[0], MeasurementUnit: rec[1]})
	}
	return f, nil
}
