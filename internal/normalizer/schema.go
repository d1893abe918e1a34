// Package normalizer turns arbitrary imported tables into tables that
// conform to a fixed target column schema: header trimming, renames,
// identifier sanitization, drops, default-filled missing columns and, on
// the strict path, exact column selection.
package normalizer

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrSchema marks an unusable schema configuration.
var ErrSchema = errors.New("invalid schema")

// ColumnSpec is one required target column and the value used to fill it
// when the source has no such column.
type ColumnSpec struct {
	Name    string `yaml:"name" json:"name"`
	Default string `yaml:"default" json:"default"`
}

// Rename maps a source column name to a target column name. Renames are an
// ordered list, not a map: when two sources map to the same target, the
// first declaration wins and later ones are ignored.
type Rename struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Schema is the full normalization configuration.
type Schema struct {
	Target      []ColumnSpec `yaml:"target" json:"target"`
	Renames     []Rename     `yaml:"renames" json:"renames"`
	Drop        []string     `yaml:"drop" json:"drop"`
	Identifiers []string     `yaml:"identifiers" json:"identifiers"`
}

// TargetHeaders returns the target column names in schema order.
func (s Schema) TargetHeaders() []string {
	headers := make([]string, len(s.Target))
	for i, c := range s.Target {
		headers[i] = c.Name
	}
	return headers
}

// Validate checks the schema is usable on the strict path.
func (s Schema) Validate() error {
	if len(s.Target) == 0 {
		return fmt.Errorf("%w: no target columns", ErrSchema)
	}
	seen := make(map[string]bool, len(s.Target))
	for _, c := range s.Target {
		if c.Name == "" {
			return fmt.Errorf("%w: target column with empty name", ErrSchema)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate target column %q", ErrSchema, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// LoadSchema reads a schema from a YAML file.
func LoadSchema(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("%w: read %s: %v", ErrSchema, path, err)
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("%w: parse %s: %v", ErrSchema, path, err)
	}
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// DefaultCatalogSchema is the built-in schema for the product catalog,
// covering the column names the usual supplier exports arrive with.
func DefaultCatalogSchema() Schema {
	return Schema{
		Target: []ColumnSpec{
			{Name: "Code"},
			{Name: "Name"},
			{Name: "Price"},
			{Name: "Stock"},
			{Name: "ForcedMultiple"},
			{Name: "ImageRef"},
		},
		Renames: []Rename{
			{From: "Codigo", To: "Code"},
			{From: "Código", To: "Code"},
			{From: "Descripcion", To: "Name"},
			{From: "Descripción", To: "Name"},
			{From: "Producto", To: "Name"},
			{From: "Precio", To: "Price"},
			{From: "Cantidad", To: "Stock"},
			{From: "Multiplo", To: "ForcedMultiple"},
			{From: "Múltiplo", To: "ForcedMultiple"},
			{From: "Imagen", To: "ImageRef"},
		},
		Drop:        []string{"Rubro", "Observaciones"},
		Identifiers: []string{"Code"},
	}
}
