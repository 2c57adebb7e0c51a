package sources

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// CSVSource reads an inventory exported as CSV
type CSVSource struct {
	name string
	kind Kind
	path string
}

// NewCSVSource creates a CSV source
func NewCSVSource(name string, kind Kind, path string) *CSVSource {
	return &CSVSource{name: name, kind: kind, path: path}
}

func (s *CSVSource) Name() string { return s.name }
func (s *CSVSource) Kind() Kind   { return s.kind }

// Load reads every record of the file and parses it
func (s *CSVSource) Load(ctx context.Context) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Exports pad rows unevenly
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", s.path, err)
	}
	return ParseRows(s.name, "", s.kind, rows), nil
}
