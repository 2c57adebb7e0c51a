package report

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// JSONFile is the name of the JSON artifact
const JSONFile = "allocation.json"

// JSONWriter writes the full report as indented JSON
type JSONWriter struct{}

func NewJSONWriter() *JSONWriter { return &JSONWriter{} }

func (w *JSONWriter) Name() string { return FormatJSON }

func (w *JSONWriter) Write(rep *Report, dir string) (string, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, JSONFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
