package report

import (
	"fmt"
	"os"
	"strings"
)

// Writer renders a report into an output directory
type Writer interface {
	// Name is the format name used in configuration
	Name() string
	// Write creates the artifact in dir and returns its path
	Write(rep *Report, dir string) (string, error)
}

// Format names
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// NewWriters returns a writer per requested format, in the given order
func NewWriters(formats []string) ([]Writer, error) {
	writers := make([]Writer, 0, len(formats))
	seen := make(map[string]bool)
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if seen[f] {
			continue
		}
		seen[f] = true

		switch f {
		case FormatHTML:
			writers = append(writers, NewHTMLWriter())
		case FormatJSON:
			writers = append(writers, NewJSONWriter())
		case FormatXLSX:
			writers = append(writers, NewExcelWriter())
		default:
			return nil, fmt.Errorf("unknown report format %q", f)
		}
	}
	return writers, nil
}

// WriteAll runs every writer and returns the artifact paths by format
func WriteAll(rep *Report, dir string, writers []Writer) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make(map[string]string, len(writers))
	for _, w := range writers {
		path, err := w.Write(rep, dir)
		if err != nil {
			return paths, fmt.Errorf("write %s report: %w", w.Name(), err)
		}
		paths[w.Name()] = path
	}
	return paths, nil
}
