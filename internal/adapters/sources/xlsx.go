package sources

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads one worksheet of an Excel workbook
type XLSXSource struct {
	name  string
	kind  Kind
	path  string
	sheet string
}

// NewXLSXSource creates a workbook source. An empty sheet selects the first
// worksheet.
func NewXLSXSource(name string, kind Kind, path, sheet string) *XLSXSource {
	return &XLSXSource{name: name, kind: kind, path: path, sheet: sheet}
}

func (s *XLSXSource) Name() string { return s.name }
func (s *XLSXSource) Kind() Kind   { return s.kind }

// Load opens the workbook and parses the selected sheet
func (s *XLSXSource) Load(ctx context.Context) (*LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", s.path)
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("workbook %s has no sheet %q", s.path, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return ParseRows(s.name, sheet, s.kind, rows), nil
}
