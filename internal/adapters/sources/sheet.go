package sources

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

type column int

const (
	colSerial column = iota
	colMarker
	colName
	colModel
	colRAM
	colProcessor
	colStorage
	colGeneration
	colGPU
	colUser
	colLocation
	colLevel
	colStatus
	colRemarks
	colCategory
	colDeviceSerial
	colFunction
)

// layout maps fields to 0-based columns for a sheet whose serial column is at
// layout[colSerial]. When a header row puts the serial elsewhere, every
// column shifts by the same amount.
type layout map[column]int

var layouts = map[Kind]layout{
	KindMonitor: {
		colSerial: 0, colName: 1, colModel: 2, colUser: 3, colLocation: 4,
		colLevel: 5, colStatus: 6, colRemarks: 7,
	},
	KindPC: {
		colSerial: 0, colName: 1, colModel: 2, colRAM: 3, colProcessor: 4, colStorage: 5,
		colGeneration: 6, colGPU: 7, colUser: 8, colLocation: 9, colLevel: 10,
		colStatus: 11, colRemarks: 12,
	},
	KindLaptop: {
		colMarker: 0, colSerial: 1, colName: 2, colModel: 3, colRAM: 4, colProcessor: 5,
		colStorage: 6, colGeneration: 7, colGPU: 8, colUser: 9, colLocation: 10,
		colLevel: 11, colStatus: 12, colRemarks: 13,
	},
	KindPrinter: {
		colCategory: 0, colSerial: 1, colName: 2, colModel: 3, colDeviceSerial: 4,
		colFunction: 5, colLocation: 6, colLevel: 7, colStatus: 8, colRemarks: 9,
	},
	KindServer: {
		colSerial: 0, colName: 1, colModel: 2, colDeviceSerial: 3, colStatus: 4, colRemarks: 5,
	},
}

const (
	headerSearchRows = 5
	// Sheets without a recognisable header carry a title row and a header row.
	assumedHeaderRows = 2
	defaultRemark     = "Good"
)

// ParseRows turns raw sheet cells into asset records. Blank rows, section
// markers and repeated header rows are consumed silently; any other row
// that cannot become a valid asset is reported in Skipped.
func ParseRows(source, sheet string, kind Kind, rows [][]string) *LoadResult {
	result := &LoadResult{Source: source, Kind: kind, Sheet: sheet}
	lay, ok := layouts[kind]
	if !ok {
		return result
	}

	p := &rowParser{
		kind:     kind,
		lay:      lay,
		shift:    0,
		purchase: asset.PurchaseNew,
		typ:      kind.AssetType(),
	}

	start := assumedHeaderRows
	if idx, serialCol, found := findHeader(rows); found {
		start = idx + 1
		p.shift = serialCol - lay[colSerial]
	}

	// Laptop section titles can sit above the header row.
	for i := 0; i < start && i < len(rows); i++ {
		p.applyMarker(rows[i])
	}

	skip := func(i int, reason string) {
		result.Skipped = append(result.Skipped, SkippedRow{
			Source: source, Sheet: sheet, Row: i + 1, Reason: reason,
		})
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		if serialCol, ok := headerSerialColumn(row); ok {
			p.shift = serialCol - lay[colSerial]
			continue
		}
		result.Rows++

		marker := p.applyMarker(row)
		rawSerial := p.cell(row, colSerial)
		if rawSerial == "" {
			if !marker {
				skip(i, "missing serial")
			}
			continue
		}

		serial, err := parseSerial(rawSerial)
		if err != nil {
			if !marker {
				skip(i, err.Error())
			}
			continue
		}

		a := p.build(row, serial)
		a.Source = source
		if err := a.Validate(); err != nil {
			skip(i, err.Error())
			continue
		}
		result.Assets = append(result.Assets, a)
	}

	return result
}

type rowParser struct {
	kind     Kind
	lay      layout
	shift    int
	purchase asset.PurchaseType
	typ      asset.Type
}

func (p *rowParser) cell(row []string, c column) string {
	base, ok := p.lay[c]
	if !ok {
		return ""
	}
	idx := base + p.shift
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// applyMarker updates the current section from a marker cell and reports
// whether the row carried one.
func (p *rowParser) applyMarker(row []string) bool {
	switch p.kind {
	case KindLaptop:
		first := strings.ToLower(p.cell(row, colMarker))
		switch {
		case strings.Contains(first, "recondition"), strings.Contains(first, "used"):
			p.purchase = asset.PurchaseReconditioned
			return true
		case strings.Contains(first, "new purchase"):
			p.purchase = asset.PurchaseNew
			return true
		}
	case KindPrinter:
		category := strings.ToLower(p.cell(row, colCategory))
		switch {
		case strings.Contains(category, "scanner"):
			p.typ = asset.TypeScanner
			return true
		case strings.Contains(category, "printer"):
			p.typ = asset.TypePrinter
			return true
		}
	}
	return false
}

func (p *rowParser) build(row []string, serial int) *asset.Asset {
	a := &asset.Asset{
		Type:            p.typ,
		Serial:          serial,
		Name:            p.cell(row, colName),
		Model:           p.cell(row, colModel),
		Processor:       p.cell(row, colProcessor),
		RAMGB:           leadingInt(p.cell(row, colRAM)),
		Generation:      leadingInt(p.cell(row, colGeneration)),
		GPU:             p.cell(row, colGPU),
		Storage:         p.cell(row, colStorage),
		Location:        p.cell(row, colLocation),
		User:            p.cell(row, colUser),
		Function:        p.cell(row, colFunction),
		Category:        p.cell(row, colCategory),
		DeviceSerial:    p.cell(row, colDeviceSerial),
		Level:           p.cell(row, colLevel),
		Status:          p.cell(row, colStatus),
		ConditionRemark: p.cell(row, colRemarks),
	}
	if a.ConditionRemark == "" {
		a.ConditionRemark = defaultRemark
	}
	a.Condition = asset.ResolveCondition(a.ConditionRemark)
	if p.kind == KindLaptop {
		a.PurchaseType = p.purchase
	}
	return a
}

func findHeader(rows [][]string) (index, serialCol int, found bool) {
	for i := 0; i < headerSearchRows && i < len(rows); i++ {
		if col, ok := headerSerialColumn(rows[i]); ok {
			return i, col, true
		}
	}
	return 0, 0, false
}

// headerSerialColumn finds the serial heading in a header row.
func headerSerialColumn(row []string) (int, bool) {
	for i, c := range row {
		v := strings.ToLower(strings.TrimSpace(c))
		switch {
		case strings.Contains(v, "serial") && !strings.Contains(v, "device"):
			return i, true
		case v == "s/l", v == "sl", v == "sl.", v == "s/l.", v == "s.l":
			return i, true
		}
	}
	return 0, false
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseSerial accepts integers and integral floats such as "12.0", which is
// how some exports write whole numbers.
func parseSerial(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("non-numeric serial %q", s)
	}
	return int(f), nil
}

// leadingInt reads the digits at the start of values like "8GB" or "11th".
func leadingInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
