// Package asset defines the normalized asset record shared by the loader,
// valuation, partitioning and reporting stages.
//
// A record is created by a source from one spreadsheet row, enriched in place
// by pricing and depreciation, tagged with a group by the allocator and
// finally annotated with a remark. Nothing outlives a single run except the
// rendered artifacts.
package asset

import (
	"fmt"
	"strings"
)

// Type is the kind of physical asset.
type Type string

const (
	TypeLaptop       Type = "Laptop"
	TypePC           Type = "PC"
	TypeMonitor      Type = "Monitor"
	TypePrinter      Type = "Printer"
	TypeScanner      Type = "Scanner"
	TypeServerDevice Type = "Server Device"
)

// Types returns every asset type in report order.
func Types() []Type {
	return []Type{TypeLaptop, TypePC, TypeMonitor, TypePrinter, TypeScanner, TypeServerDevice}
}

// Order is the position of t in report order, or len(Types()) for unknown types.
func (t Type) Order() int {
	for i, known := range Types() {
		if known == t {
			return i
		}
	}
	return len(Types())
}

// Valid reports whether t is one of the known asset types.
func (t Type) Valid() bool {
	return t.Order() < len(Types())
}

// PriceCategory is the price table category used for this type.
// Printers and scanners share one table, as do all server room devices.
func (t Type) PriceCategory() string {
	switch t {
	case TypeLaptop:
		return "laptop"
	case TypePC:
		return "pc"
	case TypeMonitor:
		return "monitor"
	case TypePrinter, TypeScanner:
		return "printer"
	case TypeServerDevice:
		return "server"
	default:
		return strings.ToLower(string(t))
	}
}

// ParseType maps sheet names and config kinds onto a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "laptop", "laptops":
		return TypeLaptop, nil
	case "pc", "desktop", "desktop pc", "pcs":
		return TypePC, nil
	case "monitor", "monitors":
		return TypeMonitor, nil
	case "printer", "printers", "printer scaneer", "printer scanner":
		return TypePrinter, nil
	case "scanner", "scanners":
		return TypeScanner, nil
	case "server", "server device", "server room", "servers":
		return TypeServerDevice, nil
	}
	return "", fmt.Errorf("unknown asset type %q", s)
}

// PurchaseType distinguishes new laptops from reconditioned ones.
type PurchaseType string

const (
	PurchaseNew           PurchaseType = "New"
	PurchaseReconditioned PurchaseType = "Reconditioned"
)

// Group is one of the three output partitions.
type Group string

const (
	GroupA Group = "A"
	GroupB Group = "B"
	GroupC Group = "C"
)

// Groups returns the partitions in precedence order.
func Groups() []Group {
	return []Group{GroupA, GroupB, GroupC}
}

// Asset is one physical item from an inventory sheet.
type Asset struct {
	Type   Type   `json:"asset_type" validate:"asset_type"`
	Serial int    `json:"serial" validate:"gt=0"`
	Name   string `json:"name" validate:"required"`
	Model  string `json:"model,omitempty"`

	// Compute assets
	Processor  string `json:"processor,omitempty"`
	RAMGB      int    `json:"ram_gb,omitempty" validate:"gte=0"`
	Generation int    `json:"generation,omitempty" validate:"gte=0"`
	GPU        string `json:"gpu,omitempty"`
	Storage    string `json:"storage,omitempty"`

	// Assigned equipment
	Location string `json:"location,omitempty"`
	User     string `json:"user,omitempty"`

	// Printers, scanners and server room devices
	Function     string `json:"function,omitempty"`
	Category     string `json:"category,omitempty"`
	DeviceSerial string `json:"device_serial,omitempty"`

	Level  string `json:"level,omitempty"`
	Status string `json:"status,omitempty"`

	PurchaseType    PurchaseType `json:"purchase_type,omitempty"`
	ConditionRemark string       `json:"condition_remark"`
	Condition       Condition    `json:"condition"`

	Source   string `json:"source,omitempty"`
	// Sequence is the position in the merged load; value ties are broken by it.
	Sequence int    `json:"-"`

	// Populated by valuation, partitioning and remark generation.
	MarketPrice      int64   `json:"market_price"`
	CurrentValue     float64 `json:"current_value"`
	DepreciationRate string  `json:"depreciation_rate"`
	RemarkCategory   string  `json:"remark_category"`
	Group            Group   `json:"group,omitempty"`
	AllocationRemark string  `json:"allocation_remark,omitempty"`
}

// IsReconditioned reports whether a laptop was bought reconditioned, either
// from its sheet section or from a "recondition" note in any text column.
func (a *Asset) IsReconditioned() bool {
	if a.Type != TypeLaptop {
		return false
	}
	if a.PurchaseType == PurchaseReconditioned {
		return true
	}
	for _, field := range []string{a.Name, a.Model, a.ConditionRemark, a.Status, a.Location, a.User, a.Level} {
		if strings.Contains(strings.ToLower(field), "recondition") {
			return true
		}
	}
	return false
}

// Label is a short human identifier such as "Laptop #12 Dell P106F".
func (a *Asset) Label() string {
	label := fmt.Sprintf("%s #%d %s", a.Type, a.Serial, a.Name)
	if a.Model != "" {
		label += " " + a.Model
	}
	return label
}

// TotalValue sums CurrentValue across assets.
func TotalValue(assets []*Asset) float64 {
	var total float64
	for _, a := range assets {
		total += a.CurrentValue
	}
	return total
}

// CountByType tallies assets per type.
func CountByType(assets []*Asset) map[Type]int {
	counts := make(map[Type]int)
	for _, a := range assets {
		counts[a.Type]++
	}
	return counts
}
