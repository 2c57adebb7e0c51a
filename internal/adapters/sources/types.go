package sources

import (
	"context"
	"fmt"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

// Kind selects the column layout of an inventory sheet
type Kind string

const (
	KindLaptop  Kind = "laptop"
	KindPC      Kind = "pc"
	KindMonitor Kind = "monitor"
	KindPrinter Kind = "printer"
	KindServer  Kind = "server"
)

// ParseKind validates a configured kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := layouts[k]; !ok {
		return "", fmt.Errorf("unknown source kind %q", s)
	}
	return k, nil
}

// AssetType is the type assigned to rows of this kind before any section marker
func (k Kind) AssetType() asset.Type {
	switch k {
	case KindLaptop:
		return asset.TypeLaptop
	case KindPC:
		return asset.TypePC
	case KindMonitor:
		return asset.TypeMonitor
	case KindPrinter:
		return asset.TypePrinter
	default:
		return asset.TypeServerDevice
	}
}

// Source is one inventory sheet that can be loaded into asset records
type Source interface {
	// Name identifies the source in logs, skip reports and asset.Source
	Name() string
	Kind() Kind
	Load(ctx context.Context) (*LoadResult, error)
}

// SkippedRow is a sheet row that could not become an asset
type SkippedRow struct {
	Source string `json:"source"`
	Sheet  string `json:"sheet,omitempty"`
	Row    int    `json:"row"` // 1-based, as shown by spreadsheet tools
	Reason string `json:"reason"`
}

// LoadResult is the parsed content of one source
type LoadResult struct {
	Source  string         `json:"source"`
	Kind    Kind           `json:"kind"`
	Sheet   string         `json:"sheet,omitempty"`
	Rows    int            `json:"rows"` // data rows examined after the header
	Assets  []*asset.Asset `json:"assets"`
	Skipped []SkippedRow   `json:"skipped,omitempty"`
}

// CountByPurchase tallies loaded laptops by purchase type
func (r *LoadResult) CountByPurchase() map[asset.PurchaseType]int {
	counts := make(map[asset.PurchaseType]int)
	for _, a := range r.Assets {
		if a.PurchaseType != "" {
			counts[a.PurchaseType]++
		}
	}
	return counts
}
