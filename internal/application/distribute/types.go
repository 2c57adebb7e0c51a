package distribute

import (
	"context"
	"errors"
	"time"

	"github.com/eshaffer321/asset-divider/internal/adapters/report"
	"github.com/eshaffer321/asset-divider/internal/adapters/sources"
	"github.com/eshaffer321/asset-divider/internal/domain/allocator"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
	"github.com/eshaffer321/asset-divider/internal/domain/depreciation"
	"github.com/eshaffer321/asset-divider/internal/domain/pricing"
	"github.com/eshaffer321/asset-divider/internal/domain/validator"
)

// ErrNoAssets is returned when the sources yield nothing to divide
var ErrNoAssets = errors.New("no assets to distribute")

// Loader supplies the merged inventory
type Loader interface {
	LoadAll(ctx context.Context) (*sources.Load, error)
	Len() int
}

// Options holds run configuration
type Options struct {
	DryRun    bool
	OutputDir string
	Formats   []string
	Title     string
	Currency  string
}

// Result holds run results
type Result struct {
	RunID      string
	Partition  *allocator.Result
	Assets     []*asset.Asset
	Skipped    []sources.SkippedRow
	Sources    int
	Validation *validator.PartitionValidation
	Report     *report.Report
	// Artifacts maps report format to the written file; empty on dry runs
	Artifacts map[string]string
	Duration  time.Duration
}

// Valuation is a single priced and depreciated asset
type Valuation struct {
	Quote        pricing.Quote
	Depreciation depreciation.Result
}
