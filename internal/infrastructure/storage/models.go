package storage

import (
	"time"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

// Run statuses
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// defaultListLimit is used when ListRuns is called with limit <= 0
const defaultListLimit = 20

// Run is one execution of the distribution pipeline
type Run struct {
	ID           string             `json:"id"`
	StartedAt    time.Time          `json:"started_at"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	Status       string             `json:"status"`
	DryRun       bool               `json:"dry_run"`
	SourceCount  int                `json:"source_count"`
	AssetCount   int                `json:"asset_count"`
	SkippedCount int                `json:"skipped_count"`
	TotalValue   float64            `json:"total_value"`
	TargetValue  float64            `json:"target_value"`
	VariancePct  float64            `json:"variance_pct"`
	Iterations   int                `json:"iterations"`
	Swaps        int                `json:"swaps"`
	Converged    bool               `json:"converged"`
	GroupTotals  map[string]float64 `json:"group_totals"`
	OutputDir    string             `json:"output_dir,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// Allocation is the stored assignment of one asset
type Allocation struct {
	RunID            string  `json:"run_id"`
	Group            string  `json:"group"`
	AssetType        string  `json:"asset_type"`
	Serial           int     `json:"serial"`
	Name             string  `json:"name"`
	Model            string  `json:"model,omitempty"`
	Source           string  `json:"source,omitempty"`
	PurchaseType     string  `json:"purchase_type,omitempty"`
	ConditionRemark  string  `json:"condition_remark,omitempty"`
	MarketPrice      int64   `json:"market_price"`
	CurrentValue     float64 `json:"current_value"`
	DepreciationRate string  `json:"depreciation_rate"`
	RemarkCategory   string  `json:"remark_category"`
	AllocationRemark string  `json:"allocation_remark"`
}

// AllocationFromAsset captures the computed fields of a
func AllocationFromAsset(runID string, a *asset.Asset) Allocation {
	return Allocation{
		RunID:            runID,
		Group:            string(a.Group),
		AssetType:        string(a.Type),
		Serial:           a.Serial,
		Name:             a.Name,
		Model:            a.Model,
		Source:           a.Source,
		PurchaseType:     string(a.PurchaseType),
		ConditionRemark:  a.ConditionRemark,
		MarketPrice:      a.MarketPrice,
		CurrentValue:     a.CurrentValue,
		DepreciationRate: a.DepreciationRate,
		RemarkCategory:   a.RemarkCategory,
		AllocationRemark: a.AllocationRemark,
	}
}
