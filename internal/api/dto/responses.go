package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Ledger    bool   `json:"ledger"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse(ledger bool) HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Ledger:    ledger,
	}
}

// RunResponse represents a recorded distribution run.
type RunResponse struct {
	ID           string             `json:"id"`
	StartedAt    string             `json:"started_at"`
	CompletedAt  string             `json:"completed_at,omitempty"`
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
	GroupTotals  map[string]float64 `json:"group_totals,omitempty"`
	OutputDir    string             `json:"output_dir,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// RunListResponse is a page of runs.
type RunListResponse struct {
	Runs  []RunResponse `json:"runs"`
	Count int           `json:"count"`
}

// AllocationResponse is one asset's recorded assignment.
type AllocationResponse struct {
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

// AllocationListResponse lists a run's allocations with per-group totals.
type AllocationListResponse struct {
	RunID       string               `json:"run_id"`
	Group       string               `json:"group,omitempty"`
	Allocations []AllocationResponse `json:"allocations"`
	Count       int                  `json:"count"`
	Totals      map[string]float64   `json:"totals"`
}
