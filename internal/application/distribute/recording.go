package distribute

import (
	"log/slog"

	"github.com/eshaffer321/asset-divider/internal/infrastructure/storage"
)

// Ledger errors are logged and never fail a run.

func (o *Orchestrator) startRun(run *storage.Run, logger *slog.Logger) bool {
	if o.storage == nil {
		return false
	}
	if err := o.storage.StartRun(run); err != nil {
		logger.Error("Failed to record run start", "error", err)
		return false
	}
	return true
}

func (o *Orchestrator) completeRun(run *storage.Run, result *Result, logger *slog.Logger) {
	p := result.Partition

	allocations := make([]storage.Allocation, 0, len(result.Assets))
	for _, a := range result.Assets {
		allocations = append(allocations, storage.AllocationFromAsset(run.ID, a))
	}
	if err := o.storage.SaveAllocations(run.ID, allocations); err != nil {
		logger.Error("Failed to save allocations", "error", err)
	}

	run.SourceCount = result.Sources
	run.AssetCount = p.AssetCount
	run.SkippedCount = len(result.Skipped)
	run.TotalValue = p.TotalValue
	run.TargetValue = p.TargetValue
	run.VariancePct = p.VariancePct
	run.Iterations = p.Iterations
	run.Swaps = p.Swaps
	run.Converged = p.Converged
	run.GroupTotals = make(map[string]float64, len(p.Groups))
	for _, g := range p.Groups {
		run.GroupTotals[string(g.Name)] = g.Total
	}

	if err := o.storage.CompleteRun(run); err != nil {
		logger.Error("Failed to record run completion", "error", err)
	}
}
