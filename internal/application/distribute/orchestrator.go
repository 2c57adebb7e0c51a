// Package distribute runs the full pipeline: load, value, partition,
// validate, annotate, render and record.
package distribute

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/asset-divider/internal/adapters/report"
	"github.com/eshaffer321/asset-divider/internal/adapters/sources"
	"github.com/eshaffer321/asset-divider/internal/domain/allocator"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
	"github.com/eshaffer321/asset-divider/internal/domain/depreciation"
	"github.com/eshaffer321/asset-divider/internal/domain/pricing"
	"github.com/eshaffer321/asset-divider/internal/domain/remark"
	"github.com/eshaffer321/asset-divider/internal/domain/validator"
	"github.com/eshaffer321/asset-divider/internal/infrastructure/storage"
)

// Orchestrator runs the distribution process
type Orchestrator struct {
	loader     Loader
	pricer     *pricing.Pricer
	model      *depreciation.Model
	allocation allocator.Config
	storage    storage.Repository
	logger     *slog.Logger
}

// NewOrchestrator creates a new orchestrator. repo may be nil, in which
// case runs are not recorded.
func NewOrchestrator(
	loader Loader,
	pricer *pricing.Pricer,
	model *depreciation.Model,
	allocation allocator.Config,
	repo storage.Repository,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		loader:     loader,
		pricer:     pricer,
		model:      model,
		allocation: allocation,
		storage:    repo,
		logger:     logger,
	}
}

// Run executes one distribution
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString(), Sources: o.loader.Len()}
	logger := o.logger.With("run_id", result.RunID)

	run := &storage.Run{ID: result.RunID, StartedAt: start, DryRun: opts.DryRun, OutputDir: opts.OutputDir}
	recording := o.startRun(run, logger)

	fail := func(err error) (*Result, error) {
		if recording {
			if ferr := o.storage.FailRun(run.ID, err.Error()); ferr != nil {
				logger.Error("Failed to record run failure", "error", ferr)
			}
		}
		return nil, err
	}

	load, err := o.loader.LoadAll(ctx)
	if err != nil {
		return fail(err)
	}
	result.Assets = load.Assets
	result.Skipped = load.Skipped
	if len(load.Assets) == 0 {
		return fail(ErrNoAssets)
	}
	logger.Info("Loaded inventory",
		"sources", result.Sources,
		"assets", len(load.Assets),
		"skipped", len(load.Skipped),
	)

	o.value(load.Assets, logger)

	partition := allocator.Partition(load.Assets, o.allocation)
	result.Partition = partition

	validation := validator.ValidatePartition(load.Assets, partition)
	result.Validation = validation
	if !validation.Valid {
		return fail(fmt.Errorf("partition failed validation: %s", validation.Reason))
	}

	remark.Annotate(partition)

	logger.Info("Partitioned assets",
		"total_value", partition.TotalValue,
		"target_value", partition.TargetValue,
		"variance_pct", partition.VariancePct,
		"iterations", partition.Iterations,
		"swaps", partition.Swaps,
		"outcome", partition.Outcome(),
	)
	switch {
	case partition.Exhausted:
		logger.Warn("Refinement stopped at iteration limit", "variance_pct", partition.VariancePct)
	case partition.Stalled:
		logger.Warn("Refinement stopped, no swap improves the spread",
			"variance_pct", partition.VariancePct,
			"iterations", partition.Iterations,
		)
	}

	result.Report = report.Build(partition, report.Meta{
		RunID:       result.RunID,
		Title:       opts.Title,
		Currency:    opts.Currency,
		GeneratedAt: start,
		Sources:     result.Sources,
		Skipped:     len(load.Skipped),
	})

	if opts.DryRun {
		logger.Info("Dry run, no reports written")
	} else {
		writers, err := report.NewWriters(opts.Formats)
		if err != nil {
			return fail(err)
		}
		paths, err := report.WriteAll(result.Report, opts.OutputDir, writers)
		if err != nil {
			return fail(err)
		}
		result.Artifacts = paths
		for format, path := range paths {
			logger.Info("Wrote report", "format", format, "path", path)
		}
	}

	result.Duration = time.Since(start)
	if recording {
		o.completeRun(run, result, logger)
	}
	return result, nil
}

// Inspect loads every source without valuing anything
func (o *Orchestrator) Inspect(ctx context.Context) (*sources.Load, error) {
	return o.loader.LoadAll(ctx)
}

// Value prices and depreciates a single asset in place
func (o *Orchestrator) Value(a *asset.Asset) Valuation {
	return valueAsset(o.pricer, o.model, a)
}

func (o *Orchestrator) value(assets []*asset.Asset, logger *slog.Logger) {
	for _, a := range assets {
		v := valueAsset(o.pricer, o.model, a)
		logger.Debug("Valued asset",
			"asset", a.Label(),
			"basis", v.Quote.Basis,
			"market_price", a.MarketPrice,
			"rate", a.DepreciationRate,
			"current_value", a.CurrentValue,
		)
	}
}

func valueAsset(pricer *pricing.Pricer, model *depreciation.Model, a *asset.Asset) Valuation {
	q := pricer.Quote(a)
	a.MarketPrice = q.Price
	return Valuation{Quote: q, Depreciation: model.Apply(a)}
}
