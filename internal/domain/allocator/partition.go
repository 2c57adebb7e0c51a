// Package allocator splits valued assets into three groups of near-equal
// total value.
//
// The partition runs in four phases:
//
//	0. sort by CurrentValue descending (stable, ties keep load order)
//	1. seed: assets worth more than HighValueFraction × target go
//	   round-robin to A, B, C
//	2. greedy: every other asset goes to the group with the lowest running
//	   total, ties broken A < B < C
//	3. refine: while (max − min) / target > Tolerance, swap the first pair
//	   from the top SwapCandidates of the max and min groups that shrinks the
//	   spread, for at most MaxIterations rounds
//
// where target = total / 3. The result is deterministic for a given input
// order and never drops or duplicates an asset.
package allocator

import (
	"cmp"
	"slices"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

// Config controls the optional phases and the refinement budget.
type Config struct {
	SeedHighValue     bool    `yaml:"seed_high_value"`
	HighValueFraction float64 `yaml:"high_value_fraction" validate:"gte=0,lte=1"`
	Refine            bool    `yaml:"refine"`
	Tolerance         float64 `yaml:"tolerance" validate:"gte=0"`
	MaxIterations     int     `yaml:"max_iterations" validate:"gte=0"`
	SwapCandidates    int     `yaml:"swap_candidates" validate:"gte=1"`
}

// DefaultConfig returns the standard partitioning settings.
func DefaultConfig() Config {
	return Config{
		SeedHighValue:     true,
		HighValueFraction: 0.10,
		Refine:            true,
		Tolerance:         0.01,
		MaxIterations:     100,
		SwapCandidates:    5,
	}
}

// Group is one partition with its running total and per-type tally.
type Group struct {
	Name       asset.Group
	Assets     []*asset.Asset
	Total      float64
	TypeCounts map[asset.Type]int
}

func newGroup(name asset.Group) *Group {
	return &Group{Name: name, TypeCounts: make(map[asset.Type]int)}
}

// Count is the number of assets in the group.
func (g *Group) Count() int {
	return len(g.Assets)
}

// AverageValue is the mean asset value in the group, 0 when empty.
func (g *Group) AverageValue() float64 {
	if len(g.Assets) == 0 {
		return 0
	}
	return g.Total / float64(len(g.Assets))
}

func (g *Group) add(a *asset.Asset) {
	g.Assets = append(g.Assets, a)
	g.Total += a.CurrentValue
	g.TypeCounts[a.Type]++
}

func (g *Group) remove(a *asset.Asset) {
	i := slices.Index(g.Assets, a)
	if i < 0 {
		return
	}
	g.Assets = slices.Delete(g.Assets, i, i+1)
	g.Total -= a.CurrentValue
	g.TypeCounts[a.Type]--
	if g.TypeCounts[a.Type] == 0 {
		delete(g.TypeCounts, a.Type)
	}
}

// topByValue returns up to n assets ordered by value descending, keeping
// group insertion order for ties.
func (g *Group) topByValue(n int) []*asset.Asset {
	sorted := slices.Clone(g.Assets)
	sortByValueDesc(sorted)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Result is a completed partition plus the run-level figures needed by the
// remark generator and renderers.
type Result struct {
	Groups      []*Group
	AssetCount  int
	TotalValue  float64
	TargetValue float64

	// Spread is max group total minus min group total.
	Spread float64
	// VariancePct is Spread relative to TargetValue, in percent. Zero when
	// the target is zero.
	VariancePct float64

	HighValueCount int
	Iterations     int
	Swaps          int
	Converged      bool
	// Exhausted is set when MaxIterations passes ran without reaching
	// tolerance; Stalled when a pass found no improving swap first.
	Exhausted      bool
	Stalled        bool

	TypeCounts map[asset.Type]int
}

// Refinement outcomes reported by Outcome.
const (
	OutcomeConverged = "converged"
	OutcomeExhausted = "iteration limit reached"
	OutcomeStalled   = "no improving swap"
	OutcomeUnrefined = "refinement disabled"
)

// Outcome names why balancing stopped.
func (r *Result) Outcome() string {
	switch {
	case r.Converged:
		return OutcomeConverged
	case r.Exhausted:
		return OutcomeExhausted
	case r.Stalled:
		return OutcomeStalled
	default:
		return OutcomeUnrefined
	}
}

// Group returns the named group, or nil.
func (r *Result) Group(name asset.Group) *Group {
	for _, g := range r.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// GroupVariancePct is the signed deviation of g from the target, in percent.
func (r *Result) GroupVariancePct(g *Group) float64 {
	if r.TargetValue == 0 {
		return 0
	}
	return (g.Total - r.TargetValue) / r.TargetValue * 100
}

// MeanValue is the average asset value across all groups.
func (r *Result) MeanValue() float64 {
	if r.AssetCount == 0 {
		return 0
	}
	return r.TotalValue / float64(r.AssetCount)
}

// AverageCount is the ideal number of assets per group.
func (r *Result) AverageCount() float64 {
	return float64(r.AssetCount) / float64(len(r.Groups))
}

// AverageTypeCount is the ideal number of assets of type t per group.
func (r *Result) AverageTypeCount(t asset.Type) float64 {
	return float64(r.TypeCounts[t]) / float64(len(r.Groups))
}

// Partition assigns every asset to group A, B or C. Assets must already
// carry their CurrentValue; it is read but never changed. Each asset's Group
// field is set to its final assignment.
func Partition(assets []*asset.Asset, cfg Config) *Result {
	r := &Result{AssetCount: len(assets), TypeCounts: asset.CountByType(assets)}
	for _, name := range asset.Groups() {
		r.Groups = append(r.Groups, newGroup(name))
	}

	sorted := slices.Clone(assets)
	sortByValueDesc(sorted)

	r.TotalValue = asset.TotalValue(sorted)
	r.TargetValue = r.TotalValue / float64(len(r.Groups))

	remaining := sorted
	if cfg.SeedHighValue && r.TargetValue > 0 {
		remaining = r.seed(sorted, r.TargetValue*cfg.HighValueFraction)
	}

	for _, a := range remaining {
		r.lowest().add(a)
	}

	if cfg.Refine && r.TargetValue > 0 {
		r.refine(cfg)
	}

	r.finish(cfg)
	return r
}

// seed deals high-value assets round-robin and returns the rest in order.
func (r *Result) seed(sorted []*asset.Asset, threshold float64) []*asset.Asset {
	regular := make([]*asset.Asset, 0, len(sorted))
	for _, a := range sorted {
		if a.CurrentValue > threshold {
			r.Groups[r.HighValueCount%len(r.Groups)].add(a)
			r.HighValueCount++
			continue
		}
		regular = append(regular, a)
	}
	return regular
}

// lowest is the first group with the smallest total.
func (r *Result) lowest() *Group {
	low := r.Groups[0]
	for _, g := range r.Groups[1:] {
		if g.Total < low.Total {
			low = g
		}
	}
	return low
}

// highest is the first group with the largest total.
func (r *Result) highest() *Group {
	high := r.Groups[0]
	for _, g := range r.Groups[1:] {
		if g.Total > high.Total {
			high = g
		}
	}
	return high
}

func (r *Result) spread() float64 {
	return r.highest().Total - r.lowest().Total
}

// refine swaps between the max and min groups until the spread is within
// tolerance, no candidate pair improves it, or the pass budget runs out.
// Iterations counts passes, including a final pass that found no swap.
func (r *Result) refine(cfg Config) {
	for r.Iterations < cfg.MaxIterations {
		spread := r.spread()
		if spread/r.TargetValue <= cfg.Tolerance {
			return
		}
		r.Iterations++
		if !r.swapOnce(spread, cfg.SwapCandidates) {
			r.Stalled = true
			return
		}
		r.Swaps++
	}
	r.Exhausted = r.spread()/r.TargetValue > cfg.Tolerance
}

// swapOnce applies the first candidate swap between the max and min groups
// that strictly shrinks the spread across all groups.
func (r *Result) swapOnce(spread float64, candidates int) bool {
	hi, lo := r.highest(), r.lowest()
	if hi == lo {
		return false
	}

	var others []float64
	for _, g := range r.Groups {
		if g != hi && g != lo {
			others = append(others, g.Total)
		}
	}

	for _, a := range hi.topByValue(candidates) {
		for _, b := range lo.topByValue(candidates) {
			if a.CurrentValue == b.CurrentValue {
				continue
			}
			newHi := hi.Total - a.CurrentValue + b.CurrentValue
			newLo := lo.Total - b.CurrentValue + a.CurrentValue
			totals := append([]float64{newHi, newLo}, others...)
			if slices.Max(totals)-slices.Min(totals) < spread {
				hi.remove(a)
				lo.remove(b)
				hi.add(b)
				lo.add(a)
				return true
			}
		}
	}
	return false
}

// finish recomputes totals from members so incremental float drift from
// swaps cannot break conservation, then records the final figures.
func (r *Result) finish(cfg Config) {
	for _, g := range r.Groups {
		g.Total = asset.TotalValue(g.Assets)
		for _, a := range g.Assets {
			a.Group = g.Name
		}
	}
	r.Spread = r.spread()
	if r.TargetValue > 0 {
		r.VariancePct = r.Spread / r.TargetValue * 100
		r.Converged = r.Spread/r.TargetValue <= cfg.Tolerance
	} else {
		r.Converged = true
	}
}

// sortByValueDesc orders by value descending; ties keep load order.
func sortByValueDesc(assets []*asset.Asset) {
	slices.SortStableFunc(assets, func(a, b *asset.Asset) int {
		if c := cmp.Compare(b.CurrentValue, a.CurrentValue); c != 0 {
			return c
		}
		return cmp.Compare(a.Sequence, b.Sequence)
	})
}
