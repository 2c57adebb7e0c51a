// Package remark explains why each asset ended up in its group.
//
// Remarks are derived purely from the finished partition and never feed back
// into it.
package remark

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eshaffer321/asset-divider/internal/domain/allocator"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
	"github.com/eshaffer321/asset-divider/internal/domain/depreciation"
)

const (
	highValueRatio = 1.5
	lowValueRatio  = 0.5
	targetBand     = 0.01
)

// Generate builds the allocation remark for a, which lives in group g of
// partition r.
func Generate(a *asset.Asset, g *allocator.Group, r *allocator.Result) string {
	var parts []string

	mean := r.MeanValue()
	switch {
	case a.CurrentValue > mean*highValueRatio:
		parts = append(parts, "High-value item")
	case a.CurrentValue < mean*lowValueRatio:
		parts = append(parts, "Lower-value item")
	default:
		parts = append(parts, "Standard-value item")
	}

	switch {
	case g.Total < r.TargetValue*(1-targetBand):
		parts = append(parts, "assigned to balance total value (group was below target)")
	case g.Total > r.TargetValue*(1+targetBand):
		parts = append(parts, "assigned despite group being above target to maintain type balance")
	default:
		parts = append(parts, "assigned to maintain balanced distribution")
	}

	avgCount := r.AverageCount()
	switch count := float64(g.Count()); {
	case count < avgCount-1:
		parts = append(parts, "compensates for receiving fewer items")
	case count > avgCount+1:
		parts = append(parts, "group received more items but lower total value")
	}

	if a.RemarkCategory == depreciation.TierSpecial {
		parts = append(parts, "special depreciation applied")
	} else {
		switch a.Resolved() {
		case asset.ConditionExcellent:
			parts = append(parts, "excellent condition adds value")
		case asset.ConditionGood:
			parts = append(parts, "good condition")
		case asset.ConditionModerate:
			parts = append(parts, "moderate condition")
		}
	}

	if float64(g.TypeCounts[a.Type]) <= r.AverageTypeCount(a.Type) {
		parts = append(parts, "balances asset type mix")
	}

	if r.TargetValue > 0 && a.CurrentValue > r.TargetValue*0.10 {
		parts = append(parts, "high-value item distributed to ensure equal group totals")
	}

	return capitalize(strings.Join(parts, ". ")) + "."
}

// Annotate sets AllocationRemark on every asset in the partition.
func Annotate(r *allocator.Result) {
	for _, g := range r.Groups {
		for _, a := range g.Assets {
			a.AllocationRemark = Generate(a, g, r)
		}
	}
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}
