// Package validator checks a finished partition before it is rendered.
//
// A partition is valid when every input asset appears in exactly one group
// and no value was created or lost:
//
//	|sum(group totals) − sum(asset values)| ≤ 1e-6 × max(n, 1)
package validator

import (
	"fmt"
	"math"

	"github.com/eshaffer321/asset-divider/internal/domain/allocator"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

// PartitionValidation contains the result of validating a partition.
type PartitionValidation struct {
	// Valid is true if the partition is complete and conserves value
	Valid bool

	// AssetTotal is the sum of CurrentValue over the input
	AssetTotal float64

	// GroupTotal is the sum of the three group totals
	GroupTotal float64

	// Difference is GroupTotal minus AssetTotal
	Difference float64

	// Missing counts input assets found in no group
	Missing int

	// Duplicated counts assets found more than once
	Duplicated int

	// Unexpected counts grouped assets that were not in the input
	Unexpected int

	// Reason explains why validation failed (empty if valid)
	Reason string
}

// ValidatePartition checks completeness, uniqueness and value conservation.
func ValidatePartition(assets []*asset.Asset, r *allocator.Result) *PartitionValidation {
	seen := make(map[*asset.Asset]int, len(assets))
	v := &PartitionValidation{AssetTotal: asset.TotalValue(assets)}

	for _, g := range r.Groups {
		v.GroupTotal += g.Total
		for _, a := range g.Assets {
			seen[a]++
		}
	}
	v.Difference = v.GroupTotal - v.AssetTotal

	inputs := make(map[*asset.Asset]bool, len(assets))
	for _, a := range assets {
		inputs[a] = true
		switch n := seen[a]; {
		case n == 0:
			v.Missing++
		case n > 1:
			v.Duplicated++
		}
	}
	for a := range seen {
		if !inputs[a] {
			v.Unexpected++
		}
	}

	tolerance := 1e-6 * math.Max(float64(len(assets)), 1)

	switch {
	case v.Missing > 0:
		v.Reason = fmt.Sprintf("%d of %d assets were not assigned to any group", v.Missing, len(assets))
	case v.Duplicated > 0:
		v.Reason = fmt.Sprintf("%d assets were assigned to more than one group", v.Duplicated)
	case v.Unexpected > 0:
		v.Reason = fmt.Sprintf("%d grouped assets were not part of the input", v.Unexpected)
	case math.Abs(v.Difference) > tolerance:
		v.Reason = fmt.Sprintf("group totals (%.2f) differ from asset total (%.2f) by %.6f",
			v.GroupTotal, v.AssetTotal, v.Difference)
	default:
		v.Valid = true
	}

	return v
}
