package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eshaffer321/asset-divider/internal/domain/allocator"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

func valued(values ...float64) []*asset.Asset {
	out := make([]*asset.Asset, len(values))
	for i, v := range values {
		out[i] = &asset.Asset{Type: asset.TypePC, Serial: i + 1, Name: "pc", CurrentValue: v}
	}
	return out
}

func TestValidatePartition_Valid(t *testing.T) {
	assets := valued(1200.50, 800.25, 640, 10.10, 0)
	r := allocator.Partition(assets, allocator.DefaultConfig())

	result := ValidatePartition(assets, r)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
	assert.InDelta(t, 2650.85, result.AssetTotal, 1e-9)
	assert.InDelta(t, result.AssetTotal, result.GroupTotal, 1e-6)
}

func TestValidatePartition_Empty(t *testing.T) {
	result := ValidatePartition(nil, allocator.Partition(nil, allocator.DefaultConfig()))

	assert.True(t, result.Valid)
	assert.Zero(t, result.GroupTotal)
}

func TestValidatePartition_MissingAsset(t *testing.T) {
	assets := valued(100, 200, 300)
	r := allocator.Partition(assets[:2], allocator.DefaultConfig())

	result := ValidatePartition(assets, r)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, result.Missing)
	assert.Contains(t, result.Reason, "1 of 3 assets")
}

func TestValidatePartition_DuplicatedAsset(t *testing.T) {
	assets := valued(100, 200, 300)
	r := allocator.Partition(assets, allocator.DefaultConfig())
	b := r.Group(asset.GroupB)
	b.Assets = append(b.Assets, assets[0])
	b.Total += assets[0].CurrentValue

	result := ValidatePartition(assets, r)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, result.Duplicated)
	assert.Contains(t, result.Reason, "more than one group")
}

func TestValidatePartition_Unexpected(t *testing.T) {
	assets := valued(100, 200, 300)
	r := allocator.Partition(append(valued(5), assets...), allocator.DefaultConfig())

	result := ValidatePartition(assets, r)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, result.Unexpected)
}

func TestValidatePartition_ValueNotConserved(t *testing.T) {
	assets := valued(100, 200, 300)
	r := allocator.Partition(assets, allocator.DefaultConfig())
	r.Group(asset.GroupA).Total += 0.01

	result := ValidatePartition(assets, r)

	assert.False(t, result.Valid)
	assert.InDelta(t, 0.01, result.Difference, 1e-9)
	assert.Contains(t, result.Reason, "differ from asset total")
}
