package remark

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/asset-divider/internal/domain/allocator"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
	"github.com/eshaffer321/asset-divider/internal/domain/depreciation"
)

func laptop(serial int, value float64, remark string) *asset.Asset {
	return &asset.Asset{
		Type:            asset.TypeLaptop,
		Serial:          serial,
		Name:            "Laptop",
		ConditionRemark: remark,
		CurrentValue:    value,
	}
}

func TestGenerate_HighValueItem(t *testing.T) {
	assets := []*asset.Asset{
		laptop(1, 900, "Excellent"),
		laptop(2, 100, "Good"),
		laptop(3, 100, "Good"),
		laptop(4, 100, "Good"),
	}
	r := allocator.Partition(assets, allocator.DefaultConfig())
	g := r.Group(assets[0].Group)

	got := Generate(assets[0], g, r)

	assert.True(t, strings.HasPrefix(got, "High-value item. "), got)
	assert.Contains(t, got, "excellent condition adds value")
	assert.Contains(t, got, "high-value item distributed to ensure equal group totals")
	assert.True(t, strings.HasSuffix(got, "."))
	assert.False(t, strings.HasSuffix(got, ".."))
}

func TestGenerate_BalancedGroup(t *testing.T) {
	assets := []*asset.Asset{
		laptop(1, 100, "Good"),
		laptop(2, 100, "Good"),
		laptop(3, 100, "Good"),
	}
	r := allocator.Partition(assets, allocator.DefaultConfig())
	g := r.Group(asset.GroupA)

	got := Generate(g.Assets[0], g, r)

	assert.Equal(t,
		"Standard-value item. assigned to maintain balanced distribution. good condition. balances asset type mix. high-value item distributed to ensure equal group totals.",
		got)
}

func TestGenerate_LowerValueAndCounts(t *testing.T) {
	assets := []*asset.Asset{laptop(1, 1000, "")}
	for i := 2; i <= 10; i++ {
		assets = append(assets, laptop(i, 10, "Moderate wear"))
	}
	r := allocator.Partition(assets, allocator.DefaultConfig())

	big := r.Group(assets[0].Group)
	gotBig := Generate(assets[0], big, r)
	assert.Contains(t, gotBig, "assigned despite group being above target")
	assert.Contains(t, gotBig, "compensates for receiving fewer items")
	assert.NotContains(t, gotBig, "condition")

	small := assets[1]
	gotSmall := Generate(small, r.Group(small.Group), r)
	assert.True(t, strings.HasPrefix(gotSmall, "Lower-value item. "), gotSmall)
	assert.Contains(t, gotSmall, "assigned to balance total value (group was below target)")
	assert.Contains(t, gotSmall, "moderate condition")
}

func TestGenerate_SpecialTier(t *testing.T) {
	pc := &asset.Asset{Type: asset.TypePC, Serial: 11, Name: "PC", ConditionRemark: "Excellent", CurrentValue: 50, RemarkCategory: depreciation.TierSpecial}
	r := allocator.Partition([]*asset.Asset{pc}, allocator.DefaultConfig())

	got := Generate(pc, r.Group(pc.Group), r)
	assert.Contains(t, got, "special depreciation applied")
	assert.NotContains(t, got, "excellent condition")
}

func TestGenerate_ZeroValues(t *testing.T) {
	assets := []*asset.Asset{laptop(1, 0, "Good"), laptop(2, 0, "Good")}
	r := allocator.Partition(assets, allocator.DefaultConfig())

	for _, a := range assets {
		got := Generate(a, r.Group(a.Group), r)
		assert.True(t, strings.HasPrefix(got, "Standard-value item. assigned to maintain balanced distribution"), got)
		assert.NotContains(t, got, "high-value item distributed")
	}
}

func TestAnnotate(t *testing.T) {
	assets := []*asset.Asset{
		laptop(1, 500, "Good"),
		laptop(2, 300, "Excellent"),
		laptop(3, 200, "Fair"),
		laptop(4, 50, ""),
	}
	r := allocator.Partition(assets, allocator.DefaultConfig())

	Annotate(r)

	for _, a := range assets {
		require.NotEmpty(t, a.AllocationRemark, "asset %d", a.Serial)
		assert.Equal(t, Generate(a, r.Group(a.Group), r), a.AllocationRemark)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Abc", capitalize("abc"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Ärger", capitalize("ärger"))
}
