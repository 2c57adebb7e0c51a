package depreciation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

func TestDepreciate_DocumentedCases(t *testing.T) {
	m := NewModel(DefaultSchedule())

	t.Run("new laptop excellent", func(t *testing.T) {
		a := &asset.Asset{Type: asset.TypeLaptop, PurchaseType: asset.PurchaseNew, ConditionRemark: "Excellent condition"}
		r := m.Depreciate(a, 100000)
		assert.Equal(t, 70000.00, r.CurrentValue)
		assert.Equal(t, "30%", r.RateLabel)
		assert.Equal(t, "Excellent", r.Tier)
	})

	t.Run("reconditioned laptop good", func(t *testing.T) {
		a := &asset.Asset{Type: asset.TypeLaptop, PurchaseType: asset.PurchaseReconditioned, ConditionRemark: "Good, working"}
		r := m.Depreciate(a, 50000)
		assert.Equal(t, 15000.00, r.CurrentValue)
		assert.Equal(t, "70%", r.RateLabel)
		assert.Equal(t, "Good", r.Tier)
	})

	t.Run("monitor without keyword defaults to excellent", func(t *testing.T) {
		a := &asset.Asset{Type: asset.TypeMonitor, ConditionRemark: "scratched bezel"}
		r := m.Depreciate(a, 12000)
		assert.Equal(t, 8400.00, r.CurrentValue)
		assert.Equal(t, "30%", r.RateLabel)
		assert.Equal(t, "Excellent", r.Tier)
	})
}

func TestDepreciate_Override(t *testing.T) {
	m := NewModel(DefaultSchedule())

	for _, serial := range []int{11, 13, 14, 15} {
		for _, remark := range []string{"Excellent", "Good", "fair", ""} {
			a := &asset.Asset{Type: asset.TypePC, Serial: serial, ConditionRemark: remark}
			r := m.Depreciate(a, 85555)
			assert.Equal(t, 8555.5, r.CurrentValue, "serial %d remark %q", serial, remark)
			assert.Equal(t, "90%", r.RateLabel)
			assert.Equal(t, TierSpecial, r.Tier)
		}
	}

	t.Run("other types with same serial are not overridden", func(t *testing.T) {
		a := &asset.Asset{Type: asset.TypeMonitor, Serial: 11, ConditionRemark: "Good"}
		assert.Equal(t, 6000.0, m.Depreciate(a, 10000).CurrentValue)
	})

	t.Run("pc serial 12 is standard", func(t *testing.T) {
		a := &asset.Asset{Type: asset.TypePC, Serial: 12, ConditionRemark: "Good"}
		assert.Equal(t, "Good", m.Depreciate(a, 10000).Tier)
	})
}

func TestDepreciate_Tiers(t *testing.T) {
	m := NewModel(DefaultSchedule())

	tests := []struct {
		name   string
		recond bool
		remark string
		want   float64
		label  string
	}{
		{"standard good", false, "good", 60000, "40%"},
		{"standard moderate", false, "Moderate", 50000, "50%"},
		{"standard fair", false, "Fair", 50000, "50%"},
		{"good wins over fair", false, "good but fair battery", 60000, "40%"},
		{"recond excellent", true, "Excellent", 40000, "60%"},
		{"recond moderate", true, "moderate", 20000, "80%"},
		{"recond unknown defaults to good", true, "", 30000, "70%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &asset.Asset{Type: asset.TypeLaptop, PurchaseType: asset.PurchaseNew, ConditionRemark: tt.remark}
			if tt.recond {
				a.PurchaseType = asset.PurchaseReconditioned
			}
			r := m.Depreciate(a, 100000)
			assert.Equal(t, tt.want, r.CurrentValue)
			assert.Equal(t, tt.label, r.RateLabel)
		})
	}
}

func TestDepreciate_RoundsToCents(t *testing.T) {
	m := NewModel(DefaultSchedule())
	a := &asset.Asset{Type: asset.TypeMonitor, ConditionRemark: "Good"}

	// 12345 * 0.6 = 7407.0 exactly; 333 * 0.7 = 233.1
	assert.Equal(t, 7407.0, m.Depreciate(a, 12345).CurrentValue)
	a.ConditionRemark = "Excellent"
	assert.Equal(t, 233.1, m.Depreciate(a, 333).CurrentValue)
}

func TestApply_FillsComputedFields(t *testing.T) {
	m := NewModel(DefaultSchedule())
	a := &asset.Asset{Type: asset.TypePrinter, ConditionRemark: "Moderate", MarketPrice: 21000}

	m.Apply(a)

	assert.Equal(t, 10500.0, a.CurrentValue)
	assert.Equal(t, "50%", a.DepreciationRate)
	assert.Equal(t, "Moderate", a.RemarkCategory)
}

func TestDepreciate_ConfiguredOverrides(t *testing.T) {
	s := DefaultSchedule()
	s.Overrides = []Override{{Type: asset.TypeMonitor, Serials: []int{7}, Multiplier: 0.25}}
	m := NewModel(s)

	r := m.Depreciate(&asset.Asset{Type: asset.TypeMonitor, Serial: 7, ConditionRemark: "Excellent"}, 10000)
	assert.Equal(t, 2500.0, r.CurrentValue)
	assert.Equal(t, "75%", r.RateLabel)
	assert.Equal(t, TierSpecial, r.Tier)

	r = m.Depreciate(&asset.Asset{Type: asset.TypePC, Serial: 11, ConditionRemark: "Excellent"}, 10000)
	assert.Equal(t, 7000.0, r.CurrentValue)
}

func TestDefaultSchedule_Valid(t *testing.T) {
	s := DefaultSchedule()
	require.NoError(t, validator.New().Struct(s))
}
