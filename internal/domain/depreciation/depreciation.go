// Package depreciation turns a market price into a current value.
//
// Rules apply in precedence order:
//
//	1. Override: listed serials of a given type keep a fixed fraction
//	   (PC 11, 13, 14, 15 keep 10%, tier "Special").
//	2. Reconditioned laptops: Excellent 0.40, Good 0.30, Moderate 0.20,
//	   unrecognized remarks take the Good multiplier.
//	3. Everything else: Excellent 0.70, Good 0.60, Moderate 0.50,
//	   unrecognized remarks take the Excellent multiplier.
//
// CurrentValue = round(MarketPrice × multiplier, 2).
package depreciation

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

// TierSpecial is the condition tier reported for override hits.
const TierSpecial = "Special"

// Tiers maps each condition tier to the fraction of market price retained.
type Tiers struct {
	Excellent float64 `yaml:"excellent" validate:"gte=0,lte=1"`
	Good      float64 `yaml:"good" validate:"gte=0,lte=1"`
	Moderate  float64 `yaml:"moderate" validate:"gte=0,lte=1"`
	// Default is the tier used when the remark matches nothing.
	Default asset.Condition `yaml:"default" validate:"oneof=excellent good moderate"`
}

// Override pins the multiplier of specific units regardless of condition.
type Override struct {
	Type       asset.Type `yaml:"type" validate:"required"`
	Serials    []int      `yaml:"serials" validate:"min=1"`
	Multiplier float64    `yaml:"multiplier" validate:"gte=0,lte=1"`
	Tier       string     `yaml:"tier"`
}

// Schedule is the full depreciation configuration.
type Schedule struct {
	Standard      Tiers      `yaml:"standard"`
	Reconditioned Tiers      `yaml:"reconditioned"`
	Overrides     []Override `yaml:"overrides" validate:"dive"`
}

// DefaultSchedule returns the remarks-based schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		Standard: Tiers{
			Excellent: 0.70,
			Good:      0.60,
			Moderate:  0.50,
			Default:   asset.ConditionExcellent,
		},
		Reconditioned: Tiers{
			Excellent: 0.40,
			Good:      0.30,
			Moderate:  0.20,
			Default:   asset.ConditionGood,
		},
		Overrides: []Override{
			{Type: asset.TypePC, Serials: []int{11, 13, 14, 15}, Multiplier: 0.10, Tier: TierSpecial},
		},
	}
}

// Result is the outcome of depreciating one asset.
type Result struct {
	CurrentValue float64
	Multiplier   float64
	// RateLabel is the share of value lost, e.g. "40%".
	RateLabel string
	Tier      string
}

// Model applies a Schedule.
type Model struct {
	schedule Schedule
}

// NewModel creates a depreciation model.
func NewModel(schedule Schedule) *Model {
	return &Model{schedule: schedule}
}

// Depreciate computes the current value of a at the given market price.
func (m *Model) Depreciate(a *asset.Asset, marketPrice int64) Result {
	if o := m.override(a); o != nil {
		tier := o.Tier
		if tier == "" {
			tier = TierSpecial
		}
		return result(marketPrice, o.Multiplier, tier)
	}

	tiers := m.schedule.Standard
	if a.IsReconditioned() {
		tiers = m.schedule.Reconditioned
	}

	cond := a.Resolved()
	if cond == asset.ConditionUnknown {
		cond = tiers.Default
	}
	return result(marketPrice, tiers.multiplier(cond), cond.Title())
}

// Apply depreciates a in place, filling CurrentValue, DepreciationRate and
// RemarkCategory.
func (m *Model) Apply(a *asset.Asset) Result {
	r := m.Depreciate(a, a.MarketPrice)
	a.CurrentValue = r.CurrentValue
	a.DepreciationRate = r.RateLabel
	a.RemarkCategory = r.Tier
	return r
}

func (m *Model) override(a *asset.Asset) *Override {
	for i := range m.schedule.Overrides {
		o := &m.schedule.Overrides[i]
		if o.Type == a.Type && slices.Contains(o.Serials, a.Serial) {
			return o
		}
	}
	return nil
}

func (t Tiers) multiplier(c asset.Condition) float64 {
	switch c {
	case asset.ConditionExcellent:
		return t.Excellent
	case asset.ConditionGood:
		return t.Good
	case asset.ConditionModerate:
		return t.Moderate
	default:
		return t.Excellent
	}
}

func result(marketPrice int64, multiplier float64, tier string) Result {
	m := decimal.NewFromFloat(multiplier)
	value := decimal.NewFromInt(marketPrice).Mul(m).Round(2)
	lost := decimal.NewFromInt(1).Sub(m).Mul(decimal.NewFromInt(100)).Round(0)
	return Result{
		CurrentValue: value.InexactFloat64(),
		Multiplier:   multiplier,
		RateLabel:    fmt.Sprintf("%s%%", lost.String()),
		Tier:         tier,
	}
}
