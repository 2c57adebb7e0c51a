// Package report renders a finished distribution as JSON, Excel and HTML.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/eshaffer321/asset-divider/internal/domain/allocator"
	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

// Meta is run information that is not part of the partition itself
type Meta struct {
	RunID       string
	Title       string
	Currency    string
	GeneratedAt time.Time
	Sources     int
	Skipped     int
}

// TypeCount is the number of assets of one type
type TypeCount struct {
	Type  asset.Type `json:"type"`
	Count int        `json:"count"`
}

// AssetRow is one asset as shown in every output
type AssetRow struct {
	Group            asset.Group        `json:"group"`
	Type             asset.Type         `json:"asset_type"`
	Serial           int                `json:"serial"`
	Name             string             `json:"name"`
	Model            string             `json:"model,omitempty"`
	User             string             `json:"user,omitempty"`
	Location         string             `json:"location,omitempty"`
	Level            string             `json:"level,omitempty"`
	Processor        string             `json:"processor,omitempty"`
	RAMGB            int                `json:"ram_gb,omitempty"`
	Storage          string             `json:"storage,omitempty"`
	Generation       int                `json:"generation,omitempty"`
	GPU              string             `json:"gpu,omitempty"`
	Function         string             `json:"function,omitempty"`
	DeviceSerial     string             `json:"device_serial,omitempty"`
	Status           string             `json:"status,omitempty"`
	Remarks          string             `json:"remarks"`
	PurchaseType     asset.PurchaseType `json:"purchase_type,omitempty"`
	MarketPrice      int64              `json:"market_price"`
	DepreciationRate string             `json:"depreciation_rate"`
	RemarkCategory   string             `json:"remark_category"`
	CurrentValue     float64            `json:"current_value"`
	AllocationRemark string             `json:"allocation_remark"`
	Source           string             `json:"source,omitempty"`
}

// TypeSection is the assets of one type inside a group
type TypeSection struct {
	Type   asset.Type `json:"type"`
	Assets []AssetRow `json:"assets"`
}

// GroupView summarises one group
type GroupView struct {
	Name        asset.Group   `json:"name"`
	Count       int           `json:"count"`
	Total       float64       `json:"total_value"`
	Average     float64       `json:"average_value"`
	VariancePct float64       `json:"variance_pct"`
	TypeCounts  []TypeCount   `json:"type_counts"`
	Sections    []TypeSection `json:"-"`
	Assets      []AssetRow    `json:"assets"`
}

// Report is the view model shared by every writer. Building it performs no
// valuation; it only copies, rounds and orders.
type Report struct {
	RunID       string      `json:"run_id"`
	Title       string      `json:"title"`
	Currency    string      `json:"currency"`
	GeneratedAt time.Time   `json:"generated_at"`
	AssetCount  int         `json:"asset_count"`
	SourceCount int         `json:"source_count"`
	Skipped     int         `json:"skipped_rows"`
	TotalValue  float64     `json:"total_value"`
	TargetValue float64     `json:"target_value"`
	Spread      float64     `json:"spread"`
	VariancePct float64     `json:"variance_pct"`
	Iterations  int         `json:"iterations"`
	Swaps       int         `json:"swaps"`
	Converged   bool        `json:"converged"`
	Exhausted   bool        `json:"iteration_limit_reached"`
	Stalled     bool        `json:"stalled"`
	// Outcome says why balancing stopped, e.g. "no improving swap"
	Outcome     string      `json:"outcome"`

	HighValueCount int `json:"high_value_count"`

	TypeCounts []TypeCount `json:"type_counts"`
	Groups     []GroupView `json:"groups"`
	Assets     []AssetRow  `json:"all_assets"`
}

const defaultTitle = "Asset Division Report"

// Build creates the report for a finished partition
func Build(r *allocator.Result, meta Meta) *Report {
	if meta.Title == "" {
		meta.Title = defaultTitle
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now()
	}

	rep := &Report{
		RunID:       meta.RunID,
		Title:       meta.Title,
		Currency:    meta.Currency,
		GeneratedAt: meta.GeneratedAt,
		AssetCount:  r.AssetCount,
		SourceCount: meta.Sources,
		Skipped:     meta.Skipped,
		TotalValue:  round2(r.TotalValue),
		TargetValue: round2(r.TargetValue),
		Spread:      round2(r.Spread),
		VariancePct: round2(r.VariancePct),
		Iterations:  r.Iterations,
		Swaps:       r.Swaps,
		Converged:   r.Converged,
		Exhausted:   r.Exhausted,
		Stalled:     r.Stalled,
		Outcome:     r.Outcome(),

		HighValueCount: r.HighValueCount,
		TypeCounts:     typeCounts(r.TypeCounts),
	}

	for _, g := range r.Groups {
		view := GroupView{
			Name:        g.Name,
			Count:       g.Count(),
			Total:       round2(g.Total),
			Average:     round2(g.AverageValue()),
			VariancePct: round2(r.GroupVariancePct(g)),
			TypeCounts:  typeCounts(g.TypeCounts),
		}
		for _, a := range g.Assets {
			view.Assets = append(view.Assets, newAssetRow(a))
		}
		sortRows(view.Assets)
		view.Sections = sections(view.Assets)
		rep.Groups = append(rep.Groups, view)
		rep.Assets = append(rep.Assets, view.Assets...)
	}
	sortRows(rep.Assets)

	return rep
}

// Group returns the named group view
func (r *Report) Group(name asset.Group) *GroupView {
	for i := range r.Groups {
		if r.Groups[i].Name == name {
			return &r.Groups[i]
		}
	}
	return nil
}

func newAssetRow(a *asset.Asset) AssetRow {
	return AssetRow{
		Group:            a.Group,
		Type:             a.Type,
		Serial:           a.Serial,
		Name:             a.Name,
		Model:            a.Model,
		User:             a.User,
		Location:         a.Location,
		Level:            a.Level,
		Processor:        a.Processor,
		RAMGB:            a.RAMGB,
		Storage:          a.Storage,
		Generation:       a.Generation,
		GPU:              a.GPU,
		Function:         a.Function,
		DeviceSerial:     a.DeviceSerial,
		Status:           a.Status,
		Remarks:          a.ConditionRemark,
		PurchaseType:     a.PurchaseType,
		MarketPrice:      a.MarketPrice,
		DepreciationRate: a.DepreciationRate,
		RemarkCategory:   a.RemarkCategory,
		CurrentValue:     a.CurrentValue,
		AllocationRemark: a.AllocationRemark,
		Source:           a.Source,
	}
}

// sortRows orders by type, then group, then serial
func sortRows(rows []AssetRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Type != b.Type {
			return a.Type.Order() < b.Type.Order()
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Serial < b.Serial
	})
}

func sections(rows []AssetRow) []TypeSection {
	var out []TypeSection
	for _, row := range rows {
		if n := len(out); n == 0 || out[n-1].Type != row.Type {
			out = append(out, TypeSection{Type: row.Type})
		}
		last := &out[len(out)-1]
		last.Assets = append(last.Assets, row)
	}
	return out
}

func typeCounts(m map[asset.Type]int) []TypeCount {
	var out []TypeCount
	for _, t := range asset.Types() {
		if n := m[t]; n > 0 {
			out = append(out, TypeCount{Type: t, Count: n})
		}
	}
	return out
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders whole currency units with digit grouping
func FormatMoney(v float64) string {
	return printer.Sprintf("%.0f", decimal.NewFromFloat(v).Round(0).InexactFloat64())
}

// FormatAmount renders a value with two decimals and digit grouping
func FormatAmount(v float64) string {
	return printer.Sprintf("%.2f", round2(v))
}

// FormatSignedPct renders a variance such as "+0.42%"
func FormatSignedPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", round2(v))
}
