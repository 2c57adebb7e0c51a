package pricing

import (
	"strings"

	"github.com/eshaffer321/asset-divider/internal/domain/asset"
)

// Basis records which step of the cascade produced a price.
type Basis string

const (
	BasisModel         Basis = "model"
	BasisName          Basis = "name"
	BasisNameModel     Basis = "name+model"
	BasisRule          Basis = "rule"
	BasisCategory      Basis = "category-fallback"
	BasisGlobalDefault Basis = "default"
)

// Quote is a priced asset together with how the price was found.
type Quote struct {
	Price int64
	Basis Basis
	// Rule is the index of the matching rule when Basis is BasisRule.
	Rule int
}

// Pricer looks assets up in an immutable Table.
type Pricer struct {
	table *Table
}

// NewPricer creates a pricer over the given table.
func NewPricer(table *Table) *Pricer {
	return &Pricer{table: table}
}

// Price returns the market price for a. It never fails.
func (p *Pricer) Price(a *asset.Asset) int64 {
	return p.Quote(a).Price
}

// Quote prices a and reports the cascade step that matched.
func (p *Pricer) Quote(a *asset.Asset) Quote {
	cat := p.table.Category(a.Type.PriceCategory())
	if cat == nil {
		return Quote{Price: p.table.DefaultPrice, Basis: BasisGlobalDefault, Rule: -1}
	}

	name := strings.TrimSpace(a.Name)
	model := strings.TrimSpace(a.Model)

	if price, ok := cat.Models[model]; ok && model != "" {
		return Quote{Price: price, Basis: BasisModel, Rule: -1}
	}
	if price, ok := cat.Models[name]; ok && name != "" {
		return Quote{Price: price, Basis: BasisName, Rule: -1}
	}
	if combined := strings.TrimSpace(name + " " + model); combined != "" {
		if price, ok := cat.Models[combined]; ok {
			return Quote{Price: price, Basis: BasisNameModel, Rule: -1}
		}
	}

	// Only the sheet section decides the price; remarks that mention
	// reconditioning affect depreciation alone.
	recond := a.Type == asset.TypeLaptop && a.PurchaseType == asset.PurchaseReconditioned
	for i := range cat.Rules {
		r := &cat.Rules[i]
		if r.Matches(a) {
			return Quote{Price: r.PriceFor(recond), Basis: BasisRule, Rule: i}
		}
	}

	return Quote{Price: cat.Fallback, Basis: BasisCategory, Rule: -1}
}

// Matches reports whether every configured matcher hits.
func (r *Rule) Matches(a *asset.Asset) bool {
	name := strings.ToLower(a.Name)
	model := strings.ToLower(a.Model)
	processor := strings.ToLower(a.Processor)

	if len(r.Name) > 0 && !containsAny(name, r.Name) {
		return false
	}
	if len(r.NameAll) > 0 && !containsAll(name, r.NameAll) {
		return false
	}
	if len(r.Model) > 0 && !containsAny(model, r.Model) {
		return false
	}
	if len(r.Text) > 0 && !containsAny(name, r.Text) && !containsAny(model, r.Text) {
		return false
	}
	if len(r.Processor) > 0 && !containsAny(processor, r.Processor) {
		return false
	}
	if r.MinGeneration > 0 && a.Generation < r.MinGeneration {
		return false
	}
	return true
}

// PriceFor picks the reconditioned price when one is configured.
func (r *Rule) PriceFor(reconditioned bool) int64 {
	if reconditioned && r.Reconditioned > 0 {
		return r.Reconditioned
	}
	return r.Price
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func containsAll(s string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(s, strings.ToLower(k)) {
			return false
		}
	}
	return true
}
