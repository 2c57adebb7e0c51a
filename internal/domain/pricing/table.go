// Package pricing assigns a market (replacement) price to an asset.
//
// Prices come from a Table loaded once per run and never mutated afterwards.
// A lookup walks a fixed cascade and the first step that matches wins:
//
//	1. exact model in the category's price list
//	2. exact name
//	3. exact "name model"
//	4. ordered keyword rules for the category
//	5. category fallback
//	6. table-wide default price (category missing from the table)
//
// Example usage:
//
//	table, err := pricing.LoadTable("prices.yaml")
//	pricer := pricing.NewPricer(table)
//	price := pricer.Price(a)
package pricing

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed prices.yaml
var defaultTableYAML []byte

// Table is the full price configuration.
type Table struct {
	DefaultPrice int64                     `yaml:"default_price" validate:"gt=0"`
	Categories   map[string]*CategoryTable `yaml:"categories" validate:"dive"`
}

// CategoryTable holds the curated prices and keyword rules for one category.
type CategoryTable struct {
	Fallback int64            `yaml:"fallback" validate:"gt=0"`
	Models   map[string]int64 `yaml:"models" validate:"dive,gt=0"`
	Rules    []Rule           `yaml:"rules" validate:"dive"`
}

// Rule is a keyword heuristic. Every non-empty matcher must hit for the rule
// to fire. Keyword lists match any entry except NameAll, which needs all.
type Rule struct {
	Name          []string `yaml:"name,omitempty"`
	NameAll       []string `yaml:"name_all,omitempty"`
	Model         []string `yaml:"model,omitempty"`
	Text          []string `yaml:"text,omitempty"`
	Processor     []string `yaml:"processor,omitempty"`
	MinGeneration int      `yaml:"min_generation,omitempty" validate:"gte=0"`

	Price int64 `yaml:"price" validate:"gt=0"`
	// Reconditioned is the price for reconditioned laptops. Zero means Price.
	Reconditioned int64 `yaml:"reconditioned,omitempty" validate:"gte=0"`
}

// DefaultTable parses the price table compiled into the binary.
func DefaultTable() (*Table, error) {
	return ParseTable(defaultTableYAML)
}

// LoadTable reads a price table from disk. An empty path returns the
// compiled-in default.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price table: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes and validates a YAML price table.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse price table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate ensures every price in the table is positive, so lookups can never
// produce a zero or negative market price.
func (t *Table) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid price table: %s must satisfy %s", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid price table: %w", err)
	}
	return nil
}

// Category returns the table for a category, or nil if none is configured.
func (t *Table) Category(name string) *CategoryTable {
	return t.Categories[strings.ToLower(name)]
}
