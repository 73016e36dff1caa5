// Package aggregate turns ingested transactions into the ranked summary
// tables shown by the dashboard. Every function is pure: the same table and
// interaction state always produce the same summaries.
package aggregate

import (
	"strings"

	"github.com/cleared-dev/catexplorer/internal/model"
)

// Default limits and exclusions.
const (
	DefaultCategoryLimit  = 50
	DefaultMerchantLimit  = 20
	DefaultCurrencySymbol = "£"
)

// DefaultExcludedCategories lists the internal-movement categories that never
// count as spend. Matching is case-insensitive.
var DefaultExcludedCategories = []string{
	"intra account transfer",
	"inter account transfer",
	"not enough information",
	"peer to peer transfer",
}

// Options configures a Pipeline.
type Options struct {
	ExcludedCategories []string
	CategoryLimit      int // <= 0 means unbounded
	MerchantLimit      int // <= 0 means unbounded
	CurrencySymbol     string
}

// DefaultOptions returns the stock exclusion set and limits.
func DefaultOptions() Options {
	return Options{
		ExcludedCategories: append([]string(nil), DefaultExcludedCategories...),
		CategoryLimit:      DefaultCategoryLimit,
		MerchantLimit:      DefaultMerchantLimit,
		CurrencySymbol:     DefaultCurrencySymbol,
	}
}

// Pipeline runs the filter, ranking, drilldown and search steps.
// It holds no state between calls.
type Pipeline struct {
	opts     Options
	excluded map[string]struct{}
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	excluded := make(map[string]struct{}, len(opts.ExcludedCategories))
	for _, c := range opts.ExcludedCategories {
		excluded[strings.ToLower(c)] = struct{}{}
	}
	return &Pipeline{opts: opts, excluded: excluded}
}

// Options returns the pipeline configuration.
func (p *Pipeline) Options() Options {
	return p.opts
}

// IsExcluded reports whether category belongs to the exclusion set.
func (p *Pipeline) IsExcluded(category string) bool {
	_, ok := p.excluded[strings.ToLower(category)]
	return ok
}

// Filter returns the rows that take part in aggregation: a non-null category
// outside the exclusion set, and a negative amount unless includeIncoming is
// set. Input order is preserved and the input slice is not modified.
func (p *Pipeline) Filter(txns []model.Transaction, includeIncoming bool) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.HasCategory {
			continue
		}
		if p.IsExcluded(t.Category) {
			continue
		}
		if !includeIncoming && !t.IsOutgoing() {
			continue
		}
		out = append(out, t)
	}
	return out
}
