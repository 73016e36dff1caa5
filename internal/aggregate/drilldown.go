package aggregate

import (
	"github.com/cleared-dev/catexplorer/internal/model"
)

// Drilldown ranks the merchants of one category. The category must appear in
// ranking, the category view computed from the same rows.
func (p *Pipeline) Drilldown(rows []model.Transaction, ranking []model.CategorySummary, category string) ([]model.MerchantSummary, error) {
	if !containsCategory(ranking, category) {
		return nil, UnknownCategoryError{Category: category}
	}

	var scoped []model.Transaction
	for _, t := range rows {
		if t.HasCategory && t.Category == category {
			scoped = append(scoped, t)
		}
	}

	groups := truncate(groupBy(scoped, byMerchant), p.opts.MerchantLimit)
	out := make([]model.MerchantSummary, len(groups))
	for i, g := range groups {
		out[i] = model.MerchantSummary{
			Merchant:   g.key,
			TotalSpend: g.total,
			TxnCount:   g.count,
			Label:      MerchantLabel(p.opts.CurrencySymbol, g.total, g.count),
		}
	}
	return out, nil
}

func containsCategory(ranking []model.CategorySummary, category string) bool {
	for _, c := range ranking {
		if c.Category == category {
			return true
		}
	}
	return false
}
