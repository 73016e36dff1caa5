package aggregate

import (
	"github.com/cleared-dev/catexplorer/internal/model"
)

// RankCategories groups filtered rows by category and returns the top
// categories by total spend.
func (p *Pipeline) RankCategories(rows []model.Transaction) []model.CategorySummary {
	groups := truncate(groupBy(rows, byCategory), p.opts.CategoryLimit)

	out := make([]model.CategorySummary, len(groups))
	for i, g := range groups {
		out[i] = model.CategorySummary{
			Category:   g.key,
			TxnCount:   g.count,
			TotalSpend: g.total,
			AvgTxn:     g.mean(),
		}
	}
	return out
}
