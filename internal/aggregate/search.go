package aggregate

import (
	"strings"

	"github.com/cleared-dev/catexplorer/internal/model"
)

// Search finds rows whose merchant name contains query (case-insensitive)
// and breaks their spend down by category. Rows with a null merchant never
// match. When nothing matches it returns NoMatchFound instead of an empty
// table.
func (p *Pipeline) Search(rows []model.Transaction, query string) ([]model.SearchSummary, error) {
	needle := strings.ToLower(query)

	var matches []model.Transaction
	for _, t := range rows {
		if t.HasMerchant && strings.Contains(strings.ToLower(t.Merchant), needle) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		return nil, NoMatchFound{Query: query}
	}

	groups := groupBy(matches, byCategory)
	out := make([]model.SearchSummary, len(groups))
	for i, g := range groups {
		out[i] = model.SearchSummary{
			Category:   g.key,
			TxnCount:   g.count,
			TotalSpend: g.total,
		}
	}
	return out, nil
}
