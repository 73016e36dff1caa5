package aggregate

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/catexplorer/internal/model"
)

type group struct {
	key     string
	count   int // rows, including those with a null amount
	amounts int // rows with an amount
	total   decimal.Decimal
}

// keyFunc extracts a grouping key; false drops the row (null key).
type keyFunc func(model.Transaction) (string, bool)

func byCategory(t model.Transaction) (string, bool) { return t.Category, t.HasCategory }

func byMerchant(t model.Transaction) (string, bool) { return t.Merchant, t.HasMerchant }

// groupBy sums amount_abs per key and orders groups by total descending,
// then key ascending. Null amounts are counted but not summed.
func groupBy(txns []model.Transaction, key keyFunc) []group {
	index := make(map[string]int)
	var groups []group
	for _, t := range txns {
		k, ok := key(t)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k, total: decimal.Zero})
		}
		groups[i].count++
		if t.HasAmount {
			groups[i].amounts++
			groups[i].total = groups[i].total.Add(t.AmountAbs)
		}
	}

	slices.SortStableFunc(groups, func(a, b group) int {
		if c := b.total.Cmp(a.total); c != 0 {
			return c
		}
		return strings.Compare(a.key, b.key)
	})
	return groups
}

// mean averages the non-null amounts; zero when there are none.
func (g group) mean() decimal.Decimal {
	if g.amounts == 0 {
		return decimal.Zero
	}
	return g.total.Div(decimal.NewFromInt(int64(g.amounts)))
}

func truncate(groups []group, limit int) []group {
	if limit > 0 && len(groups) > limit {
		return groups[:limit]
	}
	return groups
}
