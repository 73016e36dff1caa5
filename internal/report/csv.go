package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/catexplorer/internal/model"
)

// CSV headers for each summary view.
const (
	CategoryHeader = "category,txn_count,total_spend,avg_txn"
	MerchantHeader = "merchant,total_spend,txn_count,label"
	SearchHeader   = "category,txn_count,total_spend"
)

const (
	catNumFields = 4
	catColName   = 0
	catColCount  = 1
	catColTotal  = 2
	catColAvg    = 3

	merNumFields = 4
	merColName   = 0
	merColTotal  = 1
	merColCount  = 2
	merColLabel  = 3

	srchNumFields = 3
	srchColName   = 0
	srchColCount  = 1
	srchColTotal  = 2
)

// WriteCategories writes the top-categories view (including header).
func WriteCategories(w io.Writer, rows []model.CategorySummary) error {
	return writeRows(w, CategoryHeader, len(rows), func(i int) []string {
		return MarshalCategory(rows[i])
	})
}

// WriteMerchants writes a drilldown view (including header).
func WriteMerchants(w io.Writer, rows []model.MerchantSummary) error {
	return writeRows(w, MerchantHeader, len(rows), func(i int) []string {
		return MarshalMerchant(rows[i])
	})
}

// WriteSearch writes a merchant-search view (including header).
func WriteSearch(w io.Writer, rows []model.SearchSummary) error {
	return writeRows(w, SearchHeader, len(rows), func(i int) []string {
		return MarshalSearch(rows[i])
	})
}

func writeRows(w io.Writer, header string, n int, row func(int) []string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCategory converts a CategorySummary to a CSV row.
// Money columns are fixed to two decimal places.
func MarshalCategory(c model.CategorySummary) []string {
	row := make([]string, catNumFields)
	row[catColName] = c.Category
	row[catColCount] = strconv.Itoa(c.TxnCount)
	row[catColTotal] = c.TotalSpend.StringFixed(2)
	row[catColAvg] = c.AvgTxn.StringFixed(2)
	return row
}

// MarshalMerchant converts a MerchantSummary to a CSV row.
func MarshalMerchant(m model.MerchantSummary) []string {
	row := make([]string, merNumFields)
	row[merColName] = m.Merchant
	row[merColTotal] = m.TotalSpend.StringFixed(2)
	row[merColCount] = strconv.Itoa(m.TxnCount)
	row[merColLabel] = m.Label
	return row
}

// MarshalSearch converts a SearchSummary to a CSV row.
func MarshalSearch(s model.SearchSummary) []string {
	row := make([]string, srchNumFields)
	row[srchColName] = s.Category
	row[srchColCount] = strconv.Itoa(s.TxnCount)
	row[srchColTotal] = s.TotalSpend.StringFixed(2)
	return row
}
