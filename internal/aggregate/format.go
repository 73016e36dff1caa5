package aggregate

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatAmount renders d with thousands separators and the given number of
// decimal places, rounding half to even: FormatAmount("£", 1234.5, 0) = "£1,234".
func FormatAmount(symbol string, d decimal.Decimal, places int32) string {
	r := d.RoundBank(places)
	whole := r.Truncate(0)

	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
		whole = whole.Abs()
	}

	s := sign + symbol + humanize.Comma(whole.IntPart())
	if places > 0 {
		frac := r.Sub(whole).StringFixed(places) // "0.50"
		s += frac[1:]
	}
	return s
}

// MerchantLabel is the bar label of a drilldown row, e.g. "£1,234 (5 txns)".
func MerchantLabel(symbol string, total decimal.Decimal, count int) string {
	return fmt.Sprintf("%s (%d txns)", FormatAmount(symbol, total, 0), count)
}

// CategoriesTitle heads the top-categories view.
func CategoriesTitle(limit int) string {
	if limit <= 0 {
		return "Spending Categories"
	}
	return fmt.Sprintf("Top %d Spending Categories", limit)
}

// MerchantsTitle heads a drilldown view.
func MerchantsTitle(category string) string {
	return "Top Merchants in " + category
}

// SearchTitle heads a merchant-search view.
func SearchTitle(query string) string {
	return fmt.Sprintf("Spend Breakdown for '%s'", cases.Title(language.Und).String(query))
}
