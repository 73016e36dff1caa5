package model

import "github.com/shopspring/decimal"

// CategorySummary is one row of the top-categories view.
type CategorySummary struct {
	Category   string          `json:"category"`
	TxnCount   int             `json:"txn_count"`
	TotalSpend decimal.Decimal `json:"total_spend"`
	AvgTxn     decimal.Decimal `json:"avg_txn"`
}

// MerchantSummary is one row of a category drilldown.
type MerchantSummary struct {
	Merchant   string          `json:"merchant"`
	TotalSpend decimal.Decimal `json:"total_spend"`
	TxnCount   int             `json:"txn_count"`
	Label      string          `json:"label"` // "£1,234 (5 txns)"
}

// SearchSummary is one row of the merchant-search view, grouped by category.
type SearchSummary struct {
	Category   string          `json:"category"`
	TxnCount   int             `json:"txn_count"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}
