package model

import "github.com/shopspring/decimal"

// Transaction represents one normalized row of an uploaded transaction file.
type Transaction struct {
	Row         int // 1-based data row in the source file (header excluded)
	ID          string
	Amount      decimal.Decimal // negative = outgoing, positive = incoming
	AmountAbs   decimal.Decimal // |Amount|, fixed at ingestion
	HasAmount   bool            // false when the amount cell is null
	Category    string
	HasCategory bool // false when the enrichment category cell is null
	Merchant    string
	HasMerchant bool // false when the merchant cell is null or the column is absent
}

// IsOutgoing reports whether the transaction is spend (strictly negative
// amount). A null amount is never outgoing.
func (t Transaction) IsOutgoing() bool {
	return t.HasAmount && t.Amount.IsNegative()
}

// Table is the result of ingesting one file.
type Table struct {
	Columns      []string // normalized header, in file order
	Transactions []Transaction
}

// Len returns the number of ingested rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Transactions)
}
