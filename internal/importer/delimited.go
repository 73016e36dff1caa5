package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/catexplorer/internal/model"
)

// Built-in formats.
const (
	FormatCSV = "csv"
	FormatTSV = "tsv"
)

// DelimitedParser reads enriched transaction exports with a header row.
type DelimitedParser struct {
	format string
	comma  rune
}

// NewCSVParser returns a comma-separated parser.
func NewCSVParser() *DelimitedParser {
	return &DelimitedParser{format: FormatCSV, comma: ','}
}

// NewTSVParser returns a tab-separated parser.
func NewTSVParser() *DelimitedParser {
	return &DelimitedParser{format: FormatTSV, comma: '\t'}
}

// Format returns the parser name.
func (p *DelimitedParser) Format() string { return p.format }

// Parse reads the header, validates required columns and converts every data
// row. The first bad amount aborts the whole file.
func (p *DelimitedParser) Parse(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.comma
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, index, err := NormalizeHeader(header)
	if err != nil {
		return nil, err
	}

	merchantCol, hasMerchantCol := index[ColMerchant]
	tbl := &model.Table{Columns: cols}

	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}

		txn, err := parseRow(rec, row, index[ColID], index[ColAmount], index[ColCategory])
		if err != nil {
			return nil, err
		}
		if hasMerchantCol && !IsNull(rec[merchantCol]) {
			txn.Merchant = rec[merchantCol]
			txn.HasMerchant = true
		}
		tbl.Transactions = append(tbl.Transactions, txn)
	}
	return tbl, nil
}

func parseRow(rec []string, row, idCol, amountCol, categoryCol int) (model.Transaction, error) {
	id := strings.TrimSpace(rec[idCol])
	raw := rec[amountCol]

	txn := model.Transaction{Row: row, ID: id}

	// A null amount keeps the row; it never counts as outgoing and adds
	// nothing to totals.
	if trimmed := strings.TrimSpace(raw); !IsNull(trimmed) {
		amount, err := decimal.NewFromString(trimmed)
		if err != nil {
			return model.Transaction{}, InvalidAmountError{Row: row, ID: id, Value: raw}
		}
		txn.Amount = amount
		txn.AmountAbs = amount.Abs()
		txn.HasAmount = true
	}

	if cat := rec[categoryCol]; !IsNull(cat) {
		txn.Category = cat
		txn.HasCategory = true
	}
	return txn, nil
}
