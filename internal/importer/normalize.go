package importer

import "strings"

// Normalized column names.
const (
	ColID       = "id"
	ColAmount   = "amount"
	ColCategory = "enrichment_categories"
	ColMerchant = "enrichment_merchant_name"
)

// RequiredColumns must be present in every file.
var RequiredColumns = []string{ColAmount, ColCategory, ColID}

// nullTokens are the cell values pandas reads as missing by default.
var nullTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNull reports whether a raw cell value counts as missing.
func IsNull(v string) bool {
	_, ok := nullTokens[v]
	return ok
}

// NormalizeColumn trims and lower-cases a header name.
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeHeader normalizes every header name and returns a name->index map.
// A UTF-8 byte order mark on the first header is dropped.
func NormalizeHeader(header []string) ([]string, map[string]int, error) {
	cols := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := NormalizeColumn(h)
		cols[i] = name
		if name == "" {
			continue
		}
		if prev, ok := index[name]; ok {
			return nil, nil, DuplicateColumnError{Column: name, First: prev, Second: i}
		}
		index[name] = i
	}

	for _, req := range RequiredColumns {
		if _, ok := index[req]; !ok {
			return nil, nil, MissingColumnError{Column: req}
		}
	}
	return cols, index, nil
}
