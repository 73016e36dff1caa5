package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/catexplorer/internal/aggregate"
	"github.com/cleared-dev/catexplorer/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleDashboard() *aggregate.Dashboard {
	return &aggregate.Dashboard{
		CategoriesTitle: "Top 50 Spending Categories",
		Categories: []model.CategorySummary{
			{Category: "Rent", TxnCount: 1, TotalSpend: dec("1200"), AvgTxn: dec("1200")},
			{Category: "Groceries", TxnCount: 3, TotalSpend: dec("77.49"), AvgTxn: dec("25.83")},
		},
		SelectedCategory: "Groceries",
		MerchantsTitle:   "Top Merchants in Groceries",
		Merchants: []model.MerchantSummary{
			{Merchant: "Tesco", TotalSpend: dec("50"), TxnCount: 1, Label: "£50 (1 txns)"},
			{Merchant: "Aldi", TotalSpend: dec("20"), TxnCount: 1, Label: "£20 (1 txns)"},
		},
		Query:       "tesco",
		SearchTitle: "Spend Breakdown for 'Tesco'",
		Search: []model.SearchSummary{
			{Category: "Groceries", TxnCount: 2, TotalSpend: dec("57.49")},
		},
	}
}

func TestWriteCategories(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCategories(&buf, sampleDashboard().Categories)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, strings.Split(CategoryHeader, ","), records[0])
	assert.Equal(t, []string{"Rent", "1", "1200.00", "1200.00"}, records[1])
	assert.Equal(t, []string{"Groceries", "3", "77.49", "25.83"}, records[2])
}

func TestWriteMerchants(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMerchants(&buf, sampleDashboard().Merchants)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"merchant", "total_spend", "txn_count", "label"}, records[0])
	assert.Equal(t, []string{"Tesco", "50.00", "1", "£50 (1 txns)"}, records[1])
}

func TestWriteSearch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSearch(&buf, sampleDashboard().Search)
	require.NoError(t, err)
	assert.Equal(t, "category,txn_count,total_spend\nGroceries,2,57.49\n", buf.String())
}

func TestWriteCategories_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCategories(&buf, nil))
	assert.Equal(t, CategoryHeader+"\n", buf.String())
}

func TestWriteCategories_QuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCategories(&buf, []model.CategorySummary{
		{Category: `Bills, "Utilities"`, TxnCount: 1, TotalSpend: dec("5"), AvgTxn: dec("5")},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `Bills, "Utilities"`, records[1][0])
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer("£").Render(&buf, sampleDashboard())
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "Top 50 Spending Categories")
	assert.Contains(t, out, "£1,200.00")
	assert.Contains(t, out, "£25.83")
	assert.Contains(t, out, "Top Merchants in Groceries")
	assert.Contains(t, out, "£50 (1 txns)")
	assert.Contains(t, out, "Spend Breakdown for 'Tesco'")
	assert.Contains(t, out, "2 txns")
	assert.Contains(t, out, "£57.49")
	assert.Contains(t, out, strings.Repeat("█", defaultBarWidth), "largest value fills the bar")
}

func TestRender_NoMatch(t *testing.T) {
	d := sampleDashboard()
	d.Search = nil
	d.Query = "zzz"
	d.NoMatch = true
	d.Message = "No results found for 'zzz'."

	var buf bytes.Buffer
	require.NoError(t, NewRenderer("£").Render(&buf, d))
	assert.Contains(t, buf.String(), "No results found for 'zzz'.")
	assert.NotContains(t, buf.String(), "Spend Breakdown")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer("£").Render(&buf, &aggregate.Dashboard{}))
	assert.Contains(t, buf.String(), "No spending transactions")
}

func TestRender_EmptyWithNoMatch(t *testing.T) {
	d := &aggregate.Dashboard{
		Query:   "zzz",
		NoMatch: true,
		Message: "No results found for 'zzz'.",
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer("£").Render(&buf, d))
	out := buf.String()
	assert.Contains(t, out, "No spending transactions")
	assert.Contains(t, out, "No results found for 'zzz'.")
}

func TestRender_MerchantsWithoutNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer("$").RenderMerchants(&buf, "Top Merchants in Transport", nil))
	assert.Contains(t, buf.String(), "No named merchants")
}

func TestBars(t *testing.T) {
	r := NewRenderer("£")
	got := r.bars([]decimal.Decimal{dec("100"), dec("50"), dec("0.01"), dec("0")})
	assert.Len(t, []rune(got[0]), defaultBarWidth)
	assert.Len(t, []rune(got[1]), defaultBarWidth/2)
	assert.Len(t, []rune(got[2]), 1, "tiny values still show")
	assert.Empty(t, got[3])

	assert.Equal(t, []string{"", ""}, r.bars([]decimal.Decimal{dec("0"), dec("0")}))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleDashboard()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Groceries", got["selected_category"])
	assert.Equal(t, false, got["no_match"])

	cats, ok := got["categories"].([]any)
	require.True(t, ok)
	first := cats[0].(map[string]any)
	assert.Equal(t, "Rent", first["category"])
	assert.Equal(t, "1200", first["total_spend"])
}
