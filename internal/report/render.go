// Package report renders dashboard views for the terminal and as CSV or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/catexplorer/internal/aggregate"
	"github.com/cleared-dev/catexplorer/internal/model"
)

const defaultBarWidth = 30

type styles struct {
	title lipgloss.Style
	bar   lipgloss.Style
	info  lipgloss.Style
	warn  lipgloss.Style
}

// newStyles binds styles to w so colors only appear on terminals.
func newStyles(w io.Writer) styles {
	lr := lipgloss.NewRenderer(w)
	return styles{
		title: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		bar:   lr.NewStyle().Foreground(lipgloss.Color("212")),
		info:  lr.NewStyle().Foreground(lipgloss.Color("241")),
		warn:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	}
}

// Renderer draws a Dashboard as styled terminal tables with bar charts.
type Renderer struct {
	currency string
	barWidth int
}

// NewRenderer creates a Renderer that prefixes money with currency.
func NewRenderer(currency string) *Renderer {
	return &Renderer{currency: currency, barWidth: defaultBarWidth}
}

// Render writes every view of d.
func (r *Renderer) Render(w io.Writer, d *aggregate.Dashboard) error {
	st := newStyles(w)
	if len(d.Categories) == 0 {
		fmt.Fprintln(w, st.info.Render("No spending transactions left after filtering."))
		if d.NoMatch {
			_, err := fmt.Fprintln(w, st.warn.Render(d.Message))
			return err
		}
		return nil
	}

	if err := r.RenderCategories(w, d.CategoriesTitle, d.Categories); err != nil {
		return err
	}

	if d.SelectedCategory != "" {
		fmt.Fprintln(w)
		if err := r.RenderMerchants(w, d.MerchantsTitle, d.Merchants); err != nil {
			return err
		}
	}

	if d.Query != "" {
		fmt.Fprintln(w)
		if d.NoMatch {
			_, err := fmt.Fprintln(w, st.warn.Render(d.Message))
			return err
		}
		if err := r.RenderSearch(w, d.SearchTitle, d.Search); err != nil {
			return err
		}
	}
	return nil
}

// RenderCategories writes the top-categories table.
func (r *Renderer) RenderCategories(w io.Writer, title string, rows []model.CategorySummary) error {
	totals := make([]decimal.Decimal, len(rows))
	for i, c := range rows {
		totals[i] = c.TotalSpend
	}
	bars := r.bars(totals)
	st := newStyles(w)

	fmt.Fprintln(w, st.title.Render(title))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTXNS\tTOTAL SPEND\tAVG TXN\t")
	for i, c := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			c.Category,
			c.TxnCount,
			aggregate.FormatAmount(r.currency, c.TotalSpend, 2),
			aggregate.FormatAmount(r.currency, c.AvgTxn, 2),
			st.bar.Render(bars[i]))
	}
	return tw.Flush()
}

// RenderMerchants writes a drilldown table with its labels.
func (r *Renderer) RenderMerchants(w io.Writer, title string, rows []model.MerchantSummary) error {
	st := newStyles(w)
	fmt.Fprintln(w, st.title.Render(title))
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, st.info.Render("No named merchants in this category."))
		return err
	}

	totals := make([]decimal.Decimal, len(rows))
	for i, m := range rows {
		totals[i] = m.TotalSpend
	}
	bars := r.bars(totals)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MERCHANT\tSPEND\t")
	for i, m := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Merchant, m.Label, st.bar.Render(bars[i]))
	}
	return tw.Flush()
}

// RenderSearch writes the merchant-search breakdown.
func (r *Renderer) RenderSearch(w io.Writer, title string, rows []model.SearchSummary) error {
	totals := make([]decimal.Decimal, len(rows))
	for i, s := range rows {
		totals[i] = s.TotalSpend
	}
	bars := r.bars(totals)
	st := newStyles(w)

	fmt.Fprintln(w, st.title.Render(title))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tTXNS\tTOTAL SPEND\t")
	for i, s := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			s.Category,
			strconv.Itoa(s.TxnCount)+" txns",
			aggregate.FormatAmount(r.currency, s.TotalSpend, 2),
			st.bar.Render(bars[i]))
	}
	return tw.Flush()
}

// bars scales each value against the largest one. Any positive value gets
// at least one cell.
func (r *Renderer) bars(values []decimal.Decimal) []string {
	out := make([]string, len(values))
	peak := decimal.Zero
	for _, v := range values {
		if v.GreaterThan(peak) {
			peak = v
		}
	}
	if peak.IsZero() {
		return out
	}

	width := decimal.NewFromInt(int64(r.barWidth))
	for i, v := range values {
		n := int(v.Mul(width).Div(peak).Round(0).IntPart())
		if n == 0 && v.IsPositive() {
			n = 1
		}
		out[i] = strings.Repeat("█", n)
	}
	return out
}

// WriteJSON writes d as indented JSON.
func WriteJSON(w io.Writer, d *aggregate.Dashboard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding dashboard: %w", err)
	}
	return nil
}
