package aggregate

import (
	"errors"

	"github.com/cleared-dev/catexplorer/internal/model"
)

// Request is the interaction state of one dashboard render.
type Request struct {
	IncludeIncoming bool
	Category        string // empty selects the top-ranked category
	Query           string // empty skips the merchant search
}

// Dashboard holds every view produced by one render.
type Dashboard struct {
	IncludeIncoming bool `json:"include_incoming"`
	RowsIngested    int  `json:"rows_ingested"`
	RowsFiltered    int  `json:"rows_filtered"`

	CategoriesTitle string                  `json:"categories_title"`
	Categories      []model.CategorySummary `json:"categories"`

	SelectedCategory string                  `json:"selected_category,omitempty"`
	MerchantsTitle   string                  `json:"merchants_title,omitempty"`
	Merchants        []model.MerchantSummary `json:"merchants"`

	Query       string                `json:"query,omitempty"`
	SearchTitle string                `json:"search_title,omitempty"`
	Search      []model.SearchSummary `json:"search"`
	NoMatch     bool                  `json:"no_match"`
	Message     string                `json:"message,omitempty"`
}

// Explore runs the full pipeline for one interaction: filter, rank, drill
// into the selected category and, when a query is given, search merchants.
// A search without matches sets NoMatch and Message; it is not an error.
func (p *Pipeline) Explore(tbl *model.Table, req Request) (*Dashboard, error) {
	var txns []model.Transaction
	if tbl != nil {
		txns = tbl.Transactions
	}

	rows := p.Filter(txns, req.IncludeIncoming)
	ranking := p.RankCategories(rows)

	d := &Dashboard{
		IncludeIncoming: req.IncludeIncoming,
		RowsIngested:    len(txns),
		RowsFiltered:    len(rows),
		CategoriesTitle: CategoriesTitle(p.opts.CategoryLimit),
		Categories:      ranking,
		Merchants:       []model.MerchantSummary{},
		Search:          []model.SearchSummary{},
	}

	selected := req.Category
	if selected == "" && len(ranking) > 0 {
		selected = ranking[0].Category
	}
	if selected != "" {
		merchants, err := p.Drilldown(rows, ranking, selected)
		if err != nil {
			return nil, err
		}
		d.SelectedCategory = selected
		d.MerchantsTitle = MerchantsTitle(selected)
		d.Merchants = merchants
	}

	if req.Query != "" {
		d.Query = req.Query
		d.SearchTitle = SearchTitle(req.Query)

		results, err := p.Search(rows, req.Query)
		var nm NoMatchFound
		switch {
		case errors.As(err, &nm):
			d.NoMatch = true
			d.Message = nm.Message()
		case err != nil:
			return nil, err
		default:
			d.Search = results
		}
	}

	return d, nil
}
