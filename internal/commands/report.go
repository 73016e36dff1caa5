package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/catexplorer/internal/aggregate"
	"github.com/cleared-dev/catexplorer/internal/config"
	"github.com/cleared-dev/catexplorer/internal/importer"
	"github.com/cleared-dev/catexplorer/internal/report"
)

// Output formats and CSV views accepted by the report command.
const (
	outputTable = "table"
	outputCSV   = "csv"
	outputJSON  = "json"

	viewCategories = "categories"
	viewMerchants  = "merchants"
	viewSearch     = "search"
)

type reportOptions struct {
	includeIncoming bool
	category        string
	search          string
	output          string
	view            string
}

func newReportCommand(root *rootOptions) *cobra.Command {
	var o reportOptions

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Summarize a transaction export by category and merchant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("include-incoming") {
				o.includeIncoming = cfg.Filter.IncludeIncoming
			}
			return runReport(cmd.OutOrStdout(), cfg, log, args[0], o)
		},
	}

	cmd.Flags().BoolVar(&o.includeIncoming, "include-incoming", false, "include incoming (positive) transactions")
	cmd.Flags().StringVar(&o.category, "category", "", "category to drill into (default: top-ranked)")
	cmd.Flags().StringVar(&o.search, "search", "", "merchant name substring to search for")
	cmd.Flags().StringVarP(&o.output, "output", "o", outputTable, "output format: table, csv, json")
	cmd.Flags().StringVar(&o.view, "view", viewCategories, "view written by --output csv: categories, merchants, search")

	return cmd
}

func runReport(w io.Writer, cfg *config.Config, log zerolog.Logger, path string, o reportOptions) error {
	switch o.output {
	case outputTable, outputCSV, outputJSON:
	default:
		return fmt.Errorf("unknown output %q: want table, csv or json", o.output)
	}
	switch o.view {
	case viewCategories, viewMerchants, viewSearch:
	default:
		return fmt.Errorf("unknown view %q: want categories, merchants or search", o.view)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening transactions: %w", err)
	}
	defer f.Close()

	tbl, err := importer.DefaultRegistry().Load(path, f)
	if err != nil {
		return err
	}
	log.Debug().Str("file", path).Int("rows", tbl.Len()).Msg("loaded transactions")

	pipeline := aggregate.New(cfg.PipelineOptions())
	d, err := pipeline.Explore(tbl, aggregate.Request{
		IncludeIncoming: o.includeIncoming,
		Category:        o.category,
		Query:           o.search,
	})
	if err != nil {
		return fmt.Errorf("exploring transactions: %w", err)
	}
	log.Info().
		Int("rows", d.RowsIngested).
		Int("aggregated", d.RowsFiltered).
		Int("categories", len(d.Categories)).
		Msg("report ready")

	switch o.output {
	case outputJSON:
		return report.WriteJSON(w, d)
	case outputCSV:
		return writeCSVView(w, log, d, o.view)
	default:
		return report.NewRenderer(cfg.Display.CurrencySymbol).Render(w, d)
	}
}

func writeCSVView(w io.Writer, log zerolog.Logger, d *aggregate.Dashboard, view string) error {
	switch view {
	case viewMerchants:
		return report.WriteMerchants(w, d.Merchants)
	case viewSearch:
		if d.Query == "" {
			return errors.New("--view search requires --search")
		}
		if d.NoMatch {
			log.Info().Str("query", d.Query).Msg(d.Message)
			return nil
		}
		return report.WriteSearch(w, d.Search)
	default:
		return report.WriteCategories(w, d.Categories)
	}
}
