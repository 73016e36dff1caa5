package commands_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/catexplorer/internal/aggregate"
	"github.com/cleared-dev/catexplorer/internal/buildinfo"
	"github.com/cleared-dev/catexplorer/internal/commands"
	"github.com/cleared-dev/catexplorer/internal/config"
	"github.com/cleared-dev/catexplorer/internal/importer"
	"github.com/cleared-dev/catexplorer/internal/report"
)

var fixturePath = filepath.Join("..", "..", "testdata", "transactions.csv")

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func decodeDashboard(t *testing.T, out string) aggregate.Dashboard {
	t.Helper()
	var d aggregate.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	return d
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, buildinfo.Version)
}

func TestReport_Table(t *testing.T) {
	out, _, err := runCLI(t, "report", fixturePath)
	require.NoError(t, err)

	assert.Contains(t, out, "Top 50 Spending Categories")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "£1,200.00")
	assert.Contains(t, out, "Top Merchants in Rent")
	assert.Contains(t, out, "£1,200 (1 txns)")
	assert.NotContains(t, out, "Salary")
}

func TestReport_TableSearch(t *testing.T) {
	out, _, err := runCLI(t, "report", fixturePath, "--category", "Groceries", "--search", "tesco")
	require.NoError(t, err)

	assert.Contains(t, out, "Top Merchants in Groceries")
	assert.Contains(t, out, "£50 (2 txns)")
	assert.Contains(t, out, "Spend Breakdown for 'Tesco'")
	assert.Contains(t, out, "£57.49")
}

func TestReport_TableNoMatch(t *testing.T) {
	out, _, err := runCLI(t, "report", fixturePath, "--search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found for 'zzz'.")
}

func TestReport_TableNoSpendNoMatch(t *testing.T) {
	path := writeFile(t, "incoming.csv", "id,amount,enrichment_categories,enrichment_merchant_name\n1,2500,Salary,Employer\n")

	out, _, err := runCLI(t, "report", path, "--search", "tesco")
	require.NoError(t, err)
	assert.Contains(t, out, "No spending transactions left after filtering.")
	assert.Contains(t, out, "No results found for 'tesco'.")
}

func TestReport_JSON(t *testing.T) {
	out, _, err := runCLI(t, "report", fixturePath, "-o", "json")
	require.NoError(t, err)

	d := decodeDashboard(t, out)
	require.Len(t, d.Categories, 5)
	assert.Equal(t, "Rent", d.Categories[0].Category)
	assert.Equal(t, "Rent", d.SelectedCategory)
	assert.Equal(t, 9, d.RowsFiltered)
}

func TestReport_IncludeIncoming(t *testing.T) {
	out, _, err := runCLI(t, "report", fixturePath, "-o", "json", "--include-incoming")
	require.NoError(t, err)

	d := decodeDashboard(t, out)
	require.NotEmpty(t, d.Categories)
	assert.Equal(t, "Salary", d.Categories[0].Category)
	assert.True(t, d.IncludeIncoming)
}

func TestReport_IncludeIncomingFromEnv(t *testing.T) {
	t.Setenv(config.EnvIncludeIncoming, "true")

	out, _, err := runCLI(t, "report", fixturePath, "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "Salary", decodeDashboard(t, out).Categories[0].Category)

	// An explicit flag wins over the environment.
	out, _, err = runCLI(t, "report", fixturePath, "-o", "json", "--include-incoming=false")
	require.NoError(t, err)
	assert.Equal(t, "Rent", decodeDashboard(t, out).Categories[0].Category)
}

func TestReport_CSVViews(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		header    string
		firstLine string
	}{
		{
			name:      "categories",
			args:      nil,
			header:    report.CategoryHeader,
			firstLine: "Rent,1,1200.00,1200.00",
		},
		{
			name:      "merchants",
			args:      []string{"--view", "merchants", "--category", "Groceries"},
			header:    report.MerchantHeader,
			firstLine: "Tesco,50.00,2,£50 (2 txns)",
		},
		{
			name:      "search",
			args:      []string{"--view", "search", "--search", "TESCO"},
			header:    report.SearchHeader,
			firstLine: "Groceries,2,57.49",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"report", fixturePath, "-o", "csv"}, tt.args...)
			out, _, err := runCLI(t, args...)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.GreaterOrEqual(t, len(lines), 2)
			assert.Equal(t, tt.header, lines[0])
			assert.Equal(t, tt.firstLine, lines[1])
		})
	}
}

func TestReport_CSVSearchNoMatch(t *testing.T) {
	out, errOut, err := runCLI(t, "report", fixturePath, "-o", "csv", "--view", "search", "--search", "zzz")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No results found for 'zzz'.")
}

func TestReport_CSVSearchWithoutQuery(t *testing.T) {
	_, _, err := runCLI(t, "report", fixturePath, "-o", "csv", "--view", "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--search")
}

func TestReport_ConfigFile(t *testing.T) {
	cfgPath := writeFile(t, config.FileName, "filter:\n  category_limit: 2\ndisplay:\n  currency_symbol: \"$\"\n")

	out, _, err := runCLI(t, "report", fixturePath, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Top 2 Spending Categories")
	assert.Contains(t, out, "$1,200 (1 txns)")
	assert.NotContains(t, out, "Subscriptions")
}

func TestReport_Errors(t *testing.T) {
	missingColumn := writeFile(t, "bad.csv", "id,amount\nt1,-1\n")
	badAmount := writeFile(t, "amount.csv", "id,amount,enrichment_categories\nt1,oops,Food\n")

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, err error)
	}{
		{
			name: "missing file",
			args: []string{"report", filepath.Join(t.TempDir(), "nope.csv")},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, os.ErrNotExist))
			},
		},
		{
			name: "missing column",
			args: []string{"report", missingColumn},
			check: func(t *testing.T, err error) {
				var mc importer.MissingColumnError
				require.ErrorAs(t, err, &mc)
				assert.Equal(t, importer.ColCategory, mc.Column)
			},
		},
		{
			name: "invalid amount",
			args: []string{"report", badAmount},
			check: func(t *testing.T, err error) {
				var ia importer.InvalidAmountError
				require.ErrorAs(t, err, &ia)
				assert.Equal(t, "oops", ia.Value)
			},
		},
		{
			name: "unknown category",
			args: []string{"report", fixturePath, "--category", "Travel"},
			check: func(t *testing.T, err error) {
				var uc aggregate.UnknownCategoryError
				require.ErrorAs(t, err, &uc)
			},
		},
		{
			name: "bad output",
			args: []string{"report", fixturePath, "-o", "xml"},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "unknown output")
			},
		},
		{
			name: "bad view",
			args: []string{"report", fixturePath, "-o", "csv", "--view", "accounts"},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "unknown view")
			},
		},
		{
			name: "bad log level",
			args: []string{"report", fixturePath, "--log-level", "loud"},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "logging.level")
			},
		},
		{
			name: "explicit config missing",
			args: []string{"report", fixturePath, "--config", filepath.Join(t.TempDir(), "missing.yaml")},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, os.ErrNotExist))
			},
		},
		{
			name: "no file argument",
			args: []string{"report"},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "arg")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestServe_InvalidConfig(t *testing.T) {
	_, _, err := runCLI(t, "serve", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestInit_WritesConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	out, _, err := runCLI(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized catexplorer config")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	env, err := os.ReadFile(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	assert.Contains(t, string(env), config.EnvAddr)
	assert.Contains(t, string(env), config.EnvIncludeIncoming)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, "init", dir)
	require.NoError(t, err)

	cfgPath := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  addr: \":9000\"\n"), 0o644))

	_, _, err = runCLI(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCLI(t, "init", dir, "--force")
	require.NoError(t, err)

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}
