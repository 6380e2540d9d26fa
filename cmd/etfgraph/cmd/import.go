package cmd

import (
	"fmt"
	"strings"

	"github.com/etfgraph/etfgraph/chart"
	"github.com/etfgraph/etfgraph/pricing"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import price history for a symbol from a CSV export",
	Long: `Load a symbol's price history from a tabular file instead of the
quote API. Column names are detected from the header (Date/Close/Price and
common variants) and dates may be in any supported format. Rows that fail
normalization are dropped and counted.

Example:
  etfgraph import gld_history.csv --symbol GLD --period 1y`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importSymbol string
	importPeriod string
)

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importSymbol, "symbol", "s", "", "tracked symbol (required)")
	importCmd.Flags().StringVarP(&importPeriod, "period", "p", "", "period window for the chart (default from config)")
	importCmd.MarkFlagRequired("symbol")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, tl, tr, err := openApp()
	if err != nil {
		return err
	}
	defer tl.Close()

	symbol := strings.ToUpper(strings.TrimSpace(importSymbol))
	points, skipped, err := tr.ImportCSV(symbol, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d point(s) for %s", points, symbol)
	if skipped > 0 {
		fmt.Printf(" (%d row(s) skipped)", skipped)
	}
	fmt.Println()

	period := importPeriod
	if period == "" {
		period = cfg.Chart.DefaultPeriod
	}
	window := pricing.ParseWindow(period)

	chartCfg, err := tr.ChartConfig(symbol, window)
	if err != nil {
		return err
	}
	renderer := &chart.FileRenderer{Dir: cfg.Chart.OutputDir}
	if err := renderer.Render(symbol, chartCfg); err != nil {
		return err
	}

	fmt.Printf("✓ Wrote chart to %s (window %s)\n", cfg.Chart.OutputDir, window)
	return nil
}
