package cmd

import (
	"fmt"

	"github.com/etfgraph/etfgraph/chart"
	"github.com/etfgraph/etfgraph/pricing"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Reload price history and write chart JSON for every symbol",
	Long: `Fetch the daily close history of every configured symbol from the
quote API, join the saved trade points against it, and write one chart
description file per symbol, filtered by the period window.

Example:
  etfgraph chart --period 3m`,
	RunE: runChart,
}

var chartPeriod string

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartPeriod, "period", "p", "", "period window: 1m, 3m, 1y, 3y, 5y (default from config)")
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, tl, tr, err := openApp()
	if err != nil {
		return err
	}
	defer tl.Close()

	period := chartPeriod
	if period == "" {
		period = cfg.Chart.DefaultPeriod
	}
	window := pricing.ParseWindow(period)

	// A partial reload still charts the symbols that loaded.
	reloadErr := tr.Reload(cmd.Context())

	renderer := &chart.FileRenderer{Dir: cfg.Chart.OutputDir}
	if err := tr.RenderAll(renderer, window); err != nil {
		return err
	}

	fmt.Printf("✓ Wrote charts for %d symbol(s) to %s (window %s)\n",
		len(cfg.Symbols), cfg.Chart.OutputDir, window)
	if reloadErr != nil {
		return fmt.Errorf("some symbols failed to load: %w", reloadErr)
	}
	return nil
}
