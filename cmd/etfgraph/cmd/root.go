package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/etfgraph/etfgraph/config"
	"github.com/etfgraph/etfgraph/quotes"
	"github.com/etfgraph/etfgraph/tracker"
	"github.com/etfgraph/etfgraph/tradelog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "etfgraph",
	Short: "Track ETF close prices and your buy/sell points",
	Long: `etfgraph tracks a small set of ETF symbols, records manual buy/sell
trade points in a local SQLite store, fetches daily close prices from a
quote API, and writes period-filtered line-chart descriptions.

It provides tools for:
  - Fetching the latest daily close for a symbol
  - Recording and deleting buy/sell trade points
  - Importing price history from CSV exports
  - Writing Chart.js-shaped chart JSON filtered by a period window`,
}

var (
	cfgFile string
	verbose bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "etfgraph.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func logger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openApp loads the config and wires the tracker with its collaborators.
// The caller owns the returned trade log and must close it.
func openApp() (*config.Config, *tradelog.SQLite, *tracker.Tracker, error) {
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	var qc *quotes.Client
	if cfg.Quotes.CacheDir != "" {
		qc = quotes.NewCachedClient(cfg.Quotes.BaseURL, cfg.Quotes.APIKey, cfg.Quotes.CacheDir)
	} else {
		qc = quotes.NewClient(cfg.Quotes.BaseURL, cfg.Quotes.APIKey)
	}

	tl, err := tradelog.NewSQLite(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open trade log: %w", err)
	}

	return cfg, tl, tracker.New(cfg, qc, tl, logger()), nil
}
