// Package tracker wires the pipeline together: ingestion, normalization,
// the series store, the trade log, and chart assembly.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/etfgraph/etfgraph/chart"
	"github.com/etfgraph/etfgraph/config"
	"github.com/etfgraph/etfgraph/ingest"
	"github.com/etfgraph/etfgraph/normalize"
	"github.com/etfgraph/etfgraph/pkg/id"
	"github.com/etfgraph/etfgraph/pricing"
	"github.com/etfgraph/etfgraph/quotes"
	"github.com/etfgraph/etfgraph/store"
	"github.com/etfgraph/etfgraph/tradelog"
)

// QuoteSource is the quote API collaborator.
type QuoteSource interface {
	DailySeries(ctx context.Context, symbol string) ([]quotes.Bar, error)
	LatestClose(ctx context.Context, symbol string) (quotes.Quote, error)
}

// Tracker owns the series store and coordinates loads against it. Loads are
// serialized through the store's generation token; callers may fire a new
// reload while another is in flight and only the newest one commits.
type Tracker struct {
	cfg     *config.Config
	store   *store.SeriesStore
	quotes  QuoteSource
	trades  tradelog.Log
	builder *normalize.Builder
	log     *slog.Logger

	now func() time.Time
}

func New(cfg *config.Config, qs QuoteSource, trades tradelog.Log, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{
		cfg:     cfg,
		store:   store.New(),
		quotes:  qs,
		trades:  trades,
		builder: normalize.NewBuilder(log),
		log:     log,
		now:     time.Now,
	}
}

// Reload rebuilds the whole store: every configured symbol's history from
// the quote API, then the trade markers from the trade log. A symbol whose
// fetch fails is logged and left out of this load; the other symbols still
// commit. The error aggregates every failed symbol.
func (t *Tracker) Reload(ctx context.Context) error {
	gen := t.store.Begin()
	started := t.now()

	var errs []error
	for _, sc := range t.cfg.Symbols {
		runID := id.New()
		points, skipped, err := t.fetchSeries(ctx, sc.Symbol)
		if err != nil {
			t.log.Error("fetch failed", "run_id", runID, "symbol", sc.Symbol, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", sc.Symbol, err))
			continue
		}
		if !t.store.Replace(gen, sc.Symbol, points) {
			t.log.Warn("stale load dropped", "run_id", runID, "symbol", sc.Symbol)
			return nil
		}
		t.log.Info("series loaded", "run_id", runID, "symbol", sc.Symbol,
			"points", len(points), "skipped", skipped)
		t.recordRun(tradelog.RunRecord{
			RunID:   runID,
			Symbol:  sc.Symbol,
			Source:  "api",
			Points:  len(points),
			Skipped: skipped,
			Started: started,
		})
	}

	markers, err := t.trades.List()
	if err != nil {
		t.log.Error("load trade points failed", "error", err)
		errs = append(errs, fmt.Errorf("load trade points: %w", err))
	} else {
		t.store.ReplaceMarkers(gen, markers)
	}

	return errors.Join(errs...)
}

func (t *Tracker) fetchSeries(ctx context.Context, symbol string) (pricing.Series, int, error) {
	bars, err := t.quotes.DailySeries(ctx, symbol)
	if err != nil {
		return nil, 0, err
	}
	points, skipped := t.builder.Build(ingest.FromBars(bars))
	return points, skipped, nil
}

// ImportCSV loads one symbol's history from a tabular file instead of the
// quote API and commits it to the store. It returns the accepted point
// count and the number of rows dropped by normalization.
func (t *Tracker) ImportCSV(symbol, path string) (points int, skipped int, err error) {
	if _, ok := t.cfg.Symbol(symbol); !ok {
		return 0, 0, fmt.Errorf("unknown symbol %q", symbol)
	}

	rows, err := ingest.ReadCSVFile(path)
	if err != nil {
		return 0, 0, err
	}

	series, skipped := t.builder.Build(rows)

	gen := t.store.Begin()
	t.store.Replace(gen, symbol, series)

	markers, err := t.trades.List()
	if err != nil {
		return len(series), skipped, fmt.Errorf("load trade points: %w", err)
	}
	t.store.ReplaceMarkers(gen, markers)

	t.recordRun(tradelog.RunRecord{
		RunID:   id.New(),
		Symbol:  symbol,
		Source:  "csv",
		Points:  len(series),
		Skipped: skipped,
		Started: t.now(),
	})
	t.log.Info("csv imported", "symbol", symbol, "points", len(series), "skipped", skipped)
	return len(series), skipped, nil
}

func (t *Tracker) recordRun(r tradelog.RunRecord) {
	if err := t.trades.RecordRun(r); err != nil {
		// Audit only; the load itself already committed.
		t.log.Warn("record ingestion run failed", "run_id", r.RunID, "error", err)
	}
}

// SaveTrade validates the user input, fetches the latest close for the
// symbol, and upserts the trade record under its symbol_day key. Either
// both the fetch and the upsert succeed or nothing is written.
func (t *Tracker) SaveTrade(ctx context.Context, symbol, day, action string, quantity float64) (tradelog.Record, error) {
	if _, ok := t.cfg.Symbol(symbol); !ok {
		return tradelog.Record{}, fmt.Errorf("unknown symbol %q", symbol)
	}
	date, ok := normalize.ParseDate(day)
	if !ok {
		return tradelog.Record{}, fmt.Errorf("invalid date %q", day)
	}
	act, err := tradelog.ParseAction(action)
	if err != nil {
		return tradelog.Record{}, err
	}
	if math.IsNaN(quantity) || quantity <= 0 {
		return tradelog.Record{}, fmt.Errorf("quantity must be a positive number")
	}

	q, err := t.quotes.LatestClose(ctx, symbol)
	if err != nil {
		return tradelog.Record{}, fmt.Errorf("fetch price for %s: %w", symbol, err)
	}

	rec := tradelog.Record{
		Symbol:   symbol,
		Day:      date.Format(pricing.DateFormat),
		Action:   act,
		Quantity: quantity,
		Price:    q.Close,
	}
	if err := t.trades.Upsert(rec); err != nil {
		return tradelog.Record{}, fmt.Errorf("save trade: %w", err)
	}
	t.log.Info("trade saved", "key", rec.Key(), "action", rec.Action, "quantity", rec.Quantity)
	return rec, nil
}

// DeleteTrade removes the trade record for symbol and day.
func (t *Tracker) DeleteTrade(symbol, day string) error {
	date, ok := normalize.ParseDate(day)
	if !ok {
		return fmt.Errorf("invalid date %q", day)
	}
	if err := t.trades.Delete(symbol, date.Format(pricing.DateFormat)); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	return nil
}

// ListTrades returns every saved trade record.
func (t *Tracker) ListTrades() ([]tradelog.Record, error) {
	return t.trades.List()
}

// LatestPrice fetches the most recent close for a symbol.
func (t *Tracker) LatestPrice(ctx context.Context, symbol string) (quotes.Quote, error) {
	if symbol == "" {
		return quotes.Quote{}, fmt.Errorf("symbol is required")
	}
	return t.quotes.LatestClose(ctx, symbol)
}

// ChartConfig assembles the chart description for one symbol: history
// narrowed to the window anchored at now, with the symbol's trade markers
// joined against it.
func (t *Tracker) ChartConfig(symbol string, window pricing.Window) (chart.Config, error) {
	sc, ok := t.cfg.Symbol(symbol)
	if !ok {
		return chart.Config{}, fmt.Errorf("unknown symbol %q", symbol)
	}

	points := window.Filter(t.store.Get(sc.Symbol), t.now())

	var markers []chart.Marker
	for _, r := range t.store.Markers() {
		if r.Symbol == sc.Symbol {
			markers = append(markers, chart.Marker{
				Day:      r.Day,
				Action:   string(r.Action),
				Quantity: r.Quantity,
			})
		}
	}

	return chart.Build(sc.Symbol, sc.Color, points, chart.Join(markers, points)), nil
}

// RenderAll writes the chart description of every configured symbol through
// the renderer.
func (t *Tracker) RenderAll(r chart.Renderer, window pricing.Window) error {
	for _, sc := range t.cfg.Symbols {
		cfg, err := t.ChartConfig(sc.Symbol, window)
		if err != nil {
			return err
		}
		if err := r.Render(sc.Symbol, cfg); err != nil {
			return fmt.Errorf("render %s: %w", sc.Symbol, err)
		}
	}
	return nil
}
