package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etfgraph/etfgraph/chart"
	"github.com/etfgraph/etfgraph/config"
	"github.com/etfgraph/etfgraph/pricing"
	"github.com/etfgraph/etfgraph/quotes"
	"github.com/etfgraph/etfgraph/tradelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuotes struct {
	bars   map[string][]quotes.Bar
	latest map[string]quotes.Quote
	errs   map[string]error

	latestCalls int
}

func (f *fakeQuotes) DailySeries(_ context.Context, symbol string) ([]quotes.Bar, error) {
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.bars[symbol], nil
}

func (f *fakeQuotes) LatestClose(_ context.Context, symbol string) (quotes.Quote, error) {
	f.latestCalls++
	if err := f.errs[symbol]; err != nil {
		return quotes.Quote{}, err
	}
	q, ok := f.latest[symbol]
	if !ok {
		return quotes.Quote{}, quotes.ErrNoData
	}
	return q, nil
}

type fakeTrades struct {
	records map[string]tradelog.Record
	runs    []tradelog.RunRecord
	listErr error
}

func newFakeTrades() *fakeTrades {
	return &fakeTrades{records: make(map[string]tradelog.Record)}
}

func (f *fakeTrades) Upsert(r tradelog.Record) error {
	f.records[r.Key()] = r
	return nil
}

func (f *fakeTrades) Delete(symbol, day string) error {
	delete(f.records, tradelog.Record{Symbol: symbol, Day: day}.Key())
	return nil
}

func (f *fakeTrades) List() ([]tradelog.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []tradelog.Record
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeTrades) RecordRun(r tradelog.RunRecord) error {
	f.runs = append(f.runs, r)
	return nil
}

func (f *fakeTrades) Close() error { return nil }

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Quotes.APIKey = "test-key"
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTracker(qs *fakeQuotes, trades *fakeTrades) *Tracker {
	tr := New(testConfig(), qs, trades, testLogger())
	tr.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	return tr
}

func barsFor(days ...string) []quotes.Bar {
	var out []quotes.Bar
	for i, d := range days {
		out = append(out, quotes.Bar{Day: d, Close: fmt.Sprintf("%d.5", 100+i)})
	}
	return out
}

func TestReloadPopulatesStore(t *testing.T) {
	t.Parallel()

	qs := &fakeQuotes{bars: map[string][]quotes.Bar{
		"GLD":  barsFor("2024-03-04", "2024-03-05"),
		"SPXL": barsFor("2024-03-05"),
	}}
	trades := newFakeTrades()
	require.NoError(t, trades.Upsert(tradelog.Record{
		Symbol: "GLD", Day: "2024-03-05", Action: tradelog.Buy, Quantity: 2, Price: 101.5,
	}))

	tr := newTestTracker(qs, trades)
	require.NoError(t, tr.Reload(context.Background()))

	cfg, err := tr.ChartConfig("GLD", pricing.Month1)
	require.NoError(t, err)
	require.Len(t, cfg.Data.Datasets, 2)
	assert.Len(t, cfg.Data.Datasets[0].Data, 2)

	overlay := cfg.Data.Datasets[1]
	require.Len(t, overlay.Data, 1)
	assert.Equal(t, "2024-03-05", overlay.Data[0].X)
	// Marker y-value comes from the price history, not the saved record.
	assert.InDelta(t, 101.5, overlay.Data[0].Y, 1e-9)

	assert.Len(t, trades.runs, 2)
	assert.Equal(t, "api", trades.runs[0].Source)
}

func TestReloadPartialFailure(t *testing.T) {
	t.Parallel()

	qs := &fakeQuotes{
		bars: map[string][]quotes.Bar{"GLD": barsFor("2024-03-05")},
		errs: map[string]error{"SPXL": quotes.ErrNoData},
	}
	tr := newTestTracker(qs, newFakeTrades())

	err := tr.Reload(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, quotes.ErrNoData)

	// The healthy symbol still committed.
	cfg, err := tr.ChartConfig("GLD", pricing.Month1)
	require.NoError(t, err)
	assert.Len(t, cfg.Data.Datasets[0].Data, 1)

	cfg, err = tr.ChartConfig("SPXL", pricing.Month1)
	require.NoError(t, err)
	assert.Empty(t, cfg.Data.Datasets[0].Data)
}

func TestReloadDropsMalformedRows(t *testing.T) {
	t.Parallel()

	qs := &fakeQuotes{bars: map[string][]quotes.Bar{
		"GLD":  {{Day: "2024-03-04", Close: "1,234.5"}, {Day: "bad", Close: "9"}, {Day: "2024-03-05", Close: "x"}},
		"SPXL": nil,
	}}
	qs.errs = map[string]error{"SPXL": quotes.ErrNoData}
	trades := newFakeTrades()
	tr := newTestTracker(qs, trades)

	_ = tr.Reload(context.Background())

	cfg, err := tr.ChartConfig("GLD", pricing.Month1)
	require.NoError(t, err)
	require.Len(t, cfg.Data.Datasets[0].Data, 1)
	assert.InDelta(t, 1234.5, cfg.Data.Datasets[0].Data[0].Y, 1e-9)

	require.NotEmpty(t, trades.runs)
	assert.Equal(t, 1, trades.runs[0].Points)
	assert.Equal(t, 2, trades.runs[0].Skipped)
}

func TestChartConfigWindowFilter(t *testing.T) {
	t.Parallel()

	// Daily bars across four months; the 1m window keeps only the last.
	qs := &fakeQuotes{bars: map[string][]quotes.Bar{
		"GLD":  barsFor("2023-12-01", "2024-01-05", "2024-02-20", "2024-03-05"),
		"SPXL": nil,
	}}
	qs.errs = map[string]error{"SPXL": quotes.ErrNoData}
	tr := newTestTracker(qs, newFakeTrades())
	_ = tr.Reload(context.Background())

	cfg, err := tr.ChartConfig("GLD", pricing.Month1)
	require.NoError(t, err)
	require.Len(t, cfg.Data.Datasets[0].Data, 2)
	assert.Equal(t, "2024-02-20", cfg.Data.Datasets[0].Data[0].X)

	cfg, err = tr.ChartConfig("GLD", pricing.Year1)
	require.NoError(t, err)
	assert.Len(t, cfg.Data.Datasets[0].Data, 4)
}

func TestChartConfigUnknownSymbol(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(&fakeQuotes{}, newFakeTrades())
	_, err := tr.ChartConfig("QQQ", pricing.Month1)
	assert.Error(t, err)
}

func TestSaveTradeValidatesBeforeAnyCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		symbol   string
		day      string
		action   string
		quantity float64
	}{
		{"unknown symbol", "QQQ", "2024-03-05", "buy", 1},
		{"bad date", "GLD", "not a date", "buy", 1},
		{"bad action", "GLD", "2024-03-05", "hold", 1},
		{"zero quantity", "GLD", "2024-03-05", "buy", 0},
		{"negative quantity", "GLD", "2024-03-05", "sell", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := &fakeQuotes{latest: map[string]quotes.Quote{
				"GLD": {Symbol: "GLD", Day: "2024-03-05", Close: 200},
			}}
			trades := newFakeTrades()
			tr := newTestTracker(qs, trades)

			_, err := tr.SaveTrade(context.Background(), tt.symbol, tt.day, tt.action, tt.quantity)
			require.Error(t, err)
			assert.Zero(t, qs.latestCalls, "validation failure must abort before the network call")
			assert.Empty(t, trades.records)
		})
	}
}

func TestSaveTradeFetchFailureWritesNothing(t *testing.T) {
	t.Parallel()

	qs := &fakeQuotes{errs: map[string]error{"GLD": errors.New("api down")}}
	trades := newFakeTrades()
	tr := newTestTracker(qs, trades)

	_, err := tr.SaveTrade(context.Background(), "GLD", "2024-03-05", "buy", 2)
	require.Error(t, err)
	assert.Empty(t, trades.records)
}

func TestSaveTrade(t *testing.T) {
	t.Parallel()

	qs := &fakeQuotes{latest: map[string]quotes.Quote{
		"GLD": {Symbol: "GLD", Day: "2024-03-08", Close: 202.5},
	}}
	trades := newFakeTrades()
	tr := newTestTracker(qs, trades)

	rec, err := tr.SaveTrade(context.Background(), "GLD", "2024/3/5", "buy", 2)
	require.NoError(t, err)

	assert.Equal(t, "GLD", rec.Symbol)
	assert.Equal(t, "2024-03-05", rec.Day) // normalized to canonical form
	assert.Equal(t, tradelog.Buy, rec.Action)
	assert.InDelta(t, 202.5, rec.Price, 1e-9)

	saved, ok := trades.records["GLD_2024-03-05"]
	require.True(t, ok)
	assert.Equal(t, rec, saved)
}

func TestSaveTradeLastWriteWins(t *testing.T) {
	t.Parallel()

	qs := &fakeQuotes{latest: map[string]quotes.Quote{
		"GLD": {Symbol: "GLD", Day: "2024-03-08", Close: 202.5},
	}}
	trades := newFakeTrades()
	tr := newTestTracker(qs, trades)

	_, err := tr.SaveTrade(context.Background(), "GLD", "2024-03-05", "buy", 2)
	require.NoError(t, err)
	_, err = tr.SaveTrade(context.Background(), "GLD", "2024-03-05", "sell", 7)
	require.NoError(t, err)

	require.Len(t, trades.records, 1)
	assert.Equal(t, tradelog.Sell, trades.records["GLD_2024-03-05"].Action)
}

func TestDeleteTrade(t *testing.T) {
	t.Parallel()

	trades := newFakeTrades()
	require.NoError(t, trades.Upsert(tradelog.Record{Symbol: "GLD", Day: "2024-03-05", Action: tradelog.Buy, Quantity: 1}))

	tr := newTestTracker(&fakeQuotes{}, trades)
	require.NoError(t, tr.DeleteTrade("GLD", "2024-03-05"))
	assert.Empty(t, trades.records)

	assert.Error(t, tr.DeleteTrade("GLD", "nope"))
}

func TestImportCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "gld.csv")
	csv := "Date,Close\n2024年03月04日,\"1,234.5\"\nbad,9\n2024-03-05,1240\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	trades := newFakeTrades()
	tr := newTestTracker(&fakeQuotes{}, trades)

	points, skipped, err := tr.ImportCSV("GLD", path)
	require.NoError(t, err)
	assert.Equal(t, 2, points)
	assert.Equal(t, 1, skipped)

	cfg, err := tr.ChartConfig("GLD", pricing.Month1)
	require.NoError(t, err)
	require.Len(t, cfg.Data.Datasets[0].Data, 2)
	assert.Equal(t, "2024-03-04", cfg.Data.Datasets[0].Data[0].X)

	require.Len(t, trades.runs, 1)
	assert.Equal(t, "csv", trades.runs[0].Source)
}

func TestImportCSVUnknownSymbol(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(&fakeQuotes{}, newFakeTrades())
	_, _, err := tr.ImportCSV("QQQ", "whatever.csv")
	assert.Error(t, err)
}

func TestLatestPrice(t *testing.T) {
	t.Parallel()

	qs := &fakeQuotes{latest: map[string]quotes.Quote{
		"VOO": {Symbol: "VOO", Day: "2024-03-08", Close: 470.1},
	}}
	tr := newTestTracker(qs, newFakeTrades())

	q, err := tr.LatestPrice(context.Background(), "VOO")
	require.NoError(t, err)
	assert.InDelta(t, 470.1, q.Close, 1e-9)

	_, err = tr.LatestPrice(context.Background(), "")
	assert.Error(t, err)
}

func TestRenderAll(t *testing.T) {
	t.Parallel()

	qs := &fakeQuotes{bars: map[string][]quotes.Bar{
		"GLD":  barsFor("2024-03-05"),
		"SPXL": barsFor("2024-03-05"),
	}}
	tr := newTestTracker(qs, newFakeTrades())
	require.NoError(t, tr.Reload(context.Background()))

	dir := t.TempDir()
	require.NoError(t, tr.RenderAll(&chart.FileRenderer{Dir: dir}, pricing.Month1))

	for _, name := range []string{"gld.json", "spxl.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
