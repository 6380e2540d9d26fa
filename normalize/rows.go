package normalize

import (
	"log/slog"

	"github.com/etfgraph/etfgraph/pricing"
)

// Row is one raw record from an ingestion source, keyed by header name.
type Row map[string]string

// Candidate header names, tried in order against the first row's keys.
// Exports like Yahoo's use "Close", brokerage exports "Close/Last", and the
// localized sheets "日付"/"終値".
var (
	dateHeaders  = []string{"Date", "date", "DATE", "日付", "Day", "Datetime"}
	priceHeaders = []string{"Close", "close", "Price", "price", "終値", "Adj Close", "Close/Last", "Last"}
)

// DetectColumns picks the date and price columns from the first row's keys.
// First candidate match wins. When no candidate matches, the literal
// "Date"/"Price" headers are assumed and matched reports false so the caller
// can surface the likely zero-row outcome.
func DetectColumns(first Row) (dateCol, priceCol string, matched bool) {
	dateCol, priceCol = "Date", "Price"
	dateOK, priceOK := false, false
	for _, h := range dateHeaders {
		if _, ok := first[h]; ok {
			dateCol, dateOK = h, true
			break
		}
	}
	for _, h := range priceHeaders {
		if _, ok := first[h]; ok {
			priceCol, priceOK = h, true
			break
		}
	}
	return dateCol, priceCol, dateOK && priceOK
}

// Builder turns raw rows into a sorted canonical series, dropping rows that
// fail either normalization.
type Builder struct {
	log *slog.Logger
}

func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{log: log}
}

// Build normalizes every row; a row is accepted only if both the date and
// the price parse. Accepted points come back sorted ascending by canonical
// date, and skipped reports how many rows were dropped. Build has no hidden
// state: the same rows always produce the same series.
func (b *Builder) Build(rows []Row) (points pricing.Series, skipped int) {
	if len(rows) == 0 {
		return nil, 0
	}

	dateCol, priceCol, matched := DetectColumns(rows[0])
	if !matched {
		keys := make([]string, 0, len(rows[0]))
		for k := range rows[0] {
			keys = append(keys, k)
		}
		b.log.Warn("no date/price column matched, assuming literal headers",
			"date_column", dateCol, "price_column", priceCol, "headers", keys)
	}

	points = make(pricing.Series, 0, len(rows))
	for _, row := range rows {
		d, ok := ParseDate(row[dateCol])
		if !ok {
			skipped++
			continue
		}
		p, ok := ParsePrice(row[priceCol])
		if !ok {
			skipped++
			continue
		}
		points = append(points, pricing.Point{Date: d, Price: p})
	}
	points.Sort()
	return points, skipped
}
