package ingest

import (
	"github.com/etfgraph/etfgraph/normalize"
	"github.com/etfgraph/etfgraph/quotes"
)

// FromBars adapts raw quote API bars into normalizer rows using the
// canonical header names, so API and CSV sources share one pipeline.
func FromBars(bars []quotes.Bar) []normalize.Row {
	rows := make([]normalize.Row, 0, len(bars))
	for _, b := range bars {
		rows = append(rows, normalize.Row{"Date": b.Day, "Price": b.Close})
	}
	return rows
}
