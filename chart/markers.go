package chart

import (
	"github.com/etfgraph/etfgraph/pricing"
)

// Marker is a user-recorded buy/sell event waiting to be placed on the
// chart. It carries no price of its own; the y-value comes from the price
// history it joins against.
type Marker struct {
	Day      string
	Action   string
	Quantity float64
}

// MarkerPoint is a marker that found its day in the price history.
type MarkerPoint struct {
	Marker
	Price float64
}

// Join matches markers against a point history by exact canonical-date
// equality, first match wins. Markers with no matching day are omitted from
// the overlay. Linear scan; daily series over a few years stay small.
func Join(markers []Marker, points pricing.Series) []MarkerPoint {
	var out []MarkerPoint
	for _, m := range markers {
		for _, p := range points {
			if p.Day() == m.Day {
				out = append(out, MarkerPoint{Marker: m, Price: p.Price})
				break
			}
		}
	}
	return out
}
