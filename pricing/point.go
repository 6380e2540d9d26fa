package pricing

import (
	"sort"
	"time"
)

// DateFormat is the canonical day-granularity date format. Because it is
// zero-padded, lexicographic order on the formatted string equals
// chronological order.
const DateFormat = "2006-01-02"

// Point is a normalized (calendar date, close price) pair ready for charting.
// The date is timezone-naive: midnight UTC stands in for the calendar day.
type Point struct {
	Date  time.Time
	Price float64
}

// Day returns the canonical yyyy-MM-dd form of the point's date.
func (p Point) Day() string {
	return p.Date.Format(DateFormat)
}

// Series is an ordered sequence of points for one symbol.
type Series []Point

// Sort orders the series ascending by the canonical date string.
func (s Series) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Day() < s[j].Day()
	})
}

// Since returns the subsequence of points on or after start, preserving
// the original order. Points are assumed already validated upstream.
func (s Series) Since(start time.Time) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if !p.Date.Before(start) {
			out = append(out, p)
		}
	}
	return out
}

// Day truncates t to its calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
