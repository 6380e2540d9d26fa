package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPointDay(t *testing.T) {
	t.Parallel()

	p := Point{Date: day(2024, 3, 5), Price: 100.5}
	assert.Equal(t, "2024-03-05", p.Day())
}

func TestSeriesSort(t *testing.T) {
	t.Parallel()

	s := Series{
		{Date: day(2024, 3, 1), Price: 3},
		{Date: day(2024, 1, 1), Price: 1},
		{Date: day(2024, 2, 1), Price: 2},
	}
	s.Sort()

	assert.Equal(t, []string{"2024-01-01", "2024-02-01", "2024-03-01"},
		[]string{s[0].Day(), s[1].Day(), s[2].Day()})
}

func TestSeriesSortKeepsDuplicateDates(t *testing.T) {
	t.Parallel()

	// Duplicate dates can show up when sources are merged; both survive
	// and their relative order is stable.
	s := Series{
		{Date: day(2024, 1, 2), Price: 10},
		{Date: day(2024, 1, 1), Price: 1},
		{Date: day(2024, 1, 2), Price: 20},
	}
	s.Sort()

	assert.Len(t, s, 3)
	assert.Equal(t, 10.0, s[1].Price)
	assert.Equal(t, 20.0, s[2].Price)
}

func TestSeriesSince(t *testing.T) {
	t.Parallel()

	s := Series{
		{Date: day(2024, 1, 1), Price: 1},
		{Date: day(2024, 2, 1), Price: 2},
		{Date: day(2024, 3, 1), Price: 3},
	}

	got := s.Since(day(2024, 2, 1))
	assert.Len(t, got, 2)
	assert.Equal(t, "2024-02-01", got[0].Day())
	assert.Equal(t, "2024-03-01", got[1].Day())
}

func TestDayTruncates(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 6, 15, 13, 45, 12, 0, time.UTC)
	assert.Equal(t, day(2024, 6, 15), Day(ts))
}
