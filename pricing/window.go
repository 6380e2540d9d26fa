package pricing

import "time"

// Window is a named relative time range used to narrow a full history down
// to a display subset.
type Window string

const (
	Month1 Window = "1m"
	Month3 Window = "3m"
	Year1  Window = "1y"
	Year3  Window = "3y"
	Year5  Window = "5y"
)

// ParseWindow maps a selector value to a Window. Unrecognized input falls
// back to one month, matching the period selector's default.
func ParseWindow(s string) Window {
	switch Window(s) {
	case Month1, Month3, Year1, Year3, Year5:
		return Window(s)
	default:
		return Month1
	}
}

// Start returns the beginning of the window anchored at the given moment.
func (w Window) Start(anchor time.Time) time.Time {
	switch w {
	case Month3:
		return anchor.AddDate(0, -3, 0)
	case Year1:
		return anchor.AddDate(-1, 0, 0)
	case Year3:
		return anchor.AddDate(-3, 0, 0)
	case Year5:
		return anchor.AddDate(-5, 0, 0)
	default:
		return anchor.AddDate(0, -1, 0)
	}
}

// Filter narrows a series to the points inside the window, anchored at now.
func (w Window) Filter(s Series, now time.Time) Series {
	return s.Since(w.Start(now))
}
