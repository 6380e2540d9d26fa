package normalize

import (
	"strings"
	"time"

	"github.com/etfgraph/etfgraph/pricing"
)

// dateParser is one entry in the format cascade: a pure parse attempt that
// either yields a calendar date or reports no match.
type dateParser struct {
	name  string
	parse func(string) (time.Time, bool)
}

func layout(l string) func(string) (time.Time, bool) {
	return func(s string) (time.Time, bool) {
		t, err := time.Parse(l, s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

// kanjiDate handles the localized year/month/day form, e.g. "2020年11月01日".
// Separators are rewritten to slashes before the numeric parse.
func kanjiDate(s string) (time.Time, bool) {
	if !strings.ContainsRune(s, '年') {
		return time.Time{}, false
	}
	r := strings.NewReplacer("年", "/", "月", "/", "日", "")
	return layout("2006/1/2")(r.Replace(s))
}

// dateParsers is the cascade, tried in priority order; first match wins.
// The non-padded numeric layouts also accept zero-padded digits, so
// "Jan 2, 2006" covers both "Mar 5, 2024" and "Mar 05, 2024".
var dateParsers = []dateParser{
	{"kanji year/month/day", kanjiDate},
	{"Jan 2, 2006", layout("Jan 2, 2006")},
	{"2006-01-02", layout("2006-01-02")},
	{"2006/1/2", layout("2006/1/2")},
	{"1/2/2006", layout("1/2/2006")},
	{"1/2/06", layout("1/2/06")},
	{"1-2-2006", layout("1-2-2006")},
	{"rfc3339", layout(time.RFC3339)},
}

// ParseDate converts a heterogeneous date string into a canonical calendar
// day (midnight UTC). Empty, whitespace-only, and unmatched input report
// false; ParseDate never panics.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, p := range dateParsers {
		if t, ok := p.parse(s); ok {
			return pricing.Day(t), true
		}
	}
	return time.Time{}, false
}
