package normalize

import (
	"math"
	"strconv"
	"strings"
)

// ParsePrice converts a numeric string, possibly carrying thousands-separator
// commas, into a float. Anything that is not a finite number after stripping
// reports false.
func ParsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
