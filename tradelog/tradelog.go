// Package tradelog persists user-recorded buy/sell trade points, one record
// per symbol and day, and an audit trail of ingestion runs.
package tradelog

import (
	"fmt"
	"strings"
	"time"
)

// Action is the side of a recorded trade point.
type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
)

// ParseAction validates a user-supplied action selector.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(s)) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown action %q (want buy or sell)", s)
	}
}

// Record is one persisted trade point. Records are keyed by symbol and day;
// saving again for the same key overwrites, last write wins.
type Record struct {
	Symbol   string
	Day      string // canonical yyyy-MM-dd
	Action   Action
	Quantity float64
	Price    float64
}

// Key returns the composite document key.
func (r Record) Key() string {
	return r.Symbol + "_" + r.Day
}

// RunRecord is one completed ingestion run: how many rows made it into the
// series and how many were dropped by normalization.
type RunRecord struct {
	RunID   string
	Symbol  string
	Source  string // "api" or "csv"
	Points  int
	Skipped int
	Started time.Time
}

// Log is the trade document store.
type Log interface {
	Upsert(Record) error
	Delete(symbol, day string) error
	List() ([]Record, error)
	RecordRun(RunRecord) error
	Close() error
}
