// Package store holds the in-memory chart state: per-symbol price history
// and the trade markers overlaid on it.
package store

import (
	"sync"

	"github.com/etfgraph/etfgraph/pricing"
	"github.com/etfgraph/etfgraph/tradelog"
)

// SeriesStore maps symbols to their full ordered point history plus the
// global trade marker list. State is rebuilt wholesale on each reload.
//
// Each reload claims a generation with Begin; commits carrying a stale
// generation are dropped, so the most recently requested load wins even if
// an earlier one finishes later.
type SeriesStore struct {
	mu      sync.RWMutex
	series  map[string]pricing.Series
	markers []tradelog.Record
	gen     uint64
}

func New() *SeriesStore {
	return &SeriesStore{series: make(map[string]pricing.Series)}
}

// Begin claims a new load generation. All commits of one reload should use
// the same token.
func (s *SeriesStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Replace overwrites a symbol's point history. It reports whether the
// commit was applied; a stale generation leaves the store untouched.
func (s *SeriesStore) Replace(gen uint64, symbol string, points pricing.Series) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.series[symbol] = points
	return true
}

// ReplaceMarkers overwrites the global trade marker list.
func (s *SeriesStore) ReplaceMarkers(gen uint64, markers []tradelog.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.markers = markers
	return true
}

// Get returns the current point history for a symbol, empty if the symbol
// is unknown or never populated.
func (s *SeriesStore) Get(symbol string) pricing.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.series[symbol]
}

// Markers returns the current trade marker list.
func (s *SeriesStore) Markers() []tradelog.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markers
}
