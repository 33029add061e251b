// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package scoreboard tracks a time-decayed weight per destination
// address. It backs the DDoS flood detector in internal/rules: a
// destination contacted repeatedly within short gaps sees its weight
// decay toward zero; a single slow-enough gap grows it back out.
package scoreboard

import "time"

// Tuning constants for the decay/grow rule. These must be preserved
// exactly — the detector's sensitivity is encoded in them, not derived
// from any formula. See original_source/src/connection.rs for the
// provenance of these figures.
const (
	initialWeight   = 100.0
	fastDecayFactor = 0.9  // applied when the gap since the last arrival is < fastWindow
	growFactor      = 20.2 // applied when the gap is >= fastWindow
	fastWindow      = 500 * time.Millisecond
)

// Entry is the per-destination state: the previous and current
// observation timestamps, and the current weight. Invariant: Current
// is never earlier than Last.
type Entry struct {
	Last    time.Time
	Current time.Time
	Weight  float64
}

// New creates an Entry observed for the first time at t.
func New(t time.Time) *Entry {
	return &Entry{Last: t, Current: t, Weight: initialWeight}
}

// Update records a new observation at time t and returns the resulting
// weight. The 500ms threshold is strict-less-than: a gap of exactly
// 500ms takes the "grow" branch, not the "decay" branch.
func (e *Entry) Update(t time.Time) float64 {
	e.Last = e.Current
	e.Current = t

	gap := e.Current.Sub(e.Last)
	if gap < fastWindow {
		e.Weight *= fastDecayFactor
	} else {
		e.Weight *= growFactor
	}
	return e.Weight
}

// Board is a per-destination-address table of Entry. It is the
// "connections" map from the original design, given its own type so
// the DDoS rule (internal/rules) doesn't need to reach into a bare map.
type Board struct {
	entries map[string]*Entry
}

// NewBoard creates an empty Board.
func NewBoard() *Board {
	return &Board{entries: make(map[string]*Entry)}
}

// Observe records an observation of addr at time t. If an entry
// already existed for addr, it is updated in place and repeat is true;
// otherwise a fresh entry is created and repeat is false. The returned
// weight is only meaningful when repeat is true (a freshly created
// entry always starts at the initial weight, which is never itself an
// alarm condition).
func (b *Board) Observe(addr string, t time.Time) (weight float64, repeat bool) {
	if e, ok := b.entries[addr]; ok {
		return e.Update(t), true
	}
	b.entries[addr] = New(t)
	return initialWeight, false
}

// Get returns the entry for addr, if one exists, without modifying it.
func (b *Board) Get(addr string) (*Entry, bool) {
	e, ok := b.entries[addr]
	return e, ok
}

// Len reports the number of tracked destinations.
func (b *Board) Len() int {
	return len(b.entries)
}
