// Package series provides tick-indexed time series for agent statistics.
//
// A Series maps a non-negative tick number to a scalar. Entries are seeded
// with a default at the start of a tick and overwritten as events occur
// during the tick; they are never deleted. Lookups tolerate sparse keys.
package series

import "sort"

// Series is an ordered mapping from tick number to a scalar value.
// The zero value is not usable; call New.
type Series struct {
	values map[int]float64
}

func New() *Series {
	return &Series{values: make(map[int]float64)}
}

// Record sets the value for tick, overwriting any existing entry.
func (s *Series) Record(tick int, v float64) {
	s.values[tick] = v
}

// Add adds delta to the value for tick, seeding it at zero if absent.
func (s *Series) Add(tick int, delta float64) {
	s.values[tick] += delta
}

// Value returns the value recorded for tick.
func (s *Series) Value(tick int) (float64, bool) {
	v, ok := s.values[tick]
	return v, ok
}

// Has reports whether tick has an entry.
func (s *Series) Has(tick int) bool {
	_, ok := s.values[tick]
	return ok
}

// Len returns the number of recorded ticks.
func (s *Series) Len() int { return len(s.values) }

// Latest returns the value at the highest recorded tick.
// The "current" scalar of an agent is always this value, never a
// separately maintained field that could drift from the series.
func (s *Series) Latest() (float64, bool) {
	latest := -1
	for t := range s.values {
		if t > latest {
			latest = t
		}
	}
	if latest < 0 {
		return 0, false
	}
	return s.values[latest], true
}

// Before returns the values of the last n recorded ticks strictly before
// the given tick, oldest first. ok is false when fewer than n such ticks
// exist. The in-progress tick's own (possibly partial) entry is never
// included, which is what keeps window computations free of look-ahead.
func (s *Series) Before(tick, n int) ([]float64, bool) {
	ticks := make([]int, 0, len(s.values))
	for t := range s.values {
		if t < tick {
			ticks = append(ticks, t)
		}
	}
	if len(ticks) < n {
		return nil, false
	}
	sort.Ints(ticks)
	ticks = ticks[len(ticks)-n:]

	out := make([]float64, n)
	for i, t := range ticks {
		out[i] = s.values[t]
	}
	return out, true
}

// Snapshot returns a copy of the underlying map. Statistics collectors
// read published series through copies so they can never mutate them.
func (s *Series) Snapshot() map[int]float64 {
	out := make(map[int]float64, len(s.values))
	for t, v := range s.values {
		out[t] = v
	}
	return out
}
