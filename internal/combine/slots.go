// Package combine hosts the small bookkeeping shared by the multi-stream
// joins combine_latest, with_latest_from and emit_when: tracking the latest
// value received per stream position and whether each position has been
// filled. It does not record the order in which positions were first
// filled. Grounded on the original fluxion-stream/src/util.rs helpers.
//
// This package is independent of the item/timestamp types in the root
// fluxion package to avoid an import cycle (fluxion depends on combine, not
// the reverse); callers supply timestamp comparison themselves.
package combine

// Slots tracks the latest value seen for each of n stream positions. It
// does not interpret the values; combine_latest and friends store whatever
// per-slot state (an inner value, a timestamp, or both) they need.
type Slots[V any] struct {
	values []V
	filled []bool
	n      int
}

// NewSlots returns a Slots tracking n positions, all initially empty.
func NewSlots[V any](n int) *Slots[V] {
	return &Slots[V]{values: make([]V, n), filled: make([]bool, n), n: n}
}

// Set records v as the latest value at position i.
func (s *Slots[V]) Set(i int, v V) {
	s.values[i] = v
	s.filled[i] = true
}

// Get returns the latest value at position i and whether it has ever been
// filled.
func (s *Slots[V]) Get(i int) (V, bool) {
	return s.values[i], s.filled[i]
}

// Complete reports whether every position has been filled at least once.
func (s *Slots[V]) Complete() bool {
	for _, f := range s.filled {
		if !f {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the current values in positional order. Safe to
// call regardless of completeness; callers check Complete() first when the
// operator's contract requires a full state.
func (s *Slots[V]) Snapshot() []V {
	out := make([]V, s.n)
	copy(out, s.values)
	return out
}

// Len returns the number of tracked positions.
func (s *Slots[V]) Len() int { return s.n }
