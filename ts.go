package fluxion

import "time"

// Timestamp is the contract a time coordinate must satisfy to flow through
// Fluxion pipelines: a total order over values of T. Implementations are
// expected to be small, copyable values (a counter, a duration, a wall-clock
// time), never pointers with mutable state.
type Timestamp[T any] interface {
	// Compare returns a negative number if the receiver sorts before other,
	// zero if they are equal, and a positive number if it sorts after.
	Compare(other T) int
}

// Sequence is a monotonic counter timestamp. It is the simplest Ts
// implementation and is typically assigned by a producer via a running
// counter rather than derived from a clock.
type Sequence int64

// Compare implements Timestamp[Sequence].
func (s Sequence) Compare(other Sequence) int {
	switch {
	case s < other:
		return -1
	case s > other:
		return 1
	default:
		return 0
	}
}

// MonotonicInstant is a duration-since-epoch timestamp supporting Add/Sub,
// independent of the wall clock. It mirrors the original implementation's
// Instant timestamp type, which abstract runtimes (embedded, cooperative)
// use instead of reading the system clock.
type MonotonicInstant struct {
	sinceEpoch time.Duration
}

// NewMonotonicInstant builds a MonotonicInstant at the given duration since
// an arbitrary fixed epoch (typically "runtime start").
func NewMonotonicInstant(sinceEpoch time.Duration) MonotonicInstant {
	return MonotonicInstant{sinceEpoch: sinceEpoch}
}

// Add returns the instant advanced by d.
func (i MonotonicInstant) Add(d time.Duration) MonotonicInstant {
	return MonotonicInstant{sinceEpoch: i.sinceEpoch + d}
}

// Sub returns the duration between i and other (i - other).
func (i MonotonicInstant) Sub(other MonotonicInstant) time.Duration {
	return i.sinceEpoch - other.sinceEpoch
}

// Compare implements Timestamp[MonotonicInstant].
func (i MonotonicInstant) Compare(other MonotonicInstant) int {
	switch {
	case i.sinceEpoch < other.sinceEpoch:
		return -1
	case i.sinceEpoch > other.sinceEpoch:
		return 1
	default:
		return 0
	}
}

// WallClock wraps time.Time as a Ts implementation, for producers that stamp
// items with UTC wall-clock time. time.Time cannot itself implement
// Timestamp[WallClock] (Go forbids methods on unowned types), hence the
// wrapper.
type WallClock struct {
	time.Time
}

// NewWallClock wraps t as a WallClock timestamp.
func NewWallClock(t time.Time) WallClock {
	return WallClock{Time: t}
}

// Compare implements Timestamp[WallClock].
func (w WallClock) Compare(other WallClock) int {
	return w.Time.Compare(other.Time)
}
