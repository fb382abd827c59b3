package fluxion

import (
	"context"
	"math/rand"
)

// MapOrdered emits f(v) for each Value(v); Error items pass through
// unchanged. No buffering, order preserved (spec §4.2).
func MapOrdered[V, U any, T Timestamp[T]](ctx context.Context, src Stream[V, T], f func(V) U) Stream[U, T] {
	out := make(chan StreamItem[U, T])
	go func() {
		defer close(out)
		forward(ctx, src, out, func(it Item[V, T]) (Item[U, T], bool) {
			return WithInner(it, f(it.Inner())), true
		})
	}()
	return out
}

// FilterOrdered emits Value(v) iff p(v.Inner()); errors pass through
// unchanged. No buffering (spec §4.2).
func FilterOrdered[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], p func(V) bool) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		forward(ctx, src, out, func(it Item[V, T]) (Item[V, T], bool) {
			return it, p(it.Inner())
		})
	}()
	return out
}

// Tap invokes g on each value's inner, then passes the original Value
// through unchanged. Not invoked on errors (spec §4.2).
func Tap[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], g func(V)) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		forward(ctx, src, out, func(it Item[V, T]) (Item[V, T], bool) {
			g(it.Inner())
			return it, true
		})
	}()
	return out
}

// OnError implements the chain-of-responsibility from spec §4.2: if h
// returns true the error is consumed (not emitted); otherwise it is
// forwarded. Values pass through unchanged.
func OnError[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], h func(error) bool) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case si, ok := <-src:
				if !ok {
					return
				}
				if si.IsError() && h(si.Err()) {
					continue
				}
				if !send(ctx, out, si) {
					return
				}
			}
		}
	}()
	return out
}

// StartWith emits prefix in order, then the source. Errors inside the
// prefix are not consumed (spec §4.2).
func StartWith[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], prefix []StreamItem[V, T]) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		for _, si := range prefix {
			if !send(ctx, out, si) {
				return
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case si, ok := <-src:
				if !ok {
					return
				}
				if !send(ctx, out, si) {
					return
				}
			}
		}
	}()
	return out
}

// SkipItems discards the first n stream items (including errors); after
// that everything passes through (spec §4.2).
func SkipItems[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], n int) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		skipped := 0
		for {
			select {
			case <-ctx.Done():
				return
			case si, ok := <-src:
				if !ok {
					return
				}
				if skipped < n {
					skipped++
					continue
				}
				if !send(ctx, out, si) {
					return
				}
			}
		}
	}()
	return out
}

// TakeItems emits at most n stream items (including errors), then ends.
// Source cancellation may not be observable before the nth item (spec
// §4.2).
func TakeItems[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], n int) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		if n <= 0 {
			return
		}
		taken := 0
		for {
			select {
			case <-ctx.Done():
				return
			case si, ok := <-src:
				if !ok {
					return
				}
				if !send(ctx, out, si) {
					return
				}
				taken++
				if taken >= n {
					return
				}
			}
		}
	}()
	return out
}

// SampleRatio emits each value with independent probability p, using a
// deterministic PRNG seeded by seed. Errors always pass through. Panics if
// p is outside [0,1] (spec §4.2).
func SampleRatio[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], p float64, seed int64) Stream[V, T] {
	if p < 0 || p > 1 {
		panic("fluxion: SampleRatio requires p in [0,1]")
	}
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		rng := rand.New(rand.NewSource(seed))
		forward(ctx, src, out, func(it Item[V, T]) (Item[V, T], bool) {
			return it, rng.Float64() < p
		})
	}()
	return out
}

// forward is the shared loop behind every stateless transform: read src,
// pass errors through unchanged, and for values apply transform, which
// returns the (possibly retyped) item and whether it should be emitted.
func forward[V, U any, T Timestamp[T]](ctx context.Context, src Stream[V, T], out chan<- StreamItem[U, T], transform func(Item[V, T]) (Item[U, T], bool)) {
	for {
		select {
		case <-ctx.Done():
			return
		case si, ok := <-src:
			if !ok {
				return
			}
			if si.IsError() {
				if !send(ctx, out, ErrorItem[U, T](si.Err())) {
					return
				}
				continue
			}
			it, keep := transform(si.MustItem())
			if !keep {
				continue
			}
			if !send(ctx, out, ValueItem(it)) {
				return
			}
		}
	}
}

// send writes si to out, returning false if ctx was cancelled first.
func send[V any, T Timestamp[T]](ctx context.Context, out chan<- StreamItem[V, T], si StreamItem[V, T]) bool {
	select {
	case out <- si:
		return true
	case <-ctx.Done():
		return false
	}
}
