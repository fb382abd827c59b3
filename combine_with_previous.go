package fluxion

import "context"

// WithPrevious pairs the previous Value seen (or None for the first) with
// the current one. Its timestamp equals current's (spec §3).
type WithPrevious[V any] struct {
	Previous *V
	Current  V
}

// CombineWithPrevious emits WithPrevious{previous, current} for each
// Value(v), where previous is the last Value seen (nil for the first).
// Errors pass through and do not update the remembered previous; the next
// value after an error still pairs with the last non-error value (spec
// §4.4).
func CombineWithPrevious[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T]) Stream[WithPrevious[V], T] {
	out := make(chan StreamItem[WithPrevious[V], T])
	go func() {
		defer close(out)
		var prev *V
		forward(ctx, src, out, func(it Item[V, T]) (Item[WithPrevious[V], T], bool) {
			cur := it.Inner()
			wp := WithPrevious[V]{Previous: prev, Current: cur}
			c := cur
			prev = &c
			return WithInner(it, wp), true
		})
	}()
	return out
}
