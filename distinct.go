package fluxion

import "context"

// DistinctUntilChanged emits Value(v) iff its inner differs (structural
// equality via ==) from the last emitted inner. The first value always
// emits. Errors always pass through and do not update the remembered last
// value (spec §4.5).
func DistinctUntilChanged[V comparable, T Timestamp[T]](ctx context.Context, src Stream[V, T]) Stream[V, T] {
	return DistinctUntilChangedBy(ctx, src, func(a, b V) bool { return a == b })
}

// DistinctUntilChangedBy is DistinctUntilChanged with a user-supplied
// equality predicate (spec §4.5).
func DistinctUntilChangedBy[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], eq func(a, b V) bool) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		var last V
		haveLast := false
		forward(ctx, src, out, func(it Item[V, T]) (Item[V, T], bool) {
			v := it.Inner()
			if haveLast && eq(last, v) {
				return it, false
			}
			last = v
			haveLast = true
			return it, true
		})
	}()
	return out
}
