package fluxion

import (
	"context"

	"github.com/fluxion-go/fluxion/internal/combine"
)

// CombinedState is a positional snapshot of the latest inner value from
// each of k joined streams, with a timestamp equal to the max of the
// contributing timestamps (spec §3, §4.8; Open Question resolved: "max",
// fixed by scenario S1).
type CombinedState[V any, T Timestamp[T]] struct {
	Values []V
	Ts     T
}

// CombineLatest joins self and others (1+len(others) streams of the same
// item type) into a stream of CombinedState. values[i] always holds stream
// i's latest inner (self at position 0, others in the given order),
// regardless of arrival order. A state is emitted only once every stream
// has contributed at least once, and only if filter(state) returns true.
// Errors from any stream are forwarded immediately without updating state.
// The join completes once every upstream completes (spec §4.8).
func CombineLatest[V any, T Timestamp[T]](ctx context.Context, self Stream[V, T], others []Stream[V, T], filter func(CombinedState[V, T]) bool) Stream[CombinedState[V, T], T] {
	streams := append([]Stream[V, T]{self}, others...)
	out := make(chan StreamItem[CombinedState[V, T], T])

	go func() {
		defer close(out)

		k := len(streams)
		slots := combine.NewSlots[V](k)
		tsSlots := make([]T, k)

		fanin := fanIn(ctx, streams)
		active := k

		for active > 0 {
			select {
			case <-ctx.Done():
				return
			case a := <-fanin:
				if !a.ok {
					active--
					continue
				}
				if a.si.IsError() {
					if !send(ctx, out, ErrorItem[CombinedState[V, T], T](TagSource(a.si.Err(), a.idx))) {
						return
					}
					continue
				}
				it := a.si.MustItem()
				slots.Set(a.idx, it.Inner())
				tsSlots[a.idx] = it.Timestamp()
				if !slots.Complete() {
					continue
				}
				ts := tsSlots[0]
				for i := 1; i < k; i++ {
					ts = MaxTimestamp(ts, tsSlots[i])
				}
				state := CombinedState[V, T]{Values: slots.Snapshot(), Ts: ts}
				if filter != nil && !filter(state) {
					continue
				}
				if !send(ctx, out, Value(state, ts)) {
					return
				}
			}
		}
	}()

	return out
}
