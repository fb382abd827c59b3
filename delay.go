package fluxion

import (
	"context"
	"time"

	"github.com/fluxion-go/fluxion/runtime"
)

type delayed[V any, T Timestamp[T]] struct {
	item  Item[V, T]
	ready <-chan time.Time
}

// Delay schedules each value's emission at now()+d (spec §4.14, §4.16).
// Multiple values may be in flight at once; since every value shares the
// same d, arrival order and release order coincide, so a FIFO queue keyed
// only on the head's timer preserves ordering without comparing
// timestamps. Errors are emitted without delay.
func Delay[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], d time.Duration, timer runtime.Timer) Stream[V, T] {
	if timer == nil {
		timer = runtime.NewParallelTimer()
	}
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)

		var queue []delayed[V, T]
		srcOpen := true

		for srcOpen || len(queue) > 0 {
			var headReady <-chan time.Time
			if len(queue) > 0 {
				headReady = queue[0].ready
			}

			srcCh := src
			if !srcOpen {
				srcCh = nil
			}

			select {
			case <-ctx.Done():
				return
			case si, ok := <-srcCh:
				if !ok {
					srcOpen = false
					continue
				}
				if si.IsError() {
					if !send(ctx, out, si) {
						return
					}
					continue
				}
				it := si.MustItem()
				queue = append(queue, delayed[V, T]{item: it, ready: timer.After(d)})
			case <-headReady:
				if !send(ctx, out, ValueItem(queue[0].item)) {
					return
				}
				queue = queue[1:]
			}
		}
	}()
	return out
}
