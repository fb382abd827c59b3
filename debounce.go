package fluxion

import (
	"context"
	"time"

	"github.com/fluxion-go/fluxion/runtime"
)

// Debounce implements trailing debounce (spec §4.14, §4.16): each value
// restarts a d-duration timer, and the pending value is emitted only once
// the timer elapses without a newer value arriving. Errors pass through
// immediately, without waiting on the pending timer. On upstream
// completion any pending value is emitted before the output closes.
func Debounce[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], d time.Duration, timer runtime.Timer) Stream[V, T] {
	if timer == nil {
		timer = runtime.NewParallelTimer()
	}
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)

		var pending Item[V, T]
		havePending := false
		var timerCh <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case si, ok := <-src:
				if !ok {
					if havePending {
						send(ctx, out, ValueItem(pending))
					}
					return
				}
				if si.IsError() {
					if !send(ctx, out, si) {
						return
					}
					continue
				}
				pending = si.MustItem()
				havePending = true
				timerCh = timer.After(d)
			case <-timerCh:
				if havePending {
					if !send(ctx, out, ValueItem(pending)) {
						return
					}
					havePending = false
				}
				timerCh = nil
			}
		}
	}()
	return out
}
