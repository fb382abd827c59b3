package fluxion

import (
	"context"
	"time"

	"github.com/fluxion-go/fluxion/runtime"
)

// Sample emits the most recently seen value every d, or nothing if no
// value arrived since the previous tick (spec §4.14, §4.16). Errors pass
// through immediately. Ends when the source ends.
func Sample[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], d time.Duration, timer runtime.Timer) Stream[V, T] {
	if timer == nil {
		timer = runtime.NewParallelTimer()
	}
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)

		var latest Item[V, T]
		haveLatest := false
		tick := timer.After(d)

		for {
			select {
			case <-ctx.Done():
				return
			case si, ok := <-src:
				if !ok {
					return
				}
				if si.IsError() {
					if !send(ctx, out, si) {
						return
					}
					continue
				}
				latest = si.MustItem()
				haveLatest = true
			case <-tick:
				if haveLatest {
					if !send(ctx, out, ValueItem(latest)) {
						return
					}
					haveLatest = false
				}
				tick = timer.After(d)
			}
		}
	}()
	return out
}
