package fluxion

import (
	"context"
	"time"

	"github.com/fluxion-go/fluxion/runtime"
)

// Throttle implements leading throttle (spec §4.14, §4.16): the first
// value after a quiet period is emitted immediately and opens a window of
// duration d; every value arriving within the window is dropped. Errors
// bypass the window entirely.
func Throttle[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], d time.Duration, timer runtime.Timer) Stream[V, T] {
	if timer == nil {
		timer = runtime.NewParallelTimer()
	}
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)

		var windowCh <-chan time.Time
		inWindow := false

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
				if inWindow {
					continue
				}
				if !send(ctx, out, si) {
					return
				}
				inWindow = true
				windowCh = timer.After(d)
			case <-windowCh:
				inWindow = false
				windowCh = nil
			}
		}
	}()
	return out
}
