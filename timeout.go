package fluxion

import (
	"context"
	"time"

	"github.com/fluxion-go/fluxion/runtime"
)

// Timeout arms a d-duration window at startup and resets it with every
// item received (value or error). If the window elapses first, it emits a
// Timeout error and ends the stream; otherwise upstream completion ends
// the output normally (spec §4.14, §4.16).
func Timeout[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], d time.Duration, timer runtime.Timer) Stream[V, T] {
	if timer == nil {
		timer = runtime.NewParallelTimer()
	}
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)

		window := timer.After(d)
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
				window = timer.After(d)
			case <-window:
				send(ctx, out, ErrorItem[V, T](TimeoutError("Timeout", nil)))
				return
			}
		}
	}()
	return out
}
