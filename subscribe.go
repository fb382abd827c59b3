package fluxion

import (
	"context"
)

// runCallback invokes onNext, converting a recovered panic into a
// CallbackPanicError so it reaches the same error-routing path as a
// returned error (spec §4.15, §7).
func runCallback[V any, T Timestamp[T]](ctx context.Context, item Item[V, T], onNext func(context.Context, Item[V, T]) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = CallbackPanicError("subscribe", r)
		}
	}()
	return onNext(ctx, item)
}

// Subscribe consumes src item by item, spawning onNext for each value
// (spec §4.15). A value handler's error goes to the configured on_error
// callback, or is logged. Upstream errors are reported the same way,
// without stopping consumption. Subscribe returns once src completes or
// ctx (or a configured CancellationToken) is cancelled; outstanding
// handlers are not awaited (at-most-once shutdown).
func Subscribe[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], onNext func(ctx context.Context, item Item[V, T]) error, opts ...ExecutionOption) {
	c := newExecutionConfig(opts)
	sem := newSemaphore(c)
	execCtx, cancel := c.deriveContext(ctx)
	defer cancel()

	for {
		select {
		case <-execCtx.Done():
			return
		case si, ok := <-src:
			if !ok {
				return
			}
			if si.IsError() {
				c.reportError("subscribe", si.Err())
				continue
			}
			it := si.MustItem()
			release, err := c.acquireSlot(execCtx, sem)
			if err != nil {
				return
			}
			c.spawner.Spawn(execCtx, func(taskCtx context.Context) {
				defer release()
				if err := runCallback(taskCtx, it, onNext); err != nil {
					c.reportError("subscribe", err)
				}
			})
		}
	}
}
