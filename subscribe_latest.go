package fluxion

import (
	"context"

	"github.com/fluxion-go/fluxion/runtime"
)

// latestState is the single pending-work slot subscribe_latest serializes
// handler starts through (spec §4.15).
type latestState[V any, T Timestamp[T]] struct {
	running bool
	pending Item[V, T]
	hasNext bool
}

// SubscribeLatest consumes src with latest-wins semantics: the first value
// is always processed; while a handler is running, newer values overwrite
// a single pending slot, and only the most recent survives to run next
// (spec §4.15). This guarantees progress is made on the freshest data
// without unbounded handler fan-out.
func SubscribeLatest[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], onNext func(ctx context.Context, item Item[V, T]) error, opts ...ExecutionOption) {
	c := newExecutionConfig(opts)
	execCtx, cancel := c.deriveContext(ctx)
	defer cancel()

	var mu runtime.ParallelMutex
	state := &latestState[V, T]{}

	var startHandler func(item Item[V, T])
	startHandler = func(item Item[V, T]) {
		c.spawner.Spawn(execCtx, func(taskCtx context.Context) {
			if err := runCallback(taskCtx, item, onNext); err != nil {
				c.reportError("subscribe_latest", err)
			}
			mu.Lock()
			if state.hasNext {
				next := state.pending
				state.hasNext = false
				mu.Unlock()
				startHandler(next)
				return
			}
			state.running = false
			mu.Unlock()
		})
	}

	for {
		select {
		case <-execCtx.Done():
			return
		case si, ok := <-src:
			if !ok {
				return
			}
			if si.IsError() {
				c.reportError("subscribe_latest", si.Err())
				continue
			}
			it := si.MustItem()
			mu.Lock()
			if !state.running {
				state.running = true
				mu.Unlock()
				startHandler(it)
				continue
			}
			state.pending = it
			state.hasNext = true
			mu.Unlock()
		}
	}
}
