package fluxion

import (
	"context"

	"github.com/fluxion-go/fluxion/internal/queue"
)

// Partition splits src into two downstream streams via a background
// routing task: trueStream receives Value(v) where p(v.Inner()) holds,
// falseStream the rest. Errors are duplicated to both outputs. Source
// completion closes both outputs. Internal buffering is unbounded per
// side (spec §4.7, §4.13): slow consumption on one side grows memory on
// that side without affecting the other. Cancelling ctx stops the routing
// task and closes both outputs. Dropping the returned streams without
// cancelling ctx does not stop the routing task: the unbounded buffers keep
// accepting items until src completes.
func Partition[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], p func(V) bool) (trueStream, falseStream Stream[V, T]) {
	trueIn := make(chan StreamItem[V, T])
	falseIn := make(chan StreamItem[V, T])
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(trueIn)
		defer close(falseIn)
		for {
			select {
			case <-ctx.Done():
				return
			case si, ok := <-src:
				if !ok {
					return
				}
				if si.IsError() {
					if !sendBoth(ctx, trueIn, falseIn, si) {
						return
					}
					continue
				}
				it := si.MustItem()
				target := falseIn
				if p(it.Inner()) {
					target = trueIn
				}
				select {
				case target <- si:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return queue.Unbounded(done, trueIn), queue.Unbounded(done, falseIn)
}

// sendBoth delivers si to both a and b exactly once each, in either order,
// nil-ing out a channel once its delivery completes so the select doesn't
// offer it again.
func sendBoth[V any, T Timestamp[T]](ctx context.Context, a, b chan<- StreamItem[V, T], si StreamItem[V, T]) bool {
	for a != nil || b != nil {
		select {
		case a <- si:
			a = nil
		case b <- si:
			b = nil
		case <-ctx.Done():
			return false
		}
	}
	return true
}
