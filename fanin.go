package fluxion

import "context"

// arrival tags an item with the position of the stream it came from.
// Shared fan-in shape used by every multi-stream join operator.
type arrival[V any, T Timestamp[T]] struct {
	idx int
	si  StreamItem[V, T]
	ok  bool
}

// fanIn starts one goroutine per stream, each forwarding every item
// (tagged with its source position) into a single shared channel, along
// with a final arrival carrying ok=false when that source closes. fanIn
// never closes the returned channel; callers track how many sources
// remain open via the ok flag (mirroring combine_latest's active-count
// bookkeeping) since multiple still-open sources share one channel.
func fanIn[V any, T Timestamp[T]](ctx context.Context, streams []Stream[V, T]) <-chan arrival[V, T] {
	out := make(chan arrival[V, T])
	for i, s := range streams {
		i, s := i, s
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case si, ok := <-s:
					select {
					case out <- arrival[V, T]{idx: i, si: si, ok: ok}:
					case <-ctx.Done():
						return
					}
					if !ok {
						return
					}
				}
			}
		}()
	}
	return out
}
