package fluxion

import "context"

// WindowByCount buffers inner values until n have accumulated, then emits
// one Value whose inner is the slice of those n inners, carrying the last
// item's timestamp. Any partial window is emitted as a final Value on
// source completion. On an error, the current buffer is discarded and the
// error is forwarded. Panics if n == 0 (spec §4.6).
func WindowByCount[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], n int) Stream[[]V, T] {
	if n == 0 {
		panic("fluxion: WindowByCount requires n > 0")
	}
	out := make(chan StreamItem[[]V, T])
	go func() {
		defer close(out)
		buf := make([]V, 0, n)
		var lastTs T
		for {
			select {
			case <-ctx.Done():
				return
			case si, ok := <-src:
				if !ok {
					if len(buf) > 0 {
						send(ctx, out, Value[[]V, T](buf, lastTs))
					}
					return
				}
				if si.IsError() {
					buf = buf[:0]
					if !send(ctx, out, ErrorItem[[]V, T](si.Err())) {
						return
					}
					continue
				}
				it := si.MustItem()
				buf = append(buf, it.Inner())
				lastTs = it.Timestamp()
				if len(buf) == n {
					full := make([]V, n)
					copy(full, buf)
					if !send(ctx, out, Value[[]V, T](full, lastTs)) {
						return
					}
					buf = buf[:0]
				}
			}
		}
	}()
	return out
}
