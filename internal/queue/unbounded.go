// Package queue provides an unbounded, FIFO, single-producer/single-consumer
// relay channel: values written to the input side are always accepted
// immediately, and buffered in a growing slice until the consumer is ready.
// Used by partition (spec §4.7: "internal channels are unbounded; slow
// consumption on one side grows memory on that side without affecting the
// other") and by the subject/share forwarder (spec §4.17: "Subscriber slow:
// unbounded buffering in channel").
package queue

// Unbounded starts a relay goroutine and returns its input and output
// sides. The goroutine exits, closing out, once in is closed and drained,
// or once done is closed. Pending buffered values are dropped if done is
// closed before they are consumed.
func Unbounded[V any](done <-chan struct{}, in <-chan V) <-chan V {
	out := make(chan V)
	go func() {
		defer close(out)
		var buf []V
		for {
			if len(buf) == 0 {
				select {
				case v, ok := <-in:
					if !ok {
						return
					}
					buf = append(buf, v)
				case <-done:
					return
				}
				continue
			}
			select {
			case v, ok := <-in:
				if !ok {
					for _, q := range buf {
						select {
						case out <- q:
						case <-done:
							return
						}
					}
					return
				}
				buf = append(buf, v)
			case out <- buf[0]:
				buf = buf[1:]
			case <-done:
				return
			}
		}
	}()
	return out
}
