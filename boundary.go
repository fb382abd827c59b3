package fluxion

import "context"

// IntoStream adapts an unbounded host receiver channel into a Stream,
// wrapping each payload into a Value item with the given clock's current
// timestamp. It is the constructor named in spec §6 as into_fluxion_stream.
// The returned stream closes when recv closes or ctx is done.
func IntoStream[V any, T Timestamp[T]](ctx context.Context, recv <-chan V, clock func() T) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-recv:
				if !ok {
					return
				}
				select {
				case out <- Value[V, T](v, clock()):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// IntoStreamMap adapts a host receiver channel into a Stream, applying
// mapper to each raw payload and timestamping the result in a single step.
// This is the into_fluxion_stream_map boundary adapter from spec §6,
// detailed in the original implementation's timestamped_channel module:
// it exists to avoid materializing an intermediate untimestamped item
// before mapping.
func IntoStreamMap[H, V any, T Timestamp[T]](ctx context.Context, recv <-chan H, mapper func(H) (V, T)) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case h, ok := <-recv:
				if !ok {
					return
				}
				v, ts := mapper(h)
				select {
				case out <- Value[V, T](v, ts):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Drain consumes and discards every item from src until it closes or ctx is
// done. Useful in tests and in shutdown paths that must unblock a producer
// without caring about the values.
func Drain[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T]) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-src:
			if !ok {
				return
			}
		}
	}
}

// Collect reads every item from src until it closes, returning the values
// and errors observed in arrival order. Intended for tests over finite
// streams; do not use on unbounded sources.
func Collect[V any, T Timestamp[T]](src Stream[V, T]) (values []Item[V, T], errs []error) {
	for si := range src {
		if it, ok := si.Item(); ok {
			values = append(values, it)
		} else {
			errs = append(errs, si.Err())
		}
	}
	return values, errs
}
