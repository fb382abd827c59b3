package fluxion

import "context"

// OrderedMerge merges k streams of identical item type into one, emitting
// items in non-decreasing timestamp order. Each source is fed through a
// one-slot lookahead, refilled on request: once every still-open source
// has a filled slot, the smallest-timestamp slot is emitted and a refill
// is requested for just that slot. Errors at position i are emitted when
// they are the current smallest-available item; they never block other
// sources (spec §4.9).
func OrderedMerge[V any, T Timestamp[T]](ctx context.Context, streams ...Stream[V, T]) Stream[V, T] {
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)

		k := len(streams)
		if k == 0 {
			return
		}

		type arrival struct {
			idx int
			si  StreamItem[V, T]
			ok  bool
		}
		fanin := make(chan arrival)
		reqCh := make([]chan struct{}, k)
		for i := range reqCh {
			reqCh[i] = make(chan struct{}, 1)
		}
		for i, s := range streams {
			i, s := i, s
			go func() {
				for {
					select {
					case <-reqCh[i]:
					case <-ctx.Done():
						return
					}
					select {
					case si, ok := <-s:
						select {
						case fanin <- arrival{idx: i, si: si, ok: ok}:
						case <-ctx.Done():
							return
						}
						if !ok {
							return
						}
					case <-ctx.Done():
						return
					}
				}
			}()
		}

		type slotState struct {
			si     StreamItem[V, T]
			filled bool
			closed bool
		}
		slots := make([]slotState, k)
		openCount := k

		pending := 0
		for i := 0; i < k; i++ {
			reqCh[i] <- struct{}{}
			pending++
		}

		for openCount > 0 {
			for pending > 0 {
				select {
				case a := <-fanin:
					pending--
					if !a.ok {
						slots[a.idx].closed = true
						openCount--
					} else {
						slots[a.idx].si = a.si
						slots[a.idx].filled = true
					}
				case <-ctx.Done():
					return
				}
			}
			if openCount == 0 {
				return
			}

			minIdx := -1
			for i := 0; i < k; i++ {
				if slots[i].closed || !slots[i].filled {
					continue
				}
				if minIdx == -1 || compareSlot(slots[i].si, slots[minIdx].si) < 0 {
					minIdx = i
				}
			}
			if minIdx == -1 {
				return
			}

			next := slots[minIdx].si
			if next.IsError() {
				next = ErrorItem[V, T](TagSource(next.Err(), minIdx))
			}
			if !send(ctx, out, next) {
				return
			}
			var zero StreamItem[V, T]
			slots[minIdx].si = zero
			slots[minIdx].filled = false
			reqCh[minIdx] <- struct{}{}
			pending++
		}
	}()
	return out
}

// compareSlot orders two StreamItems by timestamp; an Error item has no
// timestamp of its own, so it sorts as immediately ready (spec §4.9: an
// error is emitted once it is the current-smallest-available item).
func compareSlot[V any, T Timestamp[T]](a, b StreamItem[V, T]) int {
	ai, aok := a.Item()
	bi, bok := b.Item()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return ai.Timestamp().Compare(bi.Timestamp())
	}
}
