package fluxion

import "context"

// ScanOrdered maintains an accumulator Acc, folding f over each Value's
// inner and emitting the fold result under the item's own timestamp.
// Errors pass through without touching acc (spec §4.3).
func ScanOrdered[V, Acc, U any, T Timestamp[T]](ctx context.Context, src Stream[V, T], seed Acc, f func(acc *Acc, v V) U) Stream[U, T] {
	out := make(chan StreamItem[U, T])
	go func() {
		defer close(out)
		acc := seed
		forward(ctx, src, out, func(it Item[V, T]) (Item[U, T], bool) {
			return WithInner(it, f(&acc, it.Inner())), true
		})
	}()
	return out
}
