package fluxion

import (
	"context"

	"github.com/fluxion-go/fluxion/internal/combine"
)

// WithLatestFrom emits only when primary emits; the result is
// select(primary's latest, others' latest). Waits until primary and every
// secondary have emitted at least once before the first emission. Errors
// from either side are forwarded (spec §4.11).
func WithLatestFrom[P, S, R any, T Timestamp[T]](ctx context.Context, primary Stream[P, T], others []Stream[S, T], sel func(p P, others []S, ts T) R) Stream[R, T] {
	out := make(chan StreamItem[R, T])
	go func() {
		defer close(out)

		secondary := combine.NewSlots[S](len(others))
		var primaryVal P

		primaryCh := fanIn(ctx, []Stream[P, T]{primary})
		secondaryCh := fanIn(ctx, others)
		activePrimary, activeSecondary := 1, len(others)

		for activePrimary > 0 || activeSecondary > 0 {
			select {
			case <-ctx.Done():
				return
			case a, ok := <-primaryCh:
				if !ok {
					primaryCh = nil
					continue
				}
				if !a.ok {
					activePrimary--
					primaryCh = closedIfDone(primaryCh, activePrimary)
					continue
				}
				if a.si.IsError() {
					if !send(ctx, out, ErrorItem[R, T](TagSource(a.si.Err(), 0))) {
						return
					}
					continue
				}
				it := a.si.MustItem()
				primaryVal = it.Inner()
				if !secondary.Complete() {
					continue
				}
				if !send(ctx, out, Value(sel(primaryVal, secondary.Snapshot(), it.Timestamp()), it.Timestamp())) {
					return
				}
			case a, ok := <-secondaryCh:
				if !ok {
					secondaryCh = nil
					continue
				}
				if !a.ok {
					activeSecondary--
					secondaryCh = closedIfDone(secondaryCh, activeSecondary)
					continue
				}
				if a.si.IsError() {
					if !send(ctx, out, ErrorItem[R, T](TagSource(a.si.Err(), a.idx+1))) {
						return
					}
					continue
				}
				it := a.si.MustItem()
				secondary.Set(a.idx, it.Inner())
			}
		}
	}()
	return out
}

// closedIfDone returns nil (disabling the channel's select case) once no
// sources feeding it remain open, else returns ch unchanged.
func closedIfDone[V any, T Timestamp[T]](ch <-chan arrival[V, T], remainingActive int) <-chan arrival[V, T] {
	if remainingActive <= 0 {
		return nil
	}
	return ch
}

// EmitWhen emits the primary's latest value (typed as primary) whenever
// filter(combined state) returns true; unlike WithLatestFrom, updates on
// either side can trigger a re-evaluation and re-emission. Waits until
// primary and every secondary have emitted once (spec §4.11).
func EmitWhen[P, S any, T Timestamp[T]](ctx context.Context, primary Stream[P, T], others []Stream[S, T], filter func(p P, others []S) bool) Stream[P, T] {
	out := make(chan StreamItem[P, T])
	go func() {
		defer close(out)

		secondary := combine.NewSlots[S](len(others))
		var primaryVal P
		var primaryTs T
		havePrimary := false

		primaryCh := fanIn(ctx, []Stream[P, T]{primary})
		secondaryCh := fanIn(ctx, others)
		activePrimary, activeSecondary := 1, len(others)

		evaluate := func() bool {
			return havePrimary && secondary.Complete() && filter(primaryVal, secondary.Snapshot())
		}

		for activePrimary > 0 || activeSecondary > 0 {
			select {
			case <-ctx.Done():
				return
			case a, ok := <-primaryCh:
				if !ok {
					primaryCh = nil
					continue
				}
				if !a.ok {
					activePrimary--
					primaryCh = closedIfDone(primaryCh, activePrimary)
					continue
				}
				if a.si.IsError() {
					if !send(ctx, out, ErrorItem[P, T](TagSource(a.si.Err(), 0))) {
						return
					}
					continue
				}
				it := a.si.MustItem()
				primaryVal = it.Inner()
				primaryTs = it.Timestamp()
				havePrimary = true
				if evaluate() {
					if !send(ctx, out, Value(primaryVal, primaryTs)) {
						return
					}
				}
			case a, ok := <-secondaryCh:
				if !ok {
					secondaryCh = nil
					continue
				}
				if !a.ok {
					activeSecondary--
					secondaryCh = closedIfDone(secondaryCh, activeSecondary)
					continue
				}
				if a.si.IsError() {
					if !send(ctx, out, ErrorItem[P, T](TagSource(a.si.Err(), a.idx+1))) {
						return
					}
					continue
				}
				it := a.si.MustItem()
				secondary.Set(a.idx, it.Inner())
				if evaluate() {
					if !send(ctx, out, Value(primaryVal, primaryTs)) {
						return
					}
				}
			}
		}
	}()
	return out
}

// TakeLatestWhen emits the primary's latest value each time trigger emits
// and predicate(primary's latest, trigger value) holds. Primary updates
// buffer silently; trigger drives emission. Waits until both have emitted
// at least once (spec §4.11).
func TakeLatestWhen[P, Tr any, T Timestamp[T]](ctx context.Context, primary Stream[P, T], trigger Stream[Tr, T], predicate func(p P, trig Tr) bool) Stream[P, T] {
	out := make(chan StreamItem[P, T])
	go func() {
		defer close(out)

		var primaryVal P
		havePrimary := false

		primaryCh := fanIn(ctx, []Stream[P, T]{primary})
		triggerCh := fanIn(ctx, []Stream[Tr, T]{trigger})
		activePrimary, activeTrigger := 1, 1

		for activePrimary > 0 || activeTrigger > 0 {
			select {
			case <-ctx.Done():
				return
			case a, ok := <-primaryCh:
				if !ok {
					primaryCh = nil
					continue
				}
				if !a.ok {
					activePrimary--
					primaryCh = closedIfDone(primaryCh, activePrimary)
					continue
				}
				if a.si.IsError() {
					if !send(ctx, out, ErrorItem[P, T](TagSource(a.si.Err(), 0))) {
						return
					}
					continue
				}
				it := a.si.MustItem()
				primaryVal = it.Inner()
				havePrimary = true
			case a, ok := <-triggerCh:
				if !ok {
					triggerCh = nil
					continue
				}
				if !a.ok {
					activeTrigger--
					triggerCh = closedIfDone(triggerCh, activeTrigger)
					continue
				}
				if a.si.IsError() {
					if !send(ctx, out, ErrorItem[P, T](TagSource(a.si.Err(), 1))) {
						return
					}
					continue
				}
				it := a.si.MustItem()
				if havePrimary && predicate(primaryVal, it.Inner()) {
					if !send(ctx, out, Value(primaryVal, it.Timestamp())) {
						return
					}
				}
			}
		}
	}()
	return out
}

// TakeWhileWith forwards primary items while predicate(primary's latest,
// secondary's latest) holds, then completes — unlike TakeLatestWhen, it
// ends the stream on the first failing check rather than continuing to
// buffer or skip. Supplements spec.md from the original implementation's
// take_while_with coordinator (a sibling of §4.11's joins). Waits until
// both sides have emitted at least once.
func TakeWhileWith[P, S any, T Timestamp[T]](ctx context.Context, primary Stream[P, T], secondary Stream[S, T], predicate func(p P, s S) bool) Stream[P, T] {
	out := make(chan StreamItem[P, T])
	go func() {
		defer close(out)

		var secondaryVal S
		haveSecondary := false

		primaryCh := fanIn(ctx, []Stream[P, T]{primary})
		secondaryCh := fanIn(ctx, []Stream[S, T]{secondary})
		activePrimary, activeSecondary := 1, 1

		for activePrimary > 0 || activeSecondary > 0 {
			select {
			case <-ctx.Done():
				return
			case a, ok := <-primaryCh:
				if !ok {
					primaryCh = nil
					continue
				}
				if !a.ok {
					return
				}
				if a.si.IsError() {
					if !send(ctx, out, ErrorItem[P, T](TagSource(a.si.Err(), 0))) {
						return
					}
					continue
				}
				it := a.si.MustItem()
				if !haveSecondary || !predicate(it.Inner(), secondaryVal) {
					return
				}
				if !send(ctx, out, Value(it.Inner(), it.Timestamp())) {
					return
				}
			case a, ok := <-secondaryCh:
				if !ok {
					secondaryCh = nil
					continue
				}
				if !a.ok {
					activeSecondary--
					secondaryCh = closedIfDone(secondaryCh, activeSecondary)
					continue
				}
				if a.si.IsError() {
					if !send(ctx, out, ErrorItem[P, T](TagSource(a.si.Err(), 1))) {
						return
					}
					continue
				}
				it := a.si.MustItem()
				secondaryVal = it.Inner()
				haveSecondary = true
			}
		}
	}()
	return out
}
