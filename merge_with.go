package fluxion

import (
	"context"

	"github.com/fluxion-go/fluxion/runtime"
)

// MergeWith is the stateful repository-style merge of spec §4.10: starting
// from a seed state S, each added stream drives an update f(item, &state)
// -> out_item under a shared lock, and all added streams are produced into
// a single ordered merge. State is visible to every step but mutated one
// item at a time, serialized by the lock. Build with NewMergeWith, call
// Add for each source stream, then Merged() once to obtain the combined
// output.
type MergeWith[V any, S any, T Timestamp[T]] struct {
	ctx     context.Context
	mu      runtime.Mutex
	state   *S
	streams []Stream[V, T]
}

// NewMergeWith starts a MergeWith with the given seed state. If mu is nil,
// a ParallelMutex is used.
func NewMergeWith[V any, S any, T Timestamp[T]](ctx context.Context, seed S, mu runtime.Mutex) *MergeWith[V, S, T] {
	if mu == nil {
		mu = &runtime.ParallelMutex{}
	}
	s := seed
	return &MergeWith[V, S, T]{ctx: ctx, mu: mu, state: &s}
}

// Add extends the merge with a new source stream. Each Value item drives
// f(item, state) under the shared lock, producing an output item with the
// same timestamp. Errors pass through untouched, without acquiring the
// lock (spec §4.17: "Forward error; state untouched").
func (m *MergeWith[V, S, T]) Add(src Stream[V, T], f func(item Item[V, T], state *S) V) {
	transformed := make(chan StreamItem[V, T])
	go func() {
		defer close(transformed)
		for {
			select {
			case <-m.ctx.Done():
				return
			case si, ok := <-src:
				if !ok {
					return
				}
				if si.IsError() {
					if !send(m.ctx, transformed, si) {
						return
					}
					continue
				}
				it := si.MustItem()
				m.mu.Lock()
				out := f(it, m.state)
				m.mu.Unlock()
				if !send(m.ctx, transformed, Value(out, it.Timestamp())) {
					return
				}
			}
		}
	}()
	m.streams = append(m.streams, Stream[V, T](transformed))
}

// Merged returns the totally-ordered merge of every stream added via Add
// so far. Call it once, after all Add calls: OrderedMerge snapshots the
// stream slice at call time.
func (m *MergeWith[V, S, T]) Merged() Stream[V, T] {
	return OrderedMerge(m.ctx, m.streams...)
}

// State returns the current shared state. Safe to call from outside the
// merge's own goroutines (it takes the lock), but any value read may be
// stale the instant it returns if streams are still arriving.
func (m *MergeWith[V, S, T]) State() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}
