// Package subject implements the hot multicast broadcaster used by
// fluxion.Share to turn a single cold producer into a fan-out source (spec
// §3 "Subject state", §4.12). It is deliberately independent of fluxion's
// item/timestamp types (generic over an opaque message type M) so it can
// be imported from the fluxion package without a cycle; fluxion.Share
// instantiates it with StreamItem[V, T] as M.
package subject

import (
	"sync"

	"github.com/fluxion-go/fluxion/internal/queue"
)

type state int32

const (
	stateOpen state = iota
	stateClosed
)

type subscriber[M any] struct {
	in   chan M
	done chan struct{}
}

// Subject is a hot, multi-subscriber broadcaster. Subscribers registered
// after Close receive an already-closed (empty) stream rather than an
// error (spec §3). Subscriber delivery is unbounded-buffered: a slow
// subscriber grows memory on its own channel without blocking Next or
// other subscribers (spec §4.17).
type Subject[M any] struct {
	mu   sync.Mutex
	st   state
	subs map[int]*subscriber[M]
	next int
}

// New returns an open Subject with no subscribers.
func New[M any]() *Subject[M] {
	return &Subject[M]{subs: make(map[int]*subscriber[M])}
}

// Subscribe registers a fresh subscriber and returns its receive channel
// plus an unsubscribe function. Past items are not replayed: the returned
// channel only receives items sent after this call (spec §4.12).
func (s *Subject[M]) Subscribe() (<-chan M, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st == stateClosed {
		ch := make(chan M)
		close(ch)
		return ch, func() {}
	}

	id := s.next
	s.next++
	in := make(chan M)
	done := make(chan struct{})
	out := queue.Unbounded(done, in)
	s.subs[id] = &subscriber[M]{in: in, done: done}

	var unsubOnce sync.Once
	unsubscribe := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			sub, ok := s.subs[id]
			if ok {
				delete(s.subs, id)
			}
			s.mu.Unlock()
			if ok {
				close(sub.done)
			}
		})
	}
	return out, unsubscribe
}

// Next broadcasts v to every currently registered subscriber. Returns
// false without sending if the subject is closed (spec §3: "further sends
// fail" once closed).
func (s *Subject[M]) Next(v M) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st == stateClosed {
		return false
	}
	for _, sub := range s.subs {
		select {
		case sub.in <- v:
		case <-sub.done:
		}
	}
	return true
}

// Close transitions Open -> Closed: every current subscriber's stream
// completes, and further Subscribe calls receive an empty stream while
// further Next calls fail (spec §3, §4.12, §4.16).
func (s *Subject[M]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st == stateClosed {
		return
	}
	s.st = stateClosed
	for id, sub := range s.subs {
		close(sub.in)
		delete(s.subs, id)
	}
}

// IsClosed reports whether Close has been called.
func (s *Subject[M]) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st == stateClosed
}

// SubscriberCount reports the number of currently registered subscribers.
// Intended for instrumentation rather than control flow. fluxion.Share's
// subscriber gauge does not read it; that gauge is driven by Share's own
// subscribe/unsubscribe hook.
func (s *Subject[M]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
