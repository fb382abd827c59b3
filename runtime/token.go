// Package runtime supplies the abstraction Fluxion's operators are written
// against: a Timer for sleeps and "now", a Task spawner, a Mutex, and a
// CancellationToken, in two execution profiles (parallel, cooperative)
// sharing the same operator code (spec §5, §9).
package runtime

import (
	"context"
	"sync"
)

// CancellationToken is a shared, monotonic cancellation flag with
// notification, independent of any single context.Context tree. cancel() is
// idempotent; every current and future waiter observes cancellation in
// finite time after Cancel returns (spec §3).
type CancellationToken struct {
	mu     sync.Mutex
	done   chan struct{}
	closed bool
}

// NewCancellationToken returns a fresh, uncancelled token.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{done: make(chan struct{})}
}

// Cancel marks the token cancelled. Safe to call more than once or
// concurrently; only the first call has an effect.
func (c *CancellationToken) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}

// Done returns a channel closed once Cancel has been called.
func (c *CancellationToken) Done() <-chan struct{} {
	return c.done
}

// IsCancelled reports whether Cancel has been called.
func (c *CancellationToken) IsCancelled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Context returns a context.Context derived from parent that is cancelled
// when either parent is cancelled or c is cancelled, for interop with
// stdlib APIs (channel receives, time.After, etc.) that want a
// context.Context rather than a bare Done channel.
func (c *CancellationToken) Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-c.done:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// Linked returns a new token that becomes cancelled as soon as any of
// tokens is cancelled.
func Linked(tokens ...*CancellationToken) *CancellationToken {
	merged := NewCancellationToken()
	var once sync.Once
	cancelOnce := func() { once.Do(merged.Cancel) }
	for _, t := range tokens {
		t := t
		go func() {
			<-t.Done()
			cancelOnce()
		}()
	}
	return merged
}
