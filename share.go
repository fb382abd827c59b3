package fluxion

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fluxion-go/fluxion/guard"
	"github.com/fluxion-go/fluxion/subject"
)

// FluxionSubject is the push-API multicast primitive named in spec §4.12:
// usable directly without a source stream, via explicit Next/Error/Close
// calls, or driven by a forwarder task (see Share).
type FluxionSubject[V any, T Timestamp[T]] struct {
	subj  *subject.Subject[StreamItem[V, T]]
	limit *guard.Limit
	// onSubscribe, if set, is called with +1 on subscription and -1 on
	// unsubscription/teardown, driving WithShareMetrics' subscriber gauge.
	onSubscribe func(delta int64)
}

// NewFluxionSubject returns an open subject with no subscribers. limit may
// be nil for unbounded forwarding (spec's Open Question on buffer caps:
// passing a non-nil *guard.Limit makes Next reject with
// ResourceLimitExceeded instead of forwarding once the rate is exceeded,
// without tearing down the subject).
func NewFluxionSubject[V any, T Timestamp[T]](limit *guard.Limit) *FluxionSubject[V, T] {
	return &FluxionSubject[V, T]{subj: subject.New[StreamItem[V, T]](), limit: limit}
}

// Next pushes a value item to every current subscriber. Returns false if
// the subject is closed or the configured resource limit rejects it; in
// the limit-rejected case the subject stays open and a
// ResourceLimitExceeded error is broadcast in place of the value.
func (f *FluxionSubject[V, T]) Next(item Item[V, T]) bool {
	if f.limit != nil && !f.limit.Allow("next") {
		f.subj.Next(ErrorItem[V, T](ResourceLimitExceededError(f.limit.ExceededMessage(), nil)))
		return false
	}
	return f.subj.Next(ValueItem(item))
}

// Error broadcasts err to every current subscriber, then closes the
// subject (spec §3: "Sending an error transitions the subject to closed
// after delivery").
func (f *FluxionSubject[V, T]) Error(err error) bool {
	ok := f.subj.Next(ErrorItem[V, T](err))
	f.subj.Close()
	return ok
}

// Close transitions the subject to closed without broadcasting an error.
func (f *FluxionSubject[V, T]) Close() { f.subj.Close() }

// IsClosed reports whether Close (or Error) has been called.
func (f *FluxionSubject[V, T]) IsClosed() bool { return f.subj.IsClosed() }

// Subscribe returns a fresh stream receiving items sent from this point
// forward; it completes when ctx is done, when Close/Error is called, or
// when the subject was already closed at subscription time (an empty
// stream, per spec §3).
func (f *FluxionSubject[V, T]) Subscribe(ctx context.Context) Stream[V, T] {
	raw, unsubscribe := f.subj.Subscribe()
	if f.onSubscribe != nil {
		f.onSubscribe(1)
	}
	out := make(chan StreamItem[V, T])
	go func() {
		defer close(out)
		defer func() {
			unsubscribe()
			if f.onSubscribe != nil {
				f.onSubscribe(-1)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case si, ok := <-raw:
				if !ok {
					return
				}
				if !send(ctx, out, si) {
					return
				}
			}
		}
	}()
	return out
}

// FluxionShare owns the single background forwarder task that turns a
// cold source into the hot FluxionSubject behind it (spec §4.12, §4.13).
type FluxionShare[V any, T Timestamp[T]] struct {
	subject *FluxionSubject[V, T]
	cancel  context.CancelFunc
	g       *errgroup.Group
}

// shareConfig holds Share's optional instrumentation, mirroring
// executionConfig's functional-options shape (execution.go).
type shareConfig struct {
	limit   *guard.Limit
	metrics ShareMetrics
}

// ShareOption configures Share.
type ShareOption func(*shareConfig)

// WithShareLimit installs an optional buffer-cap admission check (spec's
// Open Question on partition/share buffer caps); the default, nil, leaves
// forwarding unbounded.
func WithShareLimit(limit *guard.Limit) ShareOption {
	return func(c *shareConfig) { c.limit = limit }
}

// WithShareMetrics records the forwarder's subscriber count (updated on
// each subscribe/unsubscribe) and forwarded-item count against m. The
// default is NoopShareMetrics, so Share carries no instrumentation cost
// unless a caller opts in.
func WithShareMetrics(m ShareMetrics) ShareOption {
	return func(c *shareConfig) { c.metrics = m }
}

func newShareConfig(opts []ShareOption) *shareConfig {
	c := &shareConfig{metrics: NoopShareMetrics{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Share converts src into a hot, fan-out source: a single background task
// (run via an errgroup.Group, per the corpus' goroutine-group idiom) owns
// src and forwards each item to every current subscriber. An upstream
// error is broadcast to every subscriber, then the subject closes (spec
// §4.12, §4.17).
func Share[V any, T Timestamp[T]](ctx context.Context, src Stream[V, T], opts ...ShareOption) *FluxionShare[V, T] {
	cfg := newShareConfig(opts)
	fctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(fctx)
	subj := NewFluxionSubject[V, T](cfg.limit)

	forwarded := cfg.metrics.Forwarded()
	subscribers := cfg.metrics.Subscribers()
	subj.onSubscribe = func(delta int64) { subscribers.Add(delta) }

	g.Go(func() error {
		defer subj.Close()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case si, ok := <-src:
				if !ok {
					return nil
				}
				if si.IsError() {
					subj.Error(si.Err())
					return nil
				}
				if subj.Next(si.MustItem()) {
					forwarded.Add(1)
				}
			}
		}
	})

	return &FluxionShare[V, T]{subject: subj, cancel: cancel, g: g}
}

// Subscribe returns a fresh downstream stream from the shared source (spec
// §4.12).
func (s *FluxionShare[V, T]) Subscribe(ctx context.Context) Stream[V, T] {
	return s.subject.Subscribe(ctx)
}

// Close cancels the forwarder task and closes the subject, completing
// every current subscriber's stream (spec §4.12: "Dropping the share
// handle cancels the forwarder task and closes the subject").
func (s *FluxionShare[V, T]) Close() {
	s.cancel()
	s.subject.Close()
}

// Wait blocks until the forwarder task has returned, for callers that need
// deterministic shutdown ordering (e.g. tests).
func (s *FluxionShare[V, T]) Wait() error {
	return s.g.Wait()
}
