package fluxion

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/fluxion-go/fluxion/runtime"
)

// executionConfig holds the options shared by Subscribe and SubscribeLatest
// (spec §4.15).
type executionConfig struct {
	onError     func(error)
	token       *runtime.CancellationToken
	spawner     runtime.Spawner
	logger      *Logger
	maxInFlight int64
}

// ExecutionOption configures Subscribe or SubscribeLatest.
type ExecutionOption func(*executionConfig)

// WithOnError installs the error callback invoked when a handler returns
// an error, or when the source itself emits one; without it, errors are
// logged via the package default logger (spec §4.15, §7).
func WithOnError(f func(error)) ExecutionOption {
	return func(c *executionConfig) { c.onError = f }
}

// WithCancellationToken ties the helper's lifetime to an externally owned
// token in addition to ctx, letting one token stop several subscriptions
// at once (spec §3 "Cancellation token").
func WithCancellationToken(token *runtime.CancellationToken) ExecutionOption {
	return func(c *executionConfig) { c.token = token }
}

// WithSpawner overrides the default ParallelSpawner used to run each
// item's handler.
func WithSpawner(s runtime.Spawner) ExecutionOption {
	return func(c *executionConfig) { c.spawner = s }
}

// WithLogger overrides the default logger used when no on_error callback
// is supplied.
func WithLogger(l *Logger) ExecutionOption {
	return func(c *executionConfig) { c.logger = l }
}

// WithMaxConcurrency bounds the number of in-flight handlers Subscribe
// will run at once, admission-controlled by a weighted semaphore (spec §9
// "a practical implementation may want a bound on concurrently spawned
// work"). Zero (the default) leaves concurrency unbounded. Has no effect
// on SubscribeLatest, which is always at most one handler in flight.
func WithMaxConcurrency(n int64) ExecutionOption {
	return func(c *executionConfig) { c.maxInFlight = n }
}

func newExecutionConfig(opts []ExecutionOption) *executionConfig {
	c := &executionConfig{spawner: runtime.NewParallelSpawner()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *executionConfig) reportError(operator string, err error) {
	if c.onError != nil {
		c.onError(err)
		return
	}
	logCallbackError(c.logger, operator, err)
}

// deriveContext combines ctx with the configured cancellation token, if
// any.
func (c *executionConfig) deriveContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.token == nil {
		return context.WithCancel(ctx)
	}
	return c.token.Context(ctx)
}

// acquireSlot blocks until a concurrency slot is free (a no-op when
// maxInFlight is unset), returning a release function to call once the
// handler completes.
func (c *executionConfig) acquireSlot(ctx context.Context, sem *semaphore.Weighted) (func(), error) {
	if sem == nil {
		return func() {}, nil
	}
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { sem.Release(1) }, nil
}

func newSemaphore(c *executionConfig) *semaphore.Weighted {
	if c.maxInFlight <= 0 {
		return nil
	}
	return semaphore.NewWeighted(c.maxInFlight)
}
