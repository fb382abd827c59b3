// Package guard backs the buffer-cap configuration point spec.md's Open
// Question anticipates for partition's unbounded buffers ("a production
// implementation may want a bounded variant... a configuration point for
// buffer caps"): a sliding-window admission check. fluxion.Share installs
// it via WithShareLimit and consults it on every forwarded item; partition
// and merge_with do not use it.
package guard

import (
	"fmt"
	"time"

	"github.com/joeycumines/go-catrate"
)

// Limit is a per-category sliding-window admission check backed by
// catrate.Limiter. category is typically the operator's name or stream
// position, letting one Limit instance bound several independent routes.
type Limit struct {
	limiter  *catrate.Limiter
	resource string
	max      int
}

// NewLimit builds a Limit admitting at most max events per window for any
// category, reporting resource in the error it produces once exceeded.
func NewLimit(resource string, window time.Duration, max int) *Limit {
	return &Limit{
		limiter:  catrate.NewLimiter(map[time.Duration]int{window: max}),
		resource: resource,
		max:      max,
	}
}

// Allow reports whether an event in category is admitted right now.
func (l *Limit) Allow(category any) bool {
	if l == nil {
		return true
	}
	_, ok := l.limiter.Allow(category)
	return ok
}

// Resource returns the resource name this Limit reports on rejection.
func (l *Limit) Resource() string { return l.resource }

// Max returns the configured event ceiling.
func (l *Limit) Max() int { return l.max }

// ExceededMessage formats the context string for a ResourceLimitExceeded
// error produced when Allow returns false.
func (l *Limit) ExceededMessage() string {
	return fmt.Sprintf("%s exceeded limit of %d", l.resource, l.max)
}
