// Package fluxion provides reactive stream operators with explicit temporal
// ordering. Producers push items carrying a monotonic timestamp; consumers
// compose pipelines of operators that filter, transform, join, buffer,
// rate-control, and fan out those items.
//
// # Item envelope
//
// Every value flowing through a pipeline is an Item[V, T]: a payload V paired
// with a timestamp T satisfying Timestamp[T] (a total order). Concrete
// timestamp types are provided for a monotonic counter (Sequence), a
// duration-since-epoch instant (MonotonicInstant), and UTC wall-clock time
// (WallClock); callers may supply their own as long as it implements
// Timestamp[T].
//
// A Stream[V, T] is a receive-only channel of StreamItem[V, T], the sum type
// of a well-typed Value and a non-terminal Error. Operators are free
// functions rather than methods: Go does not allow a generic type's method
// to introduce additional type parameters, and map_ordered, for example,
// must go from Stream[V, T] to Stream[U, T]. Pipelines are built by nesting
// calls, e.g. fluxion.FilterOrdered(ctx, fluxion.MapOrdered(ctx, src, f), p).
//
// # Runtime abstraction
//
// Package runtime supplies the Timer/Task/Mutex/CancellationToken
// abstraction operators are built against, with a parallel (goroutine,
// real-time) profile and a cooperative (single-threaded, inline-spawning,
// real-time) profile sharing the same operator code.
//
// # Subject and share
//
// Package subject implements the hot multicast broadcaster used by Share to
// turn a single cold producer into a fan-out source.
package fluxion
