package fluxion

// StreamItem is the sum type flowing through every operator: either a
// well-typed Value or a non-terminal Error. A stream may continue after an
// Error unless an operator's contract says otherwise (timeout, share).
type StreamItem[V any, T Timestamp[T]] struct {
	item    Item[V, T]
	err     error
	isError bool
}

// ValueItem wraps a value item.
func ValueItem[V any, T Timestamp[T]](item Item[V, T]) StreamItem[V, T] {
	return StreamItem[V, T]{item: item}
}

// Value is a convenience constructor combining NewItem and ValueItem.
func Value[V any, T Timestamp[T]](inner V, ts T) StreamItem[V, T] {
	return ValueItem(NewItem(inner, ts))
}

// ErrorItem wraps a non-terminal error.
func ErrorItem[V any, T Timestamp[T]](err error) StreamItem[V, T] {
	return StreamItem[V, T]{err: err, isError: true}
}

// IsError reports whether the item is an Error variant.
func (s StreamItem[V, T]) IsError() bool { return s.isError }

// IsValue reports whether the item is a Value variant.
func (s StreamItem[V, T]) IsValue() bool { return !s.isError }

// Item returns the wrapped Item and true if this is a Value variant, or the
// zero Item and false if it is an Error variant.
func (s StreamItem[V, T]) Item() (Item[V, T], bool) {
	if s.isError {
		var zero Item[V, T]
		return zero, false
	}
	return s.item, true
}

// Err returns the wrapped error, or nil if this is a Value variant.
func (s StreamItem[V, T]) Err() error { return s.err }

// MustItem returns the wrapped Item, panicking if s is an Error variant.
// Intended for tests and internal code that has already checked IsValue.
func (s StreamItem[V, T]) MustItem() Item[V, T] {
	it, ok := s.Item()
	if !ok {
		panic("fluxion: MustItem called on an Error StreamItem")
	}
	return it
}

// Stream is a receive-only channel of stream items. Constructors
// (IntoStream, operator functions) always return one; consumers either
// range over it directly or use Subscribe / SubscribeLatest.
type Stream[V any, T Timestamp[T]] <-chan StreamItem[V, T]
