package fluxion

import (
	"errors"
	"fmt"
)

// SourceError exposes which joined stream an error originated from. Every
// multi-stream join operator (combine_latest, ordered_merge, with_latest_from,
// emit_when, take_latest_when, merge_with) tags forwarded upstream errors
// with the 0-based position of the source stream that produced them, so
// callers can distinguish "primary failed" from "secondary N failed"
// without the join operator losing the original error.
type SourceError interface {
	error
	Unwrap() error
	SourceIndex() int
}

type sourceTaggedError struct {
	err   error
	index int
}

// TagSource wraps err with the index of the stream it came from. Wrapping a
// nil error returns nil, so call sites can tag unconditionally.
func TagSource(err error, index int) error {
	if err == nil {
		return nil
	}
	return &sourceTaggedError{err: err, index: index}
}

func (e *sourceTaggedError) Error() string { return e.err.Error() }
func (e *sourceTaggedError) Unwrap() error { return e.err }

func (e *sourceTaggedError) SourceIndex() int { return e.index }

func (e *sourceTaggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "source(%d): %+v", e.index, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractSourceIndex returns the joined-stream position from err, if it (or
// something it wraps) was tagged via TagSource.
func ExtractSourceIndex(err error) (int, bool) {
	var se SourceError
	if errors.As(err, &se) {
		return se.SourceIndex(), true
	}
	return 0, false
}
