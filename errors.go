package fluxion

import (
	"errors"
	"fmt"
)

// Namespace prefixes every error message, mirroring the teacher library's
// convention of a single namespace constant.
const Namespace = "fluxion"

// Disposition classifies whether a retry/abandon policy should treat an
// error as transient or final. Classification is advisory: the operator
// layer never auto-retries on it, per spec.
type Disposition int

const (
	// Unclassified is the disposition of errors whose retry-worthiness
	// depends on caller policy (MultipleErrors, CallbackPanic).
	Unclassified Disposition = iota
	// Recoverable marks transient failures a caller may reasonably retry.
	Recoverable
	// Permanent marks failures a caller should not retry.
	Permanent
)

func (d Disposition) String() string {
	switch d {
	case Recoverable:
		return "recoverable"
	case Permanent:
		return "permanent"
	default:
		return "unclassified"
	}
}

// Kind enumerates the error kinds observable to callers (spec §6).
type Kind int

const (
	KindLock Kind = iota
	KindStreamProcessing
	KindTimeout
	KindResourceLimitExceeded
	KindChannelSend
	KindCallbackPanic
	KindUser
	KindMultipleErrors
)

func (k Kind) String() string {
	switch k {
	case KindLock:
		return "LockError"
	case KindStreamProcessing:
		return "StreamProcessingError"
	case KindTimeout:
		return "TimeoutError"
	case KindResourceLimitExceeded:
		return "ResourceLimitExceeded"
	case KindChannelSend:
		return "ChannelSendError"
	case KindCallbackPanic:
		return "CallbackPanic"
	case KindUser:
		return "UserError"
	case KindMultipleErrors:
		return "MultipleErrors"
	default:
		return "UnknownError"
	}
}

func kindDisposition(k Kind) Disposition {
	switch k {
	case KindLock, KindTimeout, KindResourceLimitExceeded:
		return Recoverable
	case KindStreamProcessing, KindChannelSend, KindUser:
		return Permanent
	default: // KindCallbackPanic, KindMultipleErrors
		return Unclassified
	}
}

// FluxionError is the error type flowing through StreamItem.Error. It
// carries a Kind, a free-form diagnostic context string, and an optional
// wrapped cause, so operators may add context without losing the original
// error (spec §3: "Error contexts compose").
type FluxionError struct {
	kind    Kind
	context string
	cause   error
}

// NewError constructs a FluxionError of the given kind with a context
// string and optional wrapped cause.
func NewError(kind Kind, context string, cause error) *FluxionError {
	return &FluxionError{kind: kind, context: context, cause: cause}
}

func (e *FluxionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", Namespace, e.kind, e.context, e.cause)
	}
	return fmt.Sprintf("%s: %s: %s", Namespace, e.kind, e.context)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *FluxionError) Unwrap() error { return e.cause }

// ErrorKind returns the error's classification kind.
func (e *FluxionError) ErrorKind() Kind { return e.kind }

// Context returns the free-form diagnostic string attached to the error.
func (e *FluxionError) Context() string { return e.context }

// Disposition reports whether the error is recoverable, permanent, or
// unclassified (spec §7: classification is advisory, the operator layer
// never auto-retries).
func (e *FluxionError) Disposition() Disposition { return kindDisposition(e.kind) }

// IsRecoverable reports whether Disposition() == Recoverable.
func (e *FluxionError) IsRecoverable() bool { return e.Disposition() == Recoverable }

// IsPermanent reports whether Disposition() == Permanent.
func (e *FluxionError) IsPermanent() bool { return e.Disposition() == Permanent }

// WrapContext returns a new FluxionError of the same kind with ctx
// prepended to the existing context and e set as the cause, implementing
// the "Wrapped" disposition from spec §7 without losing the original error.
func (e *FluxionError) WrapContext(ctx string) *FluxionError {
	return &FluxionError{kind: e.kind, context: ctx + ": " + e.context, cause: e}
}

// Is supports errors.Is against a FluxionError with a matching Kind; two
// FluxionError values match if their Kind is equal, regardless of context.
func (e *FluxionError) Is(target error) bool {
	var other *FluxionError
	if errors.As(target, &other) {
		return other.kind == e.kind
	}
	return false
}

// MultipleErrorsValue aggregates several errors observed together (e.g. by a
// join operator when more than one upstream fails before the next poll).
// Classification is Unclassified per spec §9's open question.
type MultipleErrorsValue struct {
	Errors []error
}

func (m *MultipleErrorsValue) Error() string {
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Unwrap supports errors.Is / errors.As over every aggregated error.
func (m *MultipleErrorsValue) Unwrap() []error { return m.Errors }

// NewMultipleErrors builds a FluxionError of KindMultipleErrors wrapping errs.
func NewMultipleErrors(errs []error) *FluxionError {
	return NewError(KindMultipleErrors, fmt.Sprintf("%d errors", len(errs)), &MultipleErrorsValue{Errors: errs})
}

// Convenience constructors for the error kinds named in spec §6.

func LockError(context string, cause error) *FluxionError {
	return NewError(KindLock, context, cause)
}

func StreamProcessingError(context string, cause error) *FluxionError {
	return NewError(KindStreamProcessing, context, cause)
}

func TimeoutError(operation string, cause error) *FluxionError {
	return NewError(KindTimeout, operation, cause)
}

func ResourceLimitExceededError(resource string, cause error) *FluxionError {
	return NewError(KindResourceLimitExceeded, resource, cause)
}

func ChannelSendError(context string, cause error) *FluxionError {
	return NewError(KindChannelSend, context, cause)
}

// CallbackPanicError wraps a recovered panic value as a FluxionError, used
// whenever operator code recovers from a callback (map/filter/scan function,
// subscribe handler) panicking mid-pipeline.
func CallbackPanicError(context string, recovered any) *FluxionError {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("%v", recovered)
	}
	return NewError(KindCallbackPanic, context, err)
}

func UserError(context string, cause error) *FluxionError {
	return NewError(KindUser, context, cause)
}
