package fluxion

import (
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured-logging surface Fluxion's execution helpers
// accept, aliasing logiface's generic Logger bound to the stumpy backend
// (a dependency-free JSON writer). Out of scope per spec §1 ("logging
// backends" are an external collaborator); what Fluxion owns is only the
// call sites that decide *when* to log, not the backend.
type Logger = logiface.Logger[*stumpy.Event]

var (
	defaultLoggerOnce sync.Once
	defaultLoggerInst *Logger
)

// defaultLogger returns the process-wide fallback logger used by subscribe
// and subscribe_latest when the caller supplies no on_error callback (spec
// §4.15, §7: "errors from the user callback are routed to the user-provided
// error callback (if any), else logged"). It is constructed once, writing
// JSON records to stderr.
func defaultLogger() *Logger {
	defaultLoggerOnce.Do(func() {
		defaultLoggerInst = stumpy.L.New(stumpy.L.WithStumpy())
	})
	return defaultLoggerInst
}

// logCallbackError reports an error escaping a user-supplied callback to l
// (or the package default logger if l is nil), tagging it with the
// operator name for diagnosis.
func logCallbackError(l *Logger, operator string, err error) {
	if l == nil {
		l = defaultLogger()
	}
	l.Err().Str("operator", operator).Err(err).Log("callback error")
}
