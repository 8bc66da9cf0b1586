package logging

import (
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// RecoverPanic logs a panic with its stack trace, then re-panics so the
// process still exits with the usual report. Use it with defer at the top of
// long-running goroutines whose stderr is not visible (the terminal demo).
func RecoverPanic(logger *zerolog.Logger) {
	r := recover()
	if r == nil {
		return
	}
	if logger != nil {
		logger.Error().
			Interface("panic", r).
			Str("go_version", runtime.Version()).
			Str("stack", string(debug.Stack())).
			Msg("PANIC")
	}
	panic(r)
}
