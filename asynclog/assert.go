package asynclog

import "fmt"

// assertf panics with a formatted message when cond is false. The panic
// value carries the message only; no BacktraceProvider frames are
// captured. Grounded on original_source/utils.h's assertTrue +
// PrintBacktrace + throw: Go has no analogous "log then throw" idiom,
// so a panic carrying the rendered message is the closest equivalent
// for conditions that are programming errors, not runtime failures.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("asynclog: assertion failed: "+format, args...))
	}
}
