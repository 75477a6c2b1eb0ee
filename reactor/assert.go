package reactor

import "fmt"

// assertf panics with a formatted message for conditions that are
// programming errors rather than runtime failures. Grounded on
// original_source/utils.h's assertTrue + PrintBacktrace + throw,
// mirrored from asynclog.assertf.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("reactor: assertion failed: "+format, args...))
	}
}
