package asynclog

import (
	"runtime"
	"strconv"
)

// BacktraceProvider returns an ordered sequence of human-readable frame
// strings for the current call stack. It is a collaborator, not part of
// the core per spec.md §1 — the core only consumes its output.
type BacktraceProvider interface {
	Backtrace(skip, depth int) []string
}

// runtimeBacktrace is the default BacktraceProvider, grounded on
// original_source/Backtrace.cpp's backtrace()/backtrace_symbols() walk.
// Go's runtime.Callers already resolves symbols, so there is no
// demangling step to port.
type runtimeBacktrace struct{}

func (runtimeBacktrace) Backtrace(skip, depth int) []string {
	if depth <= 0 {
		depth = MaxBacktraceDepth
	}
	pcs := make([]uintptr, depth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])
	out := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			out = append(out, frame.File)
		} else {
			out = append(out, frame.Function+"\n\t"+frame.File+":"+strconv.Itoa(frame.Line))
		}
		if !more {
			break
		}
	}
	return out
}
