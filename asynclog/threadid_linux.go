//go:build linux

package asynclog

import "golang.org/x/sys/unix"

// threadID returns the OS thread id of the calling goroutine's current
// carrier thread, matching original_source/LogImpl.cpp's gettid() use in
// the TTTTT field of the frame.
func threadID() int {
	return unix.Gettid()
}
