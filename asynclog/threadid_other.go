//go:build !linux

package asynclog

import (
	"bytes"
	"runtime"
	"strconv"
)

// threadID is a portable fallback that reports the current goroutine id
// (parsed from runtime.Stack) when no OS thread id is available.
func threadID() int {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if i := bytes.Index(b, []byte(prefix)); i >= 0 {
		b = b[i+len(prefix):]
		if j := bytes.IndexByte(b, ' '); j >= 0 {
			if id, err := strconv.Atoi(string(b[:j])); err == nil {
				return id
			}
		}
	}
	return 0
}
