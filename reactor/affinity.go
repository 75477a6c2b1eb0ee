package reactor

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// goroutineID parses the calling goroutine's id out of runtime.Stack.
// Go has no public API for this; it stands in for the OS thread id
// original_source/EventLoop.cpp captures via gettid() at construction.
// A goroutine is the closest unit of "thread" Go cooperative code has,
// and Run() pins it with runtime.LockOSThread() for its lifetime so the
// identity stays stable — see SPEC_FULL.md §7's affinity note.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	if i := bytes.Index(b, []byte(prefix)); i >= 0 {
		b = b[i+len(prefix):]
		if j := bytes.IndexByte(b, ' '); j >= 0 {
			if id, err := strconv.ParseInt(string(b[:j]), 10, 64); err == nil {
				return id
			}
		}
	}
	return -1
}

var (
	registryMu sync.Mutex
	registry   = map[int64]*EventLoop{}
)

func claimThread(id int64, loop *EventLoop) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[id]; exists {
		return ErrLoopExists
	}
	registry[id] = loop
	return nil
}

func releaseThread(id int64) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, id)
}
