//go:build windows

package reactor

import (
	"errors"
	"time"
)

// errUnsupportedPlatform mirrors the teacher's reactor_stub.go /
// reactor_windows.go split: the original_source implementation is
// Linux-only (epoll, eventfd, timerfd throughout), so Windows gets an
// explicit unsupported stub rather than a silent no-op.
var errUnsupportedPlatform = errors.New("reactor: no demultiplexer implementation for this platform")

type stubDemux struct{}

func newDemultiplexer() (demultiplexer, error) {
	return nil, &OpError{Op: "new_demultiplexer", Err: errUnsupportedPlatform}
}

func (d *stubDemux) add(fd int, interest Interest) error    { return errUnsupportedPlatform }
func (d *stubDemux) modify(fd int, interest Interest) error { return errUnsupportedPlatform }
func (d *stubDemux) remove(fd int) error                    { return errUnsupportedPlatform }
func (d *stubDemux) wait(timeout time.Duration, out []readyEvent) (int, error) {
	return 0, errUnsupportedPlatform
}
func (d *stubDemux) close() error { return errUnsupportedPlatform }
