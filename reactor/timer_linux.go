//go:build linux

package reactor

import (
	"time"

	"golang.org/x/sys/unix"
)

// timerfdTimer is the Linux one-shot timer, grounded on
// original_source/EventLoop.cpp's timerfd_create(CLOCK_MONOTONIC, ...)
// use for ScheduleAfter.
type timerfdTimer struct {
	tfd int
}

func newOneShotTimer() (oneShotTimer, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_CLOEXEC|unix.TFD_NONBLOCK)
	if err != nil {
		return nil, &OpError{Op: "timerfd_create", Err: err}
	}
	return &timerfdTimer{tfd: fd}, nil
}

func (t *timerfdTimer) fd() int { return t.tfd }

func (t *timerfdTimer) arm(d time.Duration) error {
	if d <= 0 {
		d = time.Nanosecond
	}
	spec := unix.ItimerSpec{
		Value: unix.NsecToTimespec(d.Nanoseconds()),
	}
	if err := unix.TimerfdSettime(t.tfd, 0, &spec, nil); err != nil {
		return &OpError{Op: "timerfd_settime", Err: err}
	}
	return nil
}

func (t *timerfdTimer) drain() {
	var buf [8]byte
	unix.Read(t.tfd, buf[:])
}

func (t *timerfdTimer) close() error {
	return unix.Close(t.tfd)
}
