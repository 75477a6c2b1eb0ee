//go:build !linux && !windows

package reactor

import (
	"time"

	"golang.org/x/sys/unix"
)

// afterFuncTimer is the portable fallback one-shot timer: a self-pipe
// armed by time.AfterFunc, mirroring the same self-pipe idiom
// wakeup_other.go uses for cross-thread notification.
type afterFuncTimer struct {
	r, w  int
	timer *time.Timer
}

func newOneShotTimer() (oneShotTimer, error) {
	fds := make([]int, 2)
	if err := unix.Pipe2(fds, unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, &OpError{Op: "pipe2", Err: err}
	}
	return &afterFuncTimer{r: fds[0], w: fds[1]}, nil
}

func (t *afterFuncTimer) fd() int { return t.r }

func (t *afterFuncTimer) arm(d time.Duration) error {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, func() {
		unix.Write(t.w, []byte{1})
	})
	return nil
}

func (t *afterFuncTimer) drain() {
	var buf [8]byte
	for {
		_, err := unix.Read(t.r, buf[:])
		if err != nil {
			return
		}
	}
}

func (t *afterFuncTimer) close() error {
	if t.timer != nil {
		t.timer.Stop()
	}
	_ = unix.Close(t.w)
	return unix.Close(t.r)
}
