//go:build !linux && !windows

package reactor

import "golang.org/x/sys/unix"

// pipeWakeup is the portable fallback wakeup source for platforms
// without eventfd: a self-pipe, the classic Unix wakeup-from-select
// idiom this package's demux_stub.go leaves unimplemented for Windows
// but which works on any other Unix.
type pipeWakeup struct {
	r, w int
}

func newWakeupSource() (wakeupSource, error) {
	fds := make([]int, 2)
	if err := unix.Pipe2(fds, unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, &OpError{Op: "pipe2", Err: err}
	}
	return &pipeWakeup{r: fds[0], w: fds[1]}, nil
}

func (w *pipeWakeup) fd() int { return w.r }

func (w *pipeWakeup) notify() error {
	_, err := unix.Write(w.w, []byte{1})
	if err != nil && err != unix.EAGAIN {
		return &OpError{Op: "pipe write", Err: err}
	}
	return nil
}

func (w *pipeWakeup) drain() {
	var buf [64]byte
	for {
		_, err := unix.Read(w.r, buf[:])
		if err != nil {
			return
		}
	}
}

func (w *pipeWakeup) close() error {
	_ = unix.Close(w.w)
	return unix.Close(w.r)
}
