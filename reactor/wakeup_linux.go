//go:build linux

package reactor

import "golang.org/x/sys/unix"

// eventfdWakeup is the Linux wakeup source, grounded on
// original_source/EventLoop.cpp's use of eventfd(2) as wakeup_fd_.
type eventfdWakeup struct {
	efd int
}

func newWakeupSource() (wakeupSource, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, &OpError{Op: "eventfd", Err: err}
	}
	return &eventfdWakeup{efd: fd}, nil
}

func (w *eventfdWakeup) fd() int { return w.efd }

func (w *eventfdWakeup) notify() error {
	buf := [8]byte{0, 0, 0, 0, 0, 0, 0, 1}
	_, err := unix.Write(w.efd, buf[:])
	if err != nil && err != unix.EAGAIN {
		return &OpError{Op: "eventfd write", Err: err}
	}
	return nil
}

func (w *eventfdWakeup) drain() {
	var buf [8]byte
	for {
		_, err := unix.Read(w.efd, buf[:])
		if err != nil {
			return
		}
	}
}

func (w *eventfdWakeup) close() error {
	return unix.Close(w.efd)
}
