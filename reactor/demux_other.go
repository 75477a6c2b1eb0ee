//go:build !linux && !windows

package reactor

import (
	"time"

	"golang.org/x/sys/unix"
)

// pollDemux is the non-Linux Unix fallback demultiplexer, backed by
// unix.Poll. The teacher's reactor package only ships epoll (Linux) and
// IOCP (Windows) implementations; this fills the gap for other Unixes
// with golang.org/x/sys/unix, the same dependency the Linux path uses.
type pollDemux struct {
	interest map[int32]Interest
}

func newDemultiplexer() (demultiplexer, error) {
	return &pollDemux{interest: make(map[int32]Interest)}, nil
}

func (d *pollDemux) add(fd int, interest Interest) error {
	d.interest[int32(fd)] = interest
	return nil
}

func (d *pollDemux) modify(fd int, interest Interest) error {
	d.interest[int32(fd)] = interest
	return nil
}

func (d *pollDemux) remove(fd int) error {
	delete(d.interest, int32(fd))
	return nil
}

func (d *pollDemux) wait(timeout time.Duration, out []readyEvent) (int, error) {
	fds := make([]unix.PollFd, 0, len(d.interest))
	for fd, interest := range d.interest {
		var events int16
		if interest.has(InterestRead) {
			events |= unix.POLLIN
		}
		if interest.has(InterestWrite) {
			events |= unix.POLLOUT
		}
		fds = append(fds, unix.PollFd{Fd: fd, Events: events})
	}
	if len(fds) == 0 {
		time.Sleep(timeout)
		return 0, nil
	}

	_, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, &OpError{Op: "poll", Err: err}
	}
	count := 0
	for _, pfd := range fds {
		if pfd.Revents == 0 {
			continue
		}
		out[count] = readyEvent{fd: int(pfd.Fd), revents: revFromPoll(pfd.Revents)}
		count++
		if count >= len(out) {
			break
		}
	}
	return count, nil
}

func (d *pollDemux) close() error { return nil }

func revFromPoll(mask int16) Revents {
	var r Revents
	if mask&unix.POLLIN != 0 {
		r |= RevRead
	}
	if mask&unix.POLLOUT != 0 {
		r |= RevWrite
	}
	if mask&unix.POLLERR != 0 {
		r |= RevError
	}
	if mask&unix.POLLHUP != 0 {
		r |= RevHup
	}
	return r
}
