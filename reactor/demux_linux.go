//go:build linux

package reactor

import (
	"time"

	"golang.org/x/sys/unix"
)

// epollDemux is the Linux demultiplexer, grounded on
// momentics/hioload-ws's reactor/epoll_reactor.go and
// original_source/EventLoop.cpp's epoll_create/epoll_ctl/epoll_wait use.
// It uses golang.org/x/sys/unix rather than the raw syscall package the
// teacher reaches for, since unix already sits in the teacher's
// dependency graph and offers the richer, better-typed wrapper.
type epollDemux struct {
	epfd int
}

func newDemultiplexer() (demultiplexer, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, &OpError{Op: "epoll_create1", Err: err}
	}
	return &epollDemux{epfd: fd}, nil
}

func (d *epollDemux) add(fd int, interest Interest) error {
	ev := unix.EpollEvent{Fd: int32(fd), Events: epollEventsFor(interest)}
	if err := unix.EpollCtl(d.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return &OpError{Op: "epoll_ctl add", Err: err}
	}
	return nil
}

func (d *epollDemux) modify(fd int, interest Interest) error {
	ev := unix.EpollEvent{Fd: int32(fd), Events: epollEventsFor(interest)}
	if err := unix.EpollCtl(d.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return &OpError{Op: "epoll_ctl mod", Err: err}
	}
	return nil
}

func (d *epollDemux) remove(fd int) error {
	if err := unix.EpollCtl(d.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return &OpError{Op: "epoll_ctl del", Err: err}
	}
	return nil
}

func (d *epollDemux) wait(timeout time.Duration, out []readyEvent) (int, error) {
	events := make([]unix.EpollEvent, len(out))
	n, err := unix.EpollWait(d.epfd, events, int(timeout/time.Millisecond))
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, &OpError{Op: "epoll_wait", Err: err}
	}
	for i := 0; i < n; i++ {
		out[i] = readyEvent{fd: int(events[i].Fd), revents: revFromEpoll(events[i].Events)}
	}
	return n, nil
}

func (d *epollDemux) close() error {
	return unix.Close(d.epfd)
}

func epollEventsFor(i Interest) uint32 {
	var ev uint32
	if i.has(InterestRead) {
		ev |= unix.EPOLLIN
	}
	if i.has(InterestWrite) {
		ev |= unix.EPOLLOUT
	}
	return ev
}

func revFromEpoll(mask uint32) Revents {
	var r Revents
	if mask&unix.EPOLLIN != 0 {
		r |= RevRead
	}
	if mask&unix.EPOLLPRI != 0 {
		r |= RevPri
	}
	if mask&unix.EPOLLOUT != 0 {
		r |= RevWrite
	}
	if mask&unix.EPOLLRDHUP != 0 {
		r |= RevRDHup
	}
	if mask&unix.EPOLLERR != 0 {
		r |= RevError
	}
	if mask&unix.EPOLLHUP != 0 {
		r |= RevHup
	}
	return r
}
