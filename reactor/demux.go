package reactor

import "time"

// readyEvent is one fd's translated readiness notification.
type readyEvent struct {
	fd      int
	revents Revents
}

// demultiplexer is the OS readiness primitive an EventLoop blocks on.
// Implementations translate OS-specific event masks into the portable
// Revents bitset before returning from wait.
type demultiplexer interface {
	add(fd int, interest Interest) error
	modify(fd int, interest Interest) error
	remove(fd int) error
	wait(timeout time.Duration, out []readyEvent) (int, error)
	close() error
}

func interestToRevents(i Interest) Revents {
	var r Revents
	if i.has(InterestRead) {
		r |= RevRead
	}
	if i.has(InterestWrite) {
		r |= RevWrite
	}
	if i.has(InterestError) {
		r |= RevError
	}
	return r
}
