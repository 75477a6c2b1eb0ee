package reactor

// wakeupSource lets Submit/Quit interrupt a blocked
// demultiplexer.wait call from any goroutine. Grounded on
// original_source/EventLoop.cpp's eventfd-based wakeup_fd_ and the
// teacher's internal/concurrency/eventloop.go wakeup channel.
type wakeupSource interface {
	fd() int
	drain()
	notify() error
	close() error
}
