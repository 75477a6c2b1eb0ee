// Package reactor implements a per-thread reactor event loop: a single
// owning goroutine multiplexes readiness notifications from many file
// descriptors onto user-supplied callbacks, accepts cross-thread task
// submission through a wakeup source, and supports one-shot timers.
//
// Grounded on the Linux epoll reactor in momentics/hioload-ws's
// reactor/epoll_reactor.go and internal/concurrency/eventloop.go, and on
// original_source/EventLoop.{h,cpp} and Channel.{h,cpp} for the exact
// dispatch and affinity semantics this package mirrors.
package reactor
