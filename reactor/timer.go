package reactor

import "time"

// oneShotTimer is a single-fire, fd-backed timer the loop can multiplex
// alongside I/O channels. Grounded on original_source/EventLoop.cpp's
// timerfd_create/timerfd_settime use for ScheduleAfter.
type oneShotTimer interface {
	fd() int
	arm(d time.Duration) error
	drain()
	close() error
}
