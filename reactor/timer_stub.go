//go:build windows

package reactor

import "time"

type stubTimer struct{}

func newOneShotTimer() (oneShotTimer, error) {
	return nil, &OpError{Op: "new_one_shot_timer", Err: errUnsupportedPlatform}
}

func (t *stubTimer) fd() int                    { return -1 }
func (t *stubTimer) arm(d time.Duration) error  { return errUnsupportedPlatform }
func (t *stubTimer) drain()                     {}
func (t *stubTimer) close() error               { return errUnsupportedPlatform }
