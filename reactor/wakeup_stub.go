//go:build windows

package reactor

type stubWakeup struct{}

func newWakeupSource() (wakeupSource, error) {
	return nil, &OpError{Op: "new_wakeup_source", Err: errUnsupportedPlatform}
}

func (w *stubWakeup) fd() int      { return -1 }
func (w *stubWakeup) drain()       {}
func (w *stubWakeup) notify() error { return errUnsupportedPlatform }
func (w *stubWakeup) close() error  { return errUnsupportedPlatform }
