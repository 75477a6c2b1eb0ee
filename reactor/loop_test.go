//go:build !windows

package reactor

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func unixPipe(fds []int) error {
	return unix.Pipe2(fds, unix.O_NONBLOCK|unix.O_CLOEXEC)
}

func closeFd(fd int) error { return unix.Close(fd) }

func writeByte(fd int) error {
	_, err := unix.Write(fd, []byte{1})
	return err
}

func runLoopAsync(t *testing.T, loop *EventLoop) func() {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		require.NoError(t, loop.Run())
	}()
	return func() {
		require.NoError(t, loop.Quit())
		<-done
	}
}

func TestScenarioS4CrossThreadWakeup(t *testing.T) {
	defer leaktest.Check(t)()

	loop, err := New()
	require.NoError(t, err)
	stop := runLoopAsync(t, loop)
	defer stop()

	var got int32
	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, loop.Submit(func() {
		atomic.StoreInt32(&got, 42)
		wg.Done()
	}))

	wg.Wait()
	require.EqualValues(t, 42, atomic.LoadInt32(&got))
}

func TestScenarioS5ChannelClosePriority(t *testing.T) {
	defer leaktest.Check(t)()

	loop, err := New()
	require.NoError(t, err)
	defer loop.Close()

	var readFired, errorFired, closeFired bool
	c := &Channel{fd: 7, loop: loop}
	c.readCb = func(int) { readFired = true }
	c.errorCb = func(int) { errorFired = true }
	c.closeCb = func(int) { closeFired = true }
	c.interest = InterestRead | InterestWrite | InterestError | InterestClose

	// A pure hang-up (HUP without READ) dispatches only the close
	// callback, per spec.md §4.6's priority over a readable-but-also-
	// hung-up fd.
	c.handleEvent(RevHup)
	require.True(t, closeFired)
	require.False(t, readFired)
	require.False(t, errorFired)

	closeFired, readFired, errorFired = false, false, false
	c.handleEvent(RevHup | RevRead)
	require.False(t, closeFired, "HUP with READ set is not a pure hang-up")
	require.True(t, readFired)

	closeFired, readFired, errorFired = false, false, false
	c.handleEvent(RevError)
	require.True(t, errorFired)
	require.False(t, readFired)
	require.False(t, closeFired)
}

func TestScenarioS6OneShotTimer(t *testing.T) {
	defer leaktest.Check(t)()

	loop, err := New()
	require.NoError(t, err)
	stop := runLoopAsync(t, loop)
	defer stop()

	fired := make(chan time.Time, 1)
	start := time.Now()
	require.NoError(t, loop.ScheduleAfter(func() {
		fired <- time.Now()
	}, 50*time.Millisecond))

	select {
	case at := <-fired:
		require.GreaterOrEqual(t, at.Sub(start), 40*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
}

func TestAffinityRegistryRejectsDoubleClaim(t *testing.T) {
	loop1, err := New()
	require.NoError(t, err)
	defer loop1.Close()
	loop2, err := New()
	require.NoError(t, err)
	defer loop2.Close()

	const fakeThreadID = int64(-12345)
	require.NoError(t, claimThread(fakeThreadID, loop1))
	defer releaseThread(fakeThreadID)

	err = claimThread(fakeThreadID, loop2)
	require.ErrorIs(t, err, ErrLoopExists)

	releaseThread(fakeThreadID)
	require.NoError(t, claimThread(fakeThreadID, loop2))
	releaseThread(fakeThreadID)
}

func TestRegisterChannelOffLoopThreadFails(t *testing.T) {
	defer leaktest.Check(t)()

	loop, err := New()
	require.NoError(t, err)
	stop := runLoopAsync(t, loop)
	defer stop()

	c := &Channel{fd: -1, loop: loop}
	err = loop.registerChannel(c)
	require.ErrorIs(t, err, ErrWrongThread)
}

func TestChannelReadCallbackFiresOnRealFd(t *testing.T) {
	defer leaktest.Check(t)()

	loop, err := New()
	require.NoError(t, err)
	stop := runLoopAsync(t, loop)
	defer stop()

	fds := make([]int, 2)
	require.NoError(t, unixPipe(fds))
	r, w := fds[0], fds[1]
	defer closeFd(r)
	defer closeFd(w)

	readFired := make(chan struct{}, 1)
	errCh := make(chan error, 1)
	require.NoError(t, loop.Submit(func() {
		c, err := NewChannel(loop, r)
		if err != nil {
			errCh <- err
			return
		}
		require.NoError(t, c.SetReadCallback(func(fd int) {
			select {
			case readFired <- struct{}{}:
			default:
			}
		}))
	}))

	require.NoError(t, writeByte(w))

	select {
	case err := <-errCh:
		t.Fatalf("channel setup failed: %v", err)
	case <-readFired:
	case <-time.After(2 * time.Second):
		t.Fatal("read callback did not fire for a writable pipe")
	}
}

func TestQuitFromAnotherGoroutine(t *testing.T) {
	defer leaktest.Check(t)()

	loop, err := New()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- loop.Run() }()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, loop.Quit())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not quit from a remote Quit() call")
	}
}
