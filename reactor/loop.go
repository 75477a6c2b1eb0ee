package reactor

import (
	"log"
	"runtime"
	"sort"
	"sync"
	"time"
)

// scheduledTask is one ScheduleAfter entry waiting for its deadline.
type scheduledTask struct {
	deadline time.Time
	task     Task
}

// EventLoop is a single-threaded reactor bound to exactly one goroutine
// for its entire lifetime, matching original_source/EventLoop.{h,cpp}'s
// thread-affine design. The binding happens at Run, not New: Run pins
// its calling goroutine with runtime.LockOSThread and claims it in the
// package-level affinity registry, and every Channel registration,
// update and removal is checked against that identity (Submit,
// ScheduleAfter and Quit may be called from any goroutine). This
// lets callers construct a loop on one goroutine and hand it to the
// dedicated goroutine that will actually run it, the same split
// momentics/hioload-ws's internal/concurrency/eventloop.go makes
// between NewEventLoop and Run.
type EventLoop struct {
	threadID  int64
	threadSet bool

	demux  demultiplexer
	wakeup wakeupSource
	timer  oneShotTimer

	channels map[int]*Channel
	tasks    *taskQueue

	timerMu sync.Mutex
	timers  []scheduledTask

	quitMu   sync.Mutex
	quitting bool

	eventsBuf []readyEvent

	startupHook func(tag, message string)
}

// Option configures an EventLoop at construction time.
type Option func(*EventLoop)

// WithStartupHook wires a logging callback New invokes once, after
// construction succeeds, with a bootstrap line. Grounded on
// original_source/EventLoop.cpp, which logs "[EventLoop] EventLoop" from
// its constructor; fn is typically asynclog's Logger.Write partially
// applied to Info, letting a caller observe loop construction in the
// same log stream as everything else without reactor importing asynclog.
func WithStartupHook(fn func(tag, message string)) Option {
	return func(l *EventLoop) { l.startupHook = fn }
}

// New constructs a loop. The returned loop owns no thread until Run is
// called; Run's caller becomes the loop's permanent owning goroutine.
func New(opts ...Option) (*EventLoop, error) {
	loop := &EventLoop{
		threadID:  -1,
		channels:  make(map[int]*Channel),
		tasks:     newTaskQueue(),
		eventsBuf: make([]readyEvent, MaxEventsPerWait),
	}
	for _, o := range opts {
		if o != nil {
			o(loop)
		}
	}

	demux, err := newDemultiplexer()
	if err != nil {
		return nil, err
	}
	loop.demux = demux

	wakeup, err := newWakeupSource()
	if err != nil {
		demux.close()
		return nil, err
	}
	loop.wakeup = wakeup
	if err := demux.add(wakeup.fd(), InterestRead); err != nil {
		wakeup.close()
		demux.close()
		return nil, err
	}

	timer, err := newOneShotTimer()
	if err != nil {
		wakeup.close()
		demux.close()
		return nil, err
	}
	loop.timer = timer
	if err := demux.add(timer.fd(), InterestRead); err != nil {
		timer.close()
		wakeup.close()
		demux.close()
		return nil, err
	}

	if loop.startupHook != nil {
		loop.startupHook("reactor", "EventLoop constructed")
	}

	return loop, nil
}

func (l *EventLoop) onOwningThread() bool {
	return l.threadSet && goroutineID() == l.threadID
}

func (l *EventLoop) registerChannel(c *Channel) error {
	if !l.onOwningThread() {
		return ErrWrongThread
	}
	if _, exists := l.channels[c.fd]; exists {
		return ErrAlreadyRegistered
	}
	if err := l.demux.add(c.fd, c.interest); err != nil {
		return err
	}
	l.channels[c.fd] = c
	c.registered = true
	return nil
}

func (l *EventLoop) updateChannel(c *Channel) error {
	if !l.onOwningThread() {
		return ErrWrongThread
	}
	if _, exists := l.channels[c.fd]; !exists {
		return ErrNotRegistered
	}
	return l.demux.modify(c.fd, c.interest)
}

func (l *EventLoop) removeChannel(c *Channel) error {
	if !l.onOwningThread() {
		return ErrWrongThread
	}
	if _, exists := l.channels[c.fd]; !exists {
		return ErrNotRegistered
	}
	if err := l.demux.remove(c.fd); err != nil {
		return err
	}
	delete(l.channels, c.fd)
	c.registered = false
	return nil
}

// Submit enqueues task for execution on the loop's owning thread and
// wakes the loop if it is blocked in wait. Safe to call from any
// goroutine, matching spec.md §4.5's cross-thread submission path.
func (l *EventLoop) Submit(task Task) error {
	l.tasks.push(task)
	if err := l.wakeup.notify(); err != nil {
		log.Printf("reactor: wakeup notify failed: %v", err)
		return err
	}
	return nil
}

// ScheduleAfter runs task once, no earlier than d from now, on the
// loop's owning thread. Safe to call from any goroutine.
func (l *EventLoop) ScheduleAfter(task Task, d time.Duration) error {
	l.timerMu.Lock()
	l.timers = append(l.timers, scheduledTask{deadline: time.Now().Add(d), task: task})
	earliest := l.earliestDeadlineLocked()
	l.timerMu.Unlock()

	if err := l.timer.arm(time.Until(earliest)); err != nil {
		log.Printf("reactor: timer arm failed: %v", err)
		return err
	}
	return nil
}

func (l *EventLoop) earliestDeadlineLocked() time.Time {
	earliest := l.timers[0].deadline
	for _, t := range l.timers[1:] {
		if t.deadline.Before(earliest) {
			earliest = t.deadline
		}
	}
	return earliest
}

// Quit requests the loop stop after its current dispatch pass. Safe to
// call from any goroutine.
func (l *EventLoop) Quit() error {
	l.quitMu.Lock()
	l.quitting = true
	l.quitMu.Unlock()
	return l.wakeup.notify()
}

func (l *EventLoop) isQuitting() bool {
	l.quitMu.Lock()
	defer l.quitMu.Unlock()
	return l.quitting
}

// Run claims the calling goroutine as the loop's permanent owner and
// executes the dispatch loop until Quit is called. Calling Run more
// than once, or from more than one goroutine, returns an error.
func (l *EventLoop) Run() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	id := goroutineID()
	l.quitMu.Lock()
	if l.threadSet {
		l.quitMu.Unlock()
		return ErrWrongThread
	}
	if err := claimThread(id, l); err != nil {
		l.quitMu.Unlock()
		return err
	}
	l.threadID = id
	l.threadSet = true
	l.quitMu.Unlock()
	defer releaseThread(id)

	for !l.isQuitting() {
		n, err := l.demux.wait(WaitTimeout, l.eventsBuf)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			ev := l.eventsBuf[i]
			switch ev.fd {
			case l.wakeup.fd():
				l.wakeup.drain()
				l.runDueTasks()
			case l.timer.fd():
				l.timer.drain()
				l.runDueTimers()
			default:
				if c, ok := l.channels[ev.fd]; ok {
					c.handleEvent(ev.revents)
				} else {
					log.Printf("reactor: fd %d has not been registered", ev.fd)
				}
			}
		}
	}

	return l.demux.close()
}

// Close releases the loop's demultiplexer, wakeup source, and timer. Run
// closes the demultiplexer when it returns after Quit, but leaves the
// wakeup source and timer open; Close closes all three.
func (l *EventLoop) Close() error {
	l.wakeup.close()
	l.timer.close()
	return l.demux.close()
}

func (l *EventLoop) runDueTasks() {
	for _, t := range l.tasks.drain() {
		t()
	}
}

func (l *EventLoop) runDueTimers() {
	now := time.Now()

	l.timerMu.Lock()
	sort.Slice(l.timers, func(i, j int) bool { return l.timers[i].deadline.Before(l.timers[j].deadline) })

	var due []scheduledTask
	i := 0
	for ; i < len(l.timers); i++ {
		if l.timers[i].deadline.After(now) {
			break
		}
		due = append(due, l.timers[i])
	}
	l.timers = l.timers[i:]

	var rearm time.Duration
	hasRemaining := len(l.timers) > 0
	if hasRemaining {
		rearm = time.Until(l.timers[0].deadline)
	}
	l.timerMu.Unlock()

	if hasRemaining {
		if err := l.timer.arm(rearm); err != nil {
			log.Printf("reactor: timer re-arm failed: %v", err)
		}
	}

	for _, t := range due {
		t.task()
	}
}
