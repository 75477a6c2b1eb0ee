package reactor

import "time"

// Compile-time/startup knobs, named after spec.md §6.
const (
	// WaitTimeout bounds a single demultiplexer wait.
	WaitTimeout = 5 * time.Second
	// MaxEventsPerWait caps events drained from one wakeup.
	MaxEventsPerWait = 256
)

// Interest is a bitset of readiness kinds a Channel can register for.
type Interest uint8

const (
	InterestRead Interest = 1 << iota
	InterestWrite
	InterestError
	InterestClose
)

func (i Interest) has(bit Interest) bool { return i&bit != 0 }
