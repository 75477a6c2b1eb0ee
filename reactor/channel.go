package reactor

// Revents is a portable readiness bitset a demultiplexer translates its
// OS-specific event mask into before handing it to a Channel, so
// Channel.handleEvent never depends on epoll/kqueue/IOCP constants
// directly.
type Revents uint32

const (
	RevRead Revents = 1 << iota
	RevWrite
	RevError
	RevHup
	RevPri
	RevRDHup
)

// Callback is invoked with the fd a readiness event fired for.
type Callback func(fd int)

// Channel binds one file descriptor to a set of callbacks within exactly
// one EventLoop. Channel does not own fd: the caller manages its
// lifetime. Mutating a Channel's callbacks or interest mask, like every
// other Channel operation besides the read-only getters, must happen on
// the owning loop's thread.
//
// Grounded on original_source/Channel.{h,cpp}.
type Channel struct {
	fd   int
	loop *EventLoop

	interest Interest
	readCb   Callback
	writeCb  Callback
	errorCb  Callback
	closeCb  Callback

	registered bool
}

// NewChannel creates a Channel for fd bound to loop and registers it.
// Must be called on loop's owning thread.
func NewChannel(loop *EventLoop, fd int) (*Channel, error) {
	assertf(loop != nil, "NewChannel called with a nil loop")
	c := &Channel{fd: fd, loop: loop}
	if err := loop.registerChannel(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Fd returns the bound file descriptor.
func (c *Channel) Fd() int { return c.fd }

// Interest returns the current interest bitset.
func (c *Channel) Interest() Interest { return c.interest }

// SetReadCallback installs cb, adds Read to the interest mask, and
// reprograms the loop's demultiplexer.
func (c *Channel) SetReadCallback(cb Callback) error {
	c.readCb = cb
	return c.addInterest(InterestRead)
}

// SetWriteCallback installs cb, adds Write to the interest mask, and
// reprograms the loop's demultiplexer.
func (c *Channel) SetWriteCallback(cb Callback) error {
	c.writeCb = cb
	return c.addInterest(InterestWrite)
}

// SetErrorCallback installs cb, adds Error to the interest mask, and
// reprograms the loop's demultiplexer.
func (c *Channel) SetErrorCallback(cb Callback) error {
	c.errorCb = cb
	return c.addInterest(InterestError)
}

// SetCloseCallback installs the close callback. Interest for close is
// implicit once a callback is installed, per spec.md's resolution of the
// source's inconsistent close-interest toggling (SPEC_FULL.md §8.3).
func (c *Channel) SetCloseCallback(cb Callback) error {
	c.closeCb = cb
	c.interest |= InterestClose
	return c.loop.updateChannel(c)
}

func (c *Channel) addInterest(bit Interest) error {
	newInterest := c.interest | bit
	if newInterest == c.interest {
		return nil
	}
	c.interest = newInterest
	return c.loop.updateChannel(c)
}

// handleEvent dispatches revents with the priority spec.md §4.6 requires:
// a pure hang-up (HUP without READ) fires only the close callback; ERR
// fires only the error callback; otherwise READ/PRI/RDHUP fires read,
// and WRITE fires write.
func (c *Channel) handleEvent(revents Revents) {
	if revents.has(RevHup) && !revents.has(RevRead) {
		if c.interest.has(InterestClose) && c.closeCb != nil {
			c.closeCb(c.fd)
		}
		return
	}
	if revents.has(RevError) {
		if c.interest.has(InterestError) && c.errorCb != nil {
			c.errorCb(c.fd)
		}
		return
	}
	if revents.has(RevRead) || revents.has(RevPri) || revents.has(RevRDHup) {
		if c.interest.has(InterestRead) && c.readCb != nil {
			c.readCb(c.fd)
		}
	}
	if revents.has(RevWrite) {
		if c.interest.has(InterestWrite) && c.writeCb != nil {
			c.writeCb(c.fd)
		}
	}
}

func (r Revents) has(bit Revents) bool { return r&bit != 0 }

// Close deregisters the Channel from its loop. Safe to call more than
// once; subsequent calls are no-ops.
func (c *Channel) Close() error {
	if !c.registered {
		return nil
	}
	return c.loop.removeChannel(c)
}
