// fifo.go
//
// Lock-free single-producer/single-consumer ring FIFO engine.  One generic
// engine carries the index arithmetic and the two-segment bulk-copy
// algorithm; the storage variants in external.go and fixed.go only decide
// where the slot array lives.
//
// Cursors are monotonic uint64 counters that never reset during normal
// operation: head advances only on the consumer side, tail only on the
// producer side, and occupancy is always the wraparound-safe difference
// tail-head.  Physical slots are derived by masking with capacity-1, which
// is why capacity must be a power of two.

package fifo

// core is the shared ring engine.  Producer and consumer cursors sit on
// separate cache-lines so the two roles never false-share.
type core[T any] struct {
	_    [64]byte // consumer cursor isolated on its own cache-line
	head uint64

	//lint:ignore U1000 padding to keep head & tail on different cache-lines
	_pad1 [56]byte
	tail  uint64

	//lint:ignore U1000 padding to keep hot cursors from colliding with metadata
	_pad2 [56]byte
	mask  uint64
	buf   []T
}

// bind points the engine at its slot array and zeroes both cursors.  The
// caller has already verified len(buf) is a non-zero power of two.
func (c *core[T]) bind(buf []T) {
	c.buf = buf
	c.mask = uint64(len(buf)) - 1
	c.head = 0
	c.tail = 0
}

// Reset empties the FIFO by zeroing both cursors.  Slot contents are left
// untouched.  Not safe while a peer context is pushing or popping; call
// only from a quiescent state.
func (c *core[T]) Reset() {
	c.head = 0
	c.tail = 0
}

// Cap returns the fixed slot capacity.
func (c *core[T]) Cap() int { return len(c.buf) }

// Len returns the number of buffered elements, always in [0, Cap()].
// Safe from either role.
func (c *core[T]) Len() int {
	return int(loadAcquireUint64(&c.tail) - loadAcquireUint64(&c.head))
}

// Empty reports whether no elements are buffered.
func (c *core[T]) Empty() bool {
	return loadAcquireUint64(&c.tail) == loadAcquireUint64(&c.head)
}

// Full reports whether every slot is occupied.
func (c *core[T]) Full() bool {
	return loadAcquireUint64(&c.tail)-loadAcquireUint64(&c.head) == uint64(len(c.buf))
}

// Push enqueues one element, returning false if the FIFO is full.  The
// slot is written before the tail is published so the consumer never
// observes a half-written element.  Producer role only.
func (c *core[T]) Push(v T) bool {
	t := c.tail
	if t-loadAcquireUint64(&c.head) == uint64(len(c.buf)) {
		return false
	}
	c.buf[t&c.mask] = v
	storeReleaseUint64(&c.tail, t+1)
	return true
}

// Pop dequeues the oldest element, returning false if the FIFO is empty.
// The head is published only after the slot has been read out, so the
// producer never reuses a slot the consumer is still copying.  Consumer
// role only.
func (c *core[T]) Pop() (T, bool) {
	var zero T
	h := c.head
	if loadAcquireUint64(&c.tail) == h {
		return zero, false
	}
	v := c.buf[h&c.mask]
	storeReleaseUint64(&c.head, h+1)
	return v, true
}

// Drop discards the oldest element without reading it.  Returns false if
// the FIFO is empty.  Consumer role only.
func (c *core[T]) Drop() bool {
	h := c.head
	if loadAcquireUint64(&c.tail) == h {
		return false
	}
	storeReleaseUint64(&c.head, h+1)
	return true
}

// DropN discards the n oldest elements in one cursor advance.  Fails
// without mutation when fewer than n elements are buffered; n == 0 is a
// trivial success.  Consumer role only.
func (c *core[T]) DropN(n int) bool {
	if n <= 0 {
		return n == 0
	}
	h := c.head
	if loadAcquireUint64(&c.tail)-h < uint64(n) {
		return false
	}
	storeReleaseUint64(&c.head, h+uint64(n))
	return true
}

// Peek reads the oldest element without consuming it.  Returns false if
// the FIFO is empty.  Consumer role only.
func (c *core[T]) Peek() (T, bool) {
	var zero T
	h := c.head
	if loadAcquireUint64(&c.tail) == h {
		return zero, false
	}
	return c.buf[h&c.mask], true
}

// PeekAt reads the element ofst positions past the oldest one without
// consuming anything; ofst 0 is equivalent to Peek.  Returns false when
// ofst is negative or at least Len().  Consumer role only.
func (c *core[T]) PeekAt(ofst int) (T, bool) {
	var zero T
	if ofst < 0 {
		return zero, false
	}
	h := c.head
	if loadAcquireUint64(&c.tail)-h <= uint64(ofst) {
		return zero, false
	}
	return c.buf[(h+uint64(ofst))&c.mask], true
}

// PushSlice enqueues all of src or nothing.  The transfer is split at the
// wrap point into at most two copy calls, so cost is independent of how
// the cursor happens to line up with the slot array.  The tail advances
// once, by the full length, only after both segments are in place.
// Producer role only.
func (c *core[T]) PushSlice(src []T) bool {
	n := uint64(len(src))
	if n == 0 {
		return true
	}
	t := c.tail
	size := uint64(len(c.buf))
	if size-(t-loadAcquireUint64(&c.head)) < n {
		return false
	}
	ofst := t & c.mask
	l1 := size - ofst // contiguous run up to the wrap edge
	if l1 > n {
		l1 = n
	}
	copy(c.buf[ofst:], src[:l1])
	if n > l1 {
		copy(c.buf, src[l1:])
	}
	storeReleaseUint64(&c.tail, t+n)
	return true
}

// PopSlice dequeues exactly len(dst) elements or nothing.  Mirrors
// PushSlice: two-segment copy out of the slot array, head advanced once
// on full success.  Consumer role only.
func (c *core[T]) PopSlice(dst []T) bool {
	n := uint64(len(dst))
	if n == 0 {
		return true
	}
	h := c.head
	if loadAcquireUint64(&c.tail)-h < n {
		return false
	}
	ofst := h & c.mask
	l1 := uint64(len(c.buf)) - ofst
	if l1 > n {
		l1 = n
	}
	copy(dst[:l1], c.buf[ofst:ofst+l1])
	if n > l1 {
		copy(dst[l1:], c.buf)
	}
	storeReleaseUint64(&c.head, h+n)
	return true
}
