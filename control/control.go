// control.go
//
// Global coordination flags for spinning FIFO consumers.  A producer that
// knows a burst is in flight raises the hot flag so pinned consumers stay
// in their tight poll loop; an idle timeout clears it again so quiet
// periods stop burning a core.  Shutdown is a one-way stop flag every
// consumer polls between misses.
//
// Everything here is a plain atomic word: no channels, no mutexes, no
// allocation on any path.

package control

import (
	"sync/atomic"
	"time"
)

var (
	hot  uint32 // 1 = producer currently active
	stop uint32 // 1 = consumers should wind down

	lastHot    int64 // unix-nano timestamp of the most recent activity signal
	cooldownNs = int64(time.Second)
)

// SignalActivity marks the producer side as active and timestamps the
// signal for cooldown tracking.  Called from the producer whenever it
// hands work to a ring.
func SignalActivity() {
	atomic.StoreUint32(&hot, 1)
	atomic.StoreInt64(&lastHot, time.Now().UnixNano())
}

// SetCooldown adjusts the idle window after which PollCooldown clears
// the hot flag.  Call before consumers start.
func SetCooldown(d time.Duration) {
	atomic.StoreInt64(&cooldownNs, int64(d))
}

// PollCooldown clears the hot flag once the idle window has elapsed.
// Consumers call it inline from their spin loops.
func PollCooldown() {
	if atomic.LoadUint32(&hot) == 1 &&
		time.Now().UnixNano()-atomic.LoadInt64(&lastHot) > atomic.LoadInt64(&cooldownNs) {
		atomic.StoreUint32(&hot, 0)
	}
}

// Shutdown raises the stop flag.  Idempotent; consumers exit on their
// next miss.
func Shutdown() {
	atomic.StoreUint32(&stop, 1)
}

// IsActive reports the current hot flag.
func IsActive() bool { return atomic.LoadUint32(&hot) == 1 }

// IsShuttingDown reports the stop flag.
func IsShuttingDown() bool { return atomic.LoadUint32(&stop) == 1 }

// Flags returns pointers to the stop and hot flags for consumers that
// poll them directly without a call per iteration.  The pointers stay
// valid for the process lifetime.
func Flags() (stopFlag, hotFlag *uint32) {
	return &stop, &hot
}
