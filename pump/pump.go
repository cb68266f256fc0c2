// pump.go
//
// Low-latency SPSC consumer pump.
//
//   - Dedicated OS thread pinned to `core`.
//   - Stays in hot-spin (tight loop, no cpuRelax) while
//     new work has arrived within hotTimeout, OR
//     the producer keeps the hot flag == 1.
//   - Every miss polls control.PollCooldown so an idle producer's hot
//     flag expires; after the grace window and once hot == 0 the loop
//     drops to the cold-spin path: cpuRelax every iteration.
//   - Exits only when *stop == 1 and closes `done` exactly once.
//
// The ring itself never blocks; all waiting lives here, on the consumer's
// side of the contract, so callers that cannot afford a spinning core
// simply do not use this package.
//
// All cross-goroutine variables are accessed atomically; no other
// synchronisation primitives appear in the hot path.
//
// hot flag contract:
//
//	Producer             Consumer
//	--------             ------------------------------
//	Store 1  ─────────▶  read (wake / stay hot-spin)
//	...push items…
//	(optionally) Store 0  ◀─ consumer never writes

package pump

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Disen-Shaw/gofifo/control"
)

const (
	spinBudget = 256              // polls before cold back-off
	hotTimeout = 15 * time.Second // hot-spin grace
)

// Popper is the consumer half of a SPSC FIFO; both gofifo storage
// variants satisfy it.
type Popper[T any] interface {
	Pop() (T, bool)
}

// Consume drains src until *stop is set, invoking fn for every element in
// arrival order.  The goroutine it spawns is locked to an OS thread and
// pinned to the given CPU (best effort; no-op off Linux).
func Consume[T any](core int, src Popper[T], stop, hot *uint32, fn func(T), done chan<- struct{}) {
	go func() {
		runtime.LockOSThread()
		setAffinity(core) // stub on non-Linux
		defer func() {
			runtime.UnlockOSThread()
			close(done)
		}()

		last := time.Now() // last time Pop delivered
		miss := 0

		for {
			// fast path: Pop succeeded → process & mark activity
			if v, ok := src.Pop(); ok {
				fn(v)
				last, miss = time.Now(), 0
				continue
			}

			// stop request?
			if atomic.LoadUint32(stop) != 0 {
				return
			}

			// miss path: let an idle producer's hot flag expire so the
			// loop can fall through to cold-spin
			control.PollCooldown()

			hotSpin := atomic.LoadUint32(hot) != 0 ||
				time.Since(last) <= hotTimeout
			if hotSpin {
				// tight loop: no cpuRelax
				continue
			}

			// cold-spin path: power-friendlier
			if miss++; miss >= spinBudget {
				miss = 0
			}
			cpuRelax()
		}
	}()
}
