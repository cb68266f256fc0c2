package control

import (
	"sync"
	"testing"
	"time"
)

// resetState clears the global flags for test isolation.
func resetState() {
	hot = 0
	stop = 0
	lastHot = 0
	cooldownNs = int64(time.Second)
}

// TestInitialState verifies both flags start cleared and the pointers
// returned by Flags track the real globals.
func TestInitialState(t *testing.T) {
	resetState()
	if IsActive() || IsShuttingDown() {
		t.Fatal("flags should start cleared")
	}
	stopPtr, hotPtr := Flags()
	if *stopPtr != 0 || *hotPtr != 0 {
		t.Fatal("flag pointers should reference zero values")
	}
	Shutdown()
	if *stopPtr != 1 {
		t.Fatal("stop pointer does not track the global flag")
	}
	SignalActivity()
	if *hotPtr != 1 {
		t.Fatal("hot pointer does not track the global flag")
	}
}

// TestSignalAndCooldown checks that activity raises the hot flag, an
// in-window poll keeps it, and an expired window clears it.
func TestSignalAndCooldown(t *testing.T) {
	resetState()
	cooldownNs = int64(10 * time.Millisecond)

	SignalActivity()
	if !IsActive() {
		t.Fatal("SignalActivity should raise the hot flag")
	}

	PollCooldown()
	if !IsActive() {
		t.Fatal("poll inside the window must not clear the flag")
	}

	time.Sleep(20 * time.Millisecond)
	PollCooldown()
	if IsActive() {
		t.Fatal("poll after the window should clear the flag")
	}

	// Reactivation works after cooldown.
	SignalActivity()
	if !IsActive() {
		t.Fatal("reactivation failed")
	}
}

// TestShutdownIdempotent confirms repeated Shutdown calls keep the flag
// set and never clear it.
func TestShutdownIdempotent(t *testing.T) {
	resetState()
	Shutdown()
	Shutdown()
	if !IsShuttingDown() {
		t.Fatal("stop flag must stay set")
	}
}

// TestConcurrentSignals hammers the flag operations from many goroutines
// under the race detector.
func TestConcurrentSignals(t *testing.T) {
	resetState()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				SignalActivity()
				PollCooldown()
				_ = IsActive()
			}
		}()
	}
	wg.Wait()
	if !IsActive() {
		t.Fatal("hot flag should be set right after a signal storm")
	}
}

func BenchmarkSignalActivity(b *testing.B) {
	resetState()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SignalActivity()
	}
}

func BenchmarkPollCooldown(b *testing.B) {
	resetState()
	SignalActivity()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PollCooldown()
	}
}
