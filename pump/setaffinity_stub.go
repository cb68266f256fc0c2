//go:build !linux

// setaffinity_stub.go
//
// No-op pinning for platforms without sched_setaffinity.  The pump still
// works, it just floats wherever the scheduler puts it.

package pump

func setAffinity(cpu int) {}
