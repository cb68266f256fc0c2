//go:build linux

// setaffinity_linux.go
//
// Linux binding for sched_setaffinity(2) that pins this OS thread to a
// single logical CPU.  Errors are deliberately swallowed: on a
// containerised or cgroup-heavy system the call might return
// EPERM/EINVAL, and the fallback is simply no pin.

package pump

import "golang.org/x/sys/unix"

// setAffinity pins the current thread to cpu (0-based).  Negative
// indices are ignored for portability.
func setAffinity(cpu int) {
	if cpu < 0 {
		return
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	_ = unix.SchedSetaffinity(0, &set) // pid 0 → current thread
}
