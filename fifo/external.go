// external.go
//
// External-storage variant: the caller supplies the backing slot slice at
// init time and keeps ownership of it.  Capacity is whatever the slice
// length is, validated at runtime.

package fifo

import "errors"

var (
	// ErrCapacity is returned when a backing buffer length is zero or not
	// a power of two.
	ErrCapacity = errors.New("fifo: capacity must be a non-zero power of two")

	// ErrNoStorage is returned when no backing buffer is supplied.
	ErrNoStorage = errors.New("fifo: nil backing storage")
)

// Ring is a SPSC FIFO over caller-supplied storage.  The backing slice
// must stay valid and untouched by the caller for the Ring's lifetime.
type Ring[T any] struct {
	core[T]
}

// Wrap binds buf as the slot array of a new Ring.  It fails if buf is nil
// or its length is not a non-zero power of two; the bit-mask wrap
// arithmetic is only valid for power-of-two capacities.
func Wrap[T any](buf []T) (*Ring[T], error) {
	if buf == nil {
		return nil, ErrNoStorage
	}
	if n := len(buf); n == 0 || n&(n-1) != 0 {
		return nil, ErrCapacity
	}
	r := &Ring[T]{}
	r.bind(buf)
	return r, nil
}

// New allocates the slot array itself and binds it, for callers that have
// no reason to own the storage.  Same capacity rule as Wrap.
func New[T any](size int) (*Ring[T], error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, ErrCapacity
	}
	r := &Ring[T]{}
	r.bind(make([]T, size))
	return r, nil
}
