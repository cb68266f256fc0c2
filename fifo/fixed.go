// fixed.go
//
// Embedded-storage variant: the slot array is a struct field, so capacity
// is pinned by the array type itself and the element data needs no second
// allocation or pointer hop.  `fifo.NewFixed[byte, [1024]byte]()` is the
// moral equivalent of declaring a static FIFO type with a 1024-slot
// buffer.

package fifo

import (
	"reflect"
	"unsafe"
)

// Fixed is a SPSC FIFO whose slots live inline in the struct.  A must be
// the array type [N]T with N a non-zero power of two; any other
// instantiation is rejected by NewFixed.
//
// A Fixed must not be copied after construction: the engine's slot view
// points into the struct's own array field.
type Fixed[T any, A any] struct {
	slots A
	core[T]
}

// NewFixed constructs an embedded-storage FIFO.  The array type is
// checked once, here, and violations panic: an ill-formed instantiation
// is a programming error on par with a bad constant, not a runtime
// condition to handle.
func NewFixed[T any, A any]() *Fixed[T, A] {
	f := new(Fixed[T, A])
	at := reflect.TypeOf(f.slots)
	if at.Kind() != reflect.Array || at.Elem() != reflect.TypeOf((*T)(nil)).Elem() {
		panic("fifo: Fixed storage parameter must be an array of the element type")
	}
	n := at.Len()
	if n == 0 || n&(n-1) != 0 {
		panic("fifo: Fixed array length must be a non-zero power of two")
	}
	// View the inline array as the engine's slot slice.  An array's data
	// starts at the array's own address, so the cast is layout-exact.
	f.bind(unsafe.Slice((*T)(unsafe.Pointer(&f.slots)), n))
	return f
}
