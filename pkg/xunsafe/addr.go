//go:build go1.23

package xunsafe

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/gomem/brkheap/pkg/xunsafe/layout"
)

// Addr is an untyped, GC-invisible address parameterized by the type it
// points to, used for navigating memory the garbage collector does not own
// (an mmap'd arena, in particular). Unlike *T, a value of type Addr[T] is
// never scanned or updated by the collector, which is exactly the property
// needed to thread a list through raw bytes.
//
// The zero Addr is never a valid address and is used throughout this module
// as the "no such block" sentinel.
type Addr[T any] int

// AddrOf returns the address of p.
func AddrOf[T any](p *T) Addr[T] {
	return Addr[T](uintptr(unsafe.Pointer(p)))
}

// EndOf returns the address one element past the end of s.
func EndOf[S ~[]E, E any](s S) Addr[E] {
	return AddrOf(unsafe.SliceData(s)).Add(len(s))
}

// Recast reinterprets an address to one element type as an address to
// another, without changing the underlying byte address.
func Recast[To, From any](a Addr[From]) Addr[To] {
	return Addr[To](a)
}

// AssertValid converts this address back into a pointer.
//
// This performs no validity checking beyond a nil check; the name reflects
// that the caller is asserting the address is safe to dereference.
func (a Addr[T]) AssertValid() *T {
	if a == 0 {
		return nil
	}
	return (*T)(unsafe.Pointer(uintptr(a)))
}

// Add adds n elements worth of offset to a, scaled by sizeof(T).
func (a Addr[T]) Add(n int) Addr[T] {
	return a + Addr[T](n*layout.Size[T]())
}

// ByteAdd adds n bytes of offset to a, unscaled.
func (a Addr[T]) ByteAdd(n int) Addr[T] {
	return a + Addr[T](n)
}

// Sub computes the difference between a and b, scaled by sizeof(T).
func (a Addr[T]) Sub(b Addr[T]) int {
	return int(a-b) / layout.Size[T]()
}

// Padding returns how many bytes must be added to a to reach a multiple of
// align, which must be a power of two.
func (a Addr[T]) Padding(align int) int {
	return (align - int(a)) & (align - 1)
}

// RoundUpTo rounds a up to the nearest multiple of align, a power of two.
func (a Addr[T]) RoundUpTo(align int) Addr[T] {
	return Addr[T]((int(a) + align - 1) &^ (align - 1))
}

// SignBit reports whether a's most significant bit is set.
func (a Addr[T]) SignBit() bool {
	return a < 0
}

// SignBitMask returns all-ones if a's sign bit is set, all-zeros otherwise.
func (a Addr[T]) SignBitMask() Addr[T] {
	return a >> (bits.UintSize - 1)
}

// ClearSignBit returns a with its most significant bit cleared.
func (a Addr[T]) ClearSignBit() Addr[T] {
	return a &^ (Addr[T](1) << (bits.UintSize - 1))
}

// String implements fmt.Stringer, rendering a as a hex address.
func (a Addr[T]) String() string {
	return fmt.Sprintf("0x%x", uintptr(a))
}

// Slice reinterprets a as the address of an n-element array and returns it
// as a slice, with no bounds checking beyond the nil-address check already
// performed by AssertValid.
func (a Addr[T]) Slice(n int) []T {
	if a == 0 {
		return nil
	}
	return unsafe.Slice(a.AssertValid(), n)
}
