package heap

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/gomem/brkheap/internal/debug"
)

// reservation bounds the virtual address space a programBreak may ever
// claim. Real memory is only committed (mprotect'd RW) lazily as the break
// advances; this mirrors sbrk(2), whose break can be pushed arbitrarily far
// without the kernel actually backing every page with RAM up front.
const reservation = 1 << 34 // 16 GiB of address space per heap.

// pageSize is the host's mmap/mprotect commit granularity.
var pageSize = uintptr(unix.Getpagesize())

// programBreak models the single OS primitive this allocator is built on:
// extend the program break by a signed delta and report the break's prior
// value, or fail leaving the break untouched.
//
// It is implemented on top of one anonymous, inaccessible mmap reservation
// rather than the real brk(2) syscall, which Go's own runtime already
// claims for its own heap. Pages within the reservation are committed
// (mprotect'd PROT_READ|PROT_WRITE) on demand as the break grows; the
// reservation itself is mapped once and never unmapped, matching the
// allocator's contract that the arena never shrinks.
type programBreak struct {
	base      uintptr
	committed uintptr // [0, committed) of the reservation is mapped RW.
	brk       uintptr // current break, relative to base.
	reserved  bool
}

// extend grows the break by delta bytes, or merely reads it if delta is 0,
// returning the break's value before the call. It reports ok=false and
// leaves the break unchanged if delta would exhaust the reservation or the
// OS refuses to commit the additional pages.
func (p *programBreak) extend(delta int) (prev uintptr, ok bool) {
	if !p.reserved {
		if err := p.reserve(); err != nil {
			debug.Log(nil, "extend", "reservation failed: %v", err)
			return 0, false
		}
	}

	prev = p.base + p.brk
	if delta == 0 {
		return prev, true
	}
	if delta < 0 {
		debug.Log(nil, "extend", "negative delta %d rejected", delta)
		return 0, false
	}

	want := p.brk + uintptr(delta)
	if want > reservation {
		debug.Log(nil, "extend", "reservation exhausted: want %d bytes, have %d", want, uintptr(reservation))
		return 0, false
	}

	if want > p.committed {
		grow := roundUpPage(want)
		if grow > reservation {
			grow = reservation
		}
		if err := unix.Mprotect(p.window(p.committed, grow), unix.PROT_READ|unix.PROT_WRITE); err != nil {
			debug.Log(nil, "extend", "mprotect failed: %v", err)
			return 0, false
		}
		p.committed = grow
	}

	p.brk = want

	return prev, true
}

func (p *programBreak) reserve() error {
	data, err := unix.Mmap(-1, 0, reservation, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return err
	}

	p.base = uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	p.reserved = true

	return nil
}

// window returns the byte range [p.base+from, p.base+to) as a slice, for
// use with unix.Mprotect which addresses memory by []byte.
func (p *programBreak) window(from, to uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p.base+from)), to-from)
}

func roundUpPage(n uintptr) uintptr {
	return (n + pageSize - 1) &^ (pageSize - 1)
}
