package heap

import (
	"github.com/gomem/brkheap/internal/debug"
	"github.com/gomem/brkheap/pkg/opt"
	"github.com/gomem/brkheap/pkg/xunsafe"
)

// Allocate reserves n bytes of payload and returns its address, or None if
// n is out of range (zero, negative, or larger than the allocator will ever
// service) or the heap has exhausted its address space.
func (h *Heap) Allocate(n int) opt.Option[uintptr] {
	if !validRequest(n) {
		debug.Log(nil, "Allocate", "rejected invalid request for %d bytes", n)
		return opt.None[uintptr]()
	}

	n = alignUp(n)

	d, ok := h.allocate(n)
	if !ok {
		return opt.None[uintptr]()
	}

	return opt.Some(uintptr(d.payload()))
}

// ZeroAllocate allocates room for num elements of size bytes each and
// zero-fills the returned payload before handing it back. Overflow of
// num*size is not checked, matching the reference allocator this engine is
// modeled on.
func (h *Heap) ZeroAllocate(num, size int) opt.Option[uintptr] {
	n := num * size

	addr := h.Allocate(n)
	if addr.IsNone() {
		return addr
	}

	p := addr.Unwrap()
	xunsafe.Clear(xunsafe.Addr[byte](p).AssertValid(), alignUp(n))

	return addr
}

// Free reclaims the block at p. An address the allocator never handed out,
// or has already reclaimed, is silently ignored, matching the reference
// allocator's tolerance of double-free and garbage pointers.
func (h *Heap) Free(p uintptr) {
	d, ok := h.findByPayload(xunsafe.Addr[byte](p))
	if !ok || d.isFree {
		debug.Log(nil, "Free", "ignoring unknown or already-free address %v", p)
		return
	}

	h.free(d)
}

// Resize changes the block at p to hold n bytes, preserving the lesser of
// its old and new sizes worth of content, and returns the (possibly moved)
// new address. An unknown p is treated as a fresh allocation request,
// mirroring the reference allocator's realloc(NULL, n) behavior. It returns
// None if n is out of range or no allocation could be made at all.
func (h *Heap) Resize(p uintptr, n int) opt.Option[uintptr] {
	if !validRequest(n) {
		debug.Log(nil, "Resize", "rejected invalid request for %d bytes", n)
		return opt.None[uintptr]()
	}

	d, ok := h.findByPayload(xunsafe.Addr[byte](p))
	if !ok {
		debug.Log(nil, "Resize", "unknown address %v, treating as a fresh allocation", p)
		return h.Allocate(n)
	}

	n = alignUp(n)

	nd, ok := h.resize(d, n)
	if !ok {
		return opt.None[uintptr]()
	}

	return opt.Some(uintptr(nd.payload()))
}

// Allocate reserves n bytes of payload against the process-wide Default
// heap.
func Allocate(n int) opt.Option[uintptr] { return Default.Allocate(n) }

// ZeroAllocate reserves and zero-fills num*size bytes against the Default
// heap.
func ZeroAllocate(num, size int) opt.Option[uintptr] { return Default.ZeroAllocate(num, size) }

// Free reclaims the block at p from the Default heap.
func Free(p uintptr) { Default.Free(p) }

// Resize changes the block at p to hold n bytes within the Default heap.
func Resize(p uintptr, n int) opt.Option[uintptr] { return Default.Resize(p, n) }

// CountFreeBlocks reports the Default heap's free block count.
func CountFreeBlocks() int { return Default.CountFreeBlocks() }

// SumFreeBytes reports the Default heap's total free payload bytes.
func SumFreeBytes() int { return Default.SumFreeBytes() }

// CountAllBlocks reports the Default heap's total block count.
func CountAllBlocks() int { return Default.CountAllBlocks() }

// SumAllBytes reports the Default heap's total payload bytes across every
// block.
func SumAllBytes() int { return Default.SumAllBytes() }

// MetadataBytesTotal reports the Default heap's total descriptor overhead.
func MetadataBytesTotal() int { return Default.MetadataBytesTotal() }

// DescriptorSize reports the constant per-block descriptor overhead.
func DescriptorSize() int { return Default.DescriptorSize() }
