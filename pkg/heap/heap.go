// Package heap implements a first-fit, address-ordered free-list allocator
// on top of a single monotonically-growing program break, in the style of a
// textbook malloc/free/calloc/realloc: an in-band doubly-linked list of
// block descriptors threaded through the arena, with splitting on
// allocation, coalescing on free, and cooperative in-place resize against
// the wilderness block or a free right neighbor.
//
// The allocator is strictly single-threaded and non-reentrant: Heap carries
// no lock, and concurrent calls against the same Heap race just as they
// would against libc malloc shared across threads without external
// synchronization.
package heap

import "github.com/gomem/brkheap/pkg/xunsafe"

// Heap is a self-contained arena and free list. The zero Heap is empty and
// ready to use.
type Heap struct {
	_ xunsafe.NoCopy

	brk programBreak

	head, tail xunsafe.Addr[descriptor]
}

// Default is the process-wide heap backing the package-level Allocate,
// Free, ZeroAllocate, and Resize functions, mirroring the platform
// allocator's single global arena.
var Default Heap

// isEmpty reports whether the heap has never allocated a single block.
func (h *Heap) isEmpty() bool {
	return h.head == 0
}
