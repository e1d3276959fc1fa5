package heap

import (
	"github.com/gomem/brkheap/internal/debug"
	"github.com/gomem/brkheap/pkg/xunsafe"
)

// resize grows or shrinks the block backing p to n payload bytes, trying,
// in order: shrinking in place (splitting off the remainder), growing the
// wilderness block in place, donation from a free right neighbor (full
// absorb or partial relocate-forward), and finally copy-and-free into a
// brand new placement. It reports ok=false only when every option,
// including the copy-and-free fallback, is exhausted.
func (h *Heap) resize(d *descriptor, n int) (*descriptor, bool) {
	if n <= d.blockSize {
		d.isFree = false
		h.split(d, n)
		return d, true
	}

	if h.isTail(d) {
		if _, ok := h.brk.extend(n - d.blockSize); ok {
			d.blockSize = n
			return d, true
		}
		debug.Log(nil, "resize", "wilderness grow by %d failed, falling back", n-d.blockSize)
	}

	if d.next != 0 {
		right := d.next.AssertValid()
		if right.isFree {
			if d, ok := h.donate(d, right, n); ok {
				return d, true
			}
		}
	}

	return h.relocate(d, n)
}

// donate absorbs all or part of a free right neighbor's capacity into d to
// satisfy an n-byte request, exactly mirroring the "come to help a friend"
// step of the reference allocator: if n exceeds the two payloads' combined
// size (d.blockSize + right.blockSize) by less than splitThreshold, which
// includes every case where it does not exceed it at all, the neighbor's
// descriptor and payload are fully absorbed; otherwise only as much as
// needed is taken and the neighbor's descriptor is relocated forward to
// describe what is left. Because descriptorSize is smaller than
// splitThreshold, every request the combined capacity can hold takes the
// full-absorb path.
func (h *Heap) donate(d, right *descriptor, n int) (*descriptor, bool) {
	combined := d.blockSize + descriptorSize + right.blockSize
	if combined < n {
		return nil, false
	}

	if n-(d.blockSize+right.blockSize) < splitThreshold {
		d.blockSize = combined
		d.next = right.next
		if right.next != 0 {
			right.next.AssertValid().prev = xunsafe.AddrOf(d)
		} else {
			h.tail = xunsafe.AddrOf(d)
		}
		debug.Log(nil, "donate", "fully absorbed right neighbor, block now %d bytes", d.blockSize)
		return d, true
	}

	// Every field of right needed afterward is captured before the relocated
	// descriptor is written, so nothing below reads right after that write.
	taken := n - d.blockSize
	rightSize := right.blockSize
	rightNext := right.next

	newRightAddr := xunsafe.Recast[descriptor](d.end().Add(taken))
	newRight := newRightAddr.AssertValid()
	*newRight = descriptor{
		isFree:    true,
		blockSize: rightSize - taken,
		prev:      xunsafe.AddrOf(d),
		next:      rightNext,
	}

	if rightNext != 0 {
		rightNext.AssertValid().prev = newRightAddr
	} else {
		h.tail = newRightAddr
	}

	d.blockSize = n
	d.next = newRightAddr

	debug.Log(nil, "donate", "partially absorbed right neighbor, relocated descriptor forward by %d bytes", taken)

	return d, true
}

// relocate satisfies a resize by placing a brand new n-byte block, copying
// across min(n, old capacity) bytes, and only then freeing the original.
// Allocating before freeing means a failed placement leaves d untouched: d
// stays live, never marked free until the copy has already succeeded, so
// the old payload can be read directly off it.
func (h *Heap) relocate(d *descriptor, n int) (*descriptor, bool) {
	dst, ok := h.allocate(n)
	if !ok {
		return nil, false
	}

	copyLen := d.blockSize
	if n < copyLen {
		copyLen = n
	}

	xunsafe.Copy(dst.payload().AssertValid(), d.payload().AssertValid(), copyLen)

	h.free(d)

	return dst, true
}
