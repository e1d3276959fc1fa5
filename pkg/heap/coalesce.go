package heap

import "github.com/gomem/brkheap/pkg/xunsafe"

// coalesceRight merges d with its right neighbor if that neighbor exists and
// is free, absorbing the neighbor's descriptor and payload into d. It
// reports whether a merge happened.
func (h *Heap) coalesceRight(d *descriptor) bool {
	if d.next == 0 {
		return false
	}

	right := d.next.AssertValid()
	if !right.isFree {
		return false
	}

	d.blockSize += descriptorSize + right.blockSize
	d.next = right.next

	if right.next != 0 {
		right.next.AssertValid().prev = xunsafe.AddrOf(d)
	} else {
		h.tail = xunsafe.AddrOf(d)
	}

	return true
}

// coalesceLeft merges d into its left neighbor if that neighbor exists and
// is free. It returns the surviving descriptor (the left neighbor on
// success, d otherwise) and whether a merge happened.
func (h *Heap) coalesceLeft(d *descriptor) (*descriptor, bool) {
	if d.prev == 0 {
		return d, false
	}

	left := d.prev.AssertValid()
	if !left.isFree {
		return d, false
	}

	left.blockSize += descriptorSize + d.blockSize
	left.next = d.next

	if d.next != 0 {
		d.next.AssertValid().prev = xunsafe.AddrOf(left)
	} else {
		h.tail = xunsafe.AddrOf(left)
	}

	return left, true
}

// coalesce merges a newly freed block with both neighbors where possible,
// left first so a single surviving descriptor absorbs both merges. It
// returns the descriptor the freed memory now lives in.
func (h *Heap) coalesce(d *descriptor) *descriptor {
	d, _ = h.coalesceLeft(d)
	h.coalesceRight(d)
	return d
}
