package heap

import "github.com/gomem/brkheap/pkg/xunsafe"

// descriptor is the in-band block header embedded immediately before every
// block's payload inside the arena. The list of descriptors is threaded in
// strictly ascending address order via prev/next; the zero Addr value (no
// valid arena address is ever zero) marks the list's ends.
//
// descriptor deliberately holds no Go pointers: prev, next, and the derived
// payload address are all Addr values, i.e. plain integers from the
// garbage collector's point of view, because the memory a descriptor lives
// in is never scanned by the collector in the first place.
type descriptor struct {
	isFree     bool
	blockSize  int // payload capacity in bytes, excluding the descriptor itself.
	prev, next xunsafe.Addr[descriptor]
}

// payload returns the address of this block's payload, immediately
// following the descriptor itself.
func (d *descriptor) payload() xunsafe.Addr[byte] {
	return xunsafe.Recast[byte](xunsafe.AddrOf(d)).Add(descriptorSize)
}

// end returns the address immediately past this block's payload.
func (d *descriptor) end() xunsafe.Addr[byte] {
	return d.payload().Add(d.blockSize)
}

func (h *Heap) isTail(d *descriptor) bool { return xunsafe.AddrOf(d) == h.tail }

// findByPayload walks the list looking for the block whose payload begins
// at p. It returns ok=false for an address the allocator has never handed
// out, or has already reclaimed into a larger coalesced block.
func (h *Heap) findByPayload(p xunsafe.Addr[byte]) (*descriptor, bool) {
	for cur := h.head; cur != 0; {
		d := cur.AssertValid()
		if d.payload() == p {
			return d, true
		}
		cur = d.next
	}

	return nil, false
}
