package heap

import "github.com/gomem/brkheap/pkg/xunsafe"

// appendTail grows the break by a fresh descriptor plus n payload bytes and
// links the new block on as the list's tail. It is the fallback once
// firstFit finds nothing reusable.
//
// The very first block in an empty heap additionally pads the break up to
// align before placing its descriptor, so that every descriptor address
// for the lifetime of the heap is aligned; later blocks never need this
// because descriptorSize and every payload size are themselves multiples
// of align.
func (h *Heap) appendTail(n int) (*descriptor, bool) {
	if h.isEmpty() {
		prev, ok := h.brk.extend(0)
		if !ok {
			return nil, false
		}
		if pad := int(xunsafe.Addr[byte](prev).Padding(align)); pad > 0 {
			if _, ok := h.brk.extend(pad); !ok {
				return nil, false
			}
		}
	}

	base, ok := h.brk.extend(descriptorSize + n)
	if !ok {
		return nil, false
	}

	d := xunsafe.Recast[descriptor](xunsafe.Addr[byte](base)).AssertValid()
	*d = descriptor{
		isFree:    false,
		blockSize: n,
		prev:      h.tail,
	}

	addr := xunsafe.AddrOf(d)

	if h.tail != 0 {
		h.tail.AssertValid().next = addr
	} else {
		h.head = addr
	}
	h.tail = addr

	return d, true
}
