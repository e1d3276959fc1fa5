package heap

import "github.com/gomem/brkheap/pkg/xunsafe"

// split carves a block down to exactly n payload bytes if the leftover space
// is large enough to host both a fresh descriptor and splitThreshold bytes
// of usable payload; otherwise d keeps its full capacity and the caller
// simply over-allocates the difference. d.isFree is assumed already set to
// its post-placement value (false) by the caller.
func (h *Heap) split(d *descriptor, n int) {
	remainder := d.blockSize - n - descriptorSize
	if remainder < splitThreshold {
		return
	}

	d.blockSize = n

	fragAddr := xunsafe.Recast[descriptor](d.end())
	frag := fragAddr.AssertValid()
	*frag = descriptor{
		isFree:    true,
		blockSize: remainder,
		prev:      xunsafe.AddrOf(d),
		next:      d.next,
	}

	if d.next != 0 {
		d.next.AssertValid().prev = fragAddr
	} else {
		h.tail = fragAddr
	}
	d.next = fragAddr

	// The fragment is brand new, so it has no free neighbor to its right
	// yet; nothing to coalesce unless this split came from a shrinking
	// resize, where the fragment's right neighbor may already be free.
	h.coalesceRight(frag)
}
