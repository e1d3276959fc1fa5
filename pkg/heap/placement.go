package heap

import "github.com/gomem/brkheap/internal/debug"

// firstFit walks the list from head looking for the first free block whose
// capacity is at least n bytes. A free wilderness tail that falls short is
// grown in place instead of being skipped. It reports ok=false if the walk
// finds nothing usable, meaning the caller must append a fresh block.
func (h *Heap) firstFit(n int) (d *descriptor, ok bool) {
	for cur := h.head; cur != 0; {
		d = cur.AssertValid()

		if d.isFree {
			if d.blockSize >= n {
				d.isFree = false
				h.split(d, n)
				debug.Log(nil, "firstFit", "placed %d bytes in existing block %v", n, cur)
				return d, true
			}

			if h.isTail(d) {
				if _, extended := h.brk.extend(n - d.blockSize); !extended {
					debug.Log(nil, "firstFit", "wilderness extend by %d bytes failed", n-d.blockSize)
					return nil, false
				}
				d.blockSize = n
				d.isFree = false
				debug.Log(nil, "firstFit", "grew wilderness block to %d bytes", n)
				return d, true
			}
		}

		cur = d.next
	}

	return nil, false
}
