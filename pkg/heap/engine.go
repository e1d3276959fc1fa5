package heap

import "github.com/gomem/brkheap/internal/debug"

// allocate is the shared engine behind Allocate and the relocate path of
// resize: try to reuse existing free space via firstFit, and fall back to
// extending the break with appendTail only once the whole list has been
// searched.
func (h *Heap) allocate(n int) (*descriptor, bool) {
	if d, ok := h.firstFit(n); ok {
		return d, true
	}

	d, ok := h.appendTail(n)
	if !ok {
		debug.Log(nil, "allocate", "out of address space for %d bytes", n)
	}

	return d, ok
}

// free marks d reclaimable and coalesces it with any free neighbors. It is
// the shared engine behind Free and the relocate path of resize.
func (h *Heap) free(d *descriptor) {
	d.isFree = true
	h.coalesce(d)
}
