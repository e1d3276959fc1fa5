package heap

// Stats is a snapshot of the six read-only counters the allocator exposes
// for introspection, each computed by a single O(N) walk of the block list.
type Stats struct {
	FreeBlocks     int
	FreeBytes      int
	AllBlocks      int
	AllBytes       int
	MetaBytes      int
	DescriptorSize int
}

// Stats walks the list once and reports the counters described in Stats.
func (h *Heap) Stats() Stats {
	s := Stats{DescriptorSize: descriptorSize}

	for cur := h.head; cur != 0; {
		d := cur.AssertValid()

		s.AllBlocks++
		s.AllBytes += d.blockSize
		s.MetaBytes += descriptorSize

		if d.isFree {
			s.FreeBlocks++
			s.FreeBytes += d.blockSize
		}

		cur = d.next
	}

	return s
}

// CountFreeBlocks reports how many blocks are currently free.
func (h *Heap) CountFreeBlocks() int { return h.Stats().FreeBlocks }

// SumFreeBytes reports the total payload capacity of all free blocks.
func (h *Heap) SumFreeBytes() int { return h.Stats().FreeBytes }

// CountAllBlocks reports how many blocks, free or allocated, exist.
func (h *Heap) CountAllBlocks() int { return h.Stats().AllBlocks }

// SumAllBytes reports the total payload capacity of every block.
func (h *Heap) SumAllBytes() int { return h.Stats().AllBytes }

// MetadataBytesTotal reports the total bytes spent on descriptors across
// every block currently in the list.
func (h *Heap) MetadataBytesTotal() int { return h.Stats().MetaBytes }

// DescriptorSize reports the constant per-block descriptor overhead.
func (h *Heap) DescriptorSize() int { return descriptorSize }
