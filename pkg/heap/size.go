package heap

import "github.com/gomem/brkheap/pkg/xunsafe/layout"

// Both descriptor and payload sizes round up via the same power-of-two
// helper the rest of the xunsafe toolkit uses for type layout.

const (
	// align is the byte alignment applied to every payload size and to the
	// descriptor size itself.
	align = 4

	// splitThreshold (T) is the smallest useful remainder, in payload
	// bytes, a block must have left over before it is worth carving a free
	// fragment off of it.
	splitThreshold = 128

	// maxRequest is the largest payload size the allocator will ever try to
	// satisfy; anything above this is rejected outright.
	maxRequest = 100_000_000
)

// descriptorSize (S) is sizeof(descriptor) rounded up to a multiple of
// align. Every payload pointer sits exactly this many bytes past its
// descriptor's address.
var descriptorSize = alignUp(layout.Size[descriptor]())

func alignUp(n int) int {
	return layout.RoundUp(n, align)
}

// validRequest reports whether n is a size the allocator will attempt to
// service: strictly positive, and no larger than maxRequest.
func validRequest(n int) bool {
	return n > 0 && n <= maxRequest
}
