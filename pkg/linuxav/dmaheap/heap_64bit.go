//go:build linux && (amd64 || arm64)

package dmaheap

import (
	"unsafe"

	"github.com/smazurov/abiprobe/pkg/linuxav/ioc"
)

// Compile-time size assertion against linux/dma-heap.h.
var _ [24]byte = [unsafe.Sizeof(AllocationData{})]byte{}

// AllocationData mirrors struct dma_heap_allocation_data (24 bytes).
type AllocationData struct {
	Len       uint64 `abi:"len"`        // offset 0
	Fd        uint32 `abi:"fd"`         // offset 8
	FdFlags   uint32 `abi:"fd_flags"`   // offset 12
	HeapFlags uint64 `abi:"heap_flags"` // offset 16
}

// IoctlAlloc is DMA_HEAP_IOCTL_ALLOC, _IOWR('H', 0x0, struct dma_heap_allocation_data).
const IoctlAlloc = 0xc0184800

const heapIoctlBase = 'H'

// DerivedIoctlAlloc recomputes the allocation request from the mirror size.
// It equals IoctlAlloc exactly when the mirror matches the header.
func DerivedIoctlAlloc() uint32 {
	return ioc.IOWR(heapIoctlBase, 0x0, unsafe.Sizeof(AllocationData{}))
}
