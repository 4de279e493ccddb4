//go:build linux && (amd64 || arm64)

package dmaheap

import (
	"golang.org/x/sys/unix"

	"github.com/smazurov/abiprobe/pkg/abiprobe"
)

// AllocationDataRecord describes struct dma_heap_allocation_data.
var AllocationDataRecord = abiprobe.MustDescribe[AllocationData]("dma_heap_allocation_data", "struct dma_heap_allocation_data").
	Pattern(
		abiprobe.Set("len", 0xDEADBEEFCAFEBABE),
		abiprobe.Set("fd", 0x12345678),
		abiprobe.Set("fd_flags", 0x87654321),
		abiprobe.Set("heap_flags", 0xFEDCBA98),
	).
	Realistic(
		abiprobe.Set("len", 4096),
		abiprobe.Set("fd", 0),
		abiprobe.Set("fd_flags", unix.O_RDWR|unix.O_CLOEXEC),
		abiprobe.Set("heap_flags", 0),
	)

// Records returns the dma-heap records.
func Records() []*abiprobe.Record {
	return []*abiprobe.Record{AllocationDataRecord}
}
