//go:build linux

// Package dmaheap mirrors struct dma_heap_allocation_data from
// linux/dma-heap.h and the DMA_HEAP_IOCTL_ALLOC request built from it.
//
// Alloc performs a real allocation against a heap node such as
// /dev/dma_heap/system, which checks the mirror against the running kernel:
// a mismatched size changes the request code and the kernel answers ENOTTY.
package dmaheap
