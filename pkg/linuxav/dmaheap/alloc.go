//go:build linux && (amd64 || arm64)

package dmaheap

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultHeap is the system heap node present on most kernels >= 5.6.
const DefaultHeap = "/dev/dma_heap/system"

// ErrNoHeap is returned when the heap device node does not exist.
var ErrNoHeap = errors.New("dma heap not available")

// Buffer is a dma-buf file descriptor returned by a heap allocation.
type Buffer struct {
	Fd  int
	Len uint64
}

// Close releases the dma-buf.
func (b *Buffer) Close() error {
	if b.Fd < 0 {
		return nil
	}
	err := unix.Close(b.Fd)
	b.Fd = -1
	return err
}

// Alloc allocates length bytes from the heap at path.
func Alloc(path string, length uint64) (*Buffer, error) {
	heapFd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoHeap)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer unix.Close(heapFd)

	data := AllocationData{
		Len:     length,
		FdFlags: unix.O_RDWR | unix.O_CLOEXEC,
	}
	if err := ioctl(heapFd, IoctlAlloc, unsafe.Pointer(&data)); err != nil {
		return nil, fmt.Errorf("DMA_HEAP_IOCTL_ALLOC on %s: %w", path, err)
	}

	return &Buffer{Fd: int(data.Fd), Len: data.Len}, nil
}

// Available reports whether the heap node exists.
func Available(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func ioctl(fd int, req uint32, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
		if errno == unix.EINTR {
			continue
		}
		if errno != 0 {
			return errno
		}
		return nil
	}
}
