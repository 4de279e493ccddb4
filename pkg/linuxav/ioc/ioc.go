// Package ioc composes Linux ioctl request codes the way <asm-generic/ioctl.h>
// does. Codes embed the argument size, so deriving them from a Go mirror's
// unsafe.Sizeof makes a layout error visible to the kernel as ENOTTY.
package ioc

// Bit layout of a request code (asm-generic; amd64, arm64, arm).
const (
	NRBits   = 8
	TypeBits = 8
	SizeBits = 14
	DirBits  = 2

	NRShift   = 0
	TypeShift = NRShift + NRBits
	SizeShift = TypeShift + TypeBits
	DirShift  = SizeShift + SizeBits
)

// Transfer directions.
const (
	None  = 0
	Write = 1
	Read  = 2
)

// IOC builds a request code.
func IOC(dir, typ, nr, size uintptr) uint32 {
	return uint32(dir<<DirShift | typ<<TypeShift | nr<<NRShift | size<<SizeShift)
}

// IO is a request without an argument.
func IO(typ, nr uintptr) uint32 {
	return IOC(None, typ, nr, 0)
}

// IOR is a request the kernel writes back to userspace.
func IOR(typ, nr, size uintptr) uint32 {
	return IOC(Read, typ, nr, size)
}

// IOW is a request userspace passes in.
func IOW(typ, nr, size uintptr) uint32 {
	return IOC(Write, typ, nr, size)
}

// IOWR is a request in both directions.
func IOWR(typ, nr, size uintptr) uint32 {
	return IOC(Read|Write, typ, nr, size)
}

// Size extracts the argument size encoded in a request code.
func Size(req uint32) uintptr {
	return uintptr(req>>SizeShift) & (1<<SizeBits - 1)
}

// Dir extracts the transfer direction.
func Dir(req uint32) uintptr {
	return uintptr(req>>DirShift) & (1<<DirBits - 1)
}

// Request pairs a header literal with the code re-derived from a mirror.
type Request struct {
	Name    string
	Header  uint32
	Derived uint32
}

// Matches reports whether the mirror-derived code equals the header's.
func (r Request) Matches() bool {
	return r.Header == r.Derived
}
