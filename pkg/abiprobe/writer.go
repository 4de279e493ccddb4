package abiprobe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"
)

// Fill writes the mode's table into the record at p. The caller owns p and
// must have sized it to at least r.Size bytes. A nil p is a no-op.
func (r *Record) Fill(p unsafe.Pointer, mode Mode) {
	if p == nil || !r.HasTable(mode) {
		return
	}
	r.tables[mode].apply(unsafe.Slice((*byte)(p), r.Size))
}

// FillBytes is Fill for a Go byte slice.
func (r *Record) FillBytes(buf []byte, mode Mode) error {
	if uintptr(len(buf)) < r.Size {
		return fmt.Errorf("%s: %w: have %d, need %d", r.Key, ErrShortBuffer, len(buf), r.Size)
	}
	if !r.HasTable(mode) {
		return fmt.Errorf("%s: no %s table", r.Key, mode)
	}
	r.tables[mode].apply(buf[:r.Size])
	return nil
}

// Filled returns a fresh zeroed buffer filled in mode.
func (r *Record) Filled(mode Mode) ([]byte, error) {
	buf := make([]byte, r.Size)
	if err := r.FillBytes(buf, mode); err != nil {
		return nil, err
	}
	return buf, nil
}

func (t *table) apply(buf []byte) {
	for _, w := range t.writes {
		dst := buf[w.off : w.off+w.width]
		switch {
		case w.run:
			for i := range dst {
				dst[i] = w.fill
			}
		case w.isText:
			n := copy(dst, w.text)
			clear(dst[n:])
		default:
			putBits(dst, w.bits)
		}
	}
}

func putBits(dst []byte, bits uint64) {
	switch len(dst) {
	case 1:
		dst[0] = byte(bits)
	case 2:
		binary.NativeEndian.PutUint16(dst, uint16(bits))
	case 4:
		binary.NativeEndian.PutUint32(dst, uint32(bits))
	case 8:
		binary.NativeEndian.PutUint64(dst, bits)
	}
}

func getBits(src []byte) uint64 {
	switch len(src) {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(binary.NativeEndian.Uint16(src))
	case 4:
		return uint64(binary.NativeEndian.Uint32(src))
	case 8:
		return binary.NativeEndian.Uint64(src)
	}
	return 0
}

// ReadBits reads element index of a member from buf as raw, zero-extended bits.
func (r *Record) ReadBits(buf []byte, name string, index int) (uint64, error) {
	f, err := r.element(buf, name, index)
	if err != nil {
		return 0, err
	}
	off := f.Offset + uintptr(index)*f.Width
	return getBits(buf[off : off+f.Width]), nil
}

// ReadInt reads a member element sign-extended from its native width.
func (r *Record) ReadInt(buf []byte, name string, index int) (int64, error) {
	f, err := r.element(buf, name, index)
	if err != nil {
		return 0, err
	}
	off := f.Offset + uintptr(index)*f.Width
	return signExtend(getBits(buf[off:off+f.Width]), f.Width), nil
}

// ReadString reads a NUL-terminated string member.
func (r *Record) ReadString(buf []byte, name string) (string, error) {
	f, err := r.element(buf, name, 0)
	if err != nil {
		return "", err
	}
	if f.Kind != KindString {
		return "", fmt.Errorf("%s: %s is not a string member", r.Key, name)
	}
	return cstr(buf[f.Offset : f.Offset+f.Size()]), nil
}

func (r *Record) element(buf []byte, name string, index int) (Field, error) {
	if uintptr(len(buf)) < r.Size {
		return Field{}, fmt.Errorf("%s: %w", r.Key, ErrShortBuffer)
	}
	f, ok := r.Field(name)
	if !ok {
		return Field{}, fmt.Errorf("%s: %w %q", r.Key, ErrUnknownField, name)
	}
	if index < 0 || index >= f.Len || (f.Kind == KindString && index != 0) {
		return Field{}, fmt.Errorf("%s: index %d out of range for %s", r.Key, index, name)
	}
	return f, nil
}

func signExtend(bits uint64, width uintptr) int64 {
	shift := 64 - width*8
	return int64(bits<<shift) >> shift
}

// cstr converts a null-terminated byte slice to a Go string.
func cstr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
