package abiprobe

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a member read back from a filled buffer.
type Value struct {
	Field Field
	Elems []uint64
	Text  string
}

// Decode reads every member of the record from buf.
func (r *Record) Decode(buf []byte) ([]Value, error) {
	if uintptr(len(buf)) < r.Size {
		return nil, fmt.Errorf("%s: %w: have %d, need %d", r.Key, ErrShortBuffer, len(buf), r.Size)
	}
	values := make([]Value, 0, len(r.Fields))
	for _, f := range r.Fields {
		v := Value{Field: f}
		if f.Kind == KindString {
			v.Text = cstr(buf[f.Offset : f.Offset+f.Size()])
		} else {
			v.Elems = make([]uint64, f.Len)
			for i := range v.Elems {
				off := f.Offset + uintptr(i)*f.Width
				v.Elems[i] = getBits(buf[off : off+f.Width])
			}
		}
		values = append(values, v)
	}
	return values, nil
}

// Format renders the value in C initializer style; signed members are
// shown sign-extended.
func (v Value) Format() string {
	if v.Field.Kind == KindString {
		return strconv.Quote(v.Text)
	}
	parts := make([]string, len(v.Elems))
	for i, bits := range v.Elems {
		switch v.Field.Kind {
		case KindSigned:
			parts[i] = strconv.FormatInt(signExtend(bits, v.Field.Width), 10)
		case KindPointer:
			if bits == 0 {
				parts[i] = "NULL"
			} else {
				parts[i] = fmt.Sprintf("%#x", bits)
			}
		default:
			parts[i] = fmt.Sprintf("%#x", bits)
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
