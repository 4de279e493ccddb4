package abiprobe

import (
	"errors"
	"fmt"
	"strings"
)

type assignOp uint8

const (
	opSet assignOp = iota
	opSeq
	opText
	opMemset
	opNull
)

// Assignment is one declarative entry of a fill table.
type Assignment struct {
	op    assignOp
	field string
	index int
	bits  uint64
	text  string
	fill  byte
}

// Set writes bits into a scalar or pointer member, truncated to its width.
func Set(field string, bits uint64) Assignment {
	return Assignment{op: opSet, field: field, bits: bits}
}

// SetInt writes a signed literal using two's-complement truncation.
func SetInt(field string, v int64) Assignment {
	return Assignment{op: opSet, field: field, bits: uint64(v)}
}

// SetAt writes bits into element index of an array member.
func SetAt(field string, index int, bits uint64) Assignment {
	return Assignment{op: opSet, field: field, index: index, bits: bits}
}

// Seq writes base+i into elements from..len-1 of an array member.
func Seq(field string, from int, base uint64) Assignment {
	return Assignment{op: opSeq, field: field, index: from, bits: base}
}

// Text copies s into a string member and NUL-pads the rest of it.
func Text(field, s string) Assignment {
	return Assignment{op: opText, field: field, text: s}
}

// Memset fills every member named prefix, or nested under it, with b.
func Memset(prefix string, b byte) Assignment {
	return Assignment{op: opMemset, field: prefix, fill: b}
}

// Zero is Memset(prefix, 0).
func Zero(prefix string) Assignment {
	return Memset(prefix, 0)
}

// Null marks a pointer member as not populated by the probe.
func Null(field string) Assignment {
	return Assignment{op: opNull, field: field}
}

func (a Assignment) String() string {
	switch a.op {
	case opSet:
		return fmt.Sprintf("%s[%d] = %#x", a.field, a.index, a.bits)
	case opSeq:
		return fmt.Sprintf("%s[%d:] = %#x+i", a.field, a.index, a.bits)
	case opText:
		return fmt.Sprintf("%s = %q", a.field, a.text)
	case opMemset:
		return fmt.Sprintf("memset(%s, %#x)", a.field, a.fill)
	case opNull:
		return fmt.Sprintf("%s = NULL", a.field)
	default:
		return "?"
	}
}

// write is one compiled store: n bytes at off, either a scalar of width n
// or a run of n copies of fill.
type write struct {
	off    uintptr
	width  uintptr
	bits   uint64
	text   string
	run    bool
	fill   byte
	isText bool
}

type table struct {
	writes  []write
	covered []bool
}

// compile resolves a table against the record's fields. Authoring errors
// (unknown member, out-of-range index, a string that does not fit) are
// reported here rather than at fill time.
func (r *Record) compile(assignments []Assignment) (*table, error) {
	t := &table{covered: make([]bool, r.Size)}
	var errs []error

	for _, a := range assignments {
		if a.op == opMemset {
			matched := false
			for _, f := range r.Fields {
				if !underPrefix(f.Name, a.field) {
					continue
				}
				matched = true
				t.add(write{off: f.Offset, width: f.Size(), run: true, fill: a.fill})
			}
			if !matched {
				errs = append(errs, fmt.Errorf("%s: %w %q", r.Key, ErrUnknownField, a.field))
			}
			continue
		}

		f, ok := r.Field(a.field)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w %q", r.Key, ErrUnknownField, a.field))
			continue
		}

		switch a.op {
		case opSet:
			if f.Kind == KindString {
				errs = append(errs, fmt.Errorf("%s: %s is a string, use Text", r.Key, f.Name))
				continue
			}
			if a.index < 0 || a.index >= f.Len {
				errs = append(errs, fmt.Errorf("%s: index %d out of range for %s[%d]", r.Key, a.index, f.Name, f.Len))
				continue
			}
			t.add(write{off: f.Offset + uintptr(a.index)*f.Width, width: f.Width, bits: a.bits})

		case opSeq:
			if f.Kind == KindString || f.Len < 2 {
				errs = append(errs, fmt.Errorf("%s: %s is not a scalar array", r.Key, f.Name))
				continue
			}
			if a.index < 0 || a.index >= f.Len {
				errs = append(errs, fmt.Errorf("%s: start %d out of range for %s[%d]", r.Key, a.index, f.Name, f.Len))
				continue
			}
			for i := a.index; i < f.Len; i++ {
				t.add(write{off: f.Offset + uintptr(i)*f.Width, width: f.Width, bits: a.bits + uint64(i)})
			}

		case opText:
			if f.Kind != KindString {
				errs = append(errs, fmt.Errorf("%s: %s is not a string member", r.Key, f.Name))
				continue
			}
			if len(a.text) >= f.Len || strings.IndexByte(a.text, 0) >= 0 {
				errs = append(errs, fmt.Errorf("%s: %q does not fit %s (capacity %d)", r.Key, a.text, f.Name, f.Len))
				continue
			}
			t.add(write{off: f.Offset, width: f.Size(), text: a.text, isText: true})

		case opNull:
			if f.Kind != KindPointer {
				errs = append(errs, fmt.Errorf("%s: %s is not a pointer member", r.Key, f.Name))
				continue
			}
			t.add(write{off: f.Offset, width: f.Width, bits: 0})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

func (t *table) add(w write) {
	t.writes = append(t.writes, w)
	for i := w.off; i < w.off+w.width; i++ {
		t.covered[i] = true
	}
}

func underPrefix(name, prefix string) bool {
	if name == prefix {
		return true
	}
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	next := name[len(prefix)]
	return next == '.' || next == '['
}

// SetTable installs the assignment table for mode.
func (r *Record) SetTable(mode Mode, assignments ...Assignment) error {
	if !mode.valid() {
		return fmt.Errorf("%s: invalid mode %v", r.Key, mode)
	}
	t, err := r.compile(assignments)
	if err != nil {
		return err
	}
	r.tables[mode] = t
	return nil
}

// Pattern installs the pattern table and panics on an authoring error.
func (r *Record) Pattern(assignments ...Assignment) *Record {
	if err := r.SetTable(ModePattern, assignments...); err != nil {
		panic(err)
	}
	return r
}

// Realistic installs the realistic table and panics on an authoring error.
func (r *Record) Realistic(assignments ...Assignment) *Record {
	if err := r.SetTable(ModeRealistic, assignments...); err != nil {
		panic(err)
	}
	return r
}

// Uncovered lists the members the mode's table leaves untouched. Padding
// is never reported because it is not a member.
func (r *Record) Uncovered(mode Mode) []string {
	if !r.HasTable(mode) {
		names := make([]string, len(r.Fields))
		for i, f := range r.Fields {
			names[i] = f.Name
		}
		return names
	}
	covered := r.tables[mode].covered
	var names []string
	for _, f := range r.Fields {
		for i := f.Offset; i < f.Offset+f.Size(); i++ {
			if !covered[i] {
				names = append(names, f.Name)
				break
			}
		}
	}
	return names
}

// Validate reports every mode without a table and every member a table
// leaves unwritten.
func (r *Record) Validate() error {
	var errs []error
	for _, mode := range Modes() {
		if !r.HasTable(mode) {
			errs = append(errs, fmt.Errorf("%s: no %s table", r.Key, mode))
			continue
		}
		if missing := r.Uncovered(mode); len(missing) > 0 {
			errs = append(errs, fmt.Errorf("%s: %s table leaves %s unwritten", r.Key, mode, strings.Join(missing, ", ")))
		}
	}
	return errors.Join(errs...)
}
