package abiprobe

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Errors returned by record operations.
var (
	ErrShortBuffer  = errors.New("buffer smaller than record")
	ErrUnknownField = errors.New("unknown field")
	ErrBadTag       = errors.New("invalid abi tag")
)

// Kind is the native interpretation of a member.
type Kind uint8

// Member kinds.
const (
	KindUnsigned Kind = iota
	KindSigned
	KindString
	KindPointer
)

func (k Kind) String() string {
	switch k {
	case KindUnsigned:
		return "unsigned"
	case KindSigned:
		return "signed"
	case KindString:
		return "string"
	case KindPointer:
		return "pointer"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Field is one leaf member of a record. Scalar arrays keep a single entry
// with Len > 1; strings are Width 1 with Len equal to their capacity.
type Field struct {
	Name   string
	Offset uintptr
	Kind   Kind
	Width  uintptr
	Len    int
}

// Size is the number of bytes the member occupies.
func (f Field) Size() uintptr {
	return f.Width * uintptr(f.Len)
}

// Signed reports whether reads sign-extend.
func (f Field) Signed() bool {
	return f.Kind == KindSigned
}

// CType renders the member type the way a C header would spell it.
func (f Field) CType() string {
	var base string
	switch f.Kind {
	case KindString:
		return fmt.Sprintf("char[%d]", f.Len)
	case KindPointer:
		base = "void *"
	case KindSigned:
		base = fmt.Sprintf("__s%d", f.Width*8)
	default:
		base = fmt.Sprintf("__u%d", f.Width*8)
	}
	if f.Len > 1 {
		return fmt.Sprintf("%s[%d]", base, f.Len)
	}
	return base
}

// Record describes a native structure and carries its fill tables. A mirror
// of a packed C struct declares a leading `_ struct{} abi:",packed"` marker,
// which sets Align to 1; Go has no packed layout of its own.
// Records are immutable once their tables are installed and are safe for
// concurrent use.
type Record struct {
	Key    string
	CName  string
	Size   uintptr
	Align  uintptr
	Fields []Field

	index  map[string]int
	tables [modeCount]*table
}

// Describe builds a Record from the Go mirror T.
func Describe[T any](key, cname string) (*Record, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s: mirror %s is not a struct", key, t)
	}

	r := &Record{
		Key:   key,
		CName: cname,
		Size:  t.Size(),
		Align: uintptr(t.Align()),
		index: make(map[string]int),
	}
	if err := r.walk(t, 0, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return r, nil
}

// MustDescribe is Describe for package-level record declarations.
func MustDescribe[T any](key, cname string) *Record {
	r, err := Describe[T](key, cname)
	if err != nil {
		panic(err)
	}
	return r
}

// Field looks up a member by its native name.
func (r *Record) Field(name string) (Field, bool) {
	i, ok := r.index[name]
	if !ok {
		return Field{}, false
	}
	return r.Fields[i], true
}

// HasTable reports whether an assignment table is installed for mode.
func (r *Record) HasTable(mode Mode) bool {
	return mode.valid() && r.tables[mode] != nil
}

func (r *Record) String() string {
	return fmt.Sprintf("%s (%s, %d bytes)", r.Key, r.CName, r.Size)
}

func (r *Record) walk(t reflect.Type, base uintptr, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			if err := r.marker(sf, prefix); err != nil {
				return err
			}
			continue
		}
		tag, ok := sf.Tag.Lookup("abi")
		if !ok {
			return fmt.Errorf("%w: %s.%s has no abi tag", ErrBadTag, t.Name(), sf.Name)
		}
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			return fmt.Errorf("%w: %s.%s has an empty name", ErrBadTag, t.Name(), sf.Name)
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		off := base + sf.Offset
		ft := sf.Type

		switch {
		case opts == "ptr":
			r.add(Field{Name: name, Offset: off, Kind: KindPointer, Width: ft.Size(), Len: 1})

		case opts == "string":
			if ft.Kind() != reflect.Array || ft.Elem().Size() != 1 {
				return fmt.Errorf("%w: %s is tagged string but is %s", ErrBadTag, name, ft)
			}
			r.add(Field{Name: name, Offset: off, Kind: KindString, Width: 1, Len: ft.Len()})

		case opts != "":
			return fmt.Errorf("%w: %s has unknown option %q", ErrBadTag, name, opts)

		case ft.Kind() == reflect.Struct:
			if err := r.walk(ft, off, name); err != nil {
				return err
			}

		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Struct:
			elem := ft.Elem()
			for j := 0; j < ft.Len(); j++ {
				if err := r.walk(elem, off+uintptr(j)*elem.Size(), fmt.Sprintf("%s[%d]", name, j)); err != nil {
					return err
				}
			}

		case ft.Kind() == reflect.Array:
			kind, err := scalarKind(ft.Elem())
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			r.add(Field{Name: name, Offset: off, Kind: kind, Width: ft.Elem().Size(), Len: ft.Len()})

		default:
			kind, err := scalarKind(ft)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			r.add(Field{Name: name, Offset: off, Kind: kind, Width: ft.Size(), Len: 1})
		}
	}
	return nil
}

// marker handles a blank field. Untagged blanks are padding. Only the top
// level mirror's packed marker changes Align; nested ones describe the
// member, whose alignment the enclosing record already reflects.
func (r *Record) marker(sf reflect.StructField, prefix string) error {
	tag, ok := sf.Tag.Lookup("abi")
	if !ok {
		return nil
	}
	if tag != ",packed" || sf.Type.Size() != 0 {
		return fmt.Errorf("%w: blank field tagged %q", ErrBadTag, tag)
	}
	if prefix == "" {
		r.Align = 1
	}
	return nil
}

func (r *Record) add(f Field) {
	r.index[f.Name] = len(r.Fields)
	r.Fields = append(r.Fields, f)
}

func scalarKind(t reflect.Type) (Kind, error) {
	switch t.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindUnsigned, nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindSigned, nil
	default:
		return 0, fmt.Errorf("%w: unsupported member type %s", ErrBadTag, t)
	}
}
