//go:build linux && (amd64 || arm64)

// Package catalog registers every probed record under its key.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/smazurov/abiprobe/pkg/abiprobe"
	"github.com/smazurov/abiprobe/pkg/linuxav/dmaheap"
	"github.com/smazurov/abiprobe/pkg/linuxav/drm"
	"github.com/smazurov/abiprobe/pkg/linuxav/ioc"
	"github.com/smazurov/abiprobe/pkg/linuxav/v4l2"
)

// ErrUnknownRecord is returned by Lookup for a key no package registers.
var ErrUnknownRecord = errors.New("unknown record")

// Group names the header family a record comes from.
type Group string

// Record groups.
const (
	GroupDRM     Group = "drm"
	GroupDMAHeap Group = "dma-heap"
	GroupV4L2    Group = "v4l2"
)

// Entry is a registered record and its group.
type Entry struct {
	Group  Group
	Record *abiprobe.Record
}

var (
	entries []Entry
	byKey   = make(map[string]Entry)
)

func init() {
	register(GroupDRM, drm.Records())
	register(GroupDMAHeap, dmaheap.Records())
	register(GroupV4L2, v4l2.Records())
}

func register(g Group, records []*abiprobe.Record) {
	for _, r := range records {
		if _, dup := byKey[r.Key]; dup {
			panic(fmt.Sprintf("catalog: duplicate record key %q", r.Key))
		}
		e := Entry{Group: g, Record: r}
		entries = append(entries, e)
		byKey[r.Key] = e
	}
}

// All returns every entry in registration order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Records returns every record in registration order.
func Records() []*abiprobe.Record {
	out := make([]*abiprobe.Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record
	}
	return out
}

// Keys returns the registered keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup finds a record by key.
func Lookup(key string) (*abiprobe.Record, error) {
	e, ok := byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRecord, key)
	}
	return e.Record, nil
}

// Requests returns every request code derived from a mirror.
func Requests() []ioc.Request {
	reqs := []ioc.Request{{
		Name:    "DMA_HEAP_IOCTL_ALLOC",
		Header:  dmaheap.IoctlAlloc,
		Derived: dmaheap.DerivedIoctlAlloc(),
	}}
	return append(reqs, v4l2.Requests()...)
}
