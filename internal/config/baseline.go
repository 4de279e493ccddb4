package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sys/unix"

	"github.com/smazurov/abiprobe/internal/version"
	"github.com/smazurov/abiprobe/pkg/abiprobe"
)

// BaselineVersion is the manifest format this build reads and writes.
const BaselineVersion = 1

// ErrBaselineVersion is returned when a manifest has an unsupported version.
var ErrBaselineVersion = errors.New("unsupported baseline version")

// Baseline pins the layout of every record together with the kernel and
// header versions it was captured against.
type Baseline struct {
	Version  int            `toml:"version"`
	Captured time.Time      `toml:"captured"`
	Tool     string         `toml:"tool"`
	Host     HostInfo       `toml:"host"`
	Headers  HeaderVersions `toml:"headers"`
	Records  []RecordLayout `toml:"record"`
}

// HostInfo identifies the machine a baseline was captured on.
type HostInfo struct {
	Kernel  string `toml:"kernel"`
	Machine string `toml:"machine"`
	GOARCH  string `toml:"goarch"`
}

// HeaderVersions names the header sets the layouts come from.
type HeaderVersions struct {
	Linux  string `toml:"linux"`
	Libdrm string `toml:"libdrm"`
}

// RecordLayout is the pinned layout of one record.
type RecordLayout struct {
	Key    string        `toml:"key"`
	CName  string        `toml:"cname"`
	Size   uint64        `toml:"size"`
	Align  uint64        `toml:"align"`
	Fields []FieldLayout `toml:"field"`
}

// FieldLayout is the pinned layout of one member.
type FieldLayout struct {
	Name   string `toml:"name"`
	Offset uint64 `toml:"offset"`
	Kind   string `toml:"kind"`
	Width  uint64 `toml:"width"`
	Len    int    `toml:"len"`
}

// Layout converts a record into its manifest form.
func Layout(r *abiprobe.Record) RecordLayout {
	l := RecordLayout{
		Key:    r.Key,
		CName:  r.CName,
		Size:   uint64(r.Size),
		Align:  uint64(r.Align),
		Fields: make([]FieldLayout, len(r.Fields)),
	}
	for i, f := range r.Fields {
		l.Fields[i] = FieldLayout{
			Name:   f.Name,
			Offset: uint64(f.Offset),
			Kind:   f.Kind.String(),
			Width:  uint64(f.Width),
			Len:    f.Len,
		}
	}
	return l
}

// NewBaseline captures the current layout of records on this host.
func NewBaseline(records []*abiprobe.Record, headers HeaderVersions) (*Baseline, error) {
	host, err := CurrentHost()
	if err != nil {
		return nil, err
	}
	if headers.Linux == "" {
		headers.Linux = host.Kernel
	}

	b := &Baseline{
		Version:  BaselineVersion,
		Captured: time.Now().UTC().Truncate(time.Second),
		Tool:     version.Tool(),
		Host:     host,
		Headers:  headers,
		Records:  make([]RecordLayout, len(records)),
	}
	for i, r := range records {
		b.Records[i] = Layout(r)
	}
	return b, nil
}

// CurrentHost reads the running kernel release through uname(2).
func CurrentHost() (HostInfo, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return HostInfo{}, fmt.Errorf("uname: %w", err)
	}
	return HostInfo{
		Kernel:  unix.ByteSliceToString(uts.Release[:]),
		Machine: unix.ByteSliceToString(uts.Machine[:]),
		GOARCH:  runtime.GOARCH,
	}, nil
}

// Record finds a pinned record by key.
func (b *Baseline) Record(key string) (RecordLayout, bool) {
	for _, r := range b.Records {
		if r.Key == key {
			return r, true
		}
	}
	return RecordLayout{}, false
}

// LoadBaseline reads and version-checks a manifest.
func LoadBaseline(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}
	b, err := ParseBaseline(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ParseBaseline decodes and version-checks manifest bytes.
func ParseBaseline(data []byte) (*Baseline, error) {
	var b Baseline
	if err := toml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline: %w", err)
	}
	if b.Version != BaselineVersion {
		return nil, fmt.Errorf("%w %d (want %d)", ErrBaselineVersion, b.Version, BaselineVersion)
	}
	return &b, nil
}

// SaveBaseline writes the manifest, replacing path atomically so a watcher
// never loads a partial file.
func SaveBaseline(path string, b *Baseline) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create baseline directory: %w", err)
	}

	data, err := toml.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".baseline-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp baseline: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace baseline: %w", err)
	}
	return nil
}
