//go:build linux && (amd64 || arm64)

// Package conformance compares the registered record layouts with a pinned
// baseline.
package conformance

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/smazurov/abiprobe/internal/config"
	"github.com/smazurov/abiprobe/internal/metrics"
	"github.com/smazurov/abiprobe/pkg/abiprobe"
	"github.com/smazurov/abiprobe/pkg/linuxav/catalog"
	"github.com/smazurov/abiprobe/pkg/linuxav/ioc"
)

// Mismatch is one difference between the baseline and the running build.
// Field is empty for record-level differences.
type Mismatch struct {
	Record string
	Field  string
	What   string
	Want   string
	Got    string
}

func (m Mismatch) String() string {
	name := m.Record
	if m.Field != "" {
		name += "." + m.Field
	}
	if m.Want == "" && m.Got == "" {
		return fmt.Sprintf("%s: %s", name, m.What)
	}
	return fmt.Sprintf("%s: %s = %s, baseline %s", name, m.What, m.Got, m.Want)
}

// Report is the outcome of one verification.
type Report struct {
	At         time.Time
	Checked    int
	Mismatches []Mismatch
	Warnings   []string
}

// OK reports whether nothing differed.
func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

// ByRecord groups mismatches by record key.
func (r Report) ByRecord() map[string][]Mismatch {
	out := make(map[string][]Mismatch)
	for _, m := range r.Mismatches {
		out[m.Record] = append(out[m.Record], m)
	}
	return out
}

// Verify checks every entry and request code against b.
func Verify(b *config.Baseline, entries []catalog.Entry, requests []ioc.Request) Report {
	rep := Report{At: time.Now()}

	if b.Host.GOARCH != "" && b.Host.GOARCH != runtime.GOARCH {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("baseline captured on %s, running on %s", b.Host.GOARCH, runtime.GOARCH))
	}
	if host, err := config.CurrentHost(); err == nil && b.Host.Kernel != "" && host.Kernel != b.Host.Kernel {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("baseline captured on kernel %s, running %s", b.Host.Kernel, host.Kernel))
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Record.Key] = true
		rep.Checked++
		want, ok := b.Record(e.Record.Key)
		if !ok {
			rep.Mismatches = append(rep.Mismatches, Mismatch{Record: e.Record.Key, What: "not in baseline"})
			continue
		}
		rep.Mismatches = append(rep.Mismatches, compareRecord(want, e.Record)...)
	}
	for _, r := range b.Records {
		if !seen[r.Key] {
			rep.Mismatches = append(rep.Mismatches, Mismatch{Record: r.Key, What: "no longer registered"})
		}
	}

	for _, req := range requests {
		if !req.Matches() {
			rep.Mismatches = append(rep.Mismatches, Mismatch{
				Record: req.Name,
				What:   "request code",
				Want:   hex(uint64(req.Header)),
				Got:    hex(uint64(req.Derived)),
			})
		}
	}
	return rep
}

func compareRecord(want config.RecordLayout, r *abiprobe.Record) []Mismatch {
	var out []Mismatch
	diff := func(field, what, w, g string) {
		if w != g {
			out = append(out, Mismatch{Record: r.Key, Field: field, What: what, Want: w, Got: g})
		}
	}

	diff("", "size", dec(want.Size), dec(uint64(r.Size)))
	diff("", "align", dec(want.Align), dec(uint64(r.Align)))

	current := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		current[f.Name] = true
	}

	for _, wf := range want.Fields {
		f, ok := r.Field(wf.Name)
		if !ok {
			out = append(out, Mismatch{Record: r.Key, Field: wf.Name, What: "removed"})
			continue
		}
		diff(wf.Name, "offset", dec(wf.Offset), dec(uint64(f.Offset)))
		diff(wf.Name, "width", dec(wf.Width), dec(uint64(f.Width)))
		diff(wf.Name, "len", strconv.Itoa(wf.Len), strconv.Itoa(f.Len))
		diff(wf.Name, "kind", wf.Kind, f.Kind.String())
		delete(current, wf.Name)
	}
	for _, f := range r.Fields {
		if current[f.Name] {
			out = append(out, Mismatch{Record: r.Key, Field: f.Name, What: "added"})
		}
	}
	return out
}

// Publish exports the report as gauges.
func Publish(rep Report, entries []catalog.Entry, requests []ioc.Request) {
	metrics.Reset()
	byRecord := rep.ByRecord()
	for _, e := range entries {
		metrics.SetRecordResult(e.Record.Key, string(e.Group), e.Record.Size, len(byRecord[e.Record.Key]))
	}
	for _, req := range requests {
		metrics.SetRequestMatch(req.Name, req.Matches())
	}
	metrics.VerifyCompleted(rep.At, rep.OK())
}

func dec(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func hex(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}
