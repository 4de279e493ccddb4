//go:build linux && (amd64 || arm64)

package conformance

import (
	"context"
	"log/slog"
	"time"

	"github.com/smazurov/abiprobe/internal/config"
	"github.com/smazurov/abiprobe/internal/events"
	"github.com/smazurov/abiprobe/internal/metrics"
	"github.com/smazurov/abiprobe/pkg/linuxav/catalog"
)

// Runner verifies the catalog against a baseline file, logs the outcome
// and optionally refreshes a Prometheus textfile. When Events is set every
// run is also published as an events.VerifiedEvent.
type Runner struct {
	BaselinePath string
	Textfile     string
	Logger       *slog.Logger
	Events       *events.Bus
}

// Check verifies against an already loaded baseline.
func (r *Runner) Check(b *config.Baseline) Report {
	entries := catalog.All()
	requests := catalog.Requests()

	rep := Verify(b, entries, requests)
	Publish(rep, entries, requests)

	for _, w := range rep.Warnings {
		r.Logger.Warn("Baseline host differs", "detail", w)
	}
	for _, m := range rep.Mismatches {
		r.Logger.Error("Layout mismatch", "record", m.Record, "field", m.Field, "what", m.What, "baseline", m.Want, "current", m.Got)
	}
	if rep.OK() {
		r.Logger.Info("Layouts match baseline", "records", rep.Checked, "kernel", b.Host.Kernel, "libdrm", b.Headers.Libdrm)
	} else {
		r.Logger.Error("Layouts differ from baseline", "mismatches", len(rep.Mismatches), "records", len(rep.ByRecord()))
	}

	if r.Textfile != "" {
		if err := metrics.WriteTextfile(r.Textfile); err != nil {
			r.Logger.Warn("Failed to write metrics textfile", "path", r.Textfile, "error", err)
		}
	}

	r.Events.Publish(events.VerifiedEvent{
		Baseline:   r.BaselinePath,
		At:         rep.At,
		Checked:    rep.Checked,
		Mismatches: len(rep.Mismatches),
		Warnings:   len(rep.Warnings),
	})
	return rep
}

// CheckFile loads the baseline and verifies against it.
func (r *Runner) CheckFile() (Report, error) {
	b, err := config.LoadBaseline(r.BaselinePath)
	if err != nil {
		return Report{}, err
	}
	return r.Check(b), nil
}

// Watch re-verifies every time the baseline file changes, until ctx is
// cancelled. A baseline that fails to load keeps the previous result.
func (r *Runner) Watch(ctx context.Context, debounce time.Duration) error {
	w := config.NewWatcher(r.BaselinePath, config.ParseBaseline, r.Logger,
		config.WithDebounce[*config.Baseline](debounce),
		config.WithErrorHandler[*config.Baseline](func(err error) {
			r.Logger.Error("Baseline reload failed", "path", r.BaselinePath, "error", err)
			r.Events.Publish(events.BaselineReloadFailedEvent{Baseline: r.BaselinePath, Error: err.Error()})
		}),
	)
	w.OnReload(func(b *config.Baseline) {
		r.Check(b)
	})

	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}
