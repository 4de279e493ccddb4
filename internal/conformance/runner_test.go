//go:build linux && (amd64 || arm64)

package conformance

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smazurov/abiprobe/internal/config"
	"github.com/smazurov/abiprobe/internal/events"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunnerCheckFile(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{
		BaselinePath: filepath.Join(dir, "baseline.toml"),
		Textfile:     filepath.Join(dir, "abiprobe.prom"),
		Logger:       quietLogger(),
	}

	if _, err := r.CheckFile(); err == nil {
		t.Fatal("CheckFile() on a missing baseline should fail")
	}

	if err := config.SaveBaseline(r.BaselinePath, captured(t)); err != nil {
		t.Fatal(err)
	}
	rep, err := r.CheckFile()
	if err != nil {
		t.Fatalf("CheckFile() error = %v", err)
	}
	if !rep.OK() {
		t.Errorf("mismatches = %v", rep.Mismatches)
	}

	data, err := os.ReadFile(r.Textfile)
	if err != nil {
		t.Fatalf("textfile not written: %v", err)
	}
	if !strings.Contains(string(data), `abiprobe_record_conformant{group="v4l2",record="v4l2_buffer"} 1`) {
		t.Errorf("textfile content:\n%s", data)
	}
}

func TestRunnerWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.toml")
	b := captured(t)
	if err := config.SaveBaseline(path, b); err != nil {
		t.Fatal(err)
	}

	bus := events.New()
	r := &Runner{BaselinePath: path, Logger: quietLogger(), Events: bus}

	verified := make(chan events.VerifiedEvent, 4)
	defer bus.Subscribe(func(e events.VerifiedEvent) { verified <- e })()
	failed := make(chan events.BaselineReloadFailedEvent, 4)
	defer bus.Subscribe(func(e events.BaselineReloadFailedEvent) { failed <- e })()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Watch(ctx, 50*time.Millisecond)
	}()
	time.Sleep(200 * time.Millisecond)

	b.Records[recordIndex(t, b, "v4l2_buffer")].Size = 80
	if err := config.SaveBaseline(path, b); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-verified:
		if e.OK() {
			t.Error("tampered baseline reported OK")
		}
		if e.Baseline != path || e.Mismatches == 0 {
			t.Errorf("event = %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for re-verification")
	}

	if err := os.WriteFile(path, []byte("version = "), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case e := <-failed:
		if e.Baseline != path || e.Error == "" {
			t.Errorf("event = %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload failure")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
