package config

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type testConfig struct {
	Name  string `toml:"name"`
	Value int    `toml:"value"`
}

func loadTestConfig(data []byte) (testConfig, error) {
	var cfg testConfig
	err := toml.Unmarshal(data, &cfg)
	return cfg, err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func startWatcher[T any](t *testing.T, w *Watcher[T]) {
	t.Helper()
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := w.Stop(); err != nil {
			t.Errorf("watcher.Stop failed: %v", err)
		}
	})
	// Wait for watcher to initialize
	time.Sleep(100 * time.Millisecond)
}

func TestWatcher_BasicReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "name = \"initial\"\nvalue = 1\n")

	received := make(chan testConfig, 1)
	watcher := NewWatcher(path, loadTestConfig, newTestLogger(), WithDebounce[testConfig](50*time.Millisecond))
	watcher.OnReload(func(cfg testConfig) {
		received <- cfg
	})
	startWatcher(t, watcher)

	writeFile(t, path, "name = \"updated\"\nvalue = 42\n")

	select {
	case cfg := <-received:
		if cfg.Name != "updated" || cfg.Value != 42 {
			t.Errorf("got %+v, want name=updated, value=42", cfg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload")
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "value = 1\n")

	var count atomic.Int32
	watcher := NewWatcher(path, loadTestConfig, newTestLogger(), WithDebounce[testConfig](50*time.Millisecond))
	watcher.OnReload(func(testConfig) { count.Add(1) })
	startWatcher(t, watcher)

	writeFile(t, filepath.Join(dir, "other.toml"), "value = 2\n")
	time.Sleep(300 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("expected 0 reloads for a sibling file, got %d", got)
	}
}

func TestWatcher_BaselineReplacedByRename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.toml")
	b := testBaseline(t)
	if err := SaveBaseline(path, b); err != nil {
		t.Fatal(err)
	}

	received := make(chan *Baseline, 1)
	watcher := NewWatcher(path, ParseBaseline, newTestLogger(), WithDebounce[*Baseline](50*time.Millisecond))
	watcher.OnReload(func(b *Baseline) {
		received <- b
	})
	startWatcher(t, watcher)

	b.Headers.Libdrm = "2.4.124"
	if err := SaveBaseline(path, b); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-received:
		if got.Headers.Libdrm != "2.4.124" {
			t.Errorf("libdrm = %q, want 2.4.124", got.Headers.Libdrm)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for baseline reload")
	}
}

func TestWatcher_SkipsIdenticalContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "value = 1\n")

	var count atomic.Int32
	watcher := NewWatcher(path, loadTestConfig, newTestLogger(), WithDebounce[testConfig](50*time.Millisecond))
	watcher.OnReload(func(testConfig) { count.Add(1) })
	startWatcher(t, watcher)

	writeFile(t, path, "value = 1\n")
	time.Sleep(300 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Errorf("reloads after rewriting identical content = %d, want 0", got)
	}

	writeFile(t, path, "value = 2\n")
	time.Sleep(300 * time.Millisecond)
	writeFile(t, path, "value = 2\n")
	time.Sleep(300 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Errorf("reloads = %d, want 1", got)
	}
}

func TestWatcher_Unsubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "value = 1\n")

	var count1, count2 atomic.Int32
	watcher := NewWatcher(path, loadTestConfig, newTestLogger(), WithDebounce[testConfig](50*time.Millisecond))
	watcher.OnReload(func(testConfig) { count1.Add(1) })
	unsub2 := watcher.OnReload(func(testConfig) { count2.Add(1) })
	startWatcher(t, watcher)

	writeFile(t, path, "value = 10\n")
	time.Sleep(300 * time.Millisecond)

	unsub2()

	writeFile(t, path, "value = 20\n")
	time.Sleep(300 * time.Millisecond)

	if got := count1.Load(); got != 2 {
		t.Errorf("handler1: expected 2 calls, got %d", got)
	}
	if got := count2.Load(); got != 1 {
		t.Errorf("handler2: expected 1 call, got %d", got)
	}
}

func TestWatcher_ErrorHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "name = \"valid\"\nvalue = 1\n")

	errorReceived := make(chan error, 1)
	configReceived := make(chan testConfig, 1)

	watcher := NewWatcher(
		path,
		loadTestConfig,
		newTestLogger(),
		WithDebounce[testConfig](50*time.Millisecond),
		WithErrorHandler[testConfig](func(err error) {
			errorReceived <- err
		}),
	)
	watcher.OnReload(func(cfg testConfig) {
		configReceived <- cfg
	})
	startWatcher(t, watcher)

	writeFile(t, path, "invalid toml [[[")

	select {
	case <-errorReceived:
	case <-configReceived:
		t.Fatal("reload handler should not be called on error")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for error handler")
	}
}

func TestWatcher_Debounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "value = 0\n")

	var count atomic.Int32
	var lastValue atomic.Int32

	watcher := NewWatcher(path, loadTestConfig, newTestLogger(), WithDebounce[testConfig](200*time.Millisecond))
	watcher.OnReload(func(cfg testConfig) {
		count.Add(1)
		lastValue.Store(int32(cfg.Value))
	})
	startWatcher(t, watcher)

	for i := 1; i <= 5; i++ {
		writeFile(t, path, fmt.Sprintf("value = %d\n", i))
		time.Sleep(50 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("expected 1 debounced call, got %d", got)
	}
	if got := lastValue.Load(); got != 5 {
		t.Errorf("expected final value 5, got %d", got)
	}
}

func TestWatcher_ContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "value = 1\n")

	var count atomic.Int32
	watcher := NewWatcher(path, loadTestConfig, newTestLogger(), WithDebounce[testConfig](50*time.Millisecond))
	watcher.OnReload(func(testConfig) { count.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	if err := watcher.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case <-watcher.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not exit after cancel")
	}

	writeFile(t, path, "value = 99\n")
	time.Sleep(200 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Errorf("expected 0 calls after cancel, got %d", got)
	}
	if err := watcher.Stop(); err != nil {
		t.Errorf("Stop after cancel: %v", err)
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "config.toml")
	watcher := NewWatcher(path, loadTestConfig, newTestLogger())
	if err := watcher.Start(context.Background()); err == nil {
		watcher.Stop()
		t.Fatal("Start should fail when the directory does not exist")
	}
	if err := watcher.Stop(); err != nil {
		t.Errorf("Stop on an unstarted watcher: %v", err)
	}
}

func TestWatcher_DigestMatchesDeliveredBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "value = 1\n")

	var mu sync.Mutex
	var seen []byte
	var rewriteErr error
	loader := func(data []byte) (testConfig, error) {
		mu.Lock()
		defer mu.Unlock()
		seen = slices.Clone(data)
		// Rewrite the file while the first version is being decoded.
		if strings.Contains(string(data), "value = 2") {
			rewriteErr = os.WriteFile(path, []byte("value = 3\n"), 0o644)
		}
		return loadTestConfig(data)
	}

	received := make(chan testConfig, 4)
	watcher := NewWatcher(path, loader, newTestLogger(), WithDebounce[testConfig](50*time.Millisecond))
	watcher.OnReload(func(cfg testConfig) { received <- cfg })
	startWatcher(t, watcher)

	writeFile(t, path, "value = 2\n")

	var got []int
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case cfg := <-received:
			got = append(got, cfg.Value)
		case <-timeout:
			t.Fatalf("reloads = %v, want [2 3]", got)
		}
	}
	if got[0] != 2 || got[1] != 3 {
		t.Errorf("reloads = %v, want [2 3]", got)
	}

	time.Sleep(200 * time.Millisecond)
	select {
	case cfg := <-received:
		t.Errorf("unexpected extra reload with value %d", cfg.Value)
	default:
	}

	mu.Lock()
	defer mu.Unlock()
	if rewriteErr != nil {
		t.Fatal(rewriteErr)
	}
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	if watcher.digest != sha256.Sum256(seen) {
		t.Error("stored digest does not match the last bytes handed to the loader")
	}
}
