package config

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher follows one file and hands every new version, decoded by the
// caller's loader, to the registered handlers. The loader gets the bytes
// that were digested, so the digest always matches the delivered value.
//
// The parent directory is watched rather than the file, so a file replaced
// by rename (SaveBaseline, most editors) keeps being followed. A change
// that leaves the content byte-identical does not reload.
type Watcher[T any] struct {
	path     string
	debounce time.Duration
	loader   func(data []byte) (T, error)
	onError  func(error)
	logger   *slog.Logger

	mu       sync.Mutex
	handlers map[int]func(T)
	nextID   int
	digest   [sha256.Size]byte

	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	done   chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption[T any] func(*Watcher[T])

// WithDebounce sets how long the file must stay quiet before it is
// reloaded. Default is 500ms.
func WithDebounce[T any](d time.Duration) WatcherOption[T] {
	return func(w *Watcher[T]) {
		w.debounce = d
	}
}

// WithErrorHandler sets a callback for load errors.
// If not set, errors are only logged.
func WithErrorHandler[T any](handler func(error)) WatcherOption[T] {
	return func(w *Watcher[T]) {
		w.onError = handler
	}
}

// NewWatcher creates a typed file watcher.
func NewWatcher[T any](
	path string,
	loader func(data []byte) (T, error),
	logger *slog.Logger,
	opts ...WatcherOption[T],
) *Watcher[T] {
	w := &Watcher[T]{
		path:     filepath.Clean(path),
		debounce: 500 * time.Millisecond,
		loader:   loader,
		logger:   logger,
		handlers: make(map[int]func(T)),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnReload registers a handler for new versions of the file and returns
// the function that removes it.
func (w *Watcher[T]) OnReload(handler func(T)) func() {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.handlers[id] = handler
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.handlers, id)
		w.mu.Unlock()
	}
}

// Start begins watching. The content present now is the reference a
// change is compared against; it is not delivered to handlers.
func (w *Watcher[T]) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.fsw = fsw

	if data, err := os.ReadFile(w.path); err == nil {
		w.digest = sha256.Sum256(data)
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.logger.Info("Watching file", "path", w.path, "debounce", w.debounce)
	go w.run(ctx)
	return nil
}

// Stop stops watching, waits for the loop to exit and releases the watcher.
func (w *Watcher[T]) Stop() error {
	if w.fsw == nil {
		return nil
	}
	w.cancel()
	<-w.done
	return w.fsw.Close()
}

// Done is closed when the watch loop exits.
func (w *Watcher[T]) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher[T]) run(ctx context.Context) {
	defer close(w.done)

	quiet := time.NewTimer(w.debounce)
	quiet.Stop()
	defer quiet.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Watcher stopped", "path", w.path)
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			switch {
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
				w.logger.Debug("File changed", "path", w.path, "op", ev.Op.String())
				quiet.Reset(w.debounce)
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				// A rename-over is followed by Create for the same name.
				w.logger.Debug("File moved away", "path", w.path, "op", ev.Op.String())
			}

		case <-quiet.C:
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", "path", w.path, "error", err)
		}
	}
}

// reload loads the file fresh and hands it to every handler, unless the
// bytes are the ones already delivered.
func (w *Watcher[T]) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.fail(err)
		return
	}
	digest := sha256.Sum256(data)

	w.mu.Lock()
	same := bytes.Equal(digest[:], w.digest[:])
	w.mu.Unlock()
	if same {
		w.logger.Debug("File content unchanged", "path", w.path)
		return
	}

	value, err := w.loader(data)
	if err != nil {
		w.fail(fmt.Errorf("%s: %w", w.path, err))
		return
	}

	w.mu.Lock()
	w.digest = digest
	handlers := make([]func(T), 0, len(w.handlers))
	for id := 0; id < w.nextID; id++ {
		if h, ok := w.handlers[id]; ok {
			handlers = append(handlers, h)
		}
	}
	w.mu.Unlock()

	w.logger.Info("File reloaded", "path", w.path, "handlers", len(handlers))
	for _, h := range handlers {
		h(value)
	}
}

func (w *Watcher[T]) fail(err error) {
	w.logger.Warn("Failed to load watched file", "path", w.path, "error", err)
	if w.onError != nil {
		w.onError(err)
	}
}
