package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// reset clears package state and routes handler output to buf.
func reset(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	mutex.Lock()
	moduleLoggers = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	isInitialized = false
	globalConfig = Config{}
	saved := output
	output = buf
	mutex.Unlock()

	t.Cleanup(func() {
		mutex.Lock()
		output = saved
		mutex.Unlock()
	})
}

func TestModuleLevelOverride(t *testing.T) {
	var buf bytes.Buffer
	reset(t, &buf)

	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			ModuleVerify:  "debug",
			ModuleDevices: "warn",
		},
	})

	tests := []struct {
		module    string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{ModuleVerify, true, true, true},
		{ModuleDevices, false, false, true},
		{ModuleProbe, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			handler := GetLogger(tt.module).Handler()

			gotDebug := handler.Enabled(context.Background(), slog.LevelDebug)
			gotInfo := handler.Enabled(context.Background(), slog.LevelInfo)
			gotWarn := handler.Enabled(context.Background(), slog.LevelWarn)

			if gotDebug != tt.wantDebug {
				t.Errorf("module %q: Debug enabled = %v, want %v", tt.module, gotDebug, tt.wantDebug)
			}
			if gotInfo != tt.wantInfo {
				t.Errorf("module %q: Info enabled = %v, want %v", tt.module, gotInfo, tt.wantInfo)
			}
			if gotWarn != tt.wantWarn {
				t.Errorf("module %q: Warn enabled = %v, want %v", tt.module, gotWarn, tt.wantWarn)
			}
		})
	}
}

func TestModuleOutput(t *testing.T) {
	var buf bytes.Buffer
	reset(t, &buf)

	Initialize(Config{Level: "debug", Format: "text"})
	GetLogger(ModuleProbe).Debug("filled record", "key", "v4l2_buffer")

	out := buf.String()
	if !strings.Contains(out, "filled record") {
		t.Errorf("message not written. Output: %s", out)
	}
	if !strings.Contains(out, "module=probe") || !strings.Contains(out, "key=v4l2_buffer") {
		t.Errorf("attributes missing. Output: %s", out)
	}
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("Debug level not in output. Output: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	reset(t, &buf)

	Initialize(Config{Level: "info", Format: "json"})
	GetLogger(ModuleConfig).Info("baseline loaded")

	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"module":"config"`) {
		t.Errorf("expected JSON output, got %s", buf.String())
	}
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	var buf bytes.Buffer
	reset(t, &buf)

	loggerBefore := GetLogger(ModuleVerify)
	handlerBefore := loggerBefore.Handler()

	if handlerBefore.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Logger created before Initialize should NOT have debug enabled")
	}

	Initialize(Config{
		Level:   "info",
		Format:  "text",
		Modules: map[string]string{ModuleVerify: "debug"},
	})

	if loggerAfter := GetLogger(ModuleVerify); loggerBefore != loggerAfter {
		t.Error("Logger should be cached - same pointer before and after Initialize")
	}
	if !handlerBefore.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Cached logger should have debug enabled after Initialize updates LevelVar")
	}
}

func TestSetModuleLevel(t *testing.T) {
	var buf bytes.Buffer
	reset(t, &buf)
	Initialize(Config{Level: "info"})

	if SetModuleLevel(ModuleDevices, "loud") {
		t.Error("SetModuleLevel accepted an invalid level")
	}
	if !SetModuleLevel(ModuleDevices, "debug") {
		t.Fatal("SetModuleLevel rejected debug")
	}
	if !GetLogger(ModuleDevices).Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug not enabled after SetModuleLevel")
	}
}

func TestMultiHandlerDebugOutput(t *testing.T) {
	var buf bytes.Buffer

	debugHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	infoHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(NewMultiHandler(debugHandler, infoHandler)).With("module", "test")
	logger.Debug("debug only message")

	if count := strings.Count(buf.String(), "debug only message"); count != 1 {
		t.Errorf("Expected 1 debug message, got %d. Output: %s", count, buf.String())
	}
}

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error {
	return h.err
}

func TestMultiHandlerErrors(t *testing.T) {
	var buf bytes.Buffer
	errJournal := errors.New("journal down")

	text := slog.NewTextHandler(&buf, nil)
	multi := NewMultiHandler(failingHandler{Handler: text, err: errJournal}, text)

	err := multi.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "still written", 0))
	if !errors.Is(err, errJournal) {
		t.Errorf("Handle() error = %v, want %v", err, errJournal)
	}
	if !strings.Contains(buf.String(), "still written") {
		t.Errorf("second handler skipped after failure. Output: %s", buf.String())
	}
}

func TestAddAttrToFields(t *testing.T) {
	fields := make(map[string]string)
	addAttrToFields(fields, slog.String("key", "drm_mode_crtc"), nil)
	addAttrToFields(fields, slog.Int("size", 100), []string{"record"})
	addAttrToFields(fields, slog.Group("mismatch", slog.Bool("fatal", true)), nil)
	addAttrToFields(fields, slog.Attr{}, nil)
	addAttrToFields(fields, slog.Any("error", errors.New("ENOTTY")), nil)
	addAttrToFields(fields, slog.String("fmt.pix_mp", "x"), nil)
	addAttrToFields(fields, slog.Float64("ratio", 0.5), nil)
	addAttrToFields(fields, slog.Duration("debounce", 500*time.Millisecond), nil)

	want := map[string]string{
		"KEY":            "drm_mode_crtc",
		"RECORD_SIZE":    "100",
		"MISMATCH_FATAL": "true",
		"ERROR":          "ENOTTY",
		"FMT_PIX_MP":     "x",
		"RATIO":          "0.5",
		"DEBOUNCE":       "500ms",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestJournalKey(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"record"}, "RECORD"},
		{[]string{"mismatch", "field"}, "MISMATCH_FIELD"},
		{[]string{"_private"}, "PRIVATE"},
		{[]string{"9lives"}, "F_9LIVES"},
		{[]string{"m.planes[0]"}, "M_PLANES_0_"},
		{[]string{"__"}, ""},
	}
	for _, tt := range tests {
		if got := journalKey(tt.parts); got != tt.want {
			t.Errorf("journalKey(%q) = %q, want %q", tt.parts, got, tt.want)
		}
	}
}

func TestJournalHandlerWithAttrs(t *testing.T) {
	h := NewJournalHandler(slog.LevelInfo)
	withRecord := h.WithAttrs([]slog.Attr{slog.String("module", "verify")}).(*JournalHandler)
	grouped := withRecord.WithGroup("mismatch").WithAttrs([]slog.Attr{slog.String("field", "length")}).(*JournalHandler)

	if len(h.fields) != 0 {
		t.Errorf("base handler fields = %v, want none", h.fields)
	}
	want := map[string]string{"MODULE": "verify", "MISMATCH_FIELD": "length"}
	if diff := cmp.Diff(want, grouped.fields); diff != "" {
		t.Errorf("grouped fields mismatch (-want +got):\n%s", diff)
	}
	if _, ok := withRecord.fields["MISMATCH_FIELD"]; ok {
		t.Error("WithAttrs on a derived handler leaked into its parent")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug enabled at info level")
	}
}

func TestParseLevelValues(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		isNil bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"invalid", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLevel(tt.input)
			if tt.isNil {
				if got != nil {
					t.Errorf("parseLevel(%q) = %v, want nil", tt.input, *got)
				}
			} else {
				if got == nil {
					t.Errorf("parseLevel(%q) = nil, want %v", tt.input, tt.want)
				} else if *got != tt.want {
					t.Errorf("parseLevel(%q) = %v, want %v", tt.input, *got, tt.want)
				}
			}
		})
	}
}
