package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

// testOptions mirrors the shape of the root command options.
type testOptions struct {
	Config string `help:"Config file path"`

	Baseline      string        `toml:"verify.baseline" env:"BASELINE"`
	Watch         bool          `toml:"verify.watch" env:"WATCH"`
	WatchDebounce time.Duration `toml:"verify.watch_debounce" env:"WATCH_DEBOUNCE"`
	Retries       int           `toml:"verify.retries" env:"RETRIES"`
	Records       []string      `toml:"verify.records" env:"RECORDS"`
	Textfile      string        `toml:"metrics.textfile" env:"TEXTFILE"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abiprobe.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

const testTOML = `
[verify]
baseline = "/etc/abiprobe/baseline.toml"
watch = true
watch_debounce = "2s"
retries = 3
records = ["v4l2_buffer", "drm_mode_crtc"]

[metrics]
textfile = "/var/lib/node_exporter/abiprobe.prom"
`

func TestLoadConfigFromTOML(t *testing.T) {
	opts := &testOptions{Config: writeConfig(t, testTOML)}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := testOptions{
		Config:        opts.Config,
		Baseline:      "/etc/abiprobe/baseline.toml",
		Watch:         true,
		WatchDebounce: 2 * time.Second,
		Retries:       3,
		Records:       []string{"v4l2_buffer", "drm_mode_crtc"},
		Textfile:      "/var/lib/node_exporter/abiprobe.prom",
	}
	if !reflect.DeepEqual(*opts, want) {
		t.Errorf("LoadConfig() = %+v, want %+v", *opts, want)
	}
}

func TestLoadConfigEnvOverridesTOML(t *testing.T) {
	t.Setenv("ABIPROBE_BASELINE", "/tmp/env.toml")
	t.Setenv("ABIPROBE_WATCH", "false")
	t.Setenv("ABIPROBE_WATCH_DEBOUNCE", "250ms")
	t.Setenv("ABIPROBE_RECORDS", "v4l2_format, dma_heap_allocation_data")

	opts := &testOptions{Config: writeConfig(t, testTOML)}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if opts.Baseline != "/tmp/env.toml" {
		t.Errorf("Baseline = %q, want env value", opts.Baseline)
	}
	if opts.Watch {
		t.Error("Watch = true, want env false")
	}
	if opts.WatchDebounce != 250*time.Millisecond {
		t.Errorf("WatchDebounce = %v, want 250ms", opts.WatchDebounce)
	}
	if want := []string{"v4l2_format", "dma_heap_allocation_data"}; !reflect.DeepEqual(opts.Records, want) {
		t.Errorf("Records = %v, want %v", opts.Records, want)
	}
	if opts.Retries != 3 {
		t.Errorf("Retries = %d, want TOML value 3", opts.Retries)
	}
}

func TestLoadConfigCLIWins(t *testing.T) {
	t.Setenv("ABIPROBE_BASELINE", "/tmp/env.toml")

	opts := &testOptions{Config: writeConfig(t, testTOML)}
	cmd := &cobra.Command{Use: "abiprobe"}
	cmd.Flags().StringVar(&opts.Baseline, "baseline", "", "")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "")
	if err := cmd.Flags().Parse([]string{"--baseline", "/tmp/cli.toml"}); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(opts, cmd); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if opts.Baseline != "/tmp/cli.toml" {
		t.Errorf("Baseline = %q, want CLI value", opts.Baseline)
	}
	if !opts.Watch {
		t.Error("Watch = false, want TOML value for an unchanged flag")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	opts := &testOptions{Config: filepath.Join(t.TempDir(), "nonexistent.toml"), Retries: 7}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig should not fail for missing file: %v", err)
	}
	if opts.Retries != 7 {
		t.Errorf("Retries = %d, want default 7", opts.Retries)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	opts := &testOptions{Config: writeConfig(t, "[verify\ninvalid toml syntax\n")}
	if err := LoadConfig(opts, nil); err == nil {
		t.Fatal("LoadConfig should fail for invalid TOML")
	}
}

func TestLoadConfigUnknownKeys(t *testing.T) {
	opts := &testOptions{Config: writeConfig(t, testTOML+`
[verify.extra]
baselin = "typo.toml"

[logging]
level = "debug"
`)}
	err := LoadConfig(opts, nil)
	if !errors.Is(err, ErrUnknownKeys) {
		t.Fatalf("LoadConfig() error = %v, want ErrUnknownKeys", err)
	}
	if !strings.Contains(err.Error(), "logging.level, verify.extra.baselin") {
		t.Errorf("error = %q, want both keys listed in order", err)
	}
	if opts.Baseline != "/etc/abiprobe/baseline.toml" {
		t.Errorf("Baseline = %q, known keys should still apply", opts.Baseline)
	}
}

func TestFlatten(t *testing.T) {
	doc := map[string]any{
		"verify":  map[string]any{"baseline": "b.toml", "watch": true},
		"metrics": map[string]any{},
		"flat":    "x",
	}
	got := make(map[string]any)
	flatten("", doc, got)

	want := map[string]any{"flat": "x", "verify.baseline": "b.toml", "verify.watch": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("flatten() = %v, want %v", got, want)
	}
}

func TestFlagName(t *testing.T) {
	tests := map[string]string{
		"Baseline":      "baseline",
		"WatchDebounce": "watch-debounce",
		"LoggingLevel":  "logging-level",
	}
	for in, want := range tests {
		if got := flagName(in); got != want {
			t.Errorf("flagName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAssignCoercion(t *testing.T) {
	var opts testOptions
	v := reflect.ValueOf(&opts).Elem()

	assign(v.FieldByName("Retries"), "5")
	assign(v.FieldByName("Watch"), true)
	assign(v.FieldByName("WatchDebounce"), "1s")
	assign(v.FieldByName("Records"), []any{"v4l2_buffer"})
	assign(v.FieldByName("Textfile"), int64(3))

	want := testOptions{
		Retries:       5,
		Watch:         true,
		WatchDebounce: time.Second,
		Records:       []string{"v4l2_buffer"},
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("assign() = %+v, want %+v", opts, want)
	}
}
