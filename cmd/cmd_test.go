//go:build linux && (amd64 || arm64)

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/smazurov/abiprobe/internal/config"
	"github.com/smazurov/abiprobe/pkg/linuxav/catalog"
	"github.com/smazurov/abiprobe/pkg/linuxav/v4l2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "abiprobe", SilenceUsage: true, SilenceErrors: true}
	Register(root)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSizesJSON(t *testing.T) {
	out, err := run(t, "sizes", "--json")
	if err != nil {
		t.Fatalf("sizes --json: %v", err)
	}

	var got struct {
		OffTSize int `json:"off_t_size"`
		Records  []struct {
			Key  string `json:"key"`
			Size uint64 `json:"size"`
		} `json:"records"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.OffTSize != 8 {
		t.Errorf("off_t_size = %d, want 8", got.OffTSize)
	}
	if len(got.Records) != len(catalog.All()) {
		t.Errorf("%d records, want %d", len(got.Records), len(catalog.All()))
	}
	for _, r := range got.Records {
		if r.Key == "v4l2_format" && r.Size != 208 {
			t.Errorf("v4l2_format size = %d, want 208", r.Size)
		}
	}
}

func TestSizesTable(t *testing.T) {
	out, err := run(t, "sizes")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "drm_mode_connector") || !strings.Contains(out, "__off_t") {
		t.Errorf("table missing rows:\n%s", out)
	}
}

func TestLayout(t *testing.T) {
	out, err := run(t, "layout", "v4l2_buffer")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"struct v4l2_buffer", "88 bytes", "m.planes", "void *", "__s32"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "layout", "v4l2_nonexistent"); !errors.Is(err, catalog.ErrUnknownRecord) {
		t.Errorf("unknown record error = %v, want ErrUnknownRecord", err)
	}
}

func TestFillDecode(t *testing.T) {
	out, err := run(t, "fill", "drm_mode_crtc", "--mode", "realistic", "--decode")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`mode.name`, `"1920x1080"`, "0x780", "= 256"} {
		if !strings.Contains(out, want) {
			t.Errorf("decode output missing %q:\n%s", want, out)
		}
	}
}

func TestFillHexDump(t *testing.T) {
	out, err := run(t, "fill", "dma_heap_allocation_data")
	if err != nil {
		t.Fatal(err)
	}
	// len = 0xDEADBEEFCAFEBABE little endian
	if !strings.Contains(out, "be ba fe ca ef be ad de") {
		t.Errorf("hex dump missing len pattern:\n%s", out)
	}

	if _, err := run(t, "fill", "dma_heap_allocation_data", "--mode", "bogus"); err == nil {
		t.Error("bogus mode accepted")
	}
}

func TestBaselineCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.toml")
	if _, err := run(t, "baseline", "--out", path, "--libdrm-version", "2.4.120"); err != nil {
		t.Fatal(err)
	}

	b, err := config.LoadBaseline(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.Headers.Libdrm != "2.4.120" {
		t.Errorf("libdrm = %q", b.Headers.Libdrm)
	}
	if len(b.Records) != len(catalog.All()) {
		t.Errorf("%d records, want %d", len(b.Records), len(catalog.All()))
	}
}

func TestDevicesWithoutVideo4Linux(t *testing.T) {
	saved := v4l2.SysfsRoot
	v4l2.SysfsRoot = filepath.Join(t.TempDir(), "absent")
	defer func() { v4l2.SysfsRoot = saved }()

	out, err := run(t, "devices", "--no-alloc")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "DEVICE") {
		t.Errorf("devices output = %q", out)
	}

	if _, err := run(t, "devices", "--heap", filepath.Join(t.TempDir(), "no-heap")); err != nil {
		t.Errorf("missing heap should be skipped, got %v", err)
	}
}
