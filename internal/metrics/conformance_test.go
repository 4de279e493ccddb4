package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordMetrics(t *testing.T) {
	Reset()
	SetRecordResult("v4l2_buffer", "v4l2", 88, 0)
	SetRecordResult("drm_mode_crtc", "drm", 100, 2)

	if got := testutil.ToFloat64(recordConformant.WithLabelValues("v4l2_buffer", "v4l2")); got != 1 {
		t.Errorf("conformant(v4l2_buffer) = %v, want 1", got)
	}
	if got := testutil.ToFloat64(recordConformant.WithLabelValues("drm_mode_crtc", "drm")); got != 0 {
		t.Errorf("conformant(drm_mode_crtc) = %v, want 0", got)
	}
	if got := testutil.ToFloat64(recordMismatches.WithLabelValues("drm_mode_crtc")); got != 2 {
		t.Errorf("mismatches(drm_mode_crtc) = %v, want 2", got)
	}
	if got := testutil.ToFloat64(recordSize.WithLabelValues("v4l2_buffer")); got != 88 {
		t.Errorf("size(v4l2_buffer) = %v, want 88", got)
	}

	Reset()
	if got := testutil.CollectAndCount(recordSize); got != 0 {
		t.Errorf("series after Reset = %d, want 0", got)
	}
}

func TestVerifyCompleted(t *testing.T) {
	before := testutil.ToFloat64(verifyRuns.WithLabelValues("fail"))
	at := time.Unix(1700000000, 0)
	VerifyCompleted(at, false)

	if got := testutil.ToFloat64(lastVerify); got != 1700000000 {
		t.Errorf("last verify = %v, want 1700000000", got)
	}
	if got := testutil.ToFloat64(verifyRuns.WithLabelValues("fail")); got != before+1 {
		t.Errorf("fail runs = %v, want %v", got, before+1)
	}
}

func TestWriteTextfile(t *testing.T) {
	Reset()
	SetRecordResult("dma_heap_allocation_data", "dma-heap", 24, 0)
	SetRequestMatch("DMA_HEAP_IOCTL_ALLOC", true)

	path := filepath.Join(t.TempDir(), "abiprobe.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	out := string(data)
	for _, want := range []string{
		`abiprobe_record_conformant{group="dma-heap",record="dma_heap_allocation_data"} 1`,
		`abiprobe_ioctl_request_match{request="DMA_HEAP_IOCTL_ALLOC"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "go_goroutines") {
		t.Error("textfile should not carry Go runtime metrics")
	}
}
