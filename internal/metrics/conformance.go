// Package metrics exposes conformance results as Prometheus gauges for the
// node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds only abiprobe metrics, so a textfile never repeats the
// go_ and process_ series node-exporter already exports.
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	recordConformant = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "abiprobe",
		Subsystem: "record",
		Name:      "conformant",
		Help:      "1 when the record layout matches the baseline, 0 otherwise",
	}, []string{"record", "group"})

	recordSize = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "abiprobe",
		Subsystem: "record",
		Name:      "size_bytes",
		Help:      "Size of the record mirror in bytes",
	}, []string{"record"})

	recordMismatches = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "abiprobe",
		Subsystem: "record",
		Name:      "mismatches",
		Help:      "Number of layout mismatches against the baseline",
	}, []string{"record"})

	requestMatch = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "abiprobe",
		Subsystem: "ioctl",
		Name:      "request_match",
		Help:      "1 when the request code derived from the mirror equals the header constant",
	}, []string{"request"})

	lastVerify = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "abiprobe",
		Name:      "last_verify_timestamp_seconds",
		Help:      "Unix time of the last completed verification",
	})

	verifyRuns = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "abiprobe",
		Name:      "verify_runs_total",
		Help:      "Verification runs by outcome",
	}, []string{"result"})
)

// SetRecordResult records the outcome of verifying one record.
func SetRecordResult(record, group string, size uintptr, mismatches int) {
	recordSize.WithLabelValues(record).Set(float64(size))
	recordMismatches.WithLabelValues(record).Set(float64(mismatches))
	recordConformant.WithLabelValues(record, group).Set(boolGauge(mismatches == 0))
}

// SetRequestMatch records whether a derived request code matches its header.
func SetRequestMatch(request string, ok bool) {
	requestMatch.WithLabelValues(request).Set(boolGauge(ok))
}

// VerifyCompleted stamps a finished run.
func VerifyCompleted(at time.Time, ok bool) {
	lastVerify.Set(float64(at.Unix()))
	result := "fail"
	if ok {
		result = "pass"
	}
	verifyRuns.WithLabelValues(result).Inc()
}

// Reset drops every per-record and per-request series, e.g. before a run
// against a baseline that may list different records.
func Reset() {
	recordConformant.Reset()
	recordSize.Reset()
	recordMismatches.Reset()
	requestMatch.Reset()
}

// WriteTextfile writes the registry in text exposition format. The file is
// replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
