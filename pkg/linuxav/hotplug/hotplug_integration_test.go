//go:build linux && integration

package hotplug

import (
	"context"
	"testing"
	"time"
)

// Run with: go test -tags=integration -run TestMonitorIntegration ./pkg/linuxav/hotplug
// and attach a UVC camera or load vivid within the timeout.
func TestMonitorIntegration(t *testing.T) {
	m, err := NewMonitor(SubsystemVideo4Linux, SubsystemDMAHeap)
	if err != nil {
		t.Fatalf("NewMonitor() error: %v", err)
	}
	defer func() { _ = m.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	events := make(chan Event, 10)
	go func() { _ = m.Run(ctx, events) }()

	select {
	case e := <-events:
		t.Logf("event: %s %s node=%s", e.Action, e.Subsystem, e.Node())
	case <-ctx.Done():
		t.Log("no events received")
	}
}
