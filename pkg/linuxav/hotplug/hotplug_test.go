//go:build linux

package hotplug

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseUEvent(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  *Event
	}{
		{name: "empty", input: nil},
		{name: "no separator", input: []byte("invalid")},
		{name: "missing action", input: []byte("@/devices/foo")},
		{name: "only nulls", input: []byte{0, 0, 0, 0}},
		{name: "udev rebroadcast", input: []byte("libudev\x00\xfe\xed\xca\xfeadd@/devices/x\x00")},
		{
			name:  "video node added",
			input: []byte("add@/devices/platform/fdea0000.video-codec/video4linux/video0\x00ACTION=add\x00SUBSYSTEM=video4linux\x00DEVNAME=video0\x00SEQNUM=4711\x00"),
			want: &Event{
				Action:    "add",
				KObj:      "/devices/platform/fdea0000.video-codec/video4linux/video0",
				Subsystem: "video4linux",
				DevName:   "video0",
				Seq:       "4711",
				Env: map[string]string{
					"ACTION":    "add",
					"SUBSYSTEM": "video4linux",
					"DEVNAME":   "video0",
					"SEQNUM":    "4711",
				},
			},
		},
		{
			name:  "heap with nested devname",
			input: []byte("add@/devices/virtual/dma_heap/system\x00SUBSYSTEM=dma_heap\x00DEVNAME=dma_heap/system\x00"),
			want: &Event{
				Action:    "add",
				KObj:      "/devices/virtual/dma_heap/system",
				Subsystem: "dma_heap",
				DevName:   "dma_heap/system",
				Env:       map[string]string{"SUBSYSTEM": "dma_heap", "DEVNAME": "dma_heap/system"},
			},
		},
		{
			name:  "drm minor with devtype",
			input: []byte("change@/devices/platform/display-subsystem/drm/card0\x00SUBSYSTEM=drm\x00DEVTYPE=drm_minor\x00HOTPLUG=1\x00"),
			want: &Event{
				Action:    "change",
				KObj:      "/devices/platform/display-subsystem/drm/card0",
				Subsystem: "drm",
				DevType:   "drm_minor",
				Env:       map[string]string{"SUBSYSTEM": "drm", "DEVTYPE": "drm_minor", "HOTPLUG": "1"},
			},
		},
		{
			name:  "value containing equals and empty value",
			input: []byte("bind@/dev/foo\x00KEY=a=b\x00EMPTY=\x00\x00\x00JUNK\x00"),
			want: &Event{
				Action: "bind",
				KObj:   "/dev/foo",
				Env:    map[string]string{"KEY": "a=b", "EMPTY": ""},
			},
		},
		{
			name:  "long kobj",
			input: []byte("add@/devices/" + strings.Repeat("a", 500) + "\x00"),
			want:  &Event{Action: "add", KObj: "/devices/" + strings.Repeat("a", 500), Env: map[string]string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseUEvent(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseUEvent() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEventNode(t *testing.T) {
	tests := []struct {
		devName, want string
	}{
		{"video0", "/dev/video0"},
		{"dma_heap/system", "/dev/dma_heap/system"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := (Event{DevName: tt.devName}).Node(); got != tt.want {
			t.Errorf("Node() for %q = %q, want %q", tt.devName, got, tt.want)
		}
	}
}

func TestMonitorWants(t *testing.T) {
	all := &Monitor{subsystems: map[string]bool{}}
	video := &Monitor{subsystems: map[string]bool{SubsystemVideo4Linux: true, SubsystemDMAHeap: true}}

	tests := []struct {
		name string
		m    *Monitor
		sub  string
		want bool
	}{
		{"no filter passes usb", all, "usb", true},
		{"filter passes video4linux", video, SubsystemVideo4Linux, true},
		{"filter passes dma_heap", video, SubsystemDMAHeap, true},
		{"filter drops drm", video, SubsystemDRM, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.wants(&Event{Subsystem: tt.sub}); got != tt.want {
				t.Errorf("wants(%q) = %v, want %v", tt.sub, got, tt.want)
			}
		})
	}
}

func TestMonitorRunCancelled(t *testing.T) {
	m, err := NewMonitor(SubsystemVideo4Linux)
	if err != nil {
		t.Skipf("netlink unavailable: %v", err)
	}
	defer func() { _ = m.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := make(chan Event, 1)
	if err := m.Run(ctx, events); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if _, open := <-events; open {
		t.Error("events channel left open")
	}
}

func TestMonitorClose(t *testing.T) {
	m, err := NewMonitor()
	if err != nil {
		t.Skipf("netlink unavailable: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := m.Close(); err == nil {
		t.Error("second Close() succeeded")
	}
}
