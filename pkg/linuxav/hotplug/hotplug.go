//go:build linux

// Package hotplug reports kernel uevents for the device classes whose
// records abiprobe mirrors, so newly attached video nodes and heaps can be
// probed as they appear.
//
// Events are read straight from a NETLINK_KOBJECT_UEVENT socket without
// udev or cgo.
package hotplug

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"

	"golang.org/x/sys/unix"
)

// Actions reported by the kernel.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionChange = "change"
	ActionBind   = "bind"
	ActionUnbind = "unbind"
)

// Subsystems carrying the mirrored records.
const (
	SubsystemVideo4Linux = "video4linux"
	SubsystemDMAHeap     = "dma_heap"
	SubsystemDRM         = "drm"
)

// Event is one parsed kernel uevent.
type Event struct {
	Action    string
	KObj      string
	Subsystem string
	DevType   string
	DevName   string // relative to /dev, e.g. "video0" or "dma_heap/system"
	Seq       string
	Env       map[string]string
}

// Node returns the /dev path of the event's device node, or "" when the
// event has none.
func (e Event) Node() string {
	if e.DevName == "" {
		return ""
	}
	return path.Join("/dev", e.DevName)
}

// Monitor reads uevents from the kernel broadcast group.
type Monitor struct {
	fd         int
	subsystems map[string]bool
}

// recvTimeout bounds each receive so Run notices cancellation.
var recvTimeout = unix.Timeval{Sec: 1}

// NewMonitor opens the uevent socket. When subsystems is empty every event
// is delivered.
func NewMonitor(subsystems ...string) (*Monitor, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, unix.NETLINK_KOBJECT_UEVENT)
	if err != nil {
		return nil, err
	}
	if err := unix.Bind(fd, &unix.SockaddrNetlink{Family: unix.AF_NETLINK, Groups: 1}); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &recvTimeout); err != nil {
		unix.Close(fd)
		return nil, err
	}

	m := &Monitor{fd: fd, subsystems: make(map[string]bool, len(subsystems))}
	for _, s := range subsystems {
		m.subsystems[s] = true
	}
	return m, nil
}

// Close releases the socket.
func (m *Monitor) Close() error {
	return unix.Close(m.fd)
}

func (m *Monitor) wants(e *Event) bool {
	return len(m.subsystems) == 0 || m.subsystems[e.Subsystem]
}

// Run delivers matching events until ctx is done or the socket fails.
// events is closed when Run returns.
func (m *Monitor) Run(ctx context.Context, events chan<- Event) error {
	defer close(events)

	buf := make([]byte, 8192)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, _, err := unix.Recvfrom(m.fd, buf, 0)
		switch {
		case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return err
		case n == 0:
			continue
		}

		e := ParseUEvent(buf[:n])
		if e == nil || !m.wants(e) {
			continue
		}

		select {
		case events <- *e:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// libudevMagic starts messages that udevd rebroadcasts with its own header.
var libudevMagic = []byte("libudev\x00")

// ParseUEvent parses "ACTION@KOBJ\0KEY=VALUE\0...". It returns nil for
// messages that are not kernel uevents, including udevd rebroadcasts.
func ParseUEvent(data []byte) *Event {
	if len(data) == 0 || bytes.HasPrefix(data, libudevMagic) {
		return nil
	}

	header, rest, _ := bytes.Cut(data, []byte{0})
	action, kobj, ok := strings.Cut(string(header), "@")
	if !ok || action == "" {
		return nil
	}

	e := &Event{Action: action, KObj: kobj, Env: make(map[string]string)}
	for _, kv := range bytes.Split(rest, []byte{0}) {
		key, value, ok := strings.Cut(string(kv), "=")
		if !ok || key == "" {
			continue
		}
		e.Env[key] = value

		switch key {
		case "SUBSYSTEM":
			e.Subsystem = value
		case "DEVTYPE":
			e.DevType = value
		case "DEVNAME":
			e.DevName = value
		case "SEQNUM":
			e.Seq = value
		}
	}
	return e
}
