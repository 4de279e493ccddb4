//go:build linux && (amd64 || arm64)

package v4l2

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"unsafe"

	"golang.org/x/sys/unix"
)

// SysfsRoot is where video4linux nodes are enumerated.
var SysfsRoot = "/sys/class/video4linux"

// FindDevices runs VIDIOC_QUERYCAP on every video node. Nodes that cannot
// be opened or queried are skipped; a missing sysfs class yields no devices.
func FindDevices() ([]DeviceInfo, error) {
	entries, err := os.ReadDir(SysfsRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []DeviceInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read video4linux directory: %w", err)
	}

	logger := slog.With("component", "v4l2")
	var devices []DeviceInfo

	for _, entry := range entries {
		devicePath := filepath.Join("/dev", entry.Name())
		info, err := QueryCap(devicePath)
		if err != nil {
			logger.Debug("failed to query device capabilities", "path", devicePath, "error", err)
			continue
		}
		devices = append(devices, info)
	}

	sort.Slice(devices, func(i, j int) bool {
		return devices[i].DevicePath < devices[j].DevicePath
	})
	return devices, nil
}

// QueryCap issues VIDIOC_QUERYCAP on devicePath.
func QueryCap(devicePath string) (DeviceInfo, error) {
	fd, err := open(devicePath)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("open %s: %w", devicePath, err)
	}
	defer unix.Close(fd)

	var c Capability
	if err := ioctl(fd, vidiocQuerycap, unsafe.Pointer(&c)); err != nil {
		return DeviceInfo{}, fmt.Errorf("VIDIOC_QUERYCAP %s: %w", devicePath, err)
	}
	return c.info(devicePath), nil
}

func (c *Capability) info(devicePath string) DeviceInfo {
	caps := c.Capabilities
	if caps&CapDeviceCaps != 0 {
		caps = c.DeviceCaps
	}
	return DeviceInfo{
		DevicePath: devicePath,
		Driver:     cstr(c.Driver[:]),
		Card:       cstr(c.Card[:]),
		BusInfo:    cstr(c.BusInfo[:]),
		Version:    c.Version,
		Caps:       caps,
	}
}

// cstr converts a null-terminated byte slice to a Go string.
func cstr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
