//go:build linux

// Package v4l2 mirrors the Video4Linux2 records a stateful or stateless
// M2M decoder client exchanges with the kernel, in pure Go with the exact
// layout of linux/videodev2.h and linux/v4l2-controls.h.
//
// This package does not use cgo. Layouts are asserted at compile time for
// linux/amd64 and linux/arm64.
//
// # Records
//
// Each mirrored structure has a matching abiprobe.Record with a pattern
// and a realistic fill table:
//
//	var f v4l2.PixFormatMplane
//	v4l2.PixFormatMplaneRecord.Fill(unsafe.Pointer(&f), abiprobe.ModeRealistic)
//	// f.PlaneFmt[0].Sizeimage == 1920*1080
//
// # Request codes
//
// Request codes are kept as the header literals and re-derived from the
// mirror sizes; Requests lists both so callers can compare them.
//
// # Device Enumeration
//
// FindDevices runs VIDIOC_QUERYCAP on every /dev/video* node, which checks
// the Capability mirror against the running kernel:
//
//	devices, err := v4l2.FindDevices()
//	for _, dev := range devices {
//	    fmt.Printf("%s: %s (%s)\n", dev.DevicePath, dev.Card, dev.Driver)
//	}
package v4l2
