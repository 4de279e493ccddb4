//go:build linux

// Package drm mirrors the libdrm mode-setting records from xf86drmMode.h
// (drmModeRes, drmModeEncoder, drmModeConnector, drmModeCrtc,
// drmModeModeInfo, drmModePlane, drmModeFB) as Go structs with the same
// layout, and registers a pattern and a realistic fill table for each.
//
// These are the libdrm userspace records, not the kernel's drm_mode_*
// ioctl arguments: they carry real pointers to variable-length arrays
// (fbs, crtcs, modes, props, formats...) which the probe never populates.
//
// Layouts are asserted for linux/amd64 and linux/arm64 only.
package drm
