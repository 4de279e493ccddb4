//go:build nativeheaders && libdrm && cgo && linux && (amd64 || arm64)

package nativeabi

/*
#cgo pkg-config: libdrm
#include <stddef.h>
#include <xf86drmMode.h>

typedef struct {
	const char *key;
	size_t size;
	size_t align;
} libdrm_type;

typedef struct {
	const char *key;
	const char *member;
	size_t offset;
} libdrm_member;

#define T(k, t) { k, sizeof(t), _Alignof(t) }
#define M(k, t, m) { k, #m, offsetof(t, m) }

static const libdrm_type libdrm_types[] = {
	T("drm_mode_res", drmModeRes),
	T("drm_mode_encoder", drmModeEncoder),
	T("drm_mode_connector", drmModeConnector),
	T("drm_mode_crtc", drmModeCrtc),
	T("drm_mode_mode_info", drmModeModeInfo),
	T("drm_mode_plane", drmModePlane),
	T("drm_mode_fb", drmModeFB),
};

static const libdrm_member libdrm_members[] = {
	M("drm_mode_res", drmModeRes, count_fbs),
	M("drm_mode_res", drmModeRes, fbs),
	M("drm_mode_res", drmModeRes, count_crtcs),
	M("drm_mode_res", drmModeRes, crtcs),
	M("drm_mode_res", drmModeRes, count_connectors),
	M("drm_mode_res", drmModeRes, connectors),
	M("drm_mode_res", drmModeRes, count_encoders),
	M("drm_mode_res", drmModeRes, encoders),
	M("drm_mode_res", drmModeRes, min_width),
	M("drm_mode_res", drmModeRes, max_width),
	M("drm_mode_res", drmModeRes, min_height),
	M("drm_mode_res", drmModeRes, max_height),
	M("drm_mode_encoder", drmModeEncoder, encoder_id),
	M("drm_mode_encoder", drmModeEncoder, encoder_type),
	M("drm_mode_encoder", drmModeEncoder, crtc_id),
	M("drm_mode_encoder", drmModeEncoder, possible_crtcs),
	M("drm_mode_encoder", drmModeEncoder, possible_clones),
	M("drm_mode_connector", drmModeConnector, connector_id),
	M("drm_mode_connector", drmModeConnector, encoder_id),
	M("drm_mode_connector", drmModeConnector, connector_type),
	M("drm_mode_connector", drmModeConnector, connector_type_id),
	M("drm_mode_connector", drmModeConnector, connection),
	M("drm_mode_connector", drmModeConnector, mmWidth),
	M("drm_mode_connector", drmModeConnector, mmHeight),
	M("drm_mode_connector", drmModeConnector, subpixel),
	M("drm_mode_connector", drmModeConnector, count_modes),
	M("drm_mode_connector", drmModeConnector, modes),
	M("drm_mode_connector", drmModeConnector, count_props),
	M("drm_mode_connector", drmModeConnector, props),
	M("drm_mode_connector", drmModeConnector, prop_values),
	M("drm_mode_connector", drmModeConnector, count_encoders),
	M("drm_mode_connector", drmModeConnector, encoders),
	M("drm_mode_crtc", drmModeCrtc, crtc_id),
	M("drm_mode_crtc", drmModeCrtc, buffer_id),
	M("drm_mode_crtc", drmModeCrtc, x),
	M("drm_mode_crtc", drmModeCrtc, y),
	M("drm_mode_crtc", drmModeCrtc, width),
	M("drm_mode_crtc", drmModeCrtc, height),
	M("drm_mode_crtc", drmModeCrtc, mode_valid),
	M("drm_mode_crtc", drmModeCrtc, mode.clock),
	M("drm_mode_crtc", drmModeCrtc, mode.name),
	M("drm_mode_crtc", drmModeCrtc, gamma_size),
	M("drm_mode_mode_info", drmModeModeInfo, clock),
	M("drm_mode_mode_info", drmModeModeInfo, hdisplay),
	M("drm_mode_mode_info", drmModeModeInfo, hsync_start),
	M("drm_mode_mode_info", drmModeModeInfo, hsync_end),
	M("drm_mode_mode_info", drmModeModeInfo, htotal),
	M("drm_mode_mode_info", drmModeModeInfo, hskew),
	M("drm_mode_mode_info", drmModeModeInfo, vdisplay),
	M("drm_mode_mode_info", drmModeModeInfo, vsync_start),
	M("drm_mode_mode_info", drmModeModeInfo, vsync_end),
	M("drm_mode_mode_info", drmModeModeInfo, vtotal),
	M("drm_mode_mode_info", drmModeModeInfo, vscan),
	M("drm_mode_mode_info", drmModeModeInfo, vrefresh),
	M("drm_mode_mode_info", drmModeModeInfo, flags),
	M("drm_mode_mode_info", drmModeModeInfo, type),
	M("drm_mode_mode_info", drmModeModeInfo, name),
	M("drm_mode_plane", drmModePlane, count_formats),
	M("drm_mode_plane", drmModePlane, formats),
	M("drm_mode_plane", drmModePlane, plane_id),
	M("drm_mode_plane", drmModePlane, crtc_id),
	M("drm_mode_plane", drmModePlane, fb_id),
	M("drm_mode_plane", drmModePlane, crtc_x),
	M("drm_mode_plane", drmModePlane, crtc_y),
	M("drm_mode_plane", drmModePlane, x),
	M("drm_mode_plane", drmModePlane, y),
	M("drm_mode_plane", drmModePlane, possible_crtcs),
	M("drm_mode_plane", drmModePlane, gamma_size),
	M("drm_mode_fb", drmModeFB, fb_id),
	M("drm_mode_fb", drmModeFB, width),
	M("drm_mode_fb", drmModeFB, height),
	M("drm_mode_fb", drmModeFB, pitch),
	M("drm_mode_fb", drmModeFB, bpp),
	M("drm_mode_fb", drmModeFB, depth),
	M("drm_mode_fb", drmModeFB, handle),
};

static const size_t libdrm_types_len = sizeof(libdrm_types) / sizeof(libdrm_types[0]);
static const size_t libdrm_members_len = sizeof(libdrm_members) / sizeof(libdrm_members[0]);
*/
import "C"

import "unsafe"

// HasLibdrm reports whether the libdrm records are compared.
const HasLibdrm = true

func drmTypes(out map[string]Type) {
	for _, t := range unsafe.Slice(&C.libdrm_types[0], C.libdrm_types_len) {
		out[C.GoString(t.key)] = Type{Size: uintptr(t.size), Align: uintptr(t.align)}
	}
}

func drmMembers(out []Member) []Member {
	for _, m := range unsafe.Slice(&C.libdrm_members[0], C.libdrm_members_len) {
		out = append(out, Member{Key: C.GoString(m.key), Name: C.GoString(m.member), Offset: uintptr(m.offset)})
	}
	return out
}
