//go:build linux && (amd64 || arm64)

package drm

import (
	"slices"

	"github.com/smazurov/abiprobe/pkg/abiprobe"
)

// Realistic topology shared by the tables: one HDMI connector driven by a
// TMDS encoder on the first CRTC, scanning out a 1920x1080 XRGB8888 buffer.
const (
	realCrtcID      = 41
	realEncoderID   = 31
	realConnectorID = 33
	realPlaneID     = 35
	realFbID        = 50
	realWidth       = 1920
	realHeight      = 1080
	realGammaSize   = 256
)

// mode1080p60 is the CEA-861 VIC 16 timing.
func mode1080p60(prefix string) []abiprobe.Assignment {
	p := func(name string) string {
		if prefix == "" {
			return name
		}
		return prefix + "." + name
	}
	return []abiprobe.Assignment{
		abiprobe.Set(p("clock"), 148500),
		abiprobe.Set(p("hdisplay"), 1920),
		abiprobe.Set(p("hsync_start"), 2008),
		abiprobe.Set(p("hsync_end"), 2052),
		abiprobe.Set(p("htotal"), 2200),
		abiprobe.Set(p("hskew"), 0),
		abiprobe.Set(p("vdisplay"), 1080),
		abiprobe.Set(p("vsync_start"), 1084),
		abiprobe.Set(p("vsync_end"), 1089),
		abiprobe.Set(p("vtotal"), 1125),
		abiprobe.Set(p("vscan"), 0),
		abiprobe.Set(p("vrefresh"), 60),
		abiprobe.Set(p("flags"), ModeFlagPHSync|ModeFlagPVSync),
		abiprobe.Set(p("type"), ModeTypeDriver|ModeTypePreferred),
		abiprobe.Text(p("name"), "1920x1080"),
	}
}

// ModeResRecord describes drmModeRes.
var ModeResRecord = abiprobe.MustDescribe[ModeRes]("drm_mode_res", "drmModeRes").
	Pattern(
		abiprobe.Set("count_fbs", 0xDEAD),
		abiprobe.Null("fbs"),
		abiprobe.Set("count_crtcs", 0xBEEF),
		abiprobe.Null("crtcs"),
		abiprobe.Set("count_connectors", 0xCAFE),
		abiprobe.Null("connectors"),
		abiprobe.Set("count_encoders", 0xBABE),
		abiprobe.Null("encoders"),
		abiprobe.Set("min_width", 0x12345678),
		abiprobe.Set("max_width", 0x87654321),
		abiprobe.Set("min_height", 0xFEDCBA98),
		abiprobe.Set("max_height", 0x89ABCDEF),
	).
	Realistic(
		// counts stay zero: the arrays they size are not populated
		abiprobe.Set("count_fbs", 0),
		abiprobe.Null("fbs"),
		abiprobe.Set("count_crtcs", 0),
		abiprobe.Null("crtcs"),
		abiprobe.Set("count_connectors", 0),
		abiprobe.Null("connectors"),
		abiprobe.Set("count_encoders", 0),
		abiprobe.Null("encoders"),
		abiprobe.Set("min_width", 320),
		abiprobe.Set("max_width", 4096),
		abiprobe.Set("min_height", 200),
		abiprobe.Set("max_height", 4096),
	)

// ModeEncoderRecord describes drmModeEncoder.
var ModeEncoderRecord = abiprobe.MustDescribe[ModeEncoder]("drm_mode_encoder", "drmModeEncoder").
	Pattern(
		abiprobe.Set("encoder_id", 0xDEADBEEF),
		abiprobe.Set("encoder_type", 0xCAFE),
		abiprobe.Set("crtc_id", 0xBABEFACE),
		abiprobe.Set("possible_crtcs", 0x12345678),
		abiprobe.Set("possible_clones", 0x87654321),
	).
	Realistic(
		abiprobe.Set("encoder_id", realEncoderID),
		abiprobe.Set("encoder_type", EncoderTMDS),
		abiprobe.Set("crtc_id", realCrtcID),
		abiprobe.Set("possible_crtcs", 0x3),
		abiprobe.Set("possible_clones", 0x0),
	)

// ModeConnectorRecord describes drmModeConnector.
var ModeConnectorRecord = abiprobe.MustDescribe[ModeConnector]("drm_mode_connector", "drmModeConnector").
	Pattern(
		abiprobe.Set("connector_id", 0xFEEDFACE),
		abiprobe.Set("encoder_id", 0xDEADBEEF),
		abiprobe.Set("connector_type", 0xCAFEBABE),
		abiprobe.Set("connector_type_id", 0x12345),
		abiprobe.Set("connection", 0xABCD),
		abiprobe.Set("mmWidth", 0x11223344),
		abiprobe.Set("mmHeight", 0x55667788),
		abiprobe.Set("subpixel", 0x9900AABB),
		abiprobe.Set("count_modes", 0xCCDDEEFF),
		abiprobe.Null("modes"),
		abiprobe.Set("count_props", 0x13579BDF),
		abiprobe.Null("props"),
		abiprobe.Null("prop_values"),
		abiprobe.Set("count_encoders", 0x2468ACE0),
		abiprobe.Null("encoders"),
	).
	Realistic(
		abiprobe.Set("connector_id", realConnectorID),
		abiprobe.Set("encoder_id", realEncoderID),
		abiprobe.Set("connector_type", ConnectorHDMIA),
		abiprobe.Set("connector_type_id", 1),
		abiprobe.Set("connection", ModeConnected),
		abiprobe.Set("mmWidth", 527),
		abiprobe.Set("mmHeight", 296),
		abiprobe.Set("subpixel", SubpixelUnknown),
		abiprobe.Set("count_modes", 0),
		abiprobe.Null("modes"),
		abiprobe.Set("count_props", 0),
		abiprobe.Null("props"),
		abiprobe.Null("prop_values"),
		abiprobe.Set("count_encoders", 0),
		abiprobe.Null("encoders"),
	)

// ModeCrtcRecord describes drmModeCrtc.
var ModeCrtcRecord = abiprobe.MustDescribe[ModeCrtc]("drm_mode_crtc", "drmModeCrtc").
	Pattern(
		abiprobe.Set("crtc_id", 0xDEADBEEF),
		abiprobe.Set("buffer_id", 0xCAFEBABE),
		abiprobe.Set("x", 0x12345678),
		abiprobe.Set("y", 0x87654321),
		abiprobe.Set("width", 0xFEDCBA98),
		abiprobe.Set("height", 0x89ABCDEF),
		abiprobe.Set("mode_valid", 0xABCDEF01),
		abiprobe.Set("mode.clock", 0x12345678),
		abiprobe.Set("mode.hdisplay", 0x1111),
		abiprobe.Set("mode.hsync_start", 0x2222),
		abiprobe.Set("mode.hsync_end", 0x3333),
		abiprobe.Set("mode.htotal", 0x4444),
		abiprobe.Set("mode.hskew", 0x5555),
		abiprobe.Set("mode.vdisplay", 0x6666),
		abiprobe.Set("mode.vsync_start", 0x7777),
		abiprobe.Set("mode.vsync_end", 0x8888),
		abiprobe.Set("mode.vtotal", 0x9999),
		abiprobe.Set("mode.vscan", 0xAAAA),
		abiprobe.Set("mode.vrefresh", 0xBBBB),
		abiprobe.Set("mode.flags", 0xCCCCCCCC),
		abiprobe.Set("mode.type", 0xDDDDDDDD),
		abiprobe.Text("mode.name", "TEST_MODE_PATTERN_12345"),
		abiprobe.Set("gamma_size", 0xEEEEEEEE),
	).
	Realistic(slices.Concat(
		[]abiprobe.Assignment{
			abiprobe.Set("crtc_id", realCrtcID),
			abiprobe.Set("buffer_id", realFbID),
			abiprobe.Set("x", 0),
			abiprobe.Set("y", 0),
			abiprobe.Set("width", realWidth),
			abiprobe.Set("height", realHeight),
			abiprobe.Set("mode_valid", 1),
		},
		mode1080p60("mode"),
		[]abiprobe.Assignment{
			abiprobe.Set("gamma_size", realGammaSize),
		},
	)...)

// ModeInfoRecord describes drmModeModeInfo.
var ModeInfoRecord = abiprobe.MustDescribe[ModeInfo]("drm_mode_mode_info", "drmModeModeInfo").
	Pattern(
		abiprobe.Set("clock", 0x11111111),
		abiprobe.Set("hdisplay", 0x2222),
		abiprobe.Set("hsync_start", 0x3333),
		abiprobe.Set("hsync_end", 0x4444),
		abiprobe.Set("htotal", 0x5555),
		abiprobe.Set("hskew", 0x6666),
		abiprobe.Set("vdisplay", 0x7777),
		abiprobe.Set("vsync_start", 0x8888),
		abiprobe.Set("vsync_end", 0x9999),
		abiprobe.Set("vtotal", 0xAAAA),
		abiprobe.Set("vscan", 0xBBBB),
		abiprobe.Set("vrefresh", 0xCCCC),
		abiprobe.Set("flags", 0xDDDDDDDD),
		abiprobe.Set("type", 0xEEEEEEEE),
		abiprobe.Text("name", "TEST_MODE_INFO_ABCDEF"),
	).
	Realistic(mode1080p60("")...)

// ModePlaneRecord describes drmModePlane.
var ModePlaneRecord = abiprobe.MustDescribe[ModePlane]("drm_mode_plane", "drmModePlane").
	Pattern(
		abiprobe.Set("count_formats", 0xDEADC0DE),
		abiprobe.Null("formats"),
		abiprobe.Set("plane_id", 0xFEEDBEEF),
		abiprobe.Set("crtc_id", 0xCAFED00D),
		abiprobe.Set("fb_id", 0xBADDCAFE),
		abiprobe.Set("crtc_x", 0x12121212),
		abiprobe.Set("crtc_y", 0x34343434),
		abiprobe.Set("x", 0x56565656),
		abiprobe.Set("y", 0x78787878),
		abiprobe.Set("possible_crtcs", 0x9ABCDEF0),
		abiprobe.Set("gamma_size", 0x13579BDF),
	).
	Realistic(
		abiprobe.Set("count_formats", 0),
		abiprobe.Null("formats"),
		abiprobe.Set("plane_id", realPlaneID),
		abiprobe.Set("crtc_id", realCrtcID),
		abiprobe.Set("fb_id", realFbID),
		abiprobe.Set("crtc_x", 0),
		abiprobe.Set("crtc_y", 0),
		abiprobe.Set("x", 0),
		abiprobe.Set("y", 0),
		abiprobe.Set("possible_crtcs", 0x1),
		abiprobe.Set("gamma_size", 0),
	)

// ModeFBRecord describes drmModeFB.
var ModeFBRecord = abiprobe.MustDescribe[ModeFB]("drm_mode_fb", "drmModeFB").
	Pattern(
		abiprobe.Set("fb_id", 0xFACADE00),
		abiprobe.Set("width", 0xDEADBEEF),
		abiprobe.Set("height", 0xCAFEBABE),
		abiprobe.Set("pitch", 0x12345678),
		abiprobe.Set("bpp", 0x87654321),
		abiprobe.Set("depth", 0xFEDCBA98),
		abiprobe.Set("handle", 0x89ABCDEF),
	).
	Realistic(
		abiprobe.Set("fb_id", realFbID),
		abiprobe.Set("width", realWidth),
		abiprobe.Set("height", realHeight),
		abiprobe.Set("pitch", realWidth*4),
		abiprobe.Set("bpp", 32),
		abiprobe.Set("depth", 24),
		abiprobe.Set("handle", 1),
	)

// Records returns every DRM record in header order.
func Records() []*abiprobe.Record {
	return []*abiprobe.Record{
		ModeResRecord,
		ModeEncoderRecord,
		ModeConnectorRecord,
		ModeCrtcRecord,
		ModeInfoRecord,
		ModePlaneRecord,
		ModeFBRecord,
	}
}
