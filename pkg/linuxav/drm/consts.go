//go:build linux

package drm

// DisplayModeLen is DRM_DISPLAY_MODE_LEN, the capacity of a mode name.
const DisplayModeLen = 32

// drmModeConnection.
const (
	ModeConnected         = 1
	ModeDisconnected      = 2
	ModeUnknownConnection = 3
)

// drmModeSubPixel.
const (
	SubpixelUnknown       = 1
	SubpixelHorizontalRGB = 2
	SubpixelHorizontalBGR = 3
	SubpixelVerticalRGB   = 4
	SubpixelVerticalBGR   = 5
	SubpixelNone          = 6
)

// Encoder types (DRM_MODE_ENCODER_*).
const (
	EncoderNone  = 0
	EncoderDAC   = 1
	EncoderTMDS  = 2
	EncoderLVDS  = 3
	EncoderTVDAC = 4
	EncoderVirt  = 5
	EncoderDSI   = 6
	EncoderDPMST = 7
	EncoderDPI   = 8
)

// Connector types (DRM_MODE_CONNECTOR_*).
const (
	ConnectorUnknown     = 0
	ConnectorVGA         = 1
	ConnectorDVII        = 2
	ConnectorDVID        = 3
	ConnectorComposite   = 5
	ConnectorLVDS        = 7
	ConnectorDisplayPort = 10
	ConnectorHDMIA       = 11
	ConnectorHDMIB       = 12
	ConnectorEDP         = 14
	ConnectorVirtual     = 15
	ConnectorDSI         = 16
	ConnectorDPI         = 17
	ConnectorWriteback   = 18
)

// Mode flags (DRM_MODE_FLAG_*).
const (
	ModeFlagPHSync    = 1 << 0
	ModeFlagNHSync    = 1 << 1
	ModeFlagPVSync    = 1 << 2
	ModeFlagNVSync    = 1 << 3
	ModeFlagInterlace = 1 << 4
	ModeFlagDblScan   = 1 << 5
)

// Mode types (DRM_MODE_TYPE_*).
const (
	ModeTypePreferred = 1 << 3
	ModeTypeUserdef   = 1 << 5
	ModeTypeDriver    = 1 << 6
)
