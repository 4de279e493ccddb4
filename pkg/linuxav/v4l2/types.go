//go:build linux

package v4l2

// DeviceInfo contains information about a V4L2 device.
type DeviceInfo struct {
	DevicePath string
	Driver     string
	Card       string
	BusInfo    string
	Version    uint32
	Caps       uint32 // effective capabilities (device_caps when provided)
}

// M2M reports whether the device is a memory-to-memory (codec) device.
func (d DeviceInfo) M2M() bool {
	return d.Caps&(CapVideoM2M|CapVideoM2MMplane) != 0
}

// KernelVersion splits the KERNEL_VERSION-encoded version field.
func (d DeviceInfo) KernelVersion() (major, minor, patch uint32) {
	return d.Version >> 16, (d.Version >> 8) & 0xFF, d.Version & 0xFF
}

// Capability flags.
const (
	CapVideoCapture       = 0x00000001
	CapVideoOutput        = 0x00000002
	CapVideoCaptureMplane = 0x00001000
	CapVideoOutputMplane  = 0x00002000
	CapVideoM2MMplane     = 0x00004000
	CapVideoM2M           = 0x00008000
	CapStreaming          = 0x04000000
	CapDeviceCaps         = 0x80000000
)

// Buffer types.
const (
	BufTypeVideoCapture       = 1
	BufTypeVideoOutput        = 2
	BufTypeVideoCaptureMplane = 9
	BufTypeVideoOutputMplane  = 10
)

// Memory types.
const (
	MemoryMMAP    = 1
	MemoryUserptr = 2
	MemoryOverlay = 3
	MemoryDMABUF  = 4
)

// Field orders.
const (
	FieldAny        = 0
	FieldNone       = 1
	FieldInterlaced = 4
)

// Colorimetry.
const (
	ColorspaceDefault    = 0
	ColorspaceSMPTE170M  = 1
	ColorspaceREC709     = 3
	ColorspaceSRGB       = 8
	YCbCrEnc709          = 2
	QuantizationLimRange = 2
	XferFunc709          = 1
)

// Common pixel formats.
const (
	PixFmtYUYV      = 0x56595559 // 'YUYV'
	PixFmtMJPEG     = 0x47504A4D // 'MJPG'
	PixFmtNV12      = 0x3231564E // 'NV12'
	PixFmtNV12M     = 0x32314D4E // 'NM12'
	PixFmtYUV420M   = 0x32314D59 // 'YM12'
	PixFmtH264      = 0x34363248 // 'H264'
	PixFmtH264Slice = 0x34363253 // 'S264'
	PixFmtHEVC      = 0x43564548 // 'HEVC'
)

// Buffer flags.
const (
	BufFlagMapped             = 0x00000001
	BufFlagQueued             = 0x00000002
	BufFlagDone               = 0x00000004
	BufFlagKeyframe           = 0x00000008
	BufFlagTimestampMonotonic = 0x00002000
)

// Buffer capabilities reported by VIDIOC_REQBUFS.
const (
	BufCapSupportsMMAP     = 1 << 0
	BufCapSupportsUserptr  = 1 << 1
	BufCapSupportsDMABUF   = 1 << 2
	BufCapSupportsRequests = 1 << 3
)

// Timecode types.
const (
	TCType24FPS = 1
	TCType25FPS = 2
	TCType30FPS = 3
	TCType50FPS = 4
	TCType60FPS = 5
)

// Decoder commands.
const (
	DecCmdStart  = 0
	DecCmdStop   = 1
	DecCmdPause  = 2
	DecCmdResume = 3
	DecCmdFlush  = 4

	DecStartFmtNone = 0
)

// Stateless codec controls.
const (
	CtrlClassCodecStateless    = 0x00a40000
	CIDCodecStatelessBase      = CtrlClassCodecStateless | 0x900
	CIDStatelessH264DecodeMode = CIDCodecStatelessBase + 0
	CIDStatelessH264StartCode  = CIDCodecStatelessBase + 1
	CIDStatelessH264SPS        = CIDCodecStatelessBase + 2
	CIDStatelessH264PPS        = CIDCodecStatelessBase + 3
)

// H.264 SPS flags.
const (
	H264SPSFlagSeparateColourPlane         = 0x01
	H264SPSFlagQpprimeYZeroTransformBypass = 0x02
	H264SPSFlagDeltaPicOrderAlwaysZero     = 0x04
	H264SPSFlagGapsInFrameNumValueAllowed  = 0x08
	H264SPSFlagFrameMbsOnly                = 0x10
	H264SPSFlagMbAdaptiveFrameField        = 0x20
	H264SPSFlagDirect8x8Inference          = 0x40
)

// H.264 profile_idc values.
const (
	H264ProfileBaseline = 66
	H264ProfileMain     = 77
	H264ProfileHigh     = 100
)

// FourCC builds a pixel format code from its four characters.
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// FormatFourCC renders a pixel format code as its four characters.
func FormatFourCC(format uint32) string {
	b := make([]byte, 4)
	b[0] = byte(format & 0xFF)
	b[1] = byte((format >> 8) & 0xFF)
	b[2] = byte((format >> 16) & 0xFF)
	b[3] = byte((format >> 24) & 0xFF)
	return string(b)
}
