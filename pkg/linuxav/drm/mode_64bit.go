//go:build linux && (amd64 || arm64)

package drm

import "unsafe"

// Compile-time struct size assertions against libdrm on LP64.
var (
	_ [80]byte  = [unsafe.Sizeof(ModeRes{})]byte{}
	_ [20]byte  = [unsafe.Sizeof(ModeEncoder{})]byte{}
	_ [88]byte  = [unsafe.Sizeof(ModeConnector{})]byte{}
	_ [68]byte  = [unsafe.Sizeof(ModeInfo{})]byte{}
	_ [100]byte = [unsafe.Sizeof(ModeCrtc{})]byte{}
	_ [56]byte  = [unsafe.Sizeof(ModePlane{})]byte{}
	_ [28]byte  = [unsafe.Sizeof(ModeFB{})]byte{}
)

// ModeRes mirrors drmModeRes (80 bytes).
type ModeRes struct {
	CountFbs        int32   `abi:"count_fbs"` // offset 0
	_               uint32  // padding
	Fbs             uintptr `abi:"fbs,ptr"`     // offset 8
	CountCrtcs      int32   `abi:"count_crtcs"` // offset 16
	_               uint32  // padding
	Crtcs           uintptr `abi:"crtcs,ptr"`        // offset 24
	CountConnectors int32   `abi:"count_connectors"` // offset 32
	_               uint32  // padding
	Connectors      uintptr `abi:"connectors,ptr"` // offset 40
	CountEncoders   int32   `abi:"count_encoders"` // offset 48
	_               uint32  // padding
	Encoders        uintptr `abi:"encoders,ptr"` // offset 56
	MinWidth        uint32  `abi:"min_width"`    // offset 64
	MaxWidth        uint32  `abi:"max_width"`    // offset 68
	MinHeight       uint32  `abi:"min_height"`   // offset 72
	MaxHeight       uint32  `abi:"max_height"`   // offset 76
}

// ModeEncoder mirrors drmModeEncoder (20 bytes).
type ModeEncoder struct {
	EncoderID      uint32 `abi:"encoder_id"`
	EncoderType    uint32 `abi:"encoder_type"`
	CrtcID         uint32 `abi:"crtc_id"`
	PossibleCrtcs  uint32 `abi:"possible_crtcs"`
	PossibleClones uint32 `abi:"possible_clones"`
}

// ModeInfo mirrors drmModeModeInfo (68 bytes).
type ModeInfo struct {
	Clock      uint32               `abi:"clock"`       // offset 0
	Hdisplay   uint16               `abi:"hdisplay"`    // offset 4
	HsyncStart uint16               `abi:"hsync_start"` // offset 6
	HsyncEnd   uint16               `abi:"hsync_end"`   // offset 8
	Htotal     uint16               `abi:"htotal"`      // offset 10
	Hskew      uint16               `abi:"hskew"`       // offset 12
	Vdisplay   uint16               `abi:"vdisplay"`    // offset 14
	VsyncStart uint16               `abi:"vsync_start"` // offset 16
	VsyncEnd   uint16               `abi:"vsync_end"`   // offset 18
	Vtotal     uint16               `abi:"vtotal"`      // offset 20
	Vscan      uint16               `abi:"vscan"`       // offset 22
	Vrefresh   uint32               `abi:"vrefresh"`    // offset 24
	Flags      uint32               `abi:"flags"`       // offset 28
	Type       uint32               `abi:"type"`        // offset 32
	Name       [DisplayModeLen]byte `abi:"name,string"` // offset 36
}

// ModeConnector mirrors drmModeConnector (88 bytes).
type ModeConnector struct {
	ConnectorID     uint32  `abi:"connector_id"`      // offset 0
	EncoderID       uint32  `abi:"encoder_id"`        // offset 4
	ConnectorType   uint32  `abi:"connector_type"`    // offset 8
	ConnectorTypeID uint32  `abi:"connector_type_id"` // offset 12
	Connection      uint32  `abi:"connection"`        // offset 16, drmModeConnection
	MmWidth         uint32  `abi:"mmWidth"`           // offset 20
	MmHeight        uint32  `abi:"mmHeight"`          // offset 24
	Subpixel        uint32  `abi:"subpixel"`          // offset 28, drmModeSubPixel
	CountModes      int32   `abi:"count_modes"`       // offset 32
	_               uint32  // padding
	Modes           uintptr `abi:"modes,ptr"`   // offset 40
	CountProps      int32   `abi:"count_props"` // offset 48
	_               uint32  // padding
	Props           uintptr `abi:"props,ptr"`       // offset 56
	PropValues      uintptr `abi:"prop_values,ptr"` // offset 64
	CountEncoders   int32   `abi:"count_encoders"`  // offset 72
	_               uint32  // padding
	Encoders        uintptr `abi:"encoders,ptr"` // offset 80
}

// ModeCrtc mirrors drmModeCrtc (100 bytes).
type ModeCrtc struct {
	CrtcID    uint32   `abi:"crtc_id"`    // offset 0
	BufferID  uint32   `abi:"buffer_id"`  // offset 4
	X         uint32   `abi:"x"`          // offset 8
	Y         uint32   `abi:"y"`          // offset 12
	Width     uint32   `abi:"width"`      // offset 16
	Height    uint32   `abi:"height"`     // offset 20
	ModeValid int32    `abi:"mode_valid"` // offset 24
	Mode      ModeInfo `abi:"mode"`       // offset 28
	GammaSize int32    `abi:"gamma_size"` // offset 96
}

// ModePlane mirrors drmModePlane (56 bytes, 4 trailing padding).
type ModePlane struct {
	CountFormats  uint32  `abi:"count_formats"` // offset 0
	_             uint32  // padding
	Formats       uintptr `abi:"formats,ptr"`    // offset 8
	PlaneID       uint32  `abi:"plane_id"`       // offset 16
	CrtcID        uint32  `abi:"crtc_id"`        // offset 20
	FbID          uint32  `abi:"fb_id"`          // offset 24
	CrtcX         uint32  `abi:"crtc_x"`         // offset 28
	CrtcY         uint32  `abi:"crtc_y"`         // offset 32
	X             uint32  `abi:"x"`              // offset 36
	Y             uint32  `abi:"y"`              // offset 40
	PossibleCrtcs uint32  `abi:"possible_crtcs"` // offset 44
	GammaSize     uint32  `abi:"gamma_size"`     // offset 48
}

// ModeFB mirrors drmModeFB (28 bytes).
type ModeFB struct {
	FbID   uint32 `abi:"fb_id"`
	Width  uint32 `abi:"width"`
	Height uint32 `abi:"height"`
	Pitch  uint32 `abi:"pitch"`
	Bpp    uint32 `abi:"bpp"`
	Depth  uint32 `abi:"depth"`
	Handle uint32 `abi:"handle"`
}
