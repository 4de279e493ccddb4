//go:build linux && (amd64 || arm64)

package v4l2

import (
	"unsafe"

	"github.com/smazurov/abiprobe/pkg/linuxav/ioc"
)

// Compile-time struct size assertions.
// These will cause build failures if struct sizes don't match kernel expectations.
var (
	_ [104]byte  = [unsafe.Sizeof(Capability{})]byte{}
	_ [20]byte   = [unsafe.Sizeof(PlanePixFormat{})]byte{}
	_ [192]byte  = [unsafe.Sizeof(PixFormatMplane{})]byte{}
	_ [208]byte  = [unsafe.Sizeof(Format{})]byte{}
	_ [20]byte   = [unsafe.Sizeof(RequestBuffers{})]byte{}
	_ [16]byte   = [unsafe.Sizeof(Timecode{})]byte{}
	_ [88]byte   = [unsafe.Sizeof(Buffer{})]byte{}
	_ [64]byte   = [unsafe.Sizeof(ExportBuffer{})]byte{}
	_ [72]byte   = [unsafe.Sizeof(DecoderCmd{})]byte{}
	_ [20]byte   = [unsafe.Sizeof(ExtControl{})]byte{}
	_ [1048]byte = [unsafe.Sizeof(CtrlH264SPS{})]byte{}
)

// IOCTL constants for 64-bit architectures.
const (
	vidiocQuerycap   = 0x80685600
	vidiocGFmt       = 0xc0d05604
	vidiocSFmt       = 0xc0d05605
	vidiocReqbufs    = 0xc0145608
	vidiocQuerybuf   = 0xc0585609
	vidiocQbuf       = 0xc058560f
	vidiocExpbuf     = 0xc0405610
	vidiocDqbuf      = 0xc0585611
	vidiocDecoderCmd = 0xc0485660
)

// kernelLong is the C long / __kernel_long_t / __off_t of the platform.
type kernelLong = int64

// OffTSize returns the size of the platform __off_t, the type behind the
// timeval fields of v4l2_buffer.
func OffTSize() int {
	return int(unsafe.Sizeof(kernelLong(0)))
}

// Requests returns the V4L2 request codes the mirrors determine.
func Requests() []ioc.Request {
	return []ioc.Request{
		{Name: "VIDIOC_QUERYCAP", Header: vidiocQuerycap, Derived: ioc.IOR('V', 0, unsafe.Sizeof(Capability{}))},
		{Name: "VIDIOC_G_FMT", Header: vidiocGFmt, Derived: ioc.IOWR('V', 4, unsafe.Sizeof(Format{}))},
		{Name: "VIDIOC_S_FMT", Header: vidiocSFmt, Derived: ioc.IOWR('V', 5, unsafe.Sizeof(Format{}))},
		{Name: "VIDIOC_REQBUFS", Header: vidiocReqbufs, Derived: ioc.IOWR('V', 8, unsafe.Sizeof(RequestBuffers{}))},
		{Name: "VIDIOC_QUERYBUF", Header: vidiocQuerybuf, Derived: ioc.IOWR('V', 9, unsafe.Sizeof(Buffer{}))},
		{Name: "VIDIOC_QBUF", Header: vidiocQbuf, Derived: ioc.IOWR('V', 15, unsafe.Sizeof(Buffer{}))},
		{Name: "VIDIOC_EXPBUF", Header: vidiocExpbuf, Derived: ioc.IOWR('V', 16, unsafe.Sizeof(ExportBuffer{}))},
		{Name: "VIDIOC_DQBUF", Header: vidiocDqbuf, Derived: ioc.IOWR('V', 17, unsafe.Sizeof(Buffer{}))},
		{Name: "VIDIOC_DECODER_CMD", Header: vidiocDecoderCmd, Derived: ioc.IOWR('V', 96, unsafe.Sizeof(DecoderCmd{}))},
	}
}

// Capability mirrors struct v4l2_capability (104 bytes).
type Capability struct {
	Driver       [16]byte  `abi:"driver,string"`   // offset 0
	Card         [32]byte  `abi:"card,string"`     // offset 16
	BusInfo      [32]byte  `abi:"bus_info,string"` // offset 48
	Version      uint32    `abi:"version"`         // offset 80
	Capabilities uint32    `abi:"capabilities"`    // offset 84
	DeviceCaps   uint32    `abi:"device_caps"`     // offset 88
	Reserved     [3]uint32 `abi:"reserved"`        // offset 92
}

// PlanePixFormat mirrors the packed struct v4l2_plane_pix_format (20 bytes).
type PlanePixFormat struct {
	Sizeimage    uint32    `abi:"sizeimage"`
	Bytesperline uint32    `abi:"bytesperline"`
	Reserved     [6]uint16 `abi:"reserved"`
}

// PixFormatMplane mirrors the packed struct v4l2_pix_format_mplane (192 bytes).
type PixFormatMplane struct {
	_            struct{}          `abi:",packed"`
	Width        uint32            `abi:"width"`        // offset 0
	Height       uint32            `abi:"height"`       // offset 4
	Pixelformat  uint32            `abi:"pixelformat"`  // offset 8
	Field        uint32            `abi:"field"`        // offset 12
	Colorspace   uint32            `abi:"colorspace"`   // offset 16
	PlaneFmt     [8]PlanePixFormat `abi:"plane_fmt"`    // offset 20
	NumPlanes    uint8             `abi:"num_planes"`   // offset 180
	Flags        uint8             `abi:"flags"`        // offset 181
	YcbcrEnc     uint8             `abi:"ycbcr_enc"`    // offset 182, union with hsv_enc
	Quantization uint8             `abi:"quantization"` // offset 183
	XferFunc     uint8             `abi:"xfer_func"`    // offset 184
	Reserved     [7]uint8          `abi:"reserved"`     // offset 185
}

// Format mirrors struct v4l2_format (208 bytes). The 200-byte fmt union is
// 8-byte aligned because of v4l2_window; only the pix_mp view is mapped.
type Format struct {
	_     [0]uint64
	Type  uint32          `abi:"type"` // offset 0
	_     uint32          // padding
	PixMP PixFormatMplane `abi:"fmt.pix_mp"` // offset 8
	_     [8]byte         // rest of the union
}

// RequestBuffers mirrors struct v4l2_requestbuffers (20 bytes).
type RequestBuffers struct {
	Count        uint32   `abi:"count"`
	Type         uint32   `abi:"type"`
	Memory       uint32   `abi:"memory"`
	Capabilities uint32   `abi:"capabilities"`
	Flags        uint8    `abi:"flags"`
	Reserved     [3]uint8 `abi:"reserved"`
}

// Timeval mirrors struct timeval on LP64.
type Timeval struct {
	Sec  kernelLong `abi:"tv_sec"`
	Usec kernelLong `abi:"tv_usec"`
}

// Timecode mirrors struct v4l2_timecode (16 bytes).
type Timecode struct {
	Type     uint32   `abi:"type"`
	Flags    uint32   `abi:"flags"`
	Frames   uint8    `abi:"frames"`
	Seconds  uint8    `abi:"seconds"`
	Minutes  uint8    `abi:"minutes"`
	Hours    uint8    `abi:"hours"`
	Userbits [4]uint8 `abi:"userbits"`
}

// Buffer mirrors struct v4l2_buffer (88 bytes). The m union is mapped
// through its planes pointer, which the probe never populates.
type Buffer struct {
	Index     uint32   `abi:"index"`     // offset 0
	Type      uint32   `abi:"type"`      // offset 4
	Bytesused uint32   `abi:"bytesused"` // offset 8
	Flags     uint32   `abi:"flags"`     // offset 12
	Field     uint32   `abi:"field"`     // offset 16
	_         uint32   // padding
	Timestamp Timeval  `abi:"timestamp"`    // offset 24
	Timecode  Timecode `abi:"timecode"`     // offset 40
	Sequence  uint32   `abi:"sequence"`     // offset 56
	Memory    uint32   `abi:"memory"`       // offset 60
	Planes    uintptr  `abi:"m.planes,ptr"` // offset 64, union with offset/userptr/fd
	Length    uint32   `abi:"length"`       // offset 72
	Reserved2 uint32   `abi:"reserved2"`    // offset 76
	RequestFd int32    `abi:"request_fd"`   // offset 80, union with reserved
	_         uint32   // padding
}

// ExportBuffer mirrors struct v4l2_exportbuffer (64 bytes).
type ExportBuffer struct {
	Type     uint32     `abi:"type"`
	Index    uint32     `abi:"index"`
	Plane    uint32     `abi:"plane"`
	Flags    uint32     `abi:"flags"`
	Fd       int32      `abi:"fd"`
	Reserved [11]uint32 `abi:"reserved"`
}

// DecoderStart is the start member of the v4l2_decoder_cmd union.
type DecoderStart struct {
	Speed  int32  `abi:"speed"`
	Format uint32 `abi:"format"`
}

// DecoderCmd mirrors struct v4l2_decoder_cmd (72 bytes). The union is
// 64 bytes (raw.data[16]) and 8-byte aligned (stop.pts).
type DecoderCmd struct {
	_     [0]uint64
	Cmd   uint32       `abi:"cmd"`   // offset 0
	Flags uint32       `abi:"flags"` // offset 4
	Start DecoderStart `abi:"start"` // offset 8
	_     [56]byte     // rest of the union
}

// ExtControl mirrors the packed struct v4l2_ext_control (20 bytes). The
// value union starts at offset 12, so it is kept as raw bytes.
type ExtControl struct {
	_         struct{}  `abi:",packed"`
	ID        uint32    `abi:"id"`
	Size      uint32    `abi:"size"`
	Reserved2 [1]uint32 `abi:"reserved2"`
	Ptr       [8]byte   `abi:"ptr,ptr"`
}

// CtrlH264SPS mirrors struct v4l2_ctrl_h264_sps (1048 bytes).
type CtrlH264SPS struct {
	ProfileIdc                     uint8      `abi:"profile_idc"`
	ConstraintSetFlags             uint8      `abi:"constraint_set_flags"`
	LevelIdc                       uint8      `abi:"level_idc"`
	SeqParameterSetID              uint8      `abi:"seq_parameter_set_id"`
	ChromaFormatIdc                uint8      `abi:"chroma_format_idc"`
	BitDepthLumaMinus8             uint8      `abi:"bit_depth_luma_minus8"`
	BitDepthChromaMinus8           uint8      `abi:"bit_depth_chroma_minus8"`
	Log2MaxFrameNumMinus4          uint8      `abi:"log2_max_frame_num_minus4"`
	PicOrderCntType                uint8      `abi:"pic_order_cnt_type"`
	Log2MaxPicOrderCntLsbMinus4    uint8      `abi:"log2_max_pic_order_cnt_lsb_minus4"`
	MaxNumRefFrames                uint8      `abi:"max_num_ref_frames"`
	NumRefFramesInPicOrderCntCycle uint8      `abi:"num_ref_frames_in_pic_order_cnt_cycle"`
	OffsetForRefFrame              [255]int32 `abi:"offset_for_ref_frame"`           // offset 12
	OffsetForNonRefPic             int32      `abi:"offset_for_non_ref_pic"`         // offset 1032
	OffsetForTopToBottomField      int32      `abi:"offset_for_top_to_bottom_field"` // offset 1036
	PicWidthInMbsMinus1            uint16     `abi:"pic_width_in_mbs_minus1"`        // offset 1040
	PicHeightInMapUnitsMinus1      uint16     `abi:"pic_height_in_map_units_minus1"` // offset 1042
	Flags                          uint32     `abi:"flags"`                          // offset 1044
}
