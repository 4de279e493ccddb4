//go:build linux && (amd64 || arm64)

package v4l2

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/smazurov/abiprobe/pkg/abiprobe"
)

// Realistic decoder setup: a stateless H.264 decoder producing 1080p NV12M
// into two planes.
const (
	realWidth      = 1920
	realHeight     = 1080
	realLumaSize   = realWidth * realHeight
	realChromaSize = realWidth * realHeight / 2
	realNumPlanes  = 2
	realBufCount   = 4
)

func under(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// pixMPPattern is the sentinel table for v4l2_pix_format_mplane.
func pixMPPattern(prefix string) []abiprobe.Assignment {
	p := func(name string) string { return under(prefix, name) }
	a := []abiprobe.Assignment{
		abiprobe.Set(p("width"), 0xDEADBEEF),
		abiprobe.Set(p("height"), 0xCAFEBABE),
		abiprobe.Set(p("pixelformat"), 0x12345678),
		abiprobe.Set(p("field"), 0x87654321),
		abiprobe.Set(p("colorspace"), 0xFEDCBA98),
		abiprobe.Set(p("num_planes"), 0xAB),
		abiprobe.Set(p("flags"), 0xCD),
		abiprobe.Set(p("ycbcr_enc"), 0xEF),
		abiprobe.Set(p("quantization"), 0x12),
		abiprobe.Set(p("xfer_func"), 0x34),
		abiprobe.Set(p("plane_fmt[0].sizeimage"), 0xDEADC0DE),
		abiprobe.Set(p("plane_fmt[0].bytesperline"), 0xFEEDFACE),
		abiprobe.Set(p("plane_fmt[1].sizeimage"), 0xBADDCAFE),
		abiprobe.Set(p("plane_fmt[1].bytesperline"), 0x13579BDF),
	}
	for i := 2; i < 8; i++ {
		a = append(a,
			abiprobe.Set(p(fmt.Sprintf("plane_fmt[%d].sizeimage", i)), 0x11111111+uint64(i)),
			abiprobe.Set(p(fmt.Sprintf("plane_fmt[%d].bytesperline", i)), 0x22222222+uint64(i)),
		)
	}
	for i := 0; i < 8; i++ {
		a = append(a, abiprobe.Zero(p(fmt.Sprintf("plane_fmt[%d].reserved", i))))
	}
	return append(a, abiprobe.Seq(p("reserved"), 0, 0x99))
}

// pixMPRealistic describes 1080p NV12M: a full-size luma plane and a
// half-size interleaved chroma plane.
func pixMPRealistic(prefix string) []abiprobe.Assignment {
	p := func(name string) string { return under(prefix, name) }
	a := []abiprobe.Assignment{
		abiprobe.Set(p("width"), realWidth),
		abiprobe.Set(p("height"), realHeight),
		abiprobe.Set(p("pixelformat"), PixFmtNV12M),
		abiprobe.Set(p("field"), FieldNone),
		abiprobe.Set(p("colorspace"), ColorspaceREC709),
		abiprobe.Set(p("num_planes"), realNumPlanes),
		abiprobe.Set(p("flags"), 0),
		abiprobe.Set(p("ycbcr_enc"), YCbCrEnc709),
		abiprobe.Set(p("quantization"), QuantizationLimRange),
		abiprobe.Set(p("xfer_func"), XferFunc709),
		abiprobe.Set(p("plane_fmt[0].sizeimage"), realLumaSize),
		abiprobe.Set(p("plane_fmt[0].bytesperline"), realWidth),
		abiprobe.Set(p("plane_fmt[1].sizeimage"), realChromaSize),
		abiprobe.Set(p("plane_fmt[1].bytesperline"), realWidth),
		abiprobe.Zero(p("reserved")),
	}
	for i := 0; i < 8; i++ {
		if i >= realNumPlanes {
			a = append(a,
				abiprobe.Set(p(fmt.Sprintf("plane_fmt[%d].sizeimage", i)), 0),
				abiprobe.Set(p(fmt.Sprintf("plane_fmt[%d].bytesperline", i)), 0),
			)
		}
		a = append(a, abiprobe.Zero(p(fmt.Sprintf("plane_fmt[%d].reserved", i))))
	}
	return a
}

// CapabilityRecord describes struct v4l2_capability.
var CapabilityRecord = abiprobe.MustDescribe[Capability]("v4l2_capability", "struct v4l2_capability").
	Pattern(
		abiprobe.Text("driver", "TEST_DRV_DEAD"),
		abiprobe.Text("card", "TEST_CARD_CAFE"),
		abiprobe.Text("bus_info", "TEST_BUS_12345"),
		abiprobe.Set("version", 0xDEADBEEF),
		abiprobe.Set("capabilities", 0xCAFEBABE),
		abiprobe.Set("device_caps", 0x12345678),
		abiprobe.SetAt("reserved", 0, 0x87654321),
		abiprobe.SetAt("reserved", 1, 0xFEDCBA98),
		abiprobe.SetAt("reserved", 2, 0x13579BDF),
	).
	Realistic(
		abiprobe.Text("driver", "rkvdec"),
		abiprobe.Text("card", "rkvdec"),
		abiprobe.Text("bus_info", "platform:rkvdec"),
		abiprobe.Set("version", 0x060100),
		abiprobe.Set("capabilities", CapVideoM2MMplane|CapStreaming|CapDeviceCaps),
		abiprobe.Set("device_caps", CapVideoM2MMplane|CapStreaming),
		abiprobe.Zero("reserved"),
	)

// PixFormatMplaneRecord describes struct v4l2_pix_format_mplane.
var PixFormatMplaneRecord = abiprobe.MustDescribe[PixFormatMplane]("v4l2_pix_format_mplane", "struct v4l2_pix_format_mplane").
	Pattern(pixMPPattern("")...).
	Realistic(pixMPRealistic("")...)

// FormatRecord describes struct v4l2_format holding a multi-planar format.
var FormatRecord = abiprobe.MustDescribe[Format]("v4l2_format", "struct v4l2_format").
	Pattern(append([]abiprobe.Assignment{abiprobe.Set("type", 0xFACADE00)}, pixMPPattern("fmt.pix_mp")...)...).
	Realistic(append([]abiprobe.Assignment{abiprobe.Set("type", BufTypeVideoCaptureMplane)}, pixMPRealistic("fmt.pix_mp")...)...)

// RequestBuffersRecord describes struct v4l2_requestbuffers.
var RequestBuffersRecord = abiprobe.MustDescribe[RequestBuffers]("v4l2_requestbuffers", "struct v4l2_requestbuffers").
	Pattern(
		abiprobe.Set("count", 0xDEADBEEF),
		abiprobe.Set("type", 0xCAFEBABE),
		abiprobe.Set("memory", 0x12345678),
		abiprobe.Set("capabilities", 0x87654321),
		abiprobe.Set("flags", 0x98),
		abiprobe.SetAt("reserved", 0, 0x44),
		abiprobe.SetAt("reserved", 1, 0x88),
		abiprobe.SetAt("reserved", 2, 0xCC),
	).
	Realistic(
		abiprobe.Set("count", realBufCount),
		abiprobe.Set("type", BufTypeVideoCaptureMplane),
		abiprobe.Set("memory", MemoryMMAP),
		abiprobe.Set("capabilities", BufCapSupportsMMAP|BufCapSupportsDMABUF),
		abiprobe.Set("flags", 0),
		abiprobe.Zero("reserved"),
	)

// BufferRecord describes struct v4l2_buffer. The planes pointer is never
// populated.
var BufferRecord = abiprobe.MustDescribe[Buffer]("v4l2_buffer", "struct v4l2_buffer").
	Pattern(
		abiprobe.Set("index", 0xDEADBEEF),
		abiprobe.Set("type", 0xCAFEBABE),
		abiprobe.Set("bytesused", 0x12345678),
		abiprobe.Set("flags", 0x87654321),
		abiprobe.Set("field", 0xFEDCBA98),
		abiprobe.Set("timestamp.tv_sec", 0x11111111),
		abiprobe.Set("timestamp.tv_usec", 0x22222222),
		abiprobe.Set("timecode.type", 0x33),
		abiprobe.Set("timecode.flags", 0x44),
		abiprobe.Set("timecode.frames", 0x55),
		abiprobe.Set("timecode.seconds", 0x66),
		abiprobe.Set("timecode.minutes", 0x77),
		abiprobe.Set("timecode.hours", 0x88),
		abiprobe.SetAt("timecode.userbits", 0, 0x99),
		abiprobe.SetAt("timecode.userbits", 1, 0xAA),
		abiprobe.SetAt("timecode.userbits", 2, 0xBB),
		abiprobe.SetAt("timecode.userbits", 3, 0xCC),
		abiprobe.Set("sequence", 0x33333333),
		abiprobe.Set("memory", 0x44444444),
		abiprobe.Set("length", 0x55555555),
		abiprobe.Set("reserved2", 0x66666666),
		abiprobe.Set("request_fd", 0x77777777),
		abiprobe.Null("m.planes"),
	).
	Realistic(
		abiprobe.Set("index", 0),
		abiprobe.Set("type", BufTypeVideoCaptureMplane),
		abiprobe.Set("bytesused", 0),
		abiprobe.Set("flags", BufFlagTimestampMonotonic),
		abiprobe.Set("field", FieldNone),
		abiprobe.Set("timestamp.tv_sec", 1700000000),
		abiprobe.Set("timestamp.tv_usec", 500000),
		abiprobe.Set("timecode.type", TCType25FPS),
		abiprobe.Set("timecode.flags", 0),
		abiprobe.Set("timecode.frames", 12),
		abiprobe.Set("timecode.seconds", 20),
		abiprobe.Set("timecode.minutes", 13),
		abiprobe.Set("timecode.hours", 22),
		abiprobe.Zero("timecode.userbits"),
		abiprobe.Set("sequence", 42),
		abiprobe.Set("memory", MemoryMMAP),
		abiprobe.Null("m.planes"),
		abiprobe.Set("length", realNumPlanes),
		abiprobe.Set("reserved2", 0),
		abiprobe.Set("request_fd", 0),
	)

// ExportBufferRecord describes struct v4l2_exportbuffer.
var ExportBufferRecord = abiprobe.MustDescribe[ExportBuffer]("v4l2_exportbuffer", "struct v4l2_exportbuffer").
	Pattern(
		abiprobe.Set("type", 0xDEADBEEF),
		abiprobe.Set("index", 0xCAFEBABE),
		abiprobe.Set("plane", 0x12345678),
		abiprobe.Set("flags", 0x87654321),
		abiprobe.Set("fd", 0xFEDCBA98),
		abiprobe.Seq("reserved", 0, 0x11223344),
	).
	Realistic(
		abiprobe.Set("type", BufTypeVideoCaptureMplane),
		abiprobe.Set("index", 0),
		abiprobe.Set("plane", 0),
		abiprobe.Set("flags", unix.O_RDONLY|unix.O_CLOEXEC),
		abiprobe.SetInt("fd", -1),
		abiprobe.Zero("reserved"),
	)

// DecoderCmdRecord describes struct v4l2_decoder_cmd through its start
// member.
var DecoderCmdRecord = abiprobe.MustDescribe[DecoderCmd]("v4l2_decoder_cmd", "struct v4l2_decoder_cmd").
	Pattern(
		abiprobe.Set("cmd", 0xDEADBEEF),
		abiprobe.Set("flags", 0xCAFEBABE),
		abiprobe.Memset("start", 0xAB),
	).
	Realistic(
		abiprobe.Set("cmd", DecCmdStart),
		abiprobe.Set("flags", 0),
		abiprobe.SetInt("start.speed", 1000),
		abiprobe.Set("start.format", DecStartFmtNone),
	)

// ExtControlRecord describes struct v4l2_ext_control carrying a compound
// control pointer.
var ExtControlRecord = abiprobe.MustDescribe[ExtControl]("v4l2_ext_control", "struct v4l2_ext_control").
	Pattern(
		abiprobe.Set("id", 0xDEADBEEF),
		abiprobe.Set("size", 0xCAFEBABE),
		abiprobe.SetAt("reserved2", 0, 0x12345678),
		abiprobe.Set("ptr", 0x87654321),
	).
	Realistic(
		abiprobe.Set("id", CIDStatelessH264SPS),
		abiprobe.Set("size", 1048),
		abiprobe.Zero("reserved2"),
		abiprobe.Null("ptr"),
	)

// CtrlH264SPSRecord describes struct v4l2_ctrl_h264_sps.
var CtrlH264SPSRecord = abiprobe.MustDescribe[CtrlH264SPS]("v4l2_ctrl_h264_sps", "struct v4l2_ctrl_h264_sps").
	Pattern(
		abiprobe.Set("profile_idc", 0xAA),
		abiprobe.Set("constraint_set_flags", 0x3F),
		abiprobe.Set("level_idc", 0xBB),
		abiprobe.Set("seq_parameter_set_id", 0xCC),
		abiprobe.Set("chroma_format_idc", 0x01),
		abiprobe.Set("bit_depth_luma_minus8", 0x02),
		abiprobe.Set("bit_depth_chroma_minus8", 0x03),
		abiprobe.Set("log2_max_frame_num_minus4", 0x04),
		abiprobe.Set("pic_order_cnt_type", 0x05),
		abiprobe.Set("log2_max_pic_order_cnt_lsb_minus4", 0x06),
		abiprobe.Set("max_num_ref_frames", 0x07),
		abiprobe.Set("num_ref_frames_in_pic_order_cnt_cycle", 0x08),
		abiprobe.Seq("offset_for_ref_frame", 0, 0x1000),
		abiprobe.Set("offset_for_non_ref_pic", 0xDEADBEEF),
		abiprobe.Set("offset_for_top_to_bottom_field", 0xCAFEBABE),
		abiprobe.Set("pic_width_in_mbs_minus1", 0x1234),
		abiprobe.Set("pic_height_in_map_units_minus1", 0x5678),
		abiprobe.Set("flags", 0xDEADBEEF),
	).
	Realistic(
		// High profile, level 4.0, 4:2:0, 1920x1088 coded size
		abiprobe.Set("profile_idc", H264ProfileHigh),
		abiprobe.Set("constraint_set_flags", 0),
		abiprobe.Set("level_idc", 40),
		abiprobe.Set("seq_parameter_set_id", 0),
		abiprobe.Set("chroma_format_idc", 1),
		abiprobe.Set("bit_depth_luma_minus8", 0),
		abiprobe.Set("bit_depth_chroma_minus8", 0),
		abiprobe.Set("log2_max_frame_num_minus4", 0),
		abiprobe.Set("pic_order_cnt_type", 0),
		abiprobe.Set("log2_max_pic_order_cnt_lsb_minus4", 2),
		abiprobe.Set("max_num_ref_frames", 4),
		abiprobe.Set("num_ref_frames_in_pic_order_cnt_cycle", 0),
		abiprobe.Zero("offset_for_ref_frame"),
		abiprobe.SetInt("offset_for_non_ref_pic", 0),
		abiprobe.SetInt("offset_for_top_to_bottom_field", 0),
		abiprobe.Set("pic_width_in_mbs_minus1", realWidth/16-1),
		abiprobe.Set("pic_height_in_map_units_minus1", (realHeight+15)/16-1),
		abiprobe.Set("flags", H264SPSFlagFrameMbsOnly|H264SPSFlagDirect8x8Inference),
	)

// Records returns the V4L2 records.
func Records() []*abiprobe.Record {
	return []*abiprobe.Record{
		CapabilityRecord,
		PixFormatMplaneRecord,
		FormatRecord,
		RequestBuffersRecord,
		BufferRecord,
		ExportBufferRecord,
		DecoderCmdRecord,
		ExtControlRecord,
		CtrlH264SPSRecord,
	}
}
