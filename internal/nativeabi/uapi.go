//go:build nativeheaders && cgo && linux && (amd64 || arm64)

// Package nativeabi reports what the C compiler says about the mirrored
// records. The kernel UAPI records (V4L2, dma-heap) only need the kernel
// headers; the libdrm records are added with -tags libdrm. The package
// only builds with -tags nativeheaders.
package nativeabi

/*
#include <stddef.h>
#include <stdint.h>
#include <linux/dma-heap.h>
#include <linux/videodev2.h>
#include <linux/v4l2-controls.h>

typedef struct {
	const char *key;
	size_t size;
	size_t align;
} uapi_type;

typedef struct {
	const char *key;
	const char *member;
	size_t offset;
} uapi_member;

#define T(k, t) { k, sizeof(t), _Alignof(t) }
#define M(k, t, m) { k, #m, offsetof(t, m) }

static const uapi_type uapi_types[] = {
	T("dma_heap_allocation_data", struct dma_heap_allocation_data),
	T("v4l2_capability", struct v4l2_capability),
	T("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane),
	T("v4l2_format", struct v4l2_format),
	T("v4l2_requestbuffers", struct v4l2_requestbuffers),
	T("v4l2_buffer", struct v4l2_buffer),
	T("v4l2_exportbuffer", struct v4l2_exportbuffer),
	T("v4l2_decoder_cmd", struct v4l2_decoder_cmd),
	T("v4l2_ext_control", struct v4l2_ext_control),
	T("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps),
};

static const uapi_member uapi_members[] = {
	M("dma_heap_allocation_data", struct dma_heap_allocation_data, len),
	M("dma_heap_allocation_data", struct dma_heap_allocation_data, fd),
	M("dma_heap_allocation_data", struct dma_heap_allocation_data, fd_flags),
	M("dma_heap_allocation_data", struct dma_heap_allocation_data, heap_flags),
	M("v4l2_capability", struct v4l2_capability, driver),
	M("v4l2_capability", struct v4l2_capability, card),
	M("v4l2_capability", struct v4l2_capability, bus_info),
	M("v4l2_capability", struct v4l2_capability, version),
	M("v4l2_capability", struct v4l2_capability, capabilities),
	M("v4l2_capability", struct v4l2_capability, device_caps),
	M("v4l2_capability", struct v4l2_capability, reserved),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, width),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, height),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, pixelformat),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, field),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, colorspace),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, plane_fmt[0].sizeimage),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, plane_fmt[0].bytesperline),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, plane_fmt[0].reserved),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, plane_fmt[7].sizeimage),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, num_planes),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, flags),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, ycbcr_enc),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, quantization),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, xfer_func),
	M("v4l2_pix_format_mplane", struct v4l2_pix_format_mplane, reserved),
	M("v4l2_format", struct v4l2_format, type),
	M("v4l2_format", struct v4l2_format, fmt.pix_mp.width),
	M("v4l2_format", struct v4l2_format, fmt.pix_mp.plane_fmt[1].sizeimage),
	M("v4l2_format", struct v4l2_format, fmt.pix_mp.num_planes),
	M("v4l2_format", struct v4l2_format, fmt.pix_mp.reserved),
	M("v4l2_requestbuffers", struct v4l2_requestbuffers, count),
	M("v4l2_requestbuffers", struct v4l2_requestbuffers, type),
	M("v4l2_requestbuffers", struct v4l2_requestbuffers, memory),
	M("v4l2_requestbuffers", struct v4l2_requestbuffers, capabilities),
	M("v4l2_requestbuffers", struct v4l2_requestbuffers, flags),
	M("v4l2_requestbuffers", struct v4l2_requestbuffers, reserved),
	M("v4l2_buffer", struct v4l2_buffer, index),
	M("v4l2_buffer", struct v4l2_buffer, type),
	M("v4l2_buffer", struct v4l2_buffer, bytesused),
	M("v4l2_buffer", struct v4l2_buffer, flags),
	M("v4l2_buffer", struct v4l2_buffer, field),
	M("v4l2_buffer", struct v4l2_buffer, timestamp.tv_sec),
	M("v4l2_buffer", struct v4l2_buffer, timestamp.tv_usec),
	M("v4l2_buffer", struct v4l2_buffer, timecode.type),
	M("v4l2_buffer", struct v4l2_buffer, timecode.frames),
	M("v4l2_buffer", struct v4l2_buffer, timecode.userbits),
	M("v4l2_buffer", struct v4l2_buffer, sequence),
	M("v4l2_buffer", struct v4l2_buffer, memory),
	M("v4l2_buffer", struct v4l2_buffer, m.planes),
	M("v4l2_buffer", struct v4l2_buffer, length),
	M("v4l2_buffer", struct v4l2_buffer, reserved2),
	M("v4l2_buffer", struct v4l2_buffer, request_fd),
	M("v4l2_exportbuffer", struct v4l2_exportbuffer, type),
	M("v4l2_exportbuffer", struct v4l2_exportbuffer, index),
	M("v4l2_exportbuffer", struct v4l2_exportbuffer, plane),
	M("v4l2_exportbuffer", struct v4l2_exportbuffer, flags),
	M("v4l2_exportbuffer", struct v4l2_exportbuffer, fd),
	M("v4l2_exportbuffer", struct v4l2_exportbuffer, reserved),
	M("v4l2_decoder_cmd", struct v4l2_decoder_cmd, cmd),
	M("v4l2_decoder_cmd", struct v4l2_decoder_cmd, flags),
	M("v4l2_decoder_cmd", struct v4l2_decoder_cmd, start.speed),
	M("v4l2_decoder_cmd", struct v4l2_decoder_cmd, start.format),
	M("v4l2_ext_control", struct v4l2_ext_control, id),
	M("v4l2_ext_control", struct v4l2_ext_control, size),
	M("v4l2_ext_control", struct v4l2_ext_control, reserved2),
	M("v4l2_ext_control", struct v4l2_ext_control, ptr),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, profile_idc),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, constraint_set_flags),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, level_idc),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, seq_parameter_set_id),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, chroma_format_idc),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, bit_depth_luma_minus8),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, bit_depth_chroma_minus8),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, log2_max_frame_num_minus4),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, pic_order_cnt_type),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, log2_max_pic_order_cnt_lsb_minus4),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, max_num_ref_frames),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, num_ref_frames_in_pic_order_cnt_cycle),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, offset_for_ref_frame),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, offset_for_non_ref_pic),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, offset_for_top_to_bottom_field),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, pic_width_in_mbs_minus1),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, pic_height_in_map_units_minus1),
	M("v4l2_ctrl_h264_sps", struct v4l2_ctrl_h264_sps, flags),
};

static const size_t uapi_types_len = sizeof(uapi_types) / sizeof(uapi_types[0]);
static const size_t uapi_members_len = sizeof(uapi_members) / sizeof(uapi_members[0]);

static const uint32_t uapi_dma_heap_ioctl_alloc = DMA_HEAP_IOCTL_ALLOC;
static const int uapi_kernel_long_size = sizeof(__kernel_long_t);
*/
import "C"

import "unsafe"

// Type is the C compiler's size and alignment for a record.
type Type struct {
	Size  uintptr
	Align uintptr
}

// Member is the C compiler's offset of one member designator, spelled
// the way abiprobe flattens field names.
type Member struct {
	Key    string
	Name   string
	Offset uintptr
}

// Types returns the native size and alignment of every record by key.
func Types() map[string]Type {
	out := make(map[string]Type)
	uapiTypes(out)
	drmTypes(out)
	return out
}

// Members returns the native offsets of the checked members.
func Members() []Member {
	return drmMembers(uapiMembers(nil))
}

// IoctlAlloc is DMA_HEAP_IOCTL_ALLOC as the header expands it.
func IoctlAlloc() uint32 { return uint32(C.uapi_dma_heap_ioctl_alloc) }

// KernelLongSize is sizeof(__kernel_long_t), the width of timeval members.
func KernelLongSize() int { return int(C.uapi_kernel_long_size) }

func uapiTypes(out map[string]Type) {
	for _, t := range unsafe.Slice(&C.uapi_types[0], C.uapi_types_len) {
		out[C.GoString(t.key)] = Type{Size: uintptr(t.size), Align: uintptr(t.align)}
	}
}

func uapiMembers(out []Member) []Member {
	for _, m := range unsafe.Slice(&C.uapi_members[0], C.uapi_members_len) {
		out = append(out, Member{Key: C.GoString(m.key), Name: C.GoString(m.member), Offset: uintptr(m.offset)})
	}
	return out
}
