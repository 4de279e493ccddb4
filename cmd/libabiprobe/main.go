//go:build linux && cgo && (amd64 || arm64)

// Command libabiprobe builds the probe as a C shared library:
//
//	go build -buildmode=c-shared -o libabiprobe.so ./cmd/libabiprobe
//
// Each record gets fill_native_<key> (pattern values), fill_realistic_<key>
// and get_native_<key>_size. Fill functions ignore a NULL pointer.
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/smazurov/abiprobe/pkg/abiprobe"
	"github.com/smazurov/abiprobe/pkg/linuxav/catalog"
	"github.com/smazurov/abiprobe/pkg/linuxav/dmaheap"
	"github.com/smazurov/abiprobe/pkg/linuxav/drm"
	"github.com/smazurov/abiprobe/pkg/linuxav/v4l2"
)

func main() {}

func size(r *abiprobe.Record) C.int { return C.int(r.Size) }

// abiprobe_fill fills the record named key. mode 0 is pattern and 1 is
// realistic. It returns the record size, or -1 for an unknown key or mode.
//
//export abiprobe_fill
func abiprobe_fill(key *C.char, mode C.int, p unsafe.Pointer) C.int {
	if key == nil {
		return -1
	}
	r, err := catalog.Lookup(C.GoString(key))
	if err != nil {
		return -1
	}
	m := abiprobe.Mode(mode)
	if !r.HasTable(m) {
		return -1
	}
	r.Fill(p, m)
	return size(r)
}

//export get_off_t_size
func get_off_t_size() C.int {
	return C.int(v4l2.OffTSize())
}

//export get_native_dma_heap_ioctl_alloc
func get_native_dma_heap_ioctl_alloc() C.uint32_t {
	return C.uint32_t(dmaheap.IoctlAlloc)
}

// get_dma_heap_ioctl_alloc is the unprefixed name some harnesses bind.
//
//export get_dma_heap_ioctl_alloc
func get_dma_heap_ioctl_alloc() C.uint32_t {
	return get_native_dma_heap_ioctl_alloc()
}

//export fill_native_drm_mode_res
func fill_native_drm_mode_res(p unsafe.Pointer) {
	drm.ModeResRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_drm_mode_res
func fill_realistic_drm_mode_res(p unsafe.Pointer) {
	drm.ModeResRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_drm_mode_res_size
func get_native_drm_mode_res_size() C.int {
	return size(drm.ModeResRecord)
}

//export fill_native_drm_mode_encoder
func fill_native_drm_mode_encoder(p unsafe.Pointer) {
	drm.ModeEncoderRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_drm_mode_encoder
func fill_realistic_drm_mode_encoder(p unsafe.Pointer) {
	drm.ModeEncoderRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_drm_mode_encoder_size
func get_native_drm_mode_encoder_size() C.int {
	return size(drm.ModeEncoderRecord)
}

//export fill_native_drm_mode_connector
func fill_native_drm_mode_connector(p unsafe.Pointer) {
	drm.ModeConnectorRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_drm_mode_connector
func fill_realistic_drm_mode_connector(p unsafe.Pointer) {
	drm.ModeConnectorRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_drm_mode_connector_size
func get_native_drm_mode_connector_size() C.int {
	return size(drm.ModeConnectorRecord)
}

//export fill_native_drm_mode_crtc
func fill_native_drm_mode_crtc(p unsafe.Pointer) {
	drm.ModeCrtcRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_drm_mode_crtc
func fill_realistic_drm_mode_crtc(p unsafe.Pointer) {
	drm.ModeCrtcRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_drm_mode_crtc_size
func get_native_drm_mode_crtc_size() C.int {
	return size(drm.ModeCrtcRecord)
}

//export fill_native_drm_mode_mode_info
func fill_native_drm_mode_mode_info(p unsafe.Pointer) {
	drm.ModeInfoRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_drm_mode_mode_info
func fill_realistic_drm_mode_mode_info(p unsafe.Pointer) {
	drm.ModeInfoRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_drm_mode_mode_info_size
func get_native_drm_mode_mode_info_size() C.int {
	return size(drm.ModeInfoRecord)
}

//export fill_native_drm_mode_plane
func fill_native_drm_mode_plane(p unsafe.Pointer) {
	drm.ModePlaneRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_drm_mode_plane
func fill_realistic_drm_mode_plane(p unsafe.Pointer) {
	drm.ModePlaneRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_drm_mode_plane_size
func get_native_drm_mode_plane_size() C.int {
	return size(drm.ModePlaneRecord)
}

//export fill_native_drm_mode_fb
func fill_native_drm_mode_fb(p unsafe.Pointer) {
	drm.ModeFBRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_drm_mode_fb
func fill_realistic_drm_mode_fb(p unsafe.Pointer) {
	drm.ModeFBRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_drm_mode_fb_size
func get_native_drm_mode_fb_size() C.int {
	return size(drm.ModeFBRecord)
}

//export fill_native_dma_heap_allocation_data
func fill_native_dma_heap_allocation_data(p unsafe.Pointer) {
	dmaheap.AllocationDataRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_dma_heap_allocation_data
func fill_realistic_dma_heap_allocation_data(p unsafe.Pointer) {
	dmaheap.AllocationDataRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_dma_heap_allocation_data_size
func get_native_dma_heap_allocation_data_size() C.int {
	return size(dmaheap.AllocationDataRecord)
}

//export fill_native_v4l2_capability
func fill_native_v4l2_capability(p unsafe.Pointer) {
	v4l2.CapabilityRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_v4l2_capability
func fill_realistic_v4l2_capability(p unsafe.Pointer) {
	v4l2.CapabilityRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_v4l2_capability_size
func get_native_v4l2_capability_size() C.int {
	return size(v4l2.CapabilityRecord)
}

//export fill_native_v4l2_pix_format_mplane
func fill_native_v4l2_pix_format_mplane(p unsafe.Pointer) {
	v4l2.PixFormatMplaneRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_v4l2_pix_format_mplane
func fill_realistic_v4l2_pix_format_mplane(p unsafe.Pointer) {
	v4l2.PixFormatMplaneRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_v4l2_pix_format_mplane_size
func get_native_v4l2_pix_format_mplane_size() C.int {
	return size(v4l2.PixFormatMplaneRecord)
}

//export fill_native_v4l2_format
func fill_native_v4l2_format(p unsafe.Pointer) {
	v4l2.FormatRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_v4l2_format
func fill_realistic_v4l2_format(p unsafe.Pointer) {
	v4l2.FormatRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_v4l2_format_size
func get_native_v4l2_format_size() C.int {
	return size(v4l2.FormatRecord)
}

//export fill_native_v4l2_requestbuffers
func fill_native_v4l2_requestbuffers(p unsafe.Pointer) {
	v4l2.RequestBuffersRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_v4l2_requestbuffers
func fill_realistic_v4l2_requestbuffers(p unsafe.Pointer) {
	v4l2.RequestBuffersRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_v4l2_requestbuffers_size
func get_native_v4l2_requestbuffers_size() C.int {
	return size(v4l2.RequestBuffersRecord)
}

//export fill_native_v4l2_buffer
func fill_native_v4l2_buffer(p unsafe.Pointer) {
	v4l2.BufferRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_v4l2_buffer
func fill_realistic_v4l2_buffer(p unsafe.Pointer) {
	v4l2.BufferRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_v4l2_buffer_size
func get_native_v4l2_buffer_size() C.int {
	return size(v4l2.BufferRecord)
}

//export fill_native_v4l2_exportbuffer
func fill_native_v4l2_exportbuffer(p unsafe.Pointer) {
	v4l2.ExportBufferRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_v4l2_exportbuffer
func fill_realistic_v4l2_exportbuffer(p unsafe.Pointer) {
	v4l2.ExportBufferRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_v4l2_exportbuffer_size
func get_native_v4l2_exportbuffer_size() C.int {
	return size(v4l2.ExportBufferRecord)
}

//export fill_native_v4l2_decoder_cmd
func fill_native_v4l2_decoder_cmd(p unsafe.Pointer) {
	v4l2.DecoderCmdRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_v4l2_decoder_cmd
func fill_realistic_v4l2_decoder_cmd(p unsafe.Pointer) {
	v4l2.DecoderCmdRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_v4l2_decoder_cmd_size
func get_native_v4l2_decoder_cmd_size() C.int {
	return size(v4l2.DecoderCmdRecord)
}

//export fill_native_v4l2_ext_control
func fill_native_v4l2_ext_control(p unsafe.Pointer) {
	v4l2.ExtControlRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_v4l2_ext_control
func fill_realistic_v4l2_ext_control(p unsafe.Pointer) {
	v4l2.ExtControlRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_v4l2_ext_control_size
func get_native_v4l2_ext_control_size() C.int {
	return size(v4l2.ExtControlRecord)
}

//export fill_native_v4l2_ctrl_h264_sps
func fill_native_v4l2_ctrl_h264_sps(p unsafe.Pointer) {
	v4l2.CtrlH264SPSRecord.Fill(p, abiprobe.ModePattern)
}

//export fill_realistic_v4l2_ctrl_h264_sps
func fill_realistic_v4l2_ctrl_h264_sps(p unsafe.Pointer) {
	v4l2.CtrlH264SPSRecord.Fill(p, abiprobe.ModeRealistic)
}

//export get_native_v4l2_ctrl_h264_sps_size
func get_native_v4l2_ctrl_h264_sps_size() C.int {
	return size(v4l2.CtrlH264SPSRecord)
}
