package ioc

import "testing"

func TestRequestCodes(t *testing.T) {
	tests := []struct {
		name     string
		got      uint32
		expected uint32
	}{
		// values from linux/videodev2.h and linux/dma-heap.h on LP64
		{"VIDIOC_QUERYCAP", IOR('V', 0, 104), 0x80685600},
		{"VIDIOC_G_FMT", IOWR('V', 4, 208), 0xc0d05604},
		{"VIDIOC_REQBUFS", IOWR('V', 8, 20), 0xc0145608},
		{"VIDIOC_QUERYBUF", IOWR('V', 9, 88), 0xc0585609},
		{"VIDIOC_EXPBUF", IOWR('V', 16, 64), 0xc0405610},
		{"VIDIOC_STREAMON", IOW('V', 18, 4), 0x40045612},
		{"VIDIOC_DECODER_CMD", IOWR('V', 96, 72), 0xc0485660},
		{"DMA_HEAP_IOCTL_ALLOC", IOWR('H', 0, 24), 0xc0184800},
		{"DRM_IOCTL_SET_MASTER", IO('d', 0x1e), 0x641e},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("%s = %#x, expected %#x", tc.name, tc.got, tc.expected)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	req := IOWR('V', 9, 88)
	if got := Size(req); got != 88 {
		t.Errorf("Size(%#x) = %d, want 88", req, got)
	}
	if got := Dir(req); got != Read|Write {
		t.Errorf("Dir(%#x) = %d, want %d", req, got, Read|Write)
	}
	if got := Dir(IO('d', 1)); got != None {
		t.Errorf("Dir(IO) = %d, want 0", got)
	}
}
