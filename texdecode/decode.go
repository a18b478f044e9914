// SPDX-License-Identifier: GPL-2.0-or-later

// Package texdecode declares the interface for pvr_tex_decode, the
// twiddled/compressed/paletted PVR texture decoder. The real decoder is
// out of scope for this module (see spec §1); Stub provides a decoder
// usable by tests and by callers with no real PVR memory to decode.
package texdecode

// Decoder turns raw PVR texture (and, for paletted formats, palette)
// memory into tightly packed RGBA8888 pixels.
type Decoder interface {
	Decode(src []byte, width, height, stride, textureFmt, pixelFmt int, palette []byte, paletteFmt int, dst []byte) error
}

// Stub is a Decoder that fills dst with a flat mid-gray, opaque color.
// It never errors and never reads src/palette, which makes it a safe
// default for exercising the texture-binding path without a real PVR
// texture image.
type Stub struct{}

func (Stub) Decode(src []byte, width, height, stride, textureFmt, pixelFmt int, palette []byte, paletteFmt int, dst []byte) error {
	n := width * height * 4
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i += 4 {
		dst[i+0] = 0x80
		dst[i+1] = 0x80
		dst[i+2] = 0x80
		dst[i+3] = 0xff
	}
	return nil
}

var _ Decoder = Stub{}
