// SPDX-License-Identifier: GPL-2.0-or-later

package pvr

// Pixel formats a TCW's PixelFmt field can select.
const (
	PixelARGB1555 = 0
	PixelRGB565   = 1
	PixelARGB4444 = 2
	PixelYUV422   = 3
	PixelBump     = 4
	PixelPal4BPP  = 5
	PixelPal8BPP  = 6
	PixelReserved = 7
)

// TCW is the Texture Control Word: where and how a texture is stored in
// PVR memory.
type TCW uint32

func (t TCW) PixelFmt() int     { return int(t>>27) & 0x7 }
func (t TCW) ScanOrder() bool   { return t&(1<<26) != 0 } // twiddled when false
func (t TCW) MipMapped() bool   { return t&(1<<31) != 0 }
func (t TCW) VQCompressed() bool { return t&(1<<30) != 0 }
func (t TCW) PaletteSelector() int { return int(t>>21) & 0x3f }
func (t TCW) TextureAddr() uint32  { return uint32(t) & 0x1fffff }

// TextureFormat returns the decoder-facing pixel format. It is a thin
// passthrough today, but keeps the TCW bit layout out of callers that
// only care about the logical format.
func TextureFormat(tcw TCW) int {
	return tcw.PixelFmt()
}

// TextureMipmaps reports whether tcw describes a mipmapped texture.
func TextureMipmaps(tcw TCW) bool {
	return tcw.MipMapped()
}

// TextureWidth and TextureHeight compute the texture's pixel dimensions
// from the TSP's log2-encoded size fields. Mipmapped textures are
// always square on real hardware, so their height follows the width.
func TextureWidth(tsp TSP, tcw TCW) int {
	return 8 << tsp.TextureUSize()
}

func TextureHeight(tsp TSP, tcw TCW) int {
	if tcw.MipMapped() {
		return TextureWidth(tsp, tcw)
	}
	return 8 << tsp.TextureVSize()
}

// TextureStride returns the row stride in pixels, honoring a
// ta_context-supplied override (used by the TA frontend for
// non-twiddled textures with a stride unrelated to their width).
func TextureStride(tsp TSP, tcw TCW, strideOverride int) int {
	if tcw.ScanOrder() && strideOverride > 0 {
		return strideOverride
	}
	return TextureWidth(tsp, tcw)
}
