// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import (
	"dctr/conlog"
	"dctr/pvr"
	"dctr/render"
)

// scratchSize is large enough to hold a decoded 1024x1024 RGBA texture,
// the largest PVR texture dimension, matching the source's static
// scratch buffer.
const scratchSize = 1024 * 1024 * 4

// convertTexture resolves a (tsp, tcw) pair to a backend texture
// handle, per spec §4.3: consult the cache, reuse a clean handle,
// destroy and recreate a dirty one, and decode+upload a missing one.
//
// NOTE: textures are cached purely on (tsp, tcw), yet the real decoder
// also depends on TEXT_CONTROL/PAL_RAM_CTRL state that isn't part of
// either word. Two frames whose palette/control state differs but
// whose (tsp, tcw) match will incorrectly hit the cache. This is
// preserved from the source (spec §9 open question); a FindTexture
// implementation that needs to route around it has to track cache
// generations itself, outside the Entry shape this package fixes.
func (t *translator) convertTexture(tsp pvr.TSP, tcw pvr.TCW) render.TextureHandle {
	entry := t.findTexture(t.userdata, tsp, tcw)
	if entry == nil {
		conlog.Fatalf("tr: no texture cache entry for tsp=%#x tcw=%#x", uint32(tsp), uint32(tcw))
	}

	if entry.Handle != 0 && !entry.Dirty {
		return entry.Handle
	}

	if entry.Handle != 0 && entry.Dirty {
		t.backend.DestroyTexture(entry.Handle)
		entry.Handle = 0
	}

	scratch := t.scratch

	textureFmt := pvr.TextureFormat(tcw)
	mipmaps := pvr.TextureMipmaps(tcw)
	width := pvr.TextureWidth(tsp, tcw)
	height := pvr.TextureHeight(tsp, tcw)
	stride := pvr.TextureStride(tsp, tcw, t.ctx.Stride)

	if err := t.decoder.Decode(entry.Texture, width, height, stride, textureFmt,
		tcw.PixelFmt(), entry.Palette, t.ctx.PaletteFmt, scratch); err != nil {
		conlog.Fatalf("tr: texture decode failed: %v", err)
	}

	filter := pvr.FilterNearest
	if tsp.FilterMode() != 0 {
		filter = pvr.FilterBilinear
	}
	wrapU := wrapMode(tsp.ClampU(), tsp.FlipU())
	wrapV := wrapMode(tsp.ClampV(), tsp.FlipV())

	entry.Handle = t.backend.CreateTexture(filter, wrapU, wrapV, mipmaps, width, height, scratch[:width*height*4])
	entry.Filter = filter
	entry.WrapU = wrapU
	entry.WrapV = wrapV
	entry.Format = textureFmt
	entry.Width = width
	entry.Height = height
	entry.Dirty = false

	return entry.Handle
}

func wrapMode(clamp, flip bool) pvr.WrapMode {
	switch {
	case clamp:
		return pvr.WrapClampToEdge
	case flip:
		return pvr.WrapMirroredRepeat
	default:
		return pvr.WrapRepeat
	}
}
