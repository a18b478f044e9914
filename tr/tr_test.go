// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import (
	"encoding/binary"
	"math"
	"testing"

	"dctr/pvr"
	"dctr/render"
	"dctr/texcache"
)

func f32bits(f float32) uint32 { return math.Float32bits(f) }

func putU32(buf []byte, off int, v uint32) { binary.LittleEndian.PutUint32(buf[off:], v) }
func putF32(buf []byte, off int, v float32) { putU32(buf, off, f32bits(v)) }

// polyParam0 builds a 32-byte TA_PARAM_POLY_OR_VOL command for an
// ordinary (poly_type 0) polygon: pcw, isp, tsp, tcw.
func polyParam0(pcw pvr.PCW, isp pvr.ISP, tsp pvr.TSP, tcw pvr.TCW) []byte {
	buf := make([]byte, 32)
	putU32(buf, 0, uint32(pcw))
	putU32(buf, 4, uint32(isp))
	putU32(buf, 8, uint32(tsp))
	putU32(buf, 12, uint32(tcw))
	return buf
}

// vertParam0 builds a 32-byte TA_PARAM_VERTEX command for vert_type 0:
// pcw, xyz, packed base color.
func vertParam0(pcw pvr.PCW, x, y, z float32, packedColor uint32) []byte {
	buf := make([]byte, 32)
	putU32(buf, 0, uint32(pcw))
	putF32(buf, 4, x)
	putF32(buf, 8, y)
	putF32(buf, 12, z)
	putU32(buf, 16, packedColor)
	return buf
}

// vertParam4 builds a 32-byte TA_PARAM_VERTEX command for vert_type 4:
// pcw, xyz, one packed 16-bit uv word, packed base color, packed
// offset color.
func vertParam4(pcw pvr.PCW, x, y, z float32, uv16, packedColor, packedOffsetColor uint32) []byte {
	buf := make([]byte, 32)
	putU32(buf, 0, uint32(pcw))
	putF32(buf, 4, x)
	putF32(buf, 8, y)
	putF32(buf, 12, z)
	putU32(buf, 16, uv16)
	putU32(buf, 20, packedColor)
	putU32(buf, 24, packedOffsetColor)
	return buf
}

// spriteParam builds a 32-byte TA_PARAM_SPRITE global command
// (poly_type 5): pcw, isp, tsp, tcw, base color, offset color.
func spriteParam(pcw pvr.PCW, isp pvr.ISP, tsp pvr.TSP, tcw pvr.TCW, baseColor, offsetColor uint32) []byte {
	buf := make([]byte, 32)
	putU32(buf, 0, uint32(pcw))
	putU32(buf, 4, uint32(isp))
	putU32(buf, 8, uint32(tsp))
	putU32(buf, 12, uint32(tcw))
	putU32(buf, 16, baseColor)
	putU32(buf, 20, offsetColor)
	return buf
}

// spriteVert builds a 64-byte sprite TA_PARAM_VERTEX command: pcw,
// three complete (x,y,z) corners, the fourth corner's (x,y) only, then
// three packed 16-bit (u,v) pairs for the first three corners.
func spriteVert(pcw pvr.PCW, xyz [3][3]float32, x4, y4 float32, uv [3][2]uint16) []byte {
	buf := make([]byte, 64)
	putU32(buf, 0, uint32(pcw))
	off := 4
	for _, v := range xyz {
		putF32(buf, off, v[0])
		putF32(buf, off+4, v[1])
		putF32(buf, off+8, v[2])
		off += 12
	}
	putF32(buf, off, x4)
	putF32(buf, off+4, y4)
	off += 8
	for _, p := range uv {
		putU32(buf, off, uint32(p[0])|uint32(p[1])<<16)
		off += 4
	}
	return buf
}

// bgVertices builds a minimal valid ctx.BGVertices buffer for the
// default (untextured, no offset color) BGISP every test in this file
// uses: three vertices of xyz (12 bytes) + packed base color (4 bytes)
// each, per the field layout parseBGVert reads (tr/background.go:70-95).
// All-zero content is fine — Convert always runs parseBG before any of
// a test's own Params, so the buffer only needs to be long enough not
// to panic.
func bgVertices() []byte {
	return make([]byte, 3*16)
}

func eol() []byte {
	buf := make([]byte, 32)
	putU32(buf, 0, uint32(ParamEOLPCW))
	return buf
}

// ParamEOLPCW is the PCW for a TA_PARAM_END_OF_LIST command; a bare
// word is enough since EOL carries no other fields.
const ParamEOLPCW = pvr.ParamEndOfList << 29

func noTexture(userdata any, tsp pvr.TSP, tcw pvr.TCW) *texcache.Entry {
	return nil
}

// stubEntry always misses the handle cache, forcing convertTexture down
// its decode-and-create path on every call.
func stubEntry(userdata any, tsp pvr.TSP, tcw pvr.TCW) *texcache.Entry {
	return &texcache.Entry{}
}

// stubBackend is a render.Backend that hands out a fixed handle and
// otherwise does nothing, for tests that need a textured polygon to
// reach convertTexture without a real GPU.
type stubBackend struct{}

func (stubBackend) CreateTexture(pvr.FilterMode, pvr.WrapMode, pvr.WrapMode, bool, int, int, []byte) render.TextureHandle {
	return 1
}
func (stubBackend) DestroyTexture(render.TextureHandle)                          {}
func (stubBackend) BeginSurfaces(int, int, []render.Vertex, int, []uint32, int) {}
func (stubBackend) DrawSurface(render.Surface)                                  {}
func (stubBackend) EndSurfaces()                                                {}

func opaquePCW(listType int) pvr.PCW {
	return pvr.PCW(pvr.ParamPolyOrVol<<29 | uint32(listType)<<26)
}

// vertPCW builds an ordinary (vert_type 0) TA_PARAM_VERTEX pcw.
func vertPCW(endOfStrip bool) pvr.PCW {
	w := uint32(pvr.ParamVertex << 29)
	if endOfStrip {
		w |= 1 << 25
	}
	return pvr.PCW(w)
}

// lastSurf returns the most recently committed surface in a list.
// Convert always synthesizes a background quad into the opaque list
// first (§4.4.4), and it never merges with a test's own opaque-list
// geometry here (the background never sets IgnoreAlpha, every
// polyParam0/spriteParam-based fixture in this file leaves tsp's
// use_alpha bit clear, so IgnoreAlpha comes out true and the
// SurfaceParams never compare equal) — tests that want their own
// surface look at the last entry rather than the first.
func lastSurf(rc *Context, list List) *Surface {
	return &rc.Surfs[list.Surfs[len(list.Surfs)-1]]
}

func TestConvertSingleOpaqueTriangle(t *testing.T) {
	pcw := opaquePCW(pvr.ListOpaque)
	data := append(
		polyParam0(pcw, 0, 0, 0),
		vertParam0(vertPCW(false), 0, 0, 0, 0xFFFFFFFF)...,
	)
	data = append(data, vertParam0(vertPCW(false), 1, 0, 0, 0xFFFFFFFF)...)
	data = append(data, vertParam0(vertPCW(true), 0, 1, 0, 0xFFFFFFFF)...) // end_of_strip
	data = append(data, eol()...)

	ctx := &TAContext{Params: data, BGVertices: bgVertices(), VideoWidth: 640, VideoHeight: 480}
	rc := NewContext(0, 0, 0)

	Convert(rc, ctx, Deps{FindTexture: noTexture})

	// Convert always synthesizes a background quad into the opaque list
	// first (§4.4.4); this triangle lands as the second entry.
	list := rc.Lists[pvr.ListOpaque]
	if len(list.Surfs) != 2 {
		t.Fatalf("opaque list has %d surfaces, want 2 (synthesized background + triangle)", len(list.Surfs))
	}
	surf := lastSurf(rc, list)
	if surf.NumVerts != 3 {
		t.Errorf("triangle index count = %d, want 3", surf.NumVerts)
	}
}

func TestConvertPunchThroughQuadSplitsPerTriangle(t *testing.T) {
	pcw := opaquePCW(pvr.ListPunchThrough)
	data := polyParam0(pcw, 0, 0, 0)
	for i, xy := range [][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		vpcw := vertPCW(i == 3)
		data = append(data, vertParam0(vpcw, xy[0], xy[1], 0, 0xFFFFFFFF)...)
	}
	data = append(data, eol()...)

	ctx := &TAContext{Params: data, BGVertices: bgVertices(), AlphaRef: 128}
	rc := NewContext(0, 0, 0)
	Convert(rc, ctx, Deps{FindTexture: noTexture})

	// commitSurf splits the quad's strip into one surface per triangle,
	// but both triangles come from the same poly command and so carry
	// bit-identical SurfaceParams; generateIndices then merges them back
	// into a single adjacent-surface run (§4.6), leaving one surface
	// with both triangles' indices.
	list := rc.Lists[pvr.ListPunchThrough]
	if len(list.Surfs) != 1 {
		t.Fatalf("punch-through list has %d surfaces, want 1 (merged from the two split triangles)", len(list.Surfs))
	}
	s := rc.Surfs[list.Surfs[0]]
	if s.NumVerts != 6 {
		t.Errorf("merged surface has %d indices, want 6 (two triangles)", s.NumVerts)
	}
	if !s.Params.AlphaTest {
		t.Errorf("punch-through surface AlphaTest = false, want true")
	}
	if s.Params.DepthFunc != pvr.DepthGEqual {
		t.Errorf("punch-through surface DepthFunc = %v, want DepthGEqual", s.Params.DepthFunc)
	}
}

func TestConvertTranslucentAutosortOrdersBackToFront(t *testing.T) {
	pcw := opaquePCW(pvr.ListTranslucent)

	// Each triangle gets a distinct CullingMode so their SurfaceParams
	// differ pairwise; otherwise generateIndices' adjacent-surface merge
	// (§4.6) would fold all three into one before this test can inspect
	// per-surface order.
	tri := func(z float32, cullingMode uint32) []byte {
		isp := pvr.ISP(cullingMode << 30)
		buf := polyParam0(pcw, isp, 0, 0)
		buf = append(buf, vertParam0(vertPCW(false), 0, 0, z, 0xFFFFFFFF)...)
		buf = append(buf, vertParam0(vertPCW(false), 1, 0, z, 0xFFFFFFFF)...)
		buf = append(buf, vertParam0(vertPCW(true), 0, 1, z, 0xFFFFFFFF)...)
		return buf
	}

	var data []byte
	data = append(data, tri(5, 0)...)  // middle
	data = append(data, tri(1, 2)...)  // farthest (smallest Z, drawn first)
	data = append(data, tri(10, 3)...) // nearest
	data = append(data, eol()...)

	ctx := &TAContext{Params: data, BGVertices: bgVertices(), Autosort: true}
	rc := NewContext(0, 0, 0)
	Convert(rc, ctx, Deps{FindTexture: noTexture})

	list := rc.Lists[pvr.ListTranslucent]
	if len(list.Surfs) != 3 {
		t.Fatalf("translucent list has %d surfaces, want 3", len(list.Surfs))
	}

	minZ := func(surfIdx int) float32 {
		s := rc.Surfs[surfIdx]
		// after index generation FirstVert/NumVerts address rc.Indices
		idx := rc.Indices[s.FirstVert]
		return rc.Verts[idx].XYZ[2]
	}
	z0, z1, z2 := minZ(list.Surfs[0]), minZ(list.Surfs[1]), minZ(list.Surfs[2])
	if !(z0 <= z1 && z1 <= z2) {
		t.Errorf("translucent surfaces not sorted back to front by minZ: %v, %v, %v", z0, z1, z2)
	}
}

func TestConvertSpriteReconstructsFourthCorner(t *testing.T) {
	pcw := pvr.PCW(pvr.ParamSprite<<29 | pvr.ListOpaque<<26)
	data := spriteParam(pcw, 0, 0, 0, 0xFFFFFFFF, 0)

	vpcw := pvr.PCW(pvr.ParamVertex<<29 | 1<<25) // end_of_strip
	// a square in the z=0 plane: a=(0,0,0) b=(0,1,0) c=(1,1,0) d=(1,0,?)
	data = append(data, spriteVert(vpcw,
		[3][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		1, 0,
		[3][2]uint16{{0, 0}, {0, 0}, {0, 0}},
	)...)
	data = append(data, eol()...)

	ctx := &TAContext{Params: data, BGVertices: bgVertices()}
	rc := NewContext(0, 0, 0)
	Convert(rc, ctx, Deps{FindTexture: noTexture})

	list := rc.Lists[pvr.ListOpaque]
	if len(list.Surfs) != 2 {
		t.Fatalf("opaque list has %d surfaces, want 2 (synthesized background + sprite)", len(list.Surfs))
	}
	// a planar z=0 quad's reconstructed corner must also land on z=0.
	s := lastSurf(rc, list)
	for _, idx := range rc.Indices[s.FirstVert : s.FirstVert+s.NumVerts] {
		if math.Abs(float64(rc.Verts[idx].XYZ[2])) > 1e-4 {
			t.Errorf("reconstructed sprite vertex z = %v, want ~0", rc.Verts[idx].XYZ[2])
		}
	}
}

func TestConvertTexturedVertexDecodesPacked16BitUV(t *testing.T) {
	// texture + uv_16bit set, color_type left at 0 -> vert_type 4.
	pcw := pvr.PCW(pvr.ParamPolyOrVol<<29 | pvr.ListOpaque<<26 | 1<<20 | 1<<17)
	data := polyParam0(pcw, 0, 0, 0)

	// raw's low 16 bits (0x3f80) land in v's slot and its high 16 bits
	// (0x4000) in u's slot once color.UV16 swaps them, decoding to
	// UV = (2, 1). packedColor/packedOffsetColor are distinguishable
	// ARGB words: if the uv read consumed two words instead of one,
	// every field after it would be read four bytes short and these
	// wouldn't decode to the values asserted below.
	const raw = 0x40003f80
	vpcw := pvr.PCW(pvr.ParamVertex<<29 | 1<<25) // end_of_strip
	data = append(data, vertParam4(vpcw, 0, 0, 0, raw, 0xaabbccdd, 0x11223344)...)
	data = append(data, eol()...)

	ctx := &TAContext{Params: data, BGVertices: bgVertices()}
	rc := NewContext(0, 0, 0)
	Convert(rc, ctx, Deps{Backend: stubBackend{}, FindTexture: stubEntry})

	list := rc.Lists[pvr.ListOpaque]
	if len(list.Surfs) != 2 {
		t.Fatalf("opaque list has %d surfaces, want 2 (synthesized background + vertex)", len(list.Surfs))
	}
	// a single vertex never closes a triangle, so index generation emits
	// no indices for it — fetch it directly, past the background's own
	// verts.
	v := rc.Verts[len(rc.Verts)-1]
	if v.UV[0] != 2 || v.UV[1] != 1 {
		t.Errorf("UV = %v, want (2, 1)", v.UV)
	}
	if want := [4]uint8{0xbb, 0xcc, 0xdd, 0xaa}; v.Color != want {
		t.Errorf("Color = %v, want %v", v.Color, want)
	}
	if want := [4]uint8{0x22, 0x33, 0x44, 0x11}; v.OffsetColor != want {
		t.Errorf("OffsetColor = %v, want %v", v.OffsetColor, want)
	}
}

func TestConvertSpriteDecodesPacked16BitUV(t *testing.T) {
	pcw := pvr.PCW(pvr.ParamSprite<<29 | pvr.ListOpaque<<26)
	data := spriteParam(pcw, 0, 0, 0, 0xFFFFFFFF, 0)

	vpcw := pvr.PCW(pvr.ParamVertex<<29 | 1<<25) // end_of_strip
	// corner a carries a non-zero packed uv; b and c stay zero so the
	// test isolates a's word. A word laid out as u16=0x3f80, v16=0x4000
	// bit-casts (with the u/v slots swapped on read) to UV = (2, 1) —
	// values that would come out wrong (or from the wrong word
	// entirely) if the reader consumed two 32-bit words per pair
	// instead of splitting a single one.
	data = append(data, spriteVert(vpcw,
		[3][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		1, 0,
		[3][2]uint16{{0x3f80, 0x4000}, {0, 0}, {0, 0}},
	)...)
	data = append(data, eol()...)

	ctx := &TAContext{Params: data, BGVertices: bgVertices()}
	rc := NewContext(0, 0, 0)
	Convert(rc, ctx, Deps{FindTexture: noTexture})

	list := rc.Lists[pvr.ListOpaque]
	if len(list.Surfs) != 2 {
		t.Fatalf("opaque list has %d surfaces, want 2 (synthesized background + sprite)", len(list.Surfs))
	}
	s := lastSurf(rc, list)
	// corner a is the strip's first vertex.
	va := rc.Verts[rc.Indices[s.FirstVert]]
	if va.UV[0] != 2 || va.UV[1] != 1 {
		t.Errorf("corner a UV = %v, want (2, 1)", va.UV)
	}
}

func TestConvertDegenerateSpriteDropped(t *testing.T) {
	pcw := pvr.PCW(pvr.ParamSprite<<29 | pvr.ListOpaque<<26)
	data := spriteParam(pcw, 0, 0, 0, 0xFFFFFFFF, 0)

	vpcw := pvr.PCW(pvr.ParamVertex<<29 | 1<<25)
	// all three supplied corners colinear -> zero-area quad, degenerate.
	data = append(data, spriteVert(vpcw,
		[3][3]float32{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		3, 0,
		[3][2]uint16{{0, 0}, {0, 0}, {0, 0}},
	)...)
	data = append(data, eol()...)

	ctx := &TAContext{Params: data, BGVertices: bgVertices()}
	rc := NewContext(0, 0, 0)
	Convert(rc, ctx, Deps{FindTexture: noTexture})

	// the degenerate sprite commits nothing; only the synthesized
	// background quad (§4.4.4) remains in the list.
	list := rc.Lists[pvr.ListOpaque]
	if len(list.Surfs) != 1 {
		t.Fatalf("degenerate sprite should not commit a surface, got %d surfaces (want 1, background only)", len(list.Surfs))
	}
}

func TestConvertMergesAdjacentIdenticalSurfaces(t *testing.T) {
	pcw := opaquePCW(pvr.ListOpaque)

	tri := func(x float32) []byte {
		buf := polyParam0(pcw, 0, 0, 0)
		buf = append(buf, vertParam0(vertPCW(false), x, 0, 0, 0xFFFFFFFF)...)
		buf = append(buf, vertParam0(vertPCW(false), x+1, 0, 0, 0xFFFFFFFF)...)
		buf = append(buf, vertParam0(vertPCW(true), x, 1, 0, 0xFFFFFFFF)...)
		return buf
	}

	var data []byte
	data = append(data, tri(0)...)
	data = append(data, tri(10)...)
	data = append(data, eol()...)

	ctx := &TAContext{Params: data, BGVertices: bgVertices()}
	rc := NewContext(0, 0, 0)
	Convert(rc, ctx, Deps{FindTexture: noTexture})

	// the two triangles share identical SurfaceParams and merge (§4.6);
	// the synthesized background quad (§4.4.4) never merges with them
	// (it never sets IgnoreAlpha, so its Params always differ), leaving
	// one entry for the background and one for the merged pair.
	list := rc.Lists[pvr.ListOpaque]
	if len(list.Surfs) != 2 {
		t.Fatalf("opaque list has %d surfaces, want 2 (background + two merged triangles)", len(list.Surfs))
	}
	s := lastSurf(rc, list)
	if s.NumVerts != 6 {
		t.Errorf("merged surface has %d indices, want 6 (two triangles)", s.NumVerts)
	}
}
