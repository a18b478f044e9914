// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import (
	"dctr/color"
	"dctr/pvr"
	"dctr/vec"
)

// parseBG synthesizes the framebuffer-clearing background quad as an
// OPAQUE surface (§4.4.4), run once before the main parameter loop.
func (t *translator) parseBG(ctx *TAContext, rc *Context) {
	t.listType = pvr.ListOpaque

	surfIdx := rc.reserveSurf(false)
	surf := &rc.Surfs[surfIdx]

	if ctx.BGISP.Texture() {
		surf.Params.Texture = t.convertTexture(ctx.BGTSP, ctx.BGTCW)
	}
	surf.Params.DepthWrite = !ctx.BGISP.ZWriteDisable()
	surf.Params.DepthFunc = pvr.TranslateDepthFunc(ctx.BGISP.DepthCompareMode())
	surf.Params.Cull = pvr.TranslateCull(ctx.BGISP.CullingMode())
	surf.Params.SrcBlend = pvr.BlendNone
	surf.Params.DstBlend = pvr.BlendNone

	va := rc.reserveVert()
	vb := rc.reserveVert()
	vc := rc.reserveVert()
	vd := rc.reserveVert()

	off := 0
	off = parseBGVert(ctx, off, va)
	off = parseBGVert(ctx, off, vb)
	_ = parseBGVert(ctx, off, vc)

	// ISP_BACKGND_D would overwrite va/vb/vc's Z with ctx.bg_depth here.
	// The source leaves this commented out pending a game that actually
	// exercises textured backgrounds to verify against; we preserve
	// that and do not overwrite (spec §9 open question).

	vaXYZ := vec.Vec3{X: va.XYZ[0], Y: va.XYZ[1], Z: va.XYZ[2]}
	vbXYZ := vec.Vec3{X: vb.XYZ[0], Y: vb.XYZ[1], Z: vb.XYZ[2]}
	vcXYZ := vec.Vec3{X: vc.XYZ[0], Y: vc.XYZ[1], Z: vc.XYZ[2]}
	abXYZ := vec.Sub3(vbXYZ, vaXYZ)
	acXYZ := vec.Sub3(vcXYZ, vaXYZ)
	vdXYZ := vec.Add3(vec.Add3(vbXYZ, abXYZ), acXYZ)
	vd.XYZ = [3]float32{vdXYZ.X, vdXYZ.Y, vdXYZ.Z}

	vaUV := vec.Vec2{X: va.UV[0], Y: va.UV[1]}
	vbUV := vec.Vec2{X: vb.UV[0], Y: vb.UV[1]}
	vcUV := vec.Vec2{X: vc.UV[0], Y: vc.UV[1]}
	abUV := vec.Sub2(vbUV, vaUV)
	acUV := vec.Sub2(vcUV, vaUV)
	vdUV := vec.Add2(vec.Add2(vbUV, abUV), acUV)
	vd.UV = [2]float32{vdUV.X, vdUV.Y}

	vd.Color = va.Color
	vd.OffsetColor = va.OffsetColor

	t.commitSurf(rc)

	t.listType = pvr.NumLists
}

// parseBGVert decodes one of the background's three supplied vertices
// starting at byte offset off in ctx.BGVertices, and returns the offset
// just past it.
func parseBGVert(ctx *TAContext, off int, v *Vertex) int {
	c := pvr.NewCursor(ctx.BGVertices[off:])
	v.XYZ[0] = c.F32()
	v.XYZ[1] = c.F32()
	v.XYZ[2] = c.F32()
	off += 12

	if ctx.BGISP.Texture() {
		c = pvr.NewCursor(ctx.BGVertices[off:])
		v.UV[0] = c.F32()
		v.UV[1] = c.F32()
		off += 8
	}

	baseColor := pvr.NewCursor(ctx.BGVertices[off:]).U32()
	v.Color = [4]uint8(color.FromPacked(baseColor))
	off += 4

	if ctx.BGISP.Offset() {
		offsetColor := pvr.NewCursor(ctx.BGVertices[off:]).U32()
		v.OffsetColor = [4]uint8(color.FromPacked(offsetColor))
		off += 4
	}

	return off
}
