// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import (
	"dctr/color"
	"dctr/conlog"
	"dctr/config"
	"dctr/pvr"
	"dctr/vec"
)

// parsePolyParam handles a TA_PARAM_POLY_OR_VOL or TA_PARAM_SPRITE
// command (§4.4.1): it resets the per-object parse state, records any
// face/sprite color the polygon type carries, and reserves the surface
// the following vertices build into.
func (t *translator) parsePolyParam(ctx *TAContext, rc *Context, data []byte, pcw pvr.PCW) {
	t.hasLastVertex = false
	t.vertType = pvr.VertType(pcw)

	polyType := pvr.PolyType(pcw)
	if polyType == 6 {
		return
	}

	c := pvr.NewCursor(data)
	_ = c.PCW()
	isp := pvr.ISP(c.U32())
	tsp := pvr.TSP(c.U32())
	tcw := pvr.TCW(c.U32())

	switch polyType {
	case 0:
		// vertices carry their own color; nothing to stash here.
	case 1:
		t.faceColor = color.FromFloat(c.F32(), c.F32(), c.F32(), c.F32())
	case 2:
		t.faceColor = color.FromFloat(c.F32(), c.F32(), c.F32(), c.F32())
		t.faceOffsetColor = color.FromFloat(c.F32(), c.F32(), c.F32(), c.F32())
	case 5:
		t.spriteColor = color.FromPacked(c.U32())
		t.spriteOffsetColor = color.FromPacked(c.U32())
	default:
		if config.StrictParamSizes {
			conlog.Fatalf("tr: unsupported poly type %d", polyType)
		}
		conlog.Warnf("tr: skipping unsupported poly type %d", polyType)
		return
	}

	surfIdx := rc.reserveSurf(false)
	surf := &rc.Surfs[surfIdx]

	// The global pcw's uv_16bit/gouraud/offset/texture bits (17-20)
	// override the matching bits of isp/tsp, so those flags come from
	// pcw, not tsp/isp.
	surf.Params.DepthWrite = !isp.ZWriteDisable()
	surf.Params.DepthFunc = pvr.TranslateDepthFunc(isp.DepthCompareMode())
	surf.Params.Cull = pvr.TranslateCull(isp.CullingMode())
	surf.Params.SrcBlend = pvr.TranslateSrcBlendFunc(tsp.SrcAlphaInstr())
	surf.Params.DstBlend = pvr.TranslateDstBlendFunc(tsp.DstAlphaInstr())
	surf.Params.Shade = pvr.TranslateShadeMode(tsp.TextureShadingInstr())
	surf.Params.IgnoreAlpha = !tsp.UseAlpha()
	surf.Params.IgnoreTextureAlpha = tsp.IgnoreTexAlpha()
	surf.Params.OffsetColorEnabled = pcw.Offset()
	surf.Params.AlphaTest = t.listType == pvr.ListPunchThrough
	surf.Params.AlphaRef = ctx.AlphaRef

	if t.listType != pvr.ListTranslucent && t.listType != pvr.ListTranslucentModVol {
		surf.Params.SrcBlend = pvr.BlendNone
		surf.Params.DstBlend = pvr.BlendNone
	} else if ctx.Autosort {
		surf.Params.DepthFunc = pvr.DepthLEqual
	}
	if t.listType == pvr.ListPunchThrough {
		surf.Params.DepthFunc = pvr.DepthGEqual
	}

	if pcw.Texture() {
		surf.Params.Texture = t.convertTexture(tsp, tcw)
	}
}

// parseVertParam handles a TA_PARAM_VERTEX command (§4.4.2): strip
// continuation, the nine ordinary vertex encodings, the two sprite
// encodings (with plane-normal reconstruction of the unsupplied fourth
// corner), and the modifier-volume encoding, which is dropped.
func (t *translator) parseVertParam(rc *Context, data []byte, pcw pvr.PCW) {
	if t.vertType == 17 {
		return
	}

	if t.hasLastVertex && t.lastEndOfStrip {
		rc.reserveSurf(true)
	}
	t.hasLastVertex = true
	t.lastEndOfStrip = pcw.EndOfStrip()

	c := pvr.NewCursor(data)
	_ = c.PCW()

	switch t.vertType {
	case 0:
		v := rc.reserveVert()
		v.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
		v.Color = [4]uint8(color.FromPacked(c.U32()))

	case 1:
		v := rc.reserveVert()
		v.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
		v.Color = [4]uint8(color.FromFloat(c.F32(), c.F32(), c.F32(), c.F32()))

	case 2:
		v := rc.reserveVert()
		v.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
		v.Color = [4]uint8(color.Modulate(t.faceColor, c.F32()))

	case 3:
		v := rc.reserveVert()
		v.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
		v.UV = [2]float32{c.F32(), c.F32()}
		v.Color = [4]uint8(color.FromPacked(c.U32()))
		v.OffsetColor = [4]uint8(color.FromPacked(c.U32()))

	case 4:
		v := rc.reserveVert()
		v.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
		raw := c.U32()
		v.UV[0], v.UV[1] = color.UV16(raw&0xffff, raw>>16)
		v.Color = [4]uint8(color.FromPacked(c.U32()))
		v.OffsetColor = [4]uint8(color.FromPacked(c.U32()))

	case 5:
		v := rc.reserveVert()
		v.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
		v.UV = [2]float32{c.F32(), c.F32()}
		v.Color = [4]uint8(color.FromFloat(c.F32(), c.F32(), c.F32(), c.F32()))
		v.OffsetColor = [4]uint8(color.FromFloat(c.F32(), c.F32(), c.F32(), c.F32()))

	case 6:
		v := rc.reserveVert()
		v.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
		raw := c.U32()
		v.UV[0], v.UV[1] = color.UV16(raw&0xffff, raw>>16)
		v.Color = [4]uint8(color.FromFloat(c.F32(), c.F32(), c.F32(), c.F32()))
		v.OffsetColor = [4]uint8(color.FromFloat(c.F32(), c.F32(), c.F32(), c.F32()))

	case 7:
		v := rc.reserveVert()
		v.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
		v.UV = [2]float32{c.F32(), c.F32()}
		v.Color = [4]uint8(color.Modulate(t.faceColor, c.F32()))
		v.OffsetColor = [4]uint8(color.Modulate(t.faceOffsetColor, c.F32()))

	case 8:
		v := rc.reserveVert()
		v.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
		raw := c.U32()
		v.UV[0], v.UV[1] = color.UV16(raw&0xffff, raw>>16)
		v.Color = [4]uint8(color.Modulate(t.faceColor, c.F32()))
		v.OffsetColor = [4]uint8(color.Modulate(t.faceOffsetColor, c.F32()))

	case 15, 16:
		if !pcw.EndOfStrip() {
			conlog.Fatalf("tr: sprite vertex missing end-of-strip")
		}
		if !t.parseSprite(rc, c) {
			// Degenerate or edge-on quad: the four vertices were
			// reserved but nothing is committed to a list, matching
			// the source's early return before tr_commit_surf.
			return
		}

	default:
		if config.StrictParamSizes {
			conlog.Fatalf("tr: unsupported vertex type %d", t.vertType)
		}
		conlog.Warnf("tr: skipping unsupported vertex type %d", t.vertType)
		return
	}

	if pcw.EndOfStrip() {
		t.commitSurf(rc)
	}
}

// parseSprite reconstructs a sprite quad's unsupplied fourth corner
// (§4.4.2). Sprites arrive clockwise as (bottom-left, top-left,
// top-right, bottom-right) with the last corner's z, u and v missing;
// it is expanded here into the four-vertex triangle-strip order
// (bottom-left, top-left, bottom-right, top-right) the rest of the
// pipeline expects.
// parseSprite returns false if the quad is degenerate or edge-on to
// the view (the plane's normal has zero length or zero Z), in which
// case the caller must not commit the surface.
func (t *translator) parseSprite(rc *Context, c *pvr.Cursor) bool {
	va := rc.reserveVert()
	vb := rc.reserveVert()
	vd := rc.reserveVert()
	vc := rc.reserveVert()

	va.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
	vb.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
	vc.XYZ = [3]float32{c.F32(), c.F32(), c.F32()}
	vdX, vdY := c.F32(), c.F32()

	uv := [3][2]float32{}
	for i := 0; i < 3; i++ {
		raw := c.U32()
		uv[i][0], uv[i][1] = color.UV16(raw&0xffff, raw>>16)
	}
	va.UV, vb.UV, vc.UV = uv[0], uv[1], uv[2]

	for _, v := range [4]*Vertex{va, vb, vc, vd} {
		v.Color = [4]uint8(t.spriteColor)
		v.OffsetColor = [4]uint8(t.spriteOffsetColor)
	}

	vaXYZ := vec.Vec3{X: va.XYZ[0], Y: va.XYZ[1], Z: va.XYZ[2]}
	vbXYZ := vec.Vec3{X: vb.XYZ[0], Y: vb.XYZ[1], Z: vb.XYZ[2]}
	vcXYZ := vec.Vec3{X: vc.XYZ[0], Y: vc.XYZ[1], Z: vc.XYZ[2]}

	ba := vec.Sub3(vaXYZ, vbXYZ)
	bc := vec.Sub3(vcXYZ, vbXYZ)
	n := vec.Cross(ba, bc)
	length := vec.Normalize(&n)
	d := vec.Dot(n, vbXYZ)

	if length == 0 || n.Z == 0 {
		return false
	}

	vd.XYZ[0] = vdX
	vd.XYZ[1] = vdY
	vd.XYZ[2] = (d - n.X*vdX - n.Y*vdY) / n.Z

	vaUV := vec.Vec2{X: va.UV[0], Y: va.UV[1]}
	vbUV := vec.Vec2{X: vb.UV[0], Y: vb.UV[1]}
	vcUV := vec.Vec2{X: vc.UV[0], Y: vc.UV[1]}
	uvBA := vec.Sub2(vaUV, vbUV)
	uvBC := vec.Sub2(vcUV, vbUV)
	vdUV := vec.Add2(vec.Add2(vbUV, uvBA), uvBC)
	vd.UV = [2]float32{vdUV.X, vdUV.Y}

	return true
}
