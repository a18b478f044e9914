// SPDX-License-Identifier: GPL-2.0-or-later

package pvr

import "sync"

// DepthFunc, CullFace, BlendFunc and ShadeMode mirror the backend's
// draw-state enums. They exist in this package (rather than being
// imported from a render backend) so pvr stays free of a render
// dependency; render.Backend implementations translate them 1:1.
type DepthFunc int

const (
	DepthNever DepthFunc = iota
	DepthGreater
	DepthEqual
	DepthGEqual
	DepthLess
	DepthNEqual
	DepthLEqual
	DepthAlways
)

type CullFace int

const (
	CullNone CullFace = iota
	CullBack
	CullFront
)

type BlendFunc int

const (
	BlendNone BlendFunc = iota
	BlendZero
	BlendOne
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendSrcColor
	BlendOneMinusSrcColor
)

type ShadeMode int

const (
	ShadeDecal ShadeMode = iota
	ShadeModulate
	ShadeDecalAlpha
	ShadeModulateAlpha
)

type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClampToEdge
	WrapMirroredRepeat
)

// These tables are fixed hardware mappings, laid out bit-exactly in the
// order the PVR2 TA documents them; they are looked up, never computed.
var (
	depthFuncs = [8]DepthFunc{
		DepthNever, DepthGreater, DepthEqual, DepthGEqual,
		DepthLess, DepthNEqual, DepthLEqual, DepthAlways,
	}

	cullModes = [4]CullFace{CullNone, CullNone, CullBack, CullFront}

	srcBlendFuncs = [8]BlendFunc{
		BlendZero, BlendOne,
		BlendDstColor, BlendOneMinusDstColor,
		BlendSrcAlpha, BlendOneMinusSrcAlpha,
		BlendDstAlpha, BlendOneMinusDstAlpha,
	}

	dstBlendFuncs = [8]BlendFunc{
		BlendZero, BlendOne,
		BlendSrcColor, BlendOneMinusSrcColor,
		BlendSrcAlpha, BlendOneMinusSrcAlpha,
		BlendDstAlpha, BlendOneMinusDstAlpha,
	}

	shadeModes = [4]ShadeMode{
		ShadeDecal, ShadeModulate, ShadeDecalAlpha, ShadeModulateAlpha,
	}

	tablesOnce sync.Once
)

// InitTables is the idempotent per-conversion table initializer the
// source calls as ta_init_tables(). The tables here are compile-time
// constant, so this only needs to exist to give tr.Convert the same
// call site the source has; it is safe to call repeatedly or
// concurrently.
func InitTables() {
	tablesOnce.Do(func() {})
}

func TranslateDepthFunc(depthCompareMode int) DepthFunc { return depthFuncs[depthCompareMode] }
func TranslateCull(cullMode int) CullFace               { return cullModes[cullMode] }
func TranslateSrcBlendFunc(blendFunc int) BlendFunc      { return srcBlendFuncs[blendFunc] }
func TranslateDstBlendFunc(blendFunc int) BlendFunc      { return dstBlendFuncs[blendFunc] }
func TranslateShadeMode(shadeMode int) ShadeMode         { return shadeModes[shadeMode] }
