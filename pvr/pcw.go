// SPDX-License-Identifier: GPL-2.0-or-later

// Package pvr decodes the raw bit layouts the PowerVR2 Tile Accelerator
// uses for its command stream: the Parameter Control Word and the
// ISP/TSP/TCW instruction words, plus the lookup tables that translate
// their packed hardware fields into backend-facing enums.
package pvr

// Parameter types, as carried in PCW bits 29-31.
const (
	ParamEndOfList    = 0
	ParamUserTileClip = 1
	ParamObjListSet   = 2
	ParamPolyOrVol    = 4
	ParamSprite       = 5
	ParamVertex       = 7
)

// List types, as carried in PCW bits 26-28 for TA_PARAM_POLY_OR_VOL and
// TA_PARAM_SPRITE commands.
const (
	ListOpaque = iota
	ListOpaqueModVol
	ListTranslucent
	ListTranslucentModVol
	ListPunchThrough
	NumLists
)

// Vertex parameter formats. 0-8 are ordinary polygon vertices; 15/16 are
// sprite vertices (untextured/textured); 17 is a modifier-volume vertex.
const (
	VertNumTypes = 18
	VertNone     = VertNumTypes // sentinel: no vertex type is current
)

// PCW is the first 32 bits of every TA parameter.
type PCW uint32

func (p PCW) ParaType() int { return int(p>>29) & 0x7 }
func (p PCW) ListType() int { return int(p>>26) & 0x7 }

func (p PCW) EndOfStrip() bool { return p&(1<<25) != 0 }
func (p PCW) Shadow() bool     { return p&(1<<24) != 0 }
func (p PCW) Volume() bool     { return p&(1<<23) != 0 }

// ColorType selects how a vertex's (or face's) color is encoded:
// 0 = packed ARGB, 1 = floating point, 2 = intensity.
func (p PCW) ColorType() int { return int(p>>21) & 0x3 }

func (p PCW) Texture() bool { return p&(1<<20) != 0 }
func (p PCW) Offset() bool  { return p&(1<<19) != 0 }
func (p PCW) Gouraud() bool { return p&(1<<18) != 0 }
func (p PCW) UV16Bit() bool { return p&(1<<17) != 0 }

// ListTypeValid reports whether this PCW carries a new current list
// type: only global (poly/sprite) parameters do, and only while no list
// is currently open.
func ListTypeValid(pcw PCW, currentList int) bool {
	if pcw.ParaType() != ParamPolyOrVol && pcw.ParaType() != ParamSprite {
		return false
	}
	return currentList == NumLists
}

// PolyType selects which overlay of the global polygon parameter is
// present: 0 = vertices carry their own (packed or floating) color, 1/2
// = intensity-shaded polygons with a face color (and, for 2, a face
// offset color) stored in the global parameter, 5 = sprite, 6 = modifier
// volume.
func PolyType(pcw PCW) int {
	if pcw.ParaType() == ParamSprite {
		return 5
	}
	if pcw.Volume() {
		return 6
	}
	if pcw.ColorType() == 2 {
		if pcw.Offset() {
			return 2
		}
		return 1
	}
	return 0
}

// VertType selects which of the nine ordinary vertex encodings, the two
// sprite encodings, or the modifier-volume encoding a TA_PARAM_VERTEX
// command uses.
func VertType(pcw PCW) int {
	if pcw.Volume() {
		return 17
	}
	if pcw.ParaType() == ParamSprite {
		if pcw.Texture() {
			return 16
		}
		return 15
	}

	colorType := pcw.ColorType()
	if !pcw.Texture() {
		switch colorType {
		case 0:
			return 0
		case 1:
			return 1
		default:
			return 2
		}
	}

	uv16 := 0
	if pcw.UV16Bit() {
		uv16 = 1
	}
	switch colorType {
	case 0:
		return 3 + uv16
	case 1:
		return 5 + uv16
	default:
		return 7 + uv16
	}
}

// ParamSize returns the byte length of the command at data's head, given
// its PCW and the translator's current vertex type (needed to size
// TA_PARAM_VERTEX commands, whose layout depends on state set by the
// most recent polygon parameter).
func ParamSize(pcw PCW, vertType int) int {
	switch pcw.ParaType() {
	case ParamEndOfList, ParamUserTileClip, ParamObjListSet:
		return 32
	case ParamPolyOrVol, ParamSprite:
		if PolyType(pcw) == 2 {
			return 64
		}
		return 32
	case ParamVertex:
		switch vertType {
		case 5, 6, 15, 16, 17:
			return 64
		default:
			return 32
		}
	default:
		return 32
	}
}
