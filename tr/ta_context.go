// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import "dctr/pvr"

// TAContext is the immutable input to Convert: a captured TA display
// list plus the handful of fields the TA frontend attaches to it
// (background geometry, autosort request, video dimensions). Nothing
// in Convert ever mutates a TAContext.
type TAContext struct {
	// Params is the TA parameter command stream, Params[0:Size).
	Params []byte

	// BGVertices holds the background's first three vertices, packed
	// as raw floats/colors per BGISP's texture/offset flags (§4.4.4).
	BGVertices []byte
	BGISP      pvr.ISP
	BGTSP      pvr.TSP
	BGTCW      pvr.TCW

	// PaletteFmt selects how a paletted texture's palette RAM is laid
	// out; opaque to the translator, forwarded to the decoder.
	PaletteFmt int

	// Stride overrides a non-twiddled texture's row stride when
	// nonzero (see pvr.TextureStride).
	Stride int

	// AlphaRef is the punch-through alpha test reference value every
	// punch-through surface inherits.
	AlphaRef uint8

	// Autosort requests a back-to-front sort of the translucent and
	// punch-through lists (§4.5).
	Autosort bool

	VideoWidth, VideoHeight int
}
