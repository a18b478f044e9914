// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import (
	"dctr/color"
	"dctr/config"
	"dctr/conlog"
	"dctr/pvr"
	"dctr/render"
	"dctr/texcache"
	"dctr/texdecode"
)

// sharedScratch is the package-level decode buffer config.ReuseScratchBuffer
// reuses across Convert calls, mirroring the source's static
// uint8_t converted[1024*1024*4]. Safe only single-threaded; see
// package config.
var sharedScratch []byte

// Deps bundles Convert's three external collaborators: the render
// backend surfaces are drawn through, the texture cache callback, and
// the PVR texture decoder. None of their implementations are this
// module's concern (spec §1); Convert only calls through the
// interfaces.
type Deps struct {
	Backend     render.Backend
	UserData    any
	FindTexture texcache.FindFunc
	Decoder     texdecode.Decoder

	// Scratch, if non-nil, is the decode buffer every convertTexture
	// call in this Convert uses. If nil, Convert uses the package-level
	// shared buffer or allocates one for the call; see
	// config.ReuseScratchBuffer.
	Scratch []byte
}

// translator is the per-Convert-call transient state: struct tr in the
// source. It is never retained past one Convert call.
type translator struct {
	backend     render.Backend
	userdata    any
	findTexture texcache.FindFunc
	decoder     texdecode.Decoder
	scratch     []byte
	ctx         *TAContext

	hasLastVertex   bool
	lastEndOfStrip  bool
	listType        int
	vertType        int

	faceColor         color.RGBA
	faceOffsetColor   color.RGBA
	spriteColor       color.RGBA
	spriteOffsetColor color.RGBA
}

// Convert parses ctx.Params end to end and populates rc: the background
// quad, then every surface/vertex/index the TA command stream
// describes, then (if ctx.Autosort) a back-to-front sort of the
// translucent and punch-through lists, then index generation and
// adjacent-surface merging for every list. rc is reset at entry; it
// need not be cleared by the caller between calls.
func Convert(rc *Context, ctx *TAContext, deps Deps) {
	pvr.InitTables()

	scratch := deps.Scratch
	if scratch == nil {
		if config.ReuseScratchBuffer {
			if sharedScratch == nil {
				sharedScratch = make([]byte, scratchSize)
			}
			scratch = sharedScratch
		} else {
			scratch = make([]byte, scratchSize)
		}
	}

	decoder := deps.Decoder
	if decoder == nil {
		decoder = texdecode.Stub{}
	}

	t := &translator{
		backend:     deps.Backend,
		userdata:    deps.UserData,
		findTexture: deps.FindTexture,
		decoder:     decoder,
		scratch:     scratch,
		ctx:         ctx,
		listType:    pvr.NumLists,
		vertType:    pvr.VertNone,
	}

	rc.reset()
	rc.Width = ctx.VideoWidth
	rc.Height = ctx.VideoHeight

	t.parseBG(ctx, rc)

	data := ctx.Params
	pos := 0
	for pos < len(data) {
		pcw := pvr.NewCursor(data[pos:]).PCW()

		if pvr.ListTypeValid(pcw, t.listType) {
			t.listType = pcw.ListType()
		}

		switch pcw.ParaType() {
		case pvr.ParamEndOfList:
			t.parseEOL()
		case pvr.ParamUserTileClip:
			// ignored
		case pvr.ParamObjListSet:
			conlog.Fatalf("tr: TA_PARAM_OBJ_LIST_SET unsupported")
		case pvr.ParamPolyOrVol, pvr.ParamSprite:
			t.parsePolyParam(ctx, rc, data[pos:], pcw)
		case pvr.ParamVertex:
			t.parseVertParam(rc, data[pos:], pcw)
		}

		rc.Params = append(rc.Params, ParseEvent{
			Offset:   pos,
			ListType: t.listType,
			VertType: t.vertType,
			LastSurf: len(rc.Surfs) - 1,
			LastVert: len(rc.Verts) - 1,
		})

		pos += pvr.ParamSize(pcw, t.vertType)
	}

	if ctx.Autosort {
		sortSurfaces(rc, pvr.ListTranslucent)
		sortSurfaces(rc, pvr.ListPunchThrough)
	}

	for i := 0; i < pvr.NumLists; i++ {
		generateIndices(rc, i)
	}
}

func (t *translator) parseEOL() {
	t.hasLastVertex = false
	t.listType = pvr.NumLists
	t.vertType = pvr.VertNone
}
