// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import (
	"dctr/pvr"
	"dctr/render"
)

// RenderContext issues every surface in rc to backend, in the fixed
// OPAQUE, PUNCH_THROUGH, TRANSLUCENT draw order (§4.7). Modifier-volume
// lists are never populated (modifier volumes are dropped at parse
// time) and so contribute nothing to the draw.
func RenderContext(backend render.Backend, rc *Context) {
	RenderContextUntil(backend, rc, -1)
}

// RenderContextUntil issues surfaces up to and including endSurf (a
// surface index into rc.Surfs), then stops without drawing the
// remainder of any list — the step-through primitive a trace viewer
// uses to show the frame building up one draw call at a time. Pass -1
// to draw every surface in every list.
func RenderContextUntil(backend render.Backend, rc *Context, endSurf int) {
	stopped := false

	backend.BeginSurfaces(rc.Width, rc.Height, rc.Verts, len(rc.Verts), rc.Indices, len(rc.Indices))

	renderList(backend, rc, pvr.ListOpaque, endSurf, &stopped)
	renderList(backend, rc, pvr.ListPunchThrough, endSurf, &stopped)
	renderList(backend, rc, pvr.ListTranslucent, endSurf, &stopped)

	backend.EndSurfaces()
}

func renderList(backend render.Backend, rc *Context, listType, endSurf int, stopped *bool) {
	if *stopped {
		return
	}

	list := &rc.Lists[listType]
	for _, surfIdx := range list.Surfs {
		surf := &rc.Surfs[surfIdx]
		backend.DrawSurface(render.Surface{
			Params:    surf.Params,
			FirstVert: surf.FirstVert,
			NumVerts:  surf.NumVerts,
		})

		if surfIdx == endSurf {
			*stopped = true
			return
		}
	}
}
