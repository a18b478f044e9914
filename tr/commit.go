// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import "dctr/pvr"

// commitSurf finalizes the surface currently being built into its
// list (§4.4.3). Translucent and punch-through lists are split into
// one surface per triangle so each can be sorted independently; other
// lists keep the whole strip as a single surface.
//
// The split triangles reuse the strip's vertex storage directly — they
// are overlapping windows into the same contiguous run of vertices
// reserveVert already appended, so no vertex data is duplicated.
func (t *translator) commitSurf(rc *Context) {
	list := &rc.Lists[t.listType]
	list.NumOrigSurfs++

	newSurfIdx := len(rc.Surfs) - 1
	newSurf := rc.Surfs[newSurfIdx]

	if t.listType == pvr.ListTranslucent || t.listType == pvr.ListPunchThrough {
		numVerts := newSurf.NumVerts
		for i := 0; i < numVerts-2; i++ {
			var surfIdx int
			if i == 0 {
				surfIdx = newSurfIdx
			} else {
				surfIdx = rc.reserveSurf(true)
			}
			s := &rc.Surfs[surfIdx]
			s.StripOffset = i
			s.FirstVert = newSurf.FirstVert + i
			s.NumVerts = 3

			list.Surfs = append(list.Surfs, surfIdx)
		}
		return
	}

	list.Surfs = append(list.Surfs, newSurfIdx)
}
