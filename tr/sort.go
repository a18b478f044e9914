// SPDX-License-Identifier: GPL-2.0-or-later

package tr

import "sort"

// sortSurfaces stably sorts a list back to front by each surface's
// minimum Z (§4.5). Stability matters: surfaces with equal minZ keep
// their parse order, which is what makes sub-pixel decals (e.g. bullet
// holes layered on a wall) composite correctly instead of flickering
// between runs.
//
// Every surface in TRANSLUCENT/PUNCH_THROUGH is a single triangle by
// the time this runs (commitSurf already split strips per-triangle),
// so minZ only ever looks at three vertices.
func sortSurfaces(rc *Context, listType int) {
	list := &rc.Lists[listType]

	// Keyed by surface index (stable across the sort's swaps), not by
	// position in list.Surfs.
	minZ := make(map[int]float32, len(list.Surfs))
	for _, surfIdx := range list.Surfs {
		surf := &rc.Surfs[surfIdx]
		verts := rc.Verts[surf.FirstVert : surf.FirstVert+surf.NumVerts]
		z := verts[0].XYZ[2]
		for _, v := range verts[1:] {
			if v.XYZ[2] < z {
				z = v.XYZ[2]
			}
		}
		minZ[surfIdx] = z
	}

	sort.SliceStable(list.Surfs, func(i, j int) bool {
		return minZ[list.Surfs[i]] < minZ[list.Surfs[j]]
	})
}
