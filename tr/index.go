// SPDX-License-Identifier: GPL-2.0-or-later

package tr

// generateIndices converts listType's triangle strips into indexed
// triangles and merges runs of adjacent surfaces that share identical
// draw state (§4.6). Strips arrive in clockwise order; stripOffset's
// parity flips the two trailing indices of every other triangle to
// produce a consistent counter-clockwise winding.
func generateIndices(rc *Context, listType int) {
	list := &rc.Lists[listType]

	numMerged := 0
	i := 0
	for i < len(list.Surfs) {
		rootIdx := list.Surfs[i]
		firstIndex := len(rc.Indices)

		j := i
		for ; j < len(list.Surfs); j++ {
			surfIdx := list.Surfs[j]

			if surfIdx != rootIdx {
				if rc.Surfs[rootIdx].Params != rc.Surfs[surfIdx].Params {
					break
				}
				numMerged++
			}

			surf := &rc.Surfs[surfIdx]
			for k := 0; k < surf.NumVerts-2; k++ {
				stripOffset := surf.StripOffset + k
				vertOffset := uint32(surf.FirstVert + k)

				if stripOffset&1 != 0 {
					rc.Indices = append(rc.Indices, vertOffset+0, vertOffset+1, vertOffset+2)
				} else {
					rc.Indices = append(rc.Indices, vertOffset+0, vertOffset+2, vertOffset+1)
				}
			}
		}

		root := &rc.Surfs[rootIdx]
		root.FirstVert = firstIndex
		root.NumVerts = len(rc.Indices) - firstIndex

		list.Surfs[j-numMerged-1] = list.Surfs[i]
		i = j
	}

	list.Surfs = list.Surfs[:len(list.Surfs)-numMerged]
}
