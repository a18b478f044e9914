// SPDX-License-Identifier: GPL-2.0-or-later

package pvr

// ISP is the Image Synthesis Processor instruction word: depth test and
// culling state shared by every vertex of a polygon.
type ISP uint32

func (i ISP) ZWriteDisable() bool   { return i&(1<<26) != 0 }
func (i ISP) DepthCompareMode() int { return int(i>>27) & 0x7 }
func (i ISP) CullingMode() int      { return int(i>>30) & 0x3 }

// Texture and Offset report ISP_BACKGND_T's own texture/offset-color
// flags. The background poly has no separate PCW to carry them, so
// ISP_BACKGND_T packs them into its own low bits instead (§4.4.4);
// they don't overlap ZWriteDisable/DepthCompareMode/CullingMode above,
// which the background word also uses for its render state.
func (i ISP) Texture() bool { return i&(1<<0) != 0 }
func (i ISP) Offset() bool  { return i&(1<<1) != 0 }
