// SPDX-License-Identifier: GPL-2.0-or-later

package pvr

// TSP is the Texture/Shading Processor instruction word: blend, shading
// and texture filter/wrap state.
type TSP uint32

func (t TSP) SrcAlphaInstr() int       { return int(t>>29) & 0x7 }
func (t TSP) DstAlphaInstr() int       { return int(t>>26) & 0x7 }
func (t TSP) UseAlpha() bool           { return t&(1<<25) != 0 }
func (t TSP) IgnoreTexAlpha() bool     { return t&(1<<24) != 0 }
func (t TSP) TextureShadingInstr() int { return int(t>>22) & 0x3 }
func (t TSP) FilterMode() int          { return int(t>>20) & 0x3 }
func (t TSP) ClampU() bool             { return t&(1<<19) != 0 }
func (t TSP) ClampV() bool             { return t&(1<<18) != 0 }
func (t TSP) FlipU() bool              { return t&(1<<17) != 0 }
func (t TSP) FlipV() bool              { return t&(1<<16) != 0 }

// TextureUSize and TextureVSize are the log2-encoded texture dimensions
// (3 bits each, giving sizes of 8 through 1024).
func (t TSP) TextureUSize() int { return int(t>>13) & 0x7 }
func (t TSP) TextureVSize() int { return int(t>>10) & 0x7 }
