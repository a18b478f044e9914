// SPDX-License-Identifier: GPL-2.0-or-later

// Package texcache declares the (tsp, tcw) -> texture entry lookup the
// translator consults when binding a polygon's texture (spec §4.3, §6).
// The cache implementation itself — eviction, upload scheduling,
// dirtying on PVR memory writes — is an external collaborator; this
// package only fixes the shape of an Entry and the FindTexture seam.
package texcache

import (
	"dctr/pvr"
	"dctr/render"
)

// Entry is a cache's bookkeeping record for one (tsp, tcw) binding. The
// translator reads Handle/Dirty/Texture/Palette (dimensions are
// computed from the TSP/TCW, not read from here), and writes
// Handle/Dirty/Filter/WrapU/WrapV/Format/
// Width/Height — mirroring struct tr_texture's split between fields the
// texture cache owns and fields tr_convert_texture fills in.
type Entry struct {
	Handle render.TextureHandle
	Dirty  bool

	Texture []byte
	Palette []byte

	Filter pvr.FilterMode
	WrapU  pvr.WrapMode
	WrapV  pvr.WrapMode
	Format int
	Width  int
	Height int
}

// FindFunc maps a (tsp, tcw) pair to its cache entry. A nil return
// means no entry exists for the key, which spec §4.3 treats as fatal.
type FindFunc func(userdata any, tsp pvr.TSP, tcw pvr.TCW) *Entry
