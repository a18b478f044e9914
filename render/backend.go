// SPDX-License-Identifier: GPL-2.0-or-later

// Package render declares the interface the translator draws through.
// The concrete backend (a real GPU, a software rasterizer, a test
// double) lives outside this module's concern per the base spec's
// scope; package glbackend supplies one concrete implementation.
package render

import "dctr/pvr"

// TextureHandle identifies a backend texture object. Zero means "no
// texture".
type TextureHandle uint32

// Vertex is the backend-facing view of a ta_vertex: position, texture
// coordinate and the two packed colors.
type Vertex struct {
	XYZ         [3]float32
	UV          [2]float32
	Color       [4]uint8
	OffsetColor [4]uint8
}

// SurfaceParams is the backend-facing view of ta_surface.params: the
// packed draw state a surface carries. Two SurfaceParams compare equal
// iff every field does, mirroring the source's bitwise params.full
// comparison (see the merge loop in tr's generateIndices).
type SurfaceParams struct {
	DepthWrite          bool
	DepthFunc           pvr.DepthFunc
	Cull                pvr.CullFace
	SrcBlend            pvr.BlendFunc
	DstBlend            pvr.BlendFunc
	Shade               pvr.ShadeMode
	IgnoreAlpha         bool
	IgnoreTextureAlpha  bool
	OffsetColorEnabled  bool
	AlphaTest           bool
	AlphaRef            uint8
	Texture             TextureHandle
}

// Surface is the backend-facing view of a drawable batch: its draw
// state plus the range of indices (after index generation) or raw
// strip vertices (only during step-through of an unconverted context)
// it spans.
type Surface struct {
	Params    SurfaceParams
	FirstVert int
	NumVerts  int
}

// Backend is the render driver's external collaborator. Backend
// implementations own GPU resources; tr never retains a handle beyond
// one Convert call's lifetime other than through a texture cache Entry.
type Backend interface {
	CreateTexture(filter pvr.FilterMode, wrapU, wrapV pvr.WrapMode, mipmap bool, width, height int, pixels []byte) TextureHandle
	DestroyTexture(handle TextureHandle)

	BeginSurfaces(width, height int, verts []Vertex, numVerts int, indices []uint32, numIndices int)
	DrawSurface(s Surface)
	EndSurfaces()
}
