// SPDX-License-Identifier: GPL-2.0-or-later

// Package tr converts a captured TA display-list context into a
// renderer-ready draw context: surfaces, vertices and triangle indices.
// It is the translator described by the base spec (§2-§9): a bit-exact
// parser over the PowerVR2 TA parameter stream, geometry synthesis for
// backgrounds and sprites, a back-to-front sort for transparent lists,
// and triangle-strip-to-indexed-triangle conversion with adjacent
// surface merging.
package tr

import (
	"dctr/conlog"
	"dctr/pvr"
	"dctr/render"
)

// Default arena capacities. These mirror the source's fixed N_SURFS /
// N_VERTS / N_IDX arrays: large enough for a full frame's worth of
// geometry, never grown mid-conversion.
const (
	DefaultMaxSurfs   = 1 << 15
	DefaultMaxVerts   = 1 << 18
	DefaultMaxIndices = 3 * DefaultMaxVerts
)

// Vertex is a single ta_vertex: position, texture coordinate, base
// color and offset color. It doubles as the render package's vertex
// representation so Convert can hand rc.Verts to a Backend without a
// conversion pass.
type Vertex = render.Vertex

// Surface is a drawable batch of vertices sharing render state — the
// unit of sorting, merging and draw-call issuance.
type Surface struct {
	Params render.SurfaceParams

	// FirstVert indexes Context.Verts while parsing, and Context.Indices
	// once index generation (§4.6) has run.
	FirstVert int

	// NumVerts is a vertex count while parsing, and a triangle-index
	// count once index generation has run.
	NumVerts int

	// StripOffset is this surface's position within its originating
	// triangle strip, used to keep winding order consistent when
	// expanding to indexed triangles (§4.6).
	StripOffset int
}

// List is one of the five TA render buckets: an ordered sequence of
// indices into Context.Surfs, in default (parse) order until Sort
// reorders it, and in final order once index generation has merged
// adjacent surfaces.
type List struct {
	Surfs        []int
	NumOrigSurfs int
}

// ParseEvent is one per-command trace record (§3), written in parse
// order regardless of whether the command touched a surface. It exists
// purely for diagnostics: step-through debugging keys off NumSurfs/
// NumVerts-at-the-time via LastSurf/LastVert.
type ParseEvent struct {
	Offset    int
	ListType  int
	VertType  int
	LastSurf  int
	LastVert  int
}

// Context is the translator's output: tr_context. All storage is
// owned by the caller and reset at the start of each Convert call;
// surfaces and vertices are append-only during parsing.
type Context struct {
	Surfs   []Surface
	Verts   []Vertex
	Indices []uint32
	Lists   [pvr.NumLists]List
	Params  []ParseEvent

	Width, Height int
}

// NewContext allocates a Context with the given arena capacities. Pass
// zero for any of them to use the defaults.
func NewContext(maxSurfs, maxVerts, maxIndices int) *Context {
	if maxSurfs <= 0 {
		maxSurfs = DefaultMaxSurfs
	}
	if maxVerts <= 0 {
		maxVerts = DefaultMaxVerts
	}
	if maxIndices <= 0 {
		maxIndices = DefaultMaxIndices
	}
	rc := &Context{
		Surfs:   make([]Surface, 0, maxSurfs),
		Verts:   make([]Vertex, 0, maxVerts),
		Indices: make([]uint32, 0, maxIndices),
		Params:  make([]ParseEvent, 0, maxVerts),
	}
	return rc
}

// reset clears rc for a new conversion, keeping the underlying arrays.
func (rc *Context) reset() {
	rc.Surfs = rc.Surfs[:0]
	rc.Verts = rc.Verts[:0]
	rc.Indices = rc.Indices[:0]
	rc.Params = rc.Params[:0]
	for i := range rc.Lists {
		rc.Lists[i] = List{Surfs: rc.Lists[i].Surfs[:0]}
	}
}

// reserveSurf appends a new surface, optionally copying the render
// state of the previously reserved one (strip continuation, per-triangle
// splitting), and returns its index.
func (rc *Context) reserveSurf(copyFromPrev bool) int {
	if len(rc.Surfs) >= cap(rc.Surfs) {
		conlog.Fatalf("tr: surface arena exhausted (cap %d)", cap(rc.Surfs))
	}
	var s Surface
	if copyFromPrev {
		if len(rc.Surfs) == 0 {
			conlog.Fatalf("tr: reserveSurf(copyFromPrev) with no previous surface")
		}
		s = rc.Surfs[len(rc.Surfs)-1]
	}
	s.FirstVert = len(rc.Verts)
	s.NumVerts = 0
	rc.Surfs = append(rc.Surfs, s)
	return len(rc.Surfs) - 1
}

// reserveVert appends a new vertex to the surface currently being
// built (the last reserved one) and returns a pointer into rc.Verts
// for the caller to fill in.
func (rc *Context) reserveVert() *Vertex {
	if len(rc.Surfs) == 0 {
		conlog.Fatalf("tr: reserveVert with no current surface")
	}
	curr := &rc.Surfs[len(rc.Surfs)-1]
	if len(rc.Verts) >= cap(rc.Verts) {
		conlog.Fatalf("tr: vertex arena exhausted (cap %d)", cap(rc.Verts))
	}
	rc.Verts = append(rc.Verts, Vertex{})
	curr.NumVerts++
	return &rc.Verts[len(rc.Verts)-1]
}

// currSurf returns the surface currently being built.
func (rc *Context) currSurf() *Surface {
	return &rc.Surfs[len(rc.Surfs)-1]
}
