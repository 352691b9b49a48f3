// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// Sentinel errors for graph operations.
var (
	// ErrVertexRange indicates a vertex whose segment is not registered.
	ErrVertexRange = errors.New("core: vertex out of range")

	// ErrNotUnique indicates a unique-successor query on a vertex whose
	// out-degree is not exactly one.
	ErrNotUnique = errors.New("core: vertex has no unique successor")

	// ErrNegativeLen indicates a segment registered with a negative length.
	ErrNegativeLen = errors.New("core: negative segment length")
)

// Vertex is one oriented end of a segment.
type Vertex struct {
	ID  uint32 // segment id
	Ori uint8  // 0 forward, 1 reverse complement
}

// NoVertex marks the absent start/end of a circular unitig.
var NoVertex = Vertex{ID: math.MaxUint32, Ori: 1}

// Flip returns the opposite orientation of the same segment.
func (v Vertex) Flip() Vertex { return Vertex{ID: v.ID, Ori: v.Ori ^ 1} }

// Index packs v into id<<1|ori.
func (v Vertex) Index() int { return int(v.ID)<<1 | int(v.Ori&1) }

// IsNone reports whether v is NoVertex.
func (v Vertex) IsNone() bool { return v == NoVertex }

// String renders v as "<id>+" or "<id>-".
func (v Vertex) String() string {
	if v.IsNone() {
		return "*"
	}
	if v.Ori == 0 {
		return fmt.Sprintf("%d+", v.ID)
	}

	return fmt.Sprintf("%d-", v.ID)
}

// VertexAt unpacks an Index value.
func VertexAt(i int) Vertex { return Vertex{ID: uint32(i >> 1), Ori: uint8(i & 1)} }

// Segment is one sequence known to the graph.
type Segment struct {
	Name string // empty for unitig graphs
	Len  int
	Del  bool
}

// Arc is a directed dovetail overlap V->W.
type Arc struct {
	V, W   Vertex
	Len    int // path length contributed by V before W starts
	OV     int // overlap length on V
	OW     int // overlap length on W
	Strong bool
	Del    bool
	LinkID uint32 // batch that emitted the arc
}

// span locates the out-arcs of one vertex inside Graph.arcs.
type span struct {
	off uint32
	n   uint32
}

// Graph is a strand-aware overlap graph over segments.
//
// Zero value is not usable; construct with NewGraph.
type Graph struct {
	mu    sync.Mutex
	segs  []Segment
	names map[string]uint32
	arcs  []Arc
	idx   []span
	dirty bool
}

// GraphOption configures a Graph before first use.
type GraphOption func(*Graph)

// WithCapacity preallocates room for nSeg segments and nArc arcs.
func WithCapacity(nSeg, nArc int) GraphOption {
	return func(g *Graph) {
		if nSeg > 0 {
			g.segs = make([]Segment, 0, nSeg)
		}
		if nArc > 0 {
			g.arcs = make([]Arc, 0, nArc)
		}
	}
}

// NewGraph returns an empty graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{names: make(map[string]uint32)}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
