// SPDX-License-Identifier: MIT

// Package core defines the strand-aware assembly graph shared by every
// stage of lvlasm.
//
// Overview:
//
//   - Segment: one input sequence (read or unitig) with a name, a length
//     and a deleted flag.
//   - Vertex: one oriented end of a segment. Segment i owns two vertices,
//     i+ (Ori=0, forward) and i- (Ori=1, reverse complement). Flip maps
//     one to the other; Index packs a vertex into i<<1|ori.
//   - Arc: a dovetail overlap v->w. Len is the path length contributed by
//     v before w begins, OV/OW are the overlap lengths on v and w.
//
// Arcs live in one flat slice. After Cleanup the slice is sorted by
// source vertex and an index gives O(1) access to the out-arcs of any
// vertex. Arcs pushed after the last Cleanup are invisible to degree
// queries until Cleanup runs again; Dirty reports that state.
//
// Symmetry:
//
//	For every arc v->w the graph is expected to carry the complement
//	w^1->v^1. Overlap callers produce both sides naturally; FixSymmetry
//	adds whatever is missing. InDegree relies on this and is defined as
//	OutDegree(v.Flip()).
//
// Concurrency:
//
//	AddSegment, SetDeleted and PushArc are serialized by an internal
//	mutex so that a single collector may run beside readers of segment
//	lengths. Cleanup and every arc query expect exclusive access.
//
// Errors:
//
//	ErrVertexRange  vertex outside the segment table
//	ErrNotUnique    UniqueSuccessor called on a vertex whose out-degree is not 1
//	ErrNegativeLen  segment length below zero
//
// Cleanup panics on an arc that references a vertex outside the segment
// table; such a graph is corrupt and no later stage can recover from it.
package core
