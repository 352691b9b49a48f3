// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over the oriented vertices of
// a core.Graph, returning arc-count distances, parent links, and visit
// order, plus connected components of whole sequences.
//
// What
//
//   - Explore vertices in non-decreasing distance (arc count) from a start vertex.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: vertex index → distance from start, -1 if unreached
//   - Parent: vertex index → predecessor in the BFS tree
//   - OnVisit hook (may abort with an error), arc filtering, MaxDepth limit.
//   - WithUndirected also walks arcs backwards: the predecessors of v are
//     the flipped successors of v's complement.
//   - Components lists the sequences of each connected piece of the graph.
//
// Determinism
//
//	core.Graph.Arcs returns arcs sorted by target vertex, and BFS enqueues
//	them in that order, so the visit sequence is fully reproducible.
//
// Complexity (V = |Vertices|, E = |Arcs|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrGraphDirty           if arcs were pushed after the last cleanup.
//   - ErrStartVertexNotFound  if the start vertex does not exist or is deleted.
//   - ErrOptionViolation      if invalid Option (e.g. negative MaxDepth).
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
