// SPDX-License-Identifier: MIT

// Package unitig contracts maximal unbranching paths of a clean read
// graph into unitigs and builds the coarser unitig graph.
//
// Walk:
//
//	From every unvisited live vertex v with at least one out-arc the
//	contractor extends forward while the current vertex has exactly one
//	successor and that successor has exactly one predecessor, then
//	backward under the mirrored rule. A forward walk that returns to v
//	closes a circular unitig, whose Start and End are core.NoVertex.
//
// Each member records the path length it contributes: the arc length to
// the next member, or the full sequence length for the last member of a
// linear unitig.
//
// Unitig graph:
//
//	Unitig i owns vertices i+ and i-. An arc of the read graph that leaves
//	the end of one linear unitig and enters the start of another becomes
//	an arc of the unitig graph with Len = unitig length - OV, floored at 1.
//
// Sequences are filled afterwards from a SequenceSource; see
// BuildSequences.
package unitig
