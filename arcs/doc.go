// SPDX-License-Identifier: MIT

// Package arcs converts retained overlaps into arcs of the read graph.
//
// Classify looks at the unaligned overhangs on both sides of an overlap:
//
//	ext5, ext3 = overhangs that would have to be aligned to reach an end
//	Internal        either overhang > MaxHang, or the aligned part is less
//	                than IntFrac of the overhang-extended span
//	QueryContained  the query fits inside the target
//	TargetContained the target fits inside the query
//	ShortOverlap    dovetail shorter than MinOverlap on either sequence
//	Proper          dovetail; becomes the arc query->target
//
// A Builder applies the outcomes to a core.Graph and, on Finish, cleans
// the graph and removes parallel arcs (see WithoutRiskyMultiArcRemoval).
// Overlaps naming a sequence the graph does not know are Rejected.
package arcs
