// SPDX-License-Identifier: MIT

// Package overlap holds the overlap regions produced by chaining and the
// per-query Registry that collects them.
//
// Coordinates are inclusive. X is the query, Y the target. After
// Registry.Append a region is normalised so the query reads forward
// (XStrand == 0); YStrand == 1 then means the Y coordinates are taken on
// the reverse complement of the target.
//
// Trace points mark where the diagonal shift changes:
//
//	Shift(Pos) = (y - YStart) - (x - XStart)
//
// so Shift of the first point is 0 and every point starts a run of
// constant shift that lasts until the next point.
package overlap
