// SPDX-License-Identifier: MIT

// Package builder assembles deterministic read graphs for tests, examples
// and benchmarks.
//
// The package offers:
//
//   - Constructor: a closure that adds reads and dovetail arcs to a
//     core.Graph using the resolved builderConfig.
//   - BuildGraph: runs constructors in order and cleans the graph.
//   - Topologies: Path, Cycle, Fork, Read and Link.
//   - Sequences: RandomGenome and Tiles produce read sequences that agree
//     with Path for the same read length and overlap.
//   - ID schemes: DefaultIDFn ("0","1",...), SymbolIDFn ("A".."Z") and
//     SymbolNumberIDFn(prefix) ("r0","r1",...).
//
// Every dovetail is added on both strands: u->v together with
// v^1->u^1, so the result is symmetric. Reads are named by the ID scheme,
// and constructors that reuse a name reuse the read, which lets several
// constructors share reads inside one BuildGraph call.
//
// Option constructors panic on meaningless input; constructors return
// sentinel errors.
package builder
