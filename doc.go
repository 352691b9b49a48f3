// Package lvlasm is the overlap-to-unitig core of a long-read genome
// assembler: chain shared seeds into overlaps, turn overlaps into a
// bidirected read graph and contract it into unitigs.
//
// 🚀 What is inside?
//
//	A small, test-first Go module that brings together:
//		• Seed chaining: banded-indel DP with a colinear fast path
//		• Overlap registry: dedup, end extension, strand normalisation
//		• Arc building: dovetail / containment / internal classification
//		• Assembly graph: oriented vertices, sorted arc index, cleanup
//		• Unitigs: linear and circular walks, induced unitig graph
//		• Sequences: unitig spelling from FASTA/FASTQ reads
//
// ✨ Why lvlasm?
//
//   - Plain data - every vertex is (read, orientation), every arc a value
//   - Deterministic - cleanup sorts and deduplicates, so worker count
//     never changes the graph
//   - Batteries included - PAF in, GFA out, a cobra CLI and Prometheus
//     counters around a core that imports none of them
//
// Packages:
//
//	chain/    - Anchor, Bucket, Chainer, State
//	overlap/  - Region, TracePoint, Window, Registry
//	arcs/     - Classify, Thresholds, Builder
//	core/     - Vertex, Segment, Arc, Graph
//	unitig/   - Contract, Unitig, BuildSequences, FastxSource
//	builder/  - deterministic read-graph fixtures (paths, cycles, forks)
//	paf/      - PAF reader/writer with gzip and zstd input
//	gfa/      - GFA writers for read and unitig graphs
//	pipeline/ - parallel driver: workers → collector → contraction
//	config/   - Viper-backed settings
//
// Quick ASCII example, three reads overlapping end to end:
//
//	r0 ────────────
//	        r1 ────────────
//	                r2 ────────────
//	utg000001l ─────────────────────────
//
// collapse into one linear unitig.
//
//	go install github.com/katalvlaran/lvlasm/cmd/lvlasm@latest
//	lvlasm asm -r reads.fa.gz overlaps.paf.gz > asm.gfa
package lvlasm
