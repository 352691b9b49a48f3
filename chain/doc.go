// SPDX-License-Identifier: MIT

// Package chain turns the shared-k-mer anchors of one (query, target,
// strand) bucket into the best-scoring colinear chain under a banded
// indel model and reports it as an overlap.Region.
//
// Scoring:
//
//	Each step from anchor j to anchor i earns min(dx, dy, MinScore),
//	halved when the anchor is low-confidence, then reduced by
//	gapRate*score/BandWidth where gapRate is the indel fraction of the
//	chain so far. A step is admissible only while the accumulated indel
//	count stays within BandWidth times the accumulated query span.
//
// Two paths:
//
//   - checkMonotone: one linear pass that accepts the whole bucket as a
//     single chain when offsets are colinear and every gap is small.
//   - dp: O(n*MaxSkip) dynamic programming over predecessors, pruned
//     after MaxSkip consecutive non-improving predecessors and after
//     MaxSkip predecessors already claimed by a better chain.
//
// Both fill the same State and end in backtrace.
//
// Concurrency:
//
//	A Chainer owns its scratch State and is not safe for concurrent use.
//	Use one per worker.
package chain
