// SPDX-License-Identifier: MIT

package builder

import "errors"

// ErrTooFewReads indicates a read count below the constructor's minimum.
var ErrTooFewReads = errors.New("builder: too few reads")

// ErrOverlapTooLong indicates an overlap not shorter than the read length.
var ErrOverlapTooLong = errors.New("builder: overlap must be shorter than the reads")

// ErrNeedRandSource indicates a stochastic helper called without WithSeed
// or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor or a graph mutation that
// failed for a reason outside the other sentinels.
var ErrConstructFailed = errors.New("builder: construction failed")
