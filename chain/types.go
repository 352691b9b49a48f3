// SPDX-License-Identifier: MIT

package chain

import (
	"errors"
	"fmt"
)

// Default chaining parameters.
const (
	DefaultBandWidth  = 0.05
	DefaultMaxSkip    = 25
	DefaultMinScore   = 51
	DefaultMaxGapSize = 31
)

// Sentinel errors for option validation.
var (
	ErrBandWidth = errors.New("chain: band width must be in (0,1]")
	ErrMaxSkip   = errors.New("chain: max skip must be positive")
	ErrMinScore  = errors.New("chain: min score must be positive")
	ErrMaxGap    = errors.New("chain: max gap size must be non-negative")
)

// Anchor is one shared k-mer between the query and a target.
type Anchor struct {
	SelfOffset uint32 // position on the query
	Offset     uint32 // position on the target
	Strand     uint8
	Good       bool // high-confidence seed
}

// Bucket holds the anchors of one (target, strand) pair, sorted by Offset.
type Bucket struct {
	TargetID uint32
	Strand   uint8
	Anchors  []Anchor
}

// Candidate is an anchor tagged with its target.
type Candidate struct {
	TargetID uint32
	Anchor
}

// Group splits a candidate list into buckets of consecutive entries that
// share target and strand. Anchors are copied.
func Group(cands []Candidate) []Bucket {
	var out []Bucket
	for i := 0; i < len(cands); {
		j := i + 1
		for j < len(cands) && cands[j].TargetID == cands[i].TargetID && cands[j].Strand == cands[i].Strand {
			j++
		}
		b := Bucket{TargetID: cands[i].TargetID, Strand: cands[i].Strand, Anchors: make([]Anchor, j-i)}
		for k := i; k < j; k++ {
			b.Anchors[k-i] = cands[k].Anchor
		}
		out = append(out, b)
		i = j
	}

	return out
}

// Options parameterise a Chainer.
type Options struct {
	BandWidth  float64 // max indel fraction of the query span
	MaxSkip    int     // pruning threshold for non-improving predecessors
	MinScore   int     // per-step score cap, normally the k-mer length
	MaxGapSize int     // single-gap ceiling for the linear fast path
}

// DefaultOptions returns the standard chaining parameters.
func DefaultOptions() Options {
	return Options{
		BandWidth:  DefaultBandWidth,
		MaxSkip:    DefaultMaxSkip,
		MinScore:   DefaultMinScore,
		MaxGapSize: DefaultMaxGapSize,
	}
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	switch {
	case o.BandWidth <= 0 || o.BandWidth > 1:
		return fmt.Errorf("%w: %v", ErrBandWidth, o.BandWidth)
	case o.MaxSkip <= 0:
		return fmt.Errorf("%w: %d", ErrMaxSkip, o.MaxSkip)
	case o.MinScore <= 0:
		return fmt.Errorf("%w: %d", ErrMinScore, o.MinScore)
	case o.MaxGapSize < 0:
		return fmt.Errorf("%w: %d", ErrMaxGap, o.MaxGapSize)
	}

	return nil
}

// State is the per-anchor scratch of one chaining run. It grows by
// doubling and is never shrunk.
type State struct {
	Score   []int
	Pre     []int // predecessor index, -1 for a chain start
	Indels  []int // accumulated indels along the best chain ending here
	SelfLen []int // accumulated query span along that chain
	tmp     []int // last anchor that reached this one as a grand-predecessor
	path    []int
}

func (s *State) resize(n int) {
	if cap(s.Score) < n {
		c := 16
		for c < n {
			c <<= 1
		}
		s.Score = make([]int, n, c)
		s.Pre = make([]int, n, c)
		s.Indels = make([]int, n, c)
		s.SelfLen = make([]int, n, c)
		s.tmp = make([]int, n, c)
		return
	}
	s.Score = s.Score[:n]
	s.Pre = s.Pre[:n]
	s.Indels = s.Indels[:n]
	s.SelfLen = s.SelfLen[:n]
	s.tmp = s.tmp[:n]
}

// Cap returns the number of anchors the scratch holds without growing.
func (s *State) Cap() int { return cap(s.Score) }
