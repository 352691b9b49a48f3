// SPDX-License-Identifier: MIT

package arcs

import (
	"errors"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvlasm/core"
	"github.com/katalvlaran/lvlasm/overlap"
)

// ErrGraphNil is returned when NewBuilder receives a nil graph.
var ErrGraphNil = errors.New("arcs: graph is nil")

// Stats summarises one build batch.
type Stats struct {
	Overlaps         int
	ByClass          [Rejected + 1]int
	SelfDeleted      int // palindromic self matches
	ContainedDeleted int
	SymmetryAdded    int
	MultiRemoved     int
	Arcs             int // arcs in the graph after Finish
}

// Option configures a Builder.
type Option func(*Builder)

// WithoutRiskyMultiArcRemoval keeps parallel arcs with differing overlaps.
func WithoutRiskyMultiArcRemoval() Option {
	return func(b *Builder) { b.risky = false }
}

// WithSymmetry adds missing complement arcs during Finish. Needed when
// overlaps were reported for one side of each pair only.
func WithSymmetry() Option {
	return func(b *Builder) { b.symm = true }
}

// WithLogger sets the logger used for batch summaries.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// Builder turns retained overlaps into arcs of a core.Graph.
// Add is not safe for concurrent use; one collector owns a Builder.
type Builder struct {
	g     *core.Graph
	th    Thresholds
	log   zerolog.Logger
	risky bool
	symm  bool
	first int
	stats Stats
}

// NewBuilder returns a Builder writing into g.
func NewBuilder(g *core.Graph, th Thresholds, opts ...Option) (*Builder, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if err := th.Validate(); err != nil {
		return nil, err
	}
	b := &Builder{g: g, th: th, log: zerolog.Nop(), risky: true, first: g.NumArcs()}
	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Add classifies r and applies the outcome: a Proper overlap becomes an
// arc, a contained query is flagged deleted. A self match never becomes
// an arc; a reversed self match spanning the same interval on both
// strands flags the sequence deleted.
//
// A region naming a sequence missing from the graph is logged and
// counted as Rejected without touching the graph.
func (b *Builder) Add(r overlap.Region) Class {
	if n := b.g.NumSegments(); int(r.XID) >= n || int(r.YID) >= n {
		b.stats.Overlaps++
		b.stats.ByClass[Rejected]++
		b.log.Warn().
			Err(core.ErrVertexRange).
			Uint32("query", r.XID).
			Uint32("target", r.YID).
			Int("segments", n).
			Msg("overlap rejected")
		return Rejected
	}
	ql, tl := b.g.Length(r.XID), b.g.Length(r.YID)
	class, arc := Classify(r, ql, tl, b.th)
	b.stats.Overlaps++
	b.stats.ByClass[class]++

	if r.XID == r.YID {
		if palindrome(&r, ql, tl) {
			b.delete(r.XID)
			b.stats.SelfDeleted++
		}
		return class
	}

	switch class {
	case Proper:
		b.g.PushArc(arc)
	case QueryContained:
		if !b.g.IsDeleted(r.XID) {
			b.stats.ContainedDeleted++
		}
		b.delete(r.XID)
	}

	return class
}

func (b *Builder) delete(id uint32) {
	if err := b.g.SetDeleted(id); err != nil {
		b.log.Error().Err(err).Msg("delete sequence")
	}
}

// AddRegistry adds every region of reg.
func (b *Builder) AddRegistry(reg *overlap.Registry) {
	for i := 0; i < reg.Len(); i++ {
		b.Add(*reg.At(i))
	}
}

// Finish stamps the batch's arcs with the current arc count, optionally
// restores symmetry, cleans the graph and runs the multi-arc pass unless
// disabled. The graph is clean on return.
func (b *Builder) Finish() Stats {
	b.g.StampLinkIDs(b.first, uint32(b.g.NumArcs()))
	if b.symm {
		b.stats.SymmetryAdded = b.g.FixSymmetry()
	}
	b.g.Cleanup()
	if b.risky {
		b.stats.MultiRemoved = b.g.DeleteMultiArcs()
	}
	b.stats.Arcs = b.g.NumArcs()
	b.first = b.g.NumArcs()

	b.log.Info().
		Str("overlaps", humanize.Comma(int64(b.stats.Overlaps))).
		Str("arcs", humanize.Comma(int64(b.stats.Arcs))).
		Int("contained", b.stats.ContainedDeleted).
		Int("self_deleted", b.stats.SelfDeleted).
		Int("multi_removed", b.stats.MultiRemoved).
		Int("rejected", b.stats.ByClass[Rejected]).
		Int("symmetry_added", b.stats.SymmetryAdded).
		Msg("read graph built")

	st := b.stats
	b.stats = Stats{}

	return st
}

func palindrome(r *overlap.Region, ql, tl int) bool {
	c := *r
	if c.XStrand == 1 {
		c.Trace = nil
		overlap.Reflect(&c, ql, tl)
	}
	qs, qe, ts, te, rev := spans(&c, tl)

	return rev && qs == ts && qe == te
}
