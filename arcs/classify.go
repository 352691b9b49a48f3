// SPDX-License-Identifier: MIT

package arcs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlasm/core"
	"github.com/katalvlaran/lvlasm/overlap"
)

// Default classification thresholds.
const (
	DefaultMaxHang    = 1000
	DefaultIntFrac    = 0.8
	DefaultMinOverlap = 100
)

// Sentinel errors for threshold validation.
var (
	ErrMaxHang    = errors.New("arcs: max hang must be non-negative")
	ErrIntFrac    = errors.New("arcs: internal fraction must be in [0,1]")
	ErrMinOverlap = errors.New("arcs: min overlap must be non-negative")
)

// Class is the outcome of classifying one overlap.
type Class uint8

const (
	// Proper is a dovetail overlap that becomes an arc.
	Proper Class = iota
	// QueryContained means the query lies inside the target.
	QueryContained
	// TargetContained means the target lies inside the query.
	TargetContained
	// Internal is an ambiguous local match with long overhangs.
	Internal
	// ShortOverlap is a dovetail shorter than MinOverlap.
	ShortOverlap
	// Rejected is reported by Builder.Add for a region naming an
	// unregistered sequence. Classify never returns it.
	Rejected
)

// String names the class for logs and metric labels.
func (c Class) String() string {
	switch c {
	case Proper:
		return "proper"
	case QueryContained:
		return "query_contained"
	case TargetContained:
		return "target_contained"
	case Internal:
		return "internal"
	case ShortOverlap:
		return "short"
	case Rejected:
		return "rejected"
	}

	return fmt.Sprintf("class(%d)", uint8(c))
}

// Thresholds bound which overlaps become arcs.
type Thresholds struct {
	MaxHang    int     // longest tolerated unaligned overhang
	IntFrac    float64 // min aligned fraction of the overhang-extended span
	MinOverlap int     // shortest accepted dovetail
}

// DefaultThresholds returns the standard thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{MaxHang: DefaultMaxHang, IntFrac: DefaultIntFrac, MinOverlap: DefaultMinOverlap}
}

// Validate checks the threshold ranges.
func (th Thresholds) Validate() error {
	switch {
	case th.MaxHang < 0:
		return fmt.Errorf("%w: %d", ErrMaxHang, th.MaxHang)
	case th.IntFrac < 0 || th.IntFrac > 1:
		return fmt.Errorf("%w: %v", ErrIntFrac, th.IntFrac)
	case th.MinOverlap < 0:
		return fmt.Errorf("%w: %d", ErrMinOverlap, th.MinOverlap)
	}

	return nil
}

// Classify decides what the overlap r between a query of length ql and a
// target of length tl is. For Proper it also returns the arc from the
// query vertex to the target vertex; the arc is zero otherwise.
//
// r may be in either strand orientation; a region whose query is
// reversed is reflected on a copy first.
func Classify(r overlap.Region, ql, tl int, th Thresholds) (Class, core.Arc) {
	if r.XStrand == 1 {
		r.Trace = nil
		overlap.Reflect(&r, ql, tl)
	}
	qs, qe, ts, te, rev := spans(&r, tl)

	var tl5, tl3 int
	if rev {
		tl5, tl3 = tl-te, ts
	} else {
		tl5, tl3 = ts, tl-te
	}
	ext5 := min(qs, tl5)
	ext3 := min(ql-qe, tl3)

	if ext5 > th.MaxHang || ext3 > th.MaxHang ||
		float64(qe-qs) < float64(qe-qs+ext5+ext3)*th.IntFrac {
		return Internal, core.Arc{}
	}
	if qs <= tl5 && ql-qe <= tl3 {
		return QueryContained, core.Arc{}
	}
	if qs >= tl5 && ql-qe >= tl3 {
		return TargetContained, core.Arc{}
	}

	var u, v uint8
	var l int
	if qs > tl5 {
		u, v, l = 0, b2u(rev), qs-tl5
	} else {
		u, v, l = 1, b2u(!rev), (ql-qe)-tl3
	}
	if qe-qs+ext5+ext3 < th.MinOverlap || te-ts+ext5+ext3 < th.MinOverlap {
		return ShortOverlap, core.Arc{}
	}

	return Proper, core.Arc{
		V:      core.Vertex{ID: r.XID, Ori: u},
		W:      core.Vertex{ID: r.YID, Ori: v},
		Len:    l,
		OV:     ql - l,
		OW:     te - ts + ext5 + ext3,
		Strong: r.Strong,
	}
}

// spans returns half-open query and target intervals with the target on
// its forward strand.
func spans(r *overlap.Region, tl int) (qs, qe, ts, te int, rev bool) {
	rev = r.YStrand == 1
	qs, qe = r.XStart, r.XEnd+1
	ts, te = r.YStart, r.YEnd+1
	if rev {
		ts, te = tl-r.YEnd-1, tl-r.YStart
	}

	return qs, qe, ts, te, rev
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}

	return 0
}
