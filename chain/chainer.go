// SPDX-License-Identifier: MIT

package chain

import (
	"github.com/katalvlaran/lvlasm/overlap"
)

// LengthProvider reports sequence lengths by id.
type LengthProvider interface {
	Length(id uint32) int
}

// Chainer chains anchor buckets. Reusable across buckets and queries.
type Chainer struct {
	opts  Options
	bwPen float64
	st    State
}

// NewChainer validates opts and returns a Chainer with empty scratch.
func NewChainer(opts Options) (*Chainer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Chainer{opts: opts, bwPen: 1 / opts.BandWidth}, nil
}

// Options returns the parameters c was built with.
func (c *Chainer) Options() Options { return c.opts }

// State exposes the scratch of the last Chain call.
func (c *Chainer) State() *State { return &c.st }

// Reset drops scratch contents but keeps its capacity.
func (c *Chainer) Reset() {
	c.st.resize(0)
	c.st.path = c.st.path[:0]
}

// Chain finds the best chain among anchors, which must share one target
// and strand and be sorted by Offset, and writes it into r. xLen and yLen
// are the query and target lengths. An empty batch returns false.
//
// r receives chain coordinates, strand, score, implied overlap length
// and trace; the caller sets XID and YID.
func (c *Chainer) Chain(anchors []Anchor, xLen, yLen int, r *overlap.Region) bool {
	n := len(anchors)
	if n == 0 {
		return false
	}
	c.st.resize(n)

	if !c.checkMonotone(anchors) {
		c.dp(anchors)
	}
	end, olen := c.bestEnd(anchors, xLen, yLen)
	c.backtrace(anchors, end, r)
	r.OverlapLen = olen

	return true
}

// ChainBuckets chains every bucket of query q against its target and
// appends the results to reg. Buckets whose target is q are skipped.
// Returns the number of chains produced.
func (c *Chainer) ChainBuckets(q uint32, buckets []Bucket, lens LengthProvider, reg *overlap.Registry) int {
	xLen := lens.Length(q)
	chained := 0
	for _, b := range buckets {
		if b.TargetID == q {
			continue
		}
		yLen := lens.Length(b.TargetID)
		r := overlap.Region{XID: q, YID: b.TargetID}
		if !c.Chain(b.Anchors, xLen, yLen, &r) {
			continue
		}
		chained++
		reg.Append(r, xLen, yLen)
	}

	return chained
}

func (c *Chainer) seedScore(a Anchor) int {
	if a.Good {
		return c.opts.MinScore
	}

	return c.opts.MinScore >> 1
}

// penalise applies the gap-rate penalty to one step score.
func (c *Chainer) penalise(sc, indels, span int) int {
	if span <= 0 {
		return sc
	}
	gapRate := float64(indels) / float64(span)

	return sc - int(gapRate*float64(sc)*c.bwPen)
}

// checkMonotone accepts the whole batch as one chain when query offsets
// strictly increase, the running indel total stays in band and no single
// gap exceeds MaxGapSize unless it is small relative to its step.
func (c *Chainer) checkMonotone(a []Anchor) bool {
	for i := 1; i < len(a); i++ {
		if a[i-1].SelfOffset >= a[i].SelfOffset {
			return false
		}
	}
	st, bw := &c.st, c.opts.BandWidth
	st.Score[0], st.Pre[0], st.Indels[0], st.SelfLen[0] = c.seedScore(a[0]), -1, 0, 0

	totIndel, totLen := 0, 0
	for i := 1; i < len(a); i++ {
		dx := int(a[i].Offset) - int(a[i-1].Offset)
		dy := int(a[i].SelfOffset) - int(a[i-1].SelfOffset)
		dd := abs(dx - dy)
		totIndel += dd
		totLen += dy
		if float64(totIndel) > float64(totLen)*bw {
			return false
		}
		dg := min(dx, dy)
		if dd > c.opts.MaxGapSize && float64(dd) > float64(dg)*bw {
			return false
		}
		sc := min(dg, c.opts.MinScore)
		if !a[i].Good {
			sc >>= 1
		}
		sc = c.penalise(sc, totIndel, totLen)

		st.Score[i] = st.Score[i-1] + sc
		st.Pre[i] = i - 1
		st.Indels[i] = totIndel
		st.SelfLen[i] = totLen
	}

	return true
}

// dp is the banded predecessor search.
func (c *Chainer) dp(a []Anchor) {
	st, bw, maxSkip := &c.st, c.opts.BandWidth, c.opts.MaxSkip
	for i := range st.tmp {
		st.tmp[i] = -1
	}

	for i := range a {
		maxJ, maxScore := -1, c.seedScore(a[i])
		maxIndel, maxSelf := 0, 0
		nMaxSkip, nChnSkip := 0, 0

		for j := i - 1; j >= 0; j-- {
			dpos := int(a[i].Offset) - int(a[j].Offset)
			dself := int(a[i].SelfOffset) - int(a[j].SelfOffset)
			if dpos == 0 || dself <= 0 {
				continue
			}
			totIndel := st.Indels[j] + abs(dpos-dself)
			totSelf := st.SelfLen[j] + dself
			if float64(totIndel) > bw*float64(totSelf) {
				continue
			}

			sc := min(dpos, dself, c.opts.MinScore)
			if !a[j].Good {
				sc >>= 1
			}
			sc = c.penalise(sc, totIndel, totSelf) + st.Score[j]

			if sc > maxScore {
				maxScore, maxJ = sc, j
				maxIndel, maxSelf = totIndel, totSelf
				nMaxSkip = 0
				if nChnSkip > 0 {
					nChnSkip--
				}
			} else {
				nMaxSkip++
				if nMaxSkip > maxSkip {
					break
				}
				if st.tmp[j] == i {
					nChnSkip++
					if nChnSkip > maxSkip {
						break
					}
				}
			}
			if p := st.Pre[j]; p >= 0 {
				st.tmp[p] = i
			}
		}

		st.Score[i] = maxScore
		st.Pre[i] = maxJ
		st.Indels[i] = maxIndel
		st.SelfLen[i] = maxSelf
	}
}

// bestEnd picks the highest-scoring end anchor. Ties go to the anchor
// whose extended overlap is shorter.
func (c *Chainer) bestEnd(a []Anchor, xLen, yLen int) (int, int) {
	best, bestLen := -1, 0
	for i := range a {
		if best >= 0 && c.st.Score[i] < c.st.Score[best] {
			continue
		}
		l := ChainLength(a[i], xLen, yLen)
		if best < 0 || c.st.Score[i] > c.st.Score[best] || l < bestLen {
			best, bestLen = i, l
		}
	}

	return best, bestLen
}

// ChainLength is the overlap length implied by extending a single anchor
// to the sequence ends on both sides.
func ChainLength(a Anchor, xLen, yLen int) int {
	x, y := int(a.SelfOffset), int(a.Offset)

	return overlap.ExtendedLength(x, x, xLen, y, y, yLen)
}

// backtrace walks predecessors from end and fills r. Trace points mark
// runs of constant shift: the leftmost anchor of each run on the forward
// strand, the rightmost on the reverse strand so that it becomes the
// leftmost once the region is reflected.
func (c *Chainer) backtrace(a []Anchor, end int, r *overlap.Region) {
	st := &c.st
	path := st.path[:0]
	for i := end; i >= 0; i = st.Pre[i] {
		path = append(path, i)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	st.path = path

	first, last := a[path[0]], a[path[len(path)-1]]
	strand := first.Strand
	r.XStart, r.XEnd = int(first.SelfOffset), int(last.SelfOffset)
	r.YStart, r.YEnd = int(first.Offset), int(last.Offset)
	r.XStrand, r.YStrand = strand, 0
	r.SharedSeed = st.Score[end]

	trace := make([]overlap.TracePoint, 0, 4)
	for k, i := range path {
		pos := int(a[i].SelfOffset)
		shift := (int(a[i].Offset) - r.YStart) - (pos - r.XStart)
		switch {
		case k == 0 || shift != trace[len(trace)-1].Shift:
			trace = append(trace, overlap.TracePoint{Pos: pos, Shift: shift})
		case strand == 1:
			trace[len(trace)-1].Pos = pos
		}
	}
	r.Trace = trace
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
