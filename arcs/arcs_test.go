// SPDX-License-Identifier: MIT

package arcs_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvlasm/arcs"
	"github.com/katalvlaran/lvlasm/chain"
	"github.com/katalvlaran/lvlasm/core"
	"github.com/katalvlaran/lvlasm/overlap"
)

var loose = arcs.Thresholds{MaxHang: 1000, IntFrac: 0.8, MinOverlap: 20}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		r      overlap.Region
		ql, tl int
		th     arcs.Thresholds
		want   arcs.Class
		arc    core.Arc
	}{
		{
			name: "suffix-prefix",
			r:    overlap.Region{XID: 0, YID: 1, XStart: 60, XEnd: 99, YStart: 0, YEnd: 39},
			ql:   100, tl: 120, th: loose,
			want: arcs.Proper,
			arc:  core.Arc{V: core.Vertex{ID: 0}, W: core.Vertex{ID: 1}, Len: 60, OV: 40, OW: 40},
		},
		{
			name: "prefix-suffix gives the complement side",
			r:    overlap.Region{XID: 1, YID: 0, XStart: 0, XEnd: 39, YStart: 60, YEnd: 99},
			ql:   120, tl: 100, th: loose,
			want: arcs.Proper,
			arc:  core.Arc{V: core.Vertex{ID: 1, Ori: 1}, W: core.Vertex{ID: 0, Ori: 1}, Len: 80, OV: 40, OW: 40},
		},
		{
			name: "reverse strand",
			r:    overlap.Region{XID: 0, YID: 1, XStart: 60, XEnd: 99, YStart: 0, YEnd: 39, YStrand: 1},
			ql:   100, tl: 120, th: loose,
			want: arcs.Proper,
			arc:  core.Arc{V: core.Vertex{ID: 0}, W: core.Vertex{ID: 1, Ori: 1}, Len: 60, OV: 40, OW: 40},
		},
		{
			name: "query contained",
			r:    overlap.Region{XStart: 0, XEnd: 49, YStart: 70, YEnd: 119},
			ql:   50, tl: 200, th: loose,
			want: arcs.QueryContained,
		},
		{
			name: "target contained",
			r:    overlap.Region{XStart: 70, XEnd: 119, YStart: 0, YEnd: 49},
			ql:   200, tl: 50, th: loose,
			want: arcs.TargetContained,
		},
		{
			name: "internal match",
			r:    overlap.Region{XStart: 40, XEnd: 59, YStart: 40, YEnd: 59},
			ql:   100, tl: 100, th: loose,
			want: arcs.Internal,
		},
		{
			name: "overhang above max hang",
			r:    overlap.Region{XStart: 60, XEnd: 99, YStart: 10, YEnd: 49},
			ql:   100, tl: 120, th: arcs.Thresholds{MaxHang: 5, IntFrac: 0, MinOverlap: 0},
			want: arcs.Internal,
		},
		{
			name: "short dovetail",
			r:    overlap.Region{XStart: 60, XEnd: 99, YStart: 0, YEnd: 39},
			ql:   100, tl: 120, th: arcs.DefaultThresholds(),
			want: arcs.ShortOverlap,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			class, arc := arcs.Classify(tc.r, tc.ql, tc.tl, tc.th)
			assert.Equal(t, tc.want, class, class.String())
			assert.Equal(t, tc.arc, arc)
		})
	}
}

func TestClassify_UnnormalisedRegion(t *testing.T) {
	// same overlap as "reverse strand", expressed with the query reversed
	r := overlap.Region{XID: 0, YID: 1, XStart: 0, XEnd: 39, YStart: 80, YEnd: 119, XStrand: 1}
	class, arc := arcs.Classify(r, 100, 120, loose)
	require.Equal(t, arcs.Proper, class)
	assert.Equal(t, core.Vertex{ID: 1, Ori: 1}, arc.W)
	assert.Equal(t, 40, arc.OV)
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, arcs.DefaultThresholds().Validate())
	assert.ErrorIs(t, arcs.Thresholds{MaxHang: -1}.Validate(), arcs.ErrMaxHang)
	assert.ErrorIs(t, arcs.Thresholds{IntFrac: 2}.Validate(), arcs.ErrIntFrac)
	assert.ErrorIs(t, arcs.Thresholds{MinOverlap: -3}.Validate(), arcs.ErrMinOverlap)
}

type BuilderSuite struct {
	suite.Suite
	g    *core.Graph
	a, b uint32
}

func (s *BuilderSuite) SetupTest() {
	s.g = core.NewGraph()
	s.a, _ = s.g.AddSegment("A", 100)
	s.b, _ = s.g.AddSegment("B", 120)
}

func (s *BuilderSuite) builder(opts ...arcs.Option) *arcs.Builder {
	b, err := arcs.NewBuilder(s.g, loose, opts...)
	s.Require().NoError(err)

	return b
}

func (s *BuilderSuite) suffixPrefix() overlap.Region {
	return overlap.Region{XID: s.a, YID: s.b, XStart: 60, XEnd: 99, YStart: 0, YEnd: 39}
}

func (s *BuilderSuite) prefixSuffix() overlap.Region {
	return overlap.Region{XID: s.b, YID: s.a, XStart: 0, XEnd: 39, YStart: 60, YEnd: 99}
}

func (s *BuilderSuite) TestNilGraph() {
	_, err := arcs.NewBuilder(nil, loose)
	s.ErrorIs(err, arcs.ErrGraphNil)
	_, err = arcs.NewBuilder(s.g, arcs.Thresholds{IntFrac: -1})
	s.ErrorIs(err, arcs.ErrIntFrac)
}

// Chains both sides of a 40-base suffix/prefix overlap between a
// 100-base and a 120-base read and checks the resulting arcs.
func (s *BuilderSuite) TestSuffixPrefixFromAnchors() {
	c, err := chain.NewChainer(chain.DefaultOptions())
	s.Require().NoError(err)

	var fromA, fromB []chain.Anchor
	for i := uint32(0); i < 36; i += 5 {
		fromA = append(fromA, chain.Anchor{SelfOffset: 60 + i, Offset: i, Good: true})
		fromB = append(fromB, chain.Anchor{SelfOffset: i, Offset: 60 + i, Good: true})
	}
	regA, regB := overlap.NewRegistry(), overlap.NewRegistry()
	c.ChainBuckets(s.a, []chain.Bucket{{TargetID: s.b, Anchors: fromA}}, s.g, regA)
	c.ChainBuckets(s.b, []chain.Bucket{{TargetID: s.a, Anchors: fromB}}, s.g, regB)

	b := s.builder()
	b.AddRegistry(regA)
	b.AddRegistry(regB)
	st := b.Finish()

	s.Equal(2, st.Arcs)
	s.Equal(2, st.ByClass[arcs.Proper])
	fwd := s.g.Arcs(core.Vertex{ID: s.a})
	s.Require().Len(fwd, 1)
	s.Equal(core.Vertex{ID: s.b}, fwd[0].W)
	s.Equal(40, fwd[0].OV)
	s.Equal(60, fwd[0].Len)
	s.Equal(uint32(2), fwd[0].LinkID)

	rev := s.g.Arcs(core.Vertex{ID: s.b, Ori: 1})
	s.Require().Len(rev, 1)
	s.Equal(core.Vertex{ID: s.a, Ori: 1}, rev[0].W)
}

func (s *BuilderSuite) TestContainedReadDeleted() {
	c, _ := s.g.AddSegment("C", 50)
	b := s.builder()
	class := b.Add(overlap.Region{XID: c, YID: s.b, XStart: 0, XEnd: 49, YStart: 30, YEnd: 79})
	s.Equal(arcs.QueryContained, class)
	class = b.Add(overlap.Region{XID: s.b, YID: c, XStart: 30, XEnd: 79, YStart: 0, YEnd: 49})
	s.Equal(arcs.TargetContained, class)
	st := b.Finish()

	s.True(s.g.IsDeleted(c))
	s.False(s.g.IsDeleted(s.b))
	s.Equal(1, st.ContainedDeleted)
	s.Equal(0, s.g.NumArcs())
}

func (s *BuilderSuite) TestSelfMatches() {
	b := s.builder()
	// forward self hit: never an arc, nothing deleted
	b.Add(overlap.Region{XID: s.a, YID: s.a, XStart: 0, XEnd: 49, YStart: 50, YEnd: 99})
	s.False(s.g.IsDeleted(s.a))

	// the read folds back onto its own reverse complement
	b.Add(overlap.Region{XID: s.b, YID: s.b, XStart: 0, XEnd: 119, YStart: 0, YEnd: 119, YStrand: 1})
	st := b.Finish()
	s.True(s.g.IsDeleted(s.b))
	s.Equal(1, st.SelfDeleted)
	s.Equal(0, s.g.NumArcs())
}

func (s *BuilderSuite) TestUnknownSequenceRejected() {
	var logs bytes.Buffer
	b := s.builder(arcs.WithLogger(zerolog.New(&logs)))

	bad := s.suffixPrefix()
	bad.YID = 7
	s.Equal(arcs.Rejected, b.Add(bad))
	bad = s.suffixPrefix()
	bad.XID = 9
	s.Equal(arcs.Rejected, b.Add(bad))
	s.Equal(arcs.Proper, b.Add(s.suffixPrefix()))
	st := b.Finish()

	s.Equal(2, st.ByClass[arcs.Rejected])
	s.Equal(3, st.Overlaps)
	s.Equal(1, st.Arcs)
	s.False(s.g.IsDeleted(s.a))
	s.Contains(logs.String(), "overlap rejected")
	s.Contains(logs.String(), core.ErrVertexRange.Error())
	s.Equal("rejected", arcs.Rejected.String())
}

func (s *BuilderSuite) TestRiskyMultiArcRemoval() {
	second := overlap.Region{XID: s.a, YID: s.b, XStart: 70, XEnd: 99, YStart: 0, YEnd: 29}

	b := s.builder()
	b.Add(s.suffixPrefix())
	b.Add(second)
	st := b.Finish()
	s.Equal(1, st.MultiRemoved)
	s.Require().Len(s.g.Arcs(core.Vertex{ID: s.a}), 1)
	s.Equal(40, s.g.Arcs(core.Vertex{ID: s.a})[0].OV)

	s.SetupTest()
	b = s.builder(arcs.WithoutRiskyMultiArcRemoval())
	b.Add(s.suffixPrefix())
	b.Add(overlap.Region{XID: s.a, YID: s.b, XStart: 70, XEnd: 99, YStart: 0, YEnd: 29})
	st = b.Finish()
	s.Equal(0, st.MultiRemoved)
	s.Len(s.g.Arcs(core.Vertex{ID: s.a}), 2)
}

func (s *BuilderSuite) TestSymmetry() {
	b := s.builder(arcs.WithSymmetry())
	b.Add(s.suffixPrefix())
	st := b.Finish()

	s.Equal(1, st.SymmetryAdded)
	comp, err := s.g.UniqueSuccessor(core.Vertex{ID: s.b, Ori: 1})
	s.Require().NoError(err)
	s.Equal(core.Vertex{ID: s.a, Ori: 1}, comp.W)
	s.Equal(80, comp.Len)
}

func (s *BuilderSuite) TestBothSidesMatchSymmetryFix() {
	b := s.builder()
	b.Add(s.suffixPrefix())
	b.Add(s.prefixSuffix())
	b.Finish()
	s.Equal(0, s.g.FixSymmetry(), "both sides already produce complementary arcs")
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}
