// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvlasm/core"
)

func TestVertex_FlipIndex(t *testing.T) {
	v := core.Vertex{ID: 7, Ori: 0}
	assert.Equal(t, 14, v.Index())
	assert.Equal(t, 15, v.Flip().Index())
	assert.Equal(t, v, v.Flip().Flip())
	assert.Equal(t, v, core.VertexAt(v.Index()))
	assert.Equal(t, "7+", v.String())
	assert.Equal(t, "7-", v.Flip().String())
	assert.True(t, core.NoVertex.IsNone())
	assert.Equal(t, "*", core.NoVertex.String())
}

func TestAddSegment(t *testing.T) {
	g := core.NewGraph(core.WithCapacity(4, 4))

	a, err := g.AddSegment("a", 100)
	require.NoError(t, err)
	b, err := g.AddSegment("b", 120)
	require.NoError(t, err)
	again, err := g.AddSegment("a", 999)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), a)
	assert.Equal(t, uint32(1), b)
	assert.Equal(t, a, again, "existing name must return its id")
	assert.Equal(t, 100, g.Length(a))
	assert.Equal(t, 4, g.NumVertices())

	_, err = g.AddSegment("neg", -1)
	assert.ErrorIs(t, err, core.ErrNegativeLen)

	// unnamed segments are never merged
	u1, _ := g.AddSegment("", 5)
	u2, _ := g.AddSegment("", 5)
	assert.NotEqual(t, u1, u2)

	id, ok := g.SegmentID("b")
	assert.True(t, ok)
	assert.Equal(t, b, id)
	_, ok = g.SegmentID("zzz")
	assert.False(t, ok)

	assert.ErrorIs(t, g.SetDeleted(99), core.ErrVertexRange)
	assert.True(t, g.IsDeleted(99))
}

type GraphSuite struct {
	suite.Suite
	g       *core.Graph
	a, b, c uint32
}

func (s *GraphSuite) SetupTest() {
	s.g = core.NewGraph()
	s.a, _ = s.g.AddSegment("a", 100)
	s.b, _ = s.g.AddSegment("b", 120)
	s.c, _ = s.g.AddSegment("c", 90)
}

func (s *GraphSuite) fwd(id uint32) core.Vertex { return core.Vertex{ID: id} }

func (s *GraphSuite) TestPushedArcsInvisibleUntilCleanup() {
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.b), Len: 60, OV: 40, OW: 40})
	s.True(s.g.Dirty())
	s.Equal(0, s.g.OutDegree(s.fwd(s.a)))

	s.g.Cleanup()
	s.False(s.g.Dirty())
	s.Equal(1, s.g.OutDegree(s.fwd(s.a)))
	s.Equal(0, s.g.OutDegree(s.fwd(s.a).Flip()))
}

func (s *GraphSuite) TestCleanupDropsDeletedAndSorts() {
	s.g.PushArc(core.Arc{V: s.fwd(s.b), W: s.fwd(s.c), Len: 80, OV: 40, OW: 40})
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.c), Len: 70, OV: 30, OW: 30})
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.b), Len: 60, OV: 40, OW: 40})
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.b), Len: 60, OV: 40, OW: 40})
	s.g.PushArc(core.Arc{V: s.fwd(s.c), W: s.fwd(s.a), Len: 60, OV: 30, OW: 30, Del: true})
	s.Require().NoError(s.g.SetDeleted(s.c))
	s.g.Cleanup()

	arcs := s.g.AllArcs()
	s.Require().Len(arcs, 1, "arcs on c and exact duplicates are gone")
	s.Equal(s.fwd(s.a), arcs[0].V)
	s.Equal(s.fwd(s.b), arcs[0].W)
}

func (s *GraphSuite) TestCleanupPanicsOnUnknownVertex() {
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: core.Vertex{ID: 42}})
	s.Panics(func() { s.g.Cleanup() })
}

func (s *GraphSuite) TestUniqueSuccessor() {
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.b), Len: 60, OV: 40, OW: 40})
	s.g.PushArc(core.Arc{V: s.fwd(s.b), W: s.fwd(s.c), Len: 80, OV: 40, OW: 40})
	s.g.PushArc(core.Arc{V: s.fwd(s.b), W: s.fwd(s.a), Len: 80, OV: 40, OW: 40})
	s.g.Cleanup()

	arc, err := s.g.UniqueSuccessor(s.fwd(s.a))
	s.Require().NoError(err)
	s.Equal(s.fwd(s.b), arc.W)

	_, err = s.g.UniqueSuccessor(s.fwd(s.b))
	s.ErrorIs(err, core.ErrNotUnique)
	_, err = s.g.UniqueSuccessor(s.fwd(s.c))
	s.ErrorIs(err, core.ErrNotUnique)
}

func (s *GraphSuite) TestDeleteMultiArcsKeepsLargestOverlap() {
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.b), Len: 80, OV: 20, OW: 20})
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.b), Len: 60, OV: 40, OW: 40})
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.c), Len: 70, OV: 30, OW: 30})

	s.Equal(1, s.g.DeleteMultiArcs())
	arcs := s.g.Arcs(s.fwd(s.a))
	s.Require().Len(arcs, 2)
	s.Equal(40, arcs[0].OV)
	s.Equal(s.fwd(s.c), arcs[1].W)
}

func (s *GraphSuite) TestFixSymmetry() {
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.b), Len: 60, OV: 40, OW: 35})

	s.Equal(1, s.g.FixSymmetry())
	comp, err := s.g.UniqueSuccessor(s.fwd(s.b).Flip())
	s.Require().NoError(err)
	s.Equal(s.fwd(s.a).Flip(), comp.W)
	s.Equal(120-35, comp.Len)
	s.Equal(35, comp.OV)
	s.Equal(40, comp.OW)
	s.Equal(1, s.g.InDegree(s.fwd(s.b)))

	s.Equal(0, s.g.FixSymmetry(), "already symmetric")
}

func (s *GraphSuite) TestStampLinkIDs() {
	s.g.PushArc(core.Arc{V: s.fwd(s.a), W: s.fwd(s.b)})
	s.g.PushArc(core.Arc{V: s.fwd(s.b), W: s.fwd(s.c)})
	s.g.StampLinkIDs(1, 9)
	arcs := s.g.AllArcs()
	s.Equal(uint32(0), arcs[0].LinkID)
	s.Equal(uint32(9), arcs[1].LinkID)
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}
