// SPDX-License-Identifier: MIT

package unitig_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlasm/builder"
	"github.com/katalvlaran/lvlasm/core"
	"github.com/katalvlaran/lvlasm/unitig"
)

type record struct{ name, seq string }

type sliceSource struct {
	recs []record
	i    int
}

func (s *sliceSource) Next() ([]byte, []byte, error) {
	if s.i >= len(s.recs) {
		return nil, nil, io.EOF
	}
	r := s.recs[s.i]
	s.i++

	return []byte(r.name), []byte(r.seq), nil
}

func tiledGenome(t *testing.T, opts []builder.BuilderOption) ([]byte, []builder.Tile) {
	t.Helper()
	genome, err := builder.RandomGenome(64, builder.WithSeed(11))
	require.NoError(t, err)
	tiles, err := builder.Tiles(genome, opts...)
	require.NoError(t, err)

	return genome, tiles
}

func TestBuildSequences_Forward(t *testing.T) {
	opts := []builder.BuilderOption{builder.WithReadLength(20), builder.WithOverlap(8)}
	genome, tiles := tiledGenome(t, opts)
	g := build(t, opts, builder.Path(len(tiles)))

	res, err := unitig.Contract(g)
	require.NoError(t, err)
	require.Len(t, res.Unitigs, 1)

	src := &sliceSource{recs: []record{{name: "unrelated", seq: "ACGT"}}}
	for _, tl := range tiles {
		src.recs = append(src.recs, record{name: tl.Name, seq: string(tl.Seq)})
	}
	require.NoError(t, unitig.BuildSequences(res, unitig.SegmentNames(g), src))

	u := res.Unitigs[0]
	assert.Equal(t, 56, u.Len)
	assert.Equal(t, string(genome[:56]), string(u.Seq))
}

func TestBuildSequences_ReverseMembers(t *testing.T) {
	opts := []builder.BuilderOption{builder.WithReadLength(20), builder.WithOverlap(8)}
	genome, tiles := tiledGenome(t, opts)
	// reads stored reverse-complemented, joined on their reverse strands
	g := build(t, opts,
		builder.Link("0", 1, "1", 1),
		builder.Link("1", 1, "2", 1),
		builder.Link("2", 1, "3", 1),
	)
	res, err := unitig.Contract(g)
	require.NoError(t, err)
	require.Len(t, res.Unitigs, 1)
	assert.Equal(t, uint8(1), res.Unitigs[0].Members[0].Vertex.Ori)

	src := &sliceSource{}
	for _, tl := range tiles {
		src.recs = append(src.recs, record{name: tl.Name, seq: string(unitig.ReverseComplement(tl.Seq))})
	}
	require.NoError(t, unitig.BuildSequences(res, unitig.SegmentNames(g), src))
	assert.Equal(t, string(genome[:56]), string(res.Unitigs[0].Seq))
}

func TestBuildSequences_GapsStayN(t *testing.T) {
	res := &unitig.Result{Unitigs: []unitig.Unitig{{
		Members: []unitig.Member{{Vertex: core.Vertex{ID: 0}, Len: 5}, {Vertex: core.Vertex{ID: 1}, Len: 3}},
		Len:     8,
	}}}
	names := func(id uint32) string { return []string{"a", "b"}[id] }
	src := &sliceSource{recs: []record{{name: "a", seq: "AC"}}}

	require.NoError(t, unitig.BuildSequences(res, names, src))
	assert.Equal(t, "ACNNNNNN", string(res.Unitigs[0].Seq))
}

func TestBuildSequences_DoubleClaimPanics(t *testing.T) {
	res := &unitig.Result{Unitigs: []unitig.Unitig{
		{Members: []unitig.Member{{Vertex: core.Vertex{ID: 0}, Len: 4}}, Len: 4},
		{Members: []unitig.Member{{Vertex: core.Vertex{ID: 0, Ori: 1}, Len: 4}}, Len: 4},
	}}
	names := func(uint32) string { return "same" }
	assert.Panics(t, func() { _ = unitig.BuildSequences(res, names, &sliceSource{}) })
}

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "NACGTn", string(unitig.ReverseComplement([]byte("nACGT\xff"))))
	assert.Equal(t, "RYKM", string(unitig.ReverseComplement([]byte("KMRY"))))
}

func TestFastxSource(t *testing.T) {
	_, err := unitig.OpenFastx(filepath.Join(t.TempDir(), "missing.fa"))
	assert.ErrorIs(t, err, unitig.ErrOpenSource)

	path := filepath.Join(t.TempDir(), "reads.fa")
	require.NoError(t, os.WriteFile(path, []byte(">r0 first read\nACGTA\n>r1\nTTTT\n"), 0o644))

	res := &unitig.Result{Unitigs: []unitig.Unitig{{
		Members: []unitig.Member{{Vertex: core.Vertex{ID: 0, Ori: 1}, Len: 5}},
		Len:     5,
	}}}
	names := func(uint32) string { return "r0" }
	require.NoError(t, unitig.BuildSequencesFromFile(res, names, path))
	assert.Equal(t, "TACGT", string(res.Unitigs[0].Seq))
}
