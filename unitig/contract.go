// SPDX-License-Identifier: MIT

package unitig

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lvlasm/core"
)

// Sentinel errors for Contract.
var (
	ErrGraphNil   = errors.New("unitig: graph is nil")
	ErrGraphDirty = errors.New("unitig: graph changed since last cleanup")
)

// Member is one oriented sequence of a unitig.
type Member struct {
	Vertex core.Vertex
	Len    int // path length contributed to the unitig
}

// Unitig is a maximal unbranching path.
type Unitig struct {
	Members  []Member
	Len      int
	Start    core.Vertex // core.NoVertex when circular
	End      core.Vertex // core.NoVertex when circular
	Circular bool
	Seq      []byte // filled by BuildSequences
}

// Result is the output of Contract.
type Result struct {
	Unitigs []Unitig
	Graph   *core.Graph // unitig i owns vertices i+ and i-
}

// Name returns the display name of unitig i: utg000001l for the first
// linear unitig, utg000002c for a circular second one.
func Name(i int, circular bool) string {
	shape := 'l'
	if circular {
		shape = 'c'
	}

	return fmt.Sprintf("utg%.6d%c", i+1, shape)
}

// Name returns the display name of unitig i of r.
func (r *Result) Name(i int) string { return Name(i, r.Unitigs[i].Circular) }

type visit uint8

const (
	unvisited visit = iota
	queued
	consumed
)

type direction uint8

const (
	forward direction = iota
	backward
)

// Option configures Contract.
type Option func(*contractor)

// WithoutSingletons drops sequences that have no arcs at all instead of
// emitting each as a one-member unitig.
func WithoutSingletons() Option {
	return func(c *contractor) { c.singletons = false }
}

// WithLogger sets the logger used for the contraction summary.
func WithLogger(l zerolog.Logger) Option {
	return func(c *contractor) { c.log = l }
}

type contractor struct {
	g          *core.Graph
	mark       []visit
	singletons bool
	log        zerolog.Logger
}

// Contract walks g, which must be clean, into unitigs and builds the
// unitig graph. g is not modified.
func Contract(g *core.Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if g.Dirty() {
		return nil, ErrGraphDirty
	}
	c := &contractor{g: g, singletons: true, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.mark = make([]visit, g.NumVertices())

	var units []Unitig
	for vi := range c.mark {
		v := core.VertexAt(vi)
		if c.mark[vi] != unvisited || g.IsDeleted(v.ID) || g.OutDegree(v) == 0 {
			continue
		}
		c.mark[vi] = queued
		units = append(units, c.walk(v))
	}
	if c.singletons {
		for id := 0; id < g.NumSegments(); id++ {
			v := core.Vertex{ID: uint32(id)}
			if g.IsDeleted(v.ID) || g.OutDegree(v) > 0 || g.OutDegree(v.Flip()) > 0 {
				continue
			}
			l := g.Length(v.ID)
			units = append(units, Unitig{
				Members: []Member{{Vertex: v, Len: l}},
				Len:     l,
				Start:   v,
				End:     v.Flip(),
			})
		}
	}

	res := &Result{Unitigs: units, Graph: c.induce(units)}
	circ := 0
	for i := range units {
		if units[i].Circular {
			circ++
		}
	}
	c.log.Info().
		Int("unitigs", len(units)).
		Int("circular", circ).
		Int("arcs", res.Graph.NumArcs()).
		Msg("unitig graph built")

	return res, nil
}

// step moves one vertex from cur. Forward it follows cur's only arc to a
// vertex with exactly one predecessor; backward it follows the mirrored
// rule. It returns the neighbour and the arc length between the two.
func (c *contractor) step(cur core.Vertex, dir direction) (core.Vertex, int, bool) {
	from := cur
	if dir == backward {
		from = cur.Flip()
	}
	out := c.g.Arcs(from)
	if len(out) != 1 {
		return core.NoVertex, 0, false
	}
	x := out[0].W
	if c.g.OutDegree(x.Flip()) != 1 {
		return core.NoVertex, 0, false
	}
	if dir == forward {
		return x, out[0].Len, true
	}
	w := x.Flip()
	in := c.g.Arcs(w)
	if in[0].W != cur {
		return core.NoVertex, 0, false
	}

	return w, in[0].Len, true
}

func (c *contractor) forwardStep(cur core.Vertex) (core.Vertex, int, bool) {
	return c.step(cur, forward)
}

func (c *contractor) backwardStep(cur core.Vertex) (core.Vertex, int, bool) {
	return c.step(cur, backward)
}

func (c *contractor) walk(v core.Vertex) Unitig {
	var fwd []Member
	length := 0
	end := v.Flip()

	for w := v; ; {
		x, l, ok := c.forwardStep(w)
		if !ok || (x != v && c.mark[x.Index()] == consumed) {
			break
		}
		c.mark[x.Index()] = consumed
		c.mark[w.Flip().Index()] = consumed
		fwd = append(fwd, Member{Vertex: w, Len: l})
		length += l
		end = x.Flip()
		if x == v {
			break
		}
		w = x
	}

	if len(fwd) > 0 && end.Flip() == v {
		c.mark[v.Index()] = consumed
		return Unitig{Members: fwd, Len: length, Start: core.NoVertex, End: core.NoVertex, Circular: true}
	}

	last := end.Flip()
	fwd = append(fwd, Member{Vertex: last, Len: c.g.Length(last.ID)})
	length += c.g.Length(last.ID)

	var back []Member
	start := v
	for x := v; ; {
		w, l, ok := c.backwardStep(x)
		if !ok || c.mark[w.Index()] == consumed || w == v {
			break
		}
		c.mark[x.Index()] = consumed
		c.mark[w.Flip().Index()] = consumed
		back = append(back, Member{Vertex: w, Len: l})
		length += l
		start = w
		x = w
	}

	members := make([]Member, 0, len(back)+len(fwd))
	for i := len(back) - 1; i >= 0; i-- {
		members = append(members, back[i])
	}
	members = append(members, fwd...)
	c.mark[v.Index()] = consumed
	c.mark[start.Index()] = consumed
	c.mark[end.Index()] = consumed

	return Unitig{Members: members, Len: length, Start: start, End: end}
}

// induce builds the unitig graph from read-graph arcs that join the end
// of one linear unitig to the start of another.
func (c *contractor) induce(units []Unitig) *core.Graph {
	boundary := make([]int, c.g.NumVertices())
	for i := range boundary {
		boundary[i] = -1
	}
	for i, u := range units {
		if u.Circular {
			continue
		}
		boundary[u.Start.Index()] = i << 1
		boundary[u.End.Index()] = i<<1 | 1
	}

	ug := core.NewGraph(core.WithCapacity(len(units), 0))
	for _, u := range units {
		// lengths are never negative
		_, _ = ug.AddSegment("", u.Len)
	}
	for _, p := range c.g.AllArcs() {
		if p.Del {
			continue
		}
		from, to := boundary[p.V.Flip().Index()], boundary[p.W.Index()]
		if from < 0 || to < 0 {
			continue
		}
		uv := from ^ 1
		l := units[uv>>1].Len - p.OV
		if l < 1 {
			l = 1
		}
		ug.PushArc(core.Arc{
			V:      core.VertexAt(uv),
			W:      core.VertexAt(to),
			Len:    l,
			OV:     p.OV,
			OW:     p.OW,
			Strong: p.Strong,
			LinkID: uint32(len(units)),
		})
	}
	ug.Cleanup()

	return ug
}
