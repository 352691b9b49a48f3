// SPDX-License-Identifier: MIT

package core

import (
	"cmp"
	"fmt"
	"slices"
)

// PushArc appends a in any order. Degree queries ignore it until Cleanup.
// Safe for one concurrent writer beside segment-length readers.
func (g *Graph) PushArc(a Arc) {
	g.mu.Lock()
	g.arcs = append(g.arcs, a)
	g.dirty = true
	g.mu.Unlock()
}

// Dirty reports whether arcs or segments changed since the last Cleanup.
func (g *Graph) Dirty() bool { return g.dirty }

// NumArcs returns the number of stored arcs, including any pushed since
// the last Cleanup.
func (g *Graph) NumArcs() int { return len(g.arcs) }

// Cleanup drops arcs touching deleted segments or flagged Del, sorts the
// rest by (source, target, overlap desc), collapses exact duplicates and
// rebuilds the per-vertex index.
//
// Panics when an arc references a segment that was never registered.
func (g *Graph) Cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()

	nSeg := uint32(len(g.segs))
	// 1) mark arcs on deleted segments
	for i := range g.arcs {
		a := &g.arcs[i]
		if a.V.ID >= nSeg || a.W.ID >= nSeg {
			panic(fmt.Sprintf("core: arc %v->%v references unknown segment (have %d)", a.V, a.W, nSeg))
		}
		if g.segs[a.V.ID].Del || g.segs[a.W.ID].Del {
			a.Del = true
		}
	}

	// 2) compact
	kept := g.arcs[:0]
	for _, a := range g.arcs {
		if !a.Del {
			kept = append(kept, a)
		}
	}
	clear(g.arcs[len(kept):])
	g.arcs = kept

	// 3) order
	slices.SortStableFunc(g.arcs, compareArcs)

	// 4) exact duplicates
	if len(g.arcs) > 1 {
		k := 1
		for i := 1; i < len(g.arcs); i++ {
			prev, cur := &g.arcs[k-1], g.arcs[i]
			if sameArc(*prev, cur) {
				prev.Strong = prev.Strong || cur.Strong
				continue
			}
			g.arcs[k] = cur
			k++
		}
		clear(g.arcs[k:])
		g.arcs = g.arcs[:k]
	}

	// 5) index
	g.rebuildIndex()
	g.dirty = false
}

func compareArcs(a, b Arc) int {
	if c := cmp.Compare(a.V.Index(), b.V.Index()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.W.Index(), b.W.Index()); c != 0 {
		return c
	}

	return cmp.Compare(b.OV, a.OV)
}

func sameArc(a, b Arc) bool {
	return a.V == b.V && a.W == b.W && a.Len == b.Len && a.OV == b.OV && a.OW == b.OW
}

func (g *Graph) rebuildIndex() {
	nv := len(g.segs) << 1
	if cap(g.idx) >= nv {
		g.idx = g.idx[:nv]
		clear(g.idx)
	} else {
		g.idx = make([]span, nv)
	}
	for i := 0; i < len(g.arcs); {
		v := g.arcs[i].V.Index()
		j := i + 1
		for j < len(g.arcs) && g.arcs[j].V.Index() == v {
			j++
		}
		g.idx[v] = span{off: uint32(i), n: uint32(j - i)}
		i = j
	}
}

// Arcs returns the out-arcs of v as of the last Cleanup.
// The slice aliases graph storage and must not be modified.
func (g *Graph) Arcs(v Vertex) []Arc {
	i := v.Index()
	if v.IsNone() || i >= len(g.idx) {
		return nil
	}
	s := g.idx[i]

	return g.arcs[s.off : s.off+s.n : s.off+s.n]
}

// AllArcs returns every stored arc. Read-only.
func (g *Graph) AllArcs() []Arc { return g.arcs }

// OutDegree returns the number of out-arcs of v as of the last Cleanup.
func (g *Graph) OutDegree(v Vertex) int { return len(g.Arcs(v)) }

// InDegree returns OutDegree(v.Flip()), the in-degree of v in a
// symmetric graph.
func (g *Graph) InDegree(v Vertex) int { return g.OutDegree(v.Flip()) }

// UniqueSuccessor returns the only out-arc of v.
func (g *Graph) UniqueSuccessor(v Vertex) (Arc, error) {
	as := g.Arcs(v)
	if len(as) != 1 {
		return Arc{}, fmt.Errorf("UniqueSuccessor(%v): out-degree %d: %w", v, len(as), ErrNotUnique)
	}

	return as[0], nil
}

// StampLinkIDs sets LinkID on every arc from position `from` onward.
func (g *Graph) StampLinkIDs(from int, id uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := max(from, 0); i < len(g.arcs); i++ {
		g.arcs[i].LinkID = id
	}
}

// DeleteMultiArcs keeps, for every ordered vertex pair joined by more
// than one arc, only the arc with the largest OV. Returns the number of
// arcs removed. Cleans the graph first when dirty.
func (g *Graph) DeleteMultiArcs() int {
	if g.dirty {
		g.Cleanup()
	}
	removed := 0
	for i := 1; i < len(g.arcs); i++ {
		// sorted by (V, W, OV desc): first of each run is the keeper
		if g.arcs[i].V == g.arcs[i-1].V && g.arcs[i].W == g.arcs[i-1].W {
			g.arcs[i].Del = true
			removed++
		}
	}
	if removed > 0 {
		g.Cleanup()
	}

	return removed
}

// FixSymmetry adds the complement w^1->v^1 of every arc v->w that lacks
// one. The complement gets Len = len(w) - OW with OV and OW swapped.
// Returns the number of arcs added.
func (g *Graph) FixSymmetry() int {
	if g.dirty {
		g.Cleanup()
	}
	var add []Arc
	for _, a := range g.arcs {
		cv, cw := a.W.Flip(), a.V.Flip()
		found := false
		for _, b := range g.Arcs(cv) {
			if b.W == cw {
				found = true
				break
			}
		}
		if found {
			continue
		}
		l := g.segs[a.W.ID].Len - a.OW
		if l < 1 {
			l = 1
		}
		add = append(add, Arc{
			V: cv, W: cw, Len: l,
			OV: a.OW, OW: a.OV,
			Strong: a.Strong, LinkID: a.LinkID,
		})
	}
	if len(add) == 0 {
		return 0
	}
	g.mu.Lock()
	g.arcs = append(g.arcs, add...)
	g.dirty = true
	g.mu.Unlock()
	g.Cleanup()

	return len(add)
}
