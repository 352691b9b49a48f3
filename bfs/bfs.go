// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvlasm/core"
)

// queueItem pairs a vertex with its BFS depth.
type queueItem struct {
	v     core.Vertex
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  BFSOptions
	ctx   context.Context
	queue []queueItem
	res   *BFSResult
}

// BFS runs breadth-first search on the clean graph g starting from
// start, applying any number of functional Options.
// Returns ErrGraphNil, ErrGraphDirty or ErrStartVertexNotFound for
// invalid input, ErrOptionViolation for bad options, or any
// user-supplied hook error.
func BFS(g *core.Graph, start core.Vertex, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g.Dirty() {
		return nil, ErrGraphDirty
	}
	if int(start.ID) >= g.NumSegments() || g.IsDeleted(start.ID) {
		return nil, fmt.Errorf("%w: %v", ErrStartVertexNotFound, start)
	}

	n := g.NumVertices()
	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		res: &BFSResult{
			Depth:  make([]int, n),
			Parent: make([]core.Vertex, n),
		},
	}
	for i := range w.res.Depth {
		w.res.Depth[i] = -1
		w.res.Parent[i] = core.NoVertex
	}

	w.enqueue(start, 0, core.NoVertex)

	return w.res, w.loop()
}

// enqueue marks v reached at depth d and records its parent.
func (w *walker) enqueue(v core.Vertex, d int, parent core.Vertex) {
	w.res.Depth[v.Index()] = d
	w.res.Parent[v.Index()] = parent
	w.queue = append(w.queue, queueItem{v: v, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.v)
		if err := w.opts.OnVisit(item.v, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %v: %w", item.v, err)
		}
		if w.opts.MaxDepth > 0 && item.depth >= w.opts.MaxDepth {
			continue
		}
		w.expand(item, item.v, false)
		if w.opts.Undirected {
			// predecessors of v are the flipped successors of v's complement
			w.expand(item, item.v.Flip(), true)
		}
	}

	return nil
}

func (w *walker) expand(item queueItem, from core.Vertex, flip bool) {
	for _, a := range w.graph.Arcs(from) {
		if !w.opts.FilterArc(a) {
			continue
		}
		next := a.W
		if flip {
			next = next.Flip()
		}
		if w.res.Depth[next.Index()] < 0 {
			w.enqueue(next, item.depth+1, item.v)
		}
	}
}
