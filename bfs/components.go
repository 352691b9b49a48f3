// SPDX-License-Identifier: MIT

package bfs

import "github.com/katalvlaran/lvlasm/core"

// Components groups the live sequences of the clean graph g into
// connected components, ignoring arc direction and orientation. Members
// are listed in BFS order; components are ordered by their smallest id.
// Arcs are expected in complementary pairs, as arcs.Builder and
// core.Graph.FixSymmetry leave them.
func Components(g *core.Graph) ([][]uint32, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if g.Dirty() {
		return nil, ErrGraphDirty
	}

	comp := make([]int, g.NumSegments())
	for i := range comp {
		comp[i] = -1
	}
	var out [][]uint32
	for id := range comp {
		if comp[id] >= 0 || g.IsDeleted(uint32(id)) {
			continue
		}
		k := len(out)
		var members []uint32
		queue := []uint32{uint32(id)}
		comp[id] = k
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, cur)
			for ori := uint8(0); ori < 2; ori++ {
				for _, a := range g.Arcs(core.Vertex{ID: cur, Ori: ori}) {
					if comp[a.W.ID] < 0 {
						comp[a.W.ID] = k
						queue = append(queue, a.W.ID)
					}
				}
			}
		}
		out = append(out, members)
	}

	return out, nil
}
