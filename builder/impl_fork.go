// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/katalvlaran/lvlasm/core"
)

const (
	methodFork  = "Fork"
	minStem     = 1
	minBranches = 2
)

// Fork adds a stem of `stem` tiled reads followed by `branches` reads
// that all overlap the last stem read, the shape a repeat boundary or a
// heterozygous site leaves in a read graph. Reads are numbered stem
// first, then branches.
func Fork(stem, branches int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(methodFork, "stem", stem, minStem); err != nil {
			return err
		}
		if err := validateMin(methodFork, "branches", branches, minBranches); err != nil {
			return err
		}
		ids, err := addReads(g, cfg, methodFork, 0, stem+branches)
		if err != nil {
			return err
		}
		for i := 1; i < stem; i++ {
			dovetail(g, core.Vertex{ID: ids[i-1]}, core.Vertex{ID: ids[i]}, cfg.overlap)
		}
		hub := core.Vertex{ID: ids[stem-1]}
		for _, id := range ids[stem:] {
			dovetail(g, hub, core.Vertex{ID: id}, cfg.overlap)
		}

		return nil
	}
}
