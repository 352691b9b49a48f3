// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/katalvlaran/lvlasm/core"
)

const (
	methodCycle   = "Cycle"
	minCycleReads = 2
)

// Cycle adds n reads tiled like Path and closes the ring with a dovetail
// from the last read back to the first, as a circular genome would.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(methodCycle, "n", n, minCycleReads); err != nil {
			return err
		}
		ids, err := addReads(g, cfg, methodCycle, 0, n)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			dovetail(g, core.Vertex{ID: ids[i]}, core.Vertex{ID: ids[(i+1)%n]}, cfg.overlap)
		}

		return nil
	}
}
