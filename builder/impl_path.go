// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/katalvlaran/lvlasm/core"
)

const (
	methodPath   = "Path"
	minPathReads = 1
)

// Path adds n reads idFn(0..n-1) tiled left to right: read i overlaps
// read i+1 by the configured overlap on the forward strand.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(methodPath, "n", n, minPathReads); err != nil {
			return err
		}
		ids, err := addReads(g, cfg, methodPath, 0, n)
		if err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			dovetail(g, core.Vertex{ID: ids[i-1]}, core.Vertex{ID: ids[i]}, cfg.overlap)
		}

		return nil
	}
}
