// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvlasm/core"
)

const (
	methodRead = "Read"
	methodLink = "Link"
)

// Read adds reads with the given names and no arcs.
func Read(names ...string) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		for _, name := range names {
			if name == "" {
				return fmt.Errorf("%s: empty name: %w", methodRead, ErrConstructFailed)
			}
			if _, err := addRead(g, methodRead, name, cfg.readLen); err != nil {
				return err
			}
		}

		return nil
	}
}

// Link adds a dovetail from read `from` in orientation fromOri to read
// `to` in orientation toOri, creating either read if missing.
func Link(from string, fromOri uint8, to string, toOri uint8) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if from == "" || to == "" || fromOri > 1 || toOri > 1 {
			return fmt.Errorf("%s(%q,%d,%q,%d): %w", methodLink, from, fromOri, to, toOri, ErrConstructFailed)
		}
		u, err := addRead(g, methodLink, from, cfg.readLen)
		if err != nil {
			return err
		}
		v, err := addRead(g, methodLink, to, cfg.readLen)
		if err != nil {
			return err
		}
		dovetail(g, core.Vertex{ID: u, Ori: fromOri}, core.Vertex{ID: v, Ori: toOri}, cfg.overlap)

		return nil
	}
}
