// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvlasm/core"
)

// Constructor adds reads and arcs to g. Constructors validate their
// parameters and return sentinel errors; they never panic.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a graph, applies every constructor in order and
// cleans the result so that degree queries are valid. Constructor errors
// are wrapped with "BuildGraph: %w".
func BuildGraph(bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph()
	cfg := newBuilderConfig(bopts...)
	if cfg.overlap >= cfg.readLen {
		return nil, fmt.Errorf("BuildGraph: overlap %d, read length %d: %w", cfg.overlap, cfg.readLen, ErrOverlapTooLong)
	}

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}
	g.Cleanup()

	return g, nil
}

// addRead registers (or reuses) the read called name.
func addRead(g *core.Graph, method, name string, length int) (uint32, error) {
	id, err := g.AddSegment(name, length)
	if err != nil {
		return 0, fmt.Errorf("%s: AddSegment(%s): %w", method, name, err)
	}

	return id, nil
}

// addReads registers reads idFn(from)..idFn(from+n-1).
func addReads(g *core.Graph, cfg builderConfig, method string, from, n int) ([]uint32, error) {
	ids := make([]uint32, n)
	for i := range ids {
		id, err := addRead(g, method, cfg.idFn(from+i), cfg.readLen)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	return ids, nil
}

// dovetail pushes u->v and its complement v^1->u^1 with overlap ov.
func dovetail(g *core.Graph, u, v core.Vertex, ov int) {
	g.PushArc(core.Arc{V: u, W: v, Len: g.Length(u.ID) - ov, OV: ov, OW: ov})
	g.PushArc(core.Arc{V: v.Flip(), W: u.Flip(), Len: g.Length(v.ID) - ov, OV: ov, OW: ov})
}

func validateMin(method, what string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: %s=%d < min=%d: %w", method, what, got, min, ErrTooFewReads)
	}

	return nil
}
