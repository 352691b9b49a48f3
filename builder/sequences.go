// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
)

const (
	methodRandomGenome = "RandomGenome"
	methodTiles        = "Tiles"
)

var bases = [4]byte{'A', 'C', 'G', 'T'}

// Tile is one read cut from a genome.
type Tile struct {
	Name  string
	Start int
	Seq   []byte
}

// RandomGenome returns n uniformly drawn bases. Requires WithSeed or
// WithRand.
func RandomGenome(n int, opts ...BuilderOption) ([]byte, error) {
	cfg := newBuilderConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodRandomGenome, ErrNeedRandSource)
	}
	if err := validateMin(methodRandomGenome, "n", n, 1); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = bases[cfg.rng.Intn(len(bases))]
	}

	return out, nil
}

// Tiles cuts genome into reads of the configured length, each starting
// readLen-overlap after the previous one, named by the ID scheme. The
// reads match Path(len(result)) built with the same options. A genome
// whose tail does not fill a whole read drops the tail.
func Tiles(genome []byte, opts ...BuilderOption) ([]Tile, error) {
	cfg := newBuilderConfig(opts...)
	if cfg.overlap >= cfg.readLen {
		return nil, fmt.Errorf("%s: %w", methodTiles, ErrOverlapTooLong)
	}
	var out []Tile
	for i, start := 0, 0; start+cfg.readLen <= len(genome); i, start = i+1, start+cfg.step() {
		out = append(out, Tile{
			Name:  cfg.idFn(i),
			Start: start,
			Seq:   genome[start : start+cfg.readLen : start+cfg.readLen],
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: genome %d shorter than one read: %w", methodTiles, len(genome), ErrTooFewReads)
	}

	return out, nil
}
