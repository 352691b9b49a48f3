// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	idFn    IDFn
	rng     *rand.Rand
	readLen int
	overlap int
}

// Deterministic defaults.
const (
	DefaultReadLength = 1000
	DefaultOverlap    = 300
)

// newBuilderConfig applies opts over the defaults; later options win.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:    DefaultIDFn,
		readLen: DefaultReadLength,
		overlap: DefaultOverlap,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// step is the distance between the starts of two consecutive tiled reads.
func (c builderConfig) step() int { return c.readLen - c.overlap }
