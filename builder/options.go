// SPDX-License-Identifier: MIT

package builder

import "math/rand"

// BuilderOption customizes builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the read naming scheme. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}

	return func(c *builderConfig) { c.idFn = fn }
}

// WithReadLength sets the length of every generated read. Panics on n <= 0.
func WithReadLength(n int) BuilderOption {
	if n <= 0 {
		panic("builder: WithReadLength(n<=0)")
	}

	return func(c *builderConfig) { c.readLen = n }
}

// WithOverlap sets the dovetail length between consecutive reads.
// Panics on n < 0.
func WithOverlap(n int) BuilderOption {
	if n < 0 {
		panic("builder: WithOverlap(n<0)")
	}

	return func(c *builderConfig) { c.overlap = n }
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a seeded RNG.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}
