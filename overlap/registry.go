// SPDX-License-Identifier: MIT

package overlap

import (
	"slices"

	"github.com/twotwotwo/sorts/sortutil"
)

// DefaultWindow is the query window size used for window slot allocation.
const DefaultWindow = 375

// Registry collects the retained overlaps of one query in append order.
// Not safe for concurrent use; each worker owns its own.
type Registry struct {
	regions   []Region
	begEnd    bool
	window    int
	retained  int
	displaced int
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithBegEnd pins the first trace point to XStart and appends a closing
// point at XEnd so the trace covers the whole extended region.
func WithBegEnd() RegistryOption {
	return func(g *Registry) { g.begEnd = true }
}

// WithWindows reserves window slots of the given size on every appended
// region. Panics on a non-positive size.
func WithWindows(size int) RegistryOption {
	if size <= 0 {
		panic("overlap: WithWindows(size<=0)")
	}

	return func(g *Registry) { g.window = size }
}

// WithCapacity preallocates room for n regions.
func WithCapacity(n int) RegistryOption {
	return func(g *Registry) {
		if n > 0 {
			g.regions = make([]Region, 0, n)
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	g := &Registry{}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Append stores r after deduplication, end extension and strand
// normalisation. It reports whether r was kept. The caller's trace is
// never modified.
//
// When the previous entry has the same target, only the one with the
// higher SharedSeed survives; on equal seeds the longer OverlapLen wins
// and the incumbent wins a full tie.
func (g *Registry) Append(r Region, xLen, yLen int) bool {
	if n := len(g.regions); n > 0 && g.regions[n-1].YID == r.YID {
		last := &g.regions[n-1]
		better := r.SharedSeed > last.SharedSeed ||
			(r.SharedSeed == last.SharedSeed && r.OverlapLen > last.OverlapLen)
		if !better {
			return false
		}
		*last = Region{}
		g.regions = g.regions[:n-1]
		g.displaced++
	}

	r.XStart, r.XEnd, r.YStart, r.YEnd = Extend(r.XStart, r.XEnd, xLen, r.YStart, r.YEnd, yLen)
	r.Strong = false
	if r.XStrand == 1 || g.begEnd {
		r.Trace = slices.Clone(r.Trace)
	}
	if r.XStrand == 1 {
		Reflect(&r, xLen, yLen)
	}
	if g.begEnd {
		padTrace(&r)
	}
	if g.window > 0 {
		r.AllocWindows(g.window)
	}

	g.regions = append(g.regions, r)
	g.retained++

	return true
}

func padTrace(r *Region) {
	if len(r.Trace) == 0 || r.Trace[0].Shift != 0 {
		r.Trace = append([]TracePoint{{Pos: r.XStart}}, r.Trace...)
	} else {
		r.Trace[0].Pos = r.XStart
	}
	if last := r.Trace[len(r.Trace)-1]; last.Pos != r.XEnd {
		r.Trace = append(r.Trace, TracePoint{Pos: r.XEnd, Shift: last.Shift})
	}
}

// SortByTarget orders regions by YID, keeping append order among equal
// targets.
func (g *Registry) SortByTarget() {
	n := len(g.regions)
	if n < 2 {
		return
	}
	keys := make([]uint64, n)
	for i := range g.regions {
		keys[i] = uint64(g.regions[i].YID)<<32 | uint64(i)
	}
	sortutil.Uint64s(keys)

	out := make([]Region, n, cap(g.regions))
	for i, k := range keys {
		out[i] = g.regions[uint32(k)]
	}
	g.regions = out
}

// Len returns the number of retained regions.
func (g *Registry) Len() int { return len(g.regions) }

// At returns a pointer to region i.
func (g *Registry) At(i int) *Region { return &g.regions[i] }

// Regions returns the retained regions. The slice aliases registry storage.
func (g *Registry) Regions() []Region { return g.regions }

// Retained returns how many appends were accepted since the last Reset,
// including entries later displaced by a better one.
func (g *Registry) Retained() int { return g.retained }

// Displaced returns how many stored entries were replaced by a better
// overlap to the same target.
func (g *Registry) Displaced() int { return g.displaced }

// Reset empties the registry and keeps its storage.
func (g *Registry) Reset() {
	clear(g.regions)
	g.regions = g.regions[:0]
	g.retained, g.displaced = 0, 0
}
