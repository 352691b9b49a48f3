// SPDX-License-Identifier: MIT

package core

import "fmt"

// AddSegment registers a segment and returns its id.
// A non-empty name already present returns the existing id unchanged.
// Empty names are never indexed.
func (g *Graph) AddSegment(name string, length int) (uint32, error) {
	if length < 0 {
		return 0, fmt.Errorf("AddSegment(%q, %d): %w", name, length, ErrNegativeLen)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if name != "" {
		if id, ok := g.names[name]; ok {
			return id, nil
		}
	}
	id := uint32(len(g.segs))
	g.segs = append(g.segs, Segment{Name: name, Len: length})
	if name != "" {
		g.names[name] = id
	}
	g.dirty = true

	return id, nil
}

// SegmentID resolves a segment name.
func (g *Graph) SegmentID(name string) (uint32, bool) {
	g.mu.Lock()
	id, ok := g.names[name]
	g.mu.Unlock()

	return id, ok
}

// Segment returns a copy of segment id. ok is false when id is unknown.
func (g *Graph) Segment(id uint32) (Segment, bool) {
	if int(id) >= len(g.segs) {
		return Segment{}, false
	}

	return g.segs[id], true
}

// Length returns the length of segment id, 0 when unknown.
func (g *Graph) Length(id uint32) int {
	if int(id) >= len(g.segs) {
		return 0
	}

	return g.segs[id].Len
}

// Lengths returns a snapshot of all segment lengths indexed by id.
func (g *Graph) Lengths() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]int, len(g.segs))
	for i := range g.segs {
		out[i] = g.segs[i].Len
	}

	return out
}

// SetDeleted flags segment id as deleted. Its arcs disappear on the next Cleanup.
func (g *Graph) SetDeleted(id uint32) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if int(id) >= len(g.segs) {
		return fmt.Errorf("SetDeleted(%d): %w", id, ErrVertexRange)
	}
	if !g.segs[id].Del {
		g.segs[id].Del = true
		g.dirty = true
	}

	return nil
}

// IsDeleted reports whether segment id is flagged deleted.
// Unknown ids count as deleted.
func (g *Graph) IsDeleted(id uint32) bool {
	if int(id) >= len(g.segs) {
		return true
	}

	return g.segs[id].Del
}

// NumSegments returns the number of registered segments, deleted included.
func (g *Graph) NumSegments() int { return len(g.segs) }

// NumVertices returns 2*NumSegments.
func (g *Graph) NumVertices() int { return len(g.segs) << 1 }

// Segments returns a copy of the segment table.
func (g *Graph) Segments() []Segment {
	out := make([]Segment, len(g.segs))
	copy(out, g.segs)

	return out
}
