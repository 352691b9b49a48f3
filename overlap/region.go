// SPDX-License-Identifier: MIT

package overlap

// TracePoint marks the start of a run of constant diagonal shift.
type TracePoint struct {
	Pos   int
	Shift int
}

// Window is a slot for downstream base-level alignment of one query
// window. Only allocation happens here.
type Window struct {
	XStart, XEnd   int
	YStart, YEnd   int
	Error          int
	ExtraBegin     int
	ExtraEnd       int
	ErrorThreshold int
	Cigar          []byte
}

// Region is one chained overlap between query X and target Y.
type Region struct {
	XID, YID     uint32
	XStart, XEnd int
	YStart, YEnd int
	XStrand      uint8
	YStrand      uint8
	SharedSeed   int // chain score
	OverlapLen   int // implied length after end extension
	Trace        []TracePoint
	Windows      []Window
	Strong       bool
}

// Reversed reports whether X and Y lie on opposite strands.
func (r *Region) Reversed() bool { return r.XStrand != r.YStrand }

// TotalShift returns the diagonal shift between the region's two corners.
func (r *Region) TotalShift() int {
	return (r.YEnd - r.YStart) - (r.XEnd - r.XStart)
}

// AllocWindows reserves len/windowSize+4 empty window slots.
func (r *Region) AllocWindows(windowSize int) {
	if windowSize <= 0 {
		return
	}
	n := (r.XEnd-r.XStart+1)/windowSize + 4
	if cap(r.Windows) < n {
		r.Windows = make([]Window, 0, n)
	} else {
		r.Windows = r.Windows[:0]
	}
}

// AppendWindow adds one window slot.
func (r *Region) AppendWindow(w Window) { r.Windows = append(r.Windows, w) }

// Extend pushes both ends of an overlap to the nearest sequence end.
// At the start the side with the smaller offset is clipped to 0 and the
// other moves by the same amount; at the end the side with less
// remaining sequence absorbs it.
func Extend(xs, xe, xLen, ys, ye, yLen int) (int, int, int, int) {
	if xs <= ys {
		ys -= xs
		xs = 0
	} else {
		xs -= ys
		ys = 0
	}
	xr, yr := xLen-xe-1, yLen-ye-1
	if xr <= yr {
		xe = xLen - 1
		ye += xr
	} else {
		xe += yr
		ye = yLen - 1
	}

	return xs, xe, ys, ye
}

// ExtendedLength is the X span of an overlap after Extend.
func ExtendedLength(xs, xe, xLen, ys, ye, yLen int) int {
	xs, xe, _, _ = Extend(xs, xe, xLen, ys, ye, yLen)

	return xe - xs + 1
}

// Reflect maps r onto the opposite strands of both sequences: every
// coordinate c becomes len-c-1, trace order reverses and shifts are
// re-measured from the new start. Applying it twice is the identity.
func Reflect(r *Region, xLen, yLen int) {
	total := r.TotalShift()
	r.XStart, r.XEnd = xLen-r.XEnd-1, xLen-r.XStart-1
	r.YStart, r.YEnd = yLen-r.YEnd-1, yLen-r.YStart-1
	r.XStrand ^= 1
	r.YStrand ^= 1

	t := r.Trace
	for i, j := 0, len(t)-1; i < j; i, j = i+1, j-1 {
		t[i], t[j] = t[j], t[i]
	}
	for i := range t {
		t[i].Pos = xLen - t[i].Pos - 1
		t[i].Shift = total - t[i].Shift
	}
}
