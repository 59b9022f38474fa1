package common

import "github.com/jakecoffman/cp"

// Rect is an integer axis-aligned rectangle anchored at its top-left corner.
// It covers the pixels [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y int
	W, H uint32
}

// FromCenter builds a rect of the given size centered on (cx, cy).
func FromCenter(cx, cy int, w, h uint32) Rect {
	r := Rect{W: w, H: h}
	r.CenterOn(cx, cy)
	return r
}

// CenterOn moves r so that its center is (cx, cy).
func (r *Rect) CenterOn(cx, cy int) {
	r.X = cx - int(r.W)/2
	r.Y = cy - int(r.H)/2
}

// Center returns the center point of r.
func (r Rect) Center() (int, int) {
	return r.X + int(r.W)/2, r.Y + int(r.H)/2
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.W == 0 || r.H == 0
}

// Flip swaps width and height around the current center.
func (r *Rect) Flip() {
	cx, cy := r.Center()
	r.W, r.H = r.H, r.W
	r.CenterOn(cx, cy)
}

// BB returns the closed pixel range of r as a Chipmunk bounding box. Chipmunk
// boxes are inclusive on every edge, so the far edges are pulled in by one
// pixel.
func (r Rect) BB() cp.BB {
	return cp.BB{
		L: float64(r.X),
		B: float64(r.Y),
		R: float64(r.X + int(r.W) - 1),
		T: float64(r.Y + int(r.H) - 1),
	}
}

// Contains reports whether the pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	if r.Empty() {
		return false
	}
	return r.BB().ContainsVect(cp.Vector{X: float64(x), Y: float64(y)})
}

// Overlaps reports whether r and o share at least one pixel. Rects that only
// touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.BB().Intersects(o.BB())
}

// IntersectsSegment reports whether the segment from (x1, y1) to (x2, y2)
// passes through any pixel of r, endpoints included.
func (r Rect) IntersectsSegment(x1, y1, x2, y2 int) bool {
	if r.Empty() {
		return false
	}
	a := cp.Vector{X: float64(x1), Y: float64(y1)}
	b := cp.Vector{X: float64(x2), Y: float64(y2)}
	return r.BB().IntersectsSegment(a, b)
}
