package orrery

import "math"

// DefaultHalfExtent is the world-space half size of the shorter screen axis:
// the visible area is at least [-2, 2] in both directions.
const DefaultHalfExtent = 2.0

// Viewport maps world space (origin at the screen centre, Y up) onto screen
// pixels (origin top-left, Y down). The shorter screen axis always spans
// [-HalfExtent, HalfExtent]; the longer one is widened to keep aspect.
type Viewport struct {
	Width, Height int
	HalfExtent    float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// newViewport creates a Viewport for the given screen size.
func newViewport(w, h int) *Viewport {
	return &Viewport{Width: w, Height: h, HalfExtent: DefaultHalfExtent, dirty: true}
}

// Resize updates the screen size. Returns true if it changed.
func (v *Viewport) Resize(w, h int) bool {
	if v.Width == w && v.Height == h {
		return false
	}
	v.Width = w
	v.Height = h
	v.dirty = true
	return true
}

// Scale returns the number of screen pixels per world unit.
func (v *Viewport) Scale() float64 {
	short := math.Min(float64(v.Width), float64(v.Height))
	if short <= 0 || v.HalfExtent <= 0 {
		return 1
	}
	return short / (2 * v.HalfExtent)
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(w/2, h/2) * Scale(s, -s)
func (v *Viewport) computeViewMatrix() [6]float64 {
	if !v.dirty {
		return v.viewMatrix
	}
	v.dirty = false

	s := v.Scale()
	v.viewMatrix = [6]float64{s, 0, 0, -s, float64(v.Width) / 2, float64(v.Height) / 2}
	v.invViewMatrix = invertAffine(v.viewMatrix)
	return v.viewMatrix
}

// MarkDirty forces a recomputation of the view matrix.
func (v *Viewport) MarkDirty() {
	v.dirty = true
}

// WorldToScreen converts world coordinates to screen coordinates.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	v.computeViewMatrix()
	return transformPoint(v.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	v.computeViewMatrix()
	return transformPoint(v.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle covered by the screen.
func (v *Viewport) VisibleBounds() Rect {
	x0, y0 := v.ScreenToWorld(0, float64(v.Height))
	x1, y1 := v.ScreenToWorld(float64(v.Width), 0)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
