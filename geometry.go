package overlay

import "github.com/go-theft-auto/overlay/gui"

// Rect is an integer rectangle in device pixels.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Width returns the horizontal extent.
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Normalized returns a rectangle of the same size anchored at the origin.
func (r Rect) Normalized() Rect {
	return Rect{Right: r.Width(), Bottom: r.Height()}
}

// ScissorFromClip translates a draw command clip rectangle from display
// coordinates to device coordinates. Fractions are truncated toward zero.
func ScissorFromClip(clip [4]float32, displayPos gui.Vec2) Rect {
	return Rect{
		Left:   int32(clip[0] - displayPos.X),
		Top:    int32(clip[1] - displayPos.Y),
		Right:  int32(clip[2] - displayPos.X),
		Bottom: int32(clip[3] - displayPos.Y),
	}
}

// ClipSpace returns the (left, top, right, bottom) display bounds that map
// to the edges of clip space.
func ClipSpace(displayPos, displaySize gui.Vec2) [4]float32 {
	return [4]float32{
		displayPos.X,
		displayPos.Y,
		displayPos.X + displaySize.X,
		displayPos.Y + displaySize.Y,
	}
}

// OrthoProjection builds the column-major orthographic matrix for the
// bounds returned by ClipSpace. Y grows downwards in display space.
func OrthoProjection(clip [4]float32) [16]float32 {
	l, t, r, b := clip[0], clip[1], clip[2], clip[3]
	return [16]float32{
		2 / (r - l), 0, 0, 0,
		0, 2 / (t - b), 0, 0,
		0, 0, 0.5, 0,
		(r + l) / (l - r), (t + b) / (b - t), 0.5, 1,
	}
}

// Minimum buffer capacities, in elements.
const (
	MinVertexCapacity = 5000
	MinIndexCapacity  = 10000
)

// GrowCapacity returns the capacity to allocate so that required elements
// fit. It returns current when nothing needs to change and otherwise doubles
// from max(current, floor) until required fits.
func GrowCapacity(current, required, floor int) int {
	if required <= current {
		return current
	}
	n := max(current, floor, 1)
	for n < required {
		n *= 2
	}
	return n
}
