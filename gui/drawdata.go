package gui

// DrawData is everything the renderer needs for one frame.
// It is owned by the Toolkit and only valid until the next NewFrame.
type DrawData struct {
	DisplayPos  Vec2 // Top-left of the drawable area in display coordinates
	DisplaySize Vec2
	Lists       []*DrawList

	TotalVertices int
	TotalIndices  int
}

// Valid reports whether the display area is non-degenerate.
func (dd *DrawData) Valid() bool {
	return dd.DisplaySize.X > 0 && dd.DisplaySize.Y > 0
}
