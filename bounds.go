package recycler

// Bounds is the recycling region: the viewport's world rectangle expanded on
// the scrolling axis by a fraction of its own extent.
type Bounds struct {
	Min, Max Vec2
}

// ComputeBounds builds the recycling region from viewport world corners
// (bottom-left, top-left, top-right, bottom-right). The threshold is a
// fraction of the viewport extent on the scrolling axis, added on both
// sides; the cross axis uses the raw corners.
func ComputeBounds(corners [4]Vec2, threshold float32, o Orientation) Bounds {
	b := Bounds{Min: corners[0], Max: corners[2]}
	if o == Horizontal {
		slack := threshold * (corners[2].X - corners[0].X)
		b.Min.X -= slack
		b.Max.X += slack
	} else {
		slack := threshold * (corners[2].Y - corners[0].Y)
		b.Min.Y -= slack
		b.Max.Y += slack
	}
	return b
}

// Rect returns the bounds as a world rectangle.
func (b Bounds) Rect() Rect {
	return Rect{X: b.Min.X, Y: b.Min.Y, W: b.Max.X - b.Min.X, H: b.Max.Y - b.Min.Y}
}

// Extent returns the size of the bounds on the scrolling axis.
func (b Bounds) Extent(o Orientation) float32 {
	a := axisFor(o)
	return a.major(b.Max) - a.major(b.Min)
}

// span returns the near (earlier items) and far (later items) edges
// projected on the forward axis.
func (b Bounds) span(a axis) (near, far float32) {
	return a.span(b.Rect())
}
