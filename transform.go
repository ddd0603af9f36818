package recycler

// Anchor presets. An anchor is a normalized point inside the parent rect;
// the pivot is the normalized point of the element that sits on it.
var (
	AnchorTop     = Vec2{X: 0.5, Y: 1}
	AnchorTopLeft = Vec2{X: 0, Y: 1}
	AnchorLeft    = Vec2{X: 0, Y: 0.5}
	AnchorStretch = [2]Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}
)

// Transform is a retained rectangle positioned relative to its parent.
//
// It models the small part of a host UI framework the recycler needs:
// anchors, pivot, anchored position and size delta. World space is y-up.
// A root transform (no parent) is placed with its pivot at AnchoredPosition.
//
//	// Viewport filling a 400x300 window, content stretched across it.
//	viewport := recycler.NewTransform("viewport", recycler.Vec2{X: 400, Y: 300})
//	content := recycler.NewTransform("content", recycler.Vec2{})
//	content.SetParent(viewport)
//	content.AnchorMin, content.AnchorMax = recycler.AnchorStretch[0], recycler.AnchorStretch[1]
type Transform struct {
	Name string

	AnchorMin        Vec2
	AnchorMax        Vec2
	Pivot            Vec2
	AnchoredPosition Vec2
	SizeDelta        Vec2

	parent *Transform
	active bool
}

// NewTransform creates an active root transform of the given size with a
// bottom-left pivot.
func NewTransform(name string, size Vec2) *Transform {
	return &Transform{
		Name:      name,
		SizeDelta: size,
		active:    true,
	}
}

// Parent returns the parent transform, or nil for a root.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// SetParent attaches t to parent. Local values are kept as-is.
func (t *Transform) SetParent(parent *Transform) {
	t.parent = parent
}

// Active reports whether the element is shown.
func (t *Transform) Active() bool {
	return t.active
}

// SetActive shows or hides the element.
func (t *Transform) SetActive(active bool) {
	t.active = active
}

// Size returns the effective width and height.
func (t *Transform) Size() Vec2 {
	if t.parent == nil {
		return t.SizeDelta
	}
	ps := t.parent.Size()
	return Vec2{
		X: ps.X*(t.AnchorMax.X-t.AnchorMin.X) + t.SizeDelta.X,
		Y: ps.Y*(t.AnchorMax.Y-t.AnchorMin.Y) + t.SizeDelta.Y,
	}
}

// WorldRect returns the rectangle in world coordinates.
func (t *Transform) WorldRect() Rect {
	size := t.Size()
	var pivotWorld Vec2
	if t.parent == nil {
		pivotWorld = t.AnchoredPosition
	} else {
		pr := t.parent.WorldRect()
		ref := Vec2{
			X: lerpf(t.AnchorMin.X, t.AnchorMax.X, t.Pivot.X),
			Y: lerpf(t.AnchorMin.Y, t.AnchorMax.Y, t.Pivot.Y),
		}
		pivotWorld = pr.Min().Add(Vec2{X: pr.W, Y: pr.H}.Scale(ref)).Add(t.AnchoredPosition)
	}
	origin := pivotWorld.Sub(size.Scale(t.Pivot))
	return Rect{X: origin.X, Y: origin.Y, W: size.X, H: size.Y}
}

// WorldCorners returns bottom-left, top-left, top-right and bottom-right.
func (t *Transform) WorldCorners() [4]Vec2 {
	r := t.WorldRect()
	return [4]Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X, Y: r.Y + r.H},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X + r.W, Y: r.Y},
	}
}

// SetAnchor moves both anchors and the pivot to the given points.
// Changing anchors alone would reinterpret SizeDelta, so the current
// width and height are re-applied afterwards.
func (t *Transform) SetAnchor(anchor, pivot Vec2) {
	size := t.Size()
	t.AnchorMin = anchor
	t.AnchorMax = anchor
	t.Pivot = pivot
	t.SizeDelta = size
}
