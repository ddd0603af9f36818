package recycler

import "math"

// Scroll view defaults.
const (
	DefaultWheelSpeed   float32 = 40    // pixels per wheel notch
	DefaultDeceleration float32 = 0.135 // velocity kept after one second of inertia
	velocityEpsilon     float32 = 1
)

// ScrollView is the container controller around a Recycler: it owns the
// content transform, turns wheel, drag and key input into content movement
// and reports every movement to the recycler.
//
// Offsets are logical: the distance in pixels from the first item to the
// viewport's leading edge, independent of how often cells were recycled.
//
// Usage:
//
//	r, _ := recycler.New(recycler.NewBasicPool(), recycler.WithGrid(3))
//	view := recycler.NewScrollView("contacts", viewport, prototype, r)
//	view.Initialize(source)
//	// per frame
//	view.Update(input, dt)
//	view.Draw(dl, &style, screenHeight)
type ScrollView struct {
	Name string
	// Focused views take keyboard input even when the mouse is elsewhere.
	Focused bool

	recycler  *Recycler
	viewport  *Transform
	content   *Transform
	prototype *Transform
	source    DataSource
	pending   DataSource

	velocity     float32 // logical pixels per second, positive toward later items
	dragging     bool
	dragPointer  float32 // pointer on the scrolling axis at drag start
	dragContent  float32 // content position on the scrolling axis at drag start
	screenHeight float32

	wheelSpeed   float32
	deceleration float32
	inertia      bool

	// OnValueChanged fires with the normalized position after every movement.
	OnValueChanged Event[float32]
}

// ScrollViewOption configures a ScrollView.
type ScrollViewOption func(*ScrollView)

// WithWheelSpeed sets the distance scrolled per wheel notch.
func WithWheelSpeed(px float32) ScrollViewOption {
	return func(v *ScrollView) { v.wheelSpeed = px }
}

// WithDeceleration sets the fraction of velocity kept after one second.
func WithDeceleration(rate float32) ScrollViewOption {
	return func(v *ScrollView) { v.deceleration = clampf(rate, 0, 1) }
}

// WithInertia enables or disables movement after a drag is released.
func WithInertia(enabled bool) ScrollViewOption {
	return func(v *ScrollView) { v.inertia = enabled }
}

// NewScrollView creates a scroll view over viewport. The content transform
// is created as a child of viewport, stretched across the cross axis.
func NewScrollView(name string, viewport, prototype *Transform, r *Recycler, opts ...ScrollViewOption) *ScrollView {
	content := NewTransform(name+"/content", Vec2{})
	content.SetParent(viewport)
	if r.Config().Orientation == Horizontal {
		content.AnchorMin, content.AnchorMax = Vec2{X: 0, Y: 0}, Vec2{X: 0, Y: 1}
	} else {
		content.AnchorMin, content.AnchorMax = Vec2{X: 0, Y: 1}, Vec2{X: 1, Y: 1}
	}
	if prototype != nil {
		prototype.SetParent(content)
	}

	v := &ScrollView{
		Name:         name,
		recycler:     r,
		viewport:     viewport,
		content:      content,
		prototype:    prototype,
		wheelSpeed:   DefaultWheelSpeed,
		deceleration: DefaultDeceleration,
		inertia:      true,
	}
	for _, opt := range opts {
		opt(v)
	}
	r.OnInitialized.Subscribe(v.onInitialized)
	return v
}

// Initialize builds the view for source. While a stepped build is running
// the source is queued and the newest queued source is built when the
// running one completes.
func (v *ScrollView) Initialize(source DataSource) error {
	if v.recycler.State() == StateInitializing {
		v.pending = source
		return nil
	}
	return v.ReloadData(source)
}

// ReloadData rebuilds the view for source immediately, aborting a running
// build and dropping any queued source.
func (v *ScrollView) ReloadData(source DataSource) error {
	v.pending = nil
	v.StopMovement()
	v.source = source
	return v.recycler.Initialize(v.prototype, v.viewport, v.content, source)
}

func (v *ScrollView) onInitialized(r *Recycler) {
	if v.pending != nil {
		src := v.pending
		v.pending = nil
		v.source = src
		if err := r.ReloadData(src); err != nil {
			r.logger.Error("reload queued source", "view", v.Name, "err", err)
		}
		return
	}
	v.OnValueChanged.Emit(v.Normalized())
}

// Recycler returns the engine behind the view.
func (v *ScrollView) Recycler() *Recycler { return v.recycler }

// Viewport returns the viewport transform.
func (v *ScrollView) Viewport() *Transform { return v.viewport }

// Content returns the content transform.
func (v *ScrollView) Content() *Transform { return v.content }

// Source returns the data source of the last build.
func (v *ScrollView) Source() DataSource { return v.source }

// Pending reports whether a source is queued behind a running build.
func (v *ScrollView) Pending() bool { return v.pending != nil }

// SetScreenHeight sets the height used to convert y-up world coordinates to
// y-down screen coordinates for hit testing.
func (v *ScrollView) SetScreenHeight(h float32) { v.screenHeight = h }

// Resize changes the viewport size and rebuilds the view.
func (v *ScrollView) Resize(size Vec2) error {
	v.viewport.SizeDelta = size
	if v.recycler.Config().Orientation == Horizontal {
		v.content.SizeDelta.Y = size.Y
	} else {
		v.content.SizeDelta.X = size.X
	}
	if v.source == nil {
		return nil
	}
	return v.ReloadData(v.source)
}

// ViewportExtent returns the viewport size on the scrolling axis.
func (v *ScrollView) ViewportExtent() float32 {
	return v.recycler.axis.major(v.viewport.Size())
}

// Visible returns the clipper for the current offset.
func (v *ScrollView) Visible() *Clipper {
	r := v.recycler
	return NewClipper(r.ItemCount(), r.Config().Dimension, r.LineExtent(), v.ViewportExtent(), v.Offset())
}

// Offset returns the logical scroll offset.
func (v *ScrollView) Offset() float32 {
	return v.recycler.ScrollOffset()
}

// MaxOffset returns the largest valid offset.
func (v *ScrollView) MaxOffset() float32 {
	return v.Visible().MaxOffset(v.ViewportExtent())
}

// Normalized returns the offset as a fraction of MaxOffset, 0 when
// everything fits.
func (v *ScrollView) Normalized() float32 {
	m := v.MaxOffset()
	if m <= 0 {
		return 0
	}
	return clampf(v.Offset()/m, 0, 1)
}

// SetNormalized scrolls to a fraction of MaxOffset.
func (v *ScrollView) SetNormalized(n float32) {
	v.SetScroll(clampf(n, 0, 1) * v.MaxOffset())
}

// Velocity returns the inertia velocity in pixels per second.
func (v *ScrollView) Velocity() float32 { return v.velocity }

// StopMovement cancels inertia and any drag in progress.
func (v *ScrollView) StopMovement() {
	v.velocity = 0
	v.dragging = false
}

// Dragging reports whether a drag is in progress.
func (v *ScrollView) Dragging() bool { return v.dragging }

// SetScroll moves to a logical offset, clamped to the content.
func (v *ScrollView) SetScroll(offset float32) {
	v.ScrollBy(offset - v.Offset())
}

// ScrollToItem scrolls the least distance that makes item idx fully visible.
func (v *ScrollView) ScrollToItem(idx int) {
	cur := v.Offset()
	v.SetScroll(v.Visible().ScrollToItem(idx, cur, v.ViewportExtent()))
}

// ScrollBy moves the content by amount logical pixels, clamped to the
// content, reports the movement to the recycler and returns the distance
// actually scrolled. It does nothing while the recycler is not idle.
func (v *ScrollView) ScrollBy(amount float32) float32 {
	r := v.recycler
	if r.State() != StateIdle {
		return 0
	}
	cur := v.Offset()
	target := clampf(cur+amount, 0, v.MaxOffset())
	d := target - cur
	if d == 0 {
		return 0
	}

	a := r.axis
	delta := a.along(-a.fwd * d)
	v.content.AnchoredPosition = v.content.AnchoredPosition.Add(delta)
	applied := r.ProcessScroll(delta)
	if v.dragging {
		// The drag target is in content space, which the recycler just moved.
		v.dragContent += a.major(applied)
	}
	v.OnValueChanged.Emit(v.Normalized())
	return d
}

// ScreenRect returns the viewport in y-down screen coordinates.
func (v *ScrollView) ScreenRect() Rect {
	return v.toScreen(v.viewport.WorldRect())
}

func (v *ScrollView) toScreen(r Rect) Rect {
	return Rect{X: r.X, Y: v.screenHeight - (r.Y + r.H), W: r.W, H: r.H}
}

// pointer returns the mouse position in world space on the scrolling axis.
func (v *ScrollView) pointer(input *InputState) float32 {
	return v.recycler.axis.major(Vec2{X: input.MouseX, Y: v.screenHeight - input.MouseY})
}

// Update applies one frame of input: wheel and drag while hovered, inertia
// after a drag, and keys while hovered or focused.
func (v *ScrollView) Update(input *InputState, dt float32) {
	if input == nil || v.recycler.State() != StateIdle {
		return
	}
	a := v.recycler.axis
	hover := v.ScreenRect().Contains(Vec2{X: input.MouseX, Y: input.MouseY})

	if hover {
		wheel := -input.MouseWheelY
		if a.orientation == Horizontal {
			wheel += input.MouseWheelX
		}
		if wheel != 0 {
			v.velocity = 0
			v.ScrollBy(wheel * v.wheelSpeed)
		}
		if input.MouseClicked(MouseButtonLeft) {
			v.dragging = true
			v.velocity = 0
			v.dragPointer = v.pointer(input)
			v.dragContent = a.major(v.content.AnchoredPosition)
		}
	}

	switch {
	case v.dragging && !input.MouseDown(MouseButtonLeft):
		v.dragging = false
	case v.dragging:
		target := v.dragContent + v.pointer(input) - v.dragPointer
		move := target - a.major(v.content.AnchoredPosition)
		scrolled := v.ScrollBy(-a.fwd * move)
		if dt > 0 {
			v.velocity = lerpf(v.velocity, scrolled/dt, minf(dt*10, 1))
		}
	case v.inertia && v.velocity != 0 && dt > 0:
		v.velocity *= float32(math.Pow(float64(v.deceleration), float64(dt)))
		if absf(v.velocity) < velocityEpsilon {
			v.velocity = 0
		} else if v.ScrollBy(v.velocity*dt) == 0 {
			v.velocity = 0
		}
	}

	if hover || v.Focused {
		v.handleKeys(input)
	}
}

func (v *ScrollView) handleKeys(input *InputState) {
	next, prev := KeyDown, KeyUp
	if v.recycler.Config().Orientation == Horizontal {
		next, prev = KeyRight, KeyLeft
	}
	line := v.recycler.LineExtent()
	page := v.ViewportExtent()

	switch {
	case input.KeyRepeated(next):
		v.ScrollBy(line)
	case input.KeyRepeated(prev):
		v.ScrollBy(-line)
	case input.KeyRepeated(KeyPageDown):
		v.ScrollBy(page)
	case input.KeyRepeated(KeyPageUp):
		v.ScrollBy(-page)
	case input.KeyPressed(KeyHome):
		v.StopMovement()
		v.SetScroll(0)
	case input.KeyPressed(KeyEnd):
		v.StopMovement()
		v.SetScroll(v.MaxOffset())
	case input.KeyPressed(KeyEscape):
		v.StopMovement()
	}
}
