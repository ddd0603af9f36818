package recycler

// Renderer is the interface for rendering draw data.
type Renderer interface {
	Render(dl *DrawList) error
	FontTextureID() uint32
	Resize(width, height int)
}

// Host drives scroll views frame by frame: it ticks the scheduler, feeds
// input to every view, draws them into a pooled DrawList and renders it.
type Host struct {
	renderer  Renderer
	style     Style
	scheduler *Scheduler
	views     []*ScrollView
	dl        *DrawList
	display   Vec2
}

// HostOption configures a Host instance.
type HostOption func(*Host)

// WithStyle sets the style used to draw every view.
func WithStyle(style Style) HostOption {
	return func(h *Host) { h.style = style }
}

// WithHostScheduler makes the host tick s at the start of every frame.
func WithHostScheduler(s *Scheduler) HostOption {
	return func(h *Host) { h.scheduler = s }
}

// NewHost creates a new Host.
func NewHost(renderer Renderer, opts ...HostOption) *Host {
	h := &Host{
		renderer: renderer,
		style:    DefaultStyle(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Add registers a view. Views are updated and drawn in the order added.
func (h *Host) Add(v *ScrollView) {
	h.views = append(h.views, v)
}

// Views returns the registered views.
func (h *Host) Views() []*ScrollView { return h.views }

// Scheduler returns the scheduler ticked by Begin, or nil.
func (h *Host) Scheduler() *Scheduler { return h.scheduler }

// Begin starts a new frame: ticks stepped initializations, then updates
// every view with this frame's input. It returns the frame's DrawList.
func (h *Host) Begin(input *InputState, displaySize Vec2, deltaTime float32) *DrawList {
	if h.scheduler != nil {
		h.scheduler.Tick()
	}
	h.display = displaySize

	h.dl = AcquireDrawList()
	h.dl.SetFontTexture(h.renderer.FontTextureID())

	for _, v := range h.views {
		v.SetScreenHeight(displaySize.Y)
		v.Update(input, deltaTime)
	}
	return h.dl
}

// End draws every view and renders the frame.
func (h *Host) End() error {
	if h.dl == nil {
		return nil
	}
	for _, v := range h.views {
		v.Draw(h.dl, &h.style, h.display.Y)
	}
	h.dl.Finalize()
	err := h.renderer.Render(h.dl)

	ReleaseDrawList(h.dl)
	h.dl = nil
	return err
}

// Style returns the current style.
func (h *Host) Style() Style {
	return h.style
}

// SetStyle sets the style.
func (h *Host) SetStyle(style Style) {
	h.style = style
}

// Resize notifies the renderer of a display size change.
func (h *Host) Resize(width, height int) {
	h.renderer.Resize(width, height)
}
