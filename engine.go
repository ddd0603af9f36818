package recycler

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// State is the lifecycle state of a Recycler.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateIdle
	// StateRecycling guards ProcessScroll against re-entrant calls.
	StateRecycling
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateIdle:
		return "idle"
	case StateRecycling:
		return "recycling"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats is a snapshot of recycler counters. It is safe to read from another
// goroutine (the metrics collector does).
type Stats struct {
	Initializations  uint64
	RecycleCalls     uint64 // accepted ProcessScroll calls with a scrolling delta
	ForwardRecycled  uint64 // cells moved past the lead
	BackwardRecycled uint64 // cells moved before the trail
	GrowthLines      int64  // net lines added to the content by grid wraps
	BoundsViolations uint64
	RejectedCalls    uint64 // re-entrant ProcessScroll calls

	PoolSize int
	First    int // data index bound to the trail slot
	Seen     int
}

type counters struct {
	inits      atomic.Uint64
	calls      atomic.Uint64
	forward    atomic.Uint64
	backward   atomic.Uint64
	growth     atomic.Int64
	violations atomic.Uint64
	rejected   atomic.Uint64

	poolSize atomic.Int64
	first    atomic.Int64
	seen     atomic.Int64
}

// Recycler binds a large indexed data set to a small ring of cells inside a
// scrolling content transform.
//
// The host moves the content and then reports the movement with
// ProcessScroll. Cells that left the recycling bounds are moved to the other
// end of the window and rebound to the next items; the whole window is then
// shifted back toward the content origin so content coordinates stay small.
// The returned offset tells the host how far the content was moved so it can
// correct drag origins.
//
// Usage:
//
//	r, err := recycler.New(recycler.NewBasicPool(), recycler.WithGrid(3))
//	if err != nil {
//	    return err
//	}
//	if err := r.Initialize(prototype, viewport, content, source); err != nil {
//	    return err
//	}
//	content.AnchoredPosition.Y += dy
//	applied := r.ProcessScroll(recycler.Vec2{Y: dy})
type Recycler struct {
	cfg       Config
	axis      axis
	pool      ElementPool
	logger    *slog.Logger
	scheduler *Scheduler

	state     State
	window    Window
	req       initRequest
	itemCount int
	cellSize  Vec2
	bounds    Bounds

	// build progress
	required float32
	coverage float32
	minPool  int

	task *initTask
	err  error

	counters counters

	// OnInitialized fires when a build finishes and the recycler is idle.
	OnInitialized Event[*Recycler]
	// OnFailed fires when a build fails with a configuration error.
	OnFailed Event[error]
}

// New creates a recycler that takes its cells from pool.
func New(pool ElementPool, opts ...Option) (*Recycler, error) {
	r := &Recycler{
		cfg:    DefaultConfig(),
		pool:   pool,
		logger: defaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if pool == nil {
		return nil, configError("pool", ErrMissingReference)
	}
	if r.logger == nil {
		r.logger = defaultLogger
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	r.axis = axisFor(r.cfg.Orientation)
	return r, nil
}

// Initialize builds the cell ring for source.
//
// Missing collaborators are reported immediately. Without a scheduler the
// whole build runs inside this call; with one, the build advances one step
// per Scheduler.Tick and completion is signalled by OnInitialized. A build
// already in flight is aborted and its cells returned to the pool.
func (r *Recycler) Initialize(prototype, viewport, content *Transform, source DataSource) error {
	if r.task != nil {
		r.logger.Debug("aborting running initialization", "step", r.task.step)
		r.task.Abort()
		r.task = nil
	}
	req := initRequest{prototype: prototype, viewport: viewport, content: content, source: source}
	if err := req.validate(); err != nil {
		r.err = err
		r.logger.Error("initialize", "err", err)
		return err
	}

	t := &initTask{r: r, req: req}
	r.task = t
	r.err = nil
	r.state = StateInitializing

	if r.scheduler == nil {
		if t.runToCompletion() == TaskFailed {
			return t.err
		}
		return nil
	}
	r.scheduler.Schedule(t)
	return nil
}

// ReloadData rebuilds the ring for a new data source, keeping the
// prototype, viewport and content of the last Initialize.
func (r *Recycler) ReloadData(source DataSource) error {
	if r.req.content == nil {
		return ErrNotInitialized
	}
	return r.Initialize(r.req.prototype, r.req.viewport, r.req.content, source)
}

// Reset aborts any build and returns every cell to the pool.
func (r *Recycler) Reset() {
	if r.task != nil {
		r.task.Abort()
		r.task = nil
	}
	r.releaseCells()
	r.state = StateUninitialized
	r.publish()
}

// ProcessScroll recycles cells after the content moved by delta and returns
// the offset it applied to the content. It returns the zero vector when no
// cell crossed the bounds, when the pool is empty, and when called while
// already recycling.
func (r *Recycler) ProcessScroll(delta Vec2) Vec2 {
	if r.state == StateRecycling {
		r.counters.rejected.Add(1)
		return Vec2{}
	}
	if r.state != StateIdle || r.window.Len() == 0 {
		return Vec2{}
	}
	d := r.axis.project(delta)
	if d == 0 {
		return Vec2{}
	}

	r.state = StateRecycling
	defer func() { r.state = StateIdle }()
	r.counters.calls.Add(1)

	r.bounds = r.computeBounds()
	near, far := r.bounds.span(r.axis)

	var offset Vec2
	switch {
	case d < 0:
		if leadNear, _ := r.cellSpan(r.window.Lead()); leadNear < far {
			offset = r.recycleForward(near)
		}
	case d > 0:
		if _, trailFar := r.cellSpan(r.window.Trail()); trailFar > near {
			offset = r.recycleBackward(far)
		}
	}
	r.publish()
	return offset
}

// recycleForward moves trail cells that are fully before the bounds to the
// end of the window.
func (r *Recycler) recycleForward(boundsNear float32) Vec2 {
	var moved, newLines, vacated int
	for {
		if _, trailFar := r.cellSpan(r.window.Trail()); trailFar >= boundsNear {
			break
		}
		step, ok := r.window.AdvanceForward(r.itemCount)
		if !ok {
			break
		}
		moved++
		if step.NewLine {
			newLines++
		}
		if step.LineVacated {
			vacated++
		}
		r.place(step, 1)
		if !r.rebind(step) {
			break
		}
	}
	if moved == 0 {
		return Vec2{}
	}
	r.counters.forward.Add(uint64(moved))
	if verbose() {
		r.logger.Debug("recycled forward", "cells", moved, "first", r.window.First(), "seen", r.window.Seen())
	}
	return r.shift(newLines-vacated, vacated, 1)
}

// recycleBackward moves lead cells that are fully past the bounds to the
// start of the window.
func (r *Recycler) recycleBackward(boundsFar float32) Vec2 {
	var moved, newLines, vacated int
	for {
		if leadNear, _ := r.cellSpan(r.window.Lead()); leadNear <= boundsFar {
			break
		}
		step, ok := r.window.AdvanceBackward()
		if !ok {
			break
		}
		moved++
		if step.NewLine {
			newLines++
		}
		if step.LineVacated {
			vacated++
		}
		r.place(step, -1)
		if !r.rebind(step) {
			break
		}
	}
	if moved == 0 {
		return Vec2{}
	}
	r.counters.backward.Add(uint64(moved))
	if verbose() {
		r.logger.Debug("recycled backward", "cells", moved, "first", r.window.First(), "seen", r.window.Seen())
	}
	return r.shift(newLines-vacated, newLines, -1)
}

// place positions a moved slot next to its neighbour. dir is +1 when the
// slot goes after the lead and -1 when it goes before the trail.
func (r *Recycler) place(step Step, dir float32) {
	nb := step.Neighbour.Cell.Transform().AnchoredPosition
	t := step.Slot.Cell.Transform()
	major := r.axis.major(nb)
	if r.cfg.Mode == List || step.NewLine {
		major += dir * r.axis.fwd * r.LineExtent()
	}
	if r.cfg.Mode == List {
		t.AnchoredPosition = r.axis.withMajor(nb, major)
		return
	}
	cross := crossPosition(step.Column, r.cellSize, r.cfg.Orientation)
	if r.cfg.Orientation == Horizontal {
		t.AnchoredPosition = Vec2{X: major, Y: cross}
	} else {
		t.AnchoredPosition = Vec2{X: cross, Y: major}
	}
}

// shift applies the content size change of additional lines and moves the
// window n lines back toward the content origin. dir is +1 after forward
// recycling and -1 after backward recycling.
func (r *Recycler) shift(additional, n int, dir float32) Vec2 {
	ext := r.LineExtent()
	content := r.req.content
	if additional != 0 {
		size := r.axis.major(content.SizeDelta) + float32(additional)*ext
		content.SizeDelta = r.axis.withMajor(content.SizeDelta, size)
		r.counters.growth.Add(int64(additional))
	}
	if n == 0 {
		return Vec2{}
	}
	amount := dir * r.axis.fwd * float32(n) * ext
	r.window.Each(func(s *Slot) {
		t := s.Cell.Transform()
		t.AnchoredPosition = r.axis.withMajor(t.AnchoredPosition, r.axis.major(t.AnchoredPosition)-amount)
	})
	content.AnchoredPosition = r.axis.withMajor(content.AnchoredPosition, r.axis.major(content.AnchoredPosition)+amount)
	return r.axis.along(amount)
}

// rebind binds a moved slot to its new data index.
func (r *Recycler) rebind(step Step) bool {
	if v := checkIndex("pool", step.Slot.PoolIndex, r.window.Len()); v != nil {
		r.violation(v)
		return false
	}
	return r.bind(step.Slot.Cell, step.DataIndex)
}

// bind checks idx against the live item count before calling the source.
func (r *Recycler) bind(cell Cell, idx int) bool {
	if v := checkIndex("data", idx, r.req.source.ItemCount()); v != nil {
		r.violation(v)
		return false
	}
	r.req.source.BindCell(cell, idx)
	return true
}

func (r *Recycler) violation(v *IndexBoundsViolation) {
	r.counters.violations.Add(1)
	r.logger.Warn("skipping bind", "err", v)
}

func (r *Recycler) cellSpan(s *Slot) (near, far float32) {
	return r.axis.span(s.Cell.Transform().WorldRect())
}

func (r *Recycler) computeBounds() Bounds {
	return ComputeBounds(r.req.viewport.WorldCorners(), r.cfg.RecyclingThreshold, r.cfg.Orientation)
}

func (r *Recycler) releaseCells() {
	r.window.Each(func(s *Slot) {
		if s.Cell != nil {
			r.pool.Release(s.Cell)
		}
	})
	r.window.Reset(0)
}

func (r *Recycler) publish() {
	r.counters.poolSize.Store(int64(r.window.Len()))
	r.counters.first.Store(int64(r.window.First()))
	r.counters.seen.Store(int64(r.window.Seen()))
}

// State returns the lifecycle state.
func (r *Recycler) State() State { return r.state }

// Config returns the validated configuration.
func (r *Recycler) Config() Config { return r.cfg }

// Err returns the error of the last failed build, if any.
func (r *Recycler) Err() error { return r.err }

// PoolSize returns the number of slots in the ring.
func (r *Recycler) PoolSize() int { return r.window.Len() }

// ItemCount returns the item count captured by the last build.
func (r *Recycler) ItemCount() int { return r.itemCount }

// Seen returns one past the highest bound data index.
func (r *Recycler) Seen() int { return r.window.Seen() }

// First returns the lowest bound data index.
func (r *Recycler) First() int { return r.window.First() }

// DataIndexes returns the bound data indices from trail to lead.
func (r *Recycler) DataIndexes() []int { return r.window.DataIndexes() }

// Window exposes the ring for inspection. Callers must not advance it.
func (r *Recycler) Window() *Window { return &r.window }

// CellSize returns the computed cell size.
func (r *Recycler) CellSize() Vec2 { return r.cellSize }

// LineExtent returns the size of one line on the scrolling axis.
func (r *Recycler) LineExtent() float32 { return r.axis.major(r.cellSize) }

// Bounds returns the recycling bounds computed by the last call.
func (r *Recycler) Bounds() Bounds { return r.bounds }

// Content returns the content transform of the last build.
func (r *Recycler) Content() *Transform { return r.req.content }

// Viewport returns the viewport transform of the last build.
func (r *Recycler) Viewport() *Transform { return r.req.viewport }

// Source returns the data source of the last build.
func (r *Recycler) Source() DataSource { return r.req.source }

// ScrollOffset returns the logical scroll distance from the first item:
// the lines the window has moved past plus the content displacement.
func (r *Recycler) ScrollOffset() float32 {
	if r.req.content == nil || r.state == StateUninitialized {
		return 0
	}
	lines := r.window.First() / r.window.Dimension()
	return float32(lines)*r.LineExtent() - r.axis.fwd*r.axis.major(r.req.content.AnchoredPosition)
}

// ContentExtent returns the logical size of all items on the scrolling axis.
func (r *Recycler) ContentExtent() float32 {
	return float32(LinesFor(r.itemCount, r.cfg.Dimension)) * r.LineExtent()
}

// Stats returns a snapshot of the counters.
func (r *Recycler) Stats() Stats {
	c := &r.counters
	return Stats{
		Initializations:  c.inits.Load(),
		RecycleCalls:     c.calls.Load(),
		ForwardRecycled:  c.forward.Load(),
		BackwardRecycled: c.backward.Load(),
		GrowthLines:      c.growth.Load(),
		BoundsViolations: c.violations.Load(),
		RejectedCalls:    c.rejected.Load(),
		PoolSize:         int(c.poolSize.Load()),
		First:            int(c.first.Load()),
		Seen:             int(c.seen.Load()),
	}
}

// --- build steps ---

func (q initRequest) validate() error {
	switch {
	case q.prototype == nil:
		return configError("prototype", ErrMissingReference)
	case q.viewport == nil:
		return configError("viewport", ErrMissingReference)
	case q.content == nil:
		return configError("content", ErrMissingReference)
	case q.source == nil:
		return configError("source", ErrMissingReference)
	}
	return nil
}

// runStep executes one build step and returns the next one.
func (r *Recycler) runStep(step initStep, req initRequest) (initStep, error) {
	if verbose() {
		r.logger.Debug("init step", "step", step, "cells", r.window.Len())
	}
	switch step {
	case stepResetCells:
		r.releaseCells()
		return stepResetBindings, nil
	case stepResetBindings:
		r.req = req
		r.itemCount = max(req.source.ItemCount(), 0)
		r.bounds = Bounds{}
		r.coverage = 0
		r.publish()
		return stepPrepareLayout, nil
	case stepPrepareLayout:
		if err := r.prepareLayout(); err != nil {
			return stepDone, err
		}
		return stepCreateCells, nil
	case stepCreateCells:
		if r.needsCell() {
			if err := r.createCell(); err != nil {
				return stepDone, err
			}
		}
		if r.needsCell() {
			return stepCreateCells, nil
		}
		return stepFinalize, nil
	case stepFinalize:
		r.finalize()
		return stepDone, nil
	}
	return stepDone, nil
}

// prepareLayout hides and anchors the prototype, anchors the content and
// derives the cell size and the pool targets.
func (r *Recycler) prepareLayout() error {
	o, m := r.cfg.Orientation, r.cfg.Mode
	proto, content, viewport := r.req.prototype, r.req.content, r.req.viewport

	proto.SetActive(false)
	cellAnchor := CellAnchor(o, m)
	proto.SetAnchor(cellAnchor, cellAnchor)

	contentAnchor := ContentAnchor(o, m)
	content.SetAnchor(contentAnchor, contentAnchor)
	content.AnchoredPosition = Vec2{}

	extent := r.axis.minor(content.Size())
	if extent <= 0 {
		extent = r.axis.minor(viewport.Size())
	}
	size, err := CellSize(proto.Size(), extent, r.cfg.Dimension, o)
	if err != nil {
		return err
	}
	if r.axis.major(size) <= 0 {
		return configError("prototype", fmt.Errorf("zero size on the scrolling axis: %w", ErrInvalidLayout))
	}
	r.cellSize = size
	r.bounds = r.computeBounds()
	r.required = r.cfg.MinPoolCoverage * r.axis.major(viewport.Size())
	r.minPool = min(r.cfg.MinPoolSize, r.itemCount)
	r.window.Reset(r.estimatePoolSize())
	return nil
}

// estimatePoolSize sizes the ring before any cell exists.
func (r *Recycler) estimatePoolSize() int {
	ext := r.LineExtent()
	lines := int(r.required / ext)
	if float32(lines)*ext < r.required {
		lines++
	}
	return min(max(r.minPool, lines*r.cfg.Dimension), r.itemCount)
}

// needsCell reports whether the ring is below its size or coverage target.
// Running out of data ends the build with a smaller pool.
func (r *Recycler) needsCell() bool {
	n := r.window.Len()
	return n < r.itemCount && (n < r.minPool || r.coverage < r.required)
}

// createCell acquires, places and binds the next cell.
func (r *Recycler) createCell() error {
	i := r.window.Len()
	cell, err := r.pool.Acquire()
	if err != nil {
		return fmt.Errorf("acquire cell %d: %w", i, err)
	}
	t := cell.Transform()
	if t == nil {
		return configError("pool", fmt.Errorf("cell %d has no transform: %w", i, ErrMissingReference))
	}
	d := r.cfg.Dimension
	anchor := CellAnchor(r.cfg.Orientation, r.cfg.Mode)
	t.SetParent(r.req.content)
	t.SetAnchor(anchor, anchor)
	t.SizeDelta = r.cellSize
	t.AnchoredPosition = PositionFor(i, i/d, i%d, r.cellSize, r.cfg.Orientation, r.cfg.Mode)
	t.SetActive(true)

	r.window.Append(cell, i)
	r.bind(cell, i)
	if r.cfg.Mode == List || (i+1)%d == 0 {
		r.coverage += r.LineExtent()
	}
	return nil
}

// finalize sizes the content to the lines built and hands over to ProcessScroll.
func (r *Recycler) finalize() {
	n := r.window.Len()
	r.window.Finalize(r.cfg.Dimension)

	content := r.req.content
	lines := LinesFor(n, r.cfg.Dimension)
	content.SizeDelta = r.axis.withMajor(content.SizeDelta, float32(lines)*r.LineExtent())
	anchor := ContentAnchor(r.cfg.Orientation, r.cfg.Mode)
	content.SetAnchor(anchor, anchor)
	content.AnchoredPosition = Vec2{}
	r.publish()
}

func (r *Recycler) finishInit(t *initTask) {
	if r.task == t {
		r.task = nil
	}
	r.state = StateIdle
	r.counters.inits.Add(1)
	r.logger.Debug("initialized",
		"pool", r.window.Len(),
		"items", r.itemCount,
		"cell", r.cellSize,
		"mode", r.cfg.Mode,
		"orientation", r.cfg.Orientation)
	r.OnInitialized.Emit(r)
}

func (r *Recycler) failInit(t *initTask, err error) {
	if r.task == t {
		r.task = nil
	}
	r.releaseCells()
	r.state = StateUninitialized
	r.err = err
	r.publish()
	r.logger.Error("initialization failed", "err", err)
	r.OnFailed.Emit(err)
}
