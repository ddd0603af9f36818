package recycler

// Slot is one physical cell in the ring and the data index it is bound to.
type Slot struct {
	PoolIndex int // fixed ring position
	Cell      Cell
	DataIndex int
}

// Step describes one slot moved by AdvanceForward or AdvanceBackward.
type Step struct {
	Slot      *Slot // the moved slot, already rebound to DataIndex
	Neighbour *Slot // slot it is placed after (forward) or before (backward)
	DataIndex int

	// Column is the moved slot's position inside its line (grid mode).
	Column int
	// NewLine is set when the moved slot opens a line past the window edge.
	NewLine bool
	// LineVacated is set when the move emptied the line on the opposite edge.
	LineVacated bool
}

// Window is the ring of slots bound to a contiguous run of data indices.
//
// Ring positions trail..lead (wrapping) hold data indices
// seen-N .. seen-1 in order. In grid mode the column counters track the
// line position of the trail and lead slots, always in [0, dimension).
//
// The ring is sized once per build and never reallocated while scrolling.
type Window struct {
	slots     []Slot
	lead      int
	trail     int
	seen      int
	dimension int
	leadCol   int
	trailCol  int
}

// Reset clears the ring and reserves room for capacity slots.
func (w *Window) Reset(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	if cap(w.slots) < capacity {
		w.slots = make([]Slot, 0, capacity)
	} else {
		clear(w.slots)
		w.slots = w.slots[:0]
	}
	w.lead, w.trail, w.seen = 0, 0, 0
	w.dimension = 1
	w.leadCol, w.trailCol = 0, 0
}

// Append adds a freshly built slot at the end of the ring. Only valid while
// building, before Finalize.
func (w *Window) Append(cell Cell, dataIndex int) *Slot {
	w.slots = append(w.slots, Slot{PoolIndex: len(w.slots), Cell: cell, DataIndex: dataIndex})
	return &w.slots[len(w.slots)-1]
}

// Finalize takes ownership of the appended slots, which must be bound to
// data indices 0..N-1 in order. The trail is slot 0, the lead slot N-1.
func (w *Window) Finalize(dimension int) {
	if dimension < 1 {
		dimension = 1
	}
	n := len(w.slots)
	w.dimension = dimension
	w.trail = 0
	w.lead = max(n-1, 0)
	w.seen = n
	w.trailCol = 0
	w.leadCol = 0
	if n > 0 {
		w.leadCol = (n - 1) % dimension
	}
}

// Len returns the pool size.
func (w *Window) Len() int { return len(w.slots) }

// Seen returns the total number of items seen: one past the lead's data index.
func (w *Window) Seen() int { return w.seen }

// First returns the data index bound to the trail slot.
func (w *Window) First() int { return w.seen - len(w.slots) }

// Lead returns the slot holding the highest data index.
func (w *Window) Lead() *Slot {
	if len(w.slots) == 0 {
		return nil
	}
	return &w.slots[w.lead]
}

// Trail returns the slot holding the lowest data index.
func (w *Window) Trail() *Slot {
	if len(w.slots) == 0 {
		return nil
	}
	return &w.slots[w.trail]
}

// LeadIndex and TrailIndex return ring positions.
func (w *Window) LeadIndex() int  { return w.lead }
func (w *Window) TrailIndex() int { return w.trail }

// LeadColumn returns the line position of the lead slot.
func (w *Window) LeadColumn() int { return w.leadCol }

// TrailColumn returns the line position of the trail slot.
func (w *Window) TrailColumn() int { return w.trailCol }

// Dimension returns the number of slots per line.
func (w *Window) Dimension() int { return w.dimension }

// Slot returns the slot at ring position i.
func (w *Window) Slot(i int) *Slot {
	if i < 0 || i >= len(w.slots) {
		return nil
	}
	return &w.slots[i]
}

// Each calls fn for every slot in ring order.
func (w *Window) Each(fn func(*Slot)) {
	for i := range w.slots {
		fn(&w.slots[i])
	}
}

// InOrder calls fn for every slot from trail to lead.
func (w *Window) InOrder(fn func(*Slot)) {
	n := len(w.slots)
	for i := 0; i < n; i++ {
		fn(&w.slots[(w.trail+i)%n])
	}
}

// DataIndexes returns the bound indices from trail to lead.
func (w *Window) DataIndexes() []int {
	out := make([]int, 0, len(w.slots))
	w.InOrder(func(s *Slot) { out = append(out, s.DataIndex) })
	return out
}

// AdvanceForward rebinds the trail slot to the next unseen item and makes it
// the new lead. It returns false, changing nothing, once seen reaches
// itemCount.
func (w *Window) AdvanceForward(itemCount int) (Step, bool) {
	n := len(w.slots)
	if n == 0 || w.seen >= itemCount {
		return Step{}, false
	}
	moved := w.trail
	step := Step{
		Slot:      &w.slots[moved],
		Neighbour: &w.slots[w.lead],
		DataIndex: w.seen,
	}

	w.leadCol++
	if w.leadCol >= w.dimension {
		w.leadCol = 0
		step.NewLine = true
	}
	w.trailCol++
	if w.trailCol >= w.dimension {
		w.trailCol = 0
		step.LineVacated = true
	}
	step.Column = w.leadCol

	step.Slot.DataIndex = w.seen
	w.lead = moved
	w.trail = (w.trail + 1) % n
	w.seen++
	return step, true
}

// AdvanceBackward rebinds the lead slot to the item just before the trail
// and makes it the new trail. It returns false, changing nothing, when the
// trail already holds data index 0.
func (w *Window) AdvanceBackward() (Step, bool) {
	n := len(w.slots)
	if n == 0 || w.seen <= n {
		return Step{}, false
	}
	w.seen--
	moved := w.lead
	step := Step{
		Slot:      &w.slots[moved],
		Neighbour: &w.slots[w.trail],
		DataIndex: w.seen - n,
	}

	w.trailCol--
	if w.trailCol < 0 {
		w.trailCol = w.dimension - 1
		step.NewLine = true
	}
	w.leadCol--
	if w.leadCol < 0 {
		w.leadCol = w.dimension - 1
		step.LineVacated = true
	}
	step.Column = w.trailCol

	step.Slot.DataIndex = step.DataIndex
	w.trail = moved
	w.lead = (w.lead - 1 + n) % n
	return step, true
}
