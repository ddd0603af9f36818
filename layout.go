package recycler

import "fmt"

// Orientation is the scrolling axis.
type Orientation int

const (
	// Vertical lists grow downward; grids wrap into columns.
	Vertical Orientation = iota
	// Horizontal lists grow rightward; grids wrap into rows.
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation accepts "vertical"/"v" and "horizontal"/"h".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown orientation %q: %w", s, ErrInvalidLayout)
}

// UnmarshalText lets config loaders decode orientation names.
func (o *Orientation) UnmarshalText(text []byte) error {
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// LayoutMode selects single-line lists or wrapping grids.
type LayoutMode int

const (
	List LayoutMode = iota
	Grid
)

func (m LayoutMode) String() string {
	if m == Grid {
		return "grid"
	}
	return "list"
}

// ParseLayoutMode accepts "list" and "grid".
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch s {
	case "list":
		return List, nil
	case "grid":
		return Grid, nil
	}
	return List, fmt.Errorf("unknown layout mode %q: %w", s, ErrInvalidLayout)
}

// UnmarshalText lets config loaders decode mode names.
func (m *LayoutMode) UnmarshalText(text []byte) error {
	v, err := ParseLayoutMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// axis projects vectors onto the scrolling axis.
//
// fwd is the sign, in anchored space, of the direction further items are
// laid out in: -1 for vertical (rows grow downward in a y-up space), +1 for
// horizontal. Projecting with fwd gives a coordinate that increases toward
// later items for both orientations.
type axis struct {
	orientation Orientation
	fwd         float32
}

func axisFor(o Orientation) axis {
	if o == Horizontal {
		return axis{orientation: o, fwd: 1}
	}
	return axis{orientation: o, fwd: -1}
}

// major returns the component along the scrolling axis.
func (a axis) major(v Vec2) float32 {
	if a.orientation == Horizontal {
		return v.X
	}
	return v.Y
}

// minor returns the component across the scrolling axis.
func (a axis) minor(v Vec2) float32 {
	if a.orientation == Horizontal {
		return v.Y
	}
	return v.X
}

// withMajor returns v with its scrolling component replaced.
func (a axis) withMajor(v Vec2, m float32) Vec2 {
	if a.orientation == Horizontal {
		v.X = m
	} else {
		v.Y = m
	}
	return v
}

// along returns a vector of length m on the scrolling axis.
func (a axis) along(m float32) Vec2 {
	return a.withMajor(Vec2{}, m)
}

// project maps a world coordinate onto the forward axis.
func (a axis) project(v Vec2) float32 {
	return a.major(v) * a.fwd
}

// span returns the near and far edges of r on the forward axis.
func (a axis) span(r Rect) (near, far float32) {
	p0 := a.project(r.Min())
	p1 := a.project(r.Max())
	if p0 > p1 {
		p0, p1 = p1, p0
	}
	return p0, p1
}

// CellSize derives the cell size from the prototype's aspect ratio.
//
// The cross-axis size is containerExtent/dimension and the scrolling-axis
// size keeps the prototype's ratio. For vertical orientation containerExtent
// is the container width; for horizontal it is the container height.
func CellSize(prototype Vec2, containerExtent float32, dimension int, o Orientation) (Vec2, error) {
	if dimension < 1 {
		return Vec2{}, configError("dimension", fmt.Errorf("%d < 1: %w", dimension, ErrInvalidLayout))
	}
	a := axisFor(o)
	protoMinor := a.minor(prototype)
	if protoMinor <= 0 {
		return Vec2{}, configError("prototype", fmt.Errorf("cross-axis size %v must be positive: %w", protoMinor, ErrInvalidLayout))
	}
	secondary := maxf(containerExtent, 0) / float32(dimension)
	primary := secondary * a.major(prototype) / protoMinor
	if o == Horizontal {
		return Vec2{X: primary, Y: secondary}, nil
	}
	return Vec2{X: secondary, Y: primary}, nil
}

// PositionFor returns the anchored position of a cell.
//
// In list mode seq is the slot's sequence number and cells follow each other
// along the scrolling axis. In grid mode line is the row (vertical) or column
// (horizontal) and column is the position inside that line.
//
//	list vertical:    (0, -seq*h)
//	list horizontal:  (seq*w, 0)
//	grid vertical:    (column*w, -line*h)
//	grid horizontal:  (line*w, -column*h)
func PositionFor(seq, line, column int, cell Vec2, o Orientation, m LayoutMode) Vec2 {
	if m == List {
		if o == Horizontal {
			return Vec2{X: float32(seq) * cell.X}
		}
		return Vec2{Y: -float32(seq) * cell.Y}
	}
	if o == Horizontal {
		return Vec2{X: float32(line) * cell.X, Y: -float32(column) * cell.Y}
	}
	return Vec2{X: float32(column) * cell.X, Y: -float32(line) * cell.Y}
}

// crossPosition returns the cross-axis anchored coordinate of a grid column.
func crossPosition(column int, cell Vec2, o Orientation) float32 {
	if o == Horizontal {
		return -float32(column) * cell.Y
	}
	return float32(column) * cell.X
}

// CellAnchor returns the anchor/pivot preset for cells.
func CellAnchor(o Orientation, m LayoutMode) Vec2 {
	switch {
	case m == Grid:
		return AnchorTopLeft
	case o == Horizontal:
		return AnchorLeft
	default:
		return AnchorTop
	}
}

// ContentAnchor returns the anchor/pivot preset for the container.
func ContentAnchor(o Orientation, m LayoutMode) Vec2 {
	if o == Horizontal {
		if m == Grid {
			return AnchorTopLeft
		}
		return AnchorLeft
	}
	return AnchorTop
}

// LinesFor returns the number of lines count cells occupy.
func LinesFor(count, dimension int) int {
	if count <= 0 || dimension <= 0 {
		return 0
	}
	return (count + dimension - 1) / dimension
}
