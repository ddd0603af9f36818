package recycler

import "strings"

// Cell is a reusable visual element. The data source configures it through
// this interface only; it never needs the concrete cell type.
type Cell interface {
	Transform() *Transform
	Configure(index int, fields ...string)
}

// DataSource supplies the item count and binds items to cells.
// BindCell is called with indices in [0, ItemCount()) and may be called
// again with the same pair.
type DataSource interface {
	ItemCount() int
	BindCell(cell Cell, index int)
}

// BasicCell is the default Cell: a transform plus the fields of the item it
// currently shows.
type BasicCell struct {
	transform *Transform
	index     int
	fields    []string
	binds     int
}

// NewBasicCell creates an unbound cell.
func NewBasicCell(name string) *BasicCell {
	return &BasicCell{
		transform: NewTransform(name, Vec2{}),
		index:     -1,
	}
}

// Transform implements Cell.
func (c *BasicCell) Transform() *Transform { return c.transform }

// Configure implements Cell.
func (c *BasicCell) Configure(index int, fields ...string) {
	c.index = index
	c.fields = append(c.fields[:0], fields...)
	c.binds++
}

// Index returns the bound data index, or -1.
func (c *BasicCell) Index() int { return c.index }

// Fields returns the bound fields.
func (c *BasicCell) Fields() []string { return c.fields }

// Binds returns how many times the cell has been configured.
func (c *BasicCell) Binds() int { return c.binds }

// Label joins the fields for display.
func (c *BasicCell) Label() string {
	return strings.Join(c.fields, "  ")
}

// Labeler is implemented by cells that can describe themselves in one line.
type Labeler interface {
	Label() string
}

// SliceSource is a DataSource backed by a slice.
//
//	type contact struct{ Name, Gender, ID string }
//	src := recycler.NewSliceSource(contacts, func(c contact) []string {
//	    return []string{c.Name, c.Gender, c.ID}
//	})
type SliceSource[T any] struct {
	items  []T
	fields func(T) []string
}

// NewSliceSource creates a data source over items.
func NewSliceSource[T any](items []T, fields func(T) []string) *SliceSource[T] {
	return &SliceSource[T]{items: items, fields: fields}
}

// ItemCount implements DataSource.
func (s *SliceSource[T]) ItemCount() int { return len(s.items) }

// BindCell implements DataSource. Indices outside the slice are ignored.
func (s *SliceSource[T]) BindCell(cell Cell, index int) {
	if cell == nil || index < 0 || index >= len(s.items) {
		return
	}
	cell.Configure(index, s.fields(s.items[index])...)
}

// Items returns the backing slice.
func (s *SliceSource[T]) Items() []T { return s.items }
