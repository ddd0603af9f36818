package recycler

// Clipper computes the range of items visible at a logical scroll offset.
// It works on lines so lists and grids share the math; a list is a grid
// with one slot per line.
//
// Usage:
//
//	c := recycler.NewClipper(itemCount, dimension, lineExtent, viewportExtent, offset)
//	for i := c.StartIdx; i < c.EndIdx; i++ {
//	    // item i intersects the viewport
//	}
type Clipper struct {
	StartIdx   int     // First visible item index (inclusive)
	EndIdx     int     // Last visible item index (exclusive)
	LineExtent float32 // Size of one line on the scrolling axis
	Dimension  int     // Items per line
	TotalItems int
}

// NewClipper calculates the visible item range.
func NewClipper(totalItems, dimension int, lineExtent, viewportExtent, offset float32) *Clipper {
	if dimension < 1 {
		dimension = 1
	}
	c := &Clipper{LineExtent: lineExtent, Dimension: dimension, TotalItems: totalItems}
	if totalItems <= 0 || lineExtent <= 0 {
		return c
	}

	startLine := max(int(offset/lineExtent), 0)
	endLine := int((offset + viewportExtent) / lineExtent)
	if float32(endLine)*lineExtent < offset+viewportExtent {
		endLine++
	}

	c.StartIdx = min(startLine*dimension, totalItems)
	c.EndIdx = min(max(endLine*dimension, c.StartIdx), totalItems)
	return c
}

// ShouldRender returns true if the item at the given index is visible.
func (c *Clipper) ShouldRender(idx int) bool {
	return idx >= c.StartIdx && idx < c.EndIdx
}

// VisibleCount returns the number of visible items.
func (c *Clipper) VisibleCount() int {
	return c.EndIdx - c.StartIdx
}

// ContentExtent returns the size of all lines (for scrollbar calculations).
func (c *Clipper) ContentExtent() float32 {
	return float32(LinesFor(c.TotalItems, c.Dimension)) * c.LineExtent
}

// MaxOffset returns the maximum valid scroll offset.
func (c *Clipper) MaxOffset(viewportExtent float32) float32 {
	return maxf(c.ContentExtent()-viewportExtent, 0)
}

// ScrollToItem returns the scroll offset needed to make an item visible.
// If the item is already visible, returns the current offset unchanged.
func (c *Clipper) ScrollToItem(idx int, current, viewportExtent float32) float32 {
	if idx < 0 || idx >= c.TotalItems {
		return current
	}

	itemNear := float32(idx/c.Dimension) * c.LineExtent
	itemFar := itemNear + c.LineExtent

	if itemNear < current {
		return itemNear
	}
	if itemFar > current+viewportExtent {
		return itemFar - viewportExtent
	}
	return current
}
