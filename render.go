package recycler

import (
	"fmt"
	"strings"
)

// binder is implemented by cells that count their binds.
type binder interface {
	Binds() int
}

// Draw appends the view to dl: background, the active cells clipped to the
// viewport, the border and a scrollbar when the content overflows.
// screenHeight converts the y-up world to y-down screen coordinates.
func (v *ScrollView) Draw(dl *DrawList, style *Style, screenHeight float32) {
	v.screenHeight = screenHeight
	vp := v.ScreenRect()

	dl.AddRect(vp.X, vp.Y, vp.W, vp.H, style.BackgroundColor)
	dl.PushClipRect(vp.X, vp.Y, vp.X+vp.W, vp.Y+vp.H)
	v.recycler.Window().InOrder(func(s *Slot) {
		t := s.Cell.Transform()
		if !t.Active() {
			return
		}
		r := v.toScreen(t.WorldRect())
		if !r.Intersects(vp) {
			return
		}
		fill := style.CellColor
		if s.DataIndex%2 == 1 {
			fill = style.CellAltColor
		}
		dl.AddRect(r.X, r.Y, r.W, r.H, fill)
		dl.AddRectOutline(r.X, r.Y, r.W, r.H, style.CellBorderColor, style.BorderSize)

		pad := style.CellPadding
		label := TruncateText(cellLabel(s, style), r.W-2*pad, style.FontScale, style.CharWidth)
		dl.AddText(r.X+pad, r.Y+pad, label, style.TextColor, style.FontScale, style.CharWidth, style.CharHeight)
	})
	dl.PopClipRect()

	dl.AddRectOutline(vp.X, vp.Y, vp.W, vp.H, style.BorderColor, style.BorderSize)
	v.drawScrollbar(dl, style, vp)
}

func cellLabel(s *Slot, style *Style) string {
	var b strings.Builder
	if style.ShowCellIndex {
		fmt.Fprintf(&b, "#%d ", s.DataIndex)
	}
	if l, ok := s.Cell.(Labeler); ok {
		b.WriteString(l.Label())
	}
	if style.ShowRecycleCount {
		if c, ok := s.Cell.(binder); ok {
			fmt.Fprintf(&b, " x%d", c.Binds())
		}
	}
	return b.String()
}

func (v *ScrollView) drawScrollbar(dl *DrawList, style *Style, vp Rect) {
	total := v.recycler.ContentExtent()
	extent := v.ViewportExtent()
	if total <= extent || total <= 0 {
		return
	}
	size := style.ScrollbarSize
	pos := v.Normalized()

	if v.recycler.Config().Orientation == Horizontal {
		track := Rect{X: vp.X, Y: vp.Y + vp.H - size, W: vp.W, H: size}
		grab := maxf(track.W*extent/total, style.ScrollbarMinGrab)
		dl.AddRect(track.X, track.Y, track.W, track.H, style.ScrollbarBgColor)
		dl.AddLine(track.X, track.Y, track.X+track.W, track.Y, style.BorderColor, style.BorderSize)
		dl.AddRect(track.X+(track.W-grab)*pos, track.Y, grab, track.H, style.ScrollbarGrabColor)
		return
	}
	track := Rect{X: vp.X + vp.W - size, Y: vp.Y, W: size, H: vp.H}
	grab := maxf(track.H*extent/total, style.ScrollbarMinGrab)
	dl.AddRect(track.X, track.Y, track.W, track.H, style.ScrollbarBgColor)
	dl.AddLine(track.X, track.Y, track.X, track.Y+track.H, style.BorderColor, style.BorderSize)
	dl.AddRect(track.X, track.Y+(track.H-grab)*pos, track.W, grab, style.ScrollbarGrabColor)
}
