package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/go-theft-auto/recycler"
)

var tableStyles = map[string]table.Style{
	"light":   table.StyleLight,
	"rounded": table.StyleRounded,
	"ascii":   table.StyleDefault,
}

// printer writes simulation reports.
type printer struct {
	out   io.Writer
	style table.Style
	ok    *color.Color
	warn  *color.Color
	info  *color.Color
}

func newPrinter(out io.Writer, style string) *printer {
	st, found := tableStyles[style]
	if !found {
		st = table.StyleLight
	}
	return &printer{
		out:   out,
		style: st,
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		info:  color.New(color.FgCyan),
	}
}

func (p *printer) build(s *simulator) {
	cfg := s.r.Config()
	p.info.Fprintf(p.out, "%s %s, %s items, cell %v, pool %d",
		cfg.Orientation, layoutName(cfg), humanize.Comma(int64(s.r.ItemCount())),
		s.r.CellSize(), s.r.PoolSize())
	if s.sched != nil {
		fmt.Fprintf(p.out, ", built in %d ticks", s.ticks)
	}
	fmt.Fprintln(p.out)
}

func layoutName(cfg recycler.Config) string {
	if cfg.Mode == recycler.Grid {
		return fmt.Sprintf("grid/%d", cfg.Dimension)
	}
	return "list"
}

func (p *printer) step(n int, st step, moved float32, s *simulator) {
	c := p.ok
	if moved == 0 && st.kind != stepReload {
		c = p.warn
	}
	c.Fprintf(p.out, "step %d: %s", n, st.raw)
	fmt.Fprintf(p.out, " moved %.0f, offset %.0f/%.0f (%.0f%%)\n",
		moved, s.view.Offset(), s.view.MaxOffset(), s.view.Normalized()*100)
}

// ring prints the slots from trail to lead.
func (p *printer) ring(s *simulator) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(p.out)
	tbl.SetStyle(p.style)
	tbl.AppendHeader(table.Row{"Slot", "Data", "Line", "Col", "Position", "Binds"})

	dim := s.r.Config().Dimension
	s.r.Window().InOrder(func(sl *recycler.Slot) {
		pos := sl.Cell.Transform().AnchoredPosition
		binds := 0
		if c, ok := sl.Cell.(*recycler.BasicCell); ok {
			binds = c.Binds()
		}
		tbl.AppendRow(table.Row{
			sl.PoolIndex, sl.DataIndex, sl.DataIndex / dim, sl.DataIndex % dim,
			fmt.Sprintf("(%.0f, %.0f)", pos.X, pos.Y), binds,
		})
	})
	content := s.r.Content()
	tbl.AppendFooter(table.Row{
		"", fmt.Sprintf("first %d", s.r.First()), fmt.Sprintf("seen %d", s.r.Seen()), "",
		fmt.Sprintf("content (%.0f, %.0f)", content.AnchoredPosition.X, content.AnchoredPosition.Y),
		fmt.Sprintf("size %.0f", s.r.ContentExtent()),
	})
	tbl.Render()
}

func (p *printer) stats(st recycler.Stats) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(p.out)
	tbl.SetStyle(p.style)
	tbl.SetTitle("Counters")
	tbl.AppendRows([]table.Row{
		{"initializations", humanize.Comma(int64(st.Initializations))},
		{"scroll calls", humanize.Comma(int64(st.RecycleCalls))},
		{"recycled forward", humanize.Comma(int64(st.ForwardRecycled))},
		{"recycled backward", humanize.Comma(int64(st.BackwardRecycled))},
		{"growth lines", humanize.Comma(st.GrowthLines)},
		{"bounds violations", humanize.Comma(int64(st.BoundsViolations))},
	})
	tbl.Render()
	if st.BoundsViolations > 0 {
		p.warn.Fprintf(p.out, "%s bounds violations\n", humanize.Comma(int64(st.BoundsViolations)))
	}
}
