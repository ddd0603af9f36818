/*
Package recycler implements a recycling scroll view: a list or grid over an
arbitrary number of items that keeps only enough cells alive to cover the
viewport, rebinding them to new items as they scroll out of view.

# Overview

A Recycler owns a fixed ring of cells taken from an ElementPool. When the
content moves, cells that left the viewport on one side are moved to the
other side and bound to the next data index through the DataSource. The
content rectangle stays as tall (or wide) as the pooled cells need; the
scroll offset exposed to the outside is computed from the first bound
index, so a scroll bar behaves as if every item existed.

A ScrollView wraps a Recycler with the behavior of a scroll rectangle:
wheel, drag with inertia, keyboard paging, clamping, normalized position and
drawing through a DrawList. A Host drives any number of views each frame and
hands the draw data to a Renderer.

# Quick Start

	pool := recycler.NewBasicPool()
	r, err := recycler.New(pool, recycler.WithGrid(3), recycler.WithMinPoolCoverage(1.5))
	if err != nil {
	    return err
	}

	viewport := recycler.NewTransform("viewport", recycler.Vec2{X: 720, Y: 600})
	prototype := recycler.NewTransform("cell", recycler.Vec2{X: 240, Y: 56})
	view := recycler.NewScrollView("contacts", viewport, prototype, r)

	source := recycler.NewSliceSource(contacts, func(c Contact) []string {
	    return []string{c.Name, c.Phone}
	})
	if err := view.Initialize(source); err != nil {
	    return err
	}

	host := recycler.NewHost(renderer)
	host.Add(view)

	for !window.ShouldClose() {
	    host.Begin(input, recycler.Vec2{X: 1280, Y: 720}, dt)
	    _ = host.End()
	    window.SwapBuffers()
	}

# Layout

Orientation selects the scrolling axis. Vertical views fill from the top,
horizontal views from the left. In Grid mode each line holds Dimension
cells (at least MinGridDimension) laid out across the other axis; a line
that is only partly filled at the end of the data shows the remaining
cells only.

The pool holds enough lines to cover MinPoolCoverage viewports and never
fewer than MinPoolSize cells. RecyclingThreshold widens the recycling
bounds by a fraction of the viewport so cells are moved slightly before
they become visible.

# Stepped Initialization

Without a Scheduler, Initialize builds the whole pool before returning.
With WithScheduler the build runs as a Task, one step per Scheduler.Tick:
prepare the layout, create one cell per tick, then finalize. While a build
runs, ProcessScroll calls are rejected and counted. ScrollView.Initialize
queues a new source behind a running build; ReloadData aborts it.

	sched := recycler.NewScheduler()
	r, _ := recycler.New(pool, recycler.WithScheduler(sched))
	r.OnInitialized.Subscribe(func(r *recycler.Recycler) {
	    log.Println("ready with", r.PoolSize(), "cells")
	})

# Keyboard Reference

Keys reach a ScrollView while the mouse hovers it or while Focused is set.
Horizontal views use Left and Right in place of Up and Down.

	Down / Right     Scroll one line forward
	Up / Left        Scroll one line back
	Page Down        Scroll one viewport forward
	Page Up          Scroll one viewport back
	Home             Jump to the first item
	End              Jump to the last item
	Escape           Stop inertia

Line and page keys repeat after KeyRepeatDelay while held.

# Logging

Diagnostics go through log/slog. Set RECYCLER_DEBUG=1 or call
SetVerbose(true) for per-recycle debug records, SetLogger to replace the
default stderr handler and WithLogger for a single recycler.
*/
package recycler
