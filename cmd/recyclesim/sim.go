package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-theft-auto/recycler"
)

// simulator is a headless scroll view over numbered items.
type simulator struct {
	cfg   simConfig
	sched *recycler.Scheduler
	r     *recycler.Recycler
	view  *recycler.ScrollView
	pool  *recycler.Pool
	ticks int // scheduler ticks spent building
}

func itemFields(i int) []string {
	return []string{"item " + strconv.Itoa(i)}
}

func numbered(n int) *recycler.SliceSource[int] {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return recycler.NewSliceSource(items, itemFields)
}

func newSimulator(cfg simConfig, logger *slog.Logger) (*simulator, error) {
	vpSize, err := parseSize(cfg.Viewport)
	if err != nil {
		return nil, fmt.Errorf("viewport: %w", err)
	}
	cellSize, err := parseSize(cfg.Cell)
	if err != nil {
		return nil, fmt.Errorf("cell: %w", err)
	}

	s := &simulator{cfg: cfg, pool: recycler.NewBasicPool()}
	opts := []recycler.Option{recycler.WithConfig(cfg.Recycler)}
	if logger != nil {
		opts = append(opts, recycler.WithLogger(logger))
	}
	if cfg.Stepped {
		s.sched = recycler.NewScheduler()
		opts = append(opts, recycler.WithScheduler(s.sched))
	}
	s.r, err = recycler.New(s.pool, opts...)
	if err != nil {
		return nil, err
	}
	viewport := recycler.NewTransform("viewport", vpSize)
	s.view = recycler.NewScrollView("sim", viewport, recycler.NewTransform("prototype", cellSize), s.r)
	if err := s.load(cfg.Items); err != nil {
		return nil, err
	}
	return s, nil
}

// load builds the view for n items, ticking the scheduler to completion in
// stepped mode.
func (s *simulator) load(n int) error {
	if err := s.view.ReloadData(numbered(n)); err != nil {
		return err
	}
	if s.sched != nil {
		s.ticks = s.sched.RunUntilIdle(1 << 20)
	}
	if err := s.r.Err(); err != nil {
		return err
	}
	if s.r.State() != recycler.StateIdle {
		return fmt.Errorf("build did not finish: %v", s.r.State())
	}
	return nil
}

// stepKind enumerates scripted actions.
type stepKind int

const (
	stepScroll stepKind = iota // scroll by a signed distance
	stepSet                    // scroll to an absolute offset
	stepHome
	stepEnd
	stepPage // scroll by value pages
	stepItem // make an item visible
	stepReload
)

type step struct {
	kind  stepKind
	value float32
	raw   string
}

// parseStep accepts "+190", "-50", "set=300", "home", "end", "page",
// "-page", "item=42" and "reload=100".
func parseStep(raw string) (step, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	st := step{raw: raw}
	switch s {
	case "home":
		st.kind = stepHome
		return st, nil
	case "end":
		st.kind = stepEnd
		return st, nil
	case "page", "+page":
		st.kind, st.value = stepPage, 1
		return st, nil
	case "-page":
		st.kind, st.value = stepPage, -1
		return st, nil
	}
	if key, val, ok := strings.Cut(s, "="); ok {
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return st, fmt.Errorf("step %q: want a non-negative integer", raw)
		}
		st.value = float32(n)
		switch key {
		case "set":
			st.kind = stepSet
		case "item":
			st.kind = stepItem
		case "reload":
			st.kind = stepReload
		default:
			return st, fmt.Errorf("step %q: unknown action %q", raw, key)
		}
		return st, nil
	}
	d, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return st, fmt.Errorf("step %q: not a distance or action", raw)
	}
	st.kind, st.value = stepScroll, float32(d)
	return st, nil
}

// apply performs one step and returns the distance scrolled.
func (s *simulator) apply(st step) (float32, error) {
	before := s.view.Offset()
	switch st.kind {
	case stepScroll:
		s.view.ScrollBy(st.value)
	case stepSet:
		s.view.SetScroll(st.value)
	case stepHome:
		s.view.SetScroll(0)
	case stepEnd:
		s.view.SetScroll(s.view.MaxOffset())
	case stepPage:
		s.view.ScrollBy(st.value * s.view.ViewportExtent())
	case stepItem:
		s.view.ScrollToItem(int(st.value))
	case stepReload:
		if err := s.load(int(st.value)); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return s.view.Offset() - before, nil
}

// run applies every step, reporting the ring after the build and after
// each step.
func (s *simulator) run(steps []string, out io.Writer) error {
	parsed := make([]step, 0, len(steps))
	for _, raw := range steps {
		st, err := parseStep(raw)
		if err != nil {
			return err
		}
		parsed = append(parsed, st)
	}

	p := newPrinter(out, s.cfg.TableStyle)
	p.build(s)
	p.ring(s)
	for i, st := range parsed {
		moved, err := s.apply(st)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		p.step(i+1, st, moved, s)
		p.ring(s)
	}
	p.stats(s.r.Stats())
	return nil
}
