package recycler_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/recycler"
)

// Vertical list: 100x300 viewport, 100x50 cells, pool of 10.
func newVerticalList(t *testing.T, items int, opts ...recycler.Option) *fixture {
	t.Helper()
	opts = append([]recycler.Option{recycler.WithMinPoolCoverage(1.5)}, opts...)
	f := newFixture(t, items, recycler.Vec2{X: 100, Y: 300}, recycler.Vec2{X: 100, Y: 50}, opts...)
	f.init(t)
	return f
}

func TestInitializeBuildsPool(t *testing.T) {
	f := newVerticalList(t, 25)

	assert.Equal(t, recycler.StateIdle, f.r.State())
	assert.Equal(t, 10, f.r.PoolSize())
	assert.Equal(t, 10, f.r.Seen())
	assert.Equal(t, seq(0, 9), f.r.DataIndexes())
	assert.Equal(t, recycler.Vec2{X: 100, Y: 50}, f.r.CellSize())
	assert.Equal(t, float32(500), f.content.SizeDelta.Y)
	assert.Equal(t, 1, f.inits)
	assert.False(t, f.proto.Active())
	assert.Equal(t, 10, f.pool.Outstanding())

	for i, p := range f.positions() {
		assert.Equal(t, recycler.Vec2{Y: -50 * float32(i)}, p, "slot %d", i)
	}
	stats := f.r.Stats()
	assert.Equal(t, uint64(1), stats.Initializations)
	assert.Equal(t, 10, stats.PoolSize)
}

func TestInitializeMinPoolSizeBeatsCoverage(t *testing.T) {
	f := newFixture(t, 100, recycler.Vec2{X: 100, Y: 300}, recycler.Vec2{X: 100, Y: 50},
		recycler.WithMinPoolCoverage(0.5), recycler.WithMinPoolSize(8))
	f.init(t)
	assert.Equal(t, 8, f.r.PoolSize())
}

func TestInitializeDefaultCoverage(t *testing.T) {
	f := newFixture(t, 100, recycler.Vec2{X: 100, Y: 300}, recycler.Vec2{X: 100, Y: 50})
	f.init(t)
	// 2 * 300 / 50
	assert.Equal(t, 12, f.r.PoolSize())
}

func TestProcessScrollForwardRecyclesThree(t *testing.T) {
	f := newVerticalList(t, 25)

	offset := f.scroll(recycler.Vec2{Y: 190})

	assert.Equal(t, recycler.Vec2{Y: -150}, offset)
	assert.Equal(t, seq(3, 12), f.r.DataIndexes())
	assert.Equal(t, 13, f.r.Seen())
	assert.Equal(t, float32(40), f.content.AnchoredPosition.Y)
	assert.Equal(t, 10, f.r.PoolSize())
	assert.Equal(t, float32(190), f.r.ScrollOffset())

	// The window is shifted back to the content origin.
	f.r.Window().InOrder(func(s *recycler.Slot) {
		want := -50 * float32(s.DataIndex-3)
		assert.Equal(t, want, s.Cell.Transform().AnchoredPosition.Y, "item %d", s.DataIndex)
	})

	stats := f.r.Stats()
	assert.Equal(t, uint64(3), stats.ForwardRecycled)
	assert.Equal(t, uint64(1), stats.RecycleCalls)
	assert.Equal(t, 3, stats.First)
	assert.Equal(t, 13, stats.Seen)
}

func TestProcessScrollRebindsCells(t *testing.T) {
	f := newVerticalList(t, 25)
	f.scroll(recycler.Vec2{Y: 190})

	f.r.Window().Each(func(s *recycler.Slot) {
		cell := s.Cell.(*recycler.BasicCell)
		assert.Equal(t, s.DataIndex, cell.Index())
		assert.Equal(t, numberFields(s.DataIndex), cell.Fields())
	})
}

func TestProcessScrollInsideBoundsIsNoop(t *testing.T) {
	f := newVerticalList(t, 25)
	before := f.positions()

	offset := f.scroll(recycler.Vec2{Y: 20})

	assert.True(t, offset.IsZero())
	assert.Equal(t, seq(0, 9), f.r.DataIndexes())
	assert.Equal(t, before, f.positions())
}

func TestProcessScrollBackwardAtStartIsNoop(t *testing.T) {
	f := newVerticalList(t, 25)
	offset := f.scroll(recycler.Vec2{Y: -80})
	assert.True(t, offset.IsZero())
	assert.Equal(t, seq(0, 9), f.r.DataIndexes())
}

func TestProcessScrollZeroDelta(t *testing.T) {
	f := newVerticalList(t, 25)
	f.content.AnchoredPosition.Y = 400
	assert.True(t, f.r.ProcessScroll(recycler.Vec2{}).IsZero())
	// Cross-axis movement is not a scroll.
	assert.True(t, f.r.ProcessScroll(recycler.Vec2{X: 30}).IsZero())
	assert.Equal(t, seq(0, 9), f.r.DataIndexes())
}

func TestProcessScrollSmallDataSet(t *testing.T) {
	f := newVerticalList(t, 5)
	require.Equal(t, 5, f.r.PoolSize())

	for _, d := range []float32{190, 400, -400, -190, 1000} {
		offset := f.scroll(recycler.Vec2{Y: d})
		assert.True(t, offset.IsZero(), "delta %v", d)
		assert.Equal(t, seq(0, 4), f.r.DataIndexes())
		assert.Equal(t, 5, f.r.Seen())
	}
}

func TestProcessScrollStopsAtEnd(t *testing.T) {
	f := newVerticalList(t, 25)

	f.scroll(recycler.Vec2{Y: 5000})

	assert.Equal(t, 25, f.r.Seen())
	assert.Equal(t, seq(15, 24), f.r.DataIndexes())
	requireContiguous(t, f.r)
}

func TestProcessScrollRoundTrip(t *testing.T) {
	f := newVerticalList(t, 40)
	before := f.positions()

	for i := 0; i < 200 && f.r.Seen() < 27; i++ {
		f.scroll(recycler.Vec2{Y: 17})
		requireContiguous(t, f.r)
	}
	require.GreaterOrEqual(t, f.r.Seen(), 27)

	for i := 0; i < 400 && f.r.First() > 0; i++ {
		f.scroll(recycler.Vec2{Y: -17})
		requireContiguous(t, f.r)
	}

	assert.Equal(t, seq(0, 9), f.r.DataIndexes())
	assert.Equal(t, before, f.positions())
	stats := f.r.Stats()
	assert.Equal(t, stats.ForwardRecycled, stats.BackwardRecycled)
}

func TestProcessScrollRandomWalk(t *testing.T) {
	f := newVerticalList(t, 60)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		d := float32(rng.IntN(241) - 120)
		f.scroll(recycler.Vec2{Y: d})

		requireContiguous(t, f.r)
		require.Equal(t, 10, f.r.PoolSize())
		require.GreaterOrEqual(t, f.r.Seen(), 10)
		require.LessOrEqual(t, f.r.Seen(), 60)
	}
}

func TestProcessScrollHorizontalList(t *testing.T) {
	f := newFixture(t, 25, recycler.Vec2{X: 300, Y: 100}, recycler.Vec2{X: 50, Y: 100},
		recycler.WithOrientation(recycler.Horizontal), recycler.WithMinPoolCoverage(1.5))
	f.init(t)
	require.Equal(t, 10, f.r.PoolSize())
	require.Equal(t, recycler.Vec2{X: 50, Y: 100}, f.r.CellSize())
	assert.Equal(t, float32(500), f.content.SizeDelta.X)

	offset := f.scroll(recycler.Vec2{X: -190})

	assert.Equal(t, recycler.Vec2{X: 150}, offset)
	assert.Equal(t, seq(3, 12), f.r.DataIndexes())
	assert.Equal(t, float32(-40), f.content.AnchoredPosition.X)
	assert.Equal(t, float32(190), f.r.ScrollOffset())

	f.r.Window().InOrder(func(s *recycler.Slot) {
		want := recycler.Vec2{X: 50 * float32(s.DataIndex-3)}
		assert.Equal(t, want, s.Cell.Transform().AnchoredPosition, "item %d", s.DataIndex)
	})
}

// Vertical grid: 3 columns of 100x100 cells in a 300x300 viewport, 9 slots.
func newVerticalGrid(t *testing.T, items int) *fixture {
	t.Helper()
	f := newFixture(t, items, recycler.Vec2{X: 300, Y: 300}, recycler.Vec2{X: 100, Y: 100},
		recycler.WithGrid(3), recycler.WithMinPoolCoverage(1), recycler.WithMinPoolSize(9))
	f.init(t)
	require.Equal(t, 9, f.r.PoolSize())
	return f
}

func TestGridInitialLayout(t *testing.T) {
	f := newVerticalGrid(t, 30)

	assert.Equal(t, recycler.Vec2{X: 100, Y: 100}, f.r.CellSize())
	assert.Equal(t, float32(300), f.content.SizeDelta.Y)
	for i, p := range f.positions() {
		want := recycler.Vec2{X: 100 * float32(i%3), Y: -100 * float32(i/3)}
		assert.Equal(t, want, p, "slot %d", i)
	}
	assert.Equal(t, 0, f.r.Window().TrailColumn())
	assert.Equal(t, 2, f.r.Window().LeadColumn())
}

func TestGridForwardOneRow(t *testing.T) {
	f := newVerticalGrid(t, 30)

	// Exactly at the bounds edge: nothing leaves.
	assert.True(t, f.scroll(recycler.Vec2{Y: 100}).IsZero())
	offset := f.scroll(recycler.Vec2{Y: 1})

	assert.Equal(t, recycler.Vec2{Y: -100}, offset)
	assert.Equal(t, seq(3, 11), f.r.DataIndexes())
	assert.Equal(t, float32(300), f.content.SizeDelta.Y, "window still spans three rows")
	assert.Equal(t, float32(1), f.content.AnchoredPosition.Y)
	assert.Equal(t, int64(0), f.r.Stats().GrowthLines)

	f.r.Window().InOrder(func(s *recycler.Slot) {
		line := s.DataIndex/3 - 1
		want := recycler.Vec2{X: 100 * float32(s.DataIndex%3), Y: -100 * float32(line)}
		assert.Equal(t, want, s.Cell.Transform().AnchoredPosition, "item %d", s.DataIndex)
	})
}

func TestGridContentGrowsWhenWindowOpensALine(t *testing.T) {
	f := newVerticalGrid(t, 10)

	offset := f.scroll(recycler.Vec2{Y: 101})

	// Only item 9 exists past the window: it opens a fourth line while
	// line 0 still holds items 1 and 2.
	assert.True(t, offset.IsZero())
	assert.Equal(t, seq(1, 9), f.r.DataIndexes())
	assert.Equal(t, float32(400), f.content.SizeDelta.Y)
	assert.Equal(t, int64(1), f.r.Stats().GrowthLines)

	lead := f.r.Window().Lead().Cell.Transform().AnchoredPosition
	assert.Equal(t, recycler.Vec2{X: 0, Y: -300}, lead)

	// Scrolling back removes the line again.
	f.scroll(recycler.Vec2{Y: -102})
	assert.Equal(t, seq(0, 8), f.r.DataIndexes())
	assert.Equal(t, float32(300), f.content.SizeDelta.Y)
	assert.Equal(t, int64(0), f.r.Stats().GrowthLines)
}

func TestGridColumnsStayInRange(t *testing.T) {
	f := newFixture(t, 100, recycler.Vec2{X: 300, Y: 300}, recycler.Vec2{X: 100, Y: 100},
		recycler.WithGrid(3), recycler.WithMinPoolSize(10), recycler.WithMinPoolCoverage(1))
	f.init(t)
	require.Equal(t, 10, f.r.PoolSize())
	before := f.positions()
	sizeBefore := f.content.SizeDelta

	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 300; i++ {
		f.scroll(recycler.Vec2{Y: float32(rng.IntN(161) - 60)})
		requireContiguous(t, f.r)
		w := f.r.Window()
		require.GreaterOrEqual(t, w.LeadColumn(), 0)
		require.Less(t, w.LeadColumn(), 3)
		require.Equal(t, f.r.First()%3, w.TrailColumn())
		require.Equal(t, (f.r.Seen()-1)%3, w.LeadColumn())

		lines := (f.r.Seen()-1)/3 - f.r.First()/3 + 1
		require.Equal(t, float32(lines*100), f.content.SizeDelta.Y)
	}

	for i := 0; i < 1000 && f.r.First() > 0; i++ {
		f.scroll(recycler.Vec2{Y: -40})
	}
	assert.Equal(t, seq(0, 9), f.r.DataIndexes())
	assert.Equal(t, before, f.positions())
	assert.Equal(t, sizeBefore, f.content.SizeDelta)
}

func TestHorizontalGrid(t *testing.T) {
	f := newFixture(t, 40, recycler.Vec2{X: 300, Y: 200}, recycler.Vec2{X: 100, Y: 100},
		recycler.WithOrientation(recycler.Horizontal), recycler.WithGrid(2))
	f.init(t)
	require.Equal(t, 12, f.r.PoolSize())
	require.Equal(t, recycler.Vec2{X: 100, Y: 100}, f.r.CellSize())

	offset := f.scroll(recycler.Vec2{X: -250})

	assert.Equal(t, recycler.Vec2{X: 200}, offset)
	assert.Equal(t, seq(4, 15), f.r.DataIndexes())
	assert.Equal(t, float32(-50), f.content.AnchoredPosition.X)
	f.r.Window().InOrder(func(s *recycler.Slot) {
		want := recycler.Vec2{X: 100 * float32(s.DataIndex/2-2), Y: -100 * float32(s.DataIndex%2)}
		assert.Equal(t, want, s.Cell.Transform().AnchoredPosition, "item %d", s.DataIndex)
	})
}

func TestGridDimensionIsClamped(t *testing.T) {
	r, err := recycler.New(recycler.NewBasicPool(), recycler.WithGrid(1), recycler.WithLogger(quietLogger))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Config().Dimension)
	assert.Equal(t, recycler.Grid, r.Config().Mode)
}

// reentrantSource scrolls the recycler from inside BindCell.
type reentrantSource struct {
	*recycler.SliceSource[int]
	r       *recycler.Recycler
	results []recycler.Vec2
}

func (s *reentrantSource) BindCell(cell recycler.Cell, index int) {
	s.SliceSource.BindCell(cell, index)
	if s.r != nil && s.r.State() == recycler.StateRecycling {
		s.results = append(s.results, s.r.ProcessScroll(recycler.Vec2{Y: 500}))
	}
}

func TestProcessScrollRejectsReentrantCalls(t *testing.T) {
	f := newFixture(t, 25, recycler.Vec2{X: 100, Y: 300}, recycler.Vec2{X: 100, Y: 50},
		recycler.WithMinPoolCoverage(1.5))
	src := &reentrantSource{SliceSource: f.source}
	require.NoError(t, f.r.Initialize(f.proto, f.viewport, f.content, src))
	src.r = f.r

	offset := f.scroll(recycler.Vec2{Y: 190})

	assert.Equal(t, recycler.Vec2{Y: -150}, offset)
	require.Len(t, src.results, 3)
	for _, res := range src.results {
		assert.True(t, res.IsZero())
	}
	assert.Equal(t, uint64(3), f.r.Stats().RejectedCalls)
	assert.Equal(t, seq(3, 12), f.r.DataIndexes())
	assert.Equal(t, recycler.StateIdle, f.r.State())
}

// shrinkingSource reports fewer items than the recycler was built with.
type shrinkingSource struct {
	count int
	bound []int
}

func (s *shrinkingSource) ItemCount() int { return s.count }

func (s *shrinkingSource) BindCell(cell recycler.Cell, index int) {
	s.bound = append(s.bound, index)
	cell.Configure(index)
}

func TestProcessScrollSkipsOutOfRangeBinds(t *testing.T) {
	f := newFixture(t, 0, recycler.Vec2{X: 100, Y: 300}, recycler.Vec2{X: 100, Y: 50},
		recycler.WithMinPoolCoverage(1.5))
	src := &shrinkingSource{count: 25}
	require.NoError(t, f.r.Initialize(f.proto, f.viewport, f.content, src))
	src.count = 11
	src.bound = nil

	offset := f.scroll(recycler.Vec2{Y: 190})

	assert.Equal(t, []int{10}, src.bound)
	assert.Equal(t, recycler.Vec2{Y: -100}, offset)
	assert.Equal(t, seq(2, 11), f.r.DataIndexes())
	assert.Equal(t, uint64(1), f.r.Stats().BoundsViolations)
}

func TestInitializeMissingReferences(t *testing.T) {
	f := newFixture(t, 5, recycler.Vec2{X: 100, Y: 300}, recycler.Vec2{X: 100, Y: 50})

	tests := []struct {
		name  string
		field string
		call  func() error
	}{
		{"prototype", "prototype", func() error { return f.r.Initialize(nil, f.viewport, f.content, f.source) }},
		{"viewport", "viewport", func() error { return f.r.Initialize(f.proto, nil, f.content, f.source) }},
		{"content", "content", func() error { return f.r.Initialize(f.proto, f.viewport, nil, f.source) }},
		{"source", "source", func() error { return f.r.Initialize(f.proto, f.viewport, f.content, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, recycler.ErrMissingReference)
			var cfgErr *recycler.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
	assert.Equal(t, 0, f.inits)
}

func TestInitializeInvalidPrototype(t *testing.T) {
	f := newFixture(t, 5, recycler.Vec2{X: 100, Y: 300}, recycler.Vec2{X: 0, Y: 50})
	var failed error
	f.r.OnFailed.Subscribe(func(err error) { failed = err })

	err := f.r.Initialize(f.proto, f.viewport, f.content, f.source)

	assert.ErrorIs(t, err, recycler.ErrInvalidLayout)
	assert.Equal(t, err, failed)
	assert.Equal(t, err, f.r.Err())
	assert.Equal(t, recycler.StateUninitialized, f.r.State())
}

func TestInitializePoolExhausted(t *testing.T) {
	pool := recycler.NewBasicPool(recycler.WithPoolLimit(3))
	r, err := recycler.New(pool, recycler.WithLogger(quietLogger))
	require.NoError(t, err)
	viewport := recycler.NewTransform("viewport", recycler.Vec2{X: 100, Y: 300})
	content := recycler.NewTransform("content", recycler.Vec2{X: 100})
	content.SetParent(viewport)

	err = r.Initialize(recycler.NewTransform("proto", recycler.Vec2{X: 100, Y: 50}), viewport, content,
		recycler.NewSliceSource(numbers(20), numberFields))

	assert.ErrorIs(t, err, recycler.ErrPoolExhausted)
	assert.Equal(t, recycler.StateUninitialized, r.State())
	assert.Equal(t, 0, r.PoolSize())
	assert.Equal(t, 0, pool.Outstanding())
	assert.Equal(t, 3, pool.Free())
}

func TestNewRequiresPool(t *testing.T) {
	_, err := recycler.New(nil)
	assert.ErrorIs(t, err, recycler.ErrMissingReference)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := recycler.New(recycler.NewBasicPool(), recycler.WithMinPoolCoverage(-1))
	assert.ErrorIs(t, err, recycler.ErrInvalidLayout)
}

func TestReloadData(t *testing.T) {
	f := newVerticalList(t, 25)
	f.scroll(recycler.Vec2{Y: 190})

	next := recycler.NewSliceSource(numbers(7), numberFields)
	require.NoError(t, f.r.ReloadData(next))

	assert.Equal(t, 7, f.r.PoolSize())
	assert.Equal(t, 7, f.r.ItemCount())
	assert.Equal(t, seq(0, 6), f.r.DataIndexes())
	assert.Equal(t, recycler.Vec2{}, f.content.AnchoredPosition)
	assert.Equal(t, 7, f.pool.Outstanding())
	assert.Equal(t, 10, f.pool.Created(), "cells are reused")
	assert.Equal(t, 2, f.inits)
}

func TestReloadDataBeforeInitialize(t *testing.T) {
	r, err := recycler.New(recycler.NewBasicPool())
	require.NoError(t, err)
	assert.ErrorIs(t, r.ReloadData(recycler.NewSliceSource(numbers(3), numberFields)), recycler.ErrNotInitialized)
}

func TestReset(t *testing.T) {
	f := newVerticalList(t, 25)
	f.r.Reset()

	assert.Equal(t, recycler.StateUninitialized, f.r.State())
	assert.Equal(t, 0, f.r.PoolSize())
	assert.Equal(t, 0, f.pool.Outstanding())
	assert.True(t, f.r.ProcessScroll(recycler.Vec2{Y: 100}).IsZero())
}

func TestEmptyDataSource(t *testing.T) {
	f := newVerticalList(t, 0)
	assert.Equal(t, recycler.StateIdle, f.r.State())
	assert.Equal(t, 0, f.r.PoolSize())
	assert.True(t, f.scroll(recycler.Vec2{Y: 100}).IsZero())
}
