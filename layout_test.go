package recycler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/recycler"
)

func TestCellSize(t *testing.T) {
	tests := []struct {
		name      string
		prototype recycler.Vec2
		extent    float32
		dimension int
		o         recycler.Orientation
		want      recycler.Vec2
	}{
		{"vertical list keeps ratio", recycler.Vec2{X: 200, Y: 50}, 100, 1, recycler.Vertical, recycler.Vec2{X: 100, Y: 25}},
		{"vertical grid splits width", recycler.Vec2{X: 100, Y: 100}, 300, 3, recycler.Vertical, recycler.Vec2{X: 100, Y: 100}},
		{"horizontal list", recycler.Vec2{X: 50, Y: 100}, 100, 1, recycler.Horizontal, recycler.Vec2{X: 50, Y: 100}},
		{"horizontal grid splits height", recycler.Vec2{X: 80, Y: 40}, 200, 2, recycler.Horizontal, recycler.Vec2{X: 200, Y: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := recycler.CellSize(tt.prototype, tt.extent, tt.dimension, tt.o)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellSizeErrors(t *testing.T) {
	_, err := recycler.CellSize(recycler.Vec2{X: 0, Y: 10}, 100, 1, recycler.Vertical)
	assert.ErrorIs(t, err, recycler.ErrInvalidLayout)

	_, err = recycler.CellSize(recycler.Vec2{X: 10, Y: 0}, 100, 1, recycler.Horizontal)
	assert.ErrorIs(t, err, recycler.ErrInvalidLayout)

	_, err = recycler.CellSize(recycler.Vec2{X: 10, Y: 10}, 100, 0, recycler.Vertical)
	assert.ErrorIs(t, err, recycler.ErrInvalidLayout)
}

func TestPositionFor(t *testing.T) {
	cell := recycler.Vec2{X: 20, Y: 10}
	assert.Equal(t, recycler.Vec2{Y: -30}, recycler.PositionFor(3, 0, 0, cell, recycler.Vertical, recycler.List))
	assert.Equal(t, recycler.Vec2{X: 60}, recycler.PositionFor(3, 0, 0, cell, recycler.Horizontal, recycler.List))
	assert.Equal(t, recycler.Vec2{X: 40, Y: -10}, recycler.PositionFor(5, 1, 2, cell, recycler.Vertical, recycler.Grid))
	assert.Equal(t, recycler.Vec2{X: 20, Y: -20}, recycler.PositionFor(5, 1, 2, cell, recycler.Horizontal, recycler.Grid))
}

func TestAnchors(t *testing.T) {
	assert.Equal(t, recycler.AnchorTop, recycler.CellAnchor(recycler.Vertical, recycler.List))
	assert.Equal(t, recycler.AnchorLeft, recycler.CellAnchor(recycler.Horizontal, recycler.List))
	assert.Equal(t, recycler.AnchorTopLeft, recycler.CellAnchor(recycler.Vertical, recycler.Grid))
	assert.Equal(t, recycler.AnchorTopLeft, recycler.CellAnchor(recycler.Horizontal, recycler.Grid))

	assert.Equal(t, recycler.AnchorTop, recycler.ContentAnchor(recycler.Vertical, recycler.Grid))
	assert.Equal(t, recycler.AnchorLeft, recycler.ContentAnchor(recycler.Horizontal, recycler.List))
	assert.Equal(t, recycler.AnchorTopLeft, recycler.ContentAnchor(recycler.Horizontal, recycler.Grid))
}

func TestLinesFor(t *testing.T) {
	assert.Equal(t, 0, recycler.LinesFor(0, 3))
	assert.Equal(t, 1, recycler.LinesFor(1, 3))
	assert.Equal(t, 3, recycler.LinesFor(9, 3))
	assert.Equal(t, 4, recycler.LinesFor(10, 3))
	assert.Equal(t, 25, recycler.LinesFor(25, 1))
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]recycler.Orientation{
		"vertical": recycler.Vertical, "v": recycler.Vertical,
		"horizontal": recycler.Horizontal, "h": recycler.Horizontal,
	} {
		got, err := recycler.ParseOrientation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := recycler.ParseOrientation("diagonal")
	assert.ErrorIs(t, err, recycler.ErrInvalidLayout)
	assert.Equal(t, "horizontal", recycler.Horizontal.String())
	assert.Equal(t, "grid", recycler.Grid.String())
}

func TestLayoutTextUnmarshal(t *testing.T) {
	var o recycler.Orientation
	require.NoError(t, o.UnmarshalText([]byte("h")))
	assert.Equal(t, recycler.Horizontal, o)

	var m recycler.LayoutMode
	require.NoError(t, m.UnmarshalText([]byte("grid")))
	assert.Equal(t, recycler.Grid, m)
	assert.ErrorIs(t, m.UnmarshalText([]byte("ring")), recycler.ErrInvalidLayout)
	assert.Equal(t, recycler.Grid, m, "failed decode keeps the old value")
}

func TestComputeBounds(t *testing.T) {
	vp := recycler.NewTransform("viewport", recycler.Vec2{X: 100, Y: 300})
	vp.AnchoredPosition = recycler.Vec2{X: 10, Y: 20}

	b := recycler.ComputeBounds(vp.WorldCorners(), 0, recycler.Vertical)
	assert.Equal(t, recycler.Vec2{X: 10, Y: 20}, b.Min)
	assert.Equal(t, recycler.Vec2{X: 110, Y: 320}, b.Max)

	b = recycler.ComputeBounds(vp.WorldCorners(), 0.1, recycler.Vertical)
	assert.Equal(t, recycler.Vec2{X: 10, Y: -10}, b.Min)
	assert.Equal(t, recycler.Vec2{X: 110, Y: 350}, b.Max)
	assert.Equal(t, float32(360), b.Extent(recycler.Vertical))

	b = recycler.ComputeBounds(vp.WorldCorners(), 0.5, recycler.Horizontal)
	assert.Equal(t, recycler.Vec2{X: -40, Y: 20}, b.Min)
	assert.Equal(t, recycler.Vec2{X: 160, Y: 320}, b.Max)
	assert.Equal(t, recycler.Rect{X: -40, Y: 20, W: 200, H: 300}, b.Rect())
}

func TestThresholdDelaysRecycling(t *testing.T) {
	f := newVerticalList(t, 25, recycler.WithThreshold(0.5))

	// 150px of slack above the viewport keeps cells 0..2 bound.
	assert.True(t, f.scroll(recycler.Vec2{Y: 190}).IsZero())
	assert.Equal(t, seq(0, 9), f.r.DataIndexes())

	offset := f.scroll(recycler.Vec2{Y: 20})
	assert.Equal(t, recycler.Vec2{Y: -50}, offset)
	assert.Equal(t, seq(1, 10), f.r.DataIndexes())
}
