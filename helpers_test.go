package recycler_test

import (
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/recycler"
)

// quietLogger keeps expected warnings out of test output.
var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fixture is a viewport/content/prototype triple with a recycler over
// numbered items.
type fixture struct {
	viewport *recycler.Transform
	content  *recycler.Transform
	proto    *recycler.Transform
	pool     *recycler.Pool
	source   *recycler.SliceSource[int]
	r        *recycler.Recycler
	inits    int
}

func numbers(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func numberFields(i int) []string {
	return []string{"item " + strconv.Itoa(i)}
}

func newFixture(t *testing.T, items int, viewport, proto recycler.Vec2, opts ...recycler.Option) *fixture {
	t.Helper()
	f := &fixture{
		viewport: recycler.NewTransform("viewport", viewport),
		content:  recycler.NewTransform("content", recycler.Vec2{}),
		proto:    recycler.NewTransform("prototype", proto),
		pool:     recycler.NewBasicPool(),
		source:   recycler.NewSliceSource(numbers(items), numberFields),
	}
	f.content.SetParent(f.viewport)

	opts = append([]recycler.Option{recycler.WithLogger(quietLogger)}, opts...)
	r, err := recycler.New(f.pool, opts...)
	require.NoError(t, err)
	f.r = r
	if r.Config().Orientation == recycler.Horizontal {
		f.content.SizeDelta.Y = viewport.Y
	} else {
		f.content.SizeDelta.X = viewport.X
	}
	r.OnInitialized.Subscribe(func(*recycler.Recycler) { f.inits++ })
	return f
}

func (f *fixture) init(t *testing.T) {
	t.Helper()
	require.NoError(t, f.r.Initialize(f.proto, f.viewport, f.content, f.source))
}

// scroll moves the content like a host would and reports it.
func (f *fixture) scroll(delta recycler.Vec2) recycler.Vec2 {
	f.content.AnchoredPosition = f.content.AnchoredPosition.Add(delta)
	return f.r.ProcessScroll(delta)
}

// positions returns the anchored position of every slot in ring order.
func (f *fixture) positions() []recycler.Vec2 {
	var out []recycler.Vec2
	f.r.Window().Each(func(s *recycler.Slot) {
		out = append(out, s.Cell.Transform().AnchoredPosition)
	})
	return out
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// requireContiguous checks the window holds an ascending run with no gaps.
func requireContiguous(t *testing.T, r *recycler.Recycler) {
	t.Helper()
	idx := r.DataIndexes()
	require.Len(t, idx, r.PoolSize())
	for i := 1; i < len(idx); i++ {
		require.Equal(t, idx[i-1]+1, idx[i], "window %v", idx)
	}
	if len(idx) > 0 {
		require.Equal(t, r.First(), idx[0])
		require.Equal(t, r.Seen()-1, idx[len(idx)-1])
	}
}
