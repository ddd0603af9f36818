package metrics_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/recycler"
	"github.com/go-theft-auto/recycler/metrics"
)

func newScrolledRecycler(t *testing.T) *recycler.Recycler {
	t.Helper()
	r, err := recycler.New(recycler.NewBasicPool(),
		recycler.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		recycler.WithMinPoolCoverage(1.5))
	require.NoError(t, err)

	viewport := recycler.NewTransform("viewport", recycler.Vec2{X: 100, Y: 300})
	view := recycler.NewScrollView("list", viewport, recycler.NewTransform("proto", recycler.Vec2{X: 100, Y: 50}), r)
	source := recycler.NewSliceSource(make([]int, 25), func(i int) []string { return []string{strconv.Itoa(i)} })
	require.NoError(t, view.Initialize(source))
	view.ScrollBy(190)
	return r
}

func TestCollectorExposesStats(t *testing.T) {
	t.Parallel()

	r := newScrolledRecycler(t)
	c := metrics.NewCollector("list", r)

	assert.Equal(t, 10, testutil.CollectAndCount(c))

	expected := `
# HELP recycler_recycled_cells_total Cells moved from one edge of the ring to the other.
# TYPE recycler_recycled_cells_total counter
recycler_recycled_cells_total{direction="backward",view="list"} 0
recycler_recycled_cells_total{direction="forward",view="list"} 3
# HELP recycler_pool_size Cells in the ring.
# TYPE recycler_pool_size gauge
recycler_pool_size{view="list"} 10
# HELP recycler_window_first_index Data index bound to the trailing cell.
# TYPE recycler_window_first_index gauge
recycler_window_first_index{view="list"} 3
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"recycler_recycled_cells_total", "recycler_pool_size", "recycler_window_first_index")
	assert.NoError(t, err)
}

func TestHandlerServesMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector("list", newScrolledRecycler(t)))

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), `recycler_initializations_total{view="list"} 1`)
}

func TestCollectorsShareRegistry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := newScrolledRecycler(t)
	require.NoError(t, reg.Register(metrics.NewCollector("a", r)))
	require.NoError(t, reg.Register(metrics.NewCollector("b", r)))
	assert.Error(t, reg.Register(metrics.NewCollector("a", r)), "duplicate view label")
}
