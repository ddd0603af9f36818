// Package metrics exposes recycler counters to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(metrics.NewCollector("contacts", r))
//	http.Handle("/metrics", metrics.Handler(reg))
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-theft-auto/recycler"
)

const namespace = "recycler"

// Collector reads Recycler.Stats on every scrape. Stats is backed by
// atomics, so scrapes may run on the HTTP server's goroutines while the
// owning loop keeps scrolling.
type Collector struct {
	r *recycler.Recycler

	initializations  *prometheus.Desc
	recycleCalls     *prometheus.Desc
	recycled         *prometheus.Desc
	growthLines      *prometheus.Desc
	boundsViolations *prometheus.Desc
	rejectedCalls    *prometheus.Desc
	poolSize         *prometheus.Desc
	first            *prometheus.Desc
	seen             *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector for r. name becomes the constant "view"
// label so several recyclers can share one registry.
func NewCollector(name string, r *recycler.Recycler) *Collector {
	labels := prometheus.Labels{"view": name}
	desc := func(metric, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", metric), help, variable, labels)
	}
	return &Collector{
		r:                r,
		initializations:  desc("initializations_total", "Completed builds."),
		recycleCalls:     desc("scroll_calls_total", "ProcessScroll calls with a non-zero scrolling delta."),
		recycled:         desc("recycled_cells_total", "Cells moved from one edge of the ring to the other.", "direction"),
		growthLines:      desc("growth_lines", "Net lines added to the content by grid row wraps."),
		boundsViolations: desc("bounds_violations_total", "Binds skipped because an index fell outside the data or pool."),
		rejectedCalls:    desc("rejected_calls_total", "Re-entrant ProcessScroll calls that were ignored."),
		poolSize:         desc("pool_size", "Cells in the ring."),
		first:            desc("window_first_index", "Data index bound to the trailing cell."),
		seen:             desc("window_seen_count", "One past the highest data index bound so far."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.initializations
	ch <- c.recycleCalls
	ch <- c.recycled
	ch <- c.growthLines
	ch <- c.boundsViolations
	ch <- c.rejectedCalls
	ch <- c.poolSize
	ch <- c.first
	ch <- c.seen
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.r.Stats()
	counter := func(d *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), labels...)
	}
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}

	counter(c.initializations, s.Initializations)
	counter(c.recycleCalls, s.RecycleCalls)
	counter(c.recycled, s.ForwardRecycled, "forward")
	counter(c.recycled, s.BackwardRecycled, "backward")
	counter(c.boundsViolations, s.BoundsViolations)
	counter(c.rejectedCalls, s.RejectedCalls)
	gauge(c.growthLines, float64(s.GrowthLines))
	gauge(c.poolSize, float64(s.PoolSize))
	gauge(c.first, float64(s.First))
	gauge(c.seen, float64(s.Seen))
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
