package recycler

import (
	"fmt"
	"log/slog"
)

// Defaults for Config.
const (
	DefaultMinPoolCoverage    float32 = 2  // pool must cover viewport * coverage
	DefaultMinPoolSize                = 10 // absolute floor on slot count
	DefaultRecyclingThreshold float32 = 0  // strict viewport boundary
	MinGridDimension                  = 2
)

// Config is the layout configuration. It is fixed for the lifetime of a
// built pool; changing it requires re-initializing.
type Config struct {
	Orientation Orientation `mapstructure:"orientation"`
	Mode        LayoutMode  `mapstructure:"mode"`
	// Dimension is columns for vertical grids and rows for horizontal grids.
	Dimension          int     `mapstructure:"dimension"`
	MinPoolCoverage    float32 `mapstructure:"min_pool_coverage"`
	MinPoolSize        int     `mapstructure:"min_pool_size"`
	RecyclingThreshold float32 `mapstructure:"threshold"`
}

// DefaultConfig returns a vertical list configuration.
func DefaultConfig() Config {
	return Config{
		Orientation:        Vertical,
		Mode:               List,
		Dimension:          1,
		MinPoolCoverage:    DefaultMinPoolCoverage,
		MinPoolSize:        DefaultMinPoolSize,
		RecyclingThreshold: DefaultRecyclingThreshold,
	}
}

// Validate normalizes the configuration: lists use one line slot, grids at
// least MinGridDimension. Negative values are rejected.
func (c *Config) Validate() error {
	if c.Orientation != Vertical && c.Orientation != Horizontal {
		return configError("orientation", fmt.Errorf("%v: %w", c.Orientation, ErrInvalidLayout))
	}
	if c.MinPoolCoverage < 0 {
		return configError("min_pool_coverage", fmt.Errorf("%v < 0: %w", c.MinPoolCoverage, ErrInvalidLayout))
	}
	if c.MinPoolSize < 0 {
		return configError("min_pool_size", fmt.Errorf("%d < 0: %w", c.MinPoolSize, ErrInvalidLayout))
	}
	if c.RecyclingThreshold < 0 {
		return configError("threshold", fmt.Errorf("%v < 0: %w", c.RecyclingThreshold, ErrInvalidLayout))
	}
	switch c.Mode {
	case List:
		c.Dimension = 1
	case Grid:
		c.Dimension = max(c.Dimension, MinGridDimension)
	default:
		return configError("mode", fmt.Errorf("%v: %w", c.Mode, ErrInvalidLayout))
	}
	return nil
}

// Option configures a Recycler.
type Option func(*Recycler)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(r *Recycler) { r.cfg = cfg }
}

// WithOrientation sets the scrolling axis.
func WithOrientation(o Orientation) Option {
	return func(r *Recycler) { r.cfg.Orientation = o }
}

// WithGrid switches to grid mode with the given columns (vertical) or rows
// (horizontal). Values below 2 are raised to 2.
func WithGrid(dimension int) Option {
	return func(r *Recycler) {
		r.cfg.Mode = Grid
		r.cfg.Dimension = dimension
	}
}

// WithMinPoolCoverage sets how many viewport extents the pool pre-fills.
func WithMinPoolCoverage(c float32) Option {
	return func(r *Recycler) { r.cfg.MinPoolCoverage = c }
}

// WithMinPoolSize sets the minimum number of slots.
func WithMinPoolSize(n int) Option {
	return func(r *Recycler) { r.cfg.MinPoolSize = n }
}

// WithThreshold sets the bounds slack as a fraction of the viewport extent.
func WithThreshold(t float32) Option {
	return func(r *Recycler) { r.cfg.RecyclingThreshold = t }
}

// WithScheduler makes initialization stepped: one step per scheduler tick.
func WithScheduler(s *Scheduler) Option {
	return func(r *Recycler) { r.scheduler = s }
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recycler) { r.logger = l }
}
