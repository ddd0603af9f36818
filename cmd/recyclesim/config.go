package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-theft-auto/recycler"
)

const (
	configName = ".recyclesim"
	configType = "yaml"
	envPrefix  = "RECYCLESIM"
)

// simConfig is everything a simulation needs.
type simConfig struct {
	Items      int             `mapstructure:"items"`
	Viewport   string          `mapstructure:"viewport"` // WxH
	Cell       string          `mapstructure:"cell"`     // WxH
	Stepped    bool            `mapstructure:"stepped"`
	Steps      []string        `mapstructure:"steps"`
	TableStyle string          `mapstructure:"table_style"`
	Recycler   recycler.Config `mapstructure:"recycler"`
}

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"items":       "items",
	"viewport":    "viewport",
	"cell":        "cell",
	"stepped":     "stepped",
	"table-style": "table_style",
	"orientation": "recycler.orientation",
	"mode":        "recycler.mode",
	"dimension":   "recycler.dimension",
	"coverage":    "recycler.min_pool_coverage",
	"min-pool":    "recycler.min_pool_size",
	"threshold":   "recycler.threshold",
}

func addLayoutFlags(cmd *cobra.Command) {
	def := recycler.DefaultConfig()
	f := cmd.PersistentFlags()
	f.Int("items", 25, "number of data items")
	f.String("viewport", "100x300", "viewport size WxH")
	f.String("cell", "100x50", "prototype cell size WxH")
	f.Bool("stepped", false, "build one cell per tick through a scheduler")
	f.String("table-style", "light", "table style: light, rounded, ascii")
	f.String("orientation", def.Orientation.String(), "vertical or horizontal")
	f.String("mode", def.Mode.String(), "list or grid")
	f.Int("dimension", def.Dimension, "grid columns (vertical) or rows (horizontal)")
	f.Float32("coverage", def.MinPoolCoverage, "pool must cover viewport times this")
	f.Int("min-pool", def.MinPoolSize, "minimum number of cells")
	f.Float32("threshold", def.RecyclingThreshold, "bounds padding as a fraction of the viewport")
}

func applyDefaults(v *viper.Viper) {
	def := recycler.DefaultConfig()
	v.SetDefault("items", 25)
	v.SetDefault("viewport", "100x300")
	v.SetDefault("cell", "100x50")
	v.SetDefault("stepped", false)
	v.SetDefault("steps", []string{"+190", "+400", "end", "home"})
	v.SetDefault("table_style", "light")
	v.SetDefault("recycler.orientation", def.Orientation.String())
	v.SetDefault("recycler.mode", def.Mode.String())
	v.SetDefault("recycler.dimension", def.Dimension)
	v.SetDefault("recycler.min_pool_coverage", def.MinPoolCoverage)
	v.SetDefault("recycler.min_pool_size", def.MinPoolSize)
	v.SetDefault("recycler.threshold", def.RecyclingThreshold)
}

// loadConfig merges defaults, the config file, RECYCLESIM_* variables and
// flags that were set explicitly, in increasing priority.
func loadConfig(path string, flags *pflag.FlagSet) (simConfig, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return simConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if fl := flags.Lookup(name); fl != nil {
				if err := v.BindPFlag(key, fl); err != nil {
					return simConfig{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg simConfig
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return simConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Items < 0 {
		return simConfig{}, fmt.Errorf("items %d < 0", cfg.Items)
	}
	if err := cfg.Recycler.Validate(); err != nil {
		return simConfig{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// parseSize parses "WxH".
func parseSize(s string) (recycler.Vec2, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return recycler.Vec2{}, fmt.Errorf("size %q: want WxH", s)
	}
	x, err := strconv.ParseFloat(w, 32)
	if err != nil {
		return recycler.Vec2{}, fmt.Errorf("size %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(h, 32)
	if err != nil {
		return recycler.Vec2{}, fmt.Errorf("size %q: %w", s, err)
	}
	if x <= 0 || y <= 0 {
		return recycler.Vec2{}, fmt.Errorf("size %q: must be positive", s)
	}
	return recycler.Vec2{X: float32(x), Y: float32(y)}, nil
}
