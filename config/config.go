// SPDX-License-Identifier: MIT

// Package config holds the assembler settings that are unmarshalled from
// Viper: defaults, an optional settings file, LVLASM_* environment
// variables and command line flags bound by cmd/lvlasm.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lvlasm/arcs"
	"github.com/katalvlaran/lvlasm/chain"
	"github.com/katalvlaran/lvlasm/internal/logging"
	"github.com/katalvlaran/lvlasm/overlap"
	"github.com/katalvlaran/lvlasm/pipeline"
)

// EnvPrefix prefixes every environment variable read by New.
const EnvPrefix = "LVLASM"

// ErrThreads is returned for a non-positive thread count.
var ErrThreads = errors.New("config: threads must be positive")

// ChainConfig are settings of the anchor chainer
type ChainConfig struct {
	// max indel fraction of the query span
	BandWidth float64 `mapstructure:"band-width"`

	// pruning threshold for non-improving predecessors
	MaxSkip int `mapstructure:"max-skip"`

	// per-step score cap, normally the k-mer length
	MinScore int `mapstructure:"min-score"`

	// single-gap ceiling of the colinear fast path
	MaxGap int `mapstructure:"max-gap"`

	// pad traces with begin and end points
	BegEnd bool `mapstructure:"beg-end"`

	// window size for window slot allocation, 0 disables it
	Window int `mapstructure:"window"`
}

// GraphConfig are settings of the arc builder and the contractor
type GraphConfig struct {
	// longest tolerated unaligned overhang
	MaxHang int `mapstructure:"max-hang"`

	// min aligned fraction of the overhang-extended span
	IntFrac float64 `mapstructure:"int-frac"`

	// shortest accepted dovetail
	MinOverlap int `mapstructure:"min-overlap"`

	// keep only the largest overlap between two oriented reads
	RiskyMultiArc bool `mapstructure:"risky-multi-arc"`

	// add missing complement arcs
	Symmetrize bool `mapstructure:"symmetrize"`

	// emit reads without arcs as one-member unitigs
	Singletons bool `mapstructure:"singletons"`
}

// RunConfig are settings of the parallel driver
type RunConfig struct {
	Threads int `mapstructure:"threads"`
}

// LogConfig are logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the root-level settings struct
type Config struct {
	Chain ChainConfig `mapstructure:"chain"`
	Graph GraphConfig `mapstructure:"graph"`
	Run   RunConfig   `mapstructure:"run"`
	Log   LogConfig   `mapstructure:"log"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("chain.band-width", chain.DefaultBandWidth)
	v.SetDefault("chain.max-skip", chain.DefaultMaxSkip)
	v.SetDefault("chain.min-score", chain.DefaultMinScore)
	v.SetDefault("chain.max-gap", chain.DefaultMaxGapSize)
	v.SetDefault("chain.beg-end", false)
	v.SetDefault("chain.window", 0)

	v.SetDefault("graph.max-hang", arcs.DefaultMaxHang)
	v.SetDefault("graph.int-frac", arcs.DefaultIntFrac)
	v.SetDefault("graph.min-overlap", arcs.DefaultMinOverlap)
	v.SetDefault("graph.risky-multi-arc", true)
	v.SetDefault("graph.symmetrize", false)
	v.SetDefault("graph.singletons", true)

	v.SetDefault("run.threads", runtime.GOMAXPROCS(0))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// New returns a Config populated from v. Defaults are registered and
// LVLASM_<SECTION>_<KEY> environment variables are honoured, so
// LVLASM_GRAPH_MAX_HANG overrides graph.max-hang.
func New(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unable to decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// ChainOptions returns the chainer options of c.
func (c Config) ChainOptions() chain.Options {
	return chain.Options{
		BandWidth:  c.Chain.BandWidth,
		MaxSkip:    c.Chain.MaxSkip,
		MinScore:   c.Chain.MinScore,
		MaxGapSize: c.Chain.MaxGap,
	}
}

// Thresholds returns the classification thresholds of c.
func (c Config) Thresholds() arcs.Thresholds {
	return arcs.Thresholds{MaxHang: c.Graph.MaxHang, IntFrac: c.Graph.IntFrac, MinOverlap: c.Graph.MinOverlap}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.ChainOptions().Validate(); err != nil {
		return err
	}
	if c.Chain.Window < 0 {
		return fmt.Errorf("config: chain.window %d must be non-negative", c.Chain.Window)
	}
	if err := c.Thresholds().Validate(); err != nil {
		return err
	}
	if c.Run.Threads <= 0 {
		return fmt.Errorf("%w: %d", ErrThreads, c.Run.Threads)
	}

	return nil
}

// Logger builds the logger described by the log section.
func (c Config) Logger() (zerolog.Logger, error) {
	return logging.New(logging.Config{Level: c.Log.Level, Format: c.Log.Format})
}

// Pipeline returns the driver configuration for c.
func (c Config) Pipeline(log zerolog.Logger) pipeline.Config {
	var ropts []overlap.RegistryOption
	if c.Chain.BegEnd {
		ropts = append(ropts, overlap.WithBegEnd())
	}
	if c.Chain.Window > 0 {
		ropts = append(ropts, overlap.WithWindows(c.Chain.Window))
	}

	return pipeline.Config{
		Threads:       c.Run.Threads,
		Chain:         c.ChainOptions(),
		Registry:      ropts,
		Thresholds:    c.Thresholds(),
		RiskyMultiArc: c.Graph.RiskyMultiArc,
		Symmetrize:    c.Graph.Symmetrize,
		Singletons:    c.Graph.Singletons,
		Logger:        log,
	}
}
