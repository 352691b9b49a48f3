// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlasm/arcs"
	"github.com/katalvlaran/lvlasm/chain"
	"github.com/katalvlaran/lvlasm/config"
)

func TestNew_Defaults(t *testing.T) {
	c, err := config.New(viper.New())
	require.NoError(t, err)

	assert.Equal(t, chain.DefaultOptions(), c.ChainOptions())
	assert.Equal(t, arcs.DefaultThresholds(), c.Thresholds())
	assert.True(t, c.Graph.RiskyMultiArc)
	assert.True(t, c.Graph.Singletons)
	assert.False(t, c.Graph.Symmetrize)
	assert.Positive(t, c.Run.Threads)
	assert.Equal(t, "info", c.Log.Level)

	p := c.Pipeline(zerolog.Nop())
	assert.Equal(t, c.Run.Threads, p.Threads)
	assert.Empty(t, p.Registry)
}

func TestNew_Environment(t *testing.T) {
	t.Setenv("LVLASM_GRAPH_MAX_HANG", "250")
	t.Setenv("LVLASM_CHAIN_BAND_WIDTH", "0.1")
	t.Setenv("LVLASM_RUN_THREADS", "3")

	c, err := config.New(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 250, c.Graph.MaxHang)
	assert.InDelta(t, 0.1, c.Chain.BandWidth, 1e-12)
	assert.Equal(t, 3, c.Run.Threads)
}

func TestNew_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
chain:
  min-score: 19
  beg-end: true
  window: 500
graph:
  symmetrize: true
  risky-multi-arc: false
`), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := config.New(v)
	require.NoError(t, err)
	assert.Equal(t, 19, c.Chain.MinScore)
	assert.True(t, c.Graph.Symmetrize)
	assert.False(t, c.Graph.RiskyMultiArc)

	p := c.Pipeline(zerolog.Nop())
	assert.Len(t, p.Registry, 2)
	assert.False(t, p.RiskyMultiArc)
}

func TestValidate(t *testing.T) {
	c, err := config.New(viper.New())
	require.NoError(t, err)

	bad := c
	bad.Run.Threads = 0
	assert.ErrorIs(t, bad.Validate(), config.ErrThreads)

	bad = c
	bad.Chain.BandWidth = 2
	assert.ErrorIs(t, bad.Validate(), chain.ErrBandWidth)

	bad = c
	bad.Graph.IntFrac = -0.5
	assert.ErrorIs(t, bad.Validate(), arcs.ErrIntFrac)

	bad = c
	bad.Chain.Window = -1
	assert.Error(t, bad.Validate())

	v := viper.New()
	v.Set("graph.max-hang", -4)
	_, err = config.New(v)
	assert.ErrorIs(t, err, arcs.ErrMaxHang)
}
