package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"quadrature/adaptive"
	"quadrature/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
engine:
  initial_subdivisions: 2
  max_iterations: 12
  max_evaluations: 100000
  criterion: combined
  abs_tolerance: 1.0e-9
seed: 42
log_level: debug
runs:
  - integrand: sin
    bounds: [[0, 3.141592653589793]]
    methods:
      - {method: simpson, param: 16}
      - {method: adaptive-simpson, param: 1.0e-8}
  - integrand: square-sum
    bounds: [[0, 1], [0, 1], [0, 1]]
    methods:
      - {method: monte-carlo, param: 5000}
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Engine.InitialSubdivisions)
	assert.Equal(t, 12, cfg.Engine.MaxIterations)
	assert.Equal(t, 100000, cfg.Engine.MaxEvaluations)
	assert.Equal(t, "combined", cfg.Engine.Criterion)
	assert.InDelta(t, 1e-9, cfg.Engine.AbsTolerance, 1e-20)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	require.Len(t, cfg.Runs, 2)
	assert.Equal(t, "sin", cfg.Runs[0].Integrand)
	require.Len(t, cfg.Runs[0].Methods, 2)
	assert.Equal(t, "adaptive-simpson", cfg.Runs[0].Methods[1].Method)

	b, err := cfg.Runs[1].AxisBounds()
	require.NoError(t, err)
	assert.Equal(t, 3, b.Dim())
	assert.InDelta(t, 1.0, b.Volume(), 1e-15)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("runs: []\n"))
	require.NoError(t, err)

	defaults := adaptive.DefaultConfig()
	assert.Equal(t, defaults.InitialSubdivisions, cfg.Engine.InitialSubdivisions)
	assert.Equal(t, defaults.MaxIterations, cfg.Engine.MaxIterations)
	assert.Equal(t, types.DefaultMaxEvaluations, cfg.Engine.MaxEvaluations)
	assert.Equal(t, "relative", cfg.Engine.Criterion)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.Seed)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "engine: [1, 2"},
		{"zero iterations", "engine: {max_iterations: 0}"},
		{"negative budget", "engine: {max_evaluations: -1}"},
		{"unknown criterion", "engine: {criterion: absolute}"},
		{"unknown level", "log_level: trace"},
		{"missing integrand", "runs: [{bounds: [[0, 1]], methods: [{method: simpson, param: 4}]}]"},
		{"missing bounds", "runs: [{integrand: sin, methods: [{method: simpson, param: 4}]}]"},
		{"short axis", "runs: [{integrand: sin, bounds: [[0]], methods: [{method: simpson, param: 4}]}]"},
		{"reversed axis", "runs: [{integrand: sin, bounds: [[1, 0]], methods: [{method: simpson, param: 4}]}]"},
		{"no methods", "runs: [{integrand: sin, bounds: [[0, 1]]}]"},
		{"unknown method", "runs: [{integrand: sin, bounds: [[0, 1]], methods: [{method: gauss, param: 4}]}]"},
		{"zero param", "runs: [{integrand: sin, bounds: [[0, 1]], methods: [{method: simpson, param: 0}]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestValidateWrapsSentinels(t *testing.T) {
	_, err := Parse([]byte("engine: {max_iterations: 0}"))
	assert.True(t, errors.Is(err, types.ErrInvalidParameter))

	_, err = Parse([]byte("runs: [{integrand: sin, bounds: [[1, 0]], methods: [{method: simpson, param: 4}]}]"))
	assert.True(t, errors.Is(err, types.ErrInvalidBounds))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Runs, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSettings(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	settings, err := cfg.Settings(nil)
	require.NoError(t, err)
	assert.Len(t, settings.Adaptive, 6)
	assert.Len(t, settings.MonteCarlo, 1)

	cfg.Seed = nil
	settings, err = cfg.Settings(nil)
	require.NoError(t, err)
	assert.Empty(t, settings.MonteCarlo)
}

func TestEngineOptionsApply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.MaxIterations = 3
	opts, err := cfg.EngineOptions(nil)
	require.NoError(t, err)

	f := func(x []float64) float64 { return x[0] * x[0] * x[0] * x[0] }
	est, err := adaptive.Simpson(f, types.Interval(0, 1), 1e-15, opts...)
	assert.ErrorIs(t, err, types.ErrConvergenceNotGuaranteed)
	assert.Equal(t, 3, est.Iterations)

	cfg.Engine.Criterion = "bogus"
	_, err = cfg.EngineOptions(nil)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.Contains(t, buf.String(), "shown")
}
