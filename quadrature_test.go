package quadrature_test

import (
	"math"
	"quadrature"
	"quadrature/adaptive"
	"quadrature/maths"
	"quadrature/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidBounds(t *testing.T) {
	_, err := quadrature.New(math.Sin, 1, 1)
	assert.ErrorIs(t, err, types.ErrInvalidBounds)

	_, err = quadrature.New(math.Sin, 2, 1)
	assert.ErrorIs(t, err, types.ErrInvalidBounds)

	_, err = quadrature.NewND(func([]float64) float64 { return 1 }, types.Bounds{{Lower: 0, Upper: 1}, {Lower: 0, Upper: math.Inf(1)}})
	assert.ErrorIs(t, err, types.ErrInvalidBounds)

	_, err = quadrature.New(nil, 0, 1)
	assert.ErrorIs(t, err, types.ErrNilIntegrand)
}

func TestIntegral_Methods1D(t *testing.T) {
	in, err := quadrature.New(func(x float64) float64 { return x * x }, 0, 10)
	require.NoError(t, err)
	want := 1000.0 / 3

	mid, err := in.CompositeMidpoint(200)
	require.NoError(t, err)
	assert.InDelta(t, want, mid, 1e-2)

	simp, err := in.CompositeSimpson(1)
	require.NoError(t, err)
	assert.InDelta(t, want, simp, 1e-10)

	mc, err := in.MonteCarlo(50000, maths.WithSeed(3))
	require.NoError(t, err)
	assert.InEpsilon(t, want, mc, 0.05)

	est, err := in.AdaptiveCompositeMidpoint(0.001)
	require.NoError(t, err)
	assert.True(t, est.Converged)
	assert.InEpsilon(t, want, est.Value, 0.005)

	est, err = in.AdaptiveCompositeSimpson(0.001)
	require.NoError(t, err)
	assert.Equal(t, 1, est.Iterations)
	assert.InDelta(t, want, est.Value, 1e-10)
}

func TestIntegral_MethodsND(t *testing.T) {
	f := func(p []float64) float64 { return math.Sin(p[0] + p[1]) }
	in, err := quadrature.NewND(f, types.Box(0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, in.Dim())
	// ∫∫ sin(x+y) = 2 sin 1 − sin 2
	want := 2*math.Sin(1) - math.Sin(2)

	simp, err := in.CompositeSimpson(8)
	require.NoError(t, err)
	assert.InDelta(t, want, simp, 1e-6)

	est, err := in.AdaptiveCompositeSimpson(1e-6, adaptive.WithMaxIterations(10))
	require.NoError(t, err)
	assert.InEpsilon(t, want, est.Value, 1e-5)
}

func TestIntegral_BoundsImmutable(t *testing.T) {
	b := types.Box(0, 1, 2)
	in, err := quadrature.NewND(func([]float64) float64 { return 1 }, b)
	require.NoError(t, err)

	b[0].Upper = 5
	got := in.Bounds()
	got[1].Upper = 7

	v, err := in.CompositeMidpoint(3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)
}

func TestIntegral_InvalidParameters(t *testing.T) {
	in, err := quadrature.New(math.Exp, 0, 1)
	require.NoError(t, err)

	_, err = in.CompositeMidpoint(0)
	assert.ErrorIs(t, err, types.ErrInvalidSubdivision)
	_, err = in.CompositeSimpson(-2)
	assert.ErrorIs(t, err, types.ErrInvalidSubdivision)
	_, err = in.MonteCarlo(0)
	assert.ErrorIs(t, err, types.ErrInvalidSampleCount)
	_, err = in.AdaptiveCompositeMidpoint(0)
	assert.ErrorIs(t, err, types.ErrInvalidTolerance)
	_, err = in.AdaptiveCompositeSimpson(-1)
	assert.ErrorIs(t, err, types.ErrInvalidTolerance)
}

func TestIntegral_Evaluate(t *testing.T) {
	in, err := quadrature.NewND(func(p []float64) float64 { return p[0] * p[1] }, types.Box(0, 2, 2))
	require.NoError(t, err)

	est, err := in.Evaluate(types.MethodSimpson, 2, quadrature.Settings{})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, est.Value, 1e-12)
	assert.Equal(t, 25, est.Evaluations)

	est, err = in.Evaluate(types.MethodMidpoint, 3, quadrature.Settings{})
	require.NoError(t, err)
	assert.Equal(t, 9, est.Evaluations)

	est, err = in.Evaluate(types.MethodMonteCarlo, 100, quadrature.Settings{
		MonteCarlo: []maths.MonteCarloOption{maths.WithSeed(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, est.Evaluations)

	est, err = in.Evaluate(types.MethodAdaptiveSimpson, 1e-9, quadrature.Settings{})
	require.NoError(t, err)
	assert.True(t, est.Converged)

	_, err = in.Evaluate(types.MethodMidpoint, 2.5, quadrature.Settings{})
	assert.ErrorIs(t, err, types.ErrInvalidParameter)

	_, err = in.Evaluate(types.MethodUnknown, 2, quadrature.Settings{})
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}

func TestIntegral_ConvergenceNotGuaranteed(t *testing.T) {
	in, err := quadrature.New(func(x float64) float64 { return math.Sin(500 * x) }, 0, 3)
	require.NoError(t, err)

	est, err := in.AdaptiveCompositeSimpson(1e-12, adaptive.WithMaxIterations(2))
	assert.ErrorIs(t, err, types.ErrConvergenceNotGuaranteed)
	assert.False(t, est.Converged)
	assert.Equal(t, 4, est.Subdivisions)
}
