package spline

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pedotools/mpspline/common"
	"github.com/pedotools/mpspline/model"
)

// TestEstimateTwoHorizons checks every derived coefficient against the
// hand-computed solution for clay 24.5/35.2 over 0-20/20-50 cm.
func TestEstimateTwoHorizons(t *testing.T) {
	ctx := context.Background()
	values := []float64{24.5, 35.2}

	p, err := Estimate(ctx, NewCache(0), twoTops, twoBottoms, values, 0.1)
	require.NoError(t, err)

	require.Len(t, p.SBar, 2)
	require.InDelta(t, 24.625390625, p.SBar[0], 1e-9)
	require.InDelta(t, 35.074609375, p.SBar[1], 1e-9)

	require.Len(t, p.B, 1)
	require.InDelta(t, 0.626953125, p.B[0], 1e-9)

	require.Equal(t, 0.0, p.B0[0])
	require.InDelta(t, 0.626953125, p.B0[1], 1e-9)
	require.InDelta(t, 0.626953125, p.B1[0], 1e-9)
	require.Equal(t, 0.0, p.B1[1])

	require.InDelta(t, 0.015673828125, p.Gamma[0], 1e-9)
	require.InDelta(t, -0.01044921875, p.Gamma[1], 1e-9)
	require.InDelta(t, 22.535546875, p.Alfa[0], 1e-9)
	require.InDelta(t, 28.805078125, p.Alfa[1], 1e-9)

	require.Equal(t, []string{"000_020_cm", "020_050_cm"}, p.Names)
	require.Equal(t, model.SolveExact, p.Quality)
}

// TestEstimateDeterministic verifies repeated estimation yields
// identical coefficients.
func TestEstimateDeterministic(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(0)
	values := []float64{24.5, 28.3, 35.2, 34.8, 28.5}

	a, err := Estimate(ctx, cache, miamiTops, miamiBottoms, values, 0.1)
	require.NoError(t, err)
	b, err := Estimate(ctx, cache, miamiTops, miamiBottoms, values, 0.1)
	require.NoError(t, err)

	require.Equal(t, a.SBar, b.SBar)
	require.Equal(t, a.Gamma, b.Gamma)
	require.Equal(t, a.Alfa, b.Alfa)
}

// TestEstimateMassPreservation: the mean of the fitted quadratic over
// each interval reproduces the smoothed knot value.
func TestEstimateMassPreservation(t *testing.T) {
	ctx := context.Background()
	values := []float64{24.5, 28.3, 35.2, 34.8, 28.5}

	p, err := Estimate(ctx, NewCache(0), miamiTops, miamiBottoms, values, 0.1)
	require.NoError(t, err)

	for i := range p.SBar {
		th := p.Th[i]
		mean := p.Alfa[i] + p.B0[i]*th/2 + p.Gamma[i]*th*th/3
		require.InDelta(t, p.SBar[i], mean, 1e-9)
	}
}

func TestEstimateContractViolations(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(0)

	_, err := Estimate(ctx, cache, twoTops, twoBottoms, []float64{24.5}, 0.1)
	require.ErrorIs(t, err, common.ErrorLengthMismatch)

	_, err = Estimate(ctx, cache, twoTops, twoBottoms, []float64{24.5, math.NaN()}, 0.1)
	require.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = Estimate(ctx, cache, twoTops, twoBottoms, []float64{24.5, math.Inf(1)}, 0.1)
	require.ErrorIs(t, err, common.ErrorInvalidValue)
}
