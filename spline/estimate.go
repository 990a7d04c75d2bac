package spline

import (
	"context"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/pedotools/mpspline/common"
	"github.com/pedotools/mpspline/model"
	"github.com/pedotools/mpspline/utils"
)

// Parameters are the estimated spline coefficients for one profile and
// one property. Depth d inside interval i, measured from the interval's
// upper boundary, evaluates to Alfa[i] + B0[i]*d + Gamma[i]*d².
type Parameters struct {
	// SBar are the smoothed knot values, the solution of Z*sBar = values.
	SBar []float64
	// B is the curvature at each of the n-1 internal knots. B0 and B1
	// extend it to each interval's upper and lower edge; the profile's
	// outermost edges have zero curvature by construction.
	B  []float64
	B0 []float64
	B1 []float64

	Gamma []float64
	Alfa  []float64

	Tops    []float64
	Bottoms []float64
	Th      []float64
	Names   []string

	Quality model.SolveQuality
}

// Estimate solves for the smoothed knot values and derives the
// per-interval quadratic coefficients. Values must be finite and one
// per interval; numerically degenerate systems degrade to a
// least-squares solution instead of failing.
func Estimate(ctx context.Context, cache *Cache, tops, bottoms, values []float64, lambda float64) (*Parameters, error) {
	if len(values) != len(tops) || len(tops) != len(bottoms) {
		return nil, common.ErrorLengthMismatch
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, common.ErrorInvalidValue
		}
	}

	m, err := cache.Get(ctx, tops, bottoms, lambda)
	if err != nil {
		return nil, err
	}

	n := m.N
	quality := m.Quality

	y := mat.NewVecDense(n, nil)
	for i, v := range values {
		y.SetVec(i, v)
	}

	var sVec mat.VecDense
	if err := sVec.SolveVec(m.Z, y); err != nil {
		utils.GetLogger(ctx).Warn("system matrix singular, falling back to least squares",
			zap.Int("horizons", n), zap.Error(err))
		var zInv mat.Dense
		pseudoInverse(&zInv, m.Z)
		sVec.Reset()
		sVec.MulVec(&zInv, y)
		quality = model.SolveApproximate
	}

	sBar := make([]float64, n)
	for i := range sBar {
		sBar[i] = sVec.AtVec(i)
	}

	// b = 6 * RInv * Q * sBar
	var qs, bVec mat.VecDense
	qs.MulVec(m.Q, &sVec)
	bVec.MulVec(m.RInv, &qs)

	b := make([]float64, n-1)
	for i := range b {
		b[i] = 6 * bVec.AtVec(i)
	}

	b0 := make([]float64, n)
	b1 := make([]float64, n)
	copy(b0[1:], b)
	copy(b1[:n-1], b)

	gamma := make([]float64, n)
	alfa := make([]float64, n)
	names := make([]string, n)
	for i := 0; i < n; i++ {
		gamma[i] = (b1[i] - b0[i]) / (2 * m.Th[i])
		alfa[i] = sBar[i] - b0[i]*m.Th[i]/2 - gamma[i]*m.Th[i]*m.Th[i]/3
		names[i] = utils.FormatDepthName(int(tops[i]), int(bottoms[i]))
	}

	return &Parameters{
		SBar:    sBar,
		B:       b,
		B0:      b0,
		B1:      b1,
		Gamma:   gamma,
		Alfa:    alfa,
		Tops:    append([]float64(nil), tops...),
		Bottoms: append([]float64(nil), bottoms...),
		Th:      m.Th,
		Names:   names,
		Quality: quality,
	}, nil
}
