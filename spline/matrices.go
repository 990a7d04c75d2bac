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

// Matrices holds the linear-algebra objects derived from one depth
// pattern and smoothing parameter. Instances are immutable after
// construction and shared between fits through the cache.
type Matrices struct {
	// Z is the n x n system matrix I + 6*n*lambda*Q'R⁻¹Q.
	Z *mat.Dense
	// RInv is the inverse (or pseudo-inverse) of the (n-1) x (n-1)
	// symmetric tridiagonal smoothness matrix R.
	RInv *mat.Dense
	// Q is the (n-1) x n forward-difference operator.
	Q *mat.Dense

	// Th[i] is the thickness of interval i, Gp[i] the gap between
	// interval i and i+1 (zero when contiguous).
	Th []float64
	Gp []float64

	N       int
	Quality model.SolveQuality
}

// buildMatrices assembles R, Q and Z for the given depth pattern.
// A singular R degrades to a pseudo-inverse with a warning; only
// contract violations return an error.
func buildMatrices(ctx context.Context, tops, bottoms []float64, lambda float64) (*Matrices, error) {
	n := len(tops)
	if len(bottoms) != n {
		return nil, common.ErrorLengthMismatch
	}
	if n < MinHorizons {
		return nil, common.ErrorTooFewHorizons
	}
	if lambda <= 0 || math.IsNaN(lambda) {
		return nil, common.ErrorInvalidLambda
	}

	nb := n - 1
	th := make([]float64, n)
	for i := range th {
		th[i] = bottoms[i] - tops[i]
	}
	gp := make([]float64, nb)
	for i := range gp {
		gp[i] = tops[i+1] - bottoms[i]
	}

	r := mat.NewDense(nb, nb, nil)
	for i := 0; i < nb; i++ {
		r.Set(i, i, 2*(th[i]+th[i+1])+6*gp[i])
		if i+1 < nb {
			r.Set(i, i+1, th[i+1])
			r.Set(i+1, i, th[i+1])
		}
	}

	q := mat.NewDense(nb, n, nil)
	for i := 0; i < nb; i++ {
		q.Set(i, i, -1)
		q.Set(i, i+1, 1)
	}

	quality := model.SolveExact
	rInv := &mat.Dense{}
	if err := rInv.Inverse(r); err != nil {
		utils.GetLogger(ctx).Warn("smoothness matrix singular, using pseudo-inverse",
			zap.Int("horizons", n), zap.Error(err))
		pseudoInverse(rInv, r)
		quality = model.SolveApproximate
	}

	// Z = I + 6*n*lambda * Q' RInv Q
	var qtR mat.Dense
	qtR.Mul(q.T(), rInv)
	var qrq mat.Dense
	qrq.Mul(&qtR, q)

	c := 6 * float64(n) * lambda
	z := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := c * qrq.At(i, j)
			if i == j {
				v++
			}
			z.Set(i, j, v)
		}
	}

	return &Matrices{
		Z:       z,
		RInv:    rInv,
		Q:       q,
		Th:      th,
		Gp:      gp,
		N:       n,
		Quality: quality,
	}, nil
}

// pseudoInverse writes the Moore-Penrose pseudo-inverse of a into dst.
func pseudoInverse(dst *mat.Dense, a mat.Matrix) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		dst.Zero()
		return
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	ar, ac := a.Dims()
	larger := ar
	if ac > larger {
		larger = ac
	}
	tol := float64(larger) * s[0] * 2.220446049250313e-16
	for i := range s {
		if s[i] > tol {
			s[i] = 1 / s[i]
		} else {
			s[i] = 0
		}
	}

	var vs mat.Dense
	vs.Mul(&v, mat.NewDiagDense(len(s), s))
	dst.Mul(&vs, u.T())
}
