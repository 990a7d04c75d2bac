package spline

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/pedotools/mpspline/model"
	"github.com/pedotools/mpspline/utils"
)

// Prediction is the continuous unit-depth estimate together with its
// aggregations onto the target intervals (dcm) and back onto the
// measured input intervals (icm).
type Prediction struct {
	Est1cm   []float64
	EstDcm   []float64
	NamesDcm []string
	EstIcm   []float64
	MaxDepth int
}

// Predict evaluates the fitted piecewise quadratic at every unit depth
// up to the profile's maximum lower boundary, clips the result and
// aggregates it onto the target intervals. Depths inside a gap between
// non-contiguous intervals get a first-order continuation from the
// upslope interval's lower edge; depths with no support at all stay NaN.
func Predict(ctx context.Context, p *Parameters, targets []model.DepthInterval, clip model.Clip) *Prediction {
	n := len(p.Tops)
	maxDepth := int(floats.Max(p.Bottoms)) + 1

	est := make([]float64, maxDepth)
	for d := 0; d < maxDepth; d++ {
		fd := float64(d)

		if h := intervalAt(p.Tops, p.Bottoms, fd); h >= 0 {
			dr := fd - p.Tops[h]
			est[d] = p.Alfa[h] + p.B0[h]*dr + p.Gamma[h]*dr*dr
			continue
		}

		prev, next := gapNeighbors(p.Tops, p.Bottoms, fd)
		if prev >= 0 && next < n {
			phi := p.Alfa[next] - p.B1[prev]*(p.Tops[next]-p.Bottoms[prev])
			est[d] = phi + p.B1[prev]*(fd-p.Bottoms[prev])
			continue
		}

		est[d] = math.NaN()
	}

	for i, v := range est {
		if !math.IsNaN(v) {
			est[i] = clip.Apply(v)
		}
	}

	estDcm := make([]float64, len(targets))
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = utils.FormatDepthName(t.Top, t.Bottom)
		estDcm[i] = windowMean(est, t.Top, t.Bottom)
	}

	estIcm := make([]float64, n)
	for i := 0; i < n; i++ {
		estIcm[i] = windowMean(est, int(p.Tops[i]), int(p.Bottoms[i]))
	}

	return &Prediction{
		Est1cm:   est,
		EstDcm:   estDcm,
		NamesDcm: names,
		EstIcm:   estIcm,
		MaxDepth: maxDepth,
	}
}

// intervalAt returns the index of the interval containing depth d
// (upper <= d < lower), or -1.
func intervalAt(tops, bottoms []float64, d float64) int {
	h := sort.Search(len(tops), func(i int) bool { return tops[i] > d }) - 1
	if h >= 0 && d < bottoms[h] {
		return h
	}
	return -1
}

// gapNeighbors returns the index of the last interval ending at or
// above depth d and the first interval starting at or below it. The
// pair brackets d only when prev >= 0 and next < n.
func gapNeighbors(tops, bottoms []float64, d float64) (prev, next int) {
	prev = sort.Search(len(bottoms), func(i int) bool { return bottoms[i] > d }) - 1
	next = sort.Search(len(tops), func(i int) bool { return tops[i] >= d })
	return prev, next
}

// windowMean is the NaN-aware mean of est over [top, min(bottom,
// len(est))). Empty or fully undefined windows yield NaN.
func windowMean(est []float64, top, bottom int) float64 {
	if top < 0 {
		top = 0
	}
	if top >= len(est) {
		return math.NaN()
	}
	if bottom > len(est) {
		bottom = len(est)
	}
	if top >= bottom {
		return math.NaN()
	}

	sum, cnt := 0.0, 0
	for _, v := range est[top:bottom] {
		if !math.IsNaN(v) {
			sum += v
			cnt++
		}
	}
	if cnt == 0 {
		return math.NaN()
	}
	return sum / float64(cnt)
}
