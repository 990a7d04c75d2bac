package spline

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Residuals compares the observed interval values with the smoothed
// knot values. Positions where either side is NaN are dropped; with no
// pairs left both results are NaN. The second result scales the RMSE by
// the interquartile range of the observations, making fit error
// comparable across profiles of different magnitude; it is NaN when the
// IQR is zero.
func Residuals(observed, fitted []float64) (rmse, rmseIQR float64) {
	n := len(observed)
	if len(fitted) < n {
		n = len(fitted)
	}

	var se float64
	kept := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(observed[i]) || math.IsNaN(fitted[i]) {
			continue
		}
		d := observed[i] - fitted[i]
		se += d * d
		kept = append(kept, observed[i])
	}

	if len(kept) == 0 {
		return math.NaN(), math.NaN()
	}

	rmse = math.Sqrt(se / float64(len(kept)))

	sort.Float64s(kept)
	iqr := stat.Quantile(0.75, stat.Empirical, kept, nil) -
		stat.Quantile(0.25, stat.Empirical, kept, nil)
	if iqr > 0 {
		return rmse, rmse / iqr
	}
	return rmse, math.NaN()
}
