package model

// Clip bounds predicted values to a physically plausible range.
type Clip struct {
	Lower float64
	Upper float64
}

// Apply clamps v into the clip range. NaN passes through untouched.
func (c Clip) Apply(v float64) float64 {
	if v < c.Lower {
		return c.Lower
	}
	if v > c.Upper {
		return c.Upper
	}
	return v
}

// SolveQuality tags a linear-solve result so callers can observe a
// degraded-precision fallback without the fit failing.
type SolveQuality int

const (
	SolveExact SolveQuality = iota
	SolveApproximate
)

func (q SolveQuality) String() string {
	if q == SolveApproximate {
		return "approximate"
	}
	return "exact"
}

// FitResult is the complete output of fitting one property of one
// profile: aggregates over the target intervals, the dense unit-depth
// estimate, per-input-interval means and the fit-quality scalars.
type FitResult struct {
	// EstDcm[i] is the mean of the continuous estimate over
	// TargetDepths[i]; NaN where the window has no support.
	EstDcm   []float64
	NamesDcm []string

	// Est1cm holds the continuous estimate at unit depths 0..maxDepth.
	Est1cm []float64

	// EstIcm holds the continuous estimate averaged back onto the
	// measured input intervals described by Tops/Bottoms.
	EstIcm  []float64
	Tops    []float64
	Bottoms []float64

	RMSE    float64
	RMSEIQR float64

	Quality SolveQuality
}
