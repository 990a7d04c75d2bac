package spline

import "github.com/pedotools/mpspline/model"

const (
	// DefaultLambda is the default smoothing parameter. It enters the
	// system matrix as Z = I + 6*n*lambda*Q'R⁻¹Q, so larger values
	// weight the smoothness term more heavily.
	DefaultLambda = 0.1

	// Default prediction constraints.
	DefaultVLow  = 0.0
	DefaultVHigh = 1000.0

	// DefaultCacheSize bounds the matrix cache entry count.
	DefaultCacheSize = 1000

	// MinHorizons is the smallest profile a spline can be fitted to.
	MinHorizons = 2
)

var (
	// GlobalSoilMapDepths are the GlobalSoilMap standard output
	// intervals, totalling 200 cm.
	GlobalSoilMapDepths = []model.DepthInterval{
		{Top: 0, Bottom: 5},
		{Top: 5, Bottom: 15},
		{Top: 15, Bottom: 30},
		{Top: 30, Bottom: 60},
		{Top: 60, Bottom: 100},
		{Top: 100, Bottom: 200},
	}

	// USDAPedonDepths are the USDA soil pedon standard intervals.
	USDAPedonDepths = []model.DepthInterval{
		{Top: 0, Bottom: 5},
		{Top: 5, Bottom: 25},
		{Top: 25, Bottom: 50},
		{Top: 50, Bottom: 100},
		{Top: 100, Bottom: 200},
	}

	// ShallowDepths suit shallow-sampled surveys.
	ShallowDepths = []model.DepthInterval{
		{Top: 0, Bottom: 5},
		{Top: 5, Bottom: 15},
		{Top: 15, Bottom: 30},
		{Top: 30, Bottom: 50},
	}
)
