package spline

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/pedotools/mpspline/common"
	"github.com/pedotools/mpspline/model"
	"github.com/pedotools/mpspline/utils"
)

// Options configure a fit. The zero value selects the defaults:
// lambda 0.1, clip [0, 1000], GlobalSoilMap target depths.
type Options struct {
	Lambda       float64
	Clip         *model.Clip
	TargetDepths []model.DepthInterval
}

func (o Options) normalize() Options {
	if o.Lambda == 0 {
		o.Lambda = DefaultLambda
	}
	if o.Clip == nil {
		o.Clip = &model.Clip{Lower: DefaultVLow, Upper: DefaultVHigh}
	}
	if len(o.TargetDepths) == 0 {
		o.TargetDepths = GlobalSoilMapDepths
	}
	return o
}

// Fit runs the full estimate-predict-residuals pipeline for one
// property of one profile. Input rows must be sorted and
// non-overlapping; rows whose value is NaN are dropped here.
//
// Profiles reduced to a single usable row cannot carry a spline and
// broadcast that row's value to every target with zero fit error.
// Profiles with no usable rows produce an all-NaN result. Neither case
// is an error.
func Fit(ctx context.Context, cache *Cache, tops, bottoms, values []float64, opts Options) (*model.FitResult, error) {
	if len(values) != len(tops) || len(tops) != len(bottoms) {
		return nil, common.ErrorLengthMismatch
	}
	opts = opts.normalize()
	if opts.Lambda < 0 {
		return nil, common.ErrorInvalidLambda
	}

	ft := make([]float64, 0, len(tops))
	fb := make([]float64, 0, len(bottoms))
	fv := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		ft = append(ft, tops[i])
		fb = append(fb, bottoms[i])
		fv = append(fv, v)
	}

	switch len(fv) {
	case 0:
		utils.GetLogger(ctx).Warn("no usable horizon values, returning empty estimate")
		return emptyResult(opts.TargetDepths), nil
	case 1:
		return broadcastResult(ft[0], fb[0], fv[0], opts.TargetDepths), nil
	}

	params, err := Estimate(ctx, cache, ft, fb, fv, opts.Lambda)
	if err != nil {
		return nil, err
	}

	pred := Predict(ctx, params, opts.TargetDepths, *opts.Clip)
	rmse, rmseIQR := Residuals(fv, params.SBar)

	utils.GetLogger(ctx).Debug("spline fit complete",
		zap.Int("horizons", len(fv)),
		zap.Int("maxDepth", pred.MaxDepth),
		zap.Float64("rmse", utils.FormatFloat(rmse, 4)),
		zap.String("quality", params.Quality.String()))

	return &model.FitResult{
		EstDcm:   pred.EstDcm,
		NamesDcm: pred.NamesDcm,
		Est1cm:   pred.Est1cm,
		EstIcm:   pred.EstIcm,
		Tops:     params.Tops,
		Bottoms:  params.Bottoms,
		RMSE:     rmse,
		RMSEIQR:  rmseIQR,
		Quality:  params.Quality,
	}, nil
}

func emptyResult(targets []model.DepthInterval) *model.FitResult {
	est := make([]float64, len(targets))
	names := make([]string, len(targets))
	for i, t := range targets {
		est[i] = math.NaN()
		names[i] = utils.FormatDepthName(t.Top, t.Bottom)
	}
	return &model.FitResult{
		EstDcm:   est,
		NamesDcm: names,
		Est1cm:   []float64{},
		EstIcm:   []float64{},
		RMSE:     math.NaN(),
		RMSEIQR:  math.NaN(),
	}
}

// broadcastResult stands in for a spline when only one interval carries
// a value: the single observation covers every target exactly.
func broadcastResult(top, bottom, value float64, targets []model.DepthInterval) *model.FitResult {
	est := make([]float64, len(targets))
	names := make([]string, len(targets))
	for i, t := range targets {
		est[i] = value
		names[i] = utils.FormatDepthName(t.Top, t.Bottom)
	}
	unit := make([]float64, int(bottom))
	for i := range unit {
		unit[i] = value
	}
	return &model.FitResult{
		EstDcm:   est,
		NamesDcm: names,
		Est1cm:   unit,
		EstIcm:   []float64{value},
		Tops:     []float64{top},
		Bottoms:  []float64{bottom},
		RMSE:     0,
		RMSEIQR:  0,
	}
}
