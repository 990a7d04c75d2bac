package harmonize

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pedotools/mpspline/common"
	"github.com/pedotools/mpspline/model"
	"github.com/pedotools/mpspline/profile"
	"github.com/pedotools/mpspline/spline"
	"github.com/pedotools/mpspline/utils"
)

// Mode selects the depth granularity of the output.
type Mode string

const (
	// ModeDcm aggregates onto the configured target intervals.
	ModeDcm Mode = "dcm"
	// Mode1cm emits the continuous estimate at every unit depth.
	Mode1cm Mode = "1cm"
	// ModeIcm aggregates back onto the measured input intervals.
	ModeIcm Mode = "icm"
)

// Layout selects the record shape of the output.
type Layout string

const (
	LayoutLong Layout = "long"
	LayoutWide Layout = "wide"
)

// Options configure a Harmonizer. Zero values select the defaults:
// lambda 0.1, clip [0, 1000], GlobalSoilMap depths, all properties,
// long dcm output, non-strict error handling.
type Options struct {
	Lambda       float64
	Clip         *model.Clip
	TargetDepths []model.DepthInterval

	// Properties restricts which properties are fitted; nil means
	// every property found on the component.
	Properties []string

	// Strict makes validation and fit errors fail the call instead of
	// skipping the offending component or property with a warning.
	Strict bool

	Mode   Mode
	Layout Layout

	// CacheSize bounds the shared matrix cache (default 1000).
	CacheSize int
}

func (o Options) normalize() Options {
	if o.Mode == "" {
		o.Mode = ModeDcm
	}
	if o.Layout == "" {
		o.Layout = LayoutLong
	}
	if o.Lambda == 0 {
		o.Lambda = spline.DefaultLambda
	}
	if o.Clip == nil {
		o.Clip = &model.Clip{Lower: spline.DefaultVLow, Upper: spline.DefaultVHigh}
	}
	if len(o.TargetDepths) == 0 {
		o.TargetDepths = spline.GlobalSoilMapDepths
	}
	return o
}

// Result is the harmonized output for one component. Records is
// populated for the long layout, Wide for the wide layout; Fits keeps
// the raw per-property fit for downstream consumers either way.
type Result struct {
	ComponentID   string
	ComponentName string
	Meta          map[string]string

	Records []model.Record
	Wide    map[string]float64

	Fits map[string]*model.FitResult
}

// Harmonizer converts components with irregular horizons into
// fixed-depth records. One matrix cache is shared across all
// components handled by the same Harmonizer, so surveys with common
// reference depths reuse their factorizations.
type Harmonizer struct {
	opts  Options
	cache *spline.Cache
}

func New(opts Options) *Harmonizer {
	opts = opts.normalize()
	return &Harmonizer{
		opts:  opts,
		cache: spline.NewCache(opts.CacheSize),
	}
}

// HarmonizeOne fits and shapes a single component. With Strict unset,
// an unusable component yields an empty Result and unusable properties
// are skipped, both with a warning; Strict turns those into errors.
func (h *Harmonizer) HarmonizeOne(ctx context.Context, comp *model.Component) (res *Result, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("harmonize recovered from panic",
				zap.Any("err", r),
				zap.String("componentID", comp.ID),
				zap.String("panic info", utils.GetPanicInfo()))
			res, err = nil, fmt.Errorf("harmonize %s: panic: %v", comp.ID, r)
		}
	}()

	res = &Result{
		ComponentID:   comp.ID,
		ComponentName: comp.Name,
		Meta:          comp.Meta,
		Fits:          map[string]*model.FitResult{},
	}
	if h.opts.Layout == LayoutWide {
		res.Wide = map[string]float64{}
	}

	seq, err := profile.NewSequence(ctx, comp.Horizons, h.opts.Strict)
	if err != nil {
		if h.opts.Strict {
			return nil, err
		}
		logger.Warn("skipping component with invalid horizon sequence",
			zap.String("componentID", comp.ID), zap.Error(err))
		return res, nil
	}

	for _, prop := range h.selectProperties(seq) {
		fit, err := h.fitProperty(ctx, seq, prop)
		if err != nil {
			if h.opts.Strict {
				return nil, fmt.Errorf("component %s property %s: %w", comp.ID, prop, err)
			}
			logger.Warn("skipping property",
				zap.String("componentID", comp.ID),
				zap.String("property", prop), zap.Error(err))
			continue
		}
		res.Fits[prop] = fit
		h.shape(res, prop, fit)
	}

	return res, nil
}

func (h *Harmonizer) selectProperties(seq *profile.Sequence) []string {
	if h.opts.Properties == nil {
		return seq.Properties
	}
	props := make([]string, 0, len(h.opts.Properties))
	for _, p := range h.opts.Properties {
		if seq.HasProperty(p) {
			props = append(props, p)
		}
	}
	return props
}

func (h *Harmonizer) fitProperty(ctx context.Context, seq *profile.Sequence, prop string) (*model.FitResult, error) {
	tops, bottoms, values, err := seq.CleanProperty(ctx, prop)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidSequence) && !h.opts.Strict {
			// unusable rows degrade to an all-NaN estimate
			tops, bottoms, values = nil, nil, nil
		} else {
			return nil, err
		}
	}
	return spline.Fit(ctx, h.cache, tops, bottoms, values, spline.Options{
		Lambda:       h.opts.Lambda,
		Clip:         h.opts.Clip,
		TargetDepths: h.opts.TargetDepths,
	})
}
