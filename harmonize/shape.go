package harmonize

import (
	"fmt"

	"github.com/pedotools/mpspline/model"
	"github.com/pedotools/mpspline/utils"
)

// shape maps one property's fit into the configured mode and layout.
func (h *Harmonizer) shape(res *Result, prop string, fit *model.FitResult) {
	switch h.opts.Layout {
	case LayoutWide:
		h.shapeWide(res, prop, fit)
	default:
		h.shapeLong(res, prop, fit)
	}
}

func (h *Harmonizer) shapeLong(res *Result, prop string, fit *model.FitResult) {
	switch h.opts.Mode {
	case Mode1cm:
		for d, v := range fit.Est1cm {
			res.Records = append(res.Records, model.Record{
				ComponentID:   res.ComponentID,
				ComponentName: res.ComponentName,
				VarName:       prop,
				Depth:         d,
				Value:         v,
			})
		}
	case ModeIcm:
		for i, v := range fit.EstIcm {
			res.Records = append(res.Records, model.Record{
				ComponentID:   res.ComponentID,
				ComponentName: res.ComponentName,
				VarName:       prop,
				Upper:         fit.Tops[i],
				Lower:         fit.Bottoms[i],
				Value:         v,
			})
		}
	default:
		for i, t := range h.opts.TargetDepths {
			res.Records = append(res.Records, model.Record{
				ComponentID:   res.ComponentID,
				ComponentName: res.ComponentName,
				VarName:       prop,
				Upper:         float64(t.Top),
				Lower:         float64(t.Bottom),
				Value:         fit.EstDcm[i],
			})
		}
	}
}

func (h *Harmonizer) shapeWide(res *Result, prop string, fit *model.FitResult) {
	switch h.opts.Mode {
	case Mode1cm:
		for d, v := range fit.Est1cm {
			res.Wide[fmt.Sprintf("%s_%dcm", prop, d)] = v
		}
	case ModeIcm:
		for i, v := range fit.EstIcm {
			res.Wide[utils.DepthKey(prop, int(fit.Tops[i]), int(fit.Bottoms[i]))] = v
		}
	default:
		for i, t := range h.opts.TargetDepths {
			res.Wide[utils.DepthKey(prop, t.Top, t.Bottom)] = fit.EstDcm[i]
		}
	}
}
