package profile

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pedotools/mpspline/model"
	"github.com/pedotools/mpspline/spline"
	"github.com/pedotools/mpspline/utils"
)

// Depth sanity bounds in cm.
const (
	MinDepthTop         = 0.0
	MaxHorizonDepth     = 400.0
	MinHorizonThickness = 1.0
	TypicalMaxDepth     = 200.0
)

// ValidationResult collects the findings of a horizon-sequence check.
// Errors make the sequence unusable; warnings do not.
type ValidationResult struct {
	Valid        bool
	Errors       []string
	Warnings     []string
	HorizonCount int
	MaxDepth     int
}

func (r *ValidationResult) String() string {
	status := "valid"
	if !r.Valid {
		status = "invalid"
	}
	msg := fmt.Sprintf("%s (%d horizons, depth %d cm)", status, r.HorizonCount, r.MaxDepth)
	if len(r.Warnings) > 0 {
		msg += "; warnings: " + strings.Join(r.Warnings, "; ")
	}
	if len(r.Errors) > 0 {
		msg += "; errors: " + strings.Join(r.Errors, "; ")
	}
	return msg
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateSequence checks a horizon sequence before fitting: horizon
// count, depth logic per horizon, property value sanity, and adjacency
// (gaps and overlaps are reported as warnings — the fitting engine
// handles gaps, and cleaning rejects overlaps per property). Horizons
// with NaN boundaries pass the depth checks here; boundary filling is
// the cleaning step's job.
func ValidateSequence(ctx context.Context, horizons []model.Horizon, strict bool) *ValidationResult {
	res := &ValidationResult{Valid: true}

	if len(horizons) == 0 {
		res.addError("no horizons provided")
		return res
	}
	if len(horizons) < spline.MinHorizons {
		res.addError("insufficient horizons: %d provided, minimum %d required",
			len(horizons), spline.MinHorizons)
		return res
	}
	res.HorizonCount = len(horizons)

	for i, h := range horizons {
		name := h.Name
		if name == "" {
			name = fmt.Sprintf("H%d", i+1)
		}

		topKnown := !math.IsNaN(h.Upper)
		bottomKnown := !math.IsNaN(h.Lower)

		if topKnown && h.Upper < MinDepthTop {
			res.addError("horizon %q (index %d) has negative depth top: %g cm", name, i, h.Upper)
		}
		if topKnown && bottomKnown {
			if h.Lower <= h.Upper {
				res.addError("horizon %q (index %d) depth inverted or equal: %g-%g cm",
					name, i, h.Upper, h.Lower)
			} else if h.Lower-h.Upper < MinHorizonThickness {
				res.addWarning("horizon %q (index %d) very thin: %g cm", name, i, h.Lower-h.Upper)
			}
		}
		if bottomKnown && h.Lower > MaxHorizonDepth {
			if strict {
				res.addError("horizon %q (index %d) exceeds max depth: %g cm", name, i, h.Lower)
			} else {
				res.addWarning("horizon %q (index %d) exceeds typical depth: %g cm", name, i, h.Lower)
			}
		}

		for prop, v := range h.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				res.addWarning("horizon %q property %q is %v", name, prop, v)
			}
		}
	}

	if res.Valid {
		ordered := append([]model.Horizon(nil), horizons...)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Upper < ordered[j].Upper })

		for i := 0; i+1 < len(ordered); i++ {
			a, b := ordered[i], ordered[i+1]
			if math.IsNaN(a.Lower) || math.IsNaN(b.Upper) {
				continue
			}
			gap := b.Upper - a.Lower
			if gap > 0 {
				res.addWarning("gap between horizons %q (bottom %g cm) and %q (top %g cm): %g cm",
					a.Name, a.Lower, b.Name, b.Upper, gap)
			} else if gap < 0 {
				res.addWarning("overlap between horizons %q (%g cm) and %q (%g cm): %g cm",
					a.Name, a.Lower, b.Name, b.Upper, -gap)
			}
		}
	}

	maxDepth := 0.0
	for _, h := range horizons {
		if !math.IsNaN(h.Lower) && h.Lower > maxDepth {
			maxDepth = h.Lower
		}
	}
	res.MaxDepth = int(maxDepth)
	if maxDepth > TypicalMaxDepth {
		res.addWarning("maximum depth %d cm exceeds typical %g cm", res.MaxDepth, TypicalMaxDepth)
	}

	if len(res.Warnings) > 0 {
		utils.GetLogger(ctx).Warn("horizon sequence findings",
			zap.Int("horizons", res.HorizonCount),
			zap.Strings("warnings", res.Warnings))
	}

	return res
}
