package profile

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/pedotools/mpspline/common"
	"github.com/pedotools/mpspline/utils"
)

// missingBottomFill extends an open-ended last horizon below its
// deepest known top.
const missingBottomFill = 10.0

// CleanProperty reduces the sequence to the depth/value rows usable for
// fitting one property: rows without a finite value are dropped, a
// missing first top is set to 0 and a missing last bottom to the
// deepest top plus 10 cm, degenerate rows are removed and the rest
// sorted by depth. Overlapping rows make the property unusable.
//
// Zero or one surviving rows are not an error; the fitting layer
// substitutes an empty or broadcast-constant result for them.
func (s *Sequence) CleanProperty(ctx context.Context, property string) (tops, bottoms, values []float64, err error) {
	logger := utils.GetLogger(ctx)

	for _, h := range s.Horizons {
		v, ok := h.Value(property)
		if !ok {
			continue
		}
		tops = append(tops, h.Upper)
		bottoms = append(bottoms, h.Lower)
		values = append(values, v)
	}
	if len(values) == 0 {
		logger.Warn("all values missing for property", zap.String("property", property))
		return nil, nil, nil, nil
	}

	// fill open outer boundaries
	if math.IsNaN(tops[0]) {
		tops[0] = 0
	}
	last := len(bottoms) - 1
	if math.IsNaN(bottoms[last]) {
		deepest := tops[0]
		for _, t := range tops {
			if !math.IsNaN(t) && t > deepest {
				deepest = t
			}
		}
		bottoms[last] = deepest + missingBottomFill
	}

	n := 0
	for i := range values {
		if math.IsNaN(tops[i]) || math.IsNaN(bottoms[i]) {
			continue
		}
		if tops[i] < 0 || bottoms[i] < 0 {
			continue
		}
		if bottoms[i] <= tops[i] {
			continue
		}
		tops[n], bottoms[n], values[n] = tops[i], bottoms[i], values[i]
		n++
	}
	tops, bottoms, values = tops[:n], bottoms[:n], values[:n]

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if tops[order[a]] != tops[order[b]] {
			return tops[order[a]] < tops[order[b]]
		}
		return bottoms[order[a]] < bottoms[order[b]]
	})
	st := make([]float64, n)
	sb := make([]float64, n)
	sv := make([]float64, n)
	for i, idx := range order {
		st[i], sb[i], sv[i] = tops[idx], bottoms[idx], values[idx]
	}

	for i := 0; i+1 < n; i++ {
		if sb[i] > st[i+1] {
			logger.Warn("overlapping depth ranges detected",
				zap.String("property", property),
				zap.Float64("bottom", sb[i]), zap.Float64("nextTop", st[i+1]))
			return nil, nil, nil, fmt.Errorf("%w: overlapping depth ranges for %q",
				common.ErrorInvalidSequence, property)
		}
	}

	return st, sb, sv, nil
}
