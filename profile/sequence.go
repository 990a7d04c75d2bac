package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pedotools/mpspline/common"
	"github.com/pedotools/mpspline/model"
)

// Sequence is a validated horizon sequence ready for per-property
// extraction and cleaning.
type Sequence struct {
	Horizons   []model.Horizon
	MaxDepth   float64
	Properties []string
}

// NewSequence validates the horizons and, when they pass, returns a
// sorted copy with the property inventory computed. Validation errors
// wrap common.ErrorInvalidSequence.
func NewSequence(ctx context.Context, horizons []model.Horizon, strict bool) (*Sequence, error) {
	v := ValidateSequence(ctx, horizons, strict)
	if !v.Valid {
		return nil, fmt.Errorf("%w: %s", common.ErrorInvalidSequence, strings.Join(v.Errors, "; "))
	}

	ordered := append([]model.Horizon(nil), horizons...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Upper != ordered[j].Upper {
			return ordered[i].Upper < ordered[j].Upper
		}
		return ordered[i].Lower < ordered[j].Lower
	})

	seen := map[string]bool{}
	for _, h := range ordered {
		for k := range h.Values {
			seen[k] = true
		}
	}
	props := make([]string, 0, len(seen))
	for k := range seen {
		props = append(props, k)
	}
	sort.Strings(props)

	return &Sequence{
		Horizons:   ordered,
		MaxDepth:   float64(v.MaxDepth),
		Properties: props,
	}, nil
}

// HasProperty reports whether any horizon carries the property.
func (s *Sequence) HasProperty(name string) bool {
	for _, p := range s.Properties {
		if p == name {
			return true
		}
	}
	return false
}
