package model

import (
	"fmt"
	"math"
	"sort"
)

// Horizon is one measured soil layer: a depth range and the property
// values observed over it. A NaN value means the property was recorded
// as missing; a key absent from the map means it was never recorded.
type Horizon struct {
	Name   string
	Upper  float64
	Lower  float64
	Values map[string]float64
}

// Thickness returns Lower - Upper.
func (h *Horizon) Thickness() float64 {
	return h.Lower - h.Upper
}

// Value returns the property value and whether it is present and finite.
func (h *Horizon) Value(property string) (float64, bool) {
	v, ok := h.Values[property]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return v, false
	}
	return v, true
}

// DepthInterval is a caller-specified output window in cm. It is
// independent of the measured horizon boundaries.
type DepthInterval struct {
	Top    int
	Bottom int
}

func (d DepthInterval) String() string {
	return fmt.Sprintf("%d-%d cm", d.Top, d.Bottom)
}

// Component groups the horizons of one soil profile together with its
// identity. Meta carries caller metadata through to results untouched.
type Component struct {
	ID       string
	Name     string
	Meta     map[string]string
	Horizons []Horizon
}

// Properties returns the sorted union of property names across all
// horizons of the component.
func (c *Component) Properties() []string {
	seen := map[string]bool{}
	for _, h := range c.Horizons {
		for k := range h.Values {
			seen[k] = true
		}
	}
	res := make([]string, 0, len(seen))
	for k := range seen {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Record is one row of long-format harmonized output. Depth is only
// meaningful for unit-depth records; Upper/Lower only for interval
// records.
type Record struct {
	ComponentID   string
	ComponentName string
	VarName       string
	Upper         float64
	Lower         float64
	Depth         int
	Value         float64
}
