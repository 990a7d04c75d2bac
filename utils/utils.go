package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatFloat rounds f to the given number of decimal places. NaN and
// infinities pass through.
func FormatFloat(f float64, decimals int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(f*p) / p
}

// FormatDepthName formats a depth interval as a zero-padded label,
// e.g. FormatDepthName(0, 5) == "000_005_cm".
func FormatDepthName(top, bottom int) string {
	return fmt.Sprintf("%03d_%03d_cm", top, bottom)
}

// DepthKey formats a wide-output column name, e.g. "clay_0_5".
func DepthKey(property string, top, bottom int) string {
	return fmt.Sprintf("%s_%d_%d", property, top, bottom)
}

// ParseDepthKey splits a DepthKey back into its components. The second
// return is false when the key does not follow the convention.
func ParseDepthKey(key string) (property string, top, bottom int, ok bool) {
	i := strings.LastIndexByte(key, '_')
	if i <= 0 {
		return "", 0, 0, false
	}
	j := strings.LastIndexByte(key[:i], '_')
	if j <= 0 {
		return "", 0, 0, false
	}
	top, err1 := strconv.Atoi(key[j+1 : i])
	bottom, err2 := strconv.Atoi(key[i+1:])
	if err1 != nil || err2 != nil {
		return "", 0, 0, false
	}
	return key[:j], top, bottom, true
}
