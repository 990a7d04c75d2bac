package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	require.Equal(t, 0.1254, FormatFloat(0.125390625, 4))
	require.Equal(t, 22.63, FormatFloat(22.6296, 2))
	require.Equal(t, 3.0, FormatFloat(2.5, 0))
	require.True(t, math.IsNaN(FormatFloat(math.NaN(), 2)))
	require.True(t, math.IsInf(FormatFloat(math.Inf(1), 2), 1))
}

func TestFormatDepthName(t *testing.T) {
	require.Equal(t, "000_005_cm", FormatDepthName(0, 5))
	require.Equal(t, "100_200_cm", FormatDepthName(100, 200))
}

func TestDepthKey(t *testing.T) {
	require.Equal(t, "clay_0_5", DepthKey("clay", 0, 5))
	require.Equal(t, "om_r_100_200", DepthKey("om_r", 100, 200))
}

func TestParseDepthKey(t *testing.T) {
	prop, top, bottom, ok := ParseDepthKey("clay_0_5")
	require.True(t, ok)
	require.Equal(t, "clay", prop)
	require.Equal(t, 0, top)
	require.Equal(t, 5, bottom)

	// property names may themselves contain underscores
	prop, top, bottom, ok = ParseDepthKey("om_r_100_200")
	require.True(t, ok)
	require.Equal(t, "om_r", prop)
	require.Equal(t, 100, top)
	require.Equal(t, 200, bottom)

	_, _, _, ok = ParseDepthKey("clay")
	require.False(t, ok)
	_, _, _, ok = ParseDepthKey("clay_a_b")
	require.False(t, ok)
}
