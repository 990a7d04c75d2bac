package harmonize

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pedotools/mpspline/model"
)

func batchComponents() []*model.Component {
	bad := &model.Component{
		ID: "bad",
		Horizons: []model.Horizon{
			{Name: "Ap", Upper: 0, Lower: 20, Values: map[string]float64{"clay": 25.0}},
		},
	}
	return []*model.Component{simpleComponent(), miamiComponent(), bad}
}

func TestHarmonizeAll(t *testing.T) {
	h := New(Options{Properties: []string{"clay"}})
	results, err := h.HarmonizeAll(context.Background(), batchComponents())
	require.NoError(t, err)

	require.Len(t, results, 3)
	require.Equal(t, "1234", results[0].ComponentID)
	require.Equal(t, "1234567", results[1].ComponentID)
	require.Len(t, results[0].Records, 6)
	require.Len(t, results[1].Records, 6)

	// the single-horizon component comes back empty, not nil
	require.NotNil(t, results[2])
	require.Empty(t, results[2].Records)
}

func TestHarmonizeAllStrict(t *testing.T) {
	h := New(Options{Properties: []string{"clay"}, Strict: true})
	_, err := h.HarmonizeAll(context.Background(), batchComponents())
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad")
}

// TestHarmonizeAllSharesCache: the miami and simple profiles have
// different depth patterns, so the shared cache ends up with one entry
// per pattern, not per component.
func TestHarmonizeAllSharesCache(t *testing.T) {
	h := New(Options{Properties: []string{"clay", "sand"}})
	comps := []*model.Component{simpleComponent(), simpleComponent(), miamiComponent()}

	_, err := h.HarmonizeAll(context.Background(), comps)
	require.NoError(t, err)
	require.Equal(t, 2, h.cache.Len())
}

// TestHarmonizeParallelMatchesSequential: fan-out must not change the
// numbers or the ordering.
func TestHarmonizeParallelMatchesSequential(t *testing.T) {
	comps := batchComponents()

	seq, err := New(Options{Properties: []string{"clay"}}).HarmonizeAll(context.Background(), comps)
	require.NoError(t, err)

	par, err := New(Options{Properties: []string{"clay"}}).HarmonizeParallel(context.Background(), comps, 2)
	require.NoError(t, err)

	require.Len(t, par, len(seq))
	for i := range seq {
		require.Equal(t, seq[i].ComponentID, par[i].ComponentID)
		require.Len(t, par[i].Records, len(seq[i].Records))
		for j := range seq[i].Records {
			a, b := seq[i].Records[j], par[i].Records[j]
			require.Equal(t, a.VarName, b.VarName)
			require.Equal(t, a.Upper, b.Upper)
			require.Equal(t, a.Lower, b.Lower)
			if math.IsNaN(a.Value) {
				require.True(t, math.IsNaN(b.Value))
			} else {
				require.Equal(t, a.Value, b.Value)
			}
		}
	}
}

func TestHarmonizeParallelStrict(t *testing.T) {
	h := New(Options{Properties: []string{"clay"}, Strict: true})
	_, err := h.HarmonizeParallel(context.Background(), batchComponents(), 2)
	require.Error(t, err)
}

// TestHarmonizeParallelSingleWorker degenerates to the sequential path.
func TestHarmonizeParallelSingleWorker(t *testing.T) {
	h := New(Options{Properties: []string{"clay"}})
	results, err := h.HarmonizeParallel(context.Background(), []*model.Component{simpleComponent()}, 4)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Records, 6)
}
