package spline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pedotools/mpspline/model"
)

var (
	twoTops    = []float64{0, 20}
	twoBottoms = []float64{20, 50}

	miamiTops    = []float64{0, 20, 30, 50, 80}
	miamiBottoms = []float64{20, 30, 50, 80, 120}
)

// TestBuildMatricesTwoHorizons checks the assembled system against the
// hand-computed values for a contiguous two-horizon pattern.
func TestBuildMatricesTwoHorizons(t *testing.T) {
	ctx := context.Background()
	m, err := NewCache(0).Get(ctx, twoTops, twoBottoms, 0.1)

	require.NoError(t, err)
	require.Equal(t, 2, m.N)
	require.Equal(t, []float64{20, 30}, m.Th)
	require.Equal(t, []float64{0}, m.Gp)
	require.Equal(t, model.SolveExact, m.Quality)

	// R = [100], RInv = [0.01]
	require.InDelta(t, 0.01, m.RInv.At(0, 0), 1e-12)

	// Z = I + 6*2*0.1 * Q' RInv Q
	require.InDelta(t, 1.012, m.Z.At(0, 0), 1e-12)
	require.InDelta(t, -0.012, m.Z.At(0, 1), 1e-12)
	require.InDelta(t, -0.012, m.Z.At(1, 0), 1e-12)
	require.InDelta(t, 1.012, m.Z.At(1, 1), 1e-12)
}

// TestBuildMatricesSymmetry verifies Z is square and symmetric for a
// realistic five-horizon pattern.
func TestBuildMatricesSymmetry(t *testing.T) {
	ctx := context.Background()
	m, err := NewCache(0).Get(ctx, miamiTops, miamiBottoms, 0.1)

	require.NoError(t, err)
	r, c := m.Z.Dims()
	require.Equal(t, 5, r)
	require.Equal(t, 5, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.InDelta(t, m.Z.At(j, i), m.Z.At(i, j), 1e-9)
		}
	}
}

func TestBuildMatricesContractViolations(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(0)

	_, err := cache.Get(ctx, []float64{0}, []float64{20}, 0.1)
	require.Error(t, err)

	_, err = cache.Get(ctx, twoTops, twoBottoms, 0)
	require.Error(t, err)

	_, err = cache.Get(ctx, twoTops, twoBottoms, -0.5)
	require.Error(t, err)

	_, err = cache.Get(ctx, twoTops, []float64{20}, 0.1)
	require.Error(t, err)
}

// TestCacheHit verifies that an identical pattern returns the identical
// cached object and that a cache hit matches a fresh build bit for bit.
func TestCacheHit(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(0)

	first, err := cache.Get(ctx, twoTops, twoBottoms, 0.1)
	require.NoError(t, err)

	second, err := cache.Get(ctx, twoTops, twoBottoms, 0.1)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, cache.Len())

	fresh, err := NewCache(0).Get(ctx, twoTops, twoBottoms, 0.1)
	require.NoError(t, err)
	require.Equal(t, fresh.Th, second.Th)
	require.Equal(t, fresh.Gp, second.Gp)
	require.Equal(t, fresh.Z.RawMatrix().Data, second.Z.RawMatrix().Data)
	require.Equal(t, fresh.RInv.RawMatrix().Data, second.RInv.RawMatrix().Data)
}

// TestCacheDistinguishesLambda verifies lambda is part of the key.
func TestCacheDistinguishesLambda(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(0)

	a, err := cache.Get(ctx, twoTops, twoBottoms, 0.1)
	require.NoError(t, err)
	b, err := cache.Get(ctx, twoTops, twoBottoms, 0.5)
	require.NoError(t, err)

	require.NotSame(t, a, b)
	require.Equal(t, 2, cache.Len())
}

// TestCacheEviction verifies the size bound: the least recently used
// pattern is dropped and rebuilt on the next request.
func TestCacheEviction(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(2)

	first, err := cache.Get(ctx, twoTops, twoBottoms, 0.1)
	require.NoError(t, err)

	_, err = cache.Get(ctx, miamiTops, miamiBottoms, 0.1)
	require.NoError(t, err)
	require.Equal(t, 2, cache.Len())

	// touch the first pattern so the miami pattern becomes LRU
	again, err := cache.Get(ctx, twoTops, twoBottoms, 0.1)
	require.NoError(t, err)
	require.Same(t, first, again)

	_, err = cache.Get(ctx, []float64{0, 10}, []float64{10, 40}, 0.1)
	require.NoError(t, err)
	require.Equal(t, 2, cache.Len())

	// the first pattern survived the eviction
	kept, err := cache.Get(ctx, twoTops, twoBottoms, 0.1)
	require.NoError(t, err)
	require.Same(t, first, kept)
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(0)

	_, err := cache.Get(ctx, twoTops, twoBottoms, 0.1)
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	cache.Clear()
	require.Equal(t, 0, cache.Len())
}
