package linkage

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"mutsig/internal/apperr"
	"mutsig/internal/divergence"
)

func euclid(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math.Sqrt(s)
}

func condensed(t *testing.T, rows int, data []float64) divergence.Condensed {
	t.Helper()
	x := mat.NewDense(rows, len(data)/rows, data)
	d, err := divergence.Pdist(context.Background(), x, euclid)
	require.NoError(t, err)
	return d
}

// scipy.cluster.hierarchy.linkage([[0],[1],[5],[6],[20]], 'ward')
func TestWardMatchesScipy(t *testing.T) {
	d := condensed(t, 5, []float64{0, 1, 5, 6, 20})
	tree, err := Ward(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, tree.Merges, 4)

	want := []Merge{
		{Left: 0, Right: 1, Distance: 1, Size: 2},
		{Left: 2, Right: 3, Distance: 1, Size: 2},
		{Left: 5, Right: 6, Distance: 5 * math.Sqrt2, Size: 4},
		{Left: 4, Right: 7, Distance: math.Sqrt(8.0/5) * 17, Size: 5},
	}
	for k := range want {
		assert.Equal(t, want[k].Left, tree.Merges[k].Left, "row %d", k)
		assert.Equal(t, want[k].Right, tree.Merges[k].Right, "row %d", k)
		assert.InDelta(t, want[k].Distance, tree.Merges[k].Distance, 1e-9, "row %d", k)
		assert.Equal(t, want[k].Size, tree.Merges[k].Size, "row %d", k)
	}
	assert.Equal(t, []int{4, 0, 1, 2, 3}, tree.Leaves())
}

func TestWardInvariants(t *testing.T) {
	d := condensed(t, 7, []float64{
		0.1, 0.9,
		0.2, 0.8,
		0.9, 0.1,
		0.5, 0.5,
		0.85, 0.2,
		0.3, 0.6,
		0.0, 1.0,
	})
	tree, err := Ward(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, tree.Merges, 6)

	for k, m := range tree.Merges {
		assert.Less(t, m.Left, m.Right)
		assert.Less(t, m.Right, 7+k, "children exist before the merge")
		if k > 0 {
			assert.GreaterOrEqual(t, m.Distance, tree.Merges[k-1].Distance)
		}
	}
	assert.Equal(t, 7, tree.Merges[5].Size)

	leaves := tree.Leaves()
	sorted := append([]int{}, leaves...)
	sort.Ints(sorted)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, sorted, "every leaf exactly once")

	z := tree.Matrix()
	r, c := z.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, float64(tree.Merges[2].Size), z.At(2, 3))
}

func TestLayout(t *testing.T) {
	d := condensed(t, 3, []float64{0, 1, 10})
	tree, err := Ward(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, tree.Merges, 2)
	assert.Equal(t, 3, d.Len())

	x, h := tree.Layout()
	require.Len(t, x, 5)
	assert.Equal(t, 0.0, h[0])
	// 0 and 1 merge first, then join 2; leaf order is [2 0 1].
	assert.Equal(t, []int{2, 0, 1}, tree.Leaves())
	assert.Equal(t, 1.5, x[3])
	assert.Equal(t, 1.0, h[3])
	assert.Equal(t, (x[2]+x[3])/2, x[4])
	assert.Greater(t, h[4], h[3])
}

func TestWardTwoObservations(t *testing.T) {
	tree, err := Ward(context.Background(), divergence.NewCondensed(2, []float64{0.3}))
	require.NoError(t, err)
	assert.Equal(t, []Merge{{Left: 0, Right: 1, Distance: 0.3, Size: 2}}, tree.Merges)
	assert.Equal(t, []int{0, 1}, tree.Leaves())
	assert.Equal(t, 2, tree.Root())
}

func TestWardRejectsBadInput(t *testing.T) {
	_, err := Ward(context.Background(), divergence.NewCondensed(1, nil))
	assert.True(t, errors.Is(err, apperr.ErrInvalidParameter))

	_, err = Ward(context.Background(), divergence.NewCondensed(3, []float64{1, math.NaN(), 2}))
	assert.True(t, errors.Is(err, apperr.ErrInvalidParameter))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Ward(ctx, divergence.NewCondensed(2, []float64{1}))
	assert.ErrorIs(t, err, context.Canceled)
}
