// internal/linkage/linkage.go
//
// Package linkage performs agglomerative hierarchical clustering over a
// condensed distance vector and exposes the merge tree in the layout scipy
// uses: row k merges clusters Left < Right into the new cluster n+k, at
// Distance, with Size original observations below it.
package linkage

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"mutsig/internal/apperr"
	"mutsig/internal/divergence"
)

// Merge is one agglomeration step.
type Merge struct {
	Left, Right int
	Distance    float64
	Size        int
}

// Tree is the result of clustering n observations: n-1 merges with
// non-decreasing distances.
type Tree struct {
	n      int
	Merges []Merge
}

// N returns the number of observations (leaves).
func (t *Tree) N() int { return t.n }

// Root returns the id of the last cluster formed.
func (t *Tree) Root() int { return 2*t.n - 2 }

// Matrix returns the (n-1)×4 linkage matrix [left right distance size].
func (t *Tree) Matrix() *mat.Dense {
	z := mat.NewDense(len(t.Merges), 4, nil)
	for k, m := range t.Merges {
		z.SetRow(k, []float64{float64(m.Left), float64(m.Right), m.Distance, float64(m.Size)})
	}
	return z
}

// children returns the two clusters merged into id (id ≥ n).
func (t *Tree) children(id int) (int, int) {
	m := t.Merges[id-t.n]
	return m.Left, m.Right
}

// Leaves returns observation indices in dendrogram order: a pre-order walk
// from the root visiting Left before Right.
func (t *Tree) Leaves() []int {
	if t.n == 0 {
		return nil
	}
	if t.n == 1 {
		return []int{0}
	}
	out := make([]int, 0, t.n)
	stack := []int{t.Root()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id < t.n {
			out = append(out, id)
			continue
		}
		l, r := t.children(id)
		stack = append(stack, r, l)
	}
	return out
}

// Layout positions every cluster id for drawing a dendrogram: leaves sit at
// their rank in Leaves() with height 0, merged clusters sit midway between
// their children at their merge distance.
func (t *Tree) Layout() (x, height []float64) {
	x = make([]float64, 2*t.n-1)
	height = make([]float64, 2*t.n-1)
	for pos, leaf := range t.Leaves() {
		x[leaf] = float64(pos)
	}
	for k, m := range t.Merges {
		id := t.n + k
		x[id] = (x[m.Left] + x[m.Right]) / 2
		height[id] = m.Distance
	}
	return x, height
}

// Ward clusters with Ward's minimum-variance criterion, updating
// inter-cluster distances with the Lance-Williams recurrence
//
//	d(k, i∪j) = sqrt(((n_i+n_k)·d(k,i)² + (n_j+n_k)·d(k,j)² − n_k·d(i,j)²) / (n_i+n_j+n_k))
//
// applied to the given distances. Ties go to the first pair in row-major order.
func Ward(ctx context.Context, d divergence.Condensed) (*Tree, error) {
	n := d.N()
	if n < 2 {
		return nil, apperr.InvalidParameter("clustering needs at least 2 observations, got %d", n)
	}
	for k, v := range d.D {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, apperr.InvalidParameter("distance vector holds a non-finite value at position %d", k)
		}
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = d.At(i, j)
		}
	}
	id := make([]int, n)
	size := make([]int, n)
	active := make([]bool, n)
	for i := range id {
		id[i], size[i], active[i] = i, 1, true
	}

	t := &Tree{n: n, Merges: make([]Merge, 0, n-1)}
	for step := 0; step < n-1; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, b := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if active[j] && dist[i][j] < best {
					best, a, b = dist[i][j], i, j
				}
			}
		}

		l, r := id[a], id[b]
		if l > r {
			l, r = r, l
		}
		t.Merges = append(t.Merges, Merge{Left: l, Right: r, Distance: best, Size: size[a] + size[b]})

		na, nb := float64(size[a]), float64(size[b])
		for k := 0; k < n; k++ {
			if !active[k] || k == a || k == b {
				continue
			}
			nk := float64(size[k])
			v := ((na+nk)*dist[k][a]*dist[k][a] + (nb+nk)*dist[k][b]*dist[k][b] - nk*best*best) / (na + nb + nk)
			v = math.Sqrt(math.Max(v, 0))
			dist[k][a], dist[a][k] = v, v
		}
		active[b] = false
		id[a] = n + step
		size[a] += size[b]
	}
	return t, nil
}
