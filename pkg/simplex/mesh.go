// pkg/simplex/mesh.go
package simplex

import (
	"context"

	"mutsig/internal/apperr"
)

// MaxSubdiv bounds Refine; 10 levels is already ~10⁶ triangles.
const MaxSubdiv = 10

// Mesh is a triangulation of the reference triangle.
type Mesh struct {
	Points    []Point
	Triangles [][3]int
	n         int
}

// Refine returns the uniform refinement obtained by splitting every
// triangle into four, subdiv times. With N = 2^subdiv the mesh has
// (N+1)(N+2)/2 vertices and N² triangles.
func Refine(subdiv int) (*Mesh, error) {
	if subdiv < 0 || subdiv > MaxSubdiv {
		return nil, apperr.InvalidParameter("subdiv %d out of range [0, %d]", subdiv, MaxSubdiv)
	}
	n := 1 << subdiv
	m := &Mesh{
		Points:    make([]Point, 0, (n+1)*(n+2)/2),
		Triangles: make([][3]int, 0, n*n),
		n:         n,
	}
	fn := float64(n)
	for j := 0; j <= n; j++ {
		for i := 0; i <= n-j; i++ {
			m.Points = append(m.Points, Point{
				X: float64(i)/fn + float64(j)/(2*fn),
				Y: float64(j) / fn * Height,
			})
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n-j; i++ {
			m.Triangles = append(m.Triangles, [3]int{m.index(i, j), m.index(i+1, j), m.index(i, j+1)})
			if i+j < n-1 {
				m.Triangles = append(m.Triangles, [3]int{m.index(i+1, j), m.index(i+1, j+1), m.index(i, j+1)})
			}
		}
	}
	return m, nil
}

// index of lattice vertex (i, j): i steps along the base, j rows up.
func (m *Mesh) index(i, j int) int {
	return j*(m.n+1) - j*(j-1)/2 + i
}

// Eval evaluates dist at every vertex. Each vertex is converted with
// XY2BC(p, tol) first. ctx is checked once per lattice row.
func (m *Mesh) Eval(ctx context.Context, dist Distribution, tol float64) ([]float64, error) {
	out := make([]float64, len(m.Points))
	k := 0
	for j := 0; j <= m.n; j++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := 0; i <= m.n-j; i++ {
			out[k] = dist.PDF(XY2BC(m.Points[k], tol))
			k++
		}
	}
	return out, nil
}
