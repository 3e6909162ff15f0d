// pkg/simplex/geometry.go
//
// Package simplex draws densities and point clouds over the 2-simplex,
// rendered as an equilateral triangle with unit base.
package simplex

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance keeps barycentric coordinates away from 0 and 1 so
// densities with poles on the boundary stay finite.
const DefaultTolerance = 1e-3

// Height of the reference triangle, √0.75.
var Height = math.Sqrt(0.75)

// Point is a Cartesian position in the plane of the reference triangle.
type Point struct{ X, Y float64 }

// Bary is a barycentric coordinate triple.
type Bary [3]float64

var (
	corners   = [3]Point{{0, 0}, {1, 0}, {0.5, Height}}
	midpoints = [3]Point{
		mid(corners[1], corners[2]),
		mid(corners[2], corners[0]),
		mid(corners[0], corners[1]),
	}
)

func mid(a, b Point) Point { return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

// Corners returns the triangle vertices (0,0), (1,0), (0.5, √0.75).
func Corners() [3]Point { return corners }

// Midpoints returns, for each corner, the midpoint of the opposite edge.
func Midpoints() [3]Point { return midpoints }

// XY2BC converts p to barycentric coordinates, each clipped to [tol, 1-tol].
func XY2BC(p Point, tol float64) Bary {
	var b Bary
	for i := range b {
		c, m := corners[i], midpoints[i]
		s := floats.Dot([]float64{c.X - m.X, c.Y - m.Y}, []float64{p.X - m.X, p.Y - m.Y}) / 0.75
		b[i] = math.Min(math.Max(s, tol), 1-tol)
	}
	return b
}

// BC2XY maps barycentric coordinates to the plane: Σ b_i·corner_i.
func BC2XY(b Bary) Point {
	var p Point
	for i, c := range corners {
		p.X += b[i] * c.X
		p.Y += b[i] * c.Y
	}
	return p
}
