// internal/divergence/pdist.go
package divergence

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Condensed is the upper triangle of a symmetric n×n distance matrix,
// row-major without the diagonal: (0,1), (0,2), …, (0,n-1), (1,2), …
type Condensed struct {
	n int
	D []float64
}

// NewCondensed wraps d for n observations; len(d) must be n(n-1)/2.
func NewCondensed(n int, d []float64) Condensed {
	if n < 0 || len(d) != n*(n-1)/2 {
		panic("divergence: condensed length does not match n")
	}
	return Condensed{n: n, D: d}
}

// N returns the number of observations.
func (c Condensed) N() int { return c.n }

// Len returns n(n-1)/2.
func (c Condensed) Len() int { return len(c.D) }

// At returns d(i, j); At(i, i) is 0.
func (c Condensed) At(i, j int) float64 {
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	return c.D[c.n*i-i*(i+1)/2+(j-i-1)]
}

// Square expands c into a full symmetric matrix.
func (c Condensed) Square() *mat.SymDense {
	s := mat.NewSymDense(c.n, nil)
	for i := 0; i < c.n; i++ {
		for j := i + 1; j < c.n; j++ {
			s.SetSym(i, j, c.At(i, j))
		}
	}
	return s
}

// Pdist evaluates fn on every pair of rows of x. ctx is checked once per row.
func Pdist(ctx context.Context, x mat.Matrix, fn Func) (Condensed, error) {
	n, _ := x.Dims()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, x)
	}
	d := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return Condensed{}, err
		}
		for j := i + 1; j < n; j++ {
			d = append(d, fn(rows[i], rows[j]))
		}
	}
	return Condensed{n: n, D: d}, nil
}
