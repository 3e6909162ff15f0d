// internal/divergence/divergence.go
//
// Package divergence implements the dissimilarity measures shared by the
// clustering tool and the simplex plots, and the pairwise (condensed)
// distance computation over the rows of a matrix.
//
// KL and JS follow scipy.stats.entropy: both arguments are normalized to
// sum to 1 before the divergence is taken, and the natural log is used.
package divergence

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// KL is the Kullback-Leibler divergence Σ p_i·log(p_i/q_i) of the
// normalized inputs. Terms with p_i == 0 contribute nothing; a q_i == 0
// under p_i > 0 yields +Inf. Zero-sum inputs yield NaN.
func KL(p, q []float64) float64 {
	if len(p) != len(q) {
		panic("divergence: length mismatch")
	}
	return stat.KullbackLeibler(normalized(p), normalized(q))
}

// JS is the Jensen-Shannon divergence 0.5·(KL(x‖m) + KL(y‖m)) with
// m = 0.5·(x+y) taken on the raw vectors.
func JS(x, y []float64) float64 {
	if len(x) != len(y) {
		panic("divergence: length mismatch")
	}
	m := make([]float64, len(x))
	floats.AddTo(m, x, y)
	floats.Scale(0.5, m)
	return 0.5 * (KL(x, m) + KL(y, m))
}

// CosineDistance is 1 - x·y/(‖x‖‖y‖). It is NaN when either norm is zero.
func CosineDistance(x, y []float64) float64 {
	if len(x) != len(y) {
		panic("divergence: length mismatch")
	}
	return 1 - floats.Dot(x, y)/(floats.Norm(x, 2)*floats.Norm(y, 2))
}

func normalized(v []float64) []float64 {
	out := make([]float64, len(v))
	s := floats.Sum(v)
	if s == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	floats.ScaleTo(out, 1/s, v)
	return out
}
