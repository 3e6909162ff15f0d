// pkg/simplex/distribution.go
package simplex

import (
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distmv"

	"mutsig/internal/apperr"
	"mutsig/internal/divergence"
)

// Distribution is anything with a density-like value over the simplex.
type Distribution interface {
	PDF(x Bary) float64
}

// Dirichlet is the Dirichlet distribution on the 2-simplex.
type Dirichlet struct {
	alpha [3]float64
	dist  *distmv.Dirichlet
}

// NewDirichlet validates alpha (every component finite and > 0).
func NewDirichlet(alpha [3]float64) (*Dirichlet, error) {
	for i, a := range alpha {
		if !(a > 0) || math.IsInf(a, 0) {
			return nil, apperr.InvalidParameter("dirichlet alpha[%d] = %v: want a finite value > 0", i, a)
		}
	}
	return &Dirichlet{alpha: alpha, dist: distmv.NewDirichlet(alpha[:], nil)}, nil
}

// Alpha returns the concentration parameters.
func (d *Dirichlet) Alpha() [3]float64 { return d.alpha }

// PDF returns Γ(Σα)/ΠΓ(α_i) · Π x_i^(α_i-1). x is not renormalized.
func (d *Dirichlet) PDF(x Bary) float64 {
	return math.Exp(d.dist.LogProb(x[:]))
}

// Sample draws n points using a PCG source seeded with seed.
func (d *Dirichlet) Sample(n int, seed uint64) []Bary {
	if n <= 0 {
		return nil
	}
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	gen := distmv.NewDirichlet(d.alpha[:], src)
	out := make([]Bary, n)
	buf := make([]float64, 3)
	for i := range out {
		gen.Rand(buf)
		copy(out[i][:], buf)
	}
	return out
}

// Cosine is the cosine dissimilarity to a reference vector:
// 1 - |α·x| / (‖α‖‖x‖).
type Cosine struct {
	alpha [3]float64
	norm  float64
}

// NewCosine rejects a zero or non-finite reference.
func NewCosine(alpha [3]float64) (Cosine, error) {
	if err := finite(alpha); err != nil {
		return Cosine{}, err
	}
	n := floats.Norm(alpha[:], 2)
	if n == 0 {
		return Cosine{}, apperr.InvalidParameter("cosine reference must be non-zero")
	}
	return Cosine{alpha: alpha, norm: n}, nil
}

func (c Cosine) PDF(x Bary) float64 {
	return 1 - math.Abs(floats.Dot(c.alpha[:], x[:]))/(c.norm*floats.Norm(x[:], 2))
}

// JensenShannon is the Jensen-Shannon divergence from a reference
// distribution.
type JensenShannon struct {
	alpha [3]float64
}

// NewJensenShannon rejects negative, non-finite or all-zero references.
func NewJensenShannon(alpha [3]float64) (JensenShannon, error) {
	if err := finite(alpha); err != nil {
		return JensenShannon{}, err
	}
	for i, a := range alpha {
		if a < 0 {
			return JensenShannon{}, apperr.InvalidParameter("jensen-shannon reference alpha[%d] = %v is negative", i, a)
		}
	}
	if floats.Sum(alpha[:]) == 0 {
		return JensenShannon{}, apperr.InvalidParameter("jensen-shannon reference must have positive mass")
	}
	return JensenShannon{alpha: alpha}, nil
}

func (j JensenShannon) PDF(x Bary) float64 {
	return divergence.JS(j.alpha[:], x[:])
}

func finite(alpha [3]float64) error {
	for i, a := range alpha {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return apperr.InvalidParameter("alpha[%d] = %v is not finite", i, a)
		}
	}
	return nil
}

// Similarity selects a dissimilarity density.
type Similarity int

const (
	SimilarityCosine Similarity = iota
	SimilarityJensenShannon
)

var similarityNames = [...]string{
	SimilarityCosine:        "cosine",
	SimilarityJensenShannon: "jensen-shannon",
}

func (s Similarity) String() string {
	if s < 0 || int(s) >= len(similarityNames) {
		return "unknown"
	}
	return similarityNames[s]
}

// ParseSimilarity accepts "cosine" or "jensen-shannon" (case-insensitive).
func ParseSimilarity(name string) (Similarity, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range similarityNames {
		if s == n {
			return Similarity(i), nil
		}
	}
	return 0, apperr.UnsupportedMetric("unsupported similarity %q (want cosine | jensen-shannon)", name)
}

// NewSimilarity builds the density for opt.
func NewSimilarity(opt Similarity, alpha [3]float64) (Distribution, error) {
	switch opt {
	case SimilarityCosine:
		c, err := NewCosine(alpha)
		if err != nil {
			return nil, err
		}
		return c, nil
	case SimilarityJensenShannon:
		j, err := NewJensenShannon(alpha)
		if err != nil {
			return nil, err
		}
		return j, nil
	}
	return nil, apperr.UnsupportedMetric("unsupported similarity %d", int(opt))
}
