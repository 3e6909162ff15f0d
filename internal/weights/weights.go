// internal/weights/weights.go
//
// Package weights loads per-sample signature weight tables and derives the
// mutation-burden annotation drawn above the clustermap.
package weights

import (
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"mutsig/internal/apperr"
	"mutsig/internal/tabular"
)

// MutationCount is the column holding each sample's total mutation count.
const MutationCount = "mutation_count"

var signatureLabels = [...]string{
	"SBS1", "SBS2", "SBS5", "SBS7a", "SBS7b", "SBS7c", "SBS7d",
	"SBS13", "SBS17a", "SBS17b", "SBS38",
}

// SignatureLabels returns the signatures clustered on, in heatmap row order.
func SignatureLabels() []string {
	out := make([]string, len(signatureLabels))
	copy(out, signatureLabels[:])
	return out
}

// Table is a validated sample weight table.
type Table struct {
	Samples       []string
	MutationCount []float64
	// Weights is samples × SignatureLabels().
	Weights *mat.Dense
}

// Load reads a tab-separated weight table whose first column is the sample id.
func Load(path string) (*Table, error) {
	t, err := tabular.ReadFile(path, tabular.TSV, true)
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}

// FromTable validates t and extracts the columns the clustermap needs.
func FromTable(t *tabular.Table) (*Table, error) {
	labels := SignatureLabels()
	if err := t.Require(append([]string{MutationCount}, labels...)...); err != nil {
		return nil, err
	}
	if t.NumRows() == 0 {
		return nil, apperr.InvalidParameter("weight table has no samples")
	}
	counts, err := t.Float(MutationCount)
	if err != nil {
		return nil, err
	}
	if err := checkValues(MutationCount, counts); err != nil {
		return nil, err
	}
	w, err := t.Matrix(labels)
	if err != nil {
		return nil, err
	}
	for j, name := range labels {
		if err := checkValues(name, mat.Col(nil, j, w)); err != nil {
			return nil, err
		}
	}
	samples := make([]string, len(t.Index))
	copy(samples, t.Index)
	return &Table{Samples: samples, MutationCount: counts, Weights: w}, nil
}

func checkValues(col string, v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return apperr.InvalidParameter("column %s row %d: want a finite non-negative number, got %v", col, i+1, x)
		}
	}
	return nil
}

// NumSamples returns the number of rows.
func (t *Table) NumSamples() int { return len(t.Samples) }

// RowSums returns the total signature weight of every sample.
func (t *Table) RowSums() []float64 {
	r, _ := t.Weights.Dims()
	out := make([]float64, r)
	for i := range out {
		out[i] = mat.Sum(t.Weights.RowView(i))
	}
	return out
}

// MaxRank ranks values 1..n, giving tied values the largest rank of their
// group: [5 5 10] ranks as [2 2 3].
func MaxRank(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })
	ranks := make([]float64, n)
	for lo := 0; lo < n; {
		hi := lo + 1
		for hi < n && values[idx[hi]] == values[idx[lo]] {
			hi++
		}
		for k := lo; k < hi; k++ {
			ranks[idx[k]] = float64(hi)
		}
		lo = hi
	}
	return ranks
}

// BurdenColors maps each rank to pal[floor(rank)-1], clamped to pal's range.
func BurdenColors(ranks []float64, pal []color.Color) []color.Color {
	if len(pal) == 0 {
		return nil
	}
	out := make([]color.Color, len(ranks))
	for i, r := range ranks {
		k := int(math.Floor(r)) - 1
		k = max(0, min(k, len(pal)-1))
		out[i] = pal[k]
	}
	return out
}
