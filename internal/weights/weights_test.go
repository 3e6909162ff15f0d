package weights

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutsig/internal/apperr"
)

func writeTable(t *testing.T, header []string, rows ...[]string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join(header, "\t") + "\n")
	for _, r := range rows {
		b.WriteString(strings.Join(r, "\t") + "\n")
	}
	p := filepath.Join(t.TempDir(), "weights.tsv")
	require.NoError(t, os.WriteFile(p, []byte(b.String()), 0o644))
	return p
}

func fullHeader() []string {
	return append([]string{"sample", MutationCount, "extra"}, SignatureLabels()...)
}

func row(id, count string, fill string) []string {
	r := []string{id, count, "x"}
	for range SignatureLabels() {
		r = append(r, fill)
	}
	return r
}

func TestLoad(t *testing.T) {
	p := writeTable(t, fullHeader(),
		row("s1", "10", "0.1"),
		row("s2", "20", "0.2"),
		row("s3", "10", "0"),
	)
	tab, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, tab.Samples)
	assert.Equal(t, []float64{10, 20, 10}, tab.MutationCount)
	r, c := tab.Weights.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 11, c)
	assert.InDelta(t, 2.2, tab.RowSums()[1], 1e-12)
	assert.Equal(t, 0.0, tab.RowSums()[2])
}

func TestLoadMissingColumns(t *testing.T) {
	p := writeTable(t, []string{"sample", MutationCount, "SBS1"}, []string{"s1", "3", "0.5"})
	_, err := Load(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "SBS38")
	assert.NotContains(t, err.Error(), "SBS1,")
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, r := range map[string][]string{
		"negative weight": row("s1", "3", "-0.1"),
		"nan weight":      row("s1", "3", "nan"),
		"negative count":  row("s1", "-3", "0.1"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeTable(t, fullHeader(), r))
			assert.True(t, errors.Is(err, apperr.ErrInvalidParameter), "got %v", err)
		})
	}

	_, err := Load(writeTable(t, fullHeader(), row("s1", "lots", "0.1")))
	assert.True(t, errors.Is(err, apperr.ErrParse))

	_, err = Load(filepath.Join(t.TempDir(), "nope.tsv"))
	assert.True(t, errors.Is(err, apperr.ErrInputNotFound))
}

func TestSignatureLabelsIsACopy(t *testing.T) {
	a := SignatureLabels()
	a[0] = "changed"
	assert.Equal(t, "SBS1", SignatureLabels()[0])
	assert.Len(t, a, 11)
}

func TestMaxRank(t *testing.T) {
	cases := []struct {
		in, want []float64
	}{
		{[]float64{5, 5, 10}, []float64{2, 2, 3}},
		{[]float64{10, 5, 5}, []float64{3, 2, 2}},
		{[]float64{3, 1, 2}, []float64{3, 1, 2}},
		{[]float64{7, 7, 7}, []float64{3, 3, 3}},
		{nil, []float64{}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MaxRank(c.in), "%v", c.in)
	}
}

func TestBurdenColors(t *testing.T) {
	pal := []color.Color{color.Gray{1}, color.Gray{2}, color.Gray{3}}
	got := BurdenColors([]float64{2, 2, 3, 1}, pal)
	assert.Equal(t, []color.Color{color.Gray{2}, color.Gray{2}, color.Gray{3}, color.Gray{1}}, got)
	assert.Equal(t, color.Gray{3}, BurdenColors([]float64{9}, pal)[0])
	assert.Nil(t, BurdenColors([]float64{1}, nil))
}
