// internal/tabular/table.go
//
// Package tabular holds delimited text tables the way the signature tools
// see them: a header, an optional row-index column, and string cells that
// are converted to numbers only when a caller asks for a numeric view.
package tabular

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"mutsig/internal/apperr"
)

const (
	CSV = ','
	TSV = '\t'
)

// Table is a rectangular string table. When Index is non-nil the first
// column of the file is the row index: IndexName is its header and Index
// holds one label per row.
type Table struct {
	IndexName string
	Index     []string
	Columns   []string
	Cells     [][]string
}

// Indexed reports whether the table carries a row index.
func (t *Table) Indexed() bool { return t.Index != nil }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Cells) }

// ColumnIndex returns the position of name in Columns, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Require fails with SchemaMismatch naming every absent column.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if t.ColumnIndex(n) < 0 {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return apperr.SchemaMismatch("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// Column returns the cells of one column.
func (t *Table) Column(name string) ([]string, error) {
	j := t.ColumnIndex(name)
	if j < 0 {
		return nil, apperr.SchemaMismatch("missing required column(s): %s", name)
	}
	out := make([]string, len(t.Cells))
	for i, row := range t.Cells {
		out[i] = row[j]
	}
	return out, nil
}

// Float parses one column as float64.
func (t *Table) Float(name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(col))
	for i, s := range col {
		v, err := parseFloat(s)
		if err != nil {
			return nil, apperr.Parse("column %s, row %d: %v", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// Matrix returns the named columns as a rows×len(names) dense matrix.
func (t *Table) Matrix(names []string) (*mat.Dense, error) {
	if err := t.Require(names...); err != nil {
		return nil, err
	}
	if t.NumRows() == 0 || len(names) == 0 {
		return nil, apperr.Parse("empty matrix (%d rows, %d columns)", t.NumRows(), len(names))
	}
	m := mat.NewDense(t.NumRows(), len(names), nil)
	for j, n := range names {
		col, err := t.Float(n)
		if err != nil {
			return nil, err
		}
		m.SetCol(j, col)
	}
	return m, nil
}

// Drop returns a copy without the named columns. Unknown names are ignored.
func (t *Table) Drop(names ...string) *Table {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	var keep []int
	out := &Table{IndexName: t.IndexName}
	if t.Index != nil {
		out.Index = append([]string{}, t.Index...)
	}
	for j, c := range t.Columns {
		if !skip[c] {
			keep = append(keep, j)
			out.Columns = append(out.Columns, c)
		}
	}
	out.Cells = make([][]string, len(t.Cells))
	for i, row := range t.Cells {
		r := make([]string, len(keep))
		for k, j := range keep {
			r[k] = row[j]
		}
		out.Cells[i] = r
	}
	return out
}

// Transpose swaps rows and columns: the column headers become the row
// index and columns are labeled by header, one per original row.
func (t *Table) Transpose(header []string) (*Table, error) {
	if len(header) != t.NumRows() {
		return nil, apperr.InvalidParameter("transpose: %d labels for %d rows", len(header), t.NumRows())
	}
	out := &Table{
		Index:   append([]string{}, t.Columns...),
		Columns: append([]string{}, header...),
		Cells:   make([][]string, len(t.Columns)),
	}
	for j := range t.Columns {
		r := make([]string, t.NumRows())
		for i, row := range t.Cells {
			r[i] = row[j]
		}
		out.Cells[j] = r
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "na", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
