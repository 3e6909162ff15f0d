// internal/sigtable/sigtable.go
//
// Package sigtable converts signature-definition tables between the
// context-per-row layout (Type, SubType, one column per signature) and the
// signature-per-row layout keyed by trinucleotide encodings like A[C>A]T.
package sigtable

import (
	"strings"

	"mutsig/internal/apperr"
	"mutsig/internal/tabular"
)

const (
	ColType     = "Type"
	ColSubType  = "SubType"
	ColEncoding = "encoding"
)

// Encode builds the context label SubType[0] + "[" + Type + "]" + SubType[-1].
func Encode(typ, subType string) (string, error) {
	if len(subType) < 2 {
		return "", apperr.SchemaMismatch("SubType %q must have at least 2 characters", subType)
	}
	return subType[:1] + "[" + typ + "]" + subType[len(subType)-1:], nil
}

// Decode splits X[Y]Z back into Type Y and the trinucleotide SubType
// X + Y[0] + Z, Y[0] being the reference base of the substitution.
func Decode(enc string) (typ, subType string, err error) {
	n := len(enc)
	if n < 5 || enc[1] != '[' || enc[n-2] != ']' || strings.ContainsAny(enc[2:n-2], "[]") {
		return "", "", apperr.Parse("malformed context encoding %q (want X[Y]Z)", enc)
	}
	typ = enc[2 : n-2]
	return typ, enc[:1] + typ[:1] + enc[n-1:], nil
}

// Reformat transposes a definition table so that each signature becomes a
// row and each context encoding a column, in source row order. Cells are
// carried over verbatim.
func Reformat(src *tabular.Table) (*tabular.Table, error) {
	if err := src.Require(ColType, ColSubType); err != nil {
		return nil, err
	}
	types, _ := src.Column(ColType)
	subs, _ := src.Column(ColSubType)

	contexts := make([]string, src.NumRows())
	for i := range contexts {
		enc, err := Encode(types[i], subs[i])
		if err != nil {
			return nil, apperr.Wrap(err, apperr.CodeSchemaMismatch, "row %d", i+1)
		}
		contexts[i] = enc
	}

	payload := src.Drop(ColType, ColSubType, ColEncoding)
	out, err := payload.Transpose(contexts)
	if err != nil {
		return nil, err
	}
	out.IndexName = ""
	return out, nil
}

// Restore is the inverse of Reformat: it rebuilds the Type and SubType
// columns from the encoded headers and turns signatures back into columns.
func Restore(dst *tabular.Table) (*tabular.Table, error) {
	if !dst.Indexed() {
		return nil, apperr.SchemaMismatch("reformatted table must carry a signature index column")
	}
	out := &tabular.Table{
		Columns: append([]string{ColType, ColSubType}, dst.Index...),
		Cells:   make([][]string, len(dst.Columns)),
	}
	for j, enc := range dst.Columns {
		typ, sub, err := Decode(enc)
		if err != nil {
			return nil, err
		}
		row := make([]string, 0, 2+len(dst.Index))
		row = append(row, typ, sub)
		for i := range dst.Index {
			row = append(row, dst.Cells[i][j])
		}
		out.Cells[j] = row
	}
	return out, nil
}
