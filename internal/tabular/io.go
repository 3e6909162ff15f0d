// internal/tabular/io.go
package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"mutsig/internal/apperr"
	"mutsig/internal/outfile"
)

// ReadFile loads a delimited table from path ("-" = stdin; .gz ok).
func ReadFile(path string, comma rune, indexed bool) (*Table, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	t, err := Read(rc, comma, indexed)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeOf(err), "%s", path)
	}
	return t, nil
}

// Read parses a delimited table. Every record must have as many fields as
// the header.
func Read(r io.Reader, comma rune, indexed bool) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = 0
	if comma == TSV {
		cr.LazyQuotes = true
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.Parse("empty table")
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeParseError, "header")
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	if indexed && len(header) < 2 {
		return nil, apperr.Parse("indexed table needs at least 2 columns, got %d", len(header))
	}

	t := &Table{}
	if indexed {
		t.IndexName = header[0]
		t.Index = []string{}
		t.Columns = header[1:]
	} else {
		t.Columns = header
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(err, apperr.CodeParseError, "row %d", len(t.Cells)+1)
		}
		if indexed {
			t.Index = append(t.Index, rec[0])
			rec = rec[1:]
		}
		t.Cells = append(t.Cells, rec)
	}
	return t, nil
}

// Write serializes t with a header line; indexed tables lead with the
// index column.
func Write(w io.Writer, t *Table, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	header := t.Columns
	if t.Indexed() {
		header = append([]string{t.IndexName}, t.Columns...)
	}
	if err := cw.Write(header); err != nil {
		return apperr.Wrap(err, apperr.CodeOutputError, "write header")
	}
	for i, row := range t.Cells {
		rec := row
		if t.Indexed() {
			rec = append([]string{t.Index[i]}, row...)
		}
		if err := cw.Write(rec); err != nil {
			return apperr.Wrap(err, apperr.CodeOutputError, "write row %d", i+1)
		}
	}
	cw.Flush()
	return apperr.Wrap(cw.Error(), apperr.CodeOutputError, "flush")
}

// WriteFile writes t to path atomically.
func WriteFile(path string, t *Table, comma rune) error {
	return outfile.Write(path, func(w io.Writer) error { return Write(w, t, comma) })
}
