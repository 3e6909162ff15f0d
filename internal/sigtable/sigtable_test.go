package sigtable

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mutsig/internal/apperr"
	"mutsig/internal/logging"
	"mutsig/internal/tabular"
)

const synapseCSV = "Type,SubType,SBS1,SBS2,SBS5\n" +
	"C>A,ACA,8.86E-04,5.80E-07,1.20E-02\n" +
	"C>A,ACC,2.28E-03,1.48E-04,9.44E-03\n" +
	"T>G,TTT,1.37E-03,2.50E-06,2.12E-02\n"

func readSynapse(t *testing.T) *tabular.Table {
	t.Helper()
	tb, err := tabular.Read(strings.NewReader(synapseCSV), tabular.CSV, false)
	require.NoError(t, err)
	return tb
}

func TestEncode(t *testing.T) {
	enc, err := Encode("C>A", "ACA")
	require.NoError(t, err)
	assert.Equal(t, "A[C>A]A", enc)

	enc, err = Encode("T>G", "GT")
	require.NoError(t, err)
	assert.Equal(t, "G[T>G]T", enc)

	_, err = Encode("C>A", "A")
	assert.True(t, errors.Is(err, apperr.ErrSchemaMismatch))
}

func TestDecode(t *testing.T) {
	typ, sub, err := Decode("A[C>A]T")
	require.NoError(t, err)
	assert.Equal(t, "C>A", typ)
	assert.Equal(t, "ACT", sub)

	for _, bad := range []string{"", "ACA", "A[C>A", "AC>A]T", "A[]T", "A[[C]]T"} {
		_, _, err := Decode(bad)
		assert.True(t, errors.Is(err, apperr.ErrParse), bad)
	}
}

func TestReformat(t *testing.T) {
	out, err := Reformat(readSynapse(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"SBS1", "SBS2", "SBS5"}, out.Index)
	assert.Equal(t, []string{"A[C>A]A", "A[C>A]C", "T[T>G]T"}, out.Columns)
	assert.Equal(t, "2.28E-03", out.Cells[0][1], "cells are copied verbatim")
	assert.Equal(t, "2.12E-02", out.Cells[2][2])
}

func TestReformatMissingColumns(t *testing.T) {
	tb, err := tabular.Read(strings.NewReader("Type,SBS1\nC>A,0.1\n"), tabular.CSV, false)
	require.NoError(t, err)
	_, err = Reformat(tb)
	assert.True(t, errors.Is(err, apperr.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "SubType")
}

func TestReformatShortSubType(t *testing.T) {
	tb, err := tabular.Read(strings.NewReader("Type,SubType,SBS1\nC>A,A,0.1\n"), tabular.CSV, false)
	require.NoError(t, err)
	_, err = Reformat(tb)
	assert.True(t, errors.Is(err, apperr.ErrSchemaMismatch))
}

func TestReformatDropsStaleEncodingColumn(t *testing.T) {
	tb, err := tabular.Read(strings.NewReader("Type,SubType,encoding,SBS1\nC>A,ACA,x,0.1\n"), tabular.CSV, false)
	require.NoError(t, err)
	out, err := Reformat(tb)
	require.NoError(t, err)
	assert.Equal(t, []string{"SBS1"}, out.Index)
}

func TestRoundTrip(t *testing.T) {
	src := readSynapse(t)
	out, err := Reformat(src)
	require.NoError(t, err)

	back, err := Restore(out)
	require.NoError(t, err)
	assert.Equal(t, src.Columns, back.Columns)
	assert.Equal(t, src.Cells, back.Cells)
}

func TestRestoreNeedsIndex(t *testing.T) {
	_, err := Restore(&tabular.Table{Columns: []string{"A[C>A]A"}})
	assert.True(t, errors.Is(err, apperr.ErrSchemaMismatch))
}

func TestConvertFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "synapse.csv")
	mid := filepath.Join(dir, "deconstruct.tsv")
	back := filepath.Join(dir, "back.csv")
	require.NoError(t, os.WriteFile(src, []byte(synapseCSV), 0o644))

	ctx := context.Background()
	require.NoError(t, ConvertFile(ctx, logging.Nop(), src, mid))

	got, err := os.ReadFile(mid)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(got), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "\tA[C>A]A\tA[C>A]C\tT[T>G]T", lines[0])
	assert.Equal(t, "SBS1\t8.86E-04\t2.28E-03\t1.37E-03", lines[1])

	require.NoError(t, RestoreFile(ctx, logging.Nop(), mid, back))
	restored, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, synapseCSV, string(restored))
}

func TestConvertFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.tsv")
	err := ConvertFile(context.Background(), logging.Nop(), filepath.Join(dir, "nope.csv"), dst)
	assert.True(t, errors.Is(err, apperr.ErrInputNotFound))
	assert.NoFileExists(t, dst)
}

func TestConvertFileCancelled(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "synapse.csv")
	dst := filepath.Join(dir, "out.tsv")
	require.NoError(t, os.WriteFile(src, []byte(synapseCSV), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ConvertFile(ctx, logging.Nop(), src, dst)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, dst)
}
