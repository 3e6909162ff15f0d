// internal/outfile/outfile.go
//
// Package outfile writes result files all-or-nothing: content goes to a
// temporary sibling first and is renamed over the destination only after
// the producer and the close both succeed.
package outfile

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"mutsig/internal/apperr"
)

// Write streams fill's output into path atomically. "-" writes to stdout.
func Write(path string, fill func(io.Writer) error) error {
	if path == "-" {
		bw := bufio.NewWriter(os.Stdout)
		err := fill(bw)
		if err == nil {
			err = bw.Flush()
		}
		if IsBrokenPipe(err) {
			return nil
		}
		var ae *apperr.Error
		if err != nil && !errors.As(err, &ae) {
			return apperr.Wrap(err, apperr.CodeOutputError, "write stdout")
		}
		return err
	}

	dir := filepath.Dir(path)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return apperr.New(apperr.CodeOutputError, "output directory %s does not exist", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperr.Wrap(err, apperr.CodeOutputError, "create %s", path)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := fill(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return apperr.Wrap(err, apperr.CodeOutputError, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return apperr.Wrap(err, apperr.CodeOutputError, "close %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return apperr.Wrap(err, apperr.CodeOutputError, "chmod %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return apperr.Wrap(err, apperr.CodeOutputError, "rename to %s", path)
	}
	committed = true
	return nil
}

// IsBrokenPipe reports whether err is a broken or closed pipe, which
// happens when a downstream consumer such as `head` exits early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
