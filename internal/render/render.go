// internal/render/render.go
//
// Package render turns a drawing function into an image file whose format
// follows the file extension. The whole image is encoded in memory and
// handed to outfile, so a failed render never leaves a partial file.
package render

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mutsig/internal/apperr"
	"mutsig/internal/outfile"
)

// FormatOf returns the registered format for path's extension.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := canvases[ext]; !ok {
		return "", apperr.InvalidParameter("unsupported image format %q for %s (want one of %s)",
			ext, path, strings.Join(Formats(), ", "))
	}
	return ext, nil
}

// Encode draws onto a fresh canvas of the given format and returns the
// encoded bytes.
func Encode(format string, w, h vg.Length, dpi int, fill func(draw.Canvas) error) ([]byte, error) {
	mk, ok := canvases[format]
	if !ok {
		return nil, apperr.InvalidParameter("unsupported image format %q", format)
	}
	if w <= 0 || h <= 0 {
		return nil, apperr.InvalidParameter("figure size must be positive, got %v×%v", w, h)
	}
	if dpi <= 0 {
		return nil, apperr.InvalidParameter("dpi must be positive, got %d", dpi)
	}
	c := mk(w, h, dpi)
	if err := fill(draw.New(c)); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeOutputError, "encode %s", format)
	}
	return buf.Bytes(), nil
}

// Save renders fill into path. It returns the number of bytes written.
func Save(path string, w, h vg.Length, dpi int, fill func(draw.Canvas) error) (int, error) {
	format, err := FormatOf(path)
	if err != nil {
		return 0, err
	}
	img, err := Encode(format, w, h, dpi, fill)
	if err != nil {
		return 0, err
	}
	err = outfile.Write(path, func(wr io.Writer) error {
		if _, err := wr.Write(img); err != nil {
			return apperr.Wrap(err, apperr.CodeOutputError, "write %s", path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(img), nil
}
