// internal/sigtable/convert.go
package sigtable

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mutsig/internal/tabular"
)

// ConvertFile reads a comma-separated definition table from src and writes
// the reformatted tab-separated table to dst.
func ConvertFile(ctx context.Context, log *zap.Logger, src, dst string) error {
	start := time.Now()
	in, err := tabular.ReadFile(src, tabular.CSV, false)
	if err != nil {
		return err
	}
	log.Debug("read definition table", zap.String("path", src),
		zap.Int("rows", in.NumRows()), zap.Int("columns", len(in.Columns)))

	out, err := Reformat(in)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tabular.WriteFile(dst, out, tabular.TSV); err != nil {
		return err
	}
	log.Info("wrote reformatted table", zap.String("path", dst),
		zap.Int("signatures", out.NumRows()), zap.Int("contexts", len(out.Columns)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// RestoreFile is the inverse of ConvertFile: TSV in, CSV out.
func RestoreFile(ctx context.Context, log *zap.Logger, src, dst string) error {
	in, err := tabular.ReadFile(src, tabular.TSV, true)
	if err != nil {
		return err
	}
	out, err := Restore(in)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tabular.WriteFile(dst, out, tabular.CSV); err != nil {
		return err
	}
	log.Info("wrote definition table", zap.String("path", dst), zap.Int("contexts", out.NumRows()))
	return nil
}
