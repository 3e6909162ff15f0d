// internal/clusterapp/app.go
//
// Package clusterapp is the sigcluster command: it clusters samples by their
// signature weights and draws the clustered heatmap annotated with each
// sample's mutation-burden rank.
package clusterapp

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mutsig/internal/apperr"
	"mutsig/internal/clustermap"
	"mutsig/internal/cmdutil"
	"mutsig/internal/config"
	"mutsig/internal/divergence"
	"mutsig/internal/linkage"
	"mutsig/internal/palette"
	"mutsig/internal/render"
	"mutsig/internal/weights"
)

type options struct {
	common cmdutil.CommonFlags
	input  string
	metric string
	output string
	dpi    int
}

func newCommand() *cobra.Command {
	var o options
	cmd := cmdutil.NewCommand("sigcluster",
		"Cluster samples by signature weights and draw an annotated heatmap")
	cmd.Example = "  sigcluster --input melanoma_weights.tsv --metric jensen-shannon --output cluster-samples-jensen-shannon.png"
	cmd.Args = cobra.NoArgs

	fl := cmd.Flags()
	fl.StringVar(&o.input, "input", "", "tab-separated sample weight table (.gz ok, - for stdin)")
	fl.StringVar(&o.metric, "metric", "", "distance between samples: cosine | jensen-shannon")
	fl.StringVar(&o.output, "output", "", "image path; the extension picks the format (png, jpg, tif, svg, pdf, eps)")
	fl.IntVar(&o.dpi, "dpi", 0, "raster resolution (default from config: 300)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("metric")
	_ = cmd.MarkFlagRequired("output")
	o.common.Bind(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := o.common.Setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		if err := run(cmd.Context(), log, cfg, o); err != nil {
			log.Debug("sigcluster failed", zap.Error(err))
			return err
		}
		return nil
	}
	return cmd
}

func run(ctx context.Context, log *zap.Logger, cfg *config.Config, o options) error {
	start := time.Now()

	// Everything that can be checked without reading the input goes first.
	metric, err := divergence.ParseMetric(o.metric)
	if err != nil {
		return err
	}
	if _, err := render.FormatOf(o.output); err != nil {
		return err
	}
	if o.dpi != 0 {
		cfg.Cluster.DPI = o.dpi
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	heatPal, err := palette.Sequential(cfg.Cluster.Colormap)
	if err != nil {
		return err
	}
	burdenBase, err := palette.ParseHex(cfg.Cluster.BurdenColor)
	if err != nil {
		return apperr.InvalidParameter("burden_color: %v", err)
	}

	tab, err := weights.Load(o.input)
	if err != nil {
		return err
	}
	n := tab.NumSamples()
	log.Debug("loaded weights", zap.String("path", o.input), zap.Int("samples", n))
	if n < 2 {
		return apperr.InvalidParameter("clustering needs at least 2 samples, got %d", n)
	}
	// Weights are non-negative, so a zero sum is also a zero vector.
	for i, s := range tab.RowSums() {
		if s > 0 {
			continue
		}
		if metric.RequiresDistributions() {
			return apperr.InvalidParameter("sample %s has zero total signature weight; %s needs positive weights",
				tab.Samples[i], metric)
		}
		return apperr.InvalidParameter("sample %s has zero total signature weight; %s distance is undefined for a zero vector",
			tab.Samples[i], metric)
	}

	d, err := divergence.Pdist(ctx, tab.Weights, metric.Func())
	if err != nil {
		return err
	}
	tree, err := linkage.Ward(ctx, d)
	if err != nil {
		return err
	}
	log.Debug("clustered", zap.Stringer("metric", metric), zap.Int("distances", d.Len()), zap.Int("merges", len(tree.Merges)))

	ranks := weights.MaxRank(tab.MutationCount)
	in := clustermap.Input{
		Title:        metric.String(),
		Tree:         tree,
		Rows:         weights.SignatureLabels(),
		Values:       tab.Weights,
		ColumnColors: weights.BurdenColors(ranks, palette.Light(burdenBase, n)),
		Palette:      heatPal,
		YLabel:       "Signatures",
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	size, err := render.Save(o.output,
		vg.Length(cfg.Cluster.Width)*vg.Inch, vg.Length(cfg.Cluster.Height)*vg.Inch, cfg.Cluster.DPI,
		func(c draw.Canvas) error { return clustermap.Render(c, in) })
	if err != nil {
		return err
	}
	log.Info("wrote clustermap", zap.String("path", o.output), zap.Int("samples", n),
		zap.Stringer("metric", metric), zap.Int("bytes", size), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// RunContext runs the command with argv and returns the exit status.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return cmdutil.Run(ctx, newCommand(), argv, stdout, stderr)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
