// internal/simplexapp/app.go
//
// Package simplexapp is the simplexplot command, a shell front end for the
// simplex plotting library.
package simplexapp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"mutsig/internal/apperr"
	"mutsig/internal/cmdutil"
	"mutsig/internal/config"
	"mutsig/pkg/simplex"
)

type options struct {
	common  cmdutil.CommonFlags
	alpha   []float64
	outDir  string
	dpi     int
	samples int
	seed    uint64
	option  string
}

func newCommand() *cobra.Command {
	var o options
	// root keeps Args unset so cobra rejects unknown subcommands.
	root := cmdutil.NewCommand("simplexplot", "Draw densities over the 2-simplex")
	o.common.Bind(root)
	root.PersistentFlags().StringVar(&o.outDir, "out-dir", ".", "directory the figure is written to")
	root.PersistentFlags().IntVar(&o.dpi, "dpi", 0, "raster resolution (default from config: 200)")

	dir := &cobra.Command{
		Use:     "dirichlet",
		Short:   "Contour plot of a Dirichlet density",
		Example: "  simplexplot dirichlet --alpha 0.999,0.999,0.999 --samples 500",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.exec(cmd, o.dirichlet)
		},
	}
	dir.Flags().Float64SliceVar(&o.alpha, "alpha", nil, "three concentration parameters, e.g. 1,2,3")
	dir.Flags().IntVar(&o.samples, "samples", 0, "also scatter this many random draws")
	dir.Flags().Uint64Var(&o.seed, "seed", 1, "random seed for --samples")
	_ = dir.MarkFlagRequired("alpha")

	sim := &cobra.Command{
		Use:     "similarity",
		Short:   "Contour plot of the dissimilarity to a reference vector",
		Example: "  simplexplot similarity --alpha 0.2,0.3,0.5 --option jensen-shannon",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.exec(cmd, o.similarity)
		},
	}
	sim.Flags().Float64SliceVar(&o.alpha, "alpha", nil, "reference vector, e.g. 0.2,0.3,0.5")
	sim.Flags().StringVar(&o.option, "option", "cosine", "cosine | jensen-shannon")
	_ = sim.MarkFlagRequired("alpha")

	root.AddCommand(dir, sim)
	return root
}

type action func(ctx context.Context, log *zap.Logger, alpha [3]float64, fig simplex.FigureOptions) (string, error)

func (o *options) exec(cmd *cobra.Command, act action) error {
	cfg, log, err := o.common.Setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	start := time.Now()
	path, err := o.prepareAndRun(cmd.Context(), log, cfg, act)
	if err != nil {
		log.Debug(cmd.Name()+" failed", zap.Error(err))
		return err
	}
	log.Info("wrote simplex plot", zap.String("path", path), zap.Duration("elapsed", time.Since(start)))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func (o *options) prepareAndRun(ctx context.Context, log *zap.Logger, cfg *config.Config, act action) (string, error) {
	if len(o.alpha) != 3 {
		return "", apperr.InvalidParameter("--alpha needs exactly 3 values, got %d", len(o.alpha))
	}
	if o.dpi != 0 {
		cfg.Simplex.DPI = o.dpi
		if err := cfg.Validate(); err != nil {
			return "", err
		}
	}
	if st, err := os.Stat(o.outDir); err != nil || !st.IsDir() {
		return "", apperr.New(apperr.CodeOutputError, "output directory %s does not exist", o.outDir)
	}
	return act(ctx, log, [3]float64{o.alpha[0], o.alpha[1], o.alpha[2]}, figure(cfg.Simplex))
}

func figure(c config.SimplexConfig) simplex.FigureOptions {
	fig := simplex.DefaultFigureOptions()
	fig.Width = vg.Length(c.Width) * vg.Inch
	fig.Height = vg.Length(c.Height) * vg.Inch
	fig.DPI = c.DPI
	fig.Contour.Levels = c.Levels
	fig.Contour.Subdiv = c.Subdiv
	fig.Contour.Tolerance = c.Tolerance
	return fig
}

func (o *options) dirichlet(ctx context.Context, log *zap.Logger, alpha [3]float64, fig simplex.FigureOptions) (string, error) {
	if o.samples < 0 {
		return "", apperr.InvalidParameter("--samples must be ≥ 0, got %d", o.samples)
	}
	if o.samples == 0 {
		return simplex.PlotDirichlet(ctx, o.outDir, alpha, fig)
	}
	p, d, err := simplex.NewDirichletPlot(ctx, alpha, fig.Contour)
	if err != nil {
		return "", err
	}
	if err := simplex.PlotPoints(p, d.Sample(o.samples, o.seed), simplex.DefaultPointOptions()); err != nil {
		return "", err
	}
	log.Debug("scattered samples", zap.Int("samples", o.samples), zap.Uint64("seed", o.seed))
	path := filepath.Join(o.outDir, simplex.DirichletFilename(alpha))
	if _, err := simplex.Save(p, path, fig); err != nil {
		return "", err
	}
	return path, nil
}

func (o *options) similarity(ctx context.Context, _ *zap.Logger, alpha [3]float64, fig simplex.FigureOptions) (string, error) {
	opt, err := simplex.ParseSimilarity(o.option)
	if err != nil {
		return "", err
	}
	return simplex.PlotSimilarity(ctx, o.outDir, alpha, opt, fig)
}

// RunContext runs the command with argv and returns the exit status.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return cmdutil.Run(ctx, newCommand(), argv, stdout, stderr)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
