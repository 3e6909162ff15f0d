// pkg/simplex/figure.go
package simplex

import (
	"context"
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mutsig/internal/render"
)

// FigureOptions sizes a saved simplex figure.
type FigureOptions struct {
	Width, Height vg.Length
	DPI           int
	Contour       ContourOptions
}

// DefaultFigureOptions renders at 200 DPI.
func DefaultFigureOptions() FigureOptions {
	return FigureOptions{
		Width:   6.4 * vg.Inch,
		Height:  6 * vg.Inch,
		DPI:     200,
		Contour: DefaultContourOptions(),
	}
}

// Title formats alpha the way both figure kinds are titled.
func Title(alpha [3]float64) string {
	return fmt.Sprintf("α = (%.3f, %.3f, %.3f)", alpha[0], alpha[1], alpha[2])
}

// DirichletFilename is the file PlotDirichlet writes inside its directory.
func DirichletFilename(alpha [3]float64) string {
	return fmt.Sprintf("dirichlet_plots_%.3f_%.3f_%.3f.png", alpha[0], alpha[1], alpha[2])
}

// SimilarityFilename is the file PlotSimilarity writes inside its directory.
func SimilarityFilename(opt Similarity, alpha [3]float64) string {
	return fmt.Sprintf("similarity_%s_plots_%.3f_%.3f_%.3f.png", opt, alpha[0], alpha[1], alpha[2])
}

// NewDirichletPlot returns a titled contour plot of Dir(alpha).
func NewDirichletPlot(ctx context.Context, alpha [3]float64, opts ContourOptions) (*plot.Plot, *Dirichlet, error) {
	d, err := NewDirichlet(alpha)
	if err != nil {
		return nil, nil, err
	}
	p, err := newContourPlot(ctx, d, alpha, opts)
	if err != nil {
		return nil, nil, err
	}
	return p, d, nil
}

// NewSimilarityPlot returns a titled contour plot of the dissimilarity to alpha.
func NewSimilarityPlot(ctx context.Context, alpha [3]float64, opt Similarity, opts ContourOptions) (*plot.Plot, error) {
	dist, err := NewSimilarity(opt, alpha)
	if err != nil {
		return nil, err
	}
	return newContourPlot(ctx, dist, alpha, opts)
}

func newContourPlot(ctx context.Context, dist Distribution, alpha [3]float64, opts ContourOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title(alpha)
	if err := DrawPDFContours(ctx, p, dist, opts); err != nil {
		return nil, err
	}
	return p, nil
}

// Save renders p to path with equal axis scaling. It returns the number of
// bytes written.
func Save(p *plot.Plot, path string, fig FigureOptions) (int, error) {
	return render.Save(path, fig.Width, fig.Height, fig.DPI, func(c draw.Canvas) error {
		p.Draw(equalAspect(p, c))
		return nil
	})
}

// equalAspect trims c symmetrically so one data unit spans the same length
// on both axes.
func equalAspect(p *plot.Plot, c draw.Canvas) draw.Canvas {
	da := p.DataCanvas(c)
	w, h := da.Max.X-da.Min.X, da.Max.Y-da.Min.Y
	xr, yr := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min
	if w <= 0 || h <= 0 || xr <= 0 || yr <= 0 {
		return c
	}
	want := w * vg.Length(yr/xr)
	if h > want {
		d := (h - want) / 2
		return draw.Crop(c, 0, 0, d, -d)
	}
	d := (w - h*vg.Length(xr/yr)) / 2
	return draw.Crop(c, d, -d, 0, 0)
}

// PlotDirichlet saves the contour plot of Dir(alpha) as
// dir/DirichletFilename(alpha) and returns the path.
func PlotDirichlet(ctx context.Context, dir string, alpha [3]float64, fig FigureOptions) (string, error) {
	p, _, err := NewDirichletPlot(ctx, alpha, fig.Contour)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, DirichletFilename(alpha))
	if _, err := Save(p, path, fig); err != nil {
		return "", err
	}
	return path, nil
}

// PlotSimilarity saves the dissimilarity contour plot as
// dir/SimilarityFilename(opt, alpha) and returns the path.
func PlotSimilarity(ctx context.Context, dir string, alpha [3]float64, opt Similarity, fig FigureOptions) (string, error) {
	p, err := NewSimilarityPlot(ctx, alpha, opt, fig.Contour)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, SimilarityFilename(opt, alpha))
	if _, err := Save(p, path, fig); err != nil {
		return "", err
	}
	return path, nil
}
