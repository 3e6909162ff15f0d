// pkg/simplex/points.go
package simplex

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mutsig/internal/apperr"
)

// Coords is either coordinate system PlotPoints accepts.
type Coords interface {
	Bary | Point
}

// PointOptions controls PlotPoints.
type PointOptions struct {
	Border bool
	Color  color.Color
	Radius vg.Length
}

// DefaultPointOptions draws small black dots with the triangle border.
func DefaultPointOptions() PointOptions {
	return PointOptions{Border: true, Color: color.Black, Radius: vg.Points(0.5)}
}

// PlotPoints scatters pts over the simplex. Barycentric input is mapped to
// the plane with BC2XY.
func PlotPoints[T Coords](p *plot.Plot, pts []T, opts PointOptions) error {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		var q Point
		switch v := any(pt).(type) {
		case Bary:
			q = BC2XY(v)
		case Point:
			q = v
		}
		xys[i] = plotter.XY{X: q.X, Y: q.Y}
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return apperr.Wrap(err, apperr.CodeInvalidParameter, "scatter points")
	}
	if opts.Color != nil {
		s.GlyphStyle.Color = opts.Color
	}
	if opts.Radius > 0 {
		s.GlyphStyle.Radius = opts.Radius
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	frame(p, opts.Border)
	return nil
}
