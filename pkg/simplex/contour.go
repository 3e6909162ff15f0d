// pkg/simplex/contour.go
package simplex

import (
	"context"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mutsig/internal/apperr"
)

// ContourOptions controls DrawPDFContours.
type ContourOptions struct {
	Border    bool
	Levels    int
	Subdiv    int
	Tolerance float64
	// ColorMap colors the bands from low to high. Nil means Kindlmann.
	ColorMap palette.ColorMap
}

// DefaultContourOptions mirrors the usual 200 bands on an 8-level mesh.
func DefaultContourOptions() ContourOptions {
	return ContourOptions{Levels: 200, Subdiv: 8, Tolerance: DefaultTolerance}
}

func (o ContourOptions) validate() error {
	if o.Levels < 2 {
		return apperr.InvalidParameter("levels must be ≥ 2, got %d", o.Levels)
	}
	if !(o.Tolerance > 0 && o.Tolerance < 1.0/3) {
		return apperr.InvalidParameter("tolerance must be in (0, 1/3), got %v", o.Tolerance)
	}
	return nil
}

// DrawPDFContours adds filled contour bands of dist over the simplex to p.
func DrawPDFContours(ctx context.Context, p *plot.Plot, dist Distribution, opts ContourOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	mesh, err := Refine(opts.Subdiv)
	if err != nil {
		return err
	}
	vals, err := mesh.Eval(ctx, dist, opts.Tolerance)
	if err != nil {
		return err
	}
	lo, hi, ok := clampNonFinite(vals)
	if !ok {
		return apperr.InvalidParameter("density has no finite value over the simplex")
	}

	cmap := opts.ColorMap
	if cmap == nil {
		cmap = moreland.Kindlmann()
	}
	cmap.SetMin(0)
	cmap.SetMax(1)

	p.Add(&Bands{
		Mesh:   mesh,
		Values: vals,
		Edges:  levelEdges(lo, hi, opts.Levels),
		Colors: cmap.Palette(opts.Levels).Colors(),
	})
	frame(p, opts.Border)
	return nil
}

// clampNonFinite replaces NaN and -Inf with the finite minimum and +Inf
// with the finite maximum, in place.
func clampNonFinite(v []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			lo, hi = math.Min(lo, x), math.Max(hi, x)
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	for i, x := range v {
		switch {
		case math.IsInf(x, 1):
			v[i] = hi
		case math.IsNaN(x), math.IsInf(x, -1):
			v[i] = lo
		}
	}
	return lo, hi, true
}

// levelEdges splits [lo, hi] into n equal bands, returning n+1 edges.
func levelEdges(lo, hi float64, n int) []float64 {
	e := make([]float64, n+1)
	for k := range e {
		e[k] = lo + (hi-lo)*float64(k)/float64(n)
	}
	e[n] = hi
	return e
}

// frame fixes the view to the reference triangle with hidden axes.
func frame(p *plot.Plot, border bool) {
	if border {
		c := Corners()
		l, err := plotter.NewLine(plotter.XYs{
			{X: c[0].X, Y: c[0].Y}, {X: c[1].X, Y: c[1].Y},
			{X: c[2].X, Y: c[2].Y}, {X: c[0].X, Y: c[0].Y},
		})
		if err == nil {
			l.LineStyle.Width = vg.Points(1)
			p.Add(l)
		}
	}
	p.HideAxes()
	p.X.Padding, p.Y.Padding = 0, 0
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, Height
}

// Bands is a plot.Plotter filling each value band of a piecewise-linear
// field over a triangle mesh.
type Bands struct {
	Mesh   *Mesh
	Values []float64
	// Edges holds len(Colors)+1 increasing band boundaries.
	Edges  []float64
	Colors []color.Color
}

// Plot implements plot.Plotter.
func (b *Bands) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	nb := len(b.Colors)
	lo, hi := b.Edges[0], b.Edges[nb]
	width := (hi - lo) / float64(nb)
	band := func(v float64) int {
		if width == 0 {
			return 0
		}
		k := int((v - lo) / width)
		return max(0, min(k, nb-1))
	}

	seam := draw.LineStyle{Width: seamWidth(c)}
	var poly []vertex
	pts := make([]vg.Point, 0, 9)
	for _, t := range b.Mesh.Triangles {
		tri := [3]vertex{}
		for i, idx := range t {
			tri[i] = vertex{p: b.Mesh.Points[idx], v: b.Values[idx]}
		}
		kmin, kmax := band(math.Min(tri[0].v, math.Min(tri[1].v, tri[2].v))), band(math.Max(tri[0].v, math.Max(tri[1].v, tri[2].v)))
		for k := kmin; k <= kmax; k++ {
			if kmin == kmax {
				poly = append(poly[:0], tri[:]...)
			} else {
				poly = clipBand(tri[:], b.Edges[k], b.Edges[k+1])
			}
			if len(poly) < 3 {
				continue
			}
			pts = pts[:0]
			for _, q := range poly {
				pts = append(pts, vg.Point{X: trX(q.p.X), Y: trY(q.p.Y)})
			}
			c.FillPolygon(b.Colors[k], pts)
			// Anti-aliased edges of adjacent pieces leave background
			// showing through; outline each piece in its own color.
			seam.Color = b.Colors[k]
			c.StrokeLines(seam, append(pts, pts[0]))
		}
	}
}

// seamWidth is about one device pixel on raster canvases and half a point
// otherwise.
func seamWidth(c draw.Canvas) vg.Length {
	w := vg.Points(0.5)
	if r, ok := c.Canvas.(interface{ DPI() float64 }); ok && r.DPI() > 0 {
		w = max(w, vg.Inch*1.2/vg.Length(r.DPI()))
	}
	return w
}

type vertex struct {
	p Point
	v float64
}

// clipBand returns the part of poly where lo ≤ v ≤ hi.
func clipBand(poly []vertex, lo, hi float64) []vertex {
	poly = clipHalf(poly, lo, 1)
	return clipHalf(poly, hi, -1)
}

// clipHalf keeps the part of poly where sign·(v - level) ≥ 0, interpolating
// linearly along crossing edges.
func clipHalf(poly []vertex, level, sign float64) []vertex {
	if len(poly) == 0 {
		return nil
	}
	out := make([]vertex, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	prevIn := sign*(prev.v-level) >= 0
	for _, cur := range poly {
		curIn := sign*(cur.v-level) >= 0
		if curIn != prevIn {
			t := (level - prev.v) / (cur.v - prev.v)
			out = append(out, vertex{
				p: Point{X: prev.p.X + t*(cur.p.X-prev.p.X), Y: prev.p.Y + t*(cur.p.Y-prev.p.Y)},
				v: level,
			})
		}
		if curIn {
			out = append(out, cur)
		}
		prev, prevIn = cur, curIn
	}
	return out
}
