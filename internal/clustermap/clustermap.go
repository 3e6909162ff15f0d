// internal/clustermap/clustermap.go
//
// Package clustermap draws a clustered heatmap: a column dendrogram on top,
// a strip of per-column annotation colors under it, and the heatmap with
// columns in dendrogram leaf order.
package clustermap

import (
	"image/color"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	plotpalette "gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mutsig/internal/apperr"
	"mutsig/internal/linkage"
)

// Share of the figure height given to the dendrogram and the color strip.
const (
	dendrogramShare = 0.2
	stripShare      = 0.05
)

var (
	gap       = vg.Points(3)
	lineStyle = draw.LineStyle{Color: color.Black, Width: vg.Points(0.75)}
)

// Input is everything one clustermap needs.
type Input struct {
	// Title is drawn above the dendrogram.
	Title string
	// Tree clusters the columns (samples).
	Tree *linkage.Tree
	// Rows labels the heatmap rows from top to bottom.
	Rows []string
	// Values is columns × rows in original column order.
	Values mat.Matrix
	// ColumnColors annotates each column, in original order. Optional.
	ColumnColors []color.Color
	// Palette colors the heatmap cells, low to high.
	Palette plotpalette.Palette
	// YLabel names the row axis.
	YLabel string
}

func (in Input) validate() error {
	if in.Tree == nil || in.Values == nil {
		return apperr.New(apperr.CodeInternal, "clustermap: missing tree or values")
	}
	cols, rows := in.Values.Dims()
	if cols != in.Tree.N() {
		return apperr.New(apperr.CodeInternal, "clustermap: %d columns but tree has %d leaves", cols, in.Tree.N())
	}
	if rows == 0 || rows != len(in.Rows) {
		return apperr.New(apperr.CodeInternal, "clustermap: %d rows but %d row labels", rows, len(in.Rows))
	}
	if len(in.ColumnColors) != 0 && len(in.ColumnColors) != cols {
		return apperr.New(apperr.CodeInternal, "clustermap: %d column colors for %d columns", len(in.ColumnColors), cols)
	}
	if in.Palette == nil || len(in.Palette.Colors()) == 0 {
		return apperr.New(apperr.CodeInternal, "clustermap: empty palette")
	}
	return nil
}

// grid presents Values to plotter.HeatMap with columns permuted into leaf
// order and rows flipped so the first label ends up on top.
type grid struct {
	values mat.Matrix
	order  []int
	rows   int
}

func (g grid) Dims() (c, r int)   { return len(g.order), g.rows }
func (g grid) Z(c, r int) float64 { return g.values.At(g.order[c], g.rows-1-r) }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }

// Render draws the clustermap onto dc.
func Render(dc draw.Canvas, in Input) error {
	if err := in.validate(); err != nil {
		return err
	}
	order := in.Tree.Leaves()
	_, rows := in.Values.Dims()

	heat, hm := newHeatmapPlot(in, order, rows)

	height := dc.Max.Y - dc.Min.Y
	topH := height * dendrogramShare
	stripH := vg.Length(0)
	if len(in.ColumnColors) > 0 {
		stripH = height * stripShare
	}
	heatArea := draw.Crop(dc, 0, 0, 0, -(topH + stripH))
	heat.Draw(heatArea)
	data := heat.DataCanvas(heatArea)

	cols := len(order)
	colX := func(v float64) vg.Length {
		return data.Min.X + vg.Length((v+0.5)/float64(cols))*(data.Max.X-data.Min.X)
	}

	if stripH > 0 {
		strip := vg.Rectangle{
			Min: vg.Point{X: data.Min.X, Y: heatArea.Max.Y + gap},
			Max: vg.Point{X: data.Max.X, Y: heatArea.Max.Y + stripH},
		}
		drawStrip(dc, strip, order, in.ColumnColors, colX)
	}

	titleStyle := heat.Title.TextStyle
	titleH := vg.Length(0)
	if in.Title != "" {
		titleH = titleStyle.Rectangle(in.Title).Size().Y + gap
		descent := titleStyle.FontExtents().Descent
		dc.FillText(titleStyle, vg.Point{X: (data.Min.X + data.Max.X) / 2, Y: dc.Max.Y + descent}, in.Title)
	}
	dendro := vg.Rectangle{
		Min: vg.Point{X: data.Min.X, Y: heatArea.Max.Y + stripH + gap},
		Max: vg.Point{X: data.Max.X, Y: dc.Max.Y - titleH},
	}
	drawDendrogram(dc, dendro, in.Tree, colX)

	bar := vg.Rectangle{
		Min: vg.Point{X: dc.Min.X + gap, Y: dendro.Min.Y},
		Max: vg.Point{X: dc.Min.X + gap + vg.Points(10), Y: dendro.Max.Y},
	}
	if bar.Max.X < data.Min.X {
		drawColorBar(dc, bar, in.Palette.Colors(), hm.Min, hm.Max, heat.Y.Tick.Label)
	}
	return nil
}

func newHeatmapPlot(in Input, order []int, rows int) (*plot.Plot, *plotter.HeatMap) {
	p := plot.New()
	p.HideX()
	labels := make([]string, rows)
	for i := range labels {
		labels[i] = in.Rows[rows-1-i]
	}
	p.NominalY(labels...)
	p.Y.Label.Text = in.YLabel

	hm := plotter.NewHeatMap(grid{values: in.Values, order: order, rows: rows}, in.Palette)
	if !(hm.Max > hm.Min) {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)
	p.X.Min, p.X.Max = -0.5, float64(len(order))-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(rows)-0.5
	return p, hm
}

func drawStrip(dc draw.Canvas, r vg.Rectangle, order []int, colors []color.Color, colX func(float64) vg.Length) {
	for pos, col := range order {
		x0, x1 := colX(float64(pos)-0.5), colX(float64(pos)+0.5)
		dc.FillPolygon(colors[col], []vg.Point{
			{X: x0, Y: r.Min.Y}, {X: x1, Y: r.Min.Y},
			{X: x1, Y: r.Max.Y}, {X: x0, Y: r.Max.Y},
		})
	}
}

// drawDendrogram draws one ⊓ per merge with leaves along the bottom of r.
func drawDendrogram(dc draw.Canvas, r vg.Rectangle, tree *linkage.Tree, colX func(float64) vg.Length) {
	x, h := tree.Layout()
	top := h[tree.Root()]
	if top <= 0 {
		top = 1
	}
	y := func(v float64) vg.Length {
		return r.Min.Y + vg.Length(v/top)*(r.Max.Y-r.Min.Y)
	}
	for k, m := range tree.Merges {
		id := tree.N() + k
		dc.StrokeLines(lineStyle, []vg.Point{
			{X: colX(x[m.Left]), Y: y(h[m.Left])},
			{X: colX(x[m.Left]), Y: y(h[id])},
			{X: colX(x[m.Right]), Y: y(h[id])},
			{X: colX(x[m.Right]), Y: y(h[m.Right])},
		})
	}
}

// drawColorBar stacks the palette bottom to top inside r and labels both ends.
func drawColorBar(dc draw.Canvas, r vg.Rectangle, pal []color.Color, lo, hi float64, sty draw.TextStyle) {
	step := (r.Max.Y - r.Min.Y) / vg.Length(len(pal))
	for i, c := range pal {
		y0 := r.Min.Y + vg.Length(i)*step
		dc.FillPolygon(c, []vg.Point{
			{X: r.Min.X, Y: y0}, {X: r.Max.X, Y: y0},
			{X: r.Max.X, Y: y0 + step}, {X: r.Min.X, Y: y0 + step},
		})
	}
	sty.XAlign = draw.XLeft
	sty.YAlign = draw.YBottom
	dc.FillText(sty, vg.Point{X: r.Max.X + gap, Y: r.Min.Y}, formatTick(lo))
	sty.YAlign = draw.YTop
	dc.FillText(sty, vg.Point{X: r.Max.X + gap, Y: r.Max.Y}, formatTick(hi))
}

func formatTick(v float64) string { return strconv.FormatFloat(v, 'g', 3, 64) }
