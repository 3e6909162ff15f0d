// internal/render/registry.go
package render

import (
	"sort"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// CanvasFunc builds an empty canvas of the given size. Vector formats
// ignore dpi.
type CanvasFunc func(w, h vg.Length, dpi int) vg.CanvasWriterTo

// Canvas registry (file extension → constructor). Register is last-wins.
var canvases = map[string]CanvasFunc{}

// Register adds or replaces the constructor for ext (lower case, no dot).
func Register(ext string, fn CanvasFunc) { canvases[ext] = fn }

// Formats lists the registered extensions in sorted order.
func Formats() []string {
	out := make([]string, 0, len(canvases))
	for k := range canvases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func raster(w, h vg.Length, dpi int) *vgimg.Canvas {
	return vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
}

func init() {
	Register("png", func(w, h vg.Length, dpi int) vg.CanvasWriterTo {
		return vgimg.PngCanvas{Canvas: raster(w, h, dpi)}
	})
	jpeg := func(w, h vg.Length, dpi int) vg.CanvasWriterTo {
		return vgimg.JpegCanvas{Canvas: raster(w, h, dpi)}
	}
	Register("jpg", jpeg)
	Register("jpeg", jpeg)
	tiff := func(w, h vg.Length, dpi int) vg.CanvasWriterTo {
		return vgimg.TiffCanvas{Canvas: raster(w, h, dpi)}
	}
	Register("tif", tiff)
	Register("tiff", tiff)
	Register("svg", func(w, h vg.Length, _ int) vg.CanvasWriterTo { return vgsvg.New(w, h) })
	Register("pdf", func(w, h vg.Length, _ int) vg.CanvasWriterTo { return vgpdf.New(w, h) })
	Register("eps", func(w, h vg.Length, _ int) vg.CanvasWriterTo { return vgeps.New(w, h) })
}
