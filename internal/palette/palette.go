// internal/palette/palette.go
//
// Package palette provides the two color schemes of the clustermap: the
// light-to-saturated ramp used for the burden strip and continuous ramps
// through ColorBrewer sequential palettes for cell intensities.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	plotpalette "gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"

	"mutsig/internal/apperr"
)

// lightMix is the share of the base color kept in the light end of a ramp.
const lightMix = 0.07

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("want #RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("want #RRGGBB, got %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Light returns n colors blended linearly from a near-white tint of base up
// to base itself. Index 0 is the lightest. n == 1 yields only the light end.
func Light(base color.Color, n int) []color.Color {
	if n <= 0 {
		return nil
	}
	b := color.NRGBAModel.Convert(base).(color.NRGBA)
	light := mix(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, b, lightMix)
	out := make([]color.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = mix(light, b, t)
	}
	return out
}

// mix returns a + t*(b-a) per channel.
func mix(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 0xff}
}

// SequentialSteps is the length of the ramp Sequential returns.
const SequentialSteps = 256

// Ramp is a fixed list of colors.
type Ramp []color.Color

// Colors implements palette.Palette.
func (r Ramp) Colors() []color.Color { return r }

// Interpolate blends n colors linearly in RGB through the control colors,
// first to last, at equal spacing.
func Interpolate(ctrl []color.Color, n int) Ramp {
	if n <= 0 || len(ctrl) == 0 {
		return nil
	}
	pts := make([]color.NRGBA, len(ctrl))
	for i, c := range ctrl {
		pts[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	out := make(Ramp, n)
	if len(pts) == 1 || n == 1 {
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}
	for i := range out {
		t := float64(i) / float64(n-1) * float64(len(pts)-1)
		k := min(int(t), len(pts)-2)
		out[i] = mix(pts[k], pts[k+1], t-float64(k))
	}
	return out
}

// Sequential returns a SequentialSteps-long ramp through the largest
// variant of a ColorBrewer palette, e.g. "YlGnBu".
func Sequential(name string) (plotpalette.Palette, error) {
	for n := 9; n >= 3; n-- {
		p, err := brewer.GetPalette(brewer.TypeAny, name, n)
		if err == nil {
			return Interpolate(p.Colors(), SequentialSteps), nil
		}
	}
	return nil, apperr.InvalidParameter("unknown ColorBrewer palette %q", name)
}
