package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgsvg"
)

func TestFormatsSorted(t *testing.T) {
	assert.Equal(t, []string{"eps", "jpeg", "jpg", "pdf", "png", "svg", "tif", "tiff"}, Formats())
}

func TestRegisterIsLastWins(t *testing.T) {
	orig := canvases["svg"]
	t.Cleanup(func() { Register("svg", orig) })

	calls := 0
	Register("svg", func(w, h vg.Length, _ int) vg.CanvasWriterTo {
		calls++
		return vgsvg.New(w, h)
	})
	_, err := Encode("svg", vg.Inch, vg.Inch, 72, square)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
