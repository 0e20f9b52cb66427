package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"ndvi-tools/ndvitools"
)

const (
	legendBarWidth = 16
	legendPad      = 8
	legendWidth    = 72
	minLegendH     = 48
)

// Opts controls how a grid is mapped to colors. Min and Max pin the
// color range; leave them NaN to scale to the data. Robust stretches to
// the 2-98 percentile range instead of the full min/max. MaxDim, when
// positive, downscales larger renderings so their longest side fits it.
// Legend appends a color bar with tick labels on the right.
type Opts struct {
	Palette Palette
	Min     float64
	Max     float64
	Robust  bool
	MaxDim  int
	Legend  bool
}

// DefaultOpts renders with the reversed terrain palette, a data-scaled
// range and a legend.
func DefaultOpts() Opts {
	return Opts{
		Palette: Terrain().Reversed(),
		Min:     math.NaN(),
		Max:     math.NaN(),
		Legend:  true,
	}
}

// Image renders a grid as a false-color image. The grid may be a raw
// band, an index or a change map; only its values matter. Undefined (NaN)
// cells come out fully transparent, which the legend backdrop then shows
// as white.
func Image(g *ndvitools.Grid, opts Opts) (image.Image, error) {
	lo, hi, err := valueRange(g, opts)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Rendering %dx%d grid over [%g, %g]", g.Rows, g.Cols, lo, hi)

	img := image.NewNRGBA(image.Rect(0, 0, g.Cols, g.Rows))
	span := hi - lo
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			v := float64(g.At(row, col))
			if math.IsNaN(v) {
				continue
			}
			img.SetNRGBA(col, row, opts.Palette.At((v-lo)/span))
		}
	}

	var out image.Image = img
	if opts.MaxDim > 0 && (g.Cols > opts.MaxDim || g.Rows > opts.MaxDim) {
		out = shrink(img, opts.MaxDim)
	}
	if opts.Legend {
		out = withLegend(out, opts.Palette, lo, hi)
	}
	return out, nil
}

// WritePNG encodes img to path. This is the tool's stand-in for an
// interactive display: commands write a PNG and the operator opens it.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		logrus.Error(err)
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return png.Encode(f, img)
}

func valueRange(g *ndvitools.Grid, opts Opts) (float64, float64, error) {
	lo, hi := opts.Min, opts.Max
	if math.IsNaN(lo) || math.IsNaN(hi) {
		dataLo, dataHi, err := dataRange(g, opts.Robust)
		if err != nil {
			return 0, 0, err
		}
		if math.IsNaN(lo) {
			lo = dataLo
		}
		if math.IsNaN(hi) {
			hi = dataHi
		}
	}
	if hi <= lo {
		return 0, 0, fmt.Errorf("empty display range [%g, %g]", lo, hi)
	}
	return lo, hi, nil
}

func dataRange(g *ndvitools.Grid, robust bool) (float64, float64, error) {
	if robust {
		qs := ndvitools.Quantiles(g, 0.02, 0.98)
		if !math.IsNaN(qs[0]) && qs[1] > qs[0] {
			return qs[0], qs[1], nil
		}
		// stretch collapsed, fall back to the full range
	}
	s := ndvitools.Summarize(g)
	if s.Valid == 0 {
		return 0, 0, fmt.Errorf("grid has no finite cells to render")
	}
	if s.Max == s.Min {
		// a flat grid still renders, centered on the palette
		return s.Min - 0.5, s.Max + 0.5, nil
	}
	return s.Min, s.Max, nil
}

func shrink(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if b.Dx() >= b.Dy() {
		return resize.Resize(uint(maxDim), 0, img, resize.MitchellNetravali)
	}
	return resize.Resize(0, uint(maxDim), img, resize.MitchellNetravali)
}

// withLegend composes the rendered map onto a white backdrop with a
// vertical color bar and min/mid/max tick labels to its right.
func withLegend(img image.Image, p Palette, lo, hi float64) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	canvasH := h
	if canvasH < minLegendH {
		canvasH = minLegendH
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, w+legendPad+legendWidth, canvasH))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, w, h), img, b.Min, draw.Over)

	barX := w + legendPad
	barTop, barBottom := 2, canvasH-3
	for y := barTop; y <= barBottom; y++ {
		c := p.At(float64(barBottom-y) / float64(barBottom-barTop))
		for x := barX; x < barX+legendBarWidth; x++ {
			canvas.SetNRGBA(x, y, c)
		}
	}

	labelX := barX + legendBarWidth + 4
	drawLabel(canvas, labelX, barTop+10, fmt.Sprintf("%.3g", hi))
	drawLabel(canvas, labelX, (barTop+barBottom)/2+4, fmt.Sprintf("%.3g", (lo+hi)/2))
	drawLabel(canvas, labelX, barBottom, fmt.Sprintf("%.3g", lo))
	return canvas
}

func drawLabel(dst draw.Image, x, y int, s string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
