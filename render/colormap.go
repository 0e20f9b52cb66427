// Package render turns grids into false-color images an operator can
// actually look at.
package render

import "image/color"

type stop struct {
	pos     float64
	r, g, b float64
}

// terrainStops are the anchor colors of the classic "terrain" gradient,
// deep blue through shallow blue, green, sand and brown up to white, with
// positions in [0,1]. Colours between anchors are linearly interpolated.
var terrainStops = []stop{
	{0.00, 0.2, 0.2, 0.6},
	{0.15, 0.0, 0.6, 1.0},
	{0.25, 0.0, 0.8, 0.4},
	{0.50, 1.0, 1.0, 0.6},
	{0.75, 0.5, 0.36, 0.33},
	{1.00, 1.0, 1.0, 1.0},
}

// Palette maps a normalized value in [0,1] to a color.
type Palette struct {
	stops    []stop
	reversed bool
}

// Terrain returns the terrain palette in its natural low-to-high order.
func Terrain() Palette {
	return Palette{stops: terrainStops}
}

// Reversed flips the palette. NDVI maps are drawn reversed so that heavy
// vegetation loss lands in the washed-out high-altitude tones and gain in
// the saturated low ones.
func (p Palette) Reversed() Palette {
	p.reversed = !p.reversed
	return p
}

// At evaluates the palette at t, clamping t into [0,1].
func (p Palette) At(t float64) color.NRGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if p.reversed {
		t = 1 - t
	}
	s := p.stops
	if len(s) == 0 {
		s = terrainStops
	}

	hi := 1
	for hi < len(s)-1 && s[hi].pos < t {
		hi++
	}
	lo := hi - 1
	f := 0.0
	if span := s[hi].pos - s[lo].pos; span > 0 {
		f = (t - s[lo].pos) / span
	}
	return color.NRGBA{
		R: channel(s[lo].r + (s[hi].r-s[lo].r)*f),
		G: channel(s[lo].g + (s[hi].g-s[lo].g)*f),
		B: channel(s[lo].b + (s[hi].b-s[lo].b)*f),
		A: 255,
	}
}

func channel(v float64) uint8 {
	return uint8(v*255 + 0.5)
}
