// Package ndvitools computes NDVI and NDVI change grids from multi-band
// satellite rasters.
package ndvitools

import "math"

// nan32 is the undefined-value sentinel for cells where an index cannot be
// computed, such as a zero NDVI denominator.
var nan32 = float32(math.NaN())

// Grid is one band's worth of raster data, row-major: Data[row*Cols+col].
// Grids are created by the loader or a calculator and not mutated afterwards.
type Grid struct {
	Rows, Cols int
	Data       []float32
}

func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// At returns the value at (row, col). Out-of-bounds access panics like the
// underlying slice access would.
func (g *Grid) At(row, col int) float32 {
	return g.Data[row*g.Cols+col]
}

func (g *Grid) Set(row, col int, v float32) {
	g.Data[row*g.Cols+col] = v
}

// SameShape reports whether both grids have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.Rows == o.Rows && g.Cols == o.Cols
}
