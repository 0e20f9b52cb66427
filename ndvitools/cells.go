package ndvitools

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/s2"
	"github.com/sirupsen/logrus"
)

// CellData is one S2 cell's aggregated value.
type CellData struct {
	Cell  s2.CellID
	Value float64
}

func (c CellData) String() string {
	return fmt.Sprintf("%v,%v", int64(c.Cell), c.Value)
}

// GridToCells indexes a grid into S2 cells at the given level, folding the
// pixels that fall into each cell with agg. Pixel centers are mapped
// through ref, which must hold geographic (lat/lng) coordinates. Undefined
// (NaN) pixels are skipped entirely. The result is sorted by cell ID so
// that output files are deterministic.
func GridToCells(g *Grid, ref Georef, level int, agg AggFunc) ([]CellData, error) {
	if ref.Zero() {
		return nil, fmt.Errorf("grid has no georeferencing, cannot assign S2 cells")
	}
	if level < 0 || level > 30 {
		return nil, fmt.Errorf("s2 level %d out of range 0..30", level)
	}

	logrus.Debugf("Indexing %dx%d grid into S2 cells at level %d", g.Rows, g.Cols, level)
	groups := make(map[s2.CellID][]float64)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			v := float64(g.At(row, col))
			if math.IsNaN(v) {
				continue
			}
			center := ref.CellCenter(row, col)
			cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(center.Lat, center.Lng)).Parent(level)
			groups[cell] = append(groups[cell], v)
		}
	}

	cells := make([]CellData, 0, len(groups))
	for cell, values := range groups {
		cells = append(cells, CellData{Cell: cell, Value: agg(values...)})
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Cell < cells[j].Cell })
	return cells, nil
}
