package ndvitools

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the finite cells of a grid.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Valid  int // finite cells
	Undef  int // NaN cells
}

// Finite returns the grid's finite cell values as float64s, the form the
// statistics and display-scaling code works in. NaN and Inf cells are
// dropped.
func (g *Grid) Finite() []float64 {
	out := make([]float64, 0, len(g.Data))
	for _, v := range g.Data {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Summarize computes grid statistics over finite cells only. A grid with
// no finite cells reports NaN for every moment.
func Summarize(g *Grid) Stats {
	finite := g.Finite()
	s := Stats{Valid: len(finite), Undef: len(g.Data) - len(finite)}
	if len(finite) == 0 {
		s.Min, s.Max, s.Mean, s.StdDev = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	s.Mean = stat.Mean(finite, nil)
	s.StdDev = stat.StdDev(finite, nil)
	return s
}

// Quantiles returns the p-quantiles of the grid's finite cells, used for
// robust display ranges. NaN per quantile when the grid has no finite
// cells.
func Quantiles(g *Grid, ps ...float64) []float64 {
	finite := g.Finite()
	sort.Float64s(finite)
	out := make([]float64, len(ps))
	for i, p := range ps {
		if len(finite) == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = stat.Quantile(p, stat.Empirical, finite, nil)
	}
	return out
}
