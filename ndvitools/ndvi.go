package ndvitools

import "fmt"

// Index computes the normalized difference (nir-red)/(nir+red) cell by
// cell. Cells where the denominator is zero come out as NaN rather than
// aborting the whole grid; every other cell is still computed. For
// physically sensible band data the result lies in [-1, 1], with dense
// vegetation towards +1 and water or bare rock towards -1.
func Index(red, nir *Grid) (*Grid, error) {
	if !red.SameShape(nir) {
		return nil, fmt.Errorf("band shapes differ: %dx%d vs %dx%d", red.Rows, red.Cols, nir.Rows, nir.Cols)
	}
	out := NewGrid(red.Rows, red.Cols)
	for i, r := range red.Data {
		n := nir.Data[i]
		den := n + r
		if den == 0 {
			out.Data[i] = nan32
			continue
		}
		out.Data[i] = (n - r) / den
	}
	return out, nil
}

// NDVI loads dir/filename with the default band layout and computes its
// vegetation index.
func NDVI(dir, filename string) (*Grid, error) {
	red, nir, err := LoadBands(dir, filename)
	if err != nil {
		return nil, err
	}
	return Index(red, nir)
}

// Diff subtracts before from after cell by cell. The grids must share a
// shape; co-registration beyond that is the caller's responsibility. NaN
// in either input yields NaN in the result.
func Diff(after, before *Grid) (*Grid, error) {
	if !after.SameShape(before) {
		return nil, fmt.Errorf("grid shapes differ: %dx%d vs %dx%d", after.Rows, after.Cols, before.Rows, before.Cols)
	}
	out := NewGrid(after.Rows, after.Cols)
	for i, a := range after.Data {
		out.Data[i] = a - before.Data[i]
	}
	return out, nil
}

// NDVIChange computes index(after) minus index(before) for two rasters in
// dir. Negative cells mark vegetation loss, the more negative the heavier
// the loss; positive cells mark gain.
func NDVIChange(dir, beforeFile, afterFile string) (*Grid, error) {
	after, err := NDVI(dir, afterFile)
	if err != nil {
		return nil, err
	}
	before, err := NDVI(dir, beforeFile)
	if err != nil {
		return nil, err
	}
	return Diff(after, before)
}
