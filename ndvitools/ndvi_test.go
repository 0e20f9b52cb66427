package ndvitools

import (
	"math"
	"testing"
)

func gridFrom(rows ...[]float32) *Grid {
	g := NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		for c, v := range row {
			g.Set(r, c, v)
		}
	}
	return g
}

func approx(got, want float32) bool {
	return math.Abs(float64(got)-float64(want)) < 1e-6
}

func TestIndex(t *testing.T) {
	red := gridFrom(
		[]float32{1, 2},
		[]float32{3, 4},
	)
	nir := gridFrom(
		[]float32{3, 4},
		[]float32{5, 6},
	)

	got, err := Index(red, nir)
	if err != nil {
		t.Fatal(err)
	}

	want := []float32{0.5, 1.0 / 3.0, 0.25, 0.2}
	for i, w := range want {
		if !approx(got.Data[i], w) {
			t.Errorf("cell %d: got %v, want %v", i, got.Data[i], w)
		}
	}
}

func TestIndexZeroDenominator(t *testing.T) {
	red := gridFrom([]float32{0, 2, -1})
	nir := gridFrom([]float32{0, 6, 1})

	got, err := Index(red, nir)
	if err != nil {
		t.Fatal(err)
	}

	if !math.IsNaN(float64(got.At(0, 0))) {
		t.Errorf("zero denominator: got %v, want NaN", got.At(0, 0))
	}
	if !math.IsNaN(float64(got.At(0, 2))) {
		t.Errorf("cancelling bands: got %v, want NaN", got.At(0, 2))
	}
	// the remaining cell must still be computed
	if !approx(got.At(0, 1), 0.5) {
		t.Errorf("got %v, want 0.5", got.At(0, 1))
	}
}

func TestIndexShapeMismatch(t *testing.T) {
	red := gridFrom([]float32{1, 2})
	nir := gridFrom([]float32{1}, []float32{2})

	if _, err := Index(red, nir); err == nil {
		t.Error("expected an error for mismatched band shapes")
	}
}

func TestIndexRange(t *testing.T) {
	// Non-negative band data keeps the index inside [-1, 1].
	red := gridFrom([]float32{0, 10, 250, 3, 0.5})
	nir := gridFrom([]float32{10, 0, 250, 200, 0.25})

	got, err := Index(red, nir)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got.Data {
		if v < -1 || v > 1 {
			t.Errorf("cell %d: index %v outside [-1, 1]", i, v)
		}
	}
	if !approx(got.At(0, 0), 1) {
		t.Errorf("pure NIR cell: got %v, want 1", got.At(0, 0))
	}
	if !approx(got.At(0, 1), -1) {
		t.Errorf("pure red cell: got %v, want -1", got.At(0, 1))
	}
}

func TestDiff(t *testing.T) {
	before := gridFrom([]float32{0.1, 0.4, -0.2})
	after := gridFrom([]float32{0.3, 0.2, -0.2})

	got, err := Diff(after, before)
	if err != nil {
		t.Fatal(err)
	}

	want := []float32{0.2, -0.2, 0}
	for i, w := range want {
		if !approx(got.Data[i], w) {
			t.Errorf("cell %d: got %v, want %v", i, got.Data[i], w)
		}
	}
}

func TestDiffShapeMismatch(t *testing.T) {
	after := gridFrom([]float32{1, 2}, []float32{3, 4})
	before := gridFrom([]float32{1, 2, 3})

	if _, err := Diff(after, before); err == nil {
		t.Error("expected an error for mismatched grid shapes")
	}
}

func TestDiffPropagatesNaN(t *testing.T) {
	after := gridFrom([]float32{nan32, 0.5})
	before := gridFrom([]float32{0.1, nan32})

	got, err := Diff(after, before)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got.Data {
		if !math.IsNaN(float64(v)) {
			t.Errorf("cell %d: got %v, want NaN", i, v)
		}
	}
}
