package render

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"ndvi-tools/ndvitools"
)

var nan32 = float32(math.NaN())

func fixedOpts() Opts {
	opts := DefaultOpts()
	opts.Min = 0
	opts.Max = 1
	opts.Legend = false
	return opts
}

func TestImageUndefinedTransparent(t *testing.T) {
	g := &ndvitools.Grid{Rows: 1, Cols: 2, Data: []float32{0, nan32}}

	img, err := Image(g, fixedOpts())
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		t.Error("finite cell must be opaque")
	}
	if _, _, _, a := img.At(1, 0).RGBA(); a != 0 {
		t.Error("undefined cell must be transparent")
	}
}

func TestImageClampsToRange(t *testing.T) {
	g := &ndvitools.Grid{Rows: 1, Cols: 3, Data: []float32{-5, 0, 9}}

	img, err := Image(g, fixedOpts())
	if err != nil {
		t.Fatal(err)
	}

	if img.At(0, 0) != img.At(1, 0) {
		t.Errorf("below-range cell: got %v, want %v", img.At(0, 0), img.At(1, 0))
	}
	low, high := img.At(0, 0), img.At(2, 0)
	if low == high {
		t.Error("range endpoints must map to different colors")
	}
}

func TestImageAutoRange(t *testing.T) {
	g := &ndvitools.Grid{Rows: 1, Cols: 2, Data: []float32{-0.3, 0.7}}

	opts := DefaultOpts()
	opts.Legend = false
	img, err := Image(g, opts)
	if err != nil {
		t.Fatal(err)
	}

	// data min and max land on the palette ends
	if got, want := img.At(0, 0), opts.Palette.At(0); got != want {
		t.Errorf("minimum: got %v, want %v", got, want)
	}
	if got, want := img.At(1, 0), opts.Palette.At(1); got != want {
		t.Errorf("maximum: got %v, want %v", got, want)
	}
}

func TestImageFlatGrid(t *testing.T) {
	g := &ndvitools.Grid{Rows: 1, Cols: 2, Data: []float32{0.4, 0.4}}

	opts := DefaultOpts()
	opts.Legend = false
	img, err := Image(g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if img.At(0, 0) != img.At(1, 0) {
		t.Error("flat grid must render uniformly")
	}
}

func TestImageAllUndefined(t *testing.T) {
	g := &ndvitools.Grid{Rows: 1, Cols: 2, Data: []float32{nan32, nan32}}

	if _, err := Image(g, DefaultOpts()); err == nil {
		t.Error("expected an error scaling to a grid with no finite cells")
	}

	// a pinned range still renders, all transparent
	img, err := Image(g, fixedOpts())
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("undefined cell must be transparent")
	}
}

func TestImageEmptyRange(t *testing.T) {
	g := &ndvitools.Grid{Rows: 1, Cols: 1, Data: []float32{0.5}}

	opts := fixedOpts()
	opts.Min, opts.Max = 1, 1
	if _, err := Image(g, opts); err == nil {
		t.Error("expected an error for an empty display range")
	}
}

func TestImageLegend(t *testing.T) {
	g := &ndvitools.Grid{Rows: 2, Cols: 3, Data: []float32{0, 0.2, 0.4, 0.6, 0.8, 1}}

	opts := fixedOpts()
	opts.Legend = true
	img, err := Image(g, opts)
	if err != nil {
		t.Fatal(err)
	}

	b := img.Bounds()
	if got, want := b.Dx(), 3+legendPad+legendWidth; got != want {
		t.Errorf("legend width: got %d, want %d", got, want)
	}
	if got := b.Dy(); got != minLegendH {
		t.Errorf("legend height: got %d, want %d", got, minLegendH)
	}
}

func TestImageMaxDim(t *testing.T) {
	g := ndvitools.NewGrid(4, 8)

	opts := fixedOpts()
	opts.MaxDim = 4
	img, err := Image(g, opts)
	if err != nil {
		t.Fatal(err)
	}

	b := img.Bounds()
	if b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("got %dx%d, want 4x2", b.Dx(), b.Dy())
	}
}

func TestWritePNG(t *testing.T) {
	g := &ndvitools.Grid{Rows: 1, Cols: 2, Data: []float32{0.1, 0.9}}

	img, err := Image(g, fixedOpts())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("got %v, want %v", decoded.Bounds(), img.Bounds())
	}
}
