package ndvitools

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/airbusgeo/godal"
	"github.com/sirupsen/logrus"
)

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Georef ties a grid to the ground: the top-left origin and per-pixel
// resolution from the raster's geotransform, plus the projection WKT when
// one is set. YRes is negative for north-up rasters.
type Georef struct {
	Origin Point
	XRes   float64
	YRes   float64
	Proj   string
}

// GeoTransform returns the affine transform in GDAL's [6]float64 layout.
func (ref Georef) GeoTransform() [6]float64 {
	return [6]float64{ref.Origin.Lng, ref.XRes, 0, ref.Origin.Lat, 0, ref.YRes}
}

// CellCenter returns the geographic center of the pixel at (row, col).
func (ref Georef) CellCenter(row, col int) Point {
	lat := ref.Origin.Lat + (float64(row)+0.5)*ref.YRes
	lng := ref.Origin.Lng + (float64(col)+0.5)*ref.XRes
	return Point{Lat: lat, Lng: lng}
}

// Zero reports whether the raster carried no geotransform at all.
func (ref Georef) Zero() bool {
	return ref.XRes == 0 && ref.YRes == 0
}

// ConfigOpts selects which raster bands feed the index. Band numbers are
// 1-based, the GDAL convention.
type ConfigOpts struct {
	RedBand int
	NIRBand int
}

// DefaultOpts reads band 3 as red and band 4 as near-infrared, the layout
// of the Sentinel-style imagery this tool was built around.
func DefaultOpts() ConfigOpts {
	return ConfigOpts{RedBand: 3, NIRBand: 4}
}

// Scene holds the two bands of interest from one acquisition together with
// its georeferencing.
type Scene struct {
	Red    *Grid
	NIR    *Grid
	Georef Georef
}

// LoadScene opens the raster at dir/filename and reads its red and NIR
// bands into float32 grids. The dataset handle is released before
// returning, on error paths included.
func LoadScene(dir, filename string, opts ConfigOpts) (scene *Scene, err error) {
	godal.RegisterAll()

	fp := filepath.Join(dir, filename)
	ds, err := godal.Open(fp)
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	defer func() {
		err = errors.Join(err, ds.Close())
	}()

	if opts.RedBand < 1 || opts.NIRBand < 1 {
		return nil, fmt.Errorf("band numbers are 1-based, got red %d, NIR %d", opts.RedBand, opts.NIRBand)
	}
	bands := ds.Bands()
	maxBand := opts.RedBand
	if opts.NIRBand > maxBand {
		maxBand = opts.NIRBand
	}
	if len(bands) < maxBand {
		return nil, fmt.Errorf("raster %s has %d bands, band %d requested", fp, len(bands), maxBand)
	}

	ref, err := georefFromDataset(ds)
	if err != nil {
		logrus.Warnf("No geotransform on %s, georeferenced outputs will be unavailable: %v", fp, err)
		ref = Georef{}
	}

	logrus.Infof("Reading bands %d (red) and %d (NIR) from %s", opts.RedBand, opts.NIRBand, fp)
	red, err := readBand(&bands[opts.RedBand-1])
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	nir, err := readBand(&bands[opts.NIRBand-1])
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	return &Scene{Red: red, NIR: nir, Georef: ref}, nil
}

// LoadBands reads the red and NIR bands from dir/filename using the
// default band layout.
func LoadBands(dir, filename string) (*Grid, *Grid, error) {
	scene, err := LoadScene(dir, filename, DefaultOpts())
	if err != nil {
		return nil, nil, err
	}
	return scene.Red, scene.NIR, nil
}

// LoadBand reads a single 1-based band of dir/filename as a grid.
func LoadBand(dir, filename string, band int) (g *Grid, err error) {
	godal.RegisterAll()

	fp := filepath.Join(dir, filename)
	ds, err := godal.Open(fp)
	if err != nil {
		logrus.Error(err)
		return nil, err
	}
	defer func() {
		err = errors.Join(err, ds.Close())
	}()

	bands := ds.Bands()
	if band < 1 || len(bands) < band {
		return nil, fmt.Errorf("raster %s has %d bands, band %d requested", fp, len(bands), band)
	}
	return readBand(&bands[band-1])
}

func readBand(band *godal.Band) (*Grid, error) {
	struc := band.Structure()
	g := NewGrid(struc.SizeY, struc.SizeX)
	if err := band.Read(0, 0, g.Data, struc.SizeX, struc.SizeY); err != nil {
		return nil, err
	}
	return g, nil
}

func georefFromDataset(ds *godal.Dataset) (Georef, error) {
	gt, err := ds.GeoTransform()
	if err != nil {
		return Georef{}, err
	}
	ref := Georef{
		Origin: Point{Lat: gt[3], Lng: gt[0]},
		XRes:   gt[1],
		YRes:   gt[5],
	}
	// Projection is optional metadata, a raster without one still loads.
	if sr := ds.SpatialRef(); sr != nil {
		if wkt, err := sr.WKT(); err == nil {
			ref.Proj = wkt
		}
	}
	return ref, nil
}
