// Package gridio writes grids and aggregated cells to files.
package gridio

import (
	"errors"
	"math"

	"github.com/airbusgeo/godal"
	"github.com/sirupsen/logrus"

	"ndvi-tools/ndvitools"
)

// WriteGTiff writes a grid as a single-band Float32 GeoTIFF carrying the
// georeferencing it was loaded with. Undefined cells are written as NaN,
// and NaN is declared as the band's nodata value so downstream tools mask
// them.
func WriteGTiff(path string, g *ndvitools.Grid, ref ndvitools.Georef) (err error) {
	godal.RegisterAll()

	ds, err := godal.Create(
		godal.GTiff,
		path,
		1,
		godal.Float32,
		g.Cols,
		g.Rows,
		godal.CreationOption("TILED=YES", "COMPRESS=DEFLATE"),
	)
	if err != nil {
		logrus.Error(err)
		return err
	}
	defer func() {
		err = errors.Join(err, ds.Close())
	}()

	if ref.Zero() {
		logrus.Warnf("Writing %s without georeferencing", path)
	} else {
		if err := ds.SetGeoTransform(ref.GeoTransform()); err != nil {
			return err
		}
		if ref.Proj != "" {
			sr, err := godal.NewSpatialRefFromWKT(ref.Proj)
			if err != nil {
				return err
			}
			defer sr.Close()
			if err := ds.SetSpatialRef(sr); err != nil {
				return err
			}
		}
	}

	band := &ds.Bands()[0]
	if err := band.SetNoData(math.NaN()); err != nil {
		return err
	}
	return band.Write(0, 0, g.Data, g.Cols, g.Rows)
}
