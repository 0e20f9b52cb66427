// Package cmd /*
package cmd

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ndvi-tools/gridio"
	"ndvi-tools/ndvitools"
	"ndvi-tools/render"
)

var dir string
var redBand int
var nirBand int
var pngOut string
var tifOut string
var rangeMin float64
var rangeMax float64
var robust bool
var maxDim int

// ndviCmd represents the ndvi command
var ndviCmd = &cobra.Command{
	Use:   "ndvi [tif_file]",
	Short: "Compute the vegetation index of one acquisition",
	Long: `Compute (NIR - red) / (NIR + red) per pixel from a multi-band
	GeoTIFF. Band 3 is read as red and band 4 as near-infrared unless
	overridden. Pixels where both bands are zero come out undefined and
	stay masked in every output.

	With no output flags the command prints summary statistics only.

	Options:
		--png:	Write the index as a false-color PNG with a legend
		--tif:	Write the index as a single-band Float32 GeoTIFF`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevels()

		opts := ndvitools.ConfigOpts{RedBand: redBand, NIRBand: nirBand}
		scene, err := ndvitools.LoadScene(dir, args[0], opts)
		if err != nil {
			logrus.Fatal(err)
		}
		index, err := ndvitools.Index(scene.Red, scene.NIR)
		if err != nil {
			logrus.Fatal(err)
		}

		printSummary("NDVI", index)
		writeOutputs(index, scene.Georef)
	},
}

func setLogLevels() {
	if viper.GetBool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	} else if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func printSummary(what string, g *ndvitools.Grid) {
	s := ndvitools.Summarize(g)
	fmt.Printf("%s: %dx%d cells (%d finite, %d undefined)\n", what, g.Rows, g.Cols, s.Valid, s.Undef)
	if s.Valid > 0 {
		fmt.Printf("    min %.4f  max %.4f  mean %.4f  stddev %.4f\n", s.Min, s.Max, s.Mean, s.StdDev)
	}
}

// writeOutputs writes whichever of the PNG and GeoTIFF outputs were
// requested by flags.
func writeOutputs(g *ndvitools.Grid, ref ndvitools.Georef) {
	if pngOut != "" {
		img, err := render.Image(g, renderOpts())
		if err != nil {
			logrus.Fatal(err)
		}
		if err := render.WritePNG(pngOut, img); err != nil {
			logrus.Fatal(err)
		}
		fmt.Printf("Wrote %s\n", pngOut)
	}
	if tifOut != "" {
		if err := gridio.WriteGTiff(tifOut, g, ref); err != nil {
			logrus.Fatal(err)
		}
		fmt.Printf("Wrote %s\n", tifOut)
	}
}

func renderOpts() render.Opts {
	opts := render.DefaultOpts()
	opts.Min = rangeMin
	opts.Max = rangeMax
	opts.Robust = robust
	opts.MaxDim = maxDim
	return opts
}

// addRenderFlags registers the display flags shared by every command that
// can write a PNG.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pngOut, "png", "", "Write a false-color PNG to this path")
	cmd.Flags().Float64Var(&rangeMin, "min", math.NaN(), "Lower bound of the color range. Default is the data minimum")
	cmd.Flags().Float64Var(&rangeMax, "max", math.NaN(), "Upper bound of the color range. Default is the data maximum")
	cmd.Flags().BoolVar(&robust, "robust", false, "Stretch colors to the 2-98 percentile range instead of min/max")
	cmd.Flags().IntVar(&maxDim, "maxDim", 0, "Downscale renderings whose longest side exceeds this many pixels")
}

func init() {
	rootCmd.AddCommand(ndviCmd)

	// Here you will define your flags and configuration settings.
	ndviCmd.Flags().StringVarP(&dir, "dir", "D", ".", "Directory holding the raster")
	ndviCmd.Flags().IntVar(&redBand, "redBand", 3, "1-based raster band to read as red")
	ndviCmd.Flags().IntVar(&nirBand, "nirBand", 4, "1-based raster band to read as near-infrared")
	ndviCmd.Flags().StringVar(&tifOut, "tif", "", "Write the result as a Float32 GeoTIFF to this path")
	addRenderFlags(ndviCmd)
}
