/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ndvi-tools/ndvitools"
	"ndvi-tools/render"
)

var bandNum int

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [tif_file]",
	Short: "Render one band of a raster as a false-color PNG",
	Long: `Render a single band of any raster with the terrain palette,
	for eyeballing inputs before computing indexes. Band 1 is drawn unless
	--band says otherwise. Without --png the image lands next to the input
	with a .png extension.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevels()

		g, err := ndvitools.LoadBand(dir, args[0], bandNum)
		if err != nil {
			logrus.Fatal(err)
		}

		out := pngOut
		if out == "" {
			base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			out = filepath.Join(dir, base+".png")
		}
		img, err := render.Image(g, renderOpts())
		if err != nil {
			logrus.Fatal(err)
		}
		if err := render.WritePNG(out, img); err != nil {
			logrus.Fatal(err)
		}
		fmt.Printf("Wrote %s\n", out)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	// Here you will define your flags and configuration settings.
	renderCmd.Flags().StringVarP(&dir, "dir", "D", ".", "Directory holding the raster")
	renderCmd.Flags().IntVarP(&bandNum, "band", "b", 1, "1-based raster band to draw")
	addRenderFlags(renderCmd)
}
