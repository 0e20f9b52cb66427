/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ndvi-tools/gridio"
	"ndvi-tools/ndvitools"
)

var cellsCSV string
var cellsParquet string
var s2Lvl int

// changeCmd represents the change command
var changeCmd = &cobra.Command{
	Use:   "change [before_tif] [after_tif]",
	Short: "Compute the NDVI change map between two acquisitions",
	Long: `Compute index(after) - index(before) for two co-registered
	rasters of the same area. Negative values mark vegetation loss, the
	more negative the heavier the loss; positive values mark gain. Pixels
	undefined in either acquisition stay undefined in the change map.

	Options:
		--png:					Write the change map as a false-color PNG
		--tif:					Write the change map as a Float32 GeoTIFF
		--cellsCSV:			Aggregate into S2 cells and write s2_id,value rows
		--cellsParquet:	Aggregate into S2 cells and write parquet
		--s2Lvl:				S2 cell level for aggregation. Essentially output resolution
		--aggFunc:			Function to use when aggregating to S2 cell. Default is the mean,
										choose from: mean, sum, max, min`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevels()

		opts := ndvitools.ConfigOpts{RedBand: redBand, NIRBand: nirBand}
		before, err := ndvitools.LoadScene(dir, args[0], opts)
		if err != nil {
			logrus.Fatal(err)
		}
		after, err := ndvitools.LoadScene(dir, args[1], opts)
		if err != nil {
			logrus.Fatal(err)
		}
		if before.Georef != after.Georef {
			logrus.Warn("Rasters are georeferenced differently, treating them as co-registered anyway")
		}

		beforeIdx, err := ndvitools.Index(before.Red, before.NIR)
		if err != nil {
			logrus.Fatal(err)
		}
		afterIdx, err := ndvitools.Index(after.Red, after.NIR)
		if err != nil {
			logrus.Fatal(err)
		}
		delta, err := ndvitools.Diff(afterIdx, beforeIdx)
		if err != nil {
			logrus.Fatal(err)
		}

		printSummary("NDVI change", delta)
		writeOutputs(delta, after.Georef)
		writeCellOutputs(delta, after.Georef)
	},
}

// writeCellOutputs aggregates the grid into S2 cells and writes whichever
// of the CSV and parquet outputs were requested by flags.
func writeCellOutputs(g *ndvitools.Grid, ref ndvitools.Georef) {
	if cellsCSV == "" && cellsParquet == "" {
		return
	}

	aggFunc := chooseAggFunc(viper.GetString("aggFunc"))
	cells, err := ndvitools.GridToCells(g, ref, s2Lvl, aggFunc)
	if err != nil {
		logrus.Fatal(err)
	}
	if cellsCSV != "" {
		if err := gridio.WriteCellsCSV(cells, cellsCSV); err != nil {
			logrus.Fatal(err)
		}
		fmt.Printf("Wrote %d cells to %s\n", len(cells), cellsCSV)
	}
	if cellsParquet != "" {
		if err := gridio.WriteCellsParquet(cells, cellsParquet); err != nil {
			logrus.Fatal(err)
		}
		fmt.Printf("Wrote %d cells to %s\n", len(cells), cellsParquet)
	}
}

func chooseAggFunc(funcFlag string) ndvitools.AggFunc {
	switch funcFlag {
	case "mean":
		return ndvitools.Mean
	case "sum":
		return ndvitools.Sum
	case "max":
		return ndvitools.Max
	case "min":
		return ndvitools.Min
	default:
		logrus.Warnf("Aggregation function %s not recognized, using mean", funcFlag)
		return ndvitools.Mean
	}
}

func init() {
	rootCmd.AddCommand(changeCmd)

	// Here you will define your flags and configuration settings.
	changeCmd.Flags().StringVarP(&dir, "dir", "D", ".", "Directory holding both rasters")
	changeCmd.Flags().IntVar(&redBand, "redBand", 3, "1-based raster band to read as red")
	changeCmd.Flags().IntVar(&nirBand, "nirBand", 4, "1-based raster band to read as near-infrared")
	changeCmd.Flags().StringVar(&tifOut, "tif", "", "Write the result as a Float32 GeoTIFF to this path")
	addRenderFlags(changeCmd)

	changeCmd.Flags().StringVar(&cellsCSV, "cellsCSV", "", "Aggregate into S2 cells and write CSV to this path")
	changeCmd.Flags().StringVar(&cellsParquet, "cellsParquet", "", "Aggregate into S2 cells and write parquet to this path")

	changeCmd.Flags().IntVarP(&s2Lvl, "s2Lvl", "l", 11, "S2 cell level to aggregate to. Essentially output resolution")
	err := viper.BindPFlag("s2Lvl", changeCmd.Flags().Lookup("s2Lvl"))
	if err != nil {
		logrus.Exit(1)
	}

	changeCmd.Flags().StringP("aggFunc", "a", "mean", "Function to use when aggregating to S2 cell. Default is the mean, choose from: mean, sum, max, min")
	err = viper.BindPFlag("aggFunc", changeCmd.Flags().Lookup("aggFunc"))
	if err != nil {
		logrus.Exit(1)
	}
}
