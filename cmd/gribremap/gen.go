package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/overcastwx/grib-remap/internal/grib"
	"github.com/overcastwx/grib-remap/internal/gridmsg"
)

// pressureLevels is the standard set of isobaric levels the model templates
// carry, in hPa.
var pressureLevels = []int{1000, 925, 850, 700, 600, 500, 400, 300, 250, 200, 150, 100, 50}

// isobaricFields are the template field names present at every pressure level.
var isobaricFields = []string{"z", "q", "t", "u", "v"}

// surfaceFields are the template field names at the surface level.
var surfaceFields = []string{"z", "msl", "10u", "10v", "100u", "100v", "2t", "tcwv", "tp"}

func genCmd() *cobra.Command {
	var (
		dir  string
		rows int
		cols int
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write synthetic template/source fixture files",
		Long: "Gen writes a matching template.grid and source.grid pair with deterministic\n" +
			"payloads, shaped like a real model template and GDAS analysis. Useful for\n" +
			"exercising the remapper without operational data.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			templatePath := filepath.Join(dir, "template.grid")
			if err := gridmsg.WriteFile(templatePath, genTemplate(rows, cols)); err != nil {
				return err
			}
			sourcePath := filepath.Join(dir, "source.grid")
			if err := gridmsg.WriteFile(sourcePath, genSource(rows, cols)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", templatePath, sourcePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "testdata", "directory to write fixture files into")
	cmd.Flags().IntVar(&rows, "rows", 19, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", 36, "grid columns")

	return cmd
}

// genTemplate builds the slot layout a model template defines: every isobaric
// field at every pressure level, then the surface set. Template payloads are
// zero; the remapper replaces them anyway.
func genTemplate(rows, cols int) []*grib.Record {
	var records []*grib.Record
	for _, name := range isobaricFields {
		for _, level := range pressureLevels {
			records = append(records, &grib.Record{
				ShortName: name,
				LevelType: grib.LevelTypeIsobaric,
				Level:     level,
				Values:    mat.NewDense(rows, cols, nil),
			})
		}
	}
	for _, name := range surfaceFields {
		records = append(records, &grib.Record{
			ShortName: name,
			LevelType: grib.LevelTypeSurface,
			Level:     0,
			Values:    mat.NewDense(rows, cols, nil),
		})
	}
	return records
}

// genSource builds an analysis-style record set carrying, under the GDAS
// naming scheme, exactly the fields the template above requires.
func genSource(rows, cols int) []*grib.Record {
	var records []*grib.Record

	add := func(name string, levelType grib.LevelType, level int) {
		records = append(records, &grib.Record{
			ShortName: name,
			LevelType: levelType,
			Level:     level,
			Values:    genGrid(rows, cols, name, level),
		})
	}

	for _, name := range []string{"gh", "q", "t", "u", "v"} {
		for _, level := range pressureLevels {
			add(name, grib.LevelTypeIsobaric, level)
		}
	}
	add("orog", grib.LevelTypeSurface, 0)
	add("prmsl", grib.LevelTypeMeanSea, 0)
	add("10u", grib.LevelTypeHeightAboveGround, 10)
	add("10v", grib.LevelTypeHeightAboveGround, 10)
	add("100u", grib.LevelTypeHeightAboveGround, 100)
	add("100v", grib.LevelTypeHeightAboveGround, 100)
	add("2t", grib.LevelTypeHeightAboveGround, 2)
	add("pwat", grib.LevelTypeSingleLayer, 0)
	add("prate", grib.LevelTypeSurface, 0)

	return records
}

// genGrid fills a grid with a smooth deterministic pattern seeded by the
// field name and level, so repeated runs produce identical files.
func genGrid(rows, cols int, name string, level int) *mat.Dense {
	seed := float64(level)
	for _, c := range name {
		seed += float64(c)
	}

	g := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.Set(i, j, seed+10*math.Sin(float64(i)/3)+5*math.Cos(float64(j)/5))
		}
	}
	return g
}
