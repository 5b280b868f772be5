package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/banshee-data/coinviz/internal/density"
)

// DensityCSVHeader is the header row of WriteDensityCSV.
var DensityCSVHeader = []string{"x", "y", "density"}

// WriteDensityCSV writes one row per cell, x varying fastest, so the numbers
// behind the heatmap can be checked or re-plotted elsewhere.
func WriteDensityCSV(w io.Writer, g *density.Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DensityCSVHeader); err != nil {
		return err
	}
	for y := 0; y < g.Size(); y++ {
		for x := 0; x < g.Size(); x++ {
			row := []string{
				fmt.Sprintf("%d", x),
				fmt.Sprintf("%d", y),
				fmt.Sprintf("%.6f", g.At(x, y)),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
