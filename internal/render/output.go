// Package render draws the density and trend figures, as static PNG images
// (gonum/plot) and as interactive HTML pages (go-echarts).
package render

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/banshee-data/coinviz/internal/density"
	"github.com/banshee-data/coinviz/internal/fsutil"
	"github.com/banshee-data/coinviz/internal/overlay"
	"github.com/banshee-data/coinviz/internal/trend"
	"gonum.org/v1/plot/vg"
)

// File names written by Output.
const (
	DensityPNGFile  = "coin_density.png"
	DensityHTMLFile = "coin_density.html"
	DensityCSVFile  = "coin_density.csv"
	TrendPNGFile    = "score_trend.png"
	TrendHTMLFile   = "score_trend.html"
)

// Output writes figures into a directory.
type Output struct {
	FS   fsutil.FileSystem
	Dir  string
	HTML HTMLOptions

	// Figure sizes; zero values use 10x8 inch for density and 10x6 for trend.
	Width  vg.Length
	Height vg.Length
}

// Density writes the PNG and HTML density figures plus the cell values as
// CSV, and returns their paths.
func (o *Output) Density(g *density.Grid, ov *overlay.Overlay) ([]string, error) {
	w, h := o.size(10*vg.Inch, 8*vg.Inch)
	return o.writeAll(
		namedWriter{DensityPNGFile, func(wr io.Writer) error { return WriteDensityPNG(wr, g, ov, w, h) }},
		namedWriter{DensityHTMLFile, func(wr io.Writer) error { return WriteDensityHTML(wr, g, ov, o.HTML) }},
		namedWriter{DensityCSVFile, func(wr io.Writer) error { return WriteDensityCSV(wr, g) }},
	)
}

// Trend writes the PNG and HTML trend figures and returns their paths.
func (o *Output) Trend(set *trend.Set) ([]string, error) {
	w, h := o.size(10*vg.Inch, 6*vg.Inch)
	return o.writeAll(
		namedWriter{TrendPNGFile, func(wr io.Writer) error { return WriteTrendPNG(wr, set, w, h) }},
		namedWriter{TrendHTMLFile, func(wr io.Writer) error { return WriteTrendHTML(wr, set, o.HTML) }},
	)
}

func (o *Output) size(defW, defH vg.Length) (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w == 0 {
		w = defW
	}
	if h == 0 {
		h = defH
	}
	return w, h
}

type namedWriter struct {
	name  string
	write func(io.Writer) error
}

func (o *Output) writeAll(ws ...namedWriter) ([]string, error) {
	if err := o.FS.MkdirAll(o.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	paths := make([]string, 0, len(ws))
	for _, nw := range ws {
		path := filepath.Join(o.Dir, nw.name)
		f, err := o.FS.Create(path)
		if err != nil {
			return paths, fmt.Errorf("create %s: %w", path, err)
		}
		if err := nw.write(f); err != nil {
			f.Close()
			return paths, err
		}
		if err := f.Close(); err != nil {
			return paths, fmt.Errorf("close %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
