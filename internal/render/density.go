package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/banshee-data/coinviz/internal/density"
	"github.com/banshee-data/coinviz/internal/overlay"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	DensityTitle    = "Locations of Remaining Coins"
	DensityBarLabel = "Overlap Density (1.0 = Not collected in any of the patterns)"
)

var (
	highScoreColor = color.RGBA{R: 220, A: 255}
	lowScoreColor  = color.RGBA{B: 220, A: 255}
	gridLineColor  = color.Gray{Y: 128}
)

// unitTicks labels every integer from min to max.
func unitTicks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for v := float64(int(min)); v <= max; v++ {
		if v < min {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%d", int(v))})
	}
	return ticks
}

// DensityPlot builds the heatmap with the highlight markers on top. The value
// range is fixed to [0, 1] regardless of the data.
func DensityPlot(g *density.Grid, ov *overlay.Overlay) (*plot.Plot, error) {
	size := float64(g.Size())

	hm := plotter.NewHeatMap(g, newGreys().Palette(256))
	hm.Min, hm.Max = 0, 1
	hm.Underflow = color.White
	hm.Overflow = color.Black

	p := plot.New()
	p.Title.Text = DensityTitle
	p.X.Label.Text = "X Coordinate"
	p.Y.Label.Text = "Y Coordinate"
	p.Add(hm)

	lines := plotter.NewGrid()
	lines.Vertical.Color = gridLineColor
	lines.Vertical.Width = vg.Points(0.5)
	lines.Horizontal.Color = gridLineColor
	lines.Horizontal.Width = vg.Points(0.5)
	p.Add(lines)

	if ov != nil {
		if err := addMarkers(p, ov.HighScore, highScoreColor, draw.CircleGlyph{}); err != nil {
			return nil, err
		}
		if err := addMarkers(p, ov.LowScore, lowScoreColor, draw.CrossGlyph{}); err != nil {
			return nil, err
		}
	}

	p.X.Min, p.X.Max = 0, size
	p.Y.Min, p.Y.Max = 0, size
	p.X.Tick.Marker = plot.TickerFunc(unitTicks)
	p.Y.Tick.Marker = plot.TickerFunc(unitTicks)
	p.Legend.Top = true

	return p, nil
}

func addMarkers(p *plot.Plot, set overlay.HighlightSet, c color.Color, shape draw.GlyphDrawer) error {
	if set.Empty() {
		return nil
	}
	centred := set.Centred()
	pts := make(plotter.XYs, len(centred))
	for i, m := range centred {
		pts[i] = plotter.XY{X: m.X, Y: m.Y}
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("%s markers: %w", set.Label, err)
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = vg.Points(4)

	p.Add(s)
	p.Legend.Add(set.Label, s)
	return nil
}

// colourBar builds the side plot explaining the grey scale.
func colourBar() *plot.Plot {
	p := plot.New()
	p.HideX()
	p.Y.Label.Text = DensityBarLabel
	p.Add(&plotter.ColorBar{ColorMap: newGreys(), Vertical: true, Colors: 256})
	return p
}

// WriteDensityPNG draws the density figure, with its colour bar to the
// right, as a PNG of the given size.
func WriteDensityPNG(w io.Writer, g *density.Grid, ov *overlay.Overlay, width, height vg.Length) error {
	p, err := DensityPlot(g, ov)
	if err != nil {
		return err
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)
	barWidth := width / 7

	p.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	colourBar().Draw(draw.Crop(dc, width-barWidth, 0, 0, 0))

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("write density png: %w", err)
	}
	return nil
}
