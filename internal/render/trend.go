package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/banshee-data/coinviz/internal/trend"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const TrendTitle = "Score Over Time"

// seriesStyle is the look of one group of runs.
type seriesStyle struct {
	Label string
	Color color.Color
	CSS   string
}

var trendStyles = map[trend.Group]seriesStyle{
	trend.Experiment: {Label: "Experiment", Color: color.NRGBA{A: 128}, CSS: "rgba(0,0,0,0.5)"},
	trend.Baseline:   {Label: "Greedy", Color: color.NRGBA{R: 255, A: 255}, CSS: "rgba(255,0,0,1)"},
}

// TrendPlot draws one line per run. Baseline runs are drawn after the
// experiment runs so they stay on top.
func TrendPlot(set *trend.Set) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = TrendTitle
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Score"
	p.Add(plotter.NewGrid())

	legend := map[trend.Group]bool{}
	for _, s := range set.All() {
		if len(s.Samples) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(s.Samples))
		for i, smp := range s.Samples {
			pts[i] = plotter.XY{X: smp.Time, Y: smp.Score}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Name, err)
		}
		style := trendStyles[s.Group]
		line.Color = style.Color
		line.Width = vg.Points(1)
		p.Add(line)

		if !legend[s.Group] {
			p.Legend.Add(style.Label, line)
			legend[s.Group] = true
		}
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = 10
	p.Legend.YOffs = -10
	return p, nil
}

// WriteTrendPNG renders the trend figure as a PNG.
func WriteTrendPNG(w io.Writer, set *trend.Set, width, height vg.Length) error {
	p, err := TrendPlot(set)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("trend writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write trend png: %w", err)
	}
	return nil
}
