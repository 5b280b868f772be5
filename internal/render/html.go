package render

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/banshee-data/coinviz/internal/density"
	"github.com/banshee-data/coinviz/internal/overlay"
	"github.com/banshee-data/coinviz/internal/trend"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLOptions controls the interactive pages.
type HTMLOptions struct {
	// AssetsHost overrides where echarts.min.js is fetched from. Empty keeps
	// the go-echarts default CDN.
	AssetsHost string

	// RunID is shown in the chart subtitle when set.
	RunID string
}

func (o HTMLOptions) subtitle(format string, v ...interface{}) string {
	s := fmt.Sprintf(format, v...)
	if o.RunID != "" {
		s += " run=" + o.RunID
	}
	return s
}

func (o HTMLOptions) init(title string) opts.Initialization {
	return opts.Initialization{
		PageTitle:  title,
		Width:      "900px",
		Height:     "900px",
		AssetsHost: o.AssetsHost,
	}
}

// WriteDensityHTML renders the density grid as an interactive heatmap with the
// highlight sets as scatter overlays. Markers use category indices, so they
// land on the centre of their cell without the half-cell shift. Cell values
// are clamped to 1 so rounding in the accumulated sums stays inside the
// visual map.
func WriteDensityHTML(w io.Writer, g *density.Grid, ov *overlay.Overlay, o HTMLOptions) error {
	size := g.Size()
	labels := make([]string, size)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}

	data := make([]opts.HeatMapData, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{x, y, math.Min(g.At(x, y), 1)}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(o.init(DensityTitle)),
		charts.WithTitleOpts(opts.Title{Title: DensityTitle, Subtitle: o.subtitle("grid=%dx%d max=%.3f", size, size, math.Min(g.Max(), 1))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: labels, Name: "X Coordinate", NameLocation: "middle", NameGap: 25, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels, Name: "Y Coordinate", NameLocation: "middle", NameGap: 30, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			Dimension:  "2",
			Text:       []string{"1.0", "0.0"},
			InRange:    &opts.VisualMapInRange{Color: []string{"#ffffff", "#000000"}},
		}),
	)
	hm.SetXAxis(labels).AddSeries(DensityBarLabel, data)

	if ov != nil {
		for _, m := range []struct {
			set    overlay.HighlightSet
			symbol string
			color  string
		}{
			{ov.HighScore, "circle", "red"},
			{ov.LowScore, "diamond", "blue"},
		} {
			if m.set.Empty() {
				continue
			}
			pts := make([]opts.ScatterData, len(m.set.Markers))
			for i, mk := range m.set.Markers {
				pts[i] = opts.ScatterData{Value: []interface{}{mk.X, mk.Y}, Symbol: m.symbol, SymbolSize: 12}
			}
			sc := charts.NewScatter()
			sc.AddSeries(m.set.Label, pts, charts.WithItemStyleOpts(opts.ItemStyle{Color: m.color}))
			hm.Overlap(sc)
		}
	}

	if err := hm.Render(w); err != nil {
		return fmt.Errorf("render density html: %w", err)
	}
	return nil
}

// WriteTrendHTML renders the score trend as an interactive line chart. Runs of
// the same group share a legend entry.
func WriteTrendHTML(w io.Writer, set *trend.Set, o HTMLOptions) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(o.init(TrendTitle)),
		charts.WithTitleOpts(opts.Title{Title: TrendTitle, Subtitle: o.subtitle("experiment=%d baseline=%d", len(set.Experiment), len(set.Baseline))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Time", NameLocation: "middle", NameGap: 25, SplitLine: &opts.SplitLine{Show: opts.Bool(true)}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Score", NameLocation: "middle", NameGap: 40, SplitLine: &opts.SplitLine{Show: opts.Bool(true)}}),
	)

	for _, s := range set.All() {
		if len(s.Samples) == 0 {
			continue
		}
		style := trendStyles[s.Group]
		pts := make([]opts.LineData, len(s.Samples))
		for i, smp := range s.Samples {
			pts[i] = opts.LineData{Value: []interface{}{smp.Time, smp.Score}}
		}
		line.AddSeries(style.Label, pts,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: style.CSS}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: style.CSS}),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render trend html: %w", err)
	}
	return nil
}
