package render

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// newGreys returns a ColorMap over [0, 1] running from white at 0 to black at
// 1. Luminance maps need increasing lightness, so the black-to-white map is
// reversed.
func newGreys() palette.ColorMap {
	cm, err := moreland.NewLuminance([]color.Color{color.Black, color.White})
	if err != nil {
		panic(err)
	}
	cm.SetMin(0)
	cm.SetMax(1)
	return palette.Reverse(cm)
}
