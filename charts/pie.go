package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pie draws labelled wedges proportional to values, starting at 12 o'clock
// and going clockwise.
type pie struct {
	values []float64
	labels []string
}

func (pc pie) Plot(c draw.Canvas, _ *plot.Plot) {
	var total float64
	for _, v := range pc.values {
		total += v
	}
	if total <= 0 {
		return
	}

	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	radius := min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y) / 2 * 0.85
	sty := textStyle(vg.Points(10), color.Black)

	start := math.Pi / 2
	for i, v := range pc.values {
		sweep := v / total * 2 * math.Pi
		steps := max(2, int(sweep/(math.Pi/90)))
		pts := make([]vg.Point, 0, steps+2)
		pts = append(pts, center)
		for s := 0; s <= steps; s++ {
			a := start - sweep*float64(s)/float64(steps)
			pts = append(pts, vg.Point{
				X: center.X + radius*vg.Length(math.Cos(a)),
				Y: center.Y + radius*vg.Length(math.Sin(a)),
			})
		}
		c.FillPolygon(plotutil.Color(i), pts)

		mid := start - sweep/2
		at := vg.Point{
			X: center.X + radius*0.6*vg.Length(math.Cos(mid)),
			Y: center.Y + radius*0.6*vg.Length(math.Sin(mid)),
		}
		c.FillText(sty, at, fmt.Sprintf("%s\n%.1f%%", pc.labels[i], v/total*100))
		start -= sweep
	}
}
