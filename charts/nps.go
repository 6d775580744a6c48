package charts

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vnkhanh/survey-insights/analysis"
)

// NPSAnalysis draws NPS per track next to a pie of participants per track.
func (r *Renderer) NPSAnalysis(s *analysis.Summary) (string, error) {
	path, err := r.path(NPSAnalysisFile)
	if err != nil {
		return "", err
	}

	names := make([]string, len(s.Tracks))
	scores := make(plotter.Values, len(s.Tracks))
	sizes := make([]float64, len(s.Tracks))
	for i, t := range s.Tracks {
		names[i] = t.Track
		scores[i] = t.NPS
		sizes[i] = float64(t.Responses)
	}

	bars := newPlot(fmt.Sprintf("NPS by Track (overall %.1f)", s.Overall.NPS))
	bars.Y.Label.Text = "NPS"
	if len(names) > 0 {
		b, err := plotter.NewBarChart(scores, vg.Points(40))
		if err != nil {
			return "", err
		}
		b.Color = barColor
		b.LineStyle.Width = 0
		bars.Add(b)
		bars.NominalX(names...)
		labels, err := valueLabels(scores, "%.1f", false)
		if err != nil {
			return "", err
		}
		bars.Add(labels)
	}
	bars.Add(plotter.NewGrid())

	share := newPlot("Participants by Track")
	share.HideAxes()
	share.Add(pie{values: sizes, labels: names})

	return path, saveGrid([][]*plot.Plot{{bars, share}}, 14*vg.Inch, 6*vg.Inch, path)
}

// NPSDistribution draws the 0-10 score histogram with a dashed mean line.
func (r *Renderer) NPSDistribution(s *analysis.Summary) (string, error) {
	path, err := r.path(NPSDistributionFile)
	if err != nil {
		return "", err
	}

	p := newPlot("NPS Score Distribution")
	p.X.Label.Text = "Score"
	p.Y.Label.Text = "Responses"

	top := 0
	bins := make([]plotter.HistogramBin, len(s.Histogram))
	for i, n := range s.Histogram {
		bins[i] = plotter.HistogramBin{Min: float64(i) - 0.5, Max: float64(i) + 0.5, Weight: float64(n)}
		top = max(top, n)
	}
	h := &plotter.Histogram{
		Bins:      bins,
		Width:     1,
		FillColor: barColor,
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(h)

	mean, err := plotter.NewLine(plotter.XYs{{X: s.Overall.Mean, Y: 0}, {X: s.Overall.Mean, Y: float64(top)}})
	if err != nil {
		return "", err
	}
	mean.Color = meanColor
	mean.Width = vg.Points(2)
	mean.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(mean)
	p.Legend.Add(fmt.Sprintf("Mean: %.2f", s.Overall.Mean), mean)
	p.Legend.Top = true

	ticks := make([]plot.Tick, 11)
	for i := range ticks {
		ticks[i] = plot.Tick{Value: float64(i), Label: strconv.Itoa(i)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min, p.X.Max = -0.5, 10.5
	p.Add(plotter.NewGrid())

	return path, savePlot(p, 10*vg.Inch, 6*vg.Inch, path)
}
