package charts

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vnkhanh/survey-insights/analysis"
)

// ImprovementCloud draws the overall improvement categories as a word cloud.
func (r *Renderer) ImprovementCloud(cats []analysis.CategoryCount) (string, error) {
	path, err := r.path(ImprovementCloudFile)
	if err != nil {
		return "", err
	}
	p := cloudPlot("Key Improvement Categories", cats)
	return path, savePlot(p, 12*vg.Inch, 6*vg.Inch, path)
}

// TrackImprovements draws one improvement word cloud per track.
func (r *Renderer) TrackImprovements(tracks []analysis.TrackImprovements) (string, error) {
	path, err := r.path(TrackImprovementsFile)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 {
		return path, savePlot(placeholder("Improvements by Track", "No specific improvements"), 8*vg.Inch, 5*vg.Inch, path)
	}

	ps := make([]*plot.Plot, len(tracks))
	for i, t := range tracks {
		ps[i] = cloudPlot(t.Track+" Track - Improvements", t.Categories)
	}
	return path, saveGrid(grid(ps, 3), vg.Length(min(len(tracks), 3))*7*vg.Inch, vg.Length((len(tracks)+2)/3)*5*vg.Inch, path)
}

// LowScorers draws the issues raised by detractors.
func (r *Renderer) LowScorers(rep analysis.LowScorerReport) (string, error) {
	path, err := r.path(LowScorersFile)
	if err != nil {
		return "", err
	}
	if len(rep.Issues) == 0 {
		p := placeholder("Key Issues from Low Scorers (NPS 0-6)", "No specific issues identified")
		return path, savePlot(p, 10*vg.Inch, 6*vg.Inch, path)
	}

	names := make([]string, len(rep.Issues))
	counts := make(plotter.Values, len(rep.Issues))
	for i, is := range rep.Issues {
		names[i] = is.Issue
		counts[i] = float64(is.Mentions)
	}

	p := newPlot("Key Issues from Low Scorers (NPS 0-6)")
	p.Y.Label.Text = "Mentions"
	b, err := plotter.NewBarChart(counts, vg.Points(50))
	if err != nil {
		return "", err
	}
	b.Color = detractorColor
	b.LineStyle.Width = 0
	p.Add(b)
	labels, err := valueLabels(counts, "%.0f", false)
	if err != nil {
		return "", err
	}
	p.Add(labels)
	p.NominalX(names...)
	p.Add(plotter.NewGrid())
	return path, savePlot(p, 10*vg.Inch, 6*vg.Inch, path)
}
