package charts

import (
	"fmt"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/vnkhanh/survey-insights/analysis"
)

const (
	topRankedSessions  = 8
	topPopularSessions = 10
)

// horizontalBars plots values bottom to top in reverse, so the first name ends up on top.
func horizontalBars(p *plot.Plot, names []string, values []float64) error {
	names = slices.Clone(names)
	vs := make(plotter.Values, len(values))
	for i, v := range values {
		vs[len(values)-1-i] = v
	}
	slices.Reverse(names)

	b, err := plotter.NewBarChart(vs, vg.Points(18))
	if err != nil {
		return err
	}
	b.Horizontal = true
	b.Color = barColor
	b.LineStyle.Width = 0
	p.Add(b)
	labels, err := valueLabels(vs, " %.0f", true)
	if err != nil {
		return err
	}
	p.Add(labels)
	p.NominalY(names...)
	return nil
}

// SessionRankings draws the top sessions of every track.
func (r *Renderer) SessionRankings(rankings []analysis.TrackRanking) (string, error) {
	path, err := r.path(SessionRankingsFile)
	if err != nil {
		return "", err
	}
	if len(rankings) == 0 {
		return path, savePlot(placeholder("Session Rankings", "No session rankings"), 8*vg.Inch, 5*vg.Inch, path)
	}

	ps := make([]*plot.Plot, len(rankings))
	for i, tr := range rankings {
		title := tr.Track + " Track - Top Sessions"
		if len(tr.Sessions) == 0 {
			ps[i] = placeholder(title, "No sessions named")
			continue
		}
		top := tr.Sessions[:min(len(tr.Sessions), topRankedSessions)]
		names := make([]string, len(top))
		points := make([]float64, len(top))
		for j, s := range top {
			names[j] = analysis.ShortenSessionName(s.Session)
			points[j] = float64(s.Points)
		}
		p := newPlot(title)
		p.X.Label.Text = "Points"
		if err := horizontalBars(p, names, points); err != nil {
			return "", err
		}
		ps[i] = p
	}
	return path, saveGrid(grid(ps, 1), 12*vg.Inch, vg.Length(len(ps))*5*vg.Inch, path)
}

// SessionPopularity draws the most mentioned sessions overall, then the same
// sessions stacked by track.
func (r *Renderer) SessionPopularity(sessions []*analysis.SessionInsight, tracks []string) (string, error) {
	path, err := r.path(SessionPopularityFile)
	if err != nil {
		return "", err
	}
	ranked := analysis.ByMentions(sessions)
	ranked = ranked[:min(len(ranked), topPopularSessions)]
	if len(ranked) == 0 {
		return path, savePlot(placeholder("Session Popularity", "No sessions named"), 8*vg.Inch, 5*vg.Inch, path)
	}

	names := make([]string, len(ranked))
	mentions := make([]float64, len(ranked))
	for i, s := range ranked {
		names[i] = analysis.Truncate(s.Session, 40)
		mentions[i] = float64(s.Mentions)
	}
	overall := newPlot(fmt.Sprintf("Top %d Sessions by Mentions", len(ranked)))
	overall.X.Label.Text = "Mentions"
	if err := horizontalBars(overall, names, mentions); err != nil {
		return "", err
	}

	byTrack := newPlot("Session Mentions by Track")
	byTrack.Y.Label.Text = "Mentions"
	var below *plotter.BarChart
	for i, track := range tracks {
		vs := make(plotter.Values, len(ranked))
		for j, s := range ranked {
			if t, ok := s.Track(track); ok {
				vs[j] = float64(t.Mentions)
			}
		}
		b, err := plotter.NewBarChart(vs, vg.Points(24))
		if err != nil {
			return "", err
		}
		b.Color = plotutil.Color(i)
		b.LineStyle.Width = 0
		if below != nil {
			b.StackOn(below)
		}
		below = b
		byTrack.Add(b)
		byTrack.Legend.Add(track, b)
	}
	byTrack.Legend.Top = true
	short := make([]string, len(ranked))
	for i := range ranked {
		short[i] = fmt.Sprintf("#%d", i+1)
	}
	byTrack.NominalX(short...)

	return path, saveGrid([][]*plot.Plot{{overall, byTrack}}, 18*vg.Inch, 8*vg.Inch, path)
}

// TrackComparison draws the NPS buckets and the NPS of every track.
func (r *Renderer) TrackComparison(tracks []analysis.TrackMotivation) (string, error) {
	path, err := r.path(TrackComparisonFile)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 {
		return path, savePlot(placeholder("Track Comparison", "No tracks"), 8*vg.Inch, 5*vg.Inch, path)
	}

	names := make([]string, len(tracks))
	promoters := make(plotter.Values, len(tracks))
	passives := make(plotter.Values, len(tracks))
	detractors := make(plotter.Values, len(tracks))
	nps := make(plotter.Values, len(tracks))
	for i, t := range tracks {
		names[i] = t.Track
		promoters[i] = float64(t.Promoters)
		passives[i] = float64(t.Passives)
		detractors[i] = float64(t.Detractors)
		nps[i] = t.NPS
	}

	groups := newPlot("Promoters, Passives and Detractors by Track")
	groups.Y.Label.Text = "Participants"
	w := vg.Points(20)
	for i, g := range []struct {
		name   string
		values plotter.Values
	}{
		{"Promoters", promoters},
		{"Passives", passives},
		{"Detractors", detractors},
	} {
		b, err := plotter.NewBarChart(g.values, w)
		if err != nil {
			return "", err
		}
		b.Color = bucketColors[i]
		b.LineStyle.Width = 0
		b.Offset = vg.Length(i-1) * w
		groups.Add(b)
		groups.Legend.Add(g.name, b)
	}
	groups.Legend.Top = true
	groups.NominalX(names...)

	scores := newPlot("NPS by Track")
	scores.Y.Label.Text = "NPS"
	b, err := plotter.NewBarChart(nps, vg.Points(40))
	if err != nil {
		return "", err
	}
	b.Color = barColor
	b.LineStyle.Width = 0
	scores.Add(b, plotter.NewGrid())
	labels, err := valueLabels(nps, "%.1f", false)
	if err != nil {
		return "", err
	}
	scores.Add(labels)
	scores.NominalX(names...)

	return path, saveGrid([][]*plot.Plot{{groups, scores}}, 16*vg.Inch, 6*vg.Inch, path)
}
