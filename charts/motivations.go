package charts

import (
	"cmp"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/vnkhanh/survey-insights/analysis"
)

const topMotivationKeywords = 10

// MotivationAnalysis draws, for sessions with enough mentions, the average
// length of their top motivations and the motivation keywords summed across
// those sessions.
func (r *Renderer) MotivationAnalysis(sessions []*analysis.SessionInsight) (string, error) {
	path, err := r.path(MotivationAnalysisFile)
	if err != nil {
		return "", err
	}

	lengths := newPlot("Average Motivation Review Length by Session (3+ reviews)")
	lengths.X.Label.Text = "Average Review Length (characters)"
	names, avgs := averageReviewLengths(sessions)
	if len(names) == 0 {
		lengths = placeholder(lengths.Title.Text, "No sessions with 3+ reviews")
	} else if err := horizontalBars(lengths, names, avgs); err != nil {
		return "", err
	}

	keywords := newPlot("Top Keywords from Session Motivations")
	keywords.X.Label.Text = "Total Mentions"
	words, counts := summedKeywords(sessions, topMotivationKeywords)
	if len(words) == 0 {
		keywords = placeholder(keywords.Title.Text, "No motivation keywords")
	} else if err := horizontalBars(keywords, words, counts); err != nil {
		return "", err
	}

	return path, saveGrid([][]*plot.Plot{{lengths}, {keywords}}, 14*vg.Inch, 12*vg.Inch, path)
}

type bar struct {
	name  string
	value float64
}

func splitBars(bars []bar) ([]string, []float64) {
	names := make([]string, len(bars))
	values := make([]float64, len(bars))
	for i, b := range bars {
		names[i], values[i] = b.name, b.value
	}
	return names, values
}

func byValueDesc(a, b bar) int {
	return cmp.Compare(b.value, a.value)
}

// averageReviewLengths returns sessions with at least three top reviews,
// longest average first; ties keep session order.
func averageReviewLengths(sessions []*analysis.SessionInsight) ([]string, []float64) {
	var bars []bar
	for _, s := range sessions {
		if len(s.TopReviews) < analysis.MinComprehensiveMentions {
			continue
		}
		total := 0
		for _, m := range s.TopReviews {
			total += m.Length
		}
		bars = append(bars, bar{analysis.Truncate(s.Session, 40), float64(total) / float64(len(s.TopReviews))})
	}
	slices.SortStableFunc(bars, byValueDesc)
	return splitBars(bars)
}

// summedKeywords adds up keyword mentions over every session and keeps the n
// most mentioned; ties keep first-seen order.
func summedKeywords(sessions []*analysis.SessionInsight, n int) ([]string, []float64) {
	idx := map[string]int{}
	var bars []bar
	for _, s := range sessions {
		for _, k := range s.Keywords {
			i, ok := idx[k.Keyword]
			if !ok {
				i = len(bars)
				idx[k.Keyword] = i
				bars = append(bars, bar{name: k.Keyword})
			}
			bars[i].value += float64(k.Count)
		}
	}
	slices.SortStableFunc(bars, byValueDesc)
	return splitBars(bars[:min(n, len(bars))])
}
