package charts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/vnkhanh/survey-insights/analysis"
	"github.com/vnkhanh/survey-insights/survey"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func fixture(t *testing.T) []survey.Response {
	t.Helper()
	tbl, err := survey.ReadCSV(filepath.Join("..", "analysis", "testdata", "survey.csv"))
	require.NoError(t, err)
	rs, err := survey.Responses(tbl, survey.DefaultColumns())
	require.NoError(t, err)
	return rs
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(b), len(pngMagic))
	assert.Equal(t, pngMagic, b[:len(pngMagic)])
}

func TestRenderAll_Fixture(t *testing.T) {
	rs := fixture(t)
	summary, err := analysis.Summarize(rs)
	require.NoError(t, err)
	cats := analysis.DefaultCategories()
	low := analysis.LowScorers(rs)

	r := NewRenderer(filepath.Join(t.TempDir(), "images"))
	got, err := r.RenderAll(context.Background(), Data{
		Summary:           summary,
		Improvements:      analysis.Improvements(rs, cats),
		TrackImprovements: analysis.ImprovementsByTrack(rs, cats),
		Rankings:          analysis.SessionRankings(rs),
		LowScorers:        &low,
		Sessions:          analysis.AnalyzeSessions(rs),
		Tracks:            survey.Tracks(rs),
		TrackMotivations:  analysis.AnalyzeTrackMotivations(rs),
	})
	require.NoError(t, err)

	for _, name := range []string{
		NPSAnalysisFile, NPSDistributionFile, ImprovementCloudFile, TrackImprovementsFile,
		SessionRankingsFile, LowScorersFile, SessionPopularityFile, MotivationAnalysisFile,
		TrackComparisonFile,
	} {
		require.Contains(t, got, name)
		assert.Equal(t, filepath.Join(r.Dir, name), got[name])
		requirePNG(t, got[name])
	}
}

func TestRenderAll_SkipsMissingData(t *testing.T) {
	r := NewRenderer(t.TempDir())

	got, err := r.RenderAll(context.Background(), Data{Improvements: []analysis.CategoryCount{}})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	requirePNG(t, got[ImprovementCloudFile])
}

func TestRenderAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRenderer(t.TempDir())

	_, err := r.RenderAll(ctx, Data{Improvements: []analysis.CategoryCount{{Category: "Time", Mentions: 1}}})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLowScorers_Placeholder(t *testing.T) {
	r := NewRenderer(t.TempDir())

	path, err := r.LowScorers(analysis.LowScorerReport{})

	require.NoError(t, err)
	requirePNG(t, path)
}

func TestGrid(t *testing.T) {
	ps := make([]*plot.Plot, 4)
	for i := range ps {
		ps[i] = newPlot("")
	}

	rows := grid(ps, 3)

	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 3)
	assert.Same(t, ps[3], rows[1][0])
}

func TestMotivationAnalysis_Placeholder(t *testing.T) {
	r := NewRenderer(t.TempDir())

	path, err := r.MotivationAnalysis([]*analysis.SessionInsight{{Session: "Solo", TopReviews: []analysis.Motivation{{Text: "x", Length: 1}}}})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.Dir, MotivationAnalysisFile), path)
	requirePNG(t, path)
}

func TestAverageReviewLengths(t *testing.T) {
	reviews := func(lengths ...int) []analysis.Motivation {
		out := make([]analysis.Motivation, len(lengths))
		for i, n := range lengths {
			out[i] = analysis.Motivation{Length: n}
		}
		return out
	}
	sessions := []*analysis.SessionInsight{
		{Session: "Short", TopReviews: reviews(10, 20, 30)},
		{Session: "Too few", TopReviews: reviews(500, 500)},
		{Session: "Long", TopReviews: reviews(57, 37, 12)},
	}

	names, avgs := averageReviewLengths(sessions)

	assert.Equal(t, []string{"Long", "Short"}, names)
	require.Len(t, avgs, 2)
	assert.InDelta(t, 35.33, avgs[0], 0.01)
	assert.InDelta(t, 20.0, avgs[1], 0.01)
}

func TestSummedKeywords(t *testing.T) {
	sessions := []*analysis.SessionInsight{
		{Session: "A", Keywords: []analysis.KeywordCount{{Keyword: "data", Count: 2}, {Keyword: "cloud", Count: 3}}},
		{Session: "B", Keywords: []analysis.KeywordCount{{Keyword: "data", Count: 2}, {Keyword: "ai", Count: 1}}},
		{Session: "C", Keywords: []analysis.KeywordCount{{Keyword: "ml", Count: 3}}},
	}

	words, counts := summedKeywords(sessions, 3)

	assert.Equal(t, []string{"data", "cloud", "ml"}, words)
	assert.Equal(t, []float64{4, 3, 3}, counts)
}
